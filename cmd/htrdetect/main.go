// Command htrdetect counts HTR events in sensor recordings.
//
// Usage:
//
//	htrdetect [flags] recording ...
//
// Each recording is filtered, thresholded and searched for events; a
// summary table goes to stdout. Text files hold one sample per line (or
// per row, see -column); .wav and .xlsx files are decoded directly.
//
// Examples:
//
//	htrdetect -rate 15 mouse01.csv mouse02.csv
//	htrdetect -config htr.yaml -out reports -trace traces data/*.wav
//	htrdetect -synth reference
//	htrdetect -synth twitches -nats nats://127.0.0.1:4222
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	app, err := newApp(opts, stdout)
	if err != nil {
		return err
	}
	defer func() { _ = app.logger.Sync() }()
	defer app.close()

	app.logger.Debug("configuration resolved",
		zap.Float64("sample_rate_hz", app.cfg.SampleRate),
		zap.Float64("cutoff_hz", app.cfg.CutoffHz),
		zap.Int("jobs", opts.jobs),
	)

	return app.runAll(ctx)
}
