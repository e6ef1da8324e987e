package signal_test

import (
	"fmt"

	"github.com/cwbudde/algo-htr/dsp/core"
	"github.com/cwbudde/algo-htr/dsp/signal"
)

func ExampleGenerator_Twitches() {
	g := signal.NewGenerator(core.WithSampleRate(10))
	x, err := g.Twitches([]signal.Twitch{{Start: 0.1, Duration: 0.5, Amplitude: 1}}, 7)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%.2f %.2f %.2f %.2f %.2f %.2f %.2f\n", x[0], x[1], x[2], x[3], x[4], x[5], x[6])

	// Output:
	// 0.00 0.00 0.50 1.00 0.50 0.00 0.00
}

func ExampleNormalize() {
	x, err := signal.Normalize([]float64{-0.5, 0.25, 1}, 0.8)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.2f %.2f %.2f\n", x[0], x[1], x[2])

	// Output:
	// -0.40 0.20 0.80
}
