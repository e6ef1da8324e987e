package design_test

import (
	"fmt"

	"github.com/cwbudde/algo-htr/dsp/filter/design"
)

func ExampleButterworthLowpass() {
	c, err := design.ButterworthLowpass(1000, 48000)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("100 Hz:   %.2f dB\n", c.MagnitudeDB(100, 48000))
	fmt.Printf("1000 Hz:  %.2f dB\n", c.MagnitudeDB(1000, 48000))
	// Output:
	// 100 Hz:   -0.00 dB
	// 1000 Hz:  -3.01 dB
}
