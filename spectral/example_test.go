package spectral_test

import (
	"fmt"

	"github.com/katalvlaran/cartogram/spectral"
)

// ExampleFFT_DCT2 transforms a constant 2×2 field: all energy lands in the
// zero-frequency coefficient.
func ExampleFFT_DCT2() {
	tr := spectral.NewFFT(nil)
	src := []float64{1, 1, 1, 1}
	dst := make([]float64, 4)
	if err := tr.DCT2(dst, src, 2, 2); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(dst)
	// Output:
	// [16 0 0 0]
}

// ExampleVerify gates a backend before wiring it into the engine.
func ExampleVerify() {
	fmt.Println(spectral.Verify(spectral.Direct{}))
	// Output:
	// <nil>
}
