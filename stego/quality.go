package stego

import "math"

// PSNR returns the peak signal-to-noise ratio, in dB, between an original
// carrier and its modified copy. Identical carriers give +Inf; carriers of
// different or zero length give 0.
func PSNR(original, modified []byte) float64 {
	if len(original) != len(modified) || len(original) == 0 {
		return 0
	}

	var mse float64
	for i := range original {
		diff := float64(original[i]) - float64(modified[i])
		mse += diff * diff
	}
	mse /= float64(len(original))

	if mse == 0 {
		return math.Inf(1)
	}
	return 20 * math.Log10(255/math.Sqrt(mse))
}

// AcceptablePSNR reports whether psnr meets threshold. +Inf always does.
func AcceptablePSNR(psnr, threshold float64) bool {
	if math.IsInf(psnr, 1) {
		return true
	}
	return psnr >= threshold
}
