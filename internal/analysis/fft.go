package analysis

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/physical/internal/units"
)

// ErrTooShort indicates a series with too few samples to analyze.
var ErrTooShort = errors.New("analysis: need at least two samples")

// PowerSpectrum returns the magnitude of the discrete Fourier transform of
// data for the non-negative frequencies below Nyquist. Any length works.
func PowerSpectrum(data []float64) []float64 {
	coeffs := fft.FFTReal(data)
	ps := make([]float64, len(coeffs)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// Frequencies returns the frequency of each PowerSpectrum bin for n
// samples taken dt apart. Each is a Scalar in second**(-1).
func Frequencies(n int, dt units.Scalar) ([]units.Scalar, error) {
	if err := units.CheckUnits("sample spacing dt must be a time", dt, units.Second); err != nil {
		return nil, err
	}
	if n < 2 {
		return nil, ErrTooShort
	}
	step := dt.Scale(float64(n)).Inverse()
	freqs := make([]units.Scalar, n/2)
	for k := range freqs {
		freqs[k] = step.Scale(float64(k))
	}
	return freqs, nil
}

// DominantFrequency finds the strongest non-zero frequency in samples
// taken dt apart. The samples must all share one dimension; the mean is
// removed before the transform.
func DominantFrequency(samples []units.Scalar, dt units.Scalar) (units.Scalar, error) {
	if len(samples) < 2 {
		return units.Scalar{}, ErrTooShort
	}
	data := make([]float64, len(samples))
	mean := 0.0
	for i, s := range samples {
		if err := units.CheckUnits("samples must all have same units", s, samples[0]); err != nil {
			return units.Scalar{}, fmt.Errorf("sample %d: %w", i, err)
		}
		data[i] = s.Value()
		mean += data[i]
	}
	mean /= float64(len(data))
	for i := range data {
		data[i] -= mean
	}

	freqs, err := Frequencies(len(data), dt)
	if err != nil {
		return units.Scalar{}, err
	}
	ps := PowerSpectrum(data)

	peak := 0
	for k := 1; k < len(ps); k++ {
		if peak == 0 || ps[k] > ps[peak] {
			peak = k
		}
	}
	return freqs[peak], nil
}
