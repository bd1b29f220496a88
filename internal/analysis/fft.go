package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var (
	// ErrTooShort indicates a series too short to analyse.
	ErrTooShort = errors.New("analysis: series too short")

	// ErrNoOscillation indicates a constant series or one without crossings.
	ErrNoOscillation = errors.New("analysis: no oscillation found")

	// ErrInvalidDt indicates a non-positive sample interval.
	ErrInvalidDt = errors.New("analysis: sample interval must be positive")
)

const minSamples = 4

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func demean(xs []float64) []float64 {
	m := mean(xs)
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = x - m
	}
	return out
}

// PowerSpectrum returns the magnitude of each non-negative frequency bin of
// the mean-removed series. Bin k is k/(n·dt) Hz.
func PowerSpectrum(samples []float64) []float64 {
	if len(samples) == 0 {
		return nil
	}
	spec := fft.FFTReal(demean(samples))
	ps := make([]float64, len(spec)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantFrequency returns the frequency in Hz of the strongest
// non-constant component.
func DominantFrequency(samples []float64, dt float64) (float64, error) {
	if dt <= 0 {
		return 0, ErrInvalidDt
	}
	if len(samples) < minSamples {
		return 0, ErrTooShort
	}

	ps := PowerSpectrum(samples)
	best, bestMag := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > bestMag {
			best, bestMag = k, ps[k]
		}
	}
	if best == 0 || bestMag < 1e-9 {
		return 0, ErrNoOscillation
	}
	return float64(best) / (float64(len(samples)) * dt), nil
}

func Period(samples []float64, dt float64) (float64, error) {
	f, err := DominantFrequency(samples, dt)
	if err != nil {
		return 0, err
	}
	return 1 / f, nil
}

// CrossingPeriod estimates the period from the mean spacing of upward
// crossings of the series mean, with linear interpolation between samples.
func CrossingPeriod(samples []float64, dt float64) (float64, error) {
	if dt <= 0 {
		return 0, ErrInvalidDt
	}
	if len(samples) < minSamples {
		return 0, ErrTooShort
	}

	xs := demean(samples)
	var crossings []float64
	for i := 1; i < len(xs); i++ {
		prev, curr := xs[i-1], xs[i]
		if prev < 0 && curr >= 0 {
			frac := -prev / (curr - prev)
			if math.IsNaN(frac) || math.IsInf(frac, 0) {
				frac = 0.5
			}
			crossings = append(crossings, (float64(i-1)+frac)*dt)
		}
	}
	if len(crossings) < 2 {
		return 0, ErrNoOscillation
	}
	return (crossings[len(crossings)-1] - crossings[0]) / float64(len(crossings)-1), nil
}
