// Package analysis extracts frequencies and growth rates from simulation
// output. Results carry units:
//
//   - [DominantFrequency]: strongest oscillation in a sampled series, in second**(-1)
//   - [PowerSpectrum] and [Frequencies]: the full spectrum and its bins
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory separation
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda, err := analysis.LyapunovExponent(ctx, sys, integ, bodies, dt, duration, units.Meter.Scale(1e-8))
//	if err == nil && lambda.Value() > 0 {
//	    // System is chaotic
//	}
package analysis
