// Package resample converts whole signals between integer sample rates
// with a Kaiser-windowed sinc polyphase filter.
//
// Quality modes:
//
//	mode            taps/phase   nominal stopband
//	QualityFast     16           ~55 dB
//	QualityBalanced 32           ~75 dB
//	QualityBest     64           ~90 dB
//
// The filter delay is compensated, so output sample n lines up with input
// time n*inRate/outRate.
package resample
