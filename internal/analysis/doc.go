// Package analysis provides cheap, non-rigorous tools for characterizing
// iterated maps:
//
//   - [MapBifurcation]: parameter sweep recording long-run values
//   - [DetectPeriod]: doubling-period search over a settled orbit
//   - [BifurcationToASCII]: quick text rendering of a sweep
//
// None of these compute Lyapunov exponents; a period of -1 from
// [DetectPeriod] only means no short cycle was found.
package analysis
