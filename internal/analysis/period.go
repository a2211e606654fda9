package analysis

import "math"

// DetectPeriod tests periods 1, 2, 4, ... up to maxPeriod and returns the
// first one under which the orbit repeats within tol. It returns -1 when no
// such period exists or the orbit is shorter than 2·maxPeriod.
func DetectPeriod(orbit []float64, tol float64, maxPeriod int) int {
	if maxPeriod < 1 || len(orbit) < 2*maxPeriod {
		return -1
	}

	for period := 1; period <= maxPeriod; period *= 2 {
		repeats := true
		for i := 0; i+period < len(orbit); i++ {
			if !(math.Abs(orbit[i]-orbit[i+period]) <= tol) {
				repeats = false
				break
			}
		}
		if repeats {
			return period
		}
	}
	return -1
}
