package analysis

import "strings"

// BifurcationPoint holds the long-run values recorded for one parameter value.
type BifurcationPoint struct {
	Param  float64
	Values []float64
}

// MapFunc is one application of a 1D map with parameter r.
type MapFunc func(r, x float64) float64

// SweepOptions configures MapBifurcation.
type SweepOptions struct {
	ParamMin, ParamMax float64
	Columns            int
	Transient          int
	Record             int
	X0                 float64
}

// MapBifurcation sweeps Columns parameter values r_i = min + (max-min)·i/Columns.
// For each it discards Transient iterations from X0 and then records the next
// Record values in order. Values are not deduplicated.
func MapBifurcation(f MapFunc, opts SweepOptions) []BifurcationPoint {
	if opts.Columns <= 0 {
		return []BifurcationPoint{}
	}
	record := max(opts.Record, 0)

	results := make([]BifurcationPoint, opts.Columns)
	span := opts.ParamMax - opts.ParamMin
	for i := range results {
		r := opts.ParamMin + span*float64(i)/float64(opts.Columns)

		x := opts.X0
		for j := 0; j < opts.Transient; j++ {
			x = f(r, x)
		}

		values := make([]float64, record)
		for j := range values {
			x = f(r, x)
			values[j] = x
		}
		results[i] = BifurcationPoint{Param: r, Values: values}
	}
	return results
}

// BifurcationToASCII plots a sweep into a width×height block of text, one
// column per sweep column scaled to fit.
func BifurcationToASCII(data []BifurcationPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	foundFirst := false
	for _, p := range data {
		for _, v := range p.Values {
			if v != v {
				continue
			}
			if !foundFirst {
				minVal, maxVal = v, v
				foundFirst = true
				continue
			}
			minVal = min(minVal, v)
			maxVal = max(maxVal, v)
		}
	}
	if !foundFirst {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for i, p := range data {
		col := i * width / len(data)
		if col >= width {
			col = width - 1
		}
		for _, v := range p.Values {
			if v != v {
				continue
			}
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}
