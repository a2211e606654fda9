package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/san-kum/chaoslab/internal/dynamo"
)

// Trajectory is a computed run in tabular form, one row per sample.
type Trajectory struct {
	ID      string             `json:"id"`
	Engine  string             `json:"engine"`
	Params  map[string]float64 `json:"params"`
	Columns []string           `json:"columns"`
	Rows    [][]float64        `json:"rows"`
}

func newTrajectory(engine string, params map[string]float64, columns ...string) *Trajectory {
	return &Trajectory{ID: ulid.Make().String(), Engine: engine, Params: params, Columns: columns}
}

func FromPoints3(engine string, params map[string]float64, pts []dynamo.Point3) *Trajectory {
	t := newTrajectory(engine, params, "x", "y", "z")
	for _, p := range pts {
		t.Rows = append(t.Rows, []float64{p.X, p.Y, p.Z})
	}
	return t
}

func FromPoints2(engine string, params map[string]float64, pts []dynamo.Point2) *Trajectory {
	t := newTrajectory(engine, params, "x", "y")
	for _, p := range pts {
		t.Rows = append(t.Rows, []float64{p.X, p.Y})
	}
	return t
}

// FromSeries tabulates a scalar sequence as (n, value).
func FromSeries(engine string, params map[string]float64, values []float64) *Trajectory {
	t := newTrajectory(engine, params, "n", "x")
	for i, v := range values {
		t.Rows = append(t.Rows, []float64{float64(i), v})
	}
	return t
}

// Plane projects rows onto columns i and j. Rows too short for either column
// are skipped.
func (t *Trajectory) Plane(i, j int) []dynamo.Point2 {
	pts := make([]dynamo.Point2, 0, len(t.Rows))
	for _, r := range t.Rows {
		if i < len(r) && j < len(r) {
			pts = append(pts, dynamo.Point2{X: r[i], Y: r[j]})
		}
	}
	return pts
}

// WriteJSON encodes t as indented JSON. NaN and Inf samples are written as
// null since JSON has no encoding for them.
func WriteJSON(w io.Writer, t *Trajectory) error {
	type row []*float64
	out := struct {
		*Trajectory
		Rows []row `json:"rows"`
	}{Trajectory: t, Rows: make([]row, len(t.Rows))}
	for i, r := range t.Rows {
		out.Rows[i] = make(row, len(r))
		for j := range r {
			if v := r[j]; v == v && v-v == 0 {
				out.Rows[i][j] = &r[j]
			}
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteCSV writes a header row followed by one record per sample.
func WriteCSV(w io.Writer, t *Trajectory) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	rec := make([]string, len(t.Columns))
	for _, r := range t.Rows {
		for i := range rec {
			rec[i] = ""
			if i < len(r) {
				rec[i] = strconv.FormatFloat(r[i], 'g', -1, 64)
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SortedParams formats params as "k=v" pairs in key order.
func SortedParams(params map[string]float64) string {
	parts := make([]string, 0, len(params))
	for _, k := range slices.Sorted(maps.Keys(params)) {
		parts = append(parts, fmt.Sprintf("%s=%g", k, params[k]))
	}
	return strings.Join(parts, " ")
}

func WritePNG(w io.Writer, img *image.RGBA) error {
	if img == nil {
		return fmt.Errorf("export: %w: nil image", dynamo.ErrInvalidParameter)
	}
	return png.Encode(w, img)
}

// Save writes t, or img when t is nil, to path in the format its extension
// names. .svg draws the first two columns of t as a path.
func Save(path string, t *Trajectory, img *image.RGBA) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".png" && img != nil:
	case (ext == ".json" || ext == ".csv" || ext == ".svg") && t != nil:
	default:
		return fmt.Errorf("export: unsupported output %q", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	switch ext {
	case ".png":
		return WritePNG(f, img)
	case ".csv":
		return WriteCSV(f, t)
	case ".svg":
		_, err = io.WriteString(f, PathSVG(t.Plane(0, 1), 800, 600, "#00ffff"))
		return err
	default:
		return WriteJSON(f, t)
	}
}
