package viz

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

const halfBlock = "▀"

func hexAt(img *image.RGBA, x, y int) string {
	off := img.PixOffset(x, y)
	p := img.Pix[off : off+3 : off+3]
	return colorful.Color{R: float64(p[0]) / 255, G: float64(p[1]) / 255, B: float64(p[2]) / 255}.Hex()
}

// HalfBlocks renders img as text, two pixel rows per line: each "▀" cell has
// the upper pixel as foreground and the lower one as background. Runs of
// identical cells share one styled span.
func HalfBlocks(img *image.RGBA) string {
	if img == nil {
		return ""
	}
	b := img.Bounds()
	var out strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		var run strings.Builder
		var runStyle lipgloss.Style
		runKey := ""
		flush := func() {
			if run.Len() > 0 {
				out.WriteString(runStyle.Render(run.String()))
				run.Reset()
			}
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			top := hexAt(img, x, y)
			bottom := ""
			if y+1 < b.Max.Y {
				bottom = hexAt(img, x, y+1)
			}
			if key := top + bottom; key != runKey {
				flush()
				runKey = key
				runStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(top))
				if bottom != "" {
					runStyle = runStyle.Background(lipgloss.Color(bottom))
				}
			}
			run.WriteString(halfBlock)
		}
		flush()
		out.WriteByte('\n')
	}
	return out.String()
}
