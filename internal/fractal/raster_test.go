package fractal_test

import (
	"image"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/chaoslab/internal/dynamo"
	"github.com/san-kum/chaoslab/internal/fractal"
)

var _ = Describe("Raster", func() {
	var m *fractal.Mandelbrot

	BeforeEach(func() {
		var err error
		m, err = fractal.NewMandelbrot(fractal.DefaultMandelbrotParams())
		Expect(err).NotTo(HaveOccurred())
	})

	It("allocates an opaque RGBA8888 buffer", func() {
		img, err := fractal.NewImage(8, 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(img.Stride).To(Equal(32))
		Expect(img.Pix).To(HaveLen(128))
		for i := 3; i < len(img.Pix); i += 4 {
			Expect(img.Pix[i]).To(Equal(uint8(255)))
		}
	})

	DescribeTable("rejects empty rasters",
		func(w, h int) {
			_, err := fractal.NewImage(w, h)
			Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
		},
		Entry("zero width", 0, 10),
		Entry("zero height", 10, 0),
		Entry("negative", -1, -1),
	)

	It("writes only the requested rows", func() {
		img, _ := fractal.NewImage(16, 12)
		sentinel := make([]byte, len(img.Pix))
		for i := range img.Pix {
			img.Pix[i] = 7
			sentinel[i] = 7
		}

		n, err := m.ComputeRows(img, 4, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(3))

		for y := 0; y < 12; y++ {
			row := img.Pix[y*img.Stride : (y+1)*img.Stride]
			want := sentinel[y*img.Stride : (y+1)*img.Stride]
			if y >= 4 && y < 7 {
				Expect(row).NotTo(Equal(want))
			} else {
				Expect(row).To(Equal(want))
			}
		}
	})

	It("clips chunks that run past the bottom", func() {
		img, _ := fractal.NewImage(4, 5)
		n, err := m.ComputeRows(img, 3, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(2))

		n, err = m.ComputeRows(img, 9, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(0))

		_, err = m.ComputeRows(img, -1, 1)
		Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
	})

	It("produces the same pixels whether computed by rows or tiles", func() {
		byRows, err := m.Render(20, 15)
		Expect(err).NotTo(HaveOccurred())

		byTiles, _ := fractal.NewImage(20, 15)
		for _, t := range fractal.Tiles(20, 15, 6) {
			Expect(m.ComputeTile(byTiles, t)).To(Succeed())
		}
		Expect(byTiles.Pix).To(Equal(byRows.Pix))
	})

	It("colors each pixel from its mapped point", func() {
		img, err := m.Render(10, 10)
		Expect(err).NotTo(HaveOccurred())

		z := m.ScreenToComplex(3, 7, 10, 10)
		res := m.CalculatePoint(z)
		want := m.IterationsToColor(res.Iterations, res.Escaped)

		off := img.PixOffset(3, 7)
		Expect(img.Pix[off : off+4]).To(Equal([]byte{want.R, want.G, want.B, 255}))
	})

	It("honors a sub-image origin", func() {
		full, _ := m.Render(12, 12)
		sub := image.NewRGBA(image.Rect(100, 200, 112, 212))
		Expect(m.ComputeTile(sub, fractal.Tile{W: 12, H: 12})).To(Succeed())
		Expect(sub.Pix).To(Equal(full.Pix))
	})

	It("covers the raster exactly once with tiles", func() {
		tiles := fractal.Tiles(10, 7, 4)
		Expect(tiles).To(HaveLen(6))
		area := 0
		for _, t := range tiles {
			area += t.W * t.H
		}
		Expect(area).To(Equal(70))
		Expect(fractal.Tiles(0, 7, 4)).To(BeEmpty())
	})
})
