package fractal_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/chaoslab/internal/dynamo"
	"github.com/san-kum/chaoslab/internal/fractal"
)

var _ = Describe("Mandelbrot", func() {
	var m *fractal.Mandelbrot

	BeforeEach(func() {
		var err error
		m, err = fractal.NewMandelbrot(fractal.DefaultMandelbrotParams())
		Expect(err).NotTo(HaveOccurred())
	})

	It("keeps the origin bounded for the whole budget", func() {
		res := m.CalculatePoint(fractal.Complex{})
		Expect(res.Escaped).To(BeFalse())
		Expect(res.Iterations).To(Equal(100))
	})

	It("detects escape of c=2 on the iterate after the boundary", func() {
		res := m.CalculatePoint(fractal.Complex{Re: 2})
		Expect(res.Escaped).To(BeTrue())
		Expect(res.Iterations).To(Equal(1))
	})

	It("reports points far outside as escaping immediately", func() {
		res := m.CalculatePoint(fractal.Complex{Re: 3, Im: 3})
		Expect(res.Escaped).To(BeTrue())
		Expect(res.Iterations).To(Equal(0))
	})

	It("only stops early on escape", func() {
		for _, p := range []fractal.Complex{{Re: -1}, {Re: 0.3, Im: 0.5}, {Re: -0.75, Im: 0.1}, {Re: 0.26}} {
			res := m.CalculatePoint(p)
			if !res.Escaped {
				Expect(res.Iterations).To(Equal(m.Params().MaxIterations))
			} else {
				Expect(res.Iterations).To(BeNumerically("<", m.Params().MaxIterations))
			}
		}
	})

	It("terminates on overflowing and NaN inputs", func() {
		res := m.CalculatePoint(fractal.Complex{Re: math.NaN()})
		Expect(res.Escaped).To(BeFalse())
		Expect(res.Iterations).To(Equal(100))

		res = m.CalculatePoint(fractal.Complex{Re: math.Inf(1)})
		Expect(res.Escaped).To(BeTrue())
	})

	It("pins the escape radius to 2", func() {
		p := fractal.DefaultMandelbrotParams()
		p.EscapeRadius = 10
		Expect(m.ReplaceParams(p)).To(Succeed())
		Expect(m.Params().EscapeRadius).To(Equal(fractal.MandelbrotRadius))
		Expect(m.SetParam("escape_radius", 5)).To(MatchError(dynamo.ErrUnknownParameter))
	})

	It("batches in input order", func() {
		pts := []fractal.Complex{{}, {Re: 2}, {Re: 3, Im: 3}}
		out := m.CalculateBatch(pts)
		Expect(out).To(HaveLen(3))
		for i, p := range pts {
			Expect(out[i]).To(Equal(m.CalculatePoint(p)))
		}
	})

	Describe("coordinate mapping", func() {
		It("maps the raster center onto the view center", func() {
			z := m.ScreenToComplex(400, 300, 800, 600)
			Expect(z.Re).To(BeNumerically("~", -0.5, 1e-12))
			Expect(z.Im).To(BeNumerically("~", 0, 1e-12))
		})

		It("spans 4/zoom vertically and keeps the aspect ratio", func() {
			top := m.ScreenToComplex(0, 0, 800, 400)
			bottom := m.ScreenToComplex(800, 400, 800, 400)
			Expect(bottom.Im - top.Im).To(BeNumerically("~", 4, 1e-12))
			Expect(bottom.Re - top.Re).To(BeNumerically("~", 8, 1e-12))
		})

		It("inverts within half a pixel", func() {
			Expect(m.UpdateParams(map[string]float64{"zoom": 37.5, "center_x": -0.74, "center_y": 0.13})).To(Succeed())
			for _, px := range [][2]float64{{0, 0}, {17, 311}, {639, 479}, {320, 240}} {
				z := m.ScreenToComplex(px[0], px[1], 640, 480)
				x, y := m.ComplexToScreen(z, 640, 480)
				Expect(math.Abs(x - px[0])).To(BeNumerically("<", 0.5))
				Expect(math.Abs(y - px[1])).To(BeNumerically("<", 0.5))
			}
		})

		It("zooms around the chosen pixel", func() {
			want := m.ScreenToComplex(100, 50, 400, 300)
			Expect(m.ZoomAt(100, 50, 400, 300, 2)).To(Succeed())
			Expect(m.Params().Zoom).To(Equal(2.0))
			Expect(m.Params().CenterX).To(Equal(want.Re))
			Expect(m.Params().CenterY).To(Equal(want.Im))
			Expect(m.ZoomAt(0, 0, 400, 300, 0)).To(MatchError(dynamo.ErrInvalidParameter))
		})
	})

	Describe("colors", func() {
		It("paints members black", func() {
			Expect(m.IterationsToColor(100, false)).To(Equal(fractal.Black))
			Expect(m.IterationsToColor(3, false)).To(Equal(fractal.Black))
		})

		It("uses the HSV palette", func() {
			Expect(m.IterationsToColor(0, true)).To(Equal(fractal.ColorRGB{R: 204, G: 41, B: 41}))
		})

		It("spreads escape counts over distinct colors", func() {
			Expect(m.IterationsToColor(25, true)).NotTo(Equal(m.IterationsToColor(50, true)))
		})
	})

	Describe("presets", func() {
		It("applies a known preset", func() {
			Expect(m.ApplyPreset("seahorse")).To(BeTrue())
			p := m.Params()
			Expect(p.CenterX).To(Equal(-0.75))
			Expect(p.Zoom).To(Equal(50.0))
			Expect(p.MaxIterations).To(Equal(150))
		})

		It("ignores unknown names", func() {
			before := m.Params()
			Expect(m.ApplyPreset("nope")).To(BeFalse())
			Expect(m.Params()).To(Equal(before))
		})

		It("lists presets sorted", func() {
			Expect(m.Presets()).To(Equal([]string{"classic", "elephant", "minibrot", "seahorse", "spiral"}))
		})
	})

	Describe("parameters", func() {
		DescribeTable("rejects structurally invalid values",
			func(name string, v float64) {
				before := m.Params()
				Expect(m.SetParam(name, v)).To(MatchError(dynamo.ErrInvalidParameter))
				Expect(m.Params()).To(Equal(before))
			},
			Entry("zero iterations", "max_iterations", 0.0),
			Entry("fractional iterations", "max_iterations", 2.5),
			Entry("negative zoom", "zoom", -1.0),
			Entry("zero color intensity", "color_intensity", 0.0),
		)

		It("rejects an invalid constructor record", func() {
			p := fractal.DefaultMandelbrotParams()
			p.Zoom = 0
			_, err := fractal.NewMandelbrot(p)
			Expect(err).To(MatchError(dynamo.ErrInvalidParameter))
		})

		It("clones independently", func() {
			c := m.Clone()
			Expect(c.SetParam("zoom", 8)).To(Succeed())
			Expect(m.Params().Zoom).To(Equal(1.0))
		})
	})
})

var _ = Describe("Julia", func() {
	newJulia := func(re, im float64) *fractal.Julia {
		p := fractal.DefaultJuliaParams()
		p.CReal, p.CImag = re, im
		j, err := fractal.NewJulia(p)
		Expect(err).NotTo(HaveOccurred())
		return j
	}

	It("seeds the orbit from the queried point", func() {
		j := newJulia(0, 0)
		res := j.CalculatePoint(fractal.Complex{Re: 0.5})
		Expect(res.Escaped).To(BeFalse())

		res = j.CalculatePoint(fractal.Complex{Re: 2.5})
		Expect(res.Escaped).To(BeTrue())
		Expect(res.Iterations).To(Equal(0))
		Expect(res.Final).To(Equal(fractal.Complex{Re: 2.5}))
	})

	It("honors a configurable escape radius", func() {
		j := newJulia(0, 0)
		Expect(j.SetParam("escape_radius", 3)).To(Succeed())
		res := j.CalculatePoint(fractal.Complex{Re: 2.5})
		Expect(res.Escaped).To(BeTrue())
		Expect(res.Iterations).To(Equal(1))
	})

	DescribeTable("connectivity agrees with the orbit of the origin",
		func(re, im float64) {
			j := newJulia(re, im)
			Expect(j.IsConnected()).To(Equal(!j.CalculatePoint(fractal.Complex{}).Escaped))
		},
		Entry("dragon", -0.8, 0.156),
		Entry("basilica", -1.0, 0.0),
		Entry("dust", 0.5, 0.5),
		Entry("origin", 0.0, 0.0),
	)

	DescribeTable("describes the set",
		func(re, im float64, want string) {
			Expect(newJulia(re, im).SetDescription()).To(Equal(want))
		},
		Entry("small c", -0.1, 0.1, "connected: simple"),
		Entry("basilica", -1.0, 0.0, "connected: complex boundary"),
		Entry("outside the Mandelbrot set", 1.0, 1.0, "dust-type (disconnected)"),
	)

	It("keeps every escaped color in range and members black", func() {
		j := newJulia(-0.8, 0.156)
		Expect(j.IterationsToColor(100, false)).To(Equal(fractal.Black))
		for it := 0; it < j.Params().MaxIterations; it++ {
			c := j.IterationsToColor(it, true)
			Expect(c).NotTo(Equal(fractal.Black))
		}
		c := j.IterationsToColor(0, true)
		Expect(c.G).To(Equal(c.B))
		Expect(c.R).To(BeNumerically("<", c.G))
	})

	It("applies presets while keeping the escape radius", func() {
		j := newJulia(0, 0)
		Expect(j.SetParam("escape_radius", 4)).To(Succeed())
		Expect(j.ApplyPreset("lightning")).To(BeTrue())
		Expect(j.Params().C()).To(Equal(fractal.Complex{Re: -0.1, Im: 0.8}))
		Expect(j.Params().EscapeRadius).To(Equal(4.0))
		Expect(j.ApplyPreset("mandelbrot")).To(BeFalse())
		Expect(j.Presets()).To(ContainElements("dragon", "spiral", "dendrite", "lightning", "classic", "connected"))
	})

	It("exposes c through the parameter map", func() {
		j := newJulia(-0.4, 0.6)
		Expect(j.GetParams()).To(HaveKeyWithValue("c_real", -0.4))
		Expect(j.UpdateParams(map[string]float64{"c_imag": 0.5, "bogus": 1})).To(MatchError(dynamo.ErrUnknownParameter))
		Expect(j.Params().CImag).To(Equal(0.6))
	})
})
