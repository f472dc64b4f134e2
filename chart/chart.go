// Package chart renders benchmark series as PNG line charts.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"maps"
	"os"
	"slices"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/calvinalkan/matbench"
)

// Defaults used when the corresponding [Options] field is zero.
const (
	DefaultWidth  = 12 * vg.Inch
	DefaultHeight = 6 * vg.Inch
	DefaultDPI    = 96
)

// errNonPositive is returned when a log axis would receive a value <= 0.
var errNonPositive = errors.New("log axis requires positive values")

// Markers is the fixed glyph palette. The i-th label in the sorted label
// list gets Markers[i % len(Markers)].
var Markers = []draw.GlyphDrawer{
	draw.CircleGlyph{},
	draw.BoxGlyph{},
	draw.TriangleGlyph{},
	draw.PyramidGlyph{},
	draw.RingGlyph{},
	draw.SquareGlyph{},
	draw.CrossGlyph{},
	draw.PlusGlyph{},
}

// paletteName is the qualitative brewer palette lines are colored from.
const (
	paletteName   = "Set1"
	paletteColors = 9
)

// Options controls titles, axes, and output size.
type Options struct {
	Title  string
	XLabel string
	YLabel string

	// LogX and LogY switch the axis to a logarithmic scale.
	// All values on that axis must be > 0.
	LogX bool
	LogY bool

	// XTicks places labeled ticks at exactly these x values.
	// If empty, ticks are chosen automatically.
	XTicks []float64

	// Order lists labels that are drawn first, in this order. Remaining
	// labels follow in [matbench.SortLabels] order.
	Order []string

	// LegendLeft places the legend on the left edge; LegendBottom on the bottom.
	LegendLeft   bool
	LegendBottom bool

	// Width and Height of the image. Zero uses DefaultWidth/DefaultHeight.
	Width  vg.Length
	Height vg.Length
	// DPI of the raster output. Zero uses DefaultDPI.
	DPI int
}

// MarkerFor returns the glyph for the label at position idx of the sorted label list.
func MarkerFor(idx int) draw.GlyphDrawer {
	return Markers[idx%len(Markers)]
}

// Labels returns the labels of series in drawing order.
func Labels(series map[string]plotter.XYs, order []string) []string {
	return matbench.OrderLabels(slices.Collect(maps.Keys(series)), order)
}

// Render draws one line per label and writes the chart to path as PNG,
// overwriting any existing file. The format is PNG regardless of the
// path's extension.
func Render(path string, series map[string]plotter.XYs, opts Options) error {
	p, err := Build(series, opts)
	if err != nil {
		return err
	}

	return Save(p, path, opts)
}

// Build assembles the plot without writing it.
func Build(series map[string]plotter.XYs, opts Options) (*plot.Plot, error) {
	if len(series) == 0 {
		return nil, errors.New("no series to plot")
	}

	labels := Labels(series, opts.Order)

	for _, label := range labels {
		err := checkLogAxes(label, series[label], opts)
		if err != nil {
			return nil, err
		}
	}

	pal, err := brewer.GetPalette(brewer.TypeQualitative, paletteName, paletteColors)
	if err != nil {
		return nil, fmt.Errorf("load palette: %w", err)
	}

	colors := pal.Colors()

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel

	p.Add(plotter.NewGrid())

	if opts.LogX {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	if opts.LogY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	if len(opts.XTicks) > 0 {
		p.X.Tick.Marker = constantTicks(opts.XTicks)
	}

	p.Legend.Top = !opts.LegendBottom
	p.Legend.Left = opts.LegendLeft

	for idx, label := range labels {
		pts := sortedCopy(series[label])

		line, scatter, lineErr := plotter.NewLinePoints(pts)
		if lineErr != nil {
			return nil, fmt.Errorf("series %q: %w", label, lineErr)
		}

		c := colorFor(colors, idx)

		line.Color = c
		line.Width = vg.Points(1.5)
		scatter.Color = c
		scatter.Shape = MarkerFor(idx)
		scatter.Radius = vg.Points(3)

		p.Add(line, scatter)
		p.Legend.Add(label, line, scatter)
	}

	if opts.LogX {
		widenLogAxis(&p.X)
	}

	if opts.LogY {
		widenLogAxis(&p.Y)
	}

	return p, nil
}

// widenLogAxis spreads a single-value log axis over one octave each way.
// plot pads an empty range by ±1, which can reach zero on a log scale.
func widenLogAxis(axis *plot.Axis) {
	if axis.Min == axis.Max {
		axis.Min /= 2
		axis.Max *= 2
	}
}

// Save writes p to path as PNG with the size and DPI from opts.
func Save(p *plot.Plot, path string, opts Options) error {
	width, height, dpi := opts.Width, opts.Height, opts.DPI
	if width <= 0 {
		width = DefaultWidth
	}

	if height <= 0 {
		height = DefaultHeight
	}

	if dpi <= 0 {
		dpi = DefaultDPI
	}

	canvas := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(dpi))
	p.Draw(draw.New(canvas))

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}

	_, writeErr := vgimg.PngCanvas{Canvas: canvas}.WriteTo(file)
	closeErr := file.Close()

	if writeErr != nil {
		return fmt.Errorf("write chart %s: %w", path, writeErr)
	}

	if closeErr != nil {
		return fmt.Errorf("close chart %s: %w", path, closeErr)
	}

	return nil
}

func checkLogAxes(label string, pts plotter.XYs, opts Options) error {
	for _, pt := range pts {
		if opts.LogX && pt.X <= 0 {
			return fmt.Errorf("series %q: x=%v: %w", label, pt.X, errNonPositive)
		}

		if opts.LogY && pt.Y <= 0 {
			return fmt.Errorf("series %q: y=%v: %w", label, pt.Y, errNonPositive)
		}
	}

	if opts.LogX {
		for _, x := range opts.XTicks {
			if x <= 0 {
				return fmt.Errorf("x tick %v: %w", x, errNonPositive)
			}
		}
	}

	return nil
}

func colorFor(colors []color.Color, idx int) color.Color {
	if len(colors) == 0 {
		return color.Black
	}

	return colors[idx%len(colors)]
}

func constantTicks(values []float64) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, len(values))
	for i, v := range values {
		ticks[i] = plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)}
	}

	return ticks
}

// sortedCopy returns pts ordered by X so lines are drawn left to right.
func sortedCopy(pts plotter.XYs) plotter.XYs {
	out := slices.Clone(pts)
	slices.SortStableFunc(out, func(a, b plotter.XY) int {
		switch {
		case a.X < b.X:
			return -1
		case a.X > b.X:
			return 1
		default:
			return 0
		}
	})

	return out
}
