package report

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/capacity-sim/capacity-sim/sim"
)

const (
	chartWidth  = 960
	chartHeight = 520
	chartMargin = 60

	waitColor   = "#d62728"
	marginColor = "#1f77b4"
	bestColor   = "#2ca02c"
)

// axis maps a data range onto a pixel span. A zero-width range maps to the span's midpoint.
type axis struct {
	lo, hi     float64
	pxLo, pxHi float64
}

func (a axis) at(v float64) float64 {
	if a.hi == a.lo {
		return (a.pxLo + a.pxHi) / 2
	}
	return a.pxLo + (v-a.lo)/(a.hi-a.lo)*(a.pxHi-a.pxLo)
}

// WriteSVGChart draws average wait and net margin against server count, with a
// dashed marker at the recommended capacity.
func WriteSVGChart(w io.Writer, results []sim.ScenarioResult, best sim.ScenarioResult) error {
	if len(results) == 0 {
		return sim.ErrNoResults
	}

	servers := make([]float64, len(results))
	waits := make([]float64, len(results))
	margins := make([]float64, len(results))
	for i, r := range results {
		servers[i] = float64(r.Servers)
		waits[i] = r.AvgWaitMinutes
		margins[i] = r.NetMarginUSD
	}

	plotLeft, plotRight := float64(chartMargin), float64(chartWidth-chartMargin)
	plotTop, plotBottom := float64(chartMargin), float64(chartHeight-chartMargin)

	x := axis{lo: slices.Min(servers), hi: slices.Max(servers), pxLo: plotLeft, pxHi: plotRight}
	yWait := axis{lo: 0, hi: slices.Max(waits) * 1.1, pxLo: plotBottom, pxHi: plotTop}
	yMargin := marginAxis(margins, plotBottom, plotTop)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+"\n", chartWidth, chartHeight)
	b.WriteString(`<rect width="100%" height="100%" fill="white"/>` + "\n")
	fmt.Fprintf(&b, `<text x="%d" y="30" text-anchor="middle" font-size="20" font-family="Arial">Capacity vs wait vs net margin</text>`+"\n", chartWidth/2)
	fmt.Fprintf(&b, `<line x1="%.0f" y1="%.0f" x2="%.0f" y2="%.0f" stroke="#333"/>`+"\n", plotLeft, plotBottom, plotRight, plotBottom)
	fmt.Fprintf(&b, `<line x1="%.0f" y1="%.0f" x2="%.0f" y2="%.0f" stroke="#333"/>`+"\n", plotLeft, plotTop, plotLeft, plotBottom)
	fmt.Fprintf(&b, `<line x1="%.0f" y1="%.0f" x2="%.0f" y2="%.0f" stroke="#333"/>`+"\n", plotRight, plotTop, plotRight, plotBottom)
	fmt.Fprintf(&b, `<polyline fill="none" stroke="%s" stroke-width="3" points="%s"/>`+"\n", waitColor, points(servers, waits, x, yWait))
	fmt.Fprintf(&b, `<polyline fill="none" stroke="%s" stroke-width="3" points="%s"/>`+"\n", marginColor, points(servers, margins, x, yMargin))

	for _, s := range servers {
		fmt.Fprintf(&b, `<text x="%.1f" y="%.0f" text-anchor="middle" font-size="12">%.0f</text>`+"\n", x.at(s), plotBottom+20, s)
	}

	bx := x.at(float64(best.Servers))
	fmt.Fprintf(&b, `<line x1="%.1f" y1="%.0f" x2="%.1f" y2="%.0f" stroke="%s" stroke-dasharray="5,5"/>`+"\n", bx, plotTop, bx, plotBottom, bestColor)
	fmt.Fprintf(&b, `<text x="%.1f" y="%.0f" font-size="12" fill="%s">Recommended: %d servers</text>`+"\n", bx+8, plotTop+20, bestColor, best.Servers)
	fmt.Fprintf(&b, `<text x="70" y="55" font-size="12" fill="%s">Average wait (min)</text>`+"\n", waitColor)
	fmt.Fprintf(&b, `<text x="70" y="72" font-size="12" fill="%s">Net margin (USD)</text>`+"\n", marginColor)
	b.WriteString("</svg>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// marginAxis pads the margin range by 10% of its span on each side.
func marginAxis(margins []float64, pxLo, pxHi float64) axis {
	lo, hi := slices.Min(margins), slices.Max(margins)
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = 1
	}
	return axis{lo: lo - pad, hi: hi + pad, pxLo: pxLo, pxHi: pxHi}
}

func points(xs, ys []float64, x, y axis) string {
	parts := make([]string, len(xs))
	for i := range xs {
		parts[i] = fmt.Sprintf("%.1f,%.1f", x.at(xs[i]), y.at(ys[i]))
	}
	return strings.Join(parts, " ")
}
