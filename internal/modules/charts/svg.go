package charts

import (
	"fmt"
	"html"
	"io"
	"strings"
)

// SVG renders the scene as a standalone <svg> fragment
func (s *Scene) SVG() string {
	var b strings.Builder
	_ = WriteSVG(&b, s)
	return b.String()
}

// WriteSVG writes the scene as an <svg> element. Markers carry their tooltip
// data in data-* attributes for the page script.
func WriteSVG(w io.Writer, s *Scene) error {
	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" class="chart" width="%d" height="%d" viewBox="0 0 %d %d">`,
		s.Width, s.Height, s.Width, s.Height)
	fmt.Fprintf(&b, `<g transform="translate(%d,%d)">`, s.Margin.Left, s.Margin.Top)

	writeAxis(&b, s.XAxis, s.InnerHeight)
	writeAxis(&b, s.YAxis, s.InnerHeight)

	if s.Line != nil {
		writePath(&b, s.Line)
	}
	if s.Overlay != nil {
		writePath(&b, s.Overlay)
	}

	for _, m := range s.Markers {
		fmt.Fprintf(&b, `<circle class="dot" cx="%s" cy="%s" r="%s" fill="%s" data-stock="%s" data-date="%s" data-price="%s"></circle>`,
			num(m.CX), num(m.CY), num(m.R), esc(m.Fill), esc(m.Stock), esc(m.Date), esc(m.Price))
	}

	if s.Caption != "" {
		fmt.Fprintf(&b, `<text class="caption" x="%s" y="%s" text-anchor="middle" fill="#666" font-family="sans-serif" font-size="14">%s</text>`,
			num(s.InnerWidth/2), num(s.InnerHeight/2), esc(s.Caption))
	}

	b.WriteString(`</g></svg>`)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeAxis(b *strings.Builder, a Axis, innerHeight float64) {
	switch a.Orient {
	case OrientBottom:
		fmt.Fprintf(b, `<g class="axis x-axis" transform="translate(0,%s)" fill="none" font-size="10" font-family="sans-serif" text-anchor="middle">`,
			num(innerHeight))
	default:
		b.WriteString(`<g class="axis y-axis" fill="none" font-size="10" font-family="sans-serif" text-anchor="end">`)
	}

	fmt.Fprintf(b, `<path class="domain" stroke="currentColor" d="%s"></path>`, a.Domain)

	for _, t := range a.Ticks {
		if a.Orient == OrientBottom {
			fmt.Fprintf(b, `<g class="tick" opacity="1" transform="translate(%s,0)"><line stroke="currentColor" y2="%d"></line><text fill="currentColor" y="%d" dy="0.71em">%s</text></g>`,
				num(t.Pos+crisp), tickSizeOuter, tickSizeOuter+3, esc(t.Label))
		} else {
			fmt.Fprintf(b, `<g class="tick" opacity="1" transform="translate(0,%s)"><line stroke="currentColor" x2="-%d"></line><text fill="currentColor" x="-%d" dy="0.32em">%s</text></g>`,
				num(t.Pos+crisp), tickSizeOuter, tickSizeOuter+3, esc(t.Label))
		}
	}

	b.WriteString(`</g>`)
}

func writePath(b *strings.Builder, p *Path) {
	fmt.Fprintf(b, `<path class="%s" fill="none" stroke="%s" stroke-width="%s"`, esc(p.Class), esc(p.Stroke), num(p.StrokeWidth))
	if p.Dash != "" {
		fmt.Fprintf(b, ` stroke-dasharray="%s"`, esc(p.Dash))
	}
	fmt.Fprintf(b, ` d="%s"></path>`, p.D)
}

func esc(s string) string {
	return html.EscapeString(s)
}
