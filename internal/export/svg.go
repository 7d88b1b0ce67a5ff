package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/logofall/internal/field"
)

const (
	HighlightOpacity = 0.55
	IdleOpacity      = 0.15
)

// SnapshotToSVG draws one frame as an SVG document. Each particle becomes an
// absolutely positioned image; highlighted particles are drawn more opaque
// with a glow filter.
func SnapshotToSVG(ps []field.Particle, vp field.Viewport, size float64) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<defs>
<linearGradient id="bg" x1="0" y1="0" x2="1" y2="1">
<stop offset="0%%" stop-color="#10172a"/>
<stop offset="40%%" stop-color="#1e293b"/>
<stop offset="100%%" stop-color="#2563eb"/>
</linearGradient>
<filter id="glow"><feDropShadow dx="0" dy="4" stdDeviation="12" flood-color="#60a5fa"/></filter>
</defs>
<rect width="100%%" height="100%%" fill="url(#bg)"/>
<g>
`, vp.Width, vp.Height, vp.Width, vp.Height))

	for _, p := range ps {
		opacity := IdleOpacity
		filter := ""
		if p.Highlighted {
			opacity = HighlightOpacity
			filter = ` filter="url(#glow)"`
		}
		sb.WriteString(fmt.Sprintf(`<image href="%s" x="%.1f" y="%.1f" width="%.0f" height="%.0f" opacity="%.2f"%s><title>%s</title></image>
`, html.EscapeString(p.ImageRef), p.Position.X, p.Position.Y, size, size, opacity, filter, html.EscapeString(p.Label)))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrailToSVG draws the path of a single particle across recorded frames,
// breaking the path at respawns.
func TrailToSVG(points []field.Vec2, vp field.Viewport, size float64, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="`,
		vp.Width, vp.Height, vp.Width, vp.Height, html.EscapeString(strokeColor)))

	half := size / 2
	for i, p := range points {
		cmd := "L"
		if i == 0 || p.Y < points[i-1].Y {
			cmd = "M"
		}
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprintf("%s%.1f,%.1f", cmd, p.X+half, p.Y+half))
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
