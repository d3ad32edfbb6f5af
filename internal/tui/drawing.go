package tui

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
	"github.com/sinbaddoraji/Dream/internal/canvas"
	"github.com/sinbaddoraji/Dream/internal/core"
	"github.com/sinbaddoraji/Dream/internal/core/selection"
	"github.com/sinbaddoraji/Dream/internal/logger"
	"github.com/sinbaddoraji/Dream/internal/scene"
	"github.com/sinbaddoraji/Dream/internal/theme"
	"github.com/sinbaddoraji/Dream/internal/types"
)

const (
	glyphFill        = '░'
	glyphHandle      = '■'
	glyphRotate      = '●'
	glyphHorizontal  = '─'
	glyphVertical    = '│'
	glyphRising      = '╱'
	glyphFalling     = '╲'
	glyphCornerTL    = '┌'
	glyphCornerTR    = '┐'
	glyphCornerBL    = '└'
	glyphCornerBR    = '┘'
	glyphBorderHoriz = '─'
	glyphBorderVert  = '│'
)

// overlayStyles maps overlay node names to theme styles.
var overlayStyles = map[string]string{
	"marquee": theme.StyleMarquee,
	"lasso":   theme.StyleLasso,
	"preview": theme.StylePreview,
	"pen":     theme.StylePreview,
}

// DrawCanvas draws the page, every visible object, the selection handles and
// the overlay into the viewport area of screen.
func DrawCanvas(screen tcell.Screen, editor *core.Editor, vp Viewport, activeTheme *theme.Theme) {
	if activeTheme == nil {
		logger.Warnf("DrawCanvas called with nil theme, using built-in default.")
		activeTheme = &theme.DreamDark
	}
	if vp.Width <= 0 || vp.Height <= 0 {
		return
	}
	r := renderer{screen: screen, vp: vp, theme: activeTheme}

	w, h := editor.Size()
	r.drawPage(types.Rect{Width: w, Height: h})

	store := editor.Store()
	selected := make(map[string]bool)
	for _, id := range editor.SelectedIDs() {
		selected[id] = true
	}

	var labels []*canvas.Object
	for _, node := range editor.Content().Children() {
		obj, ok := store.Lookup(node)
		if !ok || !obj.Visible || node.Hidden {
			continue
		}
		r.drawFill(node)
		styleName := theme.StyleObject
		if selected[obj.ID] {
			styleName = theme.StyleSelected
		}
		r.drawOutline(node.Outline(), node.Closed(), r.strokeStyle(styleName, node.Style.Stroke, selected[obj.ID]))
		if obj.Name != "" {
			labels = append(labels, obj)
		}
	}

	for _, node := range editor.Overlay().Children() {
		styleName, ok := overlayStyles[node.Name]
		if !ok || node.Hidden {
			continue
		}
		r.drawOutline(node.Outline(), node.Closed(), activeTheme.GetStyle(styleName))
	}

	if b, ok := editor.GestureBounds(); ok {
		r.drawHandles(b)
	} else if b := editor.SelectionBounds(); b != nil {
		r.drawHandles(*b)
	}

	for _, obj := range labels {
		b := obj.Bounds()
		x, y := vp.ToCell(types.Pt(b.X, b.Y))
		r.drawText(x, y-1, obj.Name, activeTheme.GetStyle(theme.StyleLabel))
	}
}

type renderer struct {
	screen tcell.Screen
	vp     Viewport
	theme  *theme.Theme
}

func (r renderer) set(x, y int, ch rune, style tcell.Style) {
	if r.vp.InBounds(x, y) {
		r.screen.SetContent(x, y, ch, nil, style)
	}
}

// drawPage fills the viewport with the default style, the page area with the
// canvas style and frames the page.
func (r renderer) drawPage(page types.Rect) {
	def := r.theme.GetStyle(theme.StyleDefault)
	bg := r.theme.GetStyle(theme.StyleCanvas)
	for y := 0; y < r.vp.Height; y++ {
		for x := 0; x < r.vp.Width; x++ {
			style := def
			if page.Contains(r.vp.ToCanvas(x, y)) {
				style = bg
			}
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}

	border := r.theme.GetStyle(theme.StyleCanvasBorder)
	x0, y0 := r.vp.ToCell(types.Pt(page.Left(), page.Top()))
	x1, y1 := r.vp.ToCell(types.Pt(page.Right(), page.Bottom()))
	x0, y0 = x0-1, y0-1
	for x := x0 + 1; x < x1+1; x++ {
		r.set(x, y0, glyphBorderHoriz, border)
		r.set(x, y1+1, glyphBorderHoriz, border)
	}
	for y := y0 + 1; y < y1+1; y++ {
		r.set(x0, y, glyphBorderVert, border)
		r.set(x1+1, y, glyphBorderVert, border)
	}
	r.set(x0, y0, glyphCornerTL, border)
	r.set(x1+1, y0, glyphCornerTR, border)
	r.set(x0, y1+1, glyphCornerBL, border)
	r.set(x1+1, y1+1, glyphCornerBR, border)
}

// drawFill shades every cell whose center lies inside a closed, filled node.
func (r renderer) drawFill(node *scene.Node) {
	if !node.Closed() || node.Style.Fill == "" {
		return
	}
	style := r.theme.GetStyle(theme.StyleObject)
	glyph := glyphFill
	if r.theme.UseObjectColors {
		if c, err := theme.ParseColor(node.Style.Fill); err == nil {
			style = style.Background(c)
			glyph = ' '
		}
	}

	b := node.Bounds()
	x0, y0 := r.vp.ToCell(types.Pt(b.Left(), b.Top()))
	x1, y1 := r.vp.ToCell(types.Pt(b.Right(), b.Bottom()))
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, r.vp.Width-1), min(y1, r.vp.Height-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if node.Contains(r.vp.ToCanvas(x, y)) {
				r.screen.SetContent(x, y, glyph, nil, style)
			}
		}
	}
}

// strokeStyle picks the outline style, using the object's own stroke color
// when the theme allows it and the object is not selected.
func (r renderer) strokeStyle(styleName, stroke string, selected bool) tcell.Style {
	style := r.theme.GetStyle(styleName)
	if selected || !r.theme.UseObjectColors || stroke == "" {
		return style
	}
	if c, err := theme.ParseColor(stroke); err == nil {
		return style.Foreground(c)
	}
	return style
}

// drawOutline samples each segment at half-cell steps and draws a line glyph
// matching the segment direction.
func (r renderer) drawOutline(pts []types.Point, closed bool, style tcell.Style) {
	if len(pts) == 0 {
		return
	}
	if len(pts) == 1 {
		x, y := r.vp.ToCell(pts[0])
		r.set(x, y, glyphHandle, style)
		return
	}
	n := len(pts) - 1
	if closed {
		n = len(pts)
	}
	for i := 0; i < n; i++ {
		r.drawSegment(pts[i], pts[(i+1)%len(pts)], style)
	}
}

func (r renderer) drawSegment(a, b types.Point, style tcell.Style) {
	stepX, stepY := r.vp.Step()
	d := b.Sub(a)
	glyph := segmentGlyph(d.X/stepX, d.Y/stepY)
	length := math.Hypot(d.X/stepX, d.Y/stepY)
	steps := int(math.Ceil(length*2)) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x, y := r.vp.ToCell(types.Pt(a.X+d.X*t, a.Y+d.Y*t))
		r.set(x, y, glyph, style)
	}
}

// segmentGlyph chooses a box-drawing glyph for a direction given in cells.
// The y axis points down.
func segmentGlyph(dx, dy float64) rune {
	ax, ay := math.Abs(dx), math.Abs(dy)
	switch {
	case ay <= ax*0.5:
		return glyphHorizontal
	case ax <= ay*0.5:
		return glyphVertical
	case (dx > 0) == (dy > 0):
		return glyphFalling
	default:
		return glyphRising
	}
}

func (r renderer) drawHandles(b selection.Bounds) {
	box := []types.Point{
		types.Pt(b.Left(), b.Top()),
		types.Pt(b.Right(), b.Top()),
		types.Pt(b.Right(), b.Bottom()),
		types.Pt(b.Left(), b.Bottom()),
	}
	r.drawOutline(box, true, r.theme.GetStyle(theme.StyleSelected))
	for _, h := range b.Handles {
		x, y := r.vp.ToCell(h.Point)
		if h.Type == selection.HandleRotate {
			r.set(x, y, glyphRotate, r.theme.GetStyle(theme.StyleRotateHandle))
			continue
		}
		r.set(x, y, glyphHandle, r.theme.GetStyle(theme.StyleHandle))
	}
}

// drawText writes text from (x, y) using grapheme widths, clipped to the viewport.
func (r renderer) drawText(x, y int, text string, style tcell.Style) {
	if y < 0 || y >= r.vp.Height {
		return
	}
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		w := gr.Width()
		if x+w > r.vp.Width {
			return
		}
		if runes := gr.Runes(); x >= 0 && len(runes) > 0 {
			r.screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += w
	}
}
