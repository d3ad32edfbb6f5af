package scene

import (
	"fmt"

	"github.com/gogpu/gg"
	"github.com/sinbaddoraji/Dream/internal/logger"
)

// Draw paints the node onto dc.
func (n *Node) Draw(dc *gg.Context) error {
	pts := n.Outline()
	if n.Hidden || len(pts) == 0 {
		return nil
	}
	defer dc.ClearPath()

	dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		dc.LineTo(p.X, p.Y)
	}
	if n.Closed() {
		dc.ClosePath()
		if n.Style.Fill != "" {
			dc.SetHexColor(n.Style.Fill)
			if err := dc.FillPreserve(); err != nil {
				return fmt.Errorf("fill %s: %w", n.Name, err)
			}
		}
	}
	if n.Style.Stroke != "" && n.Style.StrokeWidth > 0 {
		dc.SetHexColor(n.Style.Stroke)
		dc.SetLineWidth(n.Style.StrokeWidth)
		if len(n.Style.Dash) > 0 {
			dc.SetDash(n.Style.Dash...)
			defer dc.ClearDash()
		}
		if err := dc.StrokePreserve(); err != nil {
			return fmt.Errorf("stroke %s: %w", n.Name, err)
		}
	}
	return nil
}

// Draw paints every child of a visible layer in order.
func (l *Layer) Draw(dc *gg.Context) error {
	if !l.Visible {
		return nil
	}
	for _, n := range l.children {
		if err := n.Draw(dc); err != nil {
			return err
		}
	}
	return nil
}

// Render rasterizes layers onto a new width x height context filled with background.
// The caller owns the returned context and must Close it.
func Render(width, height int, background string, layers ...*Layer) (*gg.Context, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	dc := gg.NewContext(width, height)
	if background != "" {
		dc.ClearWithColor(gg.Hex(background))
	}
	for _, l := range layers {
		if err := l.Draw(dc); err != nil {
			_ = dc.Close()
			return nil, err
		}
	}
	return dc, nil
}

// Export renders layers and writes the result as a PNG file.
func Export(path string, width, height int, background string, layers ...*Layer) error {
	dc, err := Render(width, height, background, layers...)
	if err != nil {
		return err
	}
	defer dc.Close()

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save png %s: %w", path, err)
	}
	logger.Infof("Scene: exported %dx%d canvas to %s", width, height, path)
	return nil
}
