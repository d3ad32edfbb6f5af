// Package theme maps canvas and UI elements to terminal styles.
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/sinbaddoraji/Dream/internal/logger"
)

// Style names looked up by the renderer and the status bar.
const (
	StyleDefault      = "Default"
	StyleCanvas       = "Canvas"
	StyleCanvasBorder = "CanvasBorder"
	StyleObject       = "Object"
	StyleSelected     = "Selected"
	StyleHandle       = "Handle"
	StyleRotateHandle = "Handle.rotate"
	StyleMarquee      = "Marquee"
	StyleLasso        = "Lasso"
	StylePreview      = "Preview"
	StyleLabel        = "Label"

	StyleStatusBar         = "StatusBar"
	StyleStatusBarModified = "StatusBarModified"
	StyleStatusBarMessage  = "StatusBarMessage"
	StyleStatusBarCommand  = "StatusBarCommand"
)

// Theme is a named set of styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style

	// UseObjectColors paints outlines in each object's own stroke color
	// instead of the Object style.
	UseObjectColors bool
}

// GetStyle returns the style for name, falling back to the part before the
// first dot and then to Default.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dot := strings.Index(name, "."); dot != -1 {
		base := name[:dot]
		if style, ok := t.Styles[base]; ok {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, using base '%s'", t.Name, name, base)
			return style
		}
	}

	if def, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return def
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// DreamDark is the built-in dark theme.
var DreamDark = newDreamDark()

// DreamLight is the built-in light theme.
var DreamLight = newDreamLight()

func newDreamDark() Theme {
	bg := tcell.NewHexColor(0x1f2329)
	panel := tcell.NewHexColor(0x2a2f38)
	fg := tcell.NewHexColor(0xc5cdd9)
	muted := tcell.NewHexColor(0x5c6370)
	accent := tcell.NewHexColor(0x0066ff) // Selection accent
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)
	magenta := tcell.NewHexColor(0xc678dd)

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(fg)
	canvas := tcell.StyleDefault.Background(bg).Foreground(fg)

	return Theme{
		Name:            "Dream Dark",
		IsDark:          true,
		UseObjectColors: true,
		Styles: map[string]tcell.Style{
			StyleDefault:      base,
			StyleCanvas:       canvas,
			StyleCanvasBorder: base.Foreground(muted),
			StyleObject:       canvas.Foreground(fg),
			StyleSelected:     canvas.Foreground(accent).Bold(true),
			StyleHandle:       tcell.StyleDefault.Background(accent).Foreground(tcell.ColorWhite),
			StyleRotateHandle: tcell.StyleDefault.Background(magenta).Foreground(tcell.ColorWhite),
			StyleMarquee:      canvas.Foreground(accent),
			StyleLasso:        canvas.Foreground(green),
			StylePreview:      canvas.Foreground(yellow),
			StyleLabel:        canvas.Foreground(muted).Italic(true),

			StyleStatusBar:         tcell.StyleDefault.Background(panel).Foreground(fg),
			StyleStatusBarModified: tcell.StyleDefault.Background(panel).Foreground(yellow),
			StyleStatusBarMessage:  tcell.StyleDefault.Background(panel).Foreground(fg).Bold(true),
			StyleStatusBarCommand:  tcell.StyleDefault.Background(panel).Foreground(green).Bold(true),
		},
	}
}

func newDreamLight() Theme {
	bg := tcell.NewHexColor(0xfafafa)
	panel := tcell.NewHexColor(0xe5e5e6)
	fg := tcell.NewHexColor(0x383a42)
	muted := tcell.NewHexColor(0xa0a1a7)
	accent := tcell.NewHexColor(0x0066ff)
	orange := tcell.NewHexColor(0xc18401)
	green := tcell.NewHexColor(0x50a14f)

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(fg)
	canvas := tcell.StyleDefault.Background(bg).Foreground(fg)

	return Theme{
		Name:            "Dream Light",
		UseObjectColors: true,
		Styles: map[string]tcell.Style{
			StyleDefault:      base,
			StyleCanvas:       canvas,
			StyleCanvasBorder: base.Foreground(muted),
			StyleObject:       canvas,
			StyleSelected:     canvas.Foreground(accent).Bold(true),
			StyleHandle:       tcell.StyleDefault.Background(accent).Foreground(tcell.ColorWhite),
			StyleMarquee:      canvas.Foreground(accent),
			StyleLasso:        canvas.Foreground(green),
			StylePreview:      canvas.Foreground(orange),
			StyleLabel:        canvas.Foreground(muted).Italic(true),

			StyleStatusBar:         tcell.StyleDefault.Background(panel).Foreground(fg),
			StyleStatusBarModified: tcell.StyleDefault.Background(panel).Foreground(orange),
			StyleStatusBarMessage:  tcell.StyleDefault.Background(panel).Foreground(fg).Bold(true),
			StyleStatusBarCommand:  tcell.StyleDefault.Background(panel).Foreground(green).Bold(true),
		},
	}
}
