package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/internal/app"
	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/internal/whiteboard"
	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/pkg/colorutil"
	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/ui/prefs"
)

// paletteEntry maps a display name to the hex value stored in documents
// and preferences.
type paletteEntry struct {
	name string
	hex  string
}

// palette is the color choice offered for pen, highlighter and text.
var palette = []paletteEntry{
	{"Ink", "#1a1a1a"},
	{"Black", "#000000"},
	{"Red", "#e53935"},
	{"Blue", "#1e88e5"},
	{"Green", "#43a047"},
	{"Yellow", "#ffeb3b"},
}

func paletteNames() []string {
	names := make([]string, len(palette))
	for i, p := range palette {
		names[i] = p.name
	}
	return names
}

func hexForName(name string) string {
	for _, p := range palette {
		if p.name == name {
			return p.hex
		}
	}
	return palette[0].hex
}

// nameForHex maps a stored hex value back to its palette name. The value is
// normalized first so a short or uppercase form still matches.
func nameForHex(hex string) string {
	if colorutil.IsHex(hex) {
		norm := colorutil.FormatHex(colorutil.ParseHex(hex, colorutil.Black))
		for _, p := range palette {
			if p.hex == norm {
				return p.name
			}
		}
	}
	return palette[0].name
}

var toolNames = []string{"Select", "Pen", "Eraser", "Highlighter", "Text"}

func toolForName(name string) whiteboard.Tool {
	switch name {
	case "Pen":
		return whiteboard.ToolPen
	case "Eraser":
		return whiteboard.ToolEraser
	case "Highlighter":
		return whiteboard.ToolHighlighter
	case "Text":
		return whiteboard.ToolText
	default:
		return whiteboard.ToolSelect
	}
}

// ToolsPanel holds the tool selector and the per-tool parameter controls.
// Every control writes through to the board controller immediately and
// mirrors the value into preferences so the next session starts the same.
type ToolsPanel struct {
	state     *app.State
	prefs     *prefs.Prefs
	container fyne.CanvasObject

	toolGroup *widget.RadioGroup
}

// NewToolsPanel creates a new tools panel. The stored preferences are
// applied to the controller before any control is built so the widgets
// and the board agree from the first frame.
func NewToolsPanel(state *app.State, appPrefs *prefs.Prefs) *ToolsPanel {
	tp := &ToolsPanel{
		state: state,
		prefs: appPrefs,
	}

	state.Board().SetSettings(loadSettings(appPrefs))
	stored := appPrefs.FloatWithFallback(prefs.KeyHighlighterOpacity, whiteboard.DefaultHighlighterOpacity)
	state.Board().SetHighlighterOpacity(stored)

	// Read back so the controls show the sanitized values.
	settings := state.Board().Settings()
	opacity := state.Board().Opacity()

	// Tool selector
	tp.toolGroup = widget.NewRadioGroup(toolNames, func(selected string) {
		state.SetTool(toolForName(selected))
	})
	tp.toolGroup.SetSelected(state.Board().Tool().String())

	// Pen controls
	penColor := tp.colorRow(settings.PenColor, func(hex string) {
		tp.updateSettings(func(s *whiteboard.Settings) { s.PenColor = hex })
		appPrefs.SetString(prefs.KeyPenColor, hex)
	})
	penWidth := tp.sliderRow("Width:", 1, 30, 1, settings.PenWidth, "%.0f px", func(v float64) {
		tp.updateSettings(func(s *whiteboard.Settings) { s.PenWidth = v })
		appPrefs.SetFloat(prefs.KeyPenWidth, v)
	})

	// Eraser controls
	eraserWidth := tp.sliderRow("Width:", 4, 80, 1, settings.EraserWidth, "%.0f px", func(v float64) {
		tp.updateSettings(func(s *whiteboard.Settings) { s.EraserWidth = v })
		appPrefs.SetFloat(prefs.KeyEraserWidth, v)
	})

	// Highlighter controls
	hlColor := tp.colorRow(settings.HighlighterColor, func(hex string) {
		tp.updateSettings(func(s *whiteboard.Settings) { s.HighlighterColor = hex })
		appPrefs.SetString(prefs.KeyHighlighterColor, hex)
	})
	hlWidth := tp.sliderRow("Width:", 4, 60, 1, settings.HighlighterWidth, "%.0f px", func(v float64) {
		tp.updateSettings(func(s *whiteboard.Settings) { s.HighlighterWidth = v })
		appPrefs.SetFloat(prefs.KeyHighlighterWidth, v)
	})
	opacityRow := tp.opacityRow(opacity)

	smoothCheck := widget.NewCheck("Smooth strokes", func(on bool) {
		tp.updateSettings(func(s *whiteboard.Settings) { s.SmoothStrokes = on })
		appPrefs.SetBool(prefs.KeySmoothStrokes, on)
	})
	smoothCheck.SetChecked(settings.SmoothStrokes)

	// Text controls
	textColor := tp.colorRow(settings.TextColor, func(hex string) {
		tp.updateSettings(func(s *whiteboard.Settings) { s.TextColor = hex })
		appPrefs.SetString(prefs.KeyTextColor, hex)
	})
	textSize := tp.sliderRow("Size:", whiteboard.MinFontSize, 72, 1, settings.TextSize, "%.0f px", func(v float64) {
		tp.updateSettings(func(s *whiteboard.Settings) { s.TextSize = v })
		appPrefs.SetFloat(prefs.KeyTextSize, v)
	})

	tp.container = container.NewVScroll(container.NewVBox(
		widget.NewCard("Tool", "", tp.toolGroup),
		widget.NewCard("Pen", "", container.NewVBox(penColor, penWidth)),
		widget.NewCard("Eraser", "", eraserWidth),
		widget.NewCard("Highlighter", "", container.NewVBox(hlColor, hlWidth, opacityRow, smoothCheck)),
		widget.NewCard("Text", "", container.NewVBox(textColor, textSize)),
	))

	// Follow tool changes made elsewhere, e.g. escape back to select.
	state.On(app.EventToolChanged, func(data interface{}) {
		if tool, ok := data.(whiteboard.Tool); ok && tp.toolGroup.Selected != tool.String() {
			tp.toolGroup.SetSelected(tool.String())
		}
	})

	return tp
}

// Container returns the panel container.
func (tp *ToolsPanel) Container() fyne.CanvasObject {
	return tp.container
}

// updateSettings applies one mutation to the controller's tool settings.
func (tp *ToolsPanel) updateSettings(mutate func(*whiteboard.Settings)) {
	s := tp.state.Board().Settings()
	mutate(&s)
	tp.state.Board().SetSettings(s)
}

// colorRow builds a labeled palette selector initialized to the stored hex
// value. Unknown values fall back to the first palette entry.
func (tp *ToolsPanel) colorRow(hex string, onPick func(hex string)) fyne.CanvasObject {
	sel := widget.NewSelect(paletteNames(), func(name string) {
		onPick(hexForName(name))
	})
	sel.SetSelected(nameForHex(hex))
	return container.NewBorder(nil, nil, widget.NewLabel("Color:"), nil, sel)
}

// sliderRow builds a labeled slider with a live value readout.
func (tp *ToolsPanel) sliderRow(label string, min, max, step, value float64, format string, onChange func(float64)) fyne.CanvasObject {
	readout := widget.NewLabel(fmt.Sprintf(format, value))
	slider := widget.NewSlider(min, max)
	slider.Step = step
	slider.Value = value
	slider.OnChanged = func(v float64) {
		readout.SetText(fmt.Sprintf(format, v))
		onChange(v)
	}
	return container.NewBorder(nil, nil, widget.NewLabel(label), readout, slider)
}

// opacityRow builds the highlighter opacity slider. Opacity is document
// state rather than a tool parameter, so dragging updates the controller
// live and releasing commits an undo step.
func (tp *ToolsPanel) opacityRow(value float64) fyne.CanvasObject {
	readout := widget.NewLabel(fmt.Sprintf("%.2f", value))
	slider := widget.NewSlider(whiteboard.MinOpacity, whiteboard.MaxOpacity)
	slider.Step = 0.05
	slider.Value = value
	slider.OnChanged = func(v float64) {
		readout.SetText(fmt.Sprintf("%.2f", v))
		tp.state.Board().SetHighlighterOpacity(v)
	}
	slider.OnChangeEnded = func(v float64) {
		tp.prefs.SetFloat(prefs.KeyHighlighterOpacity, v)
		tp.state.Board().Commit()
	}
	return container.NewBorder(nil, nil, widget.NewLabel("Opacity:"), readout, slider)
}

// loadSettings builds tool settings from preferences, falling back to the
// defaults for anything unset.
func loadSettings(p *prefs.Prefs) whiteboard.Settings {
	def := whiteboard.DefaultSettings()
	return whiteboard.Settings{
		PenColor:         p.StringWithFallback(prefs.KeyPenColor, def.PenColor),
		PenWidth:         p.FloatWithFallback(prefs.KeyPenWidth, def.PenWidth),
		EraserWidth:      p.FloatWithFallback(prefs.KeyEraserWidth, def.EraserWidth),
		HighlighterColor: p.StringWithFallback(prefs.KeyHighlighterColor, def.HighlighterColor),
		HighlighterWidth: p.FloatWithFallback(prefs.KeyHighlighterWidth, def.HighlighterWidth),
		TextColor:        p.StringWithFallback(prefs.KeyTextColor, def.TextColor),
		TextSize:         p.FloatWithFallback(prefs.KeyTextSize, def.TextSize),
		SmoothStrokes:    p.Bool(prefs.KeySmoothStrokes, def.SmoothStrokes),
	}
}
