// Package panels provides UI panels for the application.
package panels

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/internal/app"
	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/ui/prefs"
)

// SidePanel provides the main side panel with tabbed sections.
type SidePanel struct {
	state     *app.State
	container *container.AppTabs

	// Tab content
	toolsPanel  *ToolsPanel
	assetsPanel *AssetsPanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State, appPrefs *prefs.Prefs) *SidePanel {
	sp := &SidePanel{
		state: state,
	}

	// Create individual panels
	sp.toolsPanel = NewToolsPanel(state, appPrefs)
	sp.assetsPanel = NewAssetsPanel(state, appPrefs)

	// Create tabbed container
	sp.container = container.NewAppTabs(
		container.NewTabItem("Tools", sp.toolsPanel.Container()),
		container.NewTabItem("Assets", sp.assetsPanel.Container()),
	)

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// SetWindow sets the parent window for dialogs.
func (sp *SidePanel) SetWindow(w fyne.Window) {
	sp.assetsPanel.SetWindow(w)
}
