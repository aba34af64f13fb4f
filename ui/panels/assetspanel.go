package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/internal/app"
	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/ui/prefs"
)

// AssetsPanel lists the project media library and inserts entries onto the
// board at the current view center.
type AssetsPanel struct {
	state     *app.State
	prefs     *prefs.Prefs
	container fyne.CanvasObject
	window    fyne.Window

	dirLabel  *widget.Label
	list      *widget.List
	insertBtn *widget.Button

	assets   []app.Asset
	selected int
}

// NewAssetsPanel creates a new assets panel.
func NewAssetsPanel(state *app.State, appPrefs *prefs.Prefs) *AssetsPanel {
	ap := &AssetsPanel{
		state:    state,
		prefs:    appPrefs,
		selected: -1,
	}

	ap.dirLabel = widget.NewLabel("No asset folder chosen")
	ap.dirLabel.Wrapping = fyne.TextWrapWord

	// Asset list
	ap.list = widget.NewList(
		func() int {
			return len(ap.assets)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("Asset Name")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			if id < len(ap.assets) {
				a := ap.assets[id]
				label.SetText(fmt.Sprintf("%s (%s)", a.Name, a.Type))
			}
		},
	)
	ap.list.OnSelected = func(id widget.ListItemID) {
		ap.selected = int(id)
		ap.insertBtn.Enable()
	}
	ap.list.OnUnselected = func(widget.ListItemID) {
		ap.selected = -1
		ap.insertBtn.Disable()
	}

	ap.insertBtn = widget.NewButton("Insert", func() {
		ap.insertSelected()
	})
	ap.insertBtn.Disable()

	chooseBtn := widget.NewButton("Choose Folder...", func() {
		ap.chooseFolder()
	})

	ap.container = container.NewBorder(
		container.NewVBox(ap.dirLabel, chooseBtn), // top
		ap.insertBtn,                              // bottom
		nil, nil,
		ap.list, // center
	)

	ap.Reload()
	return ap
}

// Container returns the panel container.
func (ap *AssetsPanel) Container() fyne.CanvasObject {
	return ap.container
}

// SetWindow sets the parent window for dialogs.
func (ap *AssetsPanel) SetWindow(w fyne.Window) {
	ap.window = w
}

// Reload refreshes the list from the attached asset provider.
func (ap *AssetsPanel) Reload() {
	ap.assets = nil
	ap.selected = -1
	if lib := ap.state.AssetLibrary(); lib != nil {
		ap.assets = lib.Assets()
	}
	if dir := ap.prefs.String(prefs.KeyAssetDir); dir != "" {
		ap.dirLabel.SetText(dir)
	}
	ap.insertBtn.Disable()
	ap.list.UnselectAll()
	ap.list.Refresh()
}

func (ap *AssetsPanel) chooseFolder() {
	if ap.window == nil {
		return
	}
	fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		dir := uri.Path()
		assets, err := app.LoadDirAssets(dir)
		if err != nil {
			dialog.ShowError(err, ap.window)
			return
		}
		ap.state.SetAssets(assets)
		ap.prefs.SetString(prefs.KeyAssetDir, dir)
		ap.Reload()
	}, ap.window)
	fd.Show()
}

func (ap *AssetsPanel) insertSelected() {
	if ap.selected < 0 || ap.selected >= len(ap.assets) {
		return
	}
	if _, err := ap.state.InsertAsset(ap.assets[ap.selected].ID); err != nil {
		if ap.window != nil {
			dialog.ShowError(err, ap.window)
		}
	}
}
