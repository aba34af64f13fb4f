// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"image/png"
	"path/filepath"

	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/internal/app"
	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/internal/version"
	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/internal/whiteboard"
	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/ui/canvas"
	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/ui/panels"
	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	appTitle       = "GDPM Whiteboard"
	prefKeyLastDir = "lastDirectory"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	canvas    *canvas.BoardCanvas
	sidePanel *panels.SidePanel

	statusLabel *widget.Label
	toolLabel   *widget.Label
	zoomLabel   *widget.Label
}

// New creates a new main window wired to the given application state.
func New(fyneApp fyne.App, state *app.State, appPrefs *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow(appTitle)
	win.Resize(fyne.NewSize(1280, 860))

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  appPrefs,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupKeys()
	mw.setupEventHandlers()
	mw.refreshTitle()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	// Create the board canvas
	mw.canvas = canvas.NewBoardCanvas(mw.state.Board())
	mw.state.SetViewCenter(mw.canvas.ViewCenter)

	// Create the side panel with tabs
	mw.sidePanel = panels.NewSidePanel(mw.state, mw.prefs)
	mw.sidePanel.SetWindow(mw.Window)

	// Create status bar readouts
	mw.statusLabel = widget.NewLabel(statusText(mw.state.Status()))
	mw.toolLabel = widget.NewLabel(mw.state.Board().Tool().String())
	mw.zoomLabel = widget.NewLabel("100%")
	mw.canvas.OnZoomChange(func(zoom float64) {
		mw.zoomLabel.SetText(fmt.Sprintf("%.0f%%", zoom*100))
	})

	// Create toolbar with undo and zoom controls
	toolbar := mw.createToolbar()

	// Canvas area with toolbar on top
	canvasArea := container.NewBorder(
		toolbar,               // top
		nil,                   // bottom
		nil,                   // left
		nil,                   // right
		mw.canvas.Container(), // center
	)

	// Create main layout: side panel | canvas area
	split := container.NewHSplit(
		mw.sidePanel.Container(),
		canvasArea,
	)
	split.SetOffset(0.22) // Side panel takes 22% of width

	statusBar := container.NewHBox(
		mw.statusLabel,
		layout.NewSpacer(),
		mw.toolLabel,
		widget.NewSeparator(),
		mw.zoomLabel,
	)

	// Main container with status bar at bottom
	content := container.NewBorder(
		nil,                            // top
		container.NewPadded(statusBar), // bottom
		nil,                            // left
		nil,                            // right
		split,                          // center
	)

	mw.SetContent(content)
}

// createToolbar creates the toolbar with undo and zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	undoBtn := widget.NewButton("Undo", mw.onUndo)
	redoBtn := widget.NewButton("Redo", mw.onRedo)
	zoomOutBtn := widget.NewButton("-", mw.canvas.ZoomOut)
	zoomInBtn := widget.NewButton("+", mw.canvas.ZoomIn)
	fitBtn := widget.NewButton("Fit", mw.canvas.FitToWindow)
	actualBtn := widget.NewButton("1:1", func() {
		mw.canvas.SetZoom(1.0)
	})

	return container.NewHBox(
		undoBtn,
		redoBtn,
		widget.NewSeparator(),
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
		actualBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	// File menu
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Board", mw.onNewDocument),
		fyne.NewMenuItem("Open Board...", mw.onOpenDocument),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save", mw.onSaveDocument),
		fyne.NewMenuItem("Save As...", mw.onSaveDocumentAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PNG...", mw.onExportPNG),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	// Edit menu
	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", mw.onUndo),
		fyne.NewMenuItem("Redo", mw.onRedo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Delete Selection", mw.onDeleteSelection),
	)

	// View menu
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.canvas.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.canvas.ZoomOut),
		fyne.NewMenuItem("Fit to Window", mw.canvas.FitToWindow),
		fyne.NewMenuItem("Actual Size", func() { mw.canvas.SetZoom(1.0) }),
	)

	// Help menu
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mainMenu := fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu)
	mw.SetMainMenu(mainMenu)
}

// setupKeys registers global shortcuts plus the delete and escape keys.
// Typed keys only reach the window handler while no text entry has focus,
// which is exactly when deleting the selection is safe.
func (mw *MainWindow) setupKeys() {
	cv := mw.Canvas()

	cv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierControl},
		func(fyne.Shortcut) { mw.onUndo() })
	cv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierControl},
		func(fyne.Shortcut) { mw.onRedo() })
	cv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierControl},
		func(fyne.Shortcut) { mw.onSaveDocument() })

	cv.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyDelete, fyne.KeyBackspace:
			mw.onDeleteSelection()
		case fyne.KeyEscape:
			mw.state.Board().Escape()
			mw.canvas.SyncTextEditor()
			mw.canvas.Refresh()
		}
	})
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventDocumentLoaded, func(data interface{}) {
		mw.canvas.SyncTextEditor()
		mw.canvas.Refresh()
		mw.refreshTitle()
	})

	mw.state.On(app.EventDocumentChanged, func(data interface{}) {
		mw.canvas.Refresh()
	})

	mw.state.On(app.EventSaveStatusChanged, func(data interface{}) {
		if status, ok := data.(app.SaveStatus); ok {
			mw.statusLabel.SetText(statusText(status))
			mw.refreshTitle()
		}
	})

	mw.state.On(app.EventToolChanged, func(data interface{}) {
		if tool, ok := data.(whiteboard.Tool); ok {
			mw.toolLabel.SetText(tool.String())
			mw.canvas.SyncTextEditor()
			mw.canvas.Refresh()
		}
	})
}

// OpenPath opens the document file at path and remembers it as the most
// recent document.
func (mw *MainWindow) OpenPath(path string) error {
	if err := mw.state.OpenDocument(app.NewFileStore(path)); err != nil {
		return err
	}
	mw.rememberDocument(path)
	return nil
}

func (mw *MainWindow) rememberDocument(path string) {
	mw.saveLastDir(path)
	mw.prefs.SetString(prefs.KeyLastDocument, path)
}

// refreshTitle rebuilds the window title from the document path and save
// status, with the conventional trailing marker for unsaved changes.
func (mw *MainWindow) refreshTitle() {
	title := appTitle
	if path := mw.state.Path(); path != "" {
		title += " - " + filepath.Base(path)
	}
	if mw.state.Status() == app.StatusUnsaved {
		title += " *"
	}
	mw.SetTitle(title)
}

func statusText(status app.SaveStatus) string {
	switch status {
	case app.StatusSaving:
		return "Saving..."
	case app.StatusUnsaved:
		return "Unsaved changes"
	default:
		return "Saved"
	}
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.app.Preferences().String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	dir := filepath.Dir(filePath)
	mw.app.Preferences().SetString(prefKeyLastDir, dir)
}

// Menu action handlers

func (mw *MainWindow) onNewDocument() {
	mw.state.NewDocument()
}

func (mw *MainWindow) onOpenDocument() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		if err := mw.OpenPath(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{whiteboard.DocumentExt}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveDocument() {
	if mw.state.Path() == "" {
		mw.onSaveDocumentAs()
		return
	}
	if err := mw.state.ManualSave(); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveDocumentAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != whiteboard.DocumentExt {
			path += whiteboard.DocumentExt
		}
		if err := mw.state.SaveTo(app.NewFileStore(path)); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.rememberDocument(path)
		mw.refreshTitle()
	}, mw.Window)
	fd.SetFileName("board" + whiteboard.DocumentExt)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{whiteboard.DocumentExt}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExportPNG() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := png.Encode(writer, mw.canvas.ExportImage()); err != nil {
			dialog.ShowError(fmt.Errorf("export PNG: %w", err), mw.Window)
		}
	}, mw.Window)
	fd.SetFileName("board.png")
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onUndo() {
	mw.state.Board().Undo()
	mw.canvas.SyncTextEditor()
}

func (mw *MainWindow) onRedo() {
	mw.state.Board().Redo()
	mw.canvas.SyncTextEditor()
}

func (mw *MainWindow) onDeleteSelection() {
	if mw.state.Board().DeleteSelected() {
		mw.canvas.Refresh()
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+appTitle,
		fmt.Sprintf("%s v%s\n\n"+
			"A freehand whiteboard for game project planning notes.\n\n"+
			"Draw, highlight, annotate and drop in media from the\n"+
			"project asset library.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			appTitle, version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
