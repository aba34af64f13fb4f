// Package main provides the entry point for the whiteboard editor.
package main

import (
	"log"
	"os"

	fyneapp "fyne.io/fyne/v2/app"

	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/internal/app"
	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/internal/version"
	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/internal/whiteboard"
	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/ui/mainwindow"
	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/ui/prefs"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting whiteboard editor v%s", version.Short())

	fyneApp := fyneapp.NewWithID("com.gdpm.whiteboard")
	fyneApp.Settings().SetTheme(&app.WhiteboardTheme{})

	board := whiteboard.NewController(whiteboard.CanvasSize)
	state := app.NewState(board)
	appPrefs := prefs.Load()

	// The asset library is optional; the editor runs fine without one.
	if dir := appPrefs.String(prefs.KeyAssetDir); dir != "" {
		if assets, err := app.LoadDirAssets(dir); err != nil {
			log.Printf("Asset library unavailable: %v", err)
		} else {
			state.SetAssets(assets)
		}
	}

	win := mainwindow.New(fyneApp, state, appPrefs)

	// Reopen the document named on the command line, falling back to the
	// one used last session.
	path := appPrefs.String(prefs.KeyLastDocument)
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if path != "" {
		if err := win.OpenPath(path); err != nil {
			log.Printf("Failed to open document %s: %v", path, err)
		}
	}

	win.ShowAndRun()

	if err := appPrefs.Save(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}
