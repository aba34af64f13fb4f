package canvas

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/internal/whiteboard"
)

// editorEntry is the multiline entry shown over a text element while it
// is being edited. Its content feeds the controller on every keystroke;
// the element is committed once when editing ends.
type editorEntry struct {
	widget.Entry
	canvas *BoardCanvas
}

func newEditorEntry(bc *BoardCanvas) *editorEntry {
	e := &editorEntry{canvas: bc}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapOff
	e.ExtendBaseWidget(e)
	e.OnChanged = func(text string) {
		if bc.board.SetTextContent(text) {
			bc.Refresh()
		}
	}
	return e
}

// TypedKey commits the edit on Escape and passes everything else on.
func (e *editorEntry) TypedKey(key *fyne.KeyEvent) {
	if key.Name == fyne.KeyEscape {
		e.canvas.CommitTextEdit()
		return
	}
	e.Entry.TypedKey(key)
}

// CommitTextEdit finalizes the in-place editor and hides it.
func (bc *BoardCanvas) CommitTextEdit() {
	bc.board.CommitTextEdit()
	bc.SyncTextEditor()
	bc.Refresh()
}

// SyncTextEditor shows, positions or hides the editor to match the
// controller's editing state.
func (bc *BoardCanvas) SyncTextEditor() {
	t, ok := bc.board.EditingText()
	if !ok {
		if bc.editor.Visible() {
			bc.editor.Hide()
		}
		return
	}

	if bc.editor.Text != t.Text {
		bc.editor.SetText(t.Text)
	}
	bc.editor.TextStyle = fyne.TextStyle{
		Bold:   t.FontWeight == "bold",
		Italic: t.FontStyle == "italic",
	}
	bc.positionEditor()
	if !bc.editor.Visible() {
		bc.editor.Show()
	}
	if c := fyne.CurrentApp().Driver().CanvasForObject(bc.editor); c != nil {
		c.Focus(bc.editor)
	}
}

// positionEditor places the editor over the edited element, scaled to
// the current zoom. A little padding keeps the entry frame from covering
// the first glyphs.
func (bc *BoardCanvas) positionEditor() {
	t, ok := bc.board.EditingText()
	if !ok {
		return
	}
	box := whiteboard.TextBounds(t)
	z := bc.zoom

	pos := fyne.NewPos(float32(box.X*z)-4, float32(box.Y*z)-4)
	size := fyne.NewSize(float32(box.Width*z)+40, float32(box.Height*z)+24)
	min := bc.editor.MinSize()
	if size.Width < min.Width {
		size.Width = min.Width
	}
	if size.Height < min.Height {
		size.Height = min.Height
	}
	bc.editor.Move(pos)
	bc.editor.Resize(size)
}
