// Package canvas provides the whiteboard drawing surface with pan, zoom,
// and pointer interaction.
package canvas

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/internal/whiteboard"
	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/pkg/geometry"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25
)

// BoardCanvas displays the whiteboard document and routes pointer input
// to the controller. The document keeps its fixed logical size; the view
// scales it by the zoom factor inside a scroll container.
type BoardCanvas struct {
	widget.BaseWidget

	board *whiteboard.Controller

	// Display state
	raster *fynecanvas.Raster
	zoom   float64

	// Cached document-space frame, rebuilt when marked dirty.
	frame      *image.RGBA
	frameDirty bool

	// Media payloads decoded once per element.
	mediaCache map[string]cachedMedia

	// Container
	scroll  *zoomScroll
	content *boardContent
	imgSize fyne.Size

	// In-place text editor
	editor *editorEntry

	dragging bool

	onZoomChange func(zoom float64)
}

// zoomScroll wraps a scroll container but intercepts wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *BoardCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *BoardCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	// Use wheel for zoom, not scroll
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

// Size returns the scroll container's size.
func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

// Refresh refreshes the scroll container.
func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

// Resize sets the size of the scroll container.
func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// boardContent wraps the raster and the text editor overlay to handle
// mouse events in document coordinates.
type boardContent struct {
	widget.BaseWidget
	canvas *BoardCanvas
	raster *fynecanvas.Raster
}

func newBoardContent(bc *BoardCanvas, raster *fynecanvas.Raster) *boardContent {
	c := &boardContent{canvas: bc, raster: raster}
	c.ExtendBaseWidget(c)
	return c
}

func (c *boardContent) CreateRenderer() fyne.WidgetRenderer {
	return &boardContentRenderer{content: c}
}

func (c *boardContent) MinSize() fyne.Size {
	return c.raster.MinSize()
}

// Tapped handles a click without drag: a dot for the pen tools, a new
// text element for the text tool, selection for the select tool.
func (c *boardContent) Tapped(ev *fyne.PointEvent) {
	size := c.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}
	p := c.canvas.docPoint(ev.Position)
	c.canvas.board.PointerDown(p)
	c.canvas.board.PointerUp()
	c.canvas.SyncTextEditor()
	c.canvas.Refresh()
}

// DoubleTapped re-enters text editing on an existing text element.
func (c *boardContent) DoubleTapped(ev *fyne.PointEvent) {
	p := c.canvas.docPoint(ev.Position)
	c.canvas.board.DoubleTap(p)
	c.canvas.SyncTextEditor()
	c.canvas.Refresh()
}

func (c *boardContent) Dragged(ev *fyne.DragEvent) {
	if !c.canvas.dragging {
		c.canvas.dragging = true
		start := fyne.Position{
			X: ev.Position.X - ev.Dragged.DX,
			Y: ev.Position.Y - ev.Dragged.DY,
		}
		c.canvas.board.PointerDown(c.canvas.docPoint(start))
		c.canvas.SyncTextEditor()
	}
	c.canvas.board.PointerMove(c.canvas.docPoint(ev.Position))
	c.canvas.Refresh()
}

func (c *boardContent) DragEnd() {
	if !c.canvas.dragging {
		return
	}
	c.canvas.dragging = false
	c.canvas.board.PointerUp()
	c.canvas.Refresh()
}

func (c *boardContent) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		c.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		c.canvas.ZoomOut()
	}
}

type boardContentRenderer struct {
	content *boardContent
}

func (r *boardContentRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
	r.content.canvas.positionEditor()
}

func (r *boardContentRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *boardContentRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *boardContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster, r.content.canvas.editor}
}

func (r *boardContentRenderer) Destroy() {}

// NewBoardCanvas creates a canvas displaying the given controller's
// document.
func NewBoardCanvas(board *whiteboard.Controller) *BoardCanvas {
	bc := &BoardCanvas{
		board:      board,
		zoom:       1.0,
		frameDirty: true,
		mediaCache: make(map[string]cachedMedia),
	}

	bc.raster = fynecanvas.NewRaster(bc.draw)
	bc.raster.ScaleMode = fynecanvas.ImageScalePixels

	bc.editor = newEditorEntry(bc)
	bc.editor.Hide()

	bc.content = newBoardContent(bc, bc.raster)
	bc.scroll = newZoomScroll(bc.content, bc)

	bc.ExtendBaseWidget(bc)
	bc.updateContentSize()
	return bc
}

// Container returns the canvas container for embedding in layouts.
func (bc *BoardCanvas) Container() fyne.CanvasObject {
	return bc.scroll
}

// Board returns the controller this canvas displays.
func (bc *BoardCanvas) Board() *whiteboard.Controller {
	return bc.board
}

// Refresh marks the document frame stale and repaints.
func (bc *BoardCanvas) Refresh() {
	bc.frameDirty = true
	bc.raster.Refresh()
}

// SetZoom sets the zoom level.
func (bc *BoardCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	bc.zoom = zoom
	bc.updateContentSize()
	bc.positionEditor()

	if bc.onZoomChange != nil {
		bc.onZoomChange(zoom)
	}
}

// GetZoom returns the current zoom level.
func (bc *BoardCanvas) GetZoom() float64 {
	return bc.zoom
}

// ZoomIn increases the zoom level.
func (bc *BoardCanvas) ZoomIn() {
	bc.SetZoom(bc.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (bc *BoardCanvas) ZoomOut() {
	bc.SetZoom(bc.zoom / zoomStep)
}

// FitToWindow adjusts zoom so the whole document fits the visible area.
func (bc *BoardCanvas) FitToWindow() {
	viewSize := bc.scroll.Size()
	if viewSize.Width <= 0 || viewSize.Height <= 0 {
		return
	}
	side := float64(whiteboard.CanvasSize)
	zoomX := float64(viewSize.Width) / side
	zoomY := float64(viewSize.Height) / side

	zoom := zoomX
	if zoomY < zoomX {
		zoom = zoomY
	}
	bc.SetZoom(zoom * 0.95) // Leave a small margin
}

// OnZoomChange sets a callback for zoom changes.
func (bc *BoardCanvas) OnZoomChange(callback func(zoom float64)) {
	bc.onZoomChange = callback
}

// ViewCenter returns the document point at the center of the viewport.
func (bc *BoardCanvas) ViewCenter() geometry.Point2D {
	offset := bc.scroll.Offset()
	size := bc.scroll.Size()
	p := geometry.Point2D{
		X: float64(offset.X+size.Width/2) / bc.zoom,
		Y: float64(offset.Y+size.Height/2) / bc.zoom,
	}
	return geometry.ClampPoint(p, whiteboard.CanvasSize)
}

// docPoint converts a viewport position to document coordinates.
func (bc *BoardCanvas) docPoint(pos fyne.Position) geometry.Point2D {
	offset := bc.scroll.Offset()
	return geometry.Point2D{
		X: float64(pos.X+offset.X) / bc.zoom,
		Y: float64(pos.Y+offset.Y) / bc.zoom,
	}
}

// updateContentSize updates the scaled content size from the zoom level.
func (bc *BoardCanvas) updateContentSize() {
	side := float32(float64(whiteboard.CanvasSize) * bc.zoom)
	bc.imgSize = fyne.NewSize(side, side)

	bc.raster.SetMinSize(bc.imgSize)
	bc.raster.Resize(bc.imgSize)
	if bc.content != nil {
		bc.content.Resize(bc.imgSize)
		bc.content.Refresh()
	}
	bc.raster.Refresh()
	if bc.scroll != nil {
		bc.scroll.Refresh()
	}
}

// ExportImage renders the document at scale 1 without any selection
// marks, for use outside the editor.
func (bc *BoardCanvas) ExportImage() *image.RGBA {
	return bc.renderDocument("")
}

// draw is the raster drawing function. It samples the document-space
// frame at the current zoom and adds the selection marks on top.
func (bc *BoardCanvas) draw(w, h int) image.Image {
	if bc.frameDirty || bc.frame == nil {
		editingID := ""
		if t, ok := bc.board.EditingText(); ok {
			editingID = t.ID
		}
		bc.frame = bc.renderDocument(editingID)
		bc.frameDirty = false
	}

	output := image.NewRGBA(image.Rect(0, 0, w, h))
	side := bc.frame.Bounds().Dx()
	for y := 0; y < h; y++ {
		sy := int(float64(y) / bc.zoom)
		if sy >= side {
			sy = side - 1
		}
		for x := 0; x < w; x++ {
			sx := int(float64(x) / bc.zoom)
			if sx >= side {
				sx = side - 1
			}
			output.SetRGBA(x, y, bc.frame.RGBAAt(sx, sy))
		}
	}

	bc.drawSelectionMarks(output)
	return output
}

// CreateRenderer implements fyne.Widget.
func (bc *BoardCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &boardCanvasRenderer{canvas: bc}
}

type boardCanvasRenderer struct {
	canvas *BoardCanvas
}

func (r *boardCanvasRenderer) Layout(size fyne.Size) {
	if r.canvas.scroll != nil {
		r.canvas.scroll.Resize(size)
	}
}

func (r *boardCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *boardCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *boardCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.scroll}
}

func (r *boardCanvasRenderer) Destroy() {}
