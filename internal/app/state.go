// Package app ties the whiteboard engine to persistence, autosave, and
// application events.
package app

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/internal/whiteboard"
	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/pkg/geometry"
)

// EventType identifies state change notifications.
type EventType int

const (
	// EventDocumentLoaded fires after a document is opened or reset.
	EventDocumentLoaded EventType = iota
	// EventDocumentChanged fires after any committed document change,
	// including undo and redo.
	EventDocumentChanged
	// EventSaveStatusChanged fires when the save status moves between
	// saved, saving and unsaved.
	EventSaveStatusChanged
	// EventToolChanged fires when the active tool switches.
	EventToolChanged
)

// EventListener is a callback for state changes.
type EventListener func(data interface{})

// ErrNoSavePath is returned by ManualSave when the document has never
// been given a store to save into.
var ErrNoSavePath = errors.New("document has no save path")

// State ties the whiteboard controller to persistence and the UI. It owns
// the save status, the debounced autosave and the event listeners that
// widgets subscribe to.
type State struct {
	mu sync.RWMutex

	board  *whiteboard.Controller
	store  DocumentStore
	assets AssetProvider

	status       SaveStatus
	lastSavedSig string
	saveTimer    *time.Timer

	// Delays are fields so tests can shorten them.
	saveDebounce time.Duration
	savedHold    time.Duration

	// viewCenter reports the document point at the center of the
	// current viewport, used to place inserted media.
	viewCenter func() geometry.Point2D

	listeners map[EventType][]EventListener
}

// NewState creates application state around an existing controller and
// subscribes to its commits.
func NewState(board *whiteboard.Controller) *State {
	s := &State{
		board:        board,
		status:       StatusSaved,
		saveDebounce: saveDebounce,
		savedHold:    savedHold,
		listeners:    make(map[EventType][]EventListener),
	}
	board.OnCommit(s.handleCommit)
	return s
}

// Board returns the whiteboard controller.
func (s *State) Board() *whiteboard.Controller {
	return s.board
}

// On registers a listener for an event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit notifies all listeners of an event. Listeners run synchronously
// on the calling goroutine, outside the state lock.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := make([]EventListener, len(s.listeners[event]))
	copy(listeners, s.listeners[event])
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Status returns the current save status.
func (s *State) Status() SaveStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Path names the current store location, or "" for an unsaved document.
func (s *State) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.store == nil {
		return ""
	}
	return s.store.Path()
}

// SetAssets attaches the media library used by InsertAsset.
func (s *State) SetAssets(assets AssetProvider) {
	s.mu.Lock()
	s.assets = assets
	s.mu.Unlock()
}

// AssetLibrary returns the attached media library, or nil.
func (s *State) AssetLibrary() AssetProvider {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assets
}

// SetViewCenter installs the callback reporting the viewport center.
func (s *State) SetViewCenter(fn func() geometry.Point2D) {
	s.mu.Lock()
	s.viewCenter = fn
	s.mu.Unlock()
}

// SetTool switches the active tool and notifies listeners. Switching
// away from an in-progress edit commits it first.
func (s *State) SetTool(tool whiteboard.Tool) {
	s.board.SetTool(tool)
	s.Emit(EventToolChanged, tool)
}

// handleCommit runs after every committed document change.
func (s *State) handleCommit() {
	s.setStatus(StatusUnsaved)
	s.Emit(EventDocumentChanged, nil)
	s.scheduleSave()
}

func (s *State) setStatus(status SaveStatus) {
	s.mu.Lock()
	if s.status == status {
		s.mu.Unlock()
		return
	}
	s.status = status
	s.mu.Unlock()
	s.Emit(EventSaveStatusChanged, status)
}

// scheduleSave arms the autosave timer, replacing any pending one. A
// document without a store is left alone until the user saves it
// somewhere.
func (s *State) scheduleSave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return
	}
	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
	s.saveTimer = time.AfterFunc(s.saveDebounce, func() {
		s.save(false)
	})
}

// ManualSave writes the document now, flushing any pending autosave.
// Saving an unchanged document is a no-op.
func (s *State) ManualSave() error {
	s.mu.Lock()
	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
	s.mu.Unlock()
	return s.save(true)
}

// save serializes and writes the document. Autosave failures are logged
// and surface only through the unsaved status; manual saves also return
// the error so the UI can report it.
func (s *State) save(manual bool) error {
	s.mu.RLock()
	store := s.store
	last := s.lastSavedSig
	s.mu.RUnlock()

	if store == nil {
		if manual {
			return ErrNoSavePath
		}
		return nil
	}

	data, sig, err := s.board.EncodeDocument()
	if err != nil {
		log.Printf("app: save aborted: %v", err)
		s.setStatus(StatusUnsaved)
		if manual {
			return err
		}
		return nil
	}
	if sig == last {
		s.setStatus(StatusSaved)
		return nil
	}

	s.setStatus(StatusSaving)
	if err := store.Save(data); err != nil {
		log.Printf("app: save failed: %v", err)
		s.setStatus(StatusUnsaved)
		if manual {
			return err
		}
		return nil
	}

	s.mu.Lock()
	s.lastSavedSig = sig
	hold := s.savedHold
	s.mu.Unlock()

	// Hold the saving status briefly, then settle at saved unless a new
	// change arrived in the meantime.
	time.AfterFunc(hold, func() {
		s.mu.RLock()
		settle := s.status == StatusSaving && s.lastSavedSig == sig
		s.mu.RUnlock()
		if settle {
			s.setStatus(StatusSaved)
		}
	})
	return nil
}

// NewDocument resets the whiteboard to a blank document with no store.
func (s *State) NewDocument() {
	if err := s.board.Load(nil); err != nil {
		log.Printf("app: reset document: %v", err)
		return
	}

	s.mu.Lock()
	s.store = nil
	s.lastSavedSig = ""
	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
	s.mu.Unlock()

	s.setStatus(StatusSaved)
	s.Emit(EventDocumentLoaded, "")
	s.Emit(EventDocumentChanged, nil)
}

// OpenDocument loads the document held by store and makes store the save
// target. Documents in older formats load fine but are marked unsaved so
// the next save rewrites them in the current format.
func (s *State) OpenDocument(store DocumentStore) error {
	raw, err := store.Load()
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}
	if err := s.board.Load(raw); err != nil {
		return err
	}

	data, sig, encErr := s.board.EncodeDocument()
	current := encErr == nil && bytes.Equal(bytes.TrimSpace(raw), data)

	s.mu.Lock()
	s.store = store
	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
	if current {
		s.lastSavedSig = sig
	} else {
		s.lastSavedSig = ""
	}
	s.mu.Unlock()

	if current {
		s.setStatus(StatusSaved)
	} else {
		s.setStatus(StatusUnsaved)
	}
	s.Emit(EventDocumentLoaded, store.Path())
	s.Emit(EventDocumentChanged, nil)
	if !current {
		s.scheduleSave()
	}
	return nil
}

// SaveTo makes store the save target and writes the document to it.
func (s *State) SaveTo(store DocumentStore) error {
	s.mu.Lock()
	s.store = store
	s.lastSavedSig = ""
	s.mu.Unlock()
	return s.ManualSave()
}

// InsertAsset places a library asset on the whiteboard, centered on the
// current viewport, and returns the new element's ID.
func (s *State) InsertAsset(id string) (string, error) {
	s.mu.RLock()
	provider := s.assets
	center := s.viewCenter
	s.mu.RUnlock()

	if provider == nil {
		return "", errors.New("no asset library attached")
	}
	asset, ok := provider.Get(id)
	if !ok {
		return "", fmt.Errorf("unknown asset %q", id)
	}

	at := geometry.Point2D{X: whiteboard.CanvasSize / 2, Y: whiteboard.CanvasSize / 2}
	if center != nil {
		at = center()
	}
	return s.board.CreateMedia(asset.Type, asset.Src, asset.Name, at), nil
}
