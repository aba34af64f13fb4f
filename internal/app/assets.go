package app

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/internal/whiteboard"
)

// Asset is one entry of the media library available for insertion.
type Asset struct {
	ID   string
	Name string
	Type whiteboard.MediaType
	Src  string
}

// AssetProvider lists insertable media assets. Providers are read-only;
// inserting an asset copies its payload into the document.
type AssetProvider interface {
	Assets() []Asset
	Get(id string) (Asset, bool)
}

// MapAssets is an in-memory AssetProvider that preserves insertion order.
type MapAssets struct {
	order []string
	byID  map[string]Asset
}

var _ AssetProvider = (*MapAssets)(nil)

func NewMapAssets(assets ...Asset) *MapAssets {
	m := &MapAssets{byID: make(map[string]Asset)}
	for _, a := range assets {
		if a.ID == "" {
			continue
		}
		if _, exists := m.byID[a.ID]; !exists {
			m.order = append(m.order, a.ID)
		}
		m.byID[a.ID] = a
	}
	return m
}

func (m *MapAssets) Assets() []Asset {
	out := make([]Asset, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out
}

func (m *MapAssets) Get(id string) (Asset, bool) {
	a, ok := m.byID[id]
	return a, ok
}

// LoadDirAssets reads every recognized media file in dir once and serves
// the contents as data URL payloads. Unreadable files are skipped with a
// log line rather than failing the whole library.
func LoadDirAssets(dir string) (*MapAssets, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read asset directory %s: %w", dir, err)
	}
	var assets []Asset
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		mtype, mime, ok := mediaTypeForExt(filepath.Ext(name))
		if !ok {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Printf("app: skipping asset %s: %v", name, err)
			continue
		}
		assets = append(assets, Asset{
			ID:   name,
			Name: name,
			Type: mtype,
			Src:  "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
		})
	}
	return NewMapAssets(assets...), nil
}

func mediaTypeForExt(ext string) (whiteboard.MediaType, string, bool) {
	switch strings.ToLower(ext) {
	case ".png":
		return whiteboard.MediaImage, "image/png", true
	case ".jpg", ".jpeg":
		return whiteboard.MediaImage, "image/jpeg", true
	case ".gif":
		return whiteboard.MediaImage, "image/gif", true
	case ".mp4":
		return whiteboard.MediaVideo, "video/mp4", true
	case ".webm":
		return whiteboard.MediaVideo, "video/webm", true
	case ".mp3":
		return whiteboard.MediaAudio, "audio/mpeg", true
	case ".ogg":
		return whiteboard.MediaAudio, "audio/ogg", true
	case ".wav":
		return whiteboard.MediaAudio, "audio/wav", true
	default:
		return "", "", false
	}
}
