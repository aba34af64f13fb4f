package whiteboard

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"image"
	"image/png"
	"strconv"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/pkg/geometry"

	"github.com/google/uuid"
)

// DocumentVersion is the persisted shape version this codec emits.
const DocumentVersion = 2

// Document is the externally stored whiteboard shape. Serialize always
// emits this structure; Deserialize additionally accepts older shapes and
// normalizes them into it.
type Document struct {
	Version            int                 `json:"version"`
	BaseData           string              `json:"baseData"`
	HighlighterStrokes []HighlighterStroke `json:"highlighterStrokes"`
	HighlighterOpacity float64             `json:"highlighterOpacity"`
	TextElements       []TextElement       `json:"textElements"`
	MediaElements      []MediaElement      `json:"mediaElements"`
}

// Serialize converts a snapshot into the persisted document bytes. The
// output always carries the current version tag, never a legacy shape.
func Serialize(snap *Snapshot) ([]byte, error) {
	doc := Document{
		Version:            DocumentVersion,
		BaseData:           snap.BaseData,
		HighlighterStrokes: snap.Strokes,
		HighlighterOpacity: snap.Opacity,
		TextElements:       snap.Texts,
		MediaElements:      snap.Medias,
	}
	if doc.HighlighterStrokes == nil {
		doc.HighlighterStrokes = []HighlighterStroke{}
	}
	if doc.TextElements == nil {
		doc.TextElements = []TextElement{}
	}
	if doc.MediaElements == nil {
		doc.MediaElements = []MediaElement{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize whiteboard document: %w", err)
	}
	return data, nil
}

// SignatureOf hashes serialized document bytes into a content signature.
func SignatureOf(data []byte) string {
	h := fnv.New64a()
	h.Write(data)
	return strconv.FormatUint(h.Sum64(), 16)
}

// Sign computes and stores the snapshot's content signature.
func Sign(snap *Snapshot) error {
	data, err := Serialize(snap)
	if err != nil {
		return err
	}
	snap.Signature = SignatureOf(data)
	return nil
}

// EmptySnapshot returns a signed snapshot of a blank document.
func EmptySnapshot() *Snapshot {
	snap := &Snapshot{
		Strokes: []HighlighterStroke{},
		Opacity: DefaultHighlighterOpacity,
		Texts:   []TextElement{},
		Medias:  []MediaElement{},
	}
	// Marshaling a blank document cannot fail.
	_ = Sign(snap)
	return snap
}

// rawDocument mirrors Document with optional fields so that partially
// malformed input can be picked apart instead of failing wholesale. The
// base raster is additionally accepted under legacy field names.
type rawDocument struct {
	Version            *float64          `json:"version"`
	BaseData           *string           `json:"baseData"`
	Data               *string           `json:"data"`
	Image              *string           `json:"image"`
	HighlighterStrokes []json.RawMessage `json:"highlighterStrokes"`
	HighlighterOpacity *float64          `json:"highlighterOpacity"`
	TextElements       []json.RawMessage `json:"textElements"`
	MediaElements      []json.RawMessage `json:"mediaElements"`
}

type rawPoint struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

type rawStroke struct {
	ID      *string    `json:"id"`
	Color   *string    `json:"color"`
	Width   *float64   `json:"width"`
	Opacity *float64   `json:"opacity"`
	Points  []rawPoint `json:"points"`
}

type rawText struct {
	ID         *string  `json:"id"`
	X          *float64 `json:"x"`
	Y          *float64 `json:"y"`
	Text       *string  `json:"text"`
	Color      *string  `json:"color"`
	FontSize   *float64 `json:"fontSize"`
	FontWeight *string  `json:"fontWeight"`
	FontStyle  *string  `json:"fontStyle"`
}

type rawMedia struct {
	ID     *string  `json:"id"`
	Type   *string  `json:"type"`
	Src    *string  `json:"src"`
	Name   *string  `json:"name"`
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
}

// Fallbacks for records that arrive without usable numeric fields.
const (
	fallbackStrokeWidth = 4.0
	fallbackFontSize    = 16.0
	fallbackMediaWidth  = 400.0
	fallbackMediaHeight = 300.0
	fallbackStrokeColor = "#ffeb3b"
	fallbackTextColor   = "#000000"
)

// Deserialize parses persisted whiteboard bytes into a signed snapshot.
// Accepted inputs: the current v2 object, an object carrying the base
// raster under a legacy key, a JSON string holding a bare raster payload,
// or raw unquoted payload text. Malformed stroke and element records are
// dropped individually; numeric fields are clamped into range.
func Deserialize(raw []byte) (*Snapshot, error) {
	trim := bytes.TrimSpace(raw)
	if len(trim) == 0 {
		return EmptySnapshot(), nil
	}

	// Legacy shape: the whole value is just the encoded base raster.
	if trim[0] != '{' {
		base := string(trim)
		if trim[0] == '"' {
			var s string
			if err := json.Unmarshal(trim, &s); err != nil {
				return nil, fmt.Errorf("parse legacy whiteboard payload: %w", err)
			}
			base = s
		}
		snap := EmptySnapshot()
		snap.BaseData = base
		if err := Sign(snap); err != nil {
			return nil, err
		}
		return snap, nil
	}

	var doc rawDocument
	if err := json.Unmarshal(trim, &doc); err != nil {
		return nil, fmt.Errorf("parse whiteboard document: %w", err)
	}

	snap := &Snapshot{
		BaseData: firstString(doc.BaseData, doc.Data, doc.Image),
		Strokes:  make([]HighlighterStroke, 0, len(doc.HighlighterStrokes)),
		Opacity:  sanitizeOpacity(doc.HighlighterOpacity),
		Texts:    make([]TextElement, 0, len(doc.TextElements)),
		Medias:   make([]MediaElement, 0, len(doc.MediaElements)),
	}

	for _, msg := range doc.HighlighterStrokes {
		if s, ok := sanitizeStroke(msg); ok {
			snap.Strokes = append(snap.Strokes, s)
		}
	}
	for _, msg := range doc.TextElements {
		if t, ok := sanitizeText(msg); ok {
			snap.Texts = append(snap.Texts, t)
		}
	}
	for _, msg := range doc.MediaElements {
		if m, ok := sanitizeMedia(msg); ok {
			snap.Medias = append(snap.Medias, m)
		}
	}

	if err := Sign(snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// sanitizeStroke validates one persisted stroke record. Records without any
// usable point are dropped; cosmetic fields fall back to defaults.
func sanitizeStroke(msg json.RawMessage) (HighlighterStroke, bool) {
	var r rawStroke
	if err := json.Unmarshal(msg, &r); err != nil {
		return HighlighterStroke{}, false
	}

	points := make([]geometry.Point2D, 0, len(r.Points))
	for _, rp := range r.Points {
		if rp.X == nil || rp.Y == nil {
			continue
		}
		p := geometry.Point2D{X: *rp.X, Y: *rp.Y}
		if !p.IsFinite() {
			continue
		}
		points = append(points, geometry.ClampPoint(p, CanvasSize))
	}
	if len(points) == 0 {
		return HighlighterStroke{}, false
	}

	s := HighlighterStroke{
		ID:      stringOr(r.ID, ""),
		Color:   stringOr(r.Color, fallbackStrokeColor),
		Width:   fallbackStrokeWidth,
		Opacity: DefaultHighlighterOpacity,
		Points:  points,
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if r.Width != nil {
		s.Width = geometry.Clamp(*r.Width, MinStrokeWidth, MaxStrokeWidth)
	}
	if r.Opacity != nil {
		s.Opacity = geometry.Clamp(*r.Opacity, MinOpacity, MaxOpacity)
	}
	return s, true
}

// sanitizeText validates one persisted text record. Position and text are
// required; font fields normalize to their defaults.
func sanitizeText(msg json.RawMessage) (TextElement, bool) {
	var r rawText
	if err := json.Unmarshal(msg, &r); err != nil {
		return TextElement{}, false
	}
	if r.Text == nil || r.X == nil || r.Y == nil {
		return TextElement{}, false
	}
	p := geometry.Point2D{X: *r.X, Y: *r.Y}
	if !p.IsFinite() {
		return TextElement{}, false
	}
	p = geometry.ClampPoint(p, CanvasSize)

	t := TextElement{
		ID:         stringOr(r.ID, ""),
		X:          p.X,
		Y:          p.Y,
		Text:       *r.Text,
		Color:      stringOr(r.Color, fallbackTextColor),
		FontSize:   fallbackFontSize,
		FontWeight: "normal",
		FontStyle:  "normal",
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if r.FontSize != nil {
		t.FontSize = geometry.Clamp(*r.FontSize, MinFontSize, MaxFontSize)
	}
	if r.FontWeight != nil && *r.FontWeight == "bold" {
		t.FontWeight = "bold"
	}
	if r.FontStyle != nil && *r.FontStyle == "italic" {
		t.FontStyle = "italic"
	}
	return t, true
}

// sanitizeMedia validates one persisted media record. Type, payload and
// position are required; the size is clamped to the minimum floor and the
// element is kept inside the surface.
func sanitizeMedia(msg json.RawMessage) (MediaElement, bool) {
	var r rawMedia
	if err := json.Unmarshal(msg, &r); err != nil {
		return MediaElement{}, false
	}
	if r.Type == nil || !ValidMediaType(*r.Type) {
		return MediaElement{}, false
	}
	if r.Src == nil || *r.Src == "" || r.X == nil || r.Y == nil {
		return MediaElement{}, false
	}
	p := geometry.Point2D{X: *r.X, Y: *r.Y}
	if !p.IsFinite() {
		return MediaElement{}, false
	}

	m := MediaElement{
		ID:     stringOr(r.ID, ""),
		Type:   MediaType(*r.Type),
		Src:    *r.Src,
		Name:   stringOr(r.Name, ""),
		Width:  fallbackMediaWidth,
		Height: fallbackMediaHeight,
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if r.Width != nil {
		m.Width = geometry.Clamp(*r.Width, MinMediaWidth, CanvasSize)
	}
	if r.Height != nil {
		m.Height = geometry.Clamp(*r.Height, MinMediaHeight, CanvasSize)
	}
	m.X = geometry.Clamp(p.X, 0, CanvasSize-m.Width)
	m.Y = geometry.Clamp(p.Y, 0, CanvasSize-m.Height)
	return m, true
}

func sanitizeOpacity(v *float64) float64 {
	if v == nil {
		return DefaultHighlighterOpacity
	}
	return geometry.Clamp(*v, MinOpacity, MaxOpacity)
}

func firstString(candidates ...*string) string {
	for _, c := range candidates {
		if c != nil && *c != "" {
			return *c
		}
	}
	return ""
}

func stringOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

// dataURLPrefix is the encoding emitted for raster payloads.
const dataURLPrefix = "data:image/png;base64,"

// EncodeBaseData encodes a raster as a PNG data URL string.
func EncodeBaseData(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode base raster: %w", err)
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeBaseData decodes an encoded raster payload. Both full data URLs and
// bare base64 bodies are accepted; an empty payload decodes to nil with no
// error.
func DecodeBaseData(s string) (image.Image, error) {
	if s == "" {
		return nil, nil
	}
	if idx := strings.Index(s, ";base64,"); idx >= 0 {
		s = s[idx+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode base raster payload: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode base raster image: %w", err)
	}
	return img, nil
}

// ProbeImageSize reads the intrinsic dimensions of an encoded image payload
// without decoding the full pixel data.
func ProbeImageSize(src string) (int, int, error) {
	s := src
	if idx := strings.Index(s, ";base64,"); idx >= 0 {
		s = s[idx+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return 0, 0, fmt.Errorf("decode media payload: %w", err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("probe media size: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
