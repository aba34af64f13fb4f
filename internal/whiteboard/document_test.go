package whiteboard

import (
	"encoding/json"
	"image"
	"reflect"
	"strings"
	"testing"

	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/pkg/colorutil"
	"github.com/GreatGamer1776/Game-Dev-Project-Manager-sub001/pkg/geometry"
)

// TestDocumentRoundTrip verifies a serialized snapshot deserializes back to
// the same content and signature.
func TestDocumentRoundTrip(t *testing.T) {
	snap := &Snapshot{
		BaseData: "data:image/png;base64,QUJD",
		Strokes: []HighlighterStroke{{
			ID:      "s1",
			Color:   "#ffeb3b",
			Width:   14,
			Opacity: 0.35,
			Points:  []geometry.Point2D{pt(10, 20), pt(30, 40), pt(50, 60)},
		}},
		Opacity: 0.25,
		Texts: []TextElement{{
			ID: "t1", X: 100, Y: 200, Text: "milestone", Color: "#1a1a1a",
			FontSize: 18, FontWeight: "bold", FontStyle: "normal",
		}},
		Medias: []MediaElement{{
			ID: "m1", Type: MediaImage, Src: "data:image/png;base64,QUJD",
			Name: "shot.png", X: 300, Y: 400, Width: 320, Height: 240,
		}},
	}
	if err := Sign(snap); err != nil {
		t.Fatalf("sign: %v", err)
	}

	data, err := Serialize(snap)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	got, err := Deserialize(data)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}

	if got.BaseData != snap.BaseData {
		t.Errorf("baseData = %q, want %q", got.BaseData, snap.BaseData)
	}
	if got.Opacity != snap.Opacity {
		t.Errorf("opacity = %v, want %v", got.Opacity, snap.Opacity)
	}
	if !reflect.DeepEqual(got.Strokes, snap.Strokes) {
		t.Errorf("strokes = %+v, want %+v", got.Strokes, snap.Strokes)
	}
	if !reflect.DeepEqual(got.Texts, snap.Texts) {
		t.Errorf("texts = %+v, want %+v", got.Texts, snap.Texts)
	}
	if !reflect.DeepEqual(got.Medias, snap.Medias) {
		t.Errorf("medias = %+v, want %+v", got.Medias, snap.Medias)
	}
	if got.Signature != snap.Signature {
		t.Errorf("signature = %q, want %q", got.Signature, snap.Signature)
	}
}

// TestSerializeShape verifies the emitted JSON carries the current version
// tag, the exact field names, and empty arrays rather than nulls.
func TestSerializeShape(t *testing.T) {
	data, err := Serialize(&Snapshot{Opacity: 0.2})
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if v, ok := m["version"].(float64); !ok || v != 2 {
		t.Errorf("version = %v, want 2", m["version"])
	}
	for _, key := range []string{"baseData", "highlighterStrokes", "highlighterOpacity", "textElements", "mediaElements"} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing field %q", key)
		}
	}
	for _, key := range []string{"highlighterStrokes", "textElements", "mediaElements"} {
		arr, ok := m[key].([]any)
		if !ok {
			t.Errorf("field %q = %T, want an array", key, m[key])
			continue
		}
		if len(arr) != 0 {
			t.Errorf("field %q has %d entries, want 0", key, len(arr))
		}
	}
}

// TestDeserializeLegacyPayloads verifies pre-versioned inputs normalize
// into the current document shape.
func TestDeserializeLegacyPayloads(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantBase string
	}{
		{"json string", `"data:image/png;base64,QUJD"`, "data:image/png;base64,QUJD"},
		{"raw text", "data:image/png;base64,QUJD", "data:image/png;base64,QUJD"},
		{"data key", `{"data": "legacy-data"}`, "legacy-data"},
		{"image key", `{"image": "legacy-image"}`, "legacy-image"},
		{"baseData wins", `{"baseData": "current", "data": "old"}`, "current"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap, err := Deserialize([]byte(tc.raw))
			if err != nil {
				t.Fatalf("deserialize: %v", err)
			}
			if snap.BaseData != tc.wantBase {
				t.Errorf("baseData = %q, want %q", snap.BaseData, tc.wantBase)
			}
			if snap.Opacity != DefaultHighlighterOpacity {
				t.Errorf("opacity = %v, want %v", snap.Opacity, DefaultHighlighterOpacity)
			}
			if snap.Strokes == nil || snap.Texts == nil || snap.Medias == nil {
				t.Error("element lists should be empty, not nil")
			}
			if len(snap.Strokes)+len(snap.Texts)+len(snap.Medias) != 0 {
				t.Error("legacy payloads carry no elements")
			}
		})
	}
}

// TestDeserializeEmptyInput verifies empty or blank input yields a signed
// blank document.
func TestDeserializeEmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t"} {
		snap, err := Deserialize([]byte(raw))
		if err != nil {
			t.Fatalf("deserialize %q: %v", raw, err)
		}
		if snap.BaseData != "" || len(snap.Strokes) != 0 {
			t.Errorf("blank input produced content: %+v", snap)
		}
		if snap.Opacity != DefaultHighlighterOpacity {
			t.Errorf("opacity = %v, want %v", snap.Opacity, DefaultHighlighterOpacity)
		}
		if snap.Signature == "" {
			t.Error("blank snapshot should still be signed")
		}
	}
}

// TestDeserializeDropsMalformedRecords verifies individually broken records
// are dropped while the rest of the document loads.
func TestDeserializeDropsMalformedRecords(t *testing.T) {
	raw := `{
		"version": 2,
		"baseData": "",
		"highlighterStrokes": [
			{"id": "ok", "color": "#ffeb3b", "width": 10, "opacity": 0.3, "points": [{"x": 1, "y": 2}, {"x": 3, "y": 4}]},
			{"id": "no-points", "color": "#ffeb3b", "width": 10, "opacity": 0.3, "points": []},
			{"id": "bad-points", "points": [{"x": 5}, {"y": 6}]},
			"not an object"
		],
		"highlighterOpacity": 0.3,
		"textElements": [
			{"id": "ok", "x": 10, "y": 20, "text": "kept", "color": "#000000", "fontSize": 14, "fontWeight": "normal", "fontStyle": "normal"},
			{"id": "no-text", "x": 10, "y": 20},
			{"id": "no-pos", "text": "dropped"}
		],
		"mediaElements": [
			{"id": "ok", "type": "image", "src": "payload", "name": "a", "x": 1, "y": 2, "width": 100, "height": 80},
			{"id": "bad-type", "type": "hologram", "src": "payload", "x": 1, "y": 2, "width": 100, "height": 80},
			{"id": "no-src", "type": "image", "x": 1, "y": 2, "width": 100, "height": 80}
		]
	}`

	snap, err := Deserialize([]byte(raw))
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}

	if len(snap.Strokes) != 1 || snap.Strokes[0].ID != "ok" {
		t.Errorf("strokes = %+v, want only the valid record", snap.Strokes)
	}
	if len(snap.Texts) != 1 || snap.Texts[0].Text != "kept" {
		t.Errorf("texts = %+v, want only the valid record", snap.Texts)
	}
	if len(snap.Medias) != 1 || snap.Medias[0].ID != "ok" {
		t.Errorf("medias = %+v, want only the valid record", snap.Medias)
	}
}

// TestDeserializeClampsNumericFields verifies out-of-range numbers load
// clamped rather than rejected, and absent fields get their defaults.
func TestDeserializeClampsNumericFields(t *testing.T) {
	raw := `{
		"version": 2,
		"highlighterStrokes": [
			{"id": "wide", "width": 9000, "opacity": 3, "points": [{"x": -50, "y": 99999}]},
			{"id": "thin", "width": 0.1, "opacity": 0.001, "points": [{"x": 5, "y": 5}]},
			{"id": "bare", "points": [{"x": 1, "y": 1}]}
		],
		"highlighterOpacity": 7,
		"textElements": [
			{"id": "small", "x": 10, "y": 10, "text": "a", "fontSize": 2}
		],
		"mediaElements": [
			{"id": "tiny", "type": "image", "src": "p", "x": 5000, "y": -20, "width": 3, "height": 1}
		]
	}`

	snap, err := Deserialize([]byte(raw))
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}

	wide := snap.Strokes[0]
	if wide.Width != MaxStrokeWidth {
		t.Errorf("wide width = %v, want %v", wide.Width, MaxStrokeWidth)
	}
	if wide.Opacity != MaxOpacity {
		t.Errorf("wide opacity = %v, want %v", wide.Opacity, MaxOpacity)
	}
	if p := wide.Points[0]; p.X != 0 || p.Y != CanvasSize {
		t.Errorf("clamped point = %+v, want (0, %d)", p, CanvasSize)
	}

	thin := snap.Strokes[1]
	if thin.Width != MinStrokeWidth {
		t.Errorf("thin width = %v, want %v", thin.Width, MinStrokeWidth)
	}
	if thin.Opacity != MinOpacity {
		t.Errorf("thin opacity = %v, want %v", thin.Opacity, MinOpacity)
	}

	bare := snap.Strokes[2]
	if bare.Width != fallbackStrokeWidth || bare.Opacity != DefaultHighlighterOpacity {
		t.Errorf("bare defaults = (%v, %v), want (%v, %v)",
			bare.Width, bare.Opacity, fallbackStrokeWidth, DefaultHighlighterOpacity)
	}
	if bare.Color != fallbackStrokeColor {
		t.Errorf("bare color = %q, want %q", bare.Color, fallbackStrokeColor)
	}

	if snap.Opacity != MaxOpacity {
		t.Errorf("document opacity = %v, want %v", snap.Opacity, MaxOpacity)
	}

	txt := snap.Texts[0]
	if txt.FontSize != MinFontSize {
		t.Errorf("fontSize = %v, want %v", txt.FontSize, MinFontSize)
	}
	if txt.Color != fallbackTextColor || txt.FontWeight != "normal" || txt.FontStyle != "normal" {
		t.Errorf("text defaults = (%q, %q, %q), want (%q, normal, normal)",
			txt.Color, txt.FontWeight, txt.FontStyle, fallbackTextColor)
	}

	m := snap.Medias[0]
	if m.Width != MinMediaWidth || m.Height != MinMediaHeight {
		t.Errorf("media size = (%v, %v), want (%v, %v)", m.Width, m.Height, MinMediaWidth, MinMediaHeight)
	}
	if m.X != CanvasSize-m.Width || m.Y != 0 {
		t.Errorf("media pos = (%v, %v), want (%v, 0)", m.X, m.Y, CanvasSize-m.Width)
	}
}

// TestDeserializeMissingOpacity verifies a document without a highlighter
// opacity falls back to the default.
func TestDeserializeMissingOpacity(t *testing.T) {
	snap, err := Deserialize([]byte(`{"version": 2, "baseData": ""}`))
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if snap.Opacity != DefaultHighlighterOpacity {
		t.Errorf("opacity = %v, want %v", snap.Opacity, DefaultHighlighterOpacity)
	}
}

// TestBaseDataCodec verifies the PNG data URL round trip for the base
// raster payload.
func TestBaseDataCodec(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.SetRGBA(2, 1, colorutil.Red)

	enc, err := EncodeBaseData(img)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.HasPrefix(enc, "data:image/png;base64,") {
		t.Fatalf("encoded payload does not carry the data URL prefix: %q", enc[:32])
	}

	dec, err := DecodeBaseData(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := dec.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("decoded bounds = %v, want 4x3", b)
	}
	r, g, b, a := dec.At(2, 1).RGBA()
	if r != uint32(colorutil.Red.R)*257 || g != uint32(colorutil.Red.G)*257 ||
		b != uint32(colorutil.Red.B)*257 || a != 0xffff {
		t.Errorf("decoded pixel = (%d, %d, %d, %d), want opaque red", r, g, b, a)
	}

	// Empty payload decodes to nothing
	if img2, err := DecodeBaseData(""); err != nil || img2 != nil {
		t.Errorf("empty payload = (%v, %v), want (nil, nil)", img2, err)
	}

	// A bare base64 body without the data URL prefix decodes too
	bare := strings.TrimPrefix(enc, "data:image/png;base64,")
	if _, err := DecodeBaseData(bare); err != nil {
		t.Errorf("bare base64 decode: %v", err)
	}

	if _, err := DecodeBaseData("data:image/png;base64,!!!"); err == nil {
		t.Error("junk payload should fail to decode")
	}
}

// TestProbeImageSize verifies probing reads intrinsic dimensions and fails
// cleanly on junk.
func TestProbeImageSize(t *testing.T) {
	enc, err := EncodeBaseData(image.NewRGBA(image.Rect(0, 0, 7, 5)))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	w, h, err := ProbeImageSize(enc)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if w != 7 || h != 5 {
		t.Errorf("size = (%d, %d), want (7, 5)", w, h)
	}

	if _, _, err := ProbeImageSize("not base64 at all"); err == nil {
		t.Error("probe of junk should fail")
	}
}

// TestSignatureTracksContent verifies equal documents share a signature
// and any content change produces a new one.
func TestSignatureTracksContent(t *testing.T) {
	a := EmptySnapshot()
	b := EmptySnapshot()
	if a.Signature == "" || a.Signature != b.Signature {
		t.Errorf("blank signatures differ: %q vs %q", a.Signature, b.Signature)
	}

	b.Texts = append(b.Texts, TextElement{
		ID: "t", Text: "x", Color: "#000000",
		FontSize: 12, FontWeight: "normal", FontStyle: "normal",
	})
	if err := Sign(b); err != nil {
		t.Fatalf("sign: %v", err)
	}
	if a.Signature == b.Signature {
		t.Error("content change did not change the signature")
	}
}
