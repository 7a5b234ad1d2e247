package timeline

import (
	"path/filepath"
	"testing"
)

const validDoc = `{
	"version": 1,
	"fps": 60,
	"durationFrames": 300,
	"canvas": {"width": 1280, "height": 720},
	"events": [
		{"id": "e1", "frame": 60, "componentId": "panel", "action": "Expand",
		 "spring": {"stiffness": 280, "damping": 24, "mass": 1}},
		{"id": "e2", "frame": 120, "componentId": "panel", "action": "MoveTo",
		 "params": {"x": 100, "y": 50}},
		{"id": "e3", "frame": 10, "componentId": "badge", "action": "Expand"}
	]
}`

func TestParseValidDocument(t *testing.T) {
	doc, err := Parse([]byte(validDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.FPS != 60 || doc.DurationFrames != 300 {
		t.Errorf("header = fps %d duration %d", doc.FPS, doc.DurationFrames)
	}
	if len(doc.Events) != 3 {
		t.Fatalf("events = %d, want 3", len(doc.Events))
	}
	if doc.Events[0].Spring == nil || doc.Events[0].Spring.Stiffness != 280 {
		t.Error("event spring not decoded")
	}
	if x, ok := doc.Events[1].ParamFloat("x"); !ok || x != 100 {
		t.Errorf("ParamFloat(x) = %v, %v", x, ok)
	}
	if _, ok := doc.Events[1].ParamFloat("missing"); ok {
		t.Error("ParamFloat found a missing key")
	}
	if w, h := doc.Size(640, 480); w != 1280 || h != 720 {
		t.Errorf("Size = %dx%d, want canvas 1280x720", w, h)
	}
}

func TestParseRejectsMalformedDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{{`},
		{"missing version", `{"fps": 60, "durationFrames": 10, "events": []}`},
		{"missing fps", `{"version": 1, "durationFrames": 10, "events": []}`},
		{"negative fps", `{"version": 1, "fps": -30, "durationFrames": 10, "events": []}`},
		{"negative duration", `{"version": 1, "fps": 60, "durationFrames": -1, "events": []}`},
		{"empty event id", `{"version": 1, "fps": 60, "durationFrames": 10,
			"events": [{"id": "", "frame": 0, "componentId": "p", "action": "Expand"}]}`},
		{"duplicate event id", `{"version": 1, "fps": 60, "durationFrames": 10, "events": [
			{"id": "a", "frame": 0, "componentId": "p", "action": "Expand"},
			{"id": "a", "frame": 1, "componentId": "p", "action": "Collapse"}]}`},
		{"negative frame", `{"version": 1, "fps": 60, "durationFrames": 10,
			"events": [{"id": "a", "frame": -2, "componentId": "p", "action": "Expand"}]}`},
		{"empty componentId", `{"version": 1, "fps": 60, "durationFrames": 10,
			"events": [{"id": "a", "frame": 0, "componentId": "", "action": "Expand"}]}`},
		{"zero stiffness", `{"version": 1, "fps": 60, "durationFrames": 10,
			"events": [{"id": "a", "frame": 0, "componentId": "p", "action": "Expand",
			"spring": {"stiffness": 0, "damping": 10, "mass": 1}}]}`},
		{"zero mass", `{"version": 1, "fps": 60, "durationFrames": 10,
			"events": [{"id": "a", "frame": 0, "componentId": "p", "action": "Expand",
			"spring": {"stiffness": 100, "damping": 10, "mass": 0}}]}`},
		{"negative damping", `{"version": 1, "fps": 60, "durationFrames": 10,
			"events": [{"id": "a", "frame": 0, "componentId": "p", "action": "Expand",
			"spring": {"stiffness": 100, "damping": -3, "mass": 1}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); err == nil {
				t.Error("expected a whole-document rejection")
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	doc, err := Parse([]byte(validDoc))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "timeline.json")
	if err := Save(path, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.FPS != doc.FPS || len(loaded.Events) != len(doc.Events) {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
	if loaded.Events[0].ID != "e1" || loaded.Events[0].Spring.Damping != 24 {
		t.Errorf("event round trip mismatch: %+v", loaded.Events[0])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestComponentIDsFirstAppearanceOrder(t *testing.T) {
	doc, err := Parse([]byte(validDoc))
	if err != nil {
		t.Fatal(err)
	}
	ids := doc.ComponentIDs()
	if len(ids) != 2 || ids[0] != "panel" || ids[1] != "badge" {
		t.Errorf("ComponentIDs = %v, want [panel badge]", ids)
	}
}

func TestSpringOrDefault(t *testing.T) {
	ev := Event{}
	if ev.SpringOrDefault() != DefaultSpring {
		t.Error("nil spring should fall back to DefaultSpring")
	}
	ev.Spring = &SpringConfig{Stiffness: 1, Damping: 2, Mass: 3}
	if ev.SpringOrDefault().Stiffness != 1 {
		t.Error("attached spring ignored")
	}
}

func TestParseRegistry(t *testing.T) {
	data := []byte(`{
		"version": 1,
		"components": [{
			"id": "panel", "displayName": "Glass Panel", "defaultSize": 200,
			"actions": [{
				"id": "Expand", "label": "Expand",
				"params": [{"id": "amount", "label": "Amount", "type": "number",
					"default": 0.8, "min": 0, "max": 2}]
			}]
		}]
	}`)
	reg, err := ParseRegistry(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := reg.Component("panel")
	if c == nil || c.DisplayName != "Glass Panel" {
		t.Fatalf("Component(panel) = %+v", c)
	}
	if len(c.Actions) != 1 || c.Actions[0].Params[0].Max == nil || *c.Actions[0].Params[0].Max != 2 {
		t.Errorf("action params not decoded: %+v", c.Actions)
	}
	if reg.Component("ghost") != nil {
		t.Error("unknown component should be nil")
	}
}

func TestParseRegistryRejects(t *testing.T) {
	if _, err := ParseRegistry([]byte(`nope`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := ParseRegistry([]byte(`{"version": 0, "components": []}`)); err == nil {
		t.Error("expected error for missing version")
	}
}
