// Package timeline implements the animation-timeline evaluation model: a
// deterministic mapping from timestamped component events plus per-event
// spring parameters to continuous per-frame visual state.
//
// The package is pure. It never touches the GPU, the wall clock, or any
// global state; given the same document and query frame it always produces
// the same answer, which is what makes frame-seekable playback and
// reproducible video rendering possible.
package timeline

import (
	"encoding/json"
	"fmt"
	"os"
)

// SpringConfig describes the damped-oscillator curve attached to an event.
// It is immutable once attached.
type SpringConfig struct {
	Stiffness float64 `json:"stiffness"`
	Damping   float64 `json:"damping"`
	Mass      float64 `json:"mass"`
}

// DefaultSpring is used for events that carry no spring of their own.
var DefaultSpring = SpringConfig{Stiffness: 170, Damping: 26, Mass: 1}

// Validate reports whether the config describes a well-behaved damped
// oscillator. Invalid configs are rejected at document load so that NaN
// never reaches a rendered frame.
func (c SpringConfig) Validate() error {
	if c.Stiffness <= 0 {
		return fmt.Errorf("spring stiffness must be positive, got %v", c.Stiffness)
	}
	if c.Mass <= 0 {
		return fmt.Errorf("spring mass must be positive, got %v", c.Mass)
	}
	if c.Damping < 0 {
		return fmt.Errorf("spring damping must be non-negative, got %v", c.Damping)
	}
	return nil
}

// Event is a single timestamped trigger in the timeline document.
// Events are immutable once stored; documents are replaced wholesale.
type Event struct {
	ID          string         `json:"id"`
	Frame       int            `json:"frame"`
	ComponentID string         `json:"componentId"`
	Action      string         `json:"action"`
	Params      map[string]any `json:"params,omitempty"`
	Spring      *SpringConfig  `json:"spring,omitempty"`
}

// ParamFloat returns a numeric parameter by key. JSON decodes all numbers to
// float64, but integers written by hand are tolerated too.
func (e Event) ParamFloat(key string) (float64, bool) {
	v, ok := e.Params[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// SpringOrDefault returns the event's spring config, or DefaultSpring when
// the event carries none.
func (e Event) SpringOrDefault() SpringConfig {
	if e.Spring != nil {
		return *e.Spring
	}
	return DefaultSpring
}

// Canvas is the optional output resolution recorded in a document.
type Canvas struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Document is a full timeline document as produced by the editor.
//
// The event slice carries no ordering guarantee; consumers sort by Frame
// themselves. The rendering core only ever reads a loaded document, it never
// mutates one in place.
type Document struct {
	Version        int     `json:"version"`
	FPS            int     `json:"fps"`
	DurationFrames int     `json:"durationFrames"`
	Canvas         *Canvas `json:"canvas,omitempty"`
	Events         []Event `json:"events"`
}

// Parse decodes and validates a timeline document. A document that fails
// validation is rejected wholesale; the core never renders with silently
// substituted defaults for fps or duration.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse timeline document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads and parses a timeline document from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load timeline document: %w", err)
	}
	return Parse(data)
}

// Save writes the document to disk, replacing any previous version wholesale.
func Save(path string, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode timeline document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save timeline document: %w", err)
	}
	return nil
}

// Validate checks the document invariants: required header fields present
// and positive, event ids unique and non-empty, frames non-negative, and
// every attached spring config physically valid.
func (d *Document) Validate() error {
	if d.Version <= 0 {
		return fmt.Errorf("timeline document: version must be positive, got %d", d.Version)
	}
	if d.FPS <= 0 {
		return fmt.Errorf("timeline document: fps must be positive, got %d", d.FPS)
	}
	if d.DurationFrames < 0 {
		return fmt.Errorf("timeline document: durationFrames must be non-negative, got %d", d.DurationFrames)
	}
	seen := make(map[string]struct{}, len(d.Events))
	for i, ev := range d.Events {
		if ev.ID == "" {
			return fmt.Errorf("timeline document: event %d has empty id", i)
		}
		if _, dup := seen[ev.ID]; dup {
			return fmt.Errorf("timeline document: duplicate event id %q", ev.ID)
		}
		seen[ev.ID] = struct{}{}
		if ev.Frame < 0 {
			return fmt.Errorf("timeline document: event %q has negative frame %d", ev.ID, ev.Frame)
		}
		if ev.ComponentID == "" {
			return fmt.Errorf("timeline document: event %q has empty componentId", ev.ID)
		}
		if ev.Spring != nil {
			if err := ev.Spring.Validate(); err != nil {
				return fmt.Errorf("timeline document: event %q: %w", ev.ID, err)
			}
		}
	}
	return nil
}

// Size returns the output resolution recorded in the document, or the given
// fallback when the document carries none.
func (d *Document) Size(fallbackW, fallbackH int) (int, int) {
	if d.Canvas != nil && d.Canvas.Width > 0 && d.Canvas.Height > 0 {
		return d.Canvas.Width, d.Canvas.Height
	}
	return fallbackW, fallbackH
}

// ComponentIDs returns the distinct component ids referenced by the
// document's events, in first-appearance order.
func (d *Document) ComponentIDs() []string {
	seen := make(map[string]struct{}, 4)
	var ids []string
	for _, ev := range d.Events {
		if _, ok := seen[ev.ComponentID]; ok {
			continue
		}
		seen[ev.ComponentID] = struct{}{}
		ids = append(ids, ev.ComponentID)
	}
	return ids
}
