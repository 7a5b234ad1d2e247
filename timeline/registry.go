package timeline

import (
	"encoding/json"
	"fmt"
	"os"
)

// The component registry constrains which action/param combinations the
// editor offers. It is advisory only: the rendering core never validates
// events against it, and documents referencing unregistered components still
// resolve (as inert) so that iterative editing never breaks playback.

// RegistryParam describes one editable parameter of an action.
type RegistryParam struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Type    string   `json:"type"`
	Default any      `json:"default,omitempty"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
}

// RegistryAction describes one action a component accepts.
type RegistryAction struct {
	ID     string          `json:"id"`
	Label  string          `json:"label"`
	Params []RegistryParam `json:"params,omitempty"`
}

// RegistryComponent describes one animatable component.
type RegistryComponent struct {
	ID          string           `json:"id"`
	DisplayName string           `json:"displayName"`
	DefaultSize *float64         `json:"defaultSize,omitempty"`
	Actions     []RegistryAction `json:"actions"`
}

// Registry is the static component registry document.
type Registry struct {
	Version    int                 `json:"version"`
	Components []RegistryComponent `json:"components"`
}

// ParseRegistry decodes a component registry.
func ParseRegistry(data []byte) (*Registry, error) {
	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse component registry: %w", err)
	}
	if reg.Version <= 0 {
		return nil, fmt.Errorf("component registry: version must be positive, got %d", reg.Version)
	}
	return &reg, nil
}

// LoadRegistry reads and parses a component registry from disk.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load component registry: %w", err)
	}
	return ParseRegistry(data)
}

// Component returns the registered component with the given id, or nil.
func (r *Registry) Component(id string) *RegistryComponent {
	for i := range r.Components {
		if r.Components[i].ID == id {
			return &r.Components[i]
		}
	}
	return nil
}
