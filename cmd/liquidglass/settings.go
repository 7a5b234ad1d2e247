package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/liquidglass"
	"github.com/phanxgames/liquidglass/timeline"
)

// Settings is the yaml settings file: the full visual parameter set plus the
// live-mode spring and default backdrop. Every field is optional; the zero
// file is the stock look.
type Settings struct {
	Background string         `yaml:"background"`
	Glass      GlassSettings  `yaml:"glass"`
	Spring     SpringSettings `yaml:"spring"`
}

type GlassSettings struct {
	CornerRadius       float64   `yaml:"corner_radius"`
	EdgeWidth          float64   `yaml:"edge_width"`
	RefractionStrength float64   `yaml:"refraction_strength"`
	FresnelIntensity   float64   `yaml:"fresnel_intensity"`
	GlareIntensity     float64   `yaml:"glare_intensity"`
	LightDir           []float64 `yaml:"light_dir"`
	Aberration         float64   `yaml:"aberration"`
	Tint               []float64 `yaml:"tint"`
	TintStrength       float64   `yaml:"tint_strength"`
	BlurStep           float64   `yaml:"blur_step"`
	ShadowOffset       []float64 `yaml:"shadow_offset"`
	ShadowSoftness     float64   `yaml:"shadow_softness"`
	ShadowStrength     float64   `yaml:"shadow_strength"`
}

type SpringSettings struct {
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
	Mass      float64 `yaml:"mass"`
}

func defaultSettings() *Settings {
	p := liquidglass.DefaultGlassParams()
	return &Settings{
		Glass: GlassSettings{
			CornerRadius:       p.CornerRadius,
			EdgeWidth:          p.EdgeWidth,
			RefractionStrength: p.RefractionStrength,
			FresnelIntensity:   p.FresnelIntensity,
			GlareIntensity:     p.GlareIntensity,
			LightDir:           []float64{p.LightDir.X, p.LightDir.Y},
			Aberration:         p.Aberration,
			Tint:               []float64{p.Tint.R, p.Tint.G, p.Tint.B, p.Tint.A},
			TintStrength:       p.TintStrength,
			BlurStep:           p.BlurStep,
			ShadowOffset:       []float64{p.ShadowOffset.X, p.ShadowOffset.Y},
			ShadowSoftness:     p.ShadowSoftness,
			ShadowStrength:     p.ShadowStrength,
		},
		Spring: SpringSettings{Stiffness: 280, Damping: 24, Mass: 1},
	}
}

// loadSettings reads a yaml settings file over the defaults. An empty path
// returns the defaults.
func loadSettings(path string) (*Settings, error) {
	s := defaultSettings()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("settings %s: %w", path, err)
	}
	if err := s.Spring.config().Validate(); err != nil {
		return nil, fmt.Errorf("settings %s: spring: %w", path, err)
	}
	return s, nil
}

func (g GlassSettings) params() liquidglass.GlassParams {
	p := liquidglass.GlassParams{
		CornerRadius:       g.CornerRadius,
		EdgeWidth:          g.EdgeWidth,
		RefractionStrength: g.RefractionStrength,
		FresnelIntensity:   g.FresnelIntensity,
		GlareIntensity:     g.GlareIntensity,
		Aberration:         g.Aberration,
		TintStrength:       g.TintStrength,
		BlurStep:           g.BlurStep,
		ShadowSoftness:     g.ShadowSoftness,
		ShadowStrength:     g.ShadowStrength,
	}
	if len(g.LightDir) == 2 {
		p.LightDir = liquidglass.Vec2{X: g.LightDir[0], Y: g.LightDir[1]}
	}
	if len(g.Tint) == 4 {
		p.Tint = liquidglass.Color{R: g.Tint[0], G: g.Tint[1], B: g.Tint[2], A: g.Tint[3]}
	}
	if len(g.ShadowOffset) == 2 {
		p.ShadowOffset = liquidglass.Vec2{X: g.ShadowOffset[0], Y: g.ShadowOffset[1]}
	}
	return p
}

func (s *Settings) glassParams() liquidglass.GlassParams {
	return s.Glass.params()
}

func (sp SpringSettings) config() timeline.SpringConfig {
	return timeline.SpringConfig{Stiffness: sp.Stiffness, Damping: sp.Damping, Mass: sp.Mass}
}
