// Package settings persists per-user look preferences with gdata. A nil
// gdata manager keeps everything in memory.
package settings

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	AppName = "dustbunnies"

	settingsObject   = "settings"
	settingsProperty = "look"

	MinSensitivity  = 0.1
	MaxSensitivity  = 5.0
	SensitivityStep = 0.1
)

type LookSettings struct {
	Sensitivity float64 `yaml:"sensitivity"`
	InvertY     bool    `yaml:"invert_y"`
}

func DefaultLookSettings() LookSettings {
	return LookSettings{Sensitivity: 1}
}

type Manager struct {
	data     *gdata.Manager
	settings LookSettings
}

// Open opens the per-user store for AppName. When the store cannot be
// opened the manager still works, without persistence.
func Open() *Manager {
	data, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Warn().Err(err).Msg("settings: storage unavailable, using defaults")
		return NewManager(nil)
	}
	return NewManager(data)
}

func NewManager(data *gdata.Manager) *Manager {
	m := &Manager{data: data, settings: DefaultLookSettings()}
	if err := m.Load(); err != nil {
		log.Warn().Err(err).Msg("settings: load failed, using defaults")
	}
	return m
}

func (m *Manager) Load() error {
	m.settings = DefaultLookSettings()
	if m.data == nil || !m.data.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}
	raw, err := m.data.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("settings: load: %w", err)
	}
	var loaded LookSettings
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return fmt.Errorf("settings: unmarshal: %w", err)
	}
	loaded.Sensitivity = clampSensitivity(loaded.Sensitivity)
	m.settings = loaded
	return nil
}

func (m *Manager) Save() error {
	if m.data == nil {
		return nil
	}
	raw, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	if err := m.data.SaveObjectProp(settingsObject, settingsProperty, raw); err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}
	log.Debug().Float64("sensitivity", m.settings.Sensitivity).Msg("settings saved")
	return nil
}

func (m *Manager) Look() LookSettings {
	return m.settings
}

// AdjustSensitivity moves sensitivity by delta within the allowed range and
// returns the new value. Callers Save when they want it kept.
func (m *Manager) AdjustSensitivity(delta float64) float64 {
	m.settings.Sensitivity = clampSensitivity(m.settings.Sensitivity + delta)
	return m.settings.Sensitivity
}

func (m *Manager) SetInvertY(invert bool) {
	m.settings.InvertY = invert
}

// ScaleLook applies sensitivity and inversion to a raw look sample.
func (m *Manager) ScaleLook(dx, dy float64) (float64, float64) {
	s := m.settings.Sensitivity
	if m.settings.InvertY {
		dy = -dy
	}
	return dx * s, dy * s
}

func clampSensitivity(v float64) float64 {
	if v < MinSensitivity {
		return MinSensitivity
	}
	if v > MaxSensitivity {
		return MaxSensitivity
	}
	return v
}
