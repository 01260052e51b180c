package tween

import (
	"errors"
	"fmt"
	"strings"
)

// Ease maps linear progress in [0, 1] onto eased progress.
type Ease func(t float64) float64

var ErrUnknownEase = errors.New("tween: unknown ease")

func Linear(t float64) float64 { return t }

func InQuad(t float64) float64 { return t * t }

func OutQuad(t float64) float64 { return t * (2 - t) }

func InOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

func InOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := 2*t - 2
	return 0.5*u*u*u + 1
}

var easeByName = map[string]Ease{
	"linear":       Linear,
	"in_quad":      InQuad,
	"out_quad":     OutQuad,
	"in_out_quad":  InOutQuad,
	"in_out_cubic": InOutCubic,
}

// ParseEase resolves a config name. An empty name means InOutQuad.
func ParseEase(name string) (Ease, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return InOutQuad, nil
	}
	if e, ok := easeByName[key]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownEase, name)
}
