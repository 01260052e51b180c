package system

import (
	"github.com/milk9111/dustbunnies/ecs"
	"github.com/milk9111/dustbunnies/tween"
)

// TweenSystem advances the shared animator once per frame.
type TweenSystem struct {
	animator *tween.Animator
}

func NewTweenSystem(animator *tween.Animator) *TweenSystem {
	return &TweenSystem{animator: animator}
}

func (ts *TweenSystem) Update(w *ecs.World) {
	if ts == nil || ts.animator == nil || w == nil {
		return
	}
	ts.animator.Update(w.DeltaTime())
}
