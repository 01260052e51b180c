// Package tween runs grouped numeric interpolations over time.
//
// Callers describe an animation as a Request: a set of channels that all
// share one duration and easing curve, plus an optional completion callback.
// The Animator owns timing; callers never step a request themselves.
package tween

// Handle identifies a submitted request. The zero Handle is never issued.
type Handle uint64

// Channel animates one scalar from From to To. Key names the value being
// written (for example "head.pitch"); two requests that share a key compete
// for it and the newest one wins.
type Channel struct {
	Key   string
	From  float64
	To    float64
	Apply func(v float64)
}

// Request is a group of channels started together and finished together.
type Request struct {
	Channels   []Channel
	Duration   float64
	Ease       Ease
	OnComplete func()
}

type running struct {
	handle   Handle
	req      Request
	elapsed  float64
	detached map[string]bool
}

// Animator advances submitted requests once per Update. It is not safe for
// concurrent use; hosts call it from their tick.
type Animator struct {
	next    Handle
	running []*running
}

func NewAnimator() *Animator {
	return &Animator{}
}

// Submit starts req and returns its handle. Any older request writing one of
// req's channel keys stops writing that key; the older request keeps its own
// clock and still completes.
func (a *Animator) Submit(req Request) Handle {
	if a == nil {
		return 0
	}
	if req.Ease == nil {
		req.Ease = Linear
	}

	keys := make(map[string]bool, len(req.Channels))
	for _, ch := range req.Channels {
		keys[ch.Key] = true
	}
	for _, r := range a.running {
		for _, ch := range r.req.Channels {
			if keys[ch.Key] {
				if r.detached == nil {
					r.detached = make(map[string]bool)
				}
				r.detached[ch.Key] = true
			}
		}
	}

	a.next++
	a.running = append(a.running, &running{handle: a.next, req: req})
	return a.next
}

// Update advances every request by dt seconds. Completed requests are
// removed before their callbacks run, so callbacks may Submit.
func (a *Animator) Update(dt float64) {
	if a == nil || len(a.running) == 0 {
		return
	}

	current := a.running
	a.running = nil

	var done []*running
	active := make([]*running, 0, len(current))
	for _, r := range current {
		r.elapsed += dt
		t := 1.0
		if r.req.Duration > 0 && r.elapsed < r.req.Duration {
			t = r.elapsed / r.req.Duration
		}
		r.apply(t)
		if t >= 1 {
			done = append(done, r)
			continue
		}
		active = append(active, r)
	}

	// keep anything submitted while applying, after the survivors
	a.running = append(active, a.running...)

	for _, r := range done {
		if r.req.OnComplete != nil {
			r.req.OnComplete()
		}
	}
}

func (r *running) apply(t float64) {
	eased := r.req.Ease(t)
	if t >= 1 {
		eased = 1
	}
	for _, ch := range r.req.Channels {
		if ch.Apply == nil || r.detached[ch.Key] {
			continue
		}
		ch.Apply(ch.From + (ch.To-ch.From)*eased)
	}
}

// Running reports whether h is still in flight.
func (a *Animator) Running(h Handle) bool {
	if a == nil || h == 0 {
		return false
	}
	for _, r := range a.running {
		if r.handle == h {
			return true
		}
	}
	return false
}

// Len returns the number of requests in flight.
func (a *Animator) Len() int {
	if a == nil {
		return 0
	}
	return len(a.running)
}

// Clear drops every request without applying end values or calling
// completion callbacks.
func (a *Animator) Clear() {
	if a == nil {
		return
	}
	a.running = nil
}
