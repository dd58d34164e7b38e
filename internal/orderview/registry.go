package orderview

import (
	"fmt"
	"sync"
	"time"
)

// Factory builds a controller whose collaborators carry credential.
type Factory func(credential string) *Controller

type registryEntry struct {
	sid        string
	credential string
	ctrl       *Controller
	lastUsed   time.Time
}

// Registry keeps one controller per browser session and order, so repeated
// submissions from the same browser share a single-flight guard.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*registryEntry
	newCtrl Factory
	now     func() time.Time
}

func NewRegistry(f Factory) *Registry {
	return &Registry{
		entries: make(map[string]*registryEntry),
		newCtrl: f,
		now:     time.Now,
	}
}

func registryKey(sid string, orderID int64) string {
	return fmt.Sprintf("%s/%d", sid, orderID)
}

// Get returns the controller of (sid, orderID), replacing it when the
// session's credential changed since it was built.
func (r *Registry) Get(sid string, orderID int64, credential string) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := registryKey(sid, orderID)
	e, ok := r.entries[key]
	if !ok || e.credential != credential {
		e = &registryEntry{sid: sid, credential: credential, ctrl: r.newCtrl(credential)}
		r.entries[key] = e
	}
	e.lastUsed = r.now()
	return e.ctrl
}

// Forget drops every controller of sid.
func (r *Registry) Forget(sid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, e := range r.entries {
		if e.sid == sid {
			delete(r.entries, k)
		}
	}
}

// Prune drops controllers unused for longer than idle. Controllers with an
// update in flight are kept.
func (r *Registry) Prune(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	n := 0
	for k, e := range r.entries {
		if e.lastUsed.Before(cutoff) && !e.ctrl.Busy() {
			delete(r.entries, k)
			n++
		}
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Wait blocks until the background tasks of every registered controller end.
func (r *Registry) Wait() {
	r.mu.Lock()
	ctrls := make([]*Controller, 0, len(r.entries))
	for _, e := range r.entries {
		ctrls = append(ctrls, e.ctrl)
	}
	r.mu.Unlock()

	for _, c := range ctrls {
		c.Wait()
	}
}
