package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dharmasatrya/tripform/internal/catalog"
	"github.com/dharmasatrya/tripform/internal/form"
	"github.com/dharmasatrya/tripform/internal/models"
)

type Config struct {
	// IdleTTL is how long an untouched form is kept.
	IdleTTL time.Duration
	// SweepInterval is how often idle forms are looked for.
	SweepInterval time.Duration
	FormOptions   form.Options
	// OnEvict, if set, is called with the ID of every deleted or swept form.
	OnEvict func(id string)
}

func DefaultConfig() Config {
	return Config{
		IdleTTL:       30 * time.Minute,
		SweepInterval: time.Minute,
	}
}

type entry struct {
	mu       sync.Mutex
	form     *form.Form
	lastUsed time.Time
}

// Registry keeps one form per UI session. Events for one form are applied
// one at a time; different forms proceed independently.
type Registry struct {
	catalog *catalog.Catalog
	config  Config
	now     func() time.Time

	mu      sync.RWMutex
	entries map[string]*entry
}

func NewRegistry(cat *catalog.Catalog, config Config) *Registry {
	return &Registry{
		catalog: cat,
		config:  config,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// Create starts a new form and returns its ID with the initial view.
func (r *Registry) Create() (string, models.FormView) {
	id := uuid.NewString()
	f := form.New(r.catalog, r.config.FormOptions)
	e := &entry{form: f, lastUsed: r.now()}

	r.mu.Lock()
	r.entries[id] = e
	r.mu.Unlock()

	view := f.View()
	view.ID = id
	return id, view
}

// Do runs fn with exclusive access to the form identified by id.
func (r *Registry) Do(id string, fn func(*form.Form) error) error {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrSessionNotFound, id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastUsed = r.now()
	return fn(e.form)
}

func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	_, ok := r.entries[id]
	delete(r.entries, id)
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", models.ErrSessionNotFound, id)
	}
	r.evicted(id)
	return nil
}

func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[id]
	return ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Sweep drops forms idle for longer than IdleTTL and returns how many went.
func (r *Registry) Sweep() int {
	if r.config.IdleTTL <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.config.IdleTTL)

	r.mu.Lock()
	var removed []string
	for id, e := range r.entries {
		e.mu.Lock()
		idle := e.lastUsed.Before(cutoff)
		e.mu.Unlock()
		if idle {
			delete(r.entries, id)
			removed = append(removed, id)
		}
	}
	r.mu.Unlock()

	for _, id := range removed {
		r.evicted(id)
	}
	return len(removed)
}

func (r *Registry) evicted(id string) {
	if r.config.OnEvict != nil {
		r.config.OnEvict(id)
	}
}

// Run sweeps idle forms until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	if r.config.SweepInterval <= 0 {
		return
	}
	ticker := time.NewTicker(r.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				log.Printf("Swept %d idle form sessions (%d active)", n, r.Len())
			}
		case <-ctx.Done():
			return
		}
	}
}
