// Package warehouse schedules provider catalog refreshes. Each provider
// runs on its own interval; every fetch replaces that provider's course
// group in the shared collection and fans the fresh courses out through the
// realtime hub.
package warehouse

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/coursexpert/coursexpert/pkg/catalog"
	"github.com/coursexpert/coursexpert/pkg/log"
	"github.com/coursexpert/coursexpert/pkg/realtime"
)

type Config struct {
	// DefaultInterval is used for providers added without an explicit
	// interval.
	DefaultInterval time.Duration
}

type Warehouse struct {
	config     Config
	collection *catalog.Collection
	hub        *realtime.Hub

	providers map[string]catalog.Provider
	intervals map[string]time.Duration
	stops     map[string]chan struct{}

	stopCh    chan struct{}
	wg        sync.WaitGroup
	ctx       context.Context
	ctxCancel context.CancelFunc
	started   bool
	mu        sync.Mutex

	logger *log.Logger
}

func NewWarehouse(config Config, collection *catalog.Collection, hub *realtime.Hub) *Warehouse {
	if config.DefaultInterval == 0 {
		config.DefaultInterval = 6 * time.Hour
	}
	return &Warehouse{
		config:     config,
		collection: collection,
		hub:        hub,
		providers:  make(map[string]catalog.Provider),
		intervals:  make(map[string]time.Duration),
		stops:      make(map[string]chan struct{}),
		logger:     log.ForComponent("warehouse"),
	}
}

// AddProvider registers a provider with the default refresh interval.
func (w *Warehouse) AddProvider(name string, provider catalog.Provider) error {
	return w.AddProviderWithInterval(name, provider, w.config.DefaultInterval)
}

// AddProviderWithInterval registers a provider with its own refresh
// interval. Adding while running is allowed; the provider joins on the next
// Start.
func (w *Warehouse) AddProviderWithInterval(name string, provider catalog.Provider, interval time.Duration) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.providers[name]; exists {
		return fmt.Errorf("provider %s already added", name)
	}
	if interval <= 0 {
		interval = w.config.DefaultInterval
	}

	w.providers[name] = provider
	w.intervals[name] = interval

	if w.started {
		w.startProviderLoop(name, provider, interval)
	}
	return nil
}

// RemoveProvider drops a provider from the schedule and removes its course
// group from the collection.
func (w *Warehouse) RemoveProvider(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.providers[name]; !exists {
		return fmt.Errorf("provider %s not found", name)
	}

	delete(w.providers, name)
	delete(w.intervals, name)
	if stop, ok := w.stops[name]; ok {
		close(stop)
		delete(w.stops, name)
	}
	w.collection.SetProviderCourses(name, nil)
	return nil
}

// Start performs an initial fetch for every provider, then runs each
// provider's refresh loop until the context is cancelled or Stop is called.
// Start is non-blocking.
func (w *Warehouse) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return fmt.Errorf("warehouse already started")
	}

	w.ctx, w.ctxCancel = context.WithCancel(ctx)
	w.stopCh = make(chan struct{})
	w.started = true

	for name, provider := range w.providers {
		w.startProviderLoop(name, provider, w.intervals[name])
	}
	return nil
}

// startProviderLoop must be called with w.mu held.
func (w *Warehouse) startProviderLoop(name string, provider catalog.Provider, interval time.Duration) {
	stop := make(chan struct{})
	w.stops[name] = stop

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		w.fetchProvider(w.ctx, name, provider)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-w.stopCh:
				return
			case <-stop:
				return
			case <-ticker.C:
				w.fetchProvider(w.ctx, name, provider)
			}
		}
	}()
}

// Stop halts all refresh loops and waits for in-flight fetches to finish.
func (w *Warehouse) Stop() {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return
	}
	w.started = false
	close(w.stopCh)
	w.ctxCancel()
	w.mu.Unlock()

	w.wg.Wait()
}

// FetchOnce runs a single fetch for every registered provider, replacing
// each provider's course group. Used by the CLI commands that operate on a
// fresh catalog without running the daemon.
func (w *Warehouse) FetchOnce(ctx context.Context) error {
	w.mu.Lock()
	providers := make(map[string]catalog.Provider, len(w.providers))
	for name, p := range w.providers {
		providers[name] = p
	}
	w.mu.Unlock()

	var errs []error
	for name, provider := range providers {
		if err := w.fetchProvider(ctx, name, provider); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("fetching providers: %v", errs)
	}
	return nil
}

// fetchProvider streams one provider's catalog into a fresh course group.
// A failed fetch degrades to an empty contribution: the collection stays
// valid and downstream queries simply see no courses from this provider.
func (w *Warehouse) fetchProvider(ctx context.Context, name string, provider catalog.Provider) error {
	w.logger.Infof("refreshing %s", name)

	courseCh := make(chan catalog.Course, 64)
	fetchErr := make(chan error, 1)

	go func() {
		defer close(courseCh)
		fetchErr <- provider.FetchCourses(ctx, courseCh)
	}()

	var courses []catalog.Course
	now := time.Now().UTC()
	for course := range courseCh {
		courses = append(courses, course)
		if w.hub != nil {
			w.hub.BroadcastCourse(realtime.CourseEvent{
				ID:        course.ID,
				Provider:  name,
				Platform:  course.Platform,
				Title:     course.Title,
				Level:     course.Level,
				Price:     course.Price,
				FetchedAt: now,
			})
		}
	}

	if err := <-fetchErr; err != nil {
		w.logger.Warnf("fetch failed for %s, keeping empty contribution: %v", name, err)
		w.collection.SetProviderCourses(name, nil)
		return err
	}

	snapshot := w.collection.SetProviderCourses(name, courses)
	if w.hub != nil {
		w.hub.BroadcastSnapshot(snapshot)
	}
	w.logger.Infof("%s contributed %d courses (snapshot %s)", name, len(courses), snapshot)
	return nil
}
