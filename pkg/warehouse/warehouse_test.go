package warehouse

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/coursexpert/coursexpert/pkg/catalog"
	"github.com/coursexpert/coursexpert/pkg/realtime"
)

// fakeProvider emits a fixed set of courses, or fails on demand.
type fakeProvider struct {
	name    string
	courses []catalog.Course
	fail    bool
}

func (p *fakeProvider) Type() string                 { return "fake" }
func (p *fakeProvider) Name() string                 { return p.name }
func (p *fakeProvider) ConfigType() interface{}      { return &struct{}{} }
func (p *fakeProvider) GetConfig() interface{}       { return nil }
func (p *fakeProvider) SetConfig(interface{}) error  { return nil }
func (p *fakeProvider) Close() error                 { return nil }
func (p *fakeProvider) FetchCourses(ctx context.Context, ch chan<- catalog.Course) error {
	if p.fail {
		return fmt.Errorf("upstream unavailable")
	}
	for _, course := range p.courses {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ch <- course:
		}
	}
	return nil
}
func (p *fakeProvider) Factory(name string, config interface{}) (catalog.Provider, error) {
	return &fakeProvider{name: name}, nil
}

func fakeCourses(n int) []catalog.Course {
	courses := make([]catalog.Course, n)
	for i := range courses {
		courses[i] = catalog.Normalize(map[string]any{
			"id":    fmt.Sprintf("f-%d", i),
			"title": "Fake Course",
		}, i)
	}
	return courses
}

func TestFetchOncePopulatesCollection(t *testing.T) {
	collection := catalog.NewCollection()
	wh := NewWarehouse(Config{}, collection, nil)

	if err := wh.AddProvider("alpha", &fakeProvider{courses: fakeCourses(3)}); err != nil {
		t.Fatalf("adding provider: %v", err)
	}
	if err := wh.AddProvider("beta", &fakeProvider{courses: fakeCourses(2)}); err != nil {
		t.Fatalf("adding provider: %v", err)
	}

	if err := wh.FetchOnce(context.Background()); err != nil {
		t.Fatalf("fetch once: %v", err)
	}

	if collection.Len() != 5 {
		t.Errorf("expected 5 courses, got %d", collection.Len())
	}
	if len(collection.ProviderCourses("alpha")) != 3 {
		t.Errorf("expected 3 courses from alpha")
	}
}

func TestFailedFetchDegradesToEmptyContribution(t *testing.T) {
	collection := catalog.NewCollection()
	wh := NewWarehouse(Config{}, collection, nil)

	if err := wh.AddProvider("good", &fakeProvider{courses: fakeCourses(2)}); err != nil {
		t.Fatalf("adding provider: %v", err)
	}
	if err := wh.AddProvider("bad", &fakeProvider{fail: true}); err != nil {
		t.Fatalf("adding provider: %v", err)
	}

	err := wh.FetchOnce(context.Background())
	if err == nil {
		t.Fatal("expected aggregate error from failing provider")
	}

	// The failure must not poison the healthy provider's contribution.
	if len(collection.ProviderCourses("good")) != 2 {
		t.Errorf("expected good provider's courses to survive, got %d", len(collection.ProviderCourses("good")))
	}
	if len(collection.ProviderCourses("bad")) != 0 {
		t.Errorf("expected empty contribution for failed provider")
	}
}

func TestDuplicateProviderRejected(t *testing.T) {
	wh := NewWarehouse(Config{}, catalog.NewCollection(), nil)

	if err := wh.AddProvider("dup", &fakeProvider{}); err != nil {
		t.Fatalf("adding provider: %v", err)
	}
	if err := wh.AddProvider("dup", &fakeProvider{}); err == nil {
		t.Error("expected error adding duplicate provider")
	}
}

func TestRemoveProviderClearsContribution(t *testing.T) {
	collection := catalog.NewCollection()
	wh := NewWarehouse(Config{}, collection, nil)

	if err := wh.AddProvider("gone", &fakeProvider{courses: fakeCourses(2)}); err != nil {
		t.Fatalf("adding provider: %v", err)
	}
	if err := wh.FetchOnce(context.Background()); err != nil {
		t.Fatalf("fetch once: %v", err)
	}

	if err := wh.RemoveProvider("gone"); err != nil {
		t.Fatalf("removing provider: %v", err)
	}
	if collection.Len() != 0 {
		t.Errorf("expected contribution cleared, got %d courses", collection.Len())
	}
	if err := wh.RemoveProvider("gone"); err == nil {
		t.Error("expected error removing unknown provider")
	}
}

func TestFetchBroadcastsEvents(t *testing.T) {
	collection := catalog.NewCollection()
	hub := realtime.NewHub(16)
	wh := NewWarehouse(Config{}, collection, hub)

	id, events := hub.Register()
	defer hub.Unregister(id)

	if err := wh.AddProvider("alpha", &fakeProvider{courses: fakeCourses(2)}); err != nil {
		t.Fatalf("adding provider: %v", err)
	}
	if err := wh.FetchOnce(context.Background()); err != nil {
		t.Fatalf("fetch once: %v", err)
	}

	var courseEvents, snapshotEvents int
	timeout := time.After(2 * time.Second)
	for courseEvents < 2 || snapshotEvents < 1 {
		select {
		case event := <-events:
			switch event.Type {
			case "course":
				courseEvents++
			case "snapshot":
				snapshotEvents++
			}
		case <-timeout:
			t.Fatalf("timed out: %d course, %d snapshot events", courseEvents, snapshotEvents)
		}
	}
}

func TestStartAndStop(t *testing.T) {
	collection := catalog.NewCollection()
	wh := NewWarehouse(Config{DefaultInterval: time.Hour}, collection, nil)

	if err := wh.AddProvider("alpha", &fakeProvider{courses: fakeCourses(1)}); err != nil {
		t.Fatalf("adding provider: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := wh.Start(ctx); err != nil {
		t.Fatalf("starting warehouse: %v", err)
	}
	if err := wh.Start(ctx); err == nil {
		t.Error("expected error starting twice")
	}

	// Initial fetch runs asynchronously on Start.
	deadline := time.Now().Add(2 * time.Second)
	for collection.Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("initial fetch never completed")
		}
		time.Sleep(10 * time.Millisecond)
	}

	wh.Stop()
	// Stop is idempotent.
	wh.Stop()
}
