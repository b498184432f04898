package profile

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "profiles.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("closing store: %v", err)
		}
	})
	return store
}

func TestSaveAndGetProfile(t *testing.T) {
	store := newTestStore(t)

	p := Profile{
		ID:        "u1",
		Name:      "Asha",
		Email:     "asha@example.com",
		Interests: []string{"ML", "Databases"},
		CreatedAt: time.Now().UTC(),
	}
	if err := store.SaveProfile(p); err != nil {
		t.Fatalf("saving profile: %v", err)
	}

	got, err := store.GetProfile("u1")
	if err != nil {
		t.Fatalf("getting profile: %v", err)
	}
	if got.Name != "Asha" || got.Email != "asha@example.com" {
		t.Errorf("unexpected profile: %+v", got)
	}
	if len(got.Interests) != 2 || got.Interests[0] != "ML" {
		t.Errorf("interests did not round-trip: %v", got.Interests)
	}
}

func TestSaveProfileUpserts(t *testing.T) {
	store := newTestStore(t)

	p := Profile{ID: "u1", Name: "Asha"}
	if err := store.SaveProfile(p); err != nil {
		t.Fatalf("saving profile: %v", err)
	}
	p.Name = "Asha K"
	if err := store.SaveProfile(p); err != nil {
		t.Fatalf("re-saving profile: %v", err)
	}

	got, err := store.GetProfile("u1")
	if err != nil {
		t.Fatalf("getting profile: %v", err)
	}
	if got.Name != "Asha K" {
		t.Errorf("expected updated name, got %s", got.Name)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.GetProfile("ghost"); err == nil {
		t.Error("expected error for unknown profile")
	}
}

func TestAuthenticated(t *testing.T) {
	store := newTestStore(t)

	ok, err := store.Authenticated("u1")
	if err != nil {
		t.Fatalf("checking auth: %v", err)
	}
	if ok {
		t.Error("unknown profile must not authenticate")
	}

	if err := store.SaveProfile(Profile{ID: "u1", Name: "Asha"}); err != nil {
		t.Fatalf("saving profile: %v", err)
	}

	ok, err = store.Authenticated("u1")
	if err != nil {
		t.Fatalf("checking auth: %v", err)
	}
	if !ok {
		t.Error("saved profile must authenticate")
	}
}

func TestToggleBookmark(t *testing.T) {
	store := newTestStore(t)

	if err := store.SaveProfile(Profile{ID: "u1", Name: "Asha"}); err != nil {
		t.Fatalf("saving profile: %v", err)
	}

	bookmarked, err := store.ToggleBookmark("u1", "course-1")
	if err != nil {
		t.Fatalf("toggling bookmark: %v", err)
	}
	if !bookmarked {
		t.Error("first toggle should bookmark")
	}

	bookmarks, err := store.Bookmarks("u1")
	if err != nil {
		t.Fatalf("listing bookmarks: %v", err)
	}
	if len(bookmarks) != 1 || bookmarks[0] != "course-1" {
		t.Errorf("unexpected bookmarks: %v", bookmarks)
	}

	bookmarked, err = store.ToggleBookmark("u1", "course-1")
	if err != nil {
		t.Fatalf("toggling bookmark again: %v", err)
	}
	if bookmarked {
		t.Error("second toggle should remove the bookmark")
	}

	bookmarks, err = store.Bookmarks("u1")
	if err != nil {
		t.Fatalf("listing bookmarks: %v", err)
	}
	if len(bookmarks) != 0 {
		t.Errorf("expected no bookmarks, got %v", bookmarks)
	}
}
