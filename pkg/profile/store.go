// Package profile implements the identity/document-store boundary: a
// key-value lookup of user profiles plus per-user course bookmarks. The
// catalog core only depends on read access to "is a user authenticated";
// profile fields are opaque to it.
//
// The default backend is a local sqlite database so the tool works without
// any hosted identity service.
package profile

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Profile is one user's document: identity fields and declared interests.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Interests []string  `json:"interests"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists profiles and bookmarks in a sqlite database.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if necessary) the profile database at the given
// path.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening profile database: %w", err)
	}

	store := &Store{db: db}
	if err := store.createTables(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("creating tables: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return store, nil
}

func (s *Store) createTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			interests TEXT NOT NULL DEFAULT '[]',
			created_at TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS bookmarks (
			profile_id TEXT NOT NULL,
			course_id TEXT NOT NULL,
			created_at TEXT NOT NULL,
			PRIMARY KEY (profile_id, course_id)
		);
	`)
	return err
}

// SaveProfile inserts or replaces a profile document.
func (s *Store) SaveProfile(p Profile) error {
	if p.ID == "" {
		return fmt.Errorf("profile ID is required")
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	interests, err := json.Marshal(p.Interests)
	if err != nil {
		return fmt.Errorf("encoding interests: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO profiles (id, name, email, interests, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Email, string(interests), p.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving profile %s: %w", p.ID, err)
	}
	return nil
}

// GetProfile looks up a profile by its opaque identifier.
func (s *Store) GetProfile(id string) (*Profile, error) {
	row := s.db.QueryRow(`
		SELECT id, name, email, interests, created_at FROM profiles WHERE id = ?
	`, id)

	var p Profile
	var interests, createdAt string
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &interests, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("profile %s not found", id)
		}
		return nil, fmt.Errorf("loading profile %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(interests), &p.Interests); err != nil {
		// Malformed interests degrade to empty rather than failing the lookup.
		p.Interests = nil
	}
	if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
		p.CreatedAt = parsed
	}

	return &p, nil
}

// Authenticated reports whether a profile exists for the identifier. This is
// the only profile fact the catalog core consumes (gating protected views).
func (s *Store) Authenticated(id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM profiles WHERE id = ?`, id).Scan(&count); err != nil {
		return false, fmt.Errorf("checking profile %s: %w", id, err)
	}
	return count > 0, nil
}

// ToggleBookmark flips the bookmark for (profile, course) and reports the
// new state: true when the course is now bookmarked.
func (s *Store) ToggleBookmark(profileID, courseID string) (bool, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM bookmarks WHERE profile_id = ? AND course_id = ?
	`, profileID, courseID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking bookmark: %w", err)
	}

	if count > 0 {
		_, err = s.db.Exec(`
			DELETE FROM bookmarks WHERE profile_id = ? AND course_id = ?
		`, profileID, courseID)
		if err != nil {
			return false, fmt.Errorf("removing bookmark: %w", err)
		}
		return false, nil
	}

	_, err = s.db.Exec(`
		INSERT INTO bookmarks (profile_id, course_id, created_at) VALUES (?, ?, ?)
	`, profileID, courseID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return false, fmt.Errorf("adding bookmark: %w", err)
	}
	return true, nil
}

// Bookmarks returns the bookmarked course IDs for a profile, oldest first.
func (s *Store) Bookmarks(profileID string) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT course_id FROM bookmarks WHERE profile_id = ? ORDER BY created_at, course_id
	`, profileID)
	if err != nil {
		return nil, fmt.Errorf("loading bookmarks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning bookmark: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
