package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mkarlsen/photodiaryctl/internal/entry"
	"github.com/mkarlsen/photodiaryctl/internal/event"
	"github.com/mkarlsen/photodiaryctl/internal/storage"
	_ "github.com/tursodatabase/go-libsql"
)

// Store implements storage.Storage using SQLite via Turso/libSQL.
type Store struct {
	db       *sql.DB
	notifier *storage.Notifier
}

// New creates a new SQLite storage backend rooted at dataDir.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", storage.ErrStorage, err)
	}

	dbPath := filepath.Join(dataDir, "photodiary.db")
	db, err := sql.Open("libsql", "file:"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", storage.ErrStorage, err)
	}

	// Enable WAL mode. The libsql driver rejects Exec for statements that
	// return rows, and this PRAGMA reports the resulting journal mode.
	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode=WAL").Scan(&journalMode); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling WAL mode: %v", storage.ErrStorage, err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, notifier: storage.NewNotifier()}, nil
}

func createSchema(db *sql.DB) error {
	// The libsql driver executes only the first statement of a multi-statement
	// Exec, so each schema statement runs on its own.
	schema := []string{
		`CREATE TABLE IF NOT EXISTS entries (
			id         TEXT PRIMARY KEY,
			image_uris TEXT NOT NULL,
			caption    TEXT NOT NULL,
			timestamp  INTEGER NOT NULL,
			page_name  TEXT,
			event_id   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_timestamp ON entries(timestamp DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_event ON entries(event_id)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_event_page ON entries(event_id, page_name)`,
		`CREATE TABLE IF NOT EXISTS events (
			id              TEXT PRIMARY KEY,
			name            TEXT NOT NULL,
			entry_ids       TEXT NOT NULL,
			cover_image_uri TEXT,
			timestamp       INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp DESC)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("%w: creating schema: %v", storage.ErrStorage, err)
		}
	}
	return nil
}

// Close closes the database connection and live-query subscriptions.
func (s *Store) Close() error {
	s.notifier.Close()
	return s.db.Close()
}

// Subscribe returns a change-signal channel tied to ctx.
func (s *Store) Subscribe(ctx context.Context) <-chan struct{} {
	return s.notifier.Subscribe(ctx)
}

// PutEntry inserts or replaces an entry by ID.
func (s *Store) PutEntry(e entry.Entry) error {
	uris, err := storage.EncodeStringList(e.ImageURIs)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO entries (id, image_uris, caption, timestamp, page_name, event_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, uris, e.Caption, e.Timestamp.UnixMilli(),
		nullable(e.PageName), nullable(e.EventID),
	)
	if err != nil {
		return fmt.Errorf("%w: inserting entry: %v", storage.ErrStorage, err)
	}
	s.notifier.Broadcast()
	return nil
}

// PutEntryLinked persists an entry and appends its ID to the owning event's
// membership list in a single transaction. A missing event leaves the entry
// write intact and is not an error.
func (s *Store) PutEntryLinked(e entry.Entry, eventID string) error {
	uris, err := storage.EncodeStringList(e.ImageURIs)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", storage.ErrStorage, err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT OR REPLACE INTO entries (id, image_uris, caption, timestamp, page_name, event_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, uris, e.Caption, e.Timestamp.UnixMilli(),
		nullable(e.PageName), nullable(e.EventID),
	)
	if err != nil {
		return fmt.Errorf("%w: inserting entry: %v", storage.ErrStorage, err)
	}

	var rawIDs string
	err = tx.QueryRow("SELECT entry_ids FROM events WHERE id = ?", eventID).Scan(&rawIDs)
	switch {
	case err == sql.ErrNoRows:
		// No event to link; keep the entry write.
	case err != nil:
		return fmt.Errorf("%w: querying event: %v", storage.ErrStorage, err)
	default:
		ids, err := storage.DecodeStringList(rawIDs)
		if err != nil {
			return err
		}
		ev := event.Event{EntryIDs: ids}
		if ev.LinkEntry(e.ID) {
			encoded, err := storage.EncodeStringList(ev.EntryIDs)
			if err != nil {
				return err
			}
			if _, err := tx.Exec("UPDATE events SET entry_ids = ? WHERE id = ?", encoded, eventID); err != nil {
				return fmt.Errorf("%w: updating event: %v", storage.ErrStorage, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %v", storage.ErrStorage, err)
	}
	s.notifier.Broadcast()
	return nil
}

// DeleteEntry removes an entry by ID.
func (s *Store) DeleteEntry(id string) error {
	res, err := s.db.Exec("DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%w: deleting entry: %v", storage.ErrStorage, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking delete result: %v", storage.ErrStorage, err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	s.notifier.Broadcast()
	return nil
}

// DeleteEntriesByEvent removes every entry belonging to the event.
func (s *Store) DeleteEntriesByEvent(eventID string) error {
	if _, err := s.db.Exec("DELETE FROM entries WHERE event_id = ?", eventID); err != nil {
		return fmt.Errorf("%w: deleting entries for event: %v", storage.ErrStorage, err)
	}
	s.notifier.Broadcast()
	return nil
}

// DeleteEntriesByEventAndPage removes every entry matching both the event and
// the page name.
func (s *Store) DeleteEntriesByEventAndPage(eventID, pageName string) error {
	if _, err := s.db.Exec(
		"DELETE FROM entries WHERE event_id = ? AND page_name = ?", eventID, pageName,
	); err != nil {
		return fmt.Errorf("%w: deleting page entries: %v", storage.ErrStorage, err)
	}
	s.notifier.Broadcast()
	return nil
}

// GetEntry retrieves an entry by ID.
func (s *Store) GetEntry(id string) (entry.Entry, error) {
	row := s.db.QueryRow(
		"SELECT id, image_uris, caption, timestamp, page_name, event_id FROM entries WHERE id = ?", id,
	)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return entry.Entry{}, storage.ErrNotFound
	}
	return e, err
}

// ListEntriesByEvent returns the event's entries, newest first.
func (s *Store) ListEntriesByEvent(eventID string) ([]entry.Entry, error) {
	return s.queryEntries(
		`SELECT id, image_uris, caption, timestamp, page_name, event_id FROM entries
		 WHERE event_id = ? ORDER BY timestamp DESC, id`, eventID,
	)
}

// ListEntriesByEventAndPage returns the event's entries on a page, newest first.
func (s *Store) ListEntriesByEventAndPage(eventID, pageName string) ([]entry.Entry, error) {
	return s.queryEntries(
		`SELECT id, image_uris, caption, timestamp, page_name, event_id FROM entries
		 WHERE event_id = ? AND page_name = ? ORDER BY timestamp DESC, id`, eventID, pageName,
	)
}

// ListUnassignedEntries returns entries with no event, newest first.
func (s *Store) ListUnassignedEntries() ([]entry.Entry, error) {
	return s.queryEntries(
		`SELECT id, image_uris, caption, timestamp, page_name, event_id FROM entries
		 WHERE event_id IS NULL ORDER BY timestamp DESC, id`,
	)
}

// ListAllEntries returns every entry, newest first.
func (s *Store) ListAllEntries() ([]entry.Entry, error) {
	return s.queryEntries(
		`SELECT id, image_uris, caption, timestamp, page_name, event_id FROM entries
		 ORDER BY timestamp DESC, id`,
	)
}

// PutEvent inserts or replaces an event by ID.
func (s *Store) PutEvent(ev event.Event) error {
	ids, err := storage.EncodeStringList(ev.EntryIDs)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO events (id, name, entry_ids, cover_image_uri, timestamp)
		 VALUES (?, ?, ?, ?, ?)`,
		ev.ID, ev.Name, ids, nullable(ev.CoverImageURI), ev.Timestamp.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("%w: inserting event: %v", storage.ErrStorage, err)
	}
	s.notifier.Broadcast()
	return nil
}

// DeleteEvent removes an event row by ID. Entries referencing the event are
// not touched; callers cascade explicitly.
func (s *Store) DeleteEvent(id string) error {
	res, err := s.db.Exec("DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%w: deleting event: %v", storage.ErrStorage, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking delete result: %v", storage.ErrStorage, err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	s.notifier.Broadcast()
	return nil
}

// GetEvent retrieves an event by ID.
func (s *Store) GetEvent(id string) (event.Event, error) {
	row := s.db.QueryRow(
		"SELECT id, name, entry_ids, cover_image_uri, timestamp FROM events WHERE id = ?", id,
	)
	ev, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return event.Event{}, storage.ErrNotFound
	}
	return ev, err
}

// ListAllEvents returns every event, newest first.
func (s *Store) ListAllEvents() ([]event.Event, error) {
	rows, err := s.db.Query(
		"SELECT id, name, entry_ids, cover_image_uri, timestamp FROM events ORDER BY timestamp DESC, id",
	)
	if err != nil {
		return nil, fmt.Errorf("%w: listing events: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating events: %v", storage.ErrStorage, err)
	}
	return events, nil
}

func (s *Store) queryEntries(query string, args ...any) ([]entry.Entry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listing entries: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	var entries []entry.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating entries: %v", storage.ErrStorage, err)
	}
	return entries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (entry.Entry, error) {
	var e entry.Entry
	var uris string
	var millis int64
	var pageName, eventID sql.NullString
	if err := row.Scan(&e.ID, &uris, &e.Caption, &millis, &pageName, &eventID); err != nil {
		if err == sql.ErrNoRows {
			return entry.Entry{}, err
		}
		return entry.Entry{}, fmt.Errorf("%w: scanning entry: %v", storage.ErrStorage, err)
	}

	decoded, err := storage.DecodeStringList(uris)
	if err != nil {
		return entry.Entry{}, err
	}
	e.ImageURIs = decoded
	e.Timestamp = time.UnixMilli(millis).UTC()
	e.PageName = pageName.String
	e.EventID = eventID.String
	return e, nil
}

func scanEvent(row scanner) (event.Event, error) {
	var ev event.Event
	var ids string
	var millis int64
	var cover sql.NullString
	if err := row.Scan(&ev.ID, &ev.Name, &ids, &cover, &millis); err != nil {
		if err == sql.ErrNoRows {
			return event.Event{}, err
		}
		return event.Event{}, fmt.Errorf("%w: scanning event: %v", storage.ErrStorage, err)
	}

	decoded, err := storage.DecodeStringList(ids)
	if err != nil {
		return event.Event{}, err
	}
	ev.EntryIDs = decoded
	ev.Timestamp = time.UnixMilli(millis).UTC()
	ev.CoverImageURI = cover.String
	return ev, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
