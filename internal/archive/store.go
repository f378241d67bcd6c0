// Package archive keeps finished scan reports.
//
// Only exported payloads are stored, never a live session: a report is
// written once when the respondent reaches the final summary screen and
// is read back by the reports tool and the CLI. Storage is SQLite via the
// pure-Go modernc driver.
package archive

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/HendryAvila/quietscan/internal/catalog"
	"github.com/HendryAvila/quietscan/internal/summary"
	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// newID generates report ids.
var newID = uuid.NewString

// DBFile is the database file name inside the data directory.
const DBFile = "reports.db"

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("report not found")

// Config holds archive configuration. DataDir comes from config.Config.
type Config struct {
	DataDir string
}

// Summary is one row of a report listing.
type Summary struct {
	ID           string              `json:"id"`
	CreatedAt    string              `json:"created_at"`
	InitialWho   string              `json:"initial_who"`
	Scope        string              `json:"scope"`
	Pillars      []catalog.PillarKey `json:"pillars"`
	Roles        []string            `json:"roles"`
	OwnerScore   *float64            `json:"owner_score,omitempty"`
	ClientsScore *float64            `json:"clients_score,omitempty"`
}

// Report is a stored payload with its listing metadata.
type Report struct {
	Summary
	Payload *summary.Payload `json:"payload"`
}

// Store is the report archive.
type Store struct {
	db  *sql.DB
	cfg Config
}

// New opens (creating if needed) the archive under cfg.DataDir.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("archive: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, DBFile)
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("archive: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("archive: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS reports (
			id             TEXT PRIMARY KEY,
			created_at     TEXT NOT NULL,
			initial_who    TEXT NOT NULL DEFAULT '',
			scope          TEXT NOT NULL DEFAULT '',
			pillars        TEXT NOT NULL DEFAULT '',
			roles          TEXT NOT NULL DEFAULT '',
			owner_score    REAL,
			clients_score  REAL,
			payload        TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_reports_created ON reports(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save stores p and returns the new report id.
func (s *Store) Save(p *summary.Payload) (string, error) {
	if p == nil {
		return "", errors.New("archive: nil payload")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("archive: encode payload: %w", err)
	}

	id := newID()
	pillars := make([]string, len(p.Meta.Pillars))
	for i, k := range p.Meta.Pillars {
		pillars[i] = string(k)
	}
	roles := make([]string, len(p.Meta.RolesSequence))
	for i, r := range p.Meta.RolesSequence {
		roles[i] = string(r)
	}

	_, err = s.db.Exec(
		`INSERT INTO reports (id, created_at, initial_who, scope, pillars, roles, owner_score, clients_score, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.Meta.Timestamp, p.Meta.InitialWho, p.Meta.Scope,
		strings.Join(pillars, ","), strings.Join(roles, ","),
		nullableScore(p.Roles.Owner.GlobalScore()),
		nullableScore(p.Roles.ClientsAverage.GlobalScore()),
		string(data),
	)
	if err != nil {
		return "", fmt.Errorf("archive: insert report: %w", err)
	}
	return id, nil
}

// Get returns the report with id, or ErrNotFound.
func (s *Store) Get(id string) (*Report, error) {
	row := s.db.QueryRow(
		`SELECT id, created_at, initial_who, scope, pillars, roles, owner_score, clients_score, payload
		 FROM reports WHERE id = ?`, id,
	)
	var (
		r       Report
		pillars string
		roles   string
		payload string
	)
	err := row.Scan(&r.ID, &r.CreatedAt, &r.InitialWho, &r.Scope, &pillars, &roles,
		&r.OwnerScore, &r.ClientsScore, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("archive: get report: %w", err)
	}
	r.Pillars = splitPillars(pillars)
	r.Roles = splitList(roles)

	var p summary.Payload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, fmt.Errorf("archive: decode report %s: %w", id, err)
	}
	r.Payload = &p
	return &r, nil
}

// List returns the most recent reports first. A non-positive limit
// defaults to 20.
func (s *Store) List(limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, created_at, initial_who, scope, pillars, roles, owner_score, clients_score
		 FROM reports ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("archive: list reports: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			r       Summary
			pillars string
			roles   string
		)
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.InitialWho, &r.Scope, &pillars, &roles,
			&r.OwnerScore, &r.ClientsScore); err != nil {
			return nil, fmt.Errorf("archive: scan report: %w", err)
		}
		r.Pillars = splitPillars(pillars)
		r.Roles = splitList(roles)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Count returns the number of stored reports.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM reports`).Scan(&n); err != nil {
		return 0, fmt.Errorf("archive: count reports: %w", err)
	}
	return n, nil
}

func nullableScore(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func splitPillars(s string) []catalog.PillarKey {
	parts := splitList(s)
	out := make([]catalog.PillarKey, 0, len(parts))
	for _, p := range parts {
		out = append(out, catalog.PillarKey(p))
	}
	return out
}
