package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/avolokh/lazaret/internal/model"
)

// SQLiteStore is a file-backed QuarantineStore. Resolution is a single
// conditional UPDATE, so the compare-and-set guarantee comes from the
// database, not from application-level locking.
type SQLiteStore struct {
	conn *sql.DB
	path string
}

// OpenSQLite creates or opens a SQLite-backed store at the given path.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return &SQLiteStore{conn: conn, path: dbPath}, nil
}

func migrate(conn *sql.DB) error {
	_, err := conn.Exec(`
CREATE TABLE IF NOT EXISTS quarantine_items (
	id             TEXT PRIMARY KEY,
	claim_id       TEXT NOT NULL,
	analysis_json  TEXT NOT NULL,
	status         TEXT NOT NULL,
	final_verdict  TEXT,
	created_at     TIMESTAMP NOT NULL,
	resolved_at    TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_quarantine_status ON quarantine_items(status, created_at);

CREATE TABLE IF NOT EXISTS reconciliations (
	item_id             TEXT NOT NULL,
	claim_id            TEXT NOT NULL,
	confidence_score    REAL NOT NULL,
	manipulation_score  REAL NOT NULL,
	verdict             TEXT NOT NULL,
	reviewer_confidence INTEGER NOT NULL,
	reviewer_expertise  TEXT,
	resolved_at         TIMESTAMP NOT NULL
);
`)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Create stores a new pending item.
func (s *SQLiteStore) Create(ctx context.Context, item model.QuarantineItem) error {
	analysis, err := json.Marshal(item.Analysis)
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}

	_, err = s.conn.ExecContext(ctx,
		`INSERT INTO quarantine_items (id, claim_id, analysis_json, status, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		item.ID, item.ClaimID, string(analysis), string(item.Status), item.CreatedAt,
	)
	return err
}

// Get returns an item by ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.QuarantineItem, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT id, claim_id, analysis_json, status, final_verdict, created_at, resolved_at
		 FROM quarantine_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", model.ErrQuarantineNotFound, id)
	}
	return item, err
}

// ListPending returns items awaiting review, oldest first.
func (s *SQLiteStore) ListPending(ctx context.Context, limit int) ([]model.QuarantineItem, error) {
	query := `SELECT id, claim_id, analysis_json, status, final_verdict, created_at, resolved_at
		FROM quarantine_items WHERE status = ? ORDER BY created_at`
	args := []any{string(model.StatusPendingReview)}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.QuarantineItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// Resolve transitions a pending item to resolved with a conditional UPDATE.
// Zero rows affected means the item was missing or already resolved; one
// follow-up read distinguishes the two.
func (s *SQLiteStore) Resolve(ctx context.Context, id string, verdict model.UserVerdict) (*model.QuarantineItem, error) {
	now := time.Now().UTC()
	res, err := s.conn.ExecContext(ctx,
		`UPDATE quarantine_items
		 SET status = ?, final_verdict = ?, resolved_at = ?
		 WHERE id = ? AND status = ?`,
		string(model.StatusResolved), string(verdict.Verdict), now,
		id, string(model.StatusPendingReview),
	)
	if err != nil {
		return nil, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		if _, err := s.Get(ctx, id); err != nil {
			return nil, err // not found
		}
		return nil, fmt.Errorf("%w: %s", model.ErrAlreadyResolved, id)
	}

	return s.Get(ctx, id)
}

// SaveReconciliation records the pairing of automated scores with the
// human verdict.
func (s *SQLiteStore) SaveReconciliation(ctx context.Context, rec model.ReconciliationRecord) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO reconciliations
		 (item_id, claim_id, confidence_score, manipulation_score, verdict, reviewer_confidence, reviewer_expertise, resolved_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ItemID, rec.ClaimID, rec.ConfidenceScore, rec.ManipulationScore,
		string(rec.Verdict), rec.ReviewerConfidence, rec.ReviewerExpertise, rec.ResolvedAt,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*model.QuarantineItem, error) {
	var (
		item         model.QuarantineItem
		analysisJSON string
		status       string
		finalVerdict sql.NullString
		resolvedAt   sql.NullTime
	)
	if err := row.Scan(&item.ID, &item.ClaimID, &analysisJSON, &status, &finalVerdict, &item.CreatedAt, &resolvedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(analysisJSON), &item.Analysis); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}
	item.Status = model.QuarantineStatus(status)
	if finalVerdict.Valid {
		item.FinalVerdict = model.Verdict(finalVerdict.String)
	}
	if resolvedAt.Valid {
		t := resolvedAt.Time
		item.ResolvedAt = &t
	}
	return &item, nil
}
