// Package database persists planning sessions in PostgreSQL. Plans are stored
// as JSON blobs keyed by session ID; the generated PDF is attached to the row
// later so downloads never touch the filesystem.
package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"raahi/config"
	"raahi/models"
)

type Store struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// ─── Records ──────────────────────────────────────────────────────────────────

type PlanRecord struct {
	SessionID   string    `json:"session_id"`
	RequestJSON string    `json:"request_json"`
	PlanJSON    string    `json:"plan_json"`
	Source      string    `json:"source"`
	PDFData     []byte    `json:"pdf_data,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Plan decodes the stored plan blob.
func (r *PlanRecord) Plan() (*models.TripPlan, error) {
	var plan models.TripPlan
	if err := json.Unmarshal([]byte(r.PlanJSON), &plan); err != nil {
		return nil, fmt.Errorf("failed to decode stored plan %s: %w", r.SessionID, err)
	}
	return &plan, nil
}

// ─── Init ─────────────────────────────────────────────────────────────────────

// Connect opens the pool, waits for the server to come up and runs the
// migrations.
func Connect(cfg config.PostgresConfig, log *zap.SugaredLogger) (*Store, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// The database container may take a moment to be ready.
	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		log.Infof("⏳ Waiting for database... attempt %d/10: %v", i+1, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database after retries: %w", err)
	}

	s := &Store{db: db, log: log}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	log.Info("✅ Database connected and migrated")
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// ─── Migrations ───────────────────────────────────────────────────────────────

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS plans (
			session_id   TEXT PRIMARY KEY,
			request_json TEXT NOT NULL,
			plan_json    TEXT NOT NULL,
			source       TEXT NOT NULL,
			pdf_data     BYTEA,
			created_at   TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_plans_created_at
			ON plans(created_at DESC)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// ─── CRUD ─────────────────────────────────────────────────────────────────────

// SavePlan stores the assembled plan alongside the request that produced it.
func (s *Store) SavePlan(prefs models.TripPreferences, plan *models.TripPlan) error {
	reqJSON, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	planJSON, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO plans (session_id, request_json, plan_json, source)
		VALUES ($1, $2, $3, $4)`,
		plan.SessionID, string(reqJSON), string(planJSON), plan.Source)
	return err
}

func (s *Store) GetPlan(sessionID string) (*PlanRecord, error) {
	r := &PlanRecord{}
	var pdf sql.NullString

	err := s.db.QueryRow(`
		SELECT session_id, request_json, plan_json, source, pdf_data, created_at
		FROM plans WHERE session_id = $1`, sessionID).
		Scan(&r.SessionID, &r.RequestJSON, &r.PlanJSON, &r.Source, &pdf, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	if pdf.Valid {
		r.PDFData = []byte(pdf.String)
	}
	return r, nil
}

// UpdatePlanPDF attaches a rendered PDF to an existing plan row.
func (s *Store) UpdatePlanPDF(sessionID string, pdfData []byte) error {
	res, err := s.db.Exec(`UPDATE plans SET pdf_data = $1 WHERE session_id = $2`,
		pdfData, sessionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// RecentPlans lists the newest sessions, most recent first.
func (s *Store) RecentPlans(limit int) ([]PlanRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT session_id, request_json, plan_json, source, created_at
		FROM plans ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []PlanRecord
	for rows.Next() {
		var r PlanRecord
		if err := rows.Scan(&r.SessionID, &r.RequestJSON, &r.PlanJSON, &r.Source, &r.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
