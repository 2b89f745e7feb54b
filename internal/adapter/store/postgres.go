package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vidstats/vidstats/internal/domain"
	"github.com/vidstats/vidstats/internal/port"
	"github.com/vidstats/vidstats/internal/sqlguard"
)

// PostgresStore handles all relational database operations.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection pool and returns a store instance.
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// NewPostgresStoreFromDB wraps an existing handle. Used by tests.
func NewPostgresStoreFromDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for migrations.
func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

// QueryScalar runs a validated query in a single read-only transaction and
// returns the first cell of the first row. Zero rows is a defined absence
// (Present is false), not an error. The transaction is committed on success
// and rolled back on every other path, including ctx cancellation; a session
// is held only for the duration of this call.
//
// The query text is executed verbatim. All literals are embedded by the
// generator, which is acceptable only because the text already passed the
// safety validator and is constrained to read-only aggregate shape.
func (s *PostgresStore) QueryScalar(ctx context.Context, q sqlguard.ValidatedQuery) (domain.ScalarResult, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return domain.ScalarResult{}, fmt.Errorf("%w: begin: %v", port.ErrExecutionFailed, err)
	}

	result, err := scalarInTx(ctx, tx, q.SQL())
	if err != nil {
		_ = tx.Rollback()
		return domain.ScalarResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.ScalarResult{}, fmt.Errorf("%w: commit: %v", port.ErrExecutionFailed, err)
	}
	return result, nil
}

func scalarInTx(ctx context.Context, tx *sql.Tx, query string) (domain.ScalarResult, error) {
	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return domain.ScalarResult{}, fmt.Errorf("%w: %v", port.ErrExecutionFailed, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return domain.ScalarResult{}, fmt.Errorf("%w: columns: %v", port.ErrExecutionFailed, err)
	}
	// Second line of defense for the single-scalar contract; the validator
	// can only check the alias statically.
	if len(cols) != 1 {
		return domain.ScalarResult{}, fmt.Errorf("%w: expected 1 column, got %d", port.ErrExecutionFailed, len(cols))
	}

	var result domain.ScalarResult
	if rows.Next() {
		var cell any
		if err := rows.Scan(&cell); err != nil {
			return domain.ScalarResult{}, fmt.Errorf("%w: scan: %v", port.ErrExecutionFailed, err)
		}
		result = domain.ScalarResult{Value: cell, Present: true}
	}
	if err := rows.Err(); err != nil {
		return domain.ScalarResult{}, fmt.Errorf("%w: %v", port.ErrExecutionFailed, err)
	}
	return result, nil
}

// IngestVideos inserts videos and their snapshots in one transaction,
// skipping rows that already exist. Used by the fixture loader; the live
// tables are otherwise written only by the external ingestion job.
func (s *PostgresStore) IngestVideos(ctx context.Context, videos []domain.Video, snapshots []domain.VideoSnapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ingest: %w", err)
	}
	defer tx.Rollback()

	insertVideo := `
		INSERT INTO videos (
			id, creator_id, video_created_at,
			views_count, likes_count, comments_count, reports_count,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING`

	for _, v := range videos {
		if _, err := tx.ExecContext(ctx, insertVideo,
			v.ID, v.CreatorID, v.VideoCreatedAt,
			v.ViewsCount, v.LikesCount, v.CommentsCount, v.ReportsCount,
			v.CreatedAt, v.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert video %s: %w", v.ID, err)
		}
	}

	insertSnapshot := `
		INSERT INTO video_snapshots (
			id, video_id,
			views_count, likes_count, comments_count, reports_count,
			delta_views_count, delta_likes_count,
			delta_comments_count, delta_reports_count,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO NOTHING`

	for _, snap := range snapshots {
		if _, err := tx.ExecContext(ctx, insertSnapshot,
			snap.ID, snap.VideoID,
			snap.ViewsCount, snap.LikesCount, snap.CommentsCount, snap.ReportsCount,
			snap.DeltaViewsCount, snap.DeltaLikesCount,
			snap.DeltaCommentsCount, snap.DeltaReportsCount,
			snap.CreatedAt, snap.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert snapshot %s: %w", snap.ID, err)
		}
	}

	return tx.Commit()
}

// WriteAskAudit records one handled question for diagnostics.
func (s *PostgresStore) WriteAskAudit(question, outcome string, durationMS int64, ip, userAgent string) error {
	query := `
		INSERT INTO ask_audit (id, question, outcome, duration_ms, ip, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := s.db.Exec(query, uuid.NewString(), question, outcome, durationMS, ip, userAgent); err != nil {
		return fmt.Errorf("write ask audit: %w", err)
	}
	return nil
}
