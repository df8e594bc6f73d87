package postgres

import (
	"comments/domain"
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/lib/pq"
)

const commentColumns = `id, post_id, user_id, content, status, parent_id, created_at, updated_at`

type PgRepository struct {
	db *sqlx.DB
}

func NewPgRepository(host, database, user, password, port, sslMode string) *PgRepository {
	db := sqlx.MustConnect("postgres", fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslMode,
	))

	// Connection pool configuration
	db.SetMaxOpenConns(15)                 // Max concurrent DB connections per instance
	db.SetMaxIdleConns(8)                  // Keep 8 idle connections in pool
	db.SetConnMaxLifetime(5 * time.Minute) // Recycle connections every 5 min
	db.SetConnMaxIdleTime(2 * time.Minute) // Close idle connections after 2 min

	return &PgRepository{db: db}
}

// NewPgRepositoryFromDB wraps an already opened connection.
func NewPgRepositoryFromDB(db *sqlx.DB) *PgRepository {
	return &PgRepository{db: db}
}

func (r *PgRepository) Close() error {
	return r.db.Close()
}

// DB exposes the underlying *sql.DB for migrations.
func (r *PgRepository) DB() *sql.DB {
	return r.db.DB
}

func (r *PgRepository) PingContext(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// GetPoolStats returns current connection pool statistics
func (r *PgRepository) GetPoolStats() map[string]interface{} {
	stats := r.db.Stats()
	return map[string]interface{}{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,                   // How many times waited for connection
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(), // Total time spent waiting
		"max_idle_closed":      stats.MaxIdleClosed,               // Connections closed due to idle
		"max_lifetime_closed":  stats.MaxLifetimeClosed,           // Connections closed due to max lifetime
	}
}

func (r *PgRepository) ListComments(ctx context.Context) ([]domain.Comment, error) {
	comments := make([]domain.Comment, 0)
	query := `SELECT ` + commentColumns + ` FROM comments ORDER BY id`

	if err := r.db.SelectContext(ctx, &comments, query); err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *PgRepository) ListCommentsByParentID(ctx context.Context, parentID int64) ([]domain.Comment, error) {
	comments := make([]domain.Comment, 0)
	query := `SELECT ` + commentColumns + ` FROM comments WHERE parent_id = $1 ORDER BY id`

	if err := r.db.SelectContext(ctx, &comments, query, parentID); err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *PgRepository) GetComment(ctx context.Context, id int64) (domain.Comment, error) {
	var c domain.Comment
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	err := r.db.GetContext(ctx, &c, query, id)

	return c, err
}

func (r *PgRepository) CreateComment(ctx context.Context, comment domain.Comment) (domain.Comment, error) {
	query := `
		INSERT INTO comments (
			post_id, user_id, content, status, parent_id
		) VALUES (
			:post_id, :user_id, :content, :status, :parent_id
		) RETURNING ` + commentColumns

	return r.namedQueryRow(ctx, query, comment)
}

// UpdateComment writes every mutable column and refreshes updated_at.
func (r *PgRepository) UpdateComment(ctx context.Context, comment domain.Comment) (domain.Comment, error) {
	query := `
		UPDATE comments SET
			post_id = :post_id,
			user_id = :user_id,
			content = :content,
			status = :status,
			parent_id = :parent_id,
			updated_at = now()
		WHERE id = :id
		RETURNING ` + commentColumns

	return r.namedQueryRow(ctx, query, comment)
}

func (r *PgRepository) DeleteComment(ctx context.Context, id int64) error {
	query := `DELETE FROM comments WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *PgRepository) namedQueryRow(ctx context.Context, query string, arg domain.Comment) (domain.Comment, error) {
	var c domain.Comment

	rows, err := r.db.NamedQueryContext(ctx, query, arg)
	if err != nil {
		return c, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return c, err
		}
		return c, sql.ErrNoRows
	}

	err = rows.StructScan(&c)
	return c, err
}
