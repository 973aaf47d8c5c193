package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/Abdurahmonovz/ramadan/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Reasonable pooling for SQLite; it's a single-writer engine.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// EnsureUser inserts a user row with defaults if one does not exist yet.
func (r *SQLiteRepo) EnsureUser(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO users (user_id, created_at) VALUES (?, ?)`,
		userID, time.Now().UTC().Unix(),
	)
	return err
}

// GetUser returns a user's settings by userID or ErrNotFound.
func (r *SQLiteRepo) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, created_at, city, remind_before, remind_enabled,
		       last_imsak_date, last_maghrib_date
		FROM users
		WHERE user_id = ?`,
		userID,
	)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		userID    int64
		createdAt int64
		city      string
		before    int
		enabled   int
		imsakNS   sql.NullString
		maghNS    sql.NullString
	)
	if err := row.Scan(&userID, &createdAt, &city, &before, &enabled, &imsakNS, &maghNS); err != nil {
		return nil, err
	}
	return &domain.User{
		UserID:          userID,
		City:            city,
		RemindBefore:    before,
		RemindEnabled:   enabled != 0,
		LastImsakDate:   fromNullString(imsakNS),
		LastMaghribDate: fromNullString(maghNS),
		CreatedAt:       time.Unix(createdAt, 0).UTC(),
	}, nil
}

// SetCity updates the user's city.
func (r *SQLiteRepo) SetCity(ctx context.Context, userID int64, city string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET city = ? WHERE user_id = ?`,
		city, userID,
	)
	return err
}

// SetRemindBefore updates the reminder lead, clamped to [1,120] minutes.
func (r *SQLiteRepo) SetRemindBefore(ctx context.Context, userID int64, minutes int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET remind_before = ? WHERE user_id = ?`,
		clampMinutes(minutes), userID,
	)
	return err
}

// SetEnabled toggles automatic reminders for a user.
func (r *SQLiteRepo) SetEnabled(ctx context.Context, userID int64, enabled bool) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET remind_enabled = ? WHERE user_id = ?`,
		boolToInt(enabled), userID,
	)
	return err
}

// MarkFired records the date the automatic reminder of the given kind fired.
func (r *SQLiteRepo) MarkFired(ctx context.Context, userID int64, kind domain.Mode, date string) error {
	col := "last_imsak_date"
	if kind == domain.ModeMaghrib {
		col = "last_maghrib_date"
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET `+col+` = ? WHERE user_id = ?`,
		date, userID,
	)
	return err
}

// ListEnabled returns every user with automatic reminders enabled.
func (r *SQLiteRepo) ListEnabled(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, created_at, city, remind_before, remind_enabled,
		       last_imsak_date, last_maghrib_date
		FROM users
		WHERE remind_enabled = 1
		ORDER BY user_id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
