package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/dspatoulas/urid"

	"github.com/dspatoulas/urid/internal/domain"

	_ "modernc.org/sqlite" // Register SQLite driver.
)

//go:embed migrations/*.sql
var migrations embed.FS

// ResourceRepository implements domain.ResourceRepository using SQLite.
// Identifiers travel through their own VARCHAR(30) column codec: written via
// driver.Valuer, read back through the full parse-and-validate path, so a
// manually edited row fails at read time.
type ResourceRepository struct {
	db *sql.DB
}

// New opens a SQLite database, runs migrations, and returns a ready repository.
func New(dataSourceName string) (*ResourceRepository, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// Enable foreign keys (off by default in SQLite).
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	return NewFromDB(db)
}

// NewFromDB wraps an existing database connection, runs migrations, and returns a ready repository.
// Use this when the *sql.DB has been pre-configured (e.g., with otelsql instrumentation).
func NewFromDB(db *sql.DB) (*ResourceRepository, error) {
	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return &ResourceRepository{db: db}, nil
}

// Close closes the underlying database connection.
func (r *ResourceRepository) Close() error {
	return r.db.Close()
}

// DB returns the underlying database connection for use by other adapters (e.g., river).
func (r *ResourceRepository) DB() *sql.DB {
	return r.db
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

const timeFormat = "2006-01-02T15:04:05Z"

func (r *ResourceRepository) Create(ctx context.Context, res domain.Resource) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO resources (id, name, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		res.ID, res.Name, string(res.Status),
		res.CreatedAt.Format(timeFormat),
		res.UpdatedAt.Format(timeFormat),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.NameConflictError{Name: res.Name}
		}
		return fmt.Errorf("inserting resource: %w", err)
	}
	return nil
}

func (r *ResourceRepository) GetByID(ctx context.Context, id urid.ResourceID) (domain.Resource, error) {
	return r.scanResource(r.db.QueryRowContext(ctx,
		`SELECT id, name, status, created_at, updated_at
		 FROM resources WHERE id = ?`, id,
	))
}

func (r *ResourceRepository) GetByName(ctx context.Context, name string) (domain.Resource, error) {
	return r.scanResource(r.db.QueryRowContext(ctx,
		`SELECT id, name, status, created_at, updated_at
		 FROM resources WHERE name = ?`, name,
	))
}

func (r *ResourceRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Resource, error) {
	query := `SELECT id, name, status, created_at, updated_at FROM resources`
	var where []string
	var args []any

	if filter.Kind != nil {
		// The kind is the identifier's 4-character prefix, not its own column.
		where = append(where, `substr(id, 1, 4) = ?`)
		args = append(args, strings.ToUpper(*filter.Kind))
	}

	if filter.Status != nil {
		where = append(where, `status = ?`)
		args = append(args, string(*filter.Status))
	}

	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}

	// The ULID suffix makes the primary key time-ordered within a kind, so
	// ordering by id lists resources in creation order.
	query += ` ORDER BY id`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}
	defer rows.Close()

	var resources []domain.Resource
	for rows.Next() {
		res, err := r.scanResourceFromRows(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}

	return resources, rows.Err()
}

func (r *ResourceRepository) Update(ctx context.Context, res domain.Resource) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE resources SET name = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		res.Name, string(res.Status),
		time.Now().UTC().Format(timeFormat), res.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.NameConflictError{Name: res.Name}
		}
		return fmt.Errorf("updating resource: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrResourceNotFound
	}

	return nil
}

// scanResource scans a single row from QueryRow into a domain.Resource.
func (r *ResourceRepository) scanResource(row *sql.Row) (domain.Resource, error) {
	var res domain.Resource
	var status, createdAt, updatedAt string

	err := row.Scan(&res.ID, &res.Name, &status, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Resource{}, domain.ErrResourceNotFound
		}
		return domain.Resource{}, fmt.Errorf("scanning resource: %w", err)
	}

	res.Status = domain.Status(status)
	res.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	res.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)

	return res, nil
}

// scanResourceFromRows scans a single row from Rows (used in List).
func (r *ResourceRepository) scanResourceFromRows(rows *sql.Rows) (domain.Resource, error) {
	var res domain.Resource
	var status, createdAt, updatedAt string

	err := rows.Scan(&res.ID, &res.Name, &status, &createdAt, &updatedAt)
	if err != nil {
		return domain.Resource{}, fmt.Errorf("scanning resource row: %w", err)
	}

	res.Status = domain.Status(status)
	res.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	res.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)

	return res, nil
}

// isUniqueViolation checks if a SQLite error is a UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
