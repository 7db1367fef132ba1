package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/studiowebux/restcommander/internal/config"
	"github.com/studiowebux/restcommander/internal/logging"
	"github.com/studiowebux/restcommander/internal/migrations"
	"github.com/studiowebux/restcommander/internal/types"
)

// SQLite stores requests in a local SQLite file
type SQLite struct {
	path string
	log  *logrus.Entry

	mu sync.Mutex
	db *sql.DB
}

// NewSQLite returns a store for the database file at dbPath.
// Nothing is opened until Initialize.
func NewSQLite(dbPath string) *SQLite {
	return &SQLite{
		path: dbPath,
		log:  logging.For("store").WithField("path", dbPath),
	}
}

// Initialize opens the database and applies the schema
func (s *SQLite) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return fmt.Errorf("failed to open requests database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to requests database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	s.db = db
	s.log.Debug("requests database ready")
	return nil
}

func (s *SQLite) handle() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, ErrNotInitialized
	}
	return s.db, nil
}

// List returns all requests ordered by id, which is creation order
func (s *SQLite) List(ctx context.Context) ([]types.Request, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT id, type, url, title FROM requests ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	requests := []types.Request{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

// Get returns the request with the given id
func (s *SQLite) Get(ctx context.Context, id string) (types.Request, error) {
	db, err := s.handle()
	if err != nil {
		return types.Request{}, err
	}

	row := db.QueryRowContext(ctx, `SELECT id, type, url, title FROM requests WHERE id = ?`, id)
	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Request{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return req, err
}

// Put upserts a request by id
func (s *SQLite) Put(ctx context.Context, req types.Request) error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx,
		`INSERT OR REPLACE INTO requests (id, type, url, title) VALUES (?, ?, ?, ?)`,
		req.ID,
		string(req.Type),
		req.URL,
		req.Title,
	)
	if err != nil {
		return fmt.Errorf("failed to save request %s: %w", req.ID, err)
	}

	s.log.WithField("id", req.ID).Debug("request saved")
	return nil
}

// Close releases the database
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(row scanner) (types.Request, error) {
	var req types.Request
	var method string

	if err := row.Scan(&req.ID, &method, &req.URL, &req.Title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Request{}, err
		}
		return types.Request{}, fmt.Errorf("failed to scan request: %w", err)
	}

	// Unknown verbs are kept as stored.
	if parsed, err := types.ParseMethod(method); err == nil {
		req.Type = parsed
	} else {
		req.Type = types.Method(method)
	}

	return req, nil
}
