// Package repository exposes the persistence capabilities the seeder uses.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"alxtravel/internal/models"
	"alxtravel/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the set of persistence operations a seed run depends on.
type Store interface {
	// Create validates value and inserts it without touching its associations.
	Create(ctx context.Context, value any) error
	// DeleteAll removes every row of model matching conds (all rows when
	// conds is empty) and returns the number of rows removed.
	DeleteAll(ctx context.Context, model any, conds ...any) (int64, error)
	// Count returns the number of rows of model.
	Count(ctx context.Context, model any) (int64, error)
	// Find loads rows matching conds into dest.
	Find(ctx context.Context, dest any, conds ...any) error
	// Transaction runs fn against a Store bound to one database transaction.
	Transaction(ctx context.Context, fn func(Store) error) error
}

// GormStore implements Store over gorm.
type GormStore struct {
	db      *gorm.DB
	metrics *observability.SeedMetrics
	log     *observability.RepoLogger
}

// StoreOption configures a GormStore.
type StoreOption func(*GormStore)

// WithMetrics records query latency into m.
func WithMetrics(m *observability.SeedMetrics) StoreOption {
	return func(s *GormStore) { s.metrics = m }
}

// WithLogger sends repository logs to l.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *GormStore) { s.log = observability.NewRepoLogger(l) }
}

// NewGormStore returns a Store backed by db.
func NewGormStore(db *gorm.DB, opts ...StoreOption) *GormStore {
	s := &GormStore{db: db, log: observability.NewRepoLogger(nil)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *GormStore) withDB(db *gorm.DB) *GormStore {
	clone := *s
	clone.db = db
	return &clone
}

// Create validates value and inserts it without upserting its associations.
func (s *GormStore) Create(ctx context.Context, value any) error {
	table := s.tableName(value)
	if err := models.Validate(value); err != nil {
		s.log.LogError(ctx, err, "validate", table)
		return fmt.Errorf("invalid %s row: %w", table, err)
	}
	defer s.metrics.TrackQuery("create", table)()

	res := s.db.WithContext(ctx).Omit(clause.Associations).Create(value)
	if res.Error != nil {
		s.log.LogError(ctx, res.Error, "create", table)
		return res.Error
	}
	s.log.LogOperation(ctx, "create", table, res.RowsAffected)
	return nil
}

// DeleteAll removes rows of model matching conds, or every row when conds is empty.
func (s *GormStore) DeleteAll(ctx context.Context, model any, conds ...any) (int64, error) {
	table := s.tableName(model)
	defer s.metrics.TrackQuery("delete", table)()

	q := s.db.WithContext(ctx)
	if len(conds) == 0 {
		q = q.Session(&gorm.Session{AllowGlobalUpdate: true})
	} else {
		q = q.Where(conds[0], conds[1:]...)
	}

	res := q.Delete(model)
	if res.Error != nil {
		s.log.LogError(ctx, res.Error, "delete", table)
		return 0, res.Error
	}
	s.log.LogOperation(ctx, "delete", table, res.RowsAffected)
	return res.RowsAffected, nil
}

// Count returns the number of rows of model.
func (s *GormStore) Count(ctx context.Context, model any) (int64, error) {
	table := s.tableName(model)
	defer s.metrics.TrackQuery("count", table)()

	var n int64
	if err := s.db.WithContext(ctx).Model(model).Count(&n).Error; err != nil {
		s.log.LogError(ctx, err, "count", table)
		return 0, err
	}
	return n, nil
}

// Find loads rows matching conds into dest.
func (s *GormStore) Find(ctx context.Context, dest any, conds ...any) error {
	table := s.tableName(dest)
	defer s.metrics.TrackQuery("find", table)()

	res := s.db.WithContext(ctx).Find(dest, conds...)
	if res.Error != nil {
		s.log.LogError(ctx, res.Error, "find", table)
		return res.Error
	}
	s.log.LogOperation(ctx, "find", table, res.RowsAffected)
	return nil
}

// Transaction runs fn inside a database transaction; an error from fn rolls it back.
func (s *GormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(s.withDB(tx))
	})
}

func (s *GormStore) tableName(model any) string {
	stmt := &gorm.Statement{DB: s.db}
	if err := stmt.Parse(model); err != nil || stmt.Schema == nil {
		return "unknown"
	}
	return stmt.Schema.Table
}

var _ Store = (*GormStore)(nil)
