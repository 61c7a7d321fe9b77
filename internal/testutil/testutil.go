// Package testutil provides shared test doubles and fixtures.
package testutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"alxtravel/internal/config"
	"alxtravel/internal/database"
	"alxtravel/internal/models"
	"alxtravel/internal/repository"

	"gorm.io/gorm"
)

// DiscardLogger drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewSQLiteDB opens a migrated in-memory database closed at test cleanup.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()
	cfg := &config.Config{Env: "test", DBDriver: config.DriverSQLite, DBName: ":memory:"}
	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{ApplySchema: true, Logger: DiscardLogger()})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// Op is one call recorded by StoreStub.
type Op struct {
	Name  string
	Table string
	Conds []any
}

func (o Op) String() string {
	if len(o.Conds) == 0 {
		return o.Name + " " + o.Table
	}
	return fmt.Sprintf("%s %s %v", o.Name, o.Table, o.Conds)
}

// StoreStub is an in-memory repository.Store for the rental models. It
// records every call and supports the single condition the seeder filters
// users by.
type StoreStub struct {
	Ops []Op

	users    []models.User
	listings []models.Listing
	bookings []models.Booking
	reviews  []models.Review
	nextID   uint
}

// NewStoreStub creates an empty stub.
func NewStoreStub() *StoreStub {
	return &StoreStub{nextID: 1}
}

// AddUser stores u as if it existed before the test.
func (s *StoreStub) AddUser(u models.User) models.User {
	u.ID = s.nextID
	s.nextID++
	s.users = append(s.users, u)
	return u
}

// Users returns the stored users.
func (s *StoreStub) Users() []models.User {
	return append([]models.User(nil), s.users...)
}

// Listings returns the stored listings.
func (s *StoreStub) Listings() []models.Listing {
	return append([]models.Listing(nil), s.listings...)
}

// Bookings returns the stored bookings.
func (s *StoreStub) Bookings() []models.Booking {
	return append([]models.Booking(nil), s.bookings...)
}

// Reviews returns the stored reviews.
func (s *StoreStub) Reviews() []models.Review {
	return append([]models.Review(nil), s.reviews...)
}

func (s *StoreStub) record(name, table string, conds []any) {
	s.Ops = append(s.Ops, Op{Name: name, Table: table, Conds: conds})
}

// Create assigns an ID and stores value.
func (s *StoreStub) Create(ctx context.Context, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id := s.nextID
	switch v := value.(type) {
	case *models.User:
		v.ID = id
		s.users = append(s.users, *v)
	case *models.Listing:
		v.ID = id
		s.listings = append(s.listings, *v)
	case *models.Booking:
		v.ID = id
		s.bookings = append(s.bookings, *v)
	case *models.Review:
		v.ID = id
		s.reviews = append(s.reviews, *v)
	default:
		return fmt.Errorf("store stub: unsupported model %T", value)
	}
	s.nextID++
	s.record("create", tableOf(value), nil)
	return nil
}

// DeleteAll removes rows of model. For users, an `is_admin = ?` condition
// keeps the rows whose flag differs.
func (s *StoreStub) DeleteAll(ctx context.Context, model any, conds ...any) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.record("delete", tableOf(model), conds)

	var n int
	switch model.(type) {
	case *models.User:
		kept := s.users[:0]
		for _, u := range s.users {
			if len(conds) == 2 && conds[0] == "is_admin = ?" && u.IsAdmin != conds[1] {
				kept = append(kept, u)
				continue
			}
			n++
		}
		s.users = kept
	case *models.Listing:
		n, s.listings = len(s.listings), nil
	case *models.Booking:
		n, s.bookings = len(s.bookings), nil
	case *models.Review:
		n, s.reviews = len(s.reviews), nil
	default:
		return 0, fmt.Errorf("store stub: unsupported model %T", model)
	}
	return int64(n), nil
}

// Count returns the number of stored rows of model.
func (s *StoreStub) Count(_ context.Context, model any) (int64, error) {
	s.record("count", tableOf(model), nil)
	switch model.(type) {
	case *models.User:
		return int64(len(s.users)), nil
	case *models.Listing:
		return int64(len(s.listings)), nil
	case *models.Booking:
		return int64(len(s.bookings)), nil
	case *models.Review:
		return int64(len(s.reviews)), nil
	}
	return 0, fmt.Errorf("store stub: unsupported model %T", model)
}

// Find copies every stored user or listing into dest; conds are ignored.
func (s *StoreStub) Find(_ context.Context, dest any, conds ...any) error {
	s.record("find", tableOf(dest), conds)
	switch d := dest.(type) {
	case *[]models.User:
		*d = s.Users()
	case *[]models.Listing:
		*d = s.Listings()
	default:
		return fmt.Errorf("store stub: unsupported destination %T", dest)
	}
	return nil
}

// Transaction runs fn against the stub and restores the previous rows when
// fn fails.
func (s *StoreStub) Transaction(_ context.Context, fn func(repository.Store) error) error {
	s.record("begin", "", nil)
	snapshot := *s
	snapshot.users = s.Users()
	snapshot.listings = s.Listings()
	snapshot.bookings = s.Bookings()
	snapshot.reviews = s.Reviews()

	if err := fn(s); err != nil {
		ops := append(s.Ops, Op{Name: "rollback"})
		*s = snapshot
		s.Ops = ops
		return err
	}
	s.record("commit", "", nil)
	return nil
}

func tableOf(model any) string {
	switch model.(type) {
	case *models.User, *[]models.User:
		return "users"
	case *models.Listing, *[]models.Listing:
		return "listings"
	case *models.Booking:
		return "bookings"
	case *models.Review:
		return "reviews"
	}
	return "unknown"
}

var _ repository.Store = (*StoreStub)(nil)
