// Package seed resets the rental schema to a small, known sample data set
// for development and demos.
package seed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"alxtravel/internal/models"
	"alxtravel/internal/observability"
	"alxtravel/internal/repository"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns the placeholder password into its stored form.
type PasswordHasher func(password string) (string, error)

// HashPassword hashes with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// PlainPassword stores the password unchanged. Only meant for throwaway
// databases where bcrypt cost would dominate the run.
func PlainPassword(password string) (string, error) {
	return password, nil
}

// Runner performs seed runs against a Store.
type Runner struct {
	store         repository.Store
	random        Random
	now           func() time.Time
	out           io.Writer
	logger        *slog.Logger
	metrics       *observability.SeedMetrics
	tracer        trace.Tracer
	transactional bool
	hash          PasswordHasher
}

// Option configures a Runner.
type Option func(*Runner)

// WithRandom sets the source of random choices.
func WithRandom(r Random) Option {
	return func(rn *Runner) { rn.random = r }
}

// WithClock sets the clock used to compute booking dates.
func WithClock(now func() time.Time) Option {
	return func(rn *Runner) { rn.now = now }
}

// WithOutput sets where progress lines are written.
func WithOutput(w io.Writer) Option {
	return func(rn *Runner) { rn.out = w }
}

func WithLogger(l *slog.Logger) Option {
	return func(rn *Runner) { rn.logger = l }
}

func WithMetrics(m *observability.SeedMetrics) Option {
	return func(rn *Runner) { rn.metrics = m }
}

func WithTracer(t trace.Tracer) Option {
	return func(rn *Runner) { rn.tracer = t }
}

// WithTransaction controls whether the reset and the inserts commit as one
// unit. Enabled by default.
func WithTransaction(enabled bool) Option {
	return func(rn *Runner) { rn.transactional = enabled }
}

func WithPasswordHasher(h PasswordHasher) Option {
	return func(rn *Runner) { rn.hash = h }
}

// NewRunner returns a Runner writing to stdout with a randomly seeded source.
func NewRunner(store repository.Store, opts ...Option) *Runner {
	r := &Runner{
		store:         store,
		random:        NewRandom(0),
		now:           time.Now,
		out:           os.Stdout,
		logger:        observability.Logger,
		tracer:        observability.Tracer(),
		transactional: true,
		hash:          HashPassword,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run wipes reviews, bookings, listings and non-admin users, then recreates
// the sample users, the catalog listings, random bookings and reviews. It
// returns the row count of each table afterwards.
func (r *Runner) Run(ctx context.Context) (summary Summary, err error) {
	start := time.Now()
	runID := uuid.NewString()
	ctx = observability.WithRunID(ctx, runID)

	ctx, span := observability.StartStep(ctx, r.tracer, "run",
		attribute.String("seed.run_id", runID),
		attribute.Bool("seed.transactional", r.transactional),
	)
	defer func() {
		observability.EndStep(span, err)
		r.metrics.ObserveRun(start, err)
	}()

	rep := newReporter(r.out)
	rep.start()
	r.logger.InfoContext(ctx, "Seed run started", slog.Bool("transactional", r.transactional))

	if r.transactional {
		err = r.store.Transaction(ctx, func(tx repository.Store) error {
			return r.reseed(ctx, tx, rep)
		})
	} else {
		err = r.reseed(ctx, r.store, rep)
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "Seed run failed", slog.String("error", err.Error()))
		return Summary{}, err
	}

	summary, err = r.summarize(ctx)
	if err != nil {
		return Summary{}, err
	}
	rep.summary(summary)

	r.logger.InfoContext(ctx, "Seed run completed",
		slog.Int64("users", summary.Users),
		slog.Int64("listings", summary.Listings),
		slog.Int64("bookings", summary.Bookings),
		slog.Int64("reviews", summary.Reviews),
		slog.Duration("duration", time.Since(start)),
	)
	return summary, nil
}

func (r *Runner) reseed(ctx context.Context, store repository.Store, rep *reporter) error {
	if err := r.step(ctx, "clear", func(ctx context.Context) error {
		return r.clear(ctx, store, rep)
	}); err != nil {
		return err
	}

	var (
		users    []models.User
		listings []models.Listing
	)
	if err := r.step(ctx, "users", func(ctx context.Context) (err error) {
		users, err = r.createUsers(ctx, store, rep)
		return err
	}); err != nil {
		return err
	}
	if err := r.step(ctx, "listings", func(ctx context.Context) (err error) {
		listings, err = r.createListings(ctx, store, rep, users)
		return err
	}); err != nil {
		return err
	}
	if err := r.step(ctx, "bookings", func(ctx context.Context) error {
		return r.createBookings(ctx, store, rep, listings, users)
	}); err != nil {
		return err
	}
	return r.step(ctx, "reviews", func(ctx context.Context) error {
		return r.createReviews(ctx, store, rep, listings, users)
	})
}

func (r *Runner) step(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := observability.StartStep(ctx, r.tracer, name)
	err := fn(ctx)
	observability.EndStep(span, err)
	return err
}

// Children go first so foreign keys never block a delete.
var deletions = []struct {
	model  any
	table  string
	entity string
	conds  []any
}{
	{&models.Review{}, "reviews", "reviews", nil},
	{&models.Booking{}, "bookings", "bookings", nil},
	{&models.Listing{}, "listings", "listings", nil},
	{&models.User{}, "users", "non-admin users", []any{"is_admin = ?", false}},
}

func (r *Runner) clear(ctx context.Context, store repository.Store, rep *reporter) error {
	for _, d := range deletions {
		n, err := store.DeleteAll(ctx, d.model, d.conds...)
		if err != nil {
			return fmt.Errorf("delete %s: %w", d.entity, err)
		}
		r.metrics.ObserveDeleted(d.table, n)
		rep.deleted(n, d.entity)
	}
	return nil
}

func (r *Runner) createUsers(ctx context.Context, store repository.Store, rep *reporter) ([]models.User, error) {
	password, err := r.hash(PlaceholderPassword)
	if err != nil {
		return nil, fmt.Errorf("hash placeholder password: %w", err)
	}

	users := make([]models.User, 0, HostCount+1)
	for i := 1; i <= HostCount; i++ {
		users = append(users, models.User{
			Username:  fmt.Sprintf("host%d", i),
			FirstName: fmt.Sprintf("Host%d", i),
			LastName:  "User",
		})
	}
	users = append(users, models.User{Username: GuestUsername, FirstName: "Guest", LastName: "User"})

	for i := range users {
		u := &users[i]
		u.Email = u.Username + "@" + EmailDomain
		u.Password = password
		if err := store.Create(ctx, u); err != nil {
			return nil, fmt.Errorf("create user %q: %w", u.Username, err)
		}
		r.metrics.ObserveCreated("users")
		rep.created("user", u.Username)
	}
	return users, nil
}

func (r *Runner) createListings(ctx context.Context, store repository.Store, rep *reporter, hosts []models.User) ([]models.Listing, error) {
	listings := make([]models.Listing, 0, len(Catalog))
	for i, tmpl := range Catalog {
		host := hosts[i%len(hosts)]
		listing := tmpl.Listing(host.ID)
		if err := store.Create(ctx, &listing); err != nil {
			return nil, fmt.Errorf("create listing %q: %w", tmpl.Title, err)
		}
		listings = append(listings, listing)
		r.metrics.ObserveCreated("listings")
		rep.created("listing", listing.Title)
	}
	return listings, nil
}

func (r *Runner) createBookings(ctx context.Context, store repository.Store, rep *reporter, listings []models.Listing, guests []models.User) error {
	today := r.today()
	for i := 0; i < BookingCount; i++ {
		listing := pick(r.random, listings)
		guest := pick(r.random, guests)
		checkIn := today.AddDate(0, 0, r.random.IntN(MinCheckInOffsetDays, MaxCheckInOffsetDays))
		nights := r.random.IntN(MinStayNights, MaxStayNights)
		guestsCount := r.random.IntN(1, min(MaxBookingGuests, listing.MaxGuests))
		status := pick(r.random, BookingStatuses)
		var special string
		if r.random.Bool() {
			special = SpecialRequest
		}

		booking := models.Booking{
			ListingID:       listing.ID,
			Listing:         &listing,
			GuestID:         guest.ID,
			Guest:           &guest,
			CheckIn:         checkIn,
			CheckOut:        checkIn.AddDate(0, 0, nights),
			TotalPrice:      listing.PricePerNight * float64(nights),
			GuestsCount:     guestsCount,
			Status:          status,
			SpecialRequests: special,
		}
		if err := store.Create(ctx, &booking); err != nil {
			return fmt.Errorf("create booking %d for %q: %w", i+1, listing.Title, err)
		}
		r.metrics.ObserveCreated("bookings")
		rep.created("booking", booking.String())
	}
	return nil
}

func (r *Runner) createReviews(ctx context.Context, store repository.Store, rep *reporter, listings []models.Listing, guests []models.User) error {
	for i := range listings {
		listing := &listings[i]
		count := r.random.IntN(MinReviewsPerListing, MaxReviewsPerListing)
		for j := 0; j < count; j++ {
			guest := pick(r.random, guests)
			review := models.Review{
				ListingID: listing.ID,
				Listing:   listing,
				GuestID:   guest.ID,
				Guest:     &guest,
				Rating:    r.random.IntN(MinRating, MaxRating),
				Comment:   fmt.Sprintf(ReviewCommentFormat, listing.Title),
			}
			if err := store.Create(ctx, &review); err != nil {
				return fmt.Errorf("create review for %q: %w", listing.Title, err)
			}
			r.metrics.ObserveCreated("reviews")
			rep.created("review", review.String())
		}
	}
	return nil
}

// today is the current calendar date at midnight UTC, so adding days never
// crosses a DST boundary.
func (r *Runner) today() time.Time {
	now := r.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (r *Runner) summarize(ctx context.Context) (Summary, error) {
	ctx, span := observability.StartStep(ctx, r.tracer, "summary")
	var err error
	defer func() { observability.EndStep(span, err) }()

	var s Summary
	counts := []struct {
		model any
		table string
		dst   *int64
	}{
		{&models.User{}, "users", &s.Users},
		{&models.Listing{}, "listings", &s.Listings},
		{&models.Booking{}, "bookings", &s.Bookings},
		{&models.Review{}, "reviews", &s.Reviews},
	}
	for _, c := range counts {
		var n int64
		n, err = r.store.Count(ctx, c.model)
		if err != nil {
			err = fmt.Errorf("count %s: %w", c.table, err)
			return Summary{}, err
		}
		*c.dst = n
		r.metrics.ObserveTableRows(c.table, n)
	}
	return s, nil
}
