package seed

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Summary holds the row counts of each table after a run.
type Summary struct {
	Users    int64
	Listings int64
	Bookings int64
	Reviews  int64
}

// reporter writes the human-readable progress of a run.
type reporter struct {
	w       io.Writer
	success *color.Color
}

func newReporter(w io.Writer) *reporter {
	return &reporter{w: w, success: color.New(color.FgGreen, color.Bold)}
}

func (r *reporter) line(format string, args ...any) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

func (r *reporter) start() {
	r.line("Seeding database...")
}

func (r *reporter) deleted(n int64, entity string) {
	r.line("Deleted %d %s", n, entity)
}

func (r *reporter) created(kind, name string) {
	r.line("Created %s: %s", kind, name)
}

func (r *reporter) summary(s Summary) {
	r.success.Fprintln(r.w, "Successfully seeded database with:")
	r.line("  - %d users", s.Users)
	r.line("  - %d listings", s.Listings)
	r.line("  - %d bookings", s.Bookings)
	r.line("  - %d reviews", s.Reviews)
}
