package seed

import "github.com/brianvoe/gofakeit/v6"

// Random is the source of every random choice a run makes.
type Random interface {
	// IntN returns a uniform integer in [min, max].
	IntN(min, max int) int
	// Bool returns true with probability 1/2.
	Bool() bool
}

type fakerRandom struct {
	faker *gofakeit.Faker
}

// NewRandom returns a Random seeded with seed. A zero seed picks a random one,
// so only non-zero seeds give reproducible runs.
func NewRandom(seed int64) Random {
	return fakerRandom{faker: gofakeit.New(seed)}
}

func (r fakerRandom) IntN(min, max int) int {
	if max <= min {
		return min
	}
	return r.faker.Number(min, max)
}

func (r fakerRandom) Bool() bool {
	return r.faker.Bool()
}

func pick[T any](r Random, items []T) T {
	return items[r.IntN(0, len(items)-1)]
}
