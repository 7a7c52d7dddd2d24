package chrono

import (
	"context"
	"sync"
	"time"
)

// FakeImpl is a clock that never actually sleeps, it advances its own time
// and remembers every requested sleep so tests can assert on backoff.
type FakeImpl struct {
	mutex    *sync.Mutex
	now      *time.Time
	location *time.Location
	sleeps   *[]time.Duration
}

func NewFakeImpl(now time.Time) FakeImpl {
	return FakeImpl{
		mutex:    &sync.Mutex{},
		now:      &now,
		location: now.Location(),
		sleeps:   &[]time.Duration{},
	}
}

func (f FakeImpl) Now() time.Time {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return *f.now
}

func (f FakeImpl) Location() *time.Location {
	return f.location
}

func (f FakeImpl) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	*f.sleeps = append(*f.sleeps, d)
	*f.now = f.now.Add(d)
	return nil
}

// Sleeps returns a copy of all the sleeps requested so far.
func (f FakeImpl) Sleeps() []time.Duration {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	out := make([]time.Duration, len(*f.sleeps))
	copy(out, *f.sleeps)
	return out
}

// FixedRandom always returns the same value, 0.5 makes every Range.Uniform
// land on the midpoint.
type FixedRandom float64

func (f FixedRandom) Float64() float64 {
	return float64(f)
}

func (f FixedRandom) Intn(n int) int {
	return int(float64(f) * float64(n))
}
