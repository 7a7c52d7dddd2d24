package chrono

import (
	"math/rand"
	"sync"
	"time"
)

// RandomAPI is the source of every randomized delay and rotation choice.
//
// note: fault injection point
type RandomAPI interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n).
	Intn(n int) int
}

type StandardRandom struct {
	mutex *sync.Mutex
	rnd   *rand.Rand
}

func NewStandardRandom(seed int64) StandardRandom {
	return StandardRandom{
		mutex: &sync.Mutex{},
		rnd:   rand.New(rand.NewSource(seed)),
	}
}

func (r StandardRandom) Float64() float64 {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.rnd.Float64()
}

func (r StandardRandom) Intn(n int) int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.rnd.Intn(n)
}

// Range is an inclusive range of seconds, as written in config files.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Uniform picks a duration uniformly from the range.
func (r Range) Uniform(rnd RandomAPI) time.Duration {
	lo, hi := r.Min, r.Max
	if hi < lo {
		lo, hi = hi, lo
	}
	seconds := lo + (hi-lo)*rnd.Float64()
	return time.Duration(seconds * float64(time.Second))
}

// Seconds converts a float amount of seconds to a duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
