package chrono

import (
	"context"
	"time"
)

// API is the clock every component that sleeps or stamps dates should depend on.
//
// note: fault injection point
type API interface {
	Now() time.Time
	Location() *time.Location
	// Sleep blocks for d or until ctx is done, whichever comes first.
	Sleep(ctx context.Context, d time.Duration) error
}

// SiteTimezone is the timezone crawl dates are computed in, TopCV being a
// vietnamese site.
const SiteTimezone = "Asia/Ho_Chi_Minh"

type StandardImpl struct {
	location *time.Location
}

func NewStandardImpl(timezone string) (StandardImpl, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return StandardImpl{}, err
	}
	return StandardImpl{location: location}, nil
}

func (s StandardImpl) Now() time.Time {
	return time.Now().In(s.location)
}

func (s StandardImpl) Location() *time.Location {
	return s.location
}

func (s StandardImpl) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Date formats t as the YYYY-MM-DD date used for crawl dates.
func Date(t time.Time) string {
	return t.Format(time.DateOnly)
}
