package fetch

import (
	"topcv-crawler/internal/components/chrono"
	"topcv-crawler/lib/restyutil"
)

// Options configure both the transport and the retry policy of a fetch
// session. delays are in seconds.
type Options struct {
	BaseUrl string `json:"base_url"`

	MaxAttempts    int     `json:"max_attempts"`
	PoolSize       int     `json:"pool_size"`
	ConnectTimeout float64 `json:"connect_timeout"`
	ReadTimeout    float64 `json:"read_timeout"`

	RetryStatuses []int `json:"retry_statuses"`
	BlockStatuses []int `json:"block_statuses"`

	// 429 without a usable Retry-After waits RateLimitBase * attempt.
	RateLimitBase   float64      `json:"rate_limit_base"`
	RateLimitJitter chrono.Range `json:"rate_limit_jitter"`
	// blocked responses wait BlockBackoff * attempt.
	BlockBackoff chrono.Range `json:"block_backoff"`

	// transient failures wait min(BackoffBase * BackoffFactor^(attempt-1), BackoffCap)
	// plus up to BackoffJitter of that.
	BackoffBase   float64 `json:"backoff_base"`
	BackoffFactor float64 `json:"backoff_factor"`
	BackoffCap    float64 `json:"backoff_cap"`
	BackoffJitter float64 `json:"backoff_jitter"`

	PoliteDelay chrono.Range `json:"polite_delay"`
	WarmupDelay chrono.Range `json:"warmup_delay"`

	// 0 disables the ceiling.
	RequestsPerSecond float64 `json:"requests_per_second"`

	UserAgents         []string `json:"user_agents"`
	GenerateUserAgents bool     `json:"generate_user_agents"`
	DisableCloudflare  bool     `json:"disable_cloudflare_bypass"`

	// Dump receives every response in full when set.
	Dump restyutil.InstrumentOutput `json:"-"`
}

const DefaultBaseUrl = "https://www.topcv.vn"

var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15",
}

func DefaultOptions() Options {
	return Options{
		BaseUrl:         DefaultBaseUrl,
		MaxAttempts:     5,
		PoolSize:        20,
		ConnectTimeout:  10,
		ReadTimeout:     30,
		RetryStatuses:   []int{429, 500, 502, 503, 504},
		BlockStatuses:   []int{403},
		RateLimitBase:   30,
		RateLimitJitter: chrono.Range{Min: 5, Max: 15},
		BlockBackoff:    chrono.Range{Min: 10, Max: 20},
		BackoffBase:     5,
		BackoffFactor:   2,
		BackoffCap:      120,
		BackoffJitter:   0.5,
		PoliteDelay:     chrono.Range{Min: 2, Max: 5},
		WarmupDelay:     chrono.Range{Min: 2, Max: 4},
		UserAgents:      DefaultUserAgents,
	}
}
