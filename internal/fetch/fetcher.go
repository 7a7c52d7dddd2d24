package fetch

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"topcv-crawler/internal/components/assert"
	"topcv-crawler/internal/components/chrono"
	"topcv-crawler/internal/components/telemetry"
	"topcv-crawler/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

const (
	report_fetcher_fetch  = "fetcher.fetch"
	report_fetcher_retry  = "fetcher.retry"
	report_fetcher_warmup = "fetcher.warmup"
	report_fetcher_stats  = "fetcher.stats"
)

var tracer = otel.Tracer("topcv-crawler/fetch")

var meter = otel.Meter("topcv-crawler/fetch")
var requestCounter, _ = meter.Int64Counter("fetch.requests")
var retryCounter, _ = meter.Int64Counter("fetch.retries")
var outcomeCounter, _ = meter.Int64Counter("fetch.outcomes")

type Outcome int

const (
	OutcomeOK Outcome = iota
	// OutcomeBlocked means every attempt was answered with a block status,
	// the page carries an empty document.
	OutcomeBlocked
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeBlocked:
		return "blocked"
	}
	return "unknown"
}

type Page struct {
	Url     string
	Status  int
	Doc     *goquery.Document
	Outcome Outcome
}

type Stats struct {
	Requests    int64
	Retries     int64
	RateLimited int64
	Blocked     int64
	Failures    int64
}

// Fetcher is a fetch session: one cookie jar, one connection pool and one
// header set shared by every request. it is not safe for concurrent use.
type Fetcher struct {
	opts    Options
	http    *resty.Client
	clock   chrono.API
	rnd     chrono.RandomAPI
	tel     telemetry.API
	rotator headerRotator
	headers map[string]string
	stats   Stats
}

// New creates a session without touching the network.
func New(opts Options, clock chrono.API, rnd chrono.RandomAPI, tel telemetry.API) (*Fetcher, error) {
	assert.NotNil(clock)
	assert.NotNil(rnd)
	assert.NotNil(tel)
	assert.Positive("max attempts", opts.MaxAttempts)

	tel = telemetry.NewScopedAPI("fetch", tel)

	client, err := newTransport(opts, tel)
	if err != nil {
		return nil, err
	}
	rotator := newHeaderRotator(opts, rnd)
	return &Fetcher{
		opts:    opts,
		http:    client,
		clock:   clock,
		rnd:     rnd,
		tel:     tel,
		rotator: rotator,
		headers: rotator.full(),
	}, nil
}

// Open creates a session and warms it up by visiting the site root so the
// server can hand out its cookies. a failed warm-up is only reported.
func Open(ctx context.Context, opts Options, clock chrono.API, rnd chrono.RandomAPI, tel telemetry.API) (*Fetcher, error) {
	f, err := New(opts, clock, rnd, tel)
	if err != nil {
		return nil, err
	}
	err = f.Warmup(ctx)
	if err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// Warmup issues a single GET against the base url. only context
// cancellation is returned as an error.
func (f *Fetcher) Warmup(ctx context.Context) error {
	f.stats.Requests++
	requestCounter.Add(ctx, 1)
	res, err := f.http.R().
		SetContext(ctx).
		SetHeaders(f.headers).
		Get(f.opts.BaseUrl)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		f.tel.ReportWarning(report_fetcher_warmup, err)
		return nil
	}
	if !res.IsSuccess() {
		f.tel.ReportWarning(report_fetcher_warmup, fmt.Errorf("status %d", res.StatusCode()))
	} else {
		f.tel.ReportDebug(report_fetcher_warmup, "session initialized")
	}
	return f.clock.Sleep(ctx, f.opts.WarmupDelay.Uniform(f.rnd))
}

// Pause sleeps for the politeness delay.
func (f *Fetcher) Pause(ctx context.Context) error {
	return f.clock.Sleep(ctx, f.opts.PoliteDelay.Uniform(f.rnd))
}

func (f *Fetcher) Stats() Stats {
	return f.stats
}

// Close releases pooled connections and reports the session statistics.
func (f *Fetcher) Close() {
	f.http.GetClient().CloseIdleConnections()
	f.tel.ReportCount(report_fetcher_stats+"-requests", f.stats.Requests)
	f.tel.ReportCount(report_fetcher_stats+"-retries", f.stats.Retries)
	f.tel.ReportCount(report_fetcher_stats+"-rate-limited", f.stats.RateLimited)
	f.tel.ReportCount(report_fetcher_stats+"-blocked", f.stats.Blocked)
	f.tel.ReportCount(report_fetcher_stats+"-failures", f.stats.Failures)
}

// Fetch GETs link and parses it, retrying according to the session's
// policy. an error is returned when attempts are exhausted on transient
// failures, on a status that is neither success nor retryable and on
// context cancellation. pages that stay blocked come back with
// OutcomeBlocked and no error.
func (f *Fetcher) Fetch(ctx context.Context, link string) (Page, error) {
	ctx, span := tracer.Start(ctx, "Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("url", link))

	var lastErr error
	lastStatus := 0

	for attempt := 1; attempt <= f.opts.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Page{}, err
		}

		f.rotator.rotate(f.headers)
		f.stats.Requests++
		requestCounter.Add(ctx, 1)

		res, err := f.http.R().
			SetContext(ctx).
			SetHeaders(f.headers).
			Get(link)

		var wait time.Duration
		blocked := false

		switch {
		case err != nil:
			if ctx.Err() != nil {
				return Page{}, ctx.Err()
			}
			if errors.Is(err, ErrRedirectNotAllowed) {
				f.stats.Failures++
				err := &FetchError{Url: link, Attempts: attempt, Err: err}
				f.tel.ReportBroken(report_fetcher_fetch, err)
				span.SetStatus(codes.Error, err.Error())
				return Page{}, err
			}
			lastErr = err
			lastStatus = 0
			wait = f.transientBackoff(attempt)
		case res.IsSuccess():
			doc, err := htmlutil.Parse(res.Body())
			if err != nil {
				f.stats.Failures++
				f.tel.ReportBroken(report_fetcher_fetch, fmt.Errorf("parse %s: %w", link, err))
				return Page{}, &FetchError{Url: link, Attempts: attempt, Status: res.StatusCode(), Err: err}
			}
			f.record(ctx, OutcomeOK)
			return Page{
				Url:     link,
				Status:  res.StatusCode(),
				Doc:     doc,
				Outcome: OutcomeOK,
			}, nil
		case slices.Contains(f.opts.BlockStatuses, res.StatusCode()):
			f.stats.Blocked++
			lastStatus = res.StatusCode()
			blocked = true
			wait = time.Duration(attempt) * f.opts.BlockBackoff.Uniform(f.rnd)
		case res.StatusCode() == http.StatusTooManyRequests:
			f.stats.RateLimited++
			lastStatus = res.StatusCode()
			wait = f.rateLimitBackoff(res, attempt)
		case slices.Contains(f.opts.RetryStatuses, res.StatusCode()):
			lastStatus = res.StatusCode()
			lastErr = nil
			wait = f.transientBackoff(attempt)
		default:
			f.stats.Failures++
			err := &FetchError{
				Url:      link,
				Attempts: attempt,
				Status:   res.StatusCode(),
				Err:      ErrUnexpectedStatus,
			}
			f.tel.ReportBroken(report_fetcher_fetch, err)
			span.SetStatus(codes.Error, err.Error())
			return Page{}, err
		}

		if attempt == f.opts.MaxAttempts {
			if blocked {
				f.tel.ReportWarning(report_fetcher_fetch, "blocked", link, attempt)
				f.record(ctx, OutcomeBlocked)
				return Page{
					Url:     link,
					Status:  lastStatus,
					Doc:     htmlutil.Empty(),
					Outcome: OutcomeBlocked,
				}, nil
			}
			break
		}

		f.stats.Retries++
		retryCounter.Add(ctx, 1)
		f.tel.ReportWarning(
			report_fetcher_retry,
			link,
			attempt,
			lastStatus,
			wait.String(),
		)
		err = f.clock.Sleep(ctx, wait)
		if err != nil {
			return Page{}, err
		}
		if blocked {
			f.headers = f.rotator.full()
		}
	}

	f.stats.Failures++
	cause := ErrAttemptsExhausted
	if lastErr != nil {
		cause = fmt.Errorf("%w: %w", ErrAttemptsExhausted, lastErr)
	}
	fetchErr := &FetchError{
		Url:      link,
		Attempts: f.opts.MaxAttempts,
		Status:   lastStatus,
		Err:      cause,
	}
	f.tel.ReportBroken(report_fetcher_fetch, fetchErr)
	span.SetStatus(codes.Error, fetchErr.Error())
	return Page{}, fetchErr
}

func (f *Fetcher) record(ctx context.Context, outcome Outcome) {
	outcomeCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome.String())))
}

func (f *Fetcher) transientBackoff(attempt int) time.Duration {
	seconds := f.opts.BackoffBase * math.Pow(f.opts.BackoffFactor, float64(attempt-1))
	if f.opts.BackoffCap > 0 {
		seconds = math.Min(seconds, f.opts.BackoffCap)
	}
	seconds += seconds * f.opts.BackoffJitter * f.rnd.Float64()
	return chrono.Seconds(seconds)
}

func (f *Fetcher) rateLimitBackoff(res *resty.Response, attempt int) time.Duration {
	wait := chrono.Seconds(f.opts.RateLimitBase * float64(attempt))
	retryAfter, err := strconv.Atoi(strings.TrimSpace(res.Header().Get("Retry-After")))
	if err == nil && retryAfter >= 0 {
		wait = time.Duration(retryAfter) * time.Second
	}
	return wait + f.opts.RateLimitJitter.Uniform(f.rnd)
}
