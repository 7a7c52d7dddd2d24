package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"topcv-crawler/internal/components/chrono"
	"topcv-crawler/internal/components/telemetry"

	"github.com/stretchr/testify/require"
)

type response struct {
	status     int
	retryAfter string
	body       string
}

// scriptedServer answers requests with the given responses in order, the
// last one repeats forever.
type scriptedServer struct {
	*httptest.Server

	mutex     sync.Mutex
	responses []response
	requests  []*http.Request
}

func newScriptedServer(t *testing.T, responses ...response) *scriptedServer {
	s := &scriptedServer{responses: responses}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mutex.Lock()
		idx := len(s.requests)
		s.requests = append(s.requests, r)
		res := s.responses[min(idx, len(s.responses)-1)]
		s.mutex.Unlock()

		if res.retryAfter != "" {
			w.Header().Set("Retry-After", res.retryAfter)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(res.status)
		w.Write([]byte(res.body))
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *scriptedServer) hits() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.requests)
}

func (s *scriptedServer) request(i int) *http.Request {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.requests[i]
}

func testOptions(baseUrl string) Options {
	opts := DefaultOptions()
	opts.BaseUrl = baseUrl
	opts.UserAgents = []string{"agent-a", "agent-b"}
	return opts
}

func newTestFetcher(t *testing.T, opts Options) (*Fetcher, chrono.FakeImpl, *telemetry.Recorder) {
	clock := chrono.NewFakeImpl(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))
	rec := &telemetry.Recorder{}
	f, err := New(opts, clock, chrono.FixedRandom(0.5), rec)
	require.NoError(t, err)
	t.Cleanup(f.Close)
	return f, clock, rec
}

const okBody = `<html><body><h1 class="title">Kỹ sư Go</h1></body></html>`

func TestFetchSuccess(t *testing.T) {
	server := newScriptedServer(t, response{status: 200, body: okBody})
	f, clock, _ := newTestFetcher(t, testOptions(server.URL))

	page, err := f.Fetch(context.Background(), server.URL+"/viec-lam/ky-su-go/1.html")
	require.NoError(t, err)
	require.Equal(t, OutcomeOK, page.Outcome)
	require.Equal(t, 200, page.Status)
	require.Equal(t, "Kỹ sư Go", page.Doc.Find("h1.title").Text())
	require.Equal(t, 1, server.hits())
	require.Empty(t, clock.Sleeps())

	req := server.request(0)
	require.Equal(t, "agent-b", req.Header.Get("User-Agent"))
	require.Equal(t, "vi-VN,vi;q=0.9,en-US;q=0.8,en;q=0.7", req.Header.Get("Accept-Language"))
	require.Equal(t, server.URL+"/", req.Header.Get("Referer"))
}

func TestFetchTransientThenSuccess(t *testing.T) {
	server := newScriptedServer(t,
		response{status: 503},
		response{status: 502},
		response{status: 200, body: okBody},
	)
	f, clock, _ := newTestFetcher(t, testOptions(server.URL))

	page, err := f.Fetch(context.Background(), server.URL+"/x")
	require.NoError(t, err)
	require.Equal(t, OutcomeOK, page.Outcome)
	require.Equal(t, 3, server.hits())
	// 5s * 2^(n-1) plus half of the 50% jitter
	require.Equal(t, []time.Duration{6250 * time.Millisecond, 12500 * time.Millisecond}, clock.Sleeps())
	require.Equal(t, Stats{Requests: 3, Retries: 2}, f.Stats())
}

func TestFetchExhaustsAttempts(t *testing.T) {
	server := newScriptedServer(t, response{status: 500})
	opts := testOptions(server.URL)
	opts.MaxAttempts = 3
	f, clock, rec := newTestFetcher(t, opts)

	_, err := f.Fetch(context.Background(), server.URL+"/x")
	require.ErrorIs(t, err, ErrAttemptsExhausted)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	require.Equal(t, 500, fetchErr.Status)
	require.Equal(t, 3, fetchErr.Attempts)

	require.Equal(t, 3, server.hits())
	// no sleep after the final attempt
	require.Len(t, clock.Sleeps(), 2)
	require.Equal(t, Stats{Requests: 3, Retries: 2, Failures: 1}, f.Stats())
	require.Len(t, rec.Reports(telemetry.KindBroken), 1)
}

func TestFetchBackoffIsCapped(t *testing.T) {
	server := newScriptedServer(t, response{status: 504})
	opts := testOptions(server.URL)
	opts.MaxAttempts = 3
	opts.BackoffBase = 100
	f, clock, _ := newTestFetcher(t, opts)

	_, err := f.Fetch(context.Background(), server.URL+"/x")
	require.ErrorIs(t, err, ErrAttemptsExhausted)
	require.Equal(t, []time.Duration{125 * time.Second, 150 * time.Second}, clock.Sleeps())
	for _, sleep := range clock.Sleeps() {
		require.LessOrEqual(t, sleep, chrono.Seconds(opts.BackoffCap*(1+opts.BackoffJitter)))
	}
}

func TestFetchRateLimited(t *testing.T) {
	t.Run("retry after header", func(t *testing.T) {
		server := newScriptedServer(t,
			response{status: 429, retryAfter: "7"},
			response{status: 200, body: okBody},
		)
		f, clock, _ := newTestFetcher(t, testOptions(server.URL))

		page, err := f.Fetch(context.Background(), server.URL+"/x")
		require.NoError(t, err)
		require.Equal(t, OutcomeOK, page.Outcome)
		// 7s + midpoint of the 5-15s jitter
		require.Equal(t, []time.Duration{17 * time.Second}, clock.Sleeps())
		require.Equal(t, int64(1), f.Stats().RateLimited)
	})

	t.Run("fallback", func(t *testing.T) {
		server := newScriptedServer(t,
			response{status: 429, retryAfter: "soon"},
			response{status: 429},
			response{status: 200, body: okBody},
		)
		f, clock, _ := newTestFetcher(t, testOptions(server.URL))

		_, err := f.Fetch(context.Background(), server.URL+"/x")
		require.NoError(t, err)
		require.Equal(t, []time.Duration{40 * time.Second, 70 * time.Second}, clock.Sleeps())
	})
}

func TestFetchRateLimitedExhaustsAttempts(t *testing.T) {
	cases := []struct {
		name       string
		retryAfter string
		sleeps     []time.Duration
	}{
		{
			name:   "fallback",
			sleeps: []time.Duration{40 * time.Second, 70 * time.Second, 100 * time.Second, 130 * time.Second},
		},
		{
			name:       "retry after header",
			retryAfter: "7",
			sleeps:     []time.Duration{17 * time.Second, 17 * time.Second, 17 * time.Second, 17 * time.Second},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := newScriptedServer(t, response{status: 429, retryAfter: tc.retryAfter})
			f, clock, rec := newTestFetcher(t, testOptions(server.URL))

			_, err := f.Fetch(context.Background(), server.URL+"/x")
			require.ErrorIs(t, err, ErrAttemptsExhausted)
			var fetchErr *FetchError
			require.ErrorAs(t, err, &fetchErr)
			require.Equal(t, 429, fetchErr.Status)
			require.Equal(t, 5, fetchErr.Attempts)

			require.Equal(t, 5, server.hits())
			require.Equal(t, tc.sleeps, clock.Sleeps())
			require.Equal(t, Stats{Requests: 5, Retries: 4, RateLimited: 5, Failures: 1}, f.Stats())
			require.Len(t, rec.Reports(telemetry.KindBroken), 1)
		})
	}
}

func TestFetchBlocked(t *testing.T) {
	server := newScriptedServer(t, response{status: 403, body: "captcha"})
	opts := testOptions(server.URL)
	opts.MaxAttempts = 3
	f, clock, rec := newTestFetcher(t, opts)

	page, err := f.Fetch(context.Background(), server.URL+"/viec-lam/x")
	require.NoError(t, err)
	require.Equal(t, OutcomeBlocked, page.Outcome)
	require.Equal(t, 403, page.Status)
	require.NotNil(t, page.Doc)
	require.Equal(t, "", page.Doc.Find("body").Text())

	require.Equal(t, 3, server.hits())
	require.Equal(t, []time.Duration{15 * time.Second, 30 * time.Second}, clock.Sleeps())
	for i := range 3 {
		require.NotEmpty(t, server.request(i).Header.Get("Sec-Fetch-Mode"))
	}
	require.Equal(t, int64(3), f.Stats().Blocked)
	require.Empty(t, rec.Reports(telemetry.KindBroken))
}

// steppingRandom hands out 0, 1, 2, ... from Intn so every pick differs.
type steppingRandom struct {
	next int
}

func (r *steppingRandom) Float64() float64 {
	return 0.5
}

func (r *steppingRandom) Intn(n int) int {
	v := r.next % n
	r.next++
	return v
}

func TestFetchBlockedRegeneratesHeaders(t *testing.T) {
	const (
		firefox  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0"
		chrome   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
		chromeOS = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36"
	)
	server := newScriptedServer(t, response{status: 403})
	opts := testOptions(server.URL)
	opts.MaxAttempts = 3
	opts.UserAgents = []string{chrome, firefox, chromeOS}

	clock := chrono.NewFakeImpl(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))
	f, err := New(opts, clock, &steppingRandom{}, &telemetry.Recorder{})
	require.NoError(t, err)
	defer f.Close()

	f.headers["Referer"] = server.URL + "/viec-lam/previous"
	f.headers["X-Requested-With"] = "XMLHttpRequest"

	page, err := f.Fetch(context.Background(), server.URL+"/viec-lam/x")
	require.NoError(t, err)
	require.Equal(t, OutcomeBlocked, page.Outcome)
	require.Equal(t, 3, server.hits())

	first, second, third := server.request(0).Header, server.request(1).Header, server.request(2).Header

	require.Equal(t, firefox, first.Get("User-Agent"))
	require.Empty(t, first.Get("Sec-Ch-Ua"))
	require.Equal(t, server.URL+"/viec-lam/previous", first.Get("Referer"))
	require.Equal(t, "XMLHttpRequest", first.Get("X-Requested-With"))

	require.Equal(t, chrome, second.Get("User-Agent"))
	require.Contains(t, second.Get("Sec-Ch-Ua"), `"Google Chrome";v="120"`)
	require.Equal(t, `"Windows"`, second.Get("Sec-Ch-Ua-Platform"))
	// session state is dropped along with the old header set
	require.Equal(t, server.URL+"/", second.Get("Referer"))
	require.Empty(t, second.Get("X-Requested-With"))

	require.Equal(t, chromeOS, third.Get("User-Agent"))
	require.Contains(t, third.Get("Sec-Ch-Ua"), `"Google Chrome";v="119"`)
	require.Equal(t, `"macOS"`, third.Get("Sec-Ch-Ua-Platform"))
}

func TestFetchBlockedThenRecovered(t *testing.T) {
	server := newScriptedServer(t,
		response{status: 403},
		response{status: 200, body: okBody},
	)
	f, _, _ := newTestFetcher(t, testOptions(server.URL))

	page, err := f.Fetch(context.Background(), server.URL+"/x")
	require.NoError(t, err)
	require.Equal(t, OutcomeOK, page.Outcome)
}

func TestFetchUnexpectedStatus(t *testing.T) {
	server := newScriptedServer(t, response{status: 404})
	f, clock, _ := newTestFetcher(t, testOptions(server.URL))

	_, err := f.Fetch(context.Background(), server.URL+"/gone")
	require.ErrorIs(t, err, ErrUnexpectedStatus)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, 404, fetchErr.Status)
	require.Equal(t, 1, fetchErr.Attempts)
	require.Equal(t, 1, server.hits())
	require.Empty(t, clock.Sleeps())
}

func TestFetchRedirect(t *testing.T) {
	t.Run("same host is followed", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/new", http.StatusMovedPermanently)
		})
		mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(okBody))
		})
		server := httptest.NewServer(mux)
		defer server.Close()
		f, clock, _ := newTestFetcher(t, testOptions(server.URL))

		page, err := f.Fetch(context.Background(), server.URL+"/old")
		require.NoError(t, err)
		require.Equal(t, "Kỹ sư Go", page.Doc.Find("h1.title").Text())
		require.Empty(t, clock.Sleeps())
	})

	t.Run("foreign host is not retried", func(t *testing.T) {
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			http.Redirect(w, r, "http://login.elsewhere.test/x", http.StatusFound)
		}))
		defer server.Close()
		f, clock, rec := newTestFetcher(t, testOptions(server.URL))

		_, err := f.Fetch(context.Background(), server.URL+"/x")
		require.ErrorIs(t, err, ErrRedirectNotAllowed)
		require.NotErrorIs(t, err, ErrAttemptsExhausted)
		var fetchErr *FetchError
		require.ErrorAs(t, err, &fetchErr)
		require.Equal(t, 1, fetchErr.Attempts)

		require.Equal(t, int32(1), hits.Load())
		require.Empty(t, clock.Sleeps())
		require.Equal(t, Stats{Requests: 1, Failures: 1}, f.Stats())
		require.Len(t, rec.Reports(telemetry.KindBroken), 1)
	})
}

func TestFetchNetworkError(t *testing.T) {
	opts := testOptions("http://127.0.0.1:1")
	opts.MaxAttempts = 2
	f, clock, _ := newTestFetcher(t, opts)

	_, err := f.Fetch(context.Background(), "http://127.0.0.1:1/x")
	require.ErrorIs(t, err, ErrAttemptsExhausted)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, 0, fetchErr.Status)
	require.Len(t, clock.Sleeps(), 1)
}

func TestFetchCancelled(t *testing.T) {
	server := newScriptedServer(t, response{status: 200, body: okBody})
	f, _, _ := newTestFetcher(t, testOptions(server.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.Fetch(ctx, server.URL+"/x")
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 0, server.hits())
}

func TestFetchCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		cancel()
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()
	f, _, _ := newTestFetcher(t, testOptions(server.URL))

	_, err := f.Fetch(ctx, server.URL+"/x")
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, int32(1), hits.Load())
}

func TestOpenWarmup(t *testing.T) {
	server := newScriptedServer(t, response{status: 200, body: okBody})
	clock := chrono.NewFakeImpl(time.Now())
	rec := &telemetry.Recorder{}

	f, err := Open(context.Background(), testOptions(server.URL), clock, chrono.FixedRandom(0.5), rec)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, 1, server.hits())
	require.Equal(t, "/", server.request(0).URL.Path)
	require.Equal(t, []time.Duration{3 * time.Second}, clock.Sleeps())
}

func TestOpenWarmupFailureIsNotFatal(t *testing.T) {
	clock := chrono.NewFakeImpl(time.Now())
	rec := &telemetry.Recorder{}

	f, err := Open(context.Background(), testOptions("http://127.0.0.1:1"), clock, chrono.FixedRandom(0.5), rec)
	require.NoError(t, err)
	defer f.Close()

	var warmup []telemetry.Report
	for _, report := range rec.Reports(telemetry.KindWarning) {
		if report.Id == "fetch: "+report_fetcher_warmup {
			warmup = append(warmup, report)
		}
	}
	require.Len(t, warmup, 1)
	require.Empty(t, clock.Sleeps())
}

func TestNewRejectsRelativeBaseUrl(t *testing.T) {
	_, err := New(testOptions("/relative"), chrono.NewFakeImpl(time.Now()), chrono.FixedRandom(0), &telemetry.Recorder{})
	require.Error(t, err)
}

func TestPause(t *testing.T) {
	f, clock, _ := newTestFetcher(t, testOptions("http://127.0.0.1:1"))
	require.NoError(t, f.Pause(context.Background()))
	require.Equal(t, []time.Duration{3500 * time.Millisecond}, clock.Sleeps())
}

func TestCloseReportsStats(t *testing.T) {
	server := newScriptedServer(t, response{status: 200, body: okBody})
	clock := chrono.NewFakeImpl(time.Now())
	rec := &telemetry.Recorder{}
	f, err := New(testOptions(server.URL), clock, chrono.FixedRandom(0.5), rec)
	require.NoError(t, err)

	_, err = f.Fetch(context.Background(), server.URL+"/x")
	require.NoError(t, err)
	f.Close()

	require.Equal(t, int64(1), rec.Counts()["fetch: fetcher.stats-requests"])
}

func TestHeaderAgentHints(t *testing.T) {
	cases := []struct {
		agent    string
		ua       string
		platform string
	}{
		{
			agent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			ua:       `"Not_A Brand";v="8", "Chromium";v="120", "Google Chrome";v="120"`,
			platform: `"Windows"`,
		},
		{
			agent:    "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36 Edg/118.0.2088.46",
			ua:       `"Not_A Brand";v="8", "Chromium";v="118", "Microsoft Edge";v="118"`,
			platform: `"Linux"`,
		},
		{
			agent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15",
		},
		{
			agent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
		},
	}
	for _, tc := range cases {
		headers := map[string]string{}
		setAgent(headers, "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36")
		setAgent(headers, tc.agent)

		require.Equal(t, tc.agent, headers["User-Agent"])
		require.Equal(t, tc.ua, headers["Sec-Ch-Ua"], tc.agent)
		require.Equal(t, tc.platform, headers["Sec-Ch-Ua-Platform"], tc.agent)
		if tc.ua == "" {
			require.NotContains(t, headers, "Sec-Ch-Ua-Mobile")
		}
	}
}
