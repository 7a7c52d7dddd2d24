package fetch

import (
	"fmt"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"topcv-crawler/internal/components/chrono"
	"topcv-crawler/internal/components/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

// newTransport builds the pooled http client every request of a session
// goes through. retries are owned by the Fetcher, so resty never retries.
func newTransport(opts Options, tel telemetry.API) (*resty.Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if baseUrl.Scheme == "" || baseUrl.Host == "" {
		return nil, fmt.Errorf("base url %q is not absolute", opts.BaseUrl)
	}

	connectTimeout := chrono.Seconds(opts.ConnectTimeout)
	readTimeout := chrono.Seconds(opts.ReadTimeout)

	dialer := &net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          opts.PoolSize,
		MaxIdleConnsPerHost:   opts.PoolSize,
		MaxConnsPerHost:       opts.PoolSize,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   connectTimeout,
		ResponseHeaderTimeout: readTimeout,
	}

	httpClient := resty.New()
	httpClient.SetTransport(transport)
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	httpClient.SetCookieJar(jar)
	if !opts.DisableCloudflare {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}

	host := baseUrl.Hostname()
	domainCheck := resty.DomainCheckRedirectPolicy(host, strings.TrimPrefix(host, "www."))
	httpClient.SetRedirectPolicy(
		resty.FlexibleRedirectPolicy(10),
		resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
			err := domainCheck.Apply(req, via)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrRedirectNotAllowed, req.URL.Host, err)
			}
			return nil
		}),
	)
	httpClient.SetTimeout(connectTimeout + readTimeout)
	httpClient.SetRetryCount(0)

	if opts.RequestsPerSecond > 0 {
		// burst of 1 keeps requests evenly spaced
		rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
		httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return rateLimiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(httpClient, tel, opts.Dump)

	return httpClient, nil
}
