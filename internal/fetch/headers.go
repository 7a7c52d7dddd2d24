package fetch

import (
	"regexp"
	"strings"

	"topcv-crawler/internal/components/chrono"

	browser "github.com/EDDYCJY/fake-useragent"
)

var (
	chromeVersionPattern = regexp.MustCompile(`Chrome/(\d+)`)
	edgeVersionPattern   = regexp.MustCompile(`Edg/(\d+)`)
)

type headerRotator struct {
	agents   []string
	generate bool
	referer  string
	rnd      chrono.RandomAPI
}

func newHeaderRotator(opts Options, rnd chrono.RandomAPI) headerRotator {
	agents := opts.UserAgents
	if len(agents) == 0 {
		agents = DefaultUserAgents
	}
	return headerRotator{
		agents:   agents,
		generate: opts.GenerateUserAgents,
		referer:  strings.TrimSuffix(opts.BaseUrl, "/") + "/",
		rnd:      rnd,
	}
}

func (h headerRotator) userAgent() string {
	if h.generate {
		if agent := browser.Computer(); agent != "" {
			return agent
		}
	}
	return h.agents[h.rnd.Intn(len(h.agents))]
}

// rotate switches headers over to a freshly picked user agent along with
// the client hints that go with it.
func (h headerRotator) rotate(headers map[string]string) {
	setAgent(headers, h.userAgent())
}

// full produces a browser-like header set with a freshly picked user agent.
func (h headerRotator) full() map[string]string {
	headers := map[string]string{
		"Accept-Language":           "vi-VN,vi;q=0.9,en-US;q=0.8,en;q=0.7",
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
		"Accept-Encoding":           "gzip",
		"Referer":                   h.referer,
		"Cache-Control":             "max-age=0",
		"Sec-Fetch-Dest":            "document",
		"Sec-Fetch-Mode":            "navigate",
		"Sec-Fetch-Site":            "same-origin",
		"Sec-Fetch-User":            "?1",
		"Upgrade-Insecure-Requests": "1",
	}
	setAgent(headers, h.userAgent())
	return headers
}

// setAgent sets the user agent and its client hints. only chromium based
// browsers send Sec-Ch-Ua, so the hints are dropped for anything else.
func setAgent(headers map[string]string, agent string) {
	headers["User-Agent"] = agent

	brand := "Google Chrome"
	match := edgeVersionPattern.FindStringSubmatch(agent)
	if match != nil {
		brand = "Microsoft Edge"
	} else {
		match = chromeVersionPattern.FindStringSubmatch(agent)
	}
	if match == nil {
		delete(headers, "Sec-Ch-Ua")
		delete(headers, "Sec-Ch-Ua-Mobile")
		delete(headers, "Sec-Ch-Ua-Platform")
		return
	}

	version := match[1]
	headers["Sec-Ch-Ua"] = `"Not_A Brand";v="8", "Chromium";v="` + version + `", "` + brand + `";v="` + version + `"`
	headers["Sec-Ch-Ua-Mobile"] = "?0"
	headers["Sec-Ch-Ua-Platform"] = `"` + agentPlatform(agent) + `"`
}

func agentPlatform(agent string) string {
	switch {
	case strings.Contains(agent, "Windows"):
		return "Windows"
	case strings.Contains(agent, "Macintosh"):
		return "macOS"
	case strings.Contains(agent, "CrOS"):
		return "Chrome OS"
	case strings.Contains(agent, "Linux"):
		return "Linux"
	}
	return "Unknown"
}
