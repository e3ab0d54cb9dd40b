package fetch

import (
	"context"
	"net/http"
	"regexp"
	"time"
)

// StatusURL is the NCEP page listing every radar with a colour coded status.
const StatusURL = "https://radar3pub.ncep.noaa.gov/"

// green marks a station that is up; yellow, blue and red are degraded or down.
const statusOnline = "33FF33"

var statusPattern = regexp.MustCompile(`(33FF33|FFFF00|0000FF|FF0000).*([A-Z]{4})`)

// Status is whether a station is online according to the status page.
type Status struct {
	Station string `json:"station"`
	Online  bool   `json:"online"`
}

// StatusChecker scrapes the radar status page.
type StatusChecker struct {
	URL    string
	Client *http.Client
}

// NewStatusChecker returns a checker for url. An empty url means StatusURL.
func NewStatusChecker(url string, timeout time.Duration) *StatusChecker {
	if url == "" {
		url = StatusURL
	}
	return &StatusChecker{URL: url, Client: &http.Client{Timeout: timeout}}
}

// Statuses returns every station found on the page, in page order.
func (s *StatusChecker) Statuses(ctx context.Context) ([]Status, error) {
	body, err := get(ctx, s.Client, s.URL)
	if err != nil {
		return nil, err
	}
	return parseStatuses(string(body)), nil
}

func parseStatuses(page string) []Status {
	matches := statusPattern.FindAllStringSubmatch(page, -1)
	statuses := make([]Status, 0, len(matches))
	for _, m := range matches {
		statuses = append(statuses, Status{Station: m[2], Online: m[1] == statusOnline})
	}
	return statuses
}
