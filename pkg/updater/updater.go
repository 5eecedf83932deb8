// Package updater checks GitHub for a newer mxv release.
package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultReleaseURL is the latest-release endpoint of the mxv repository
const DefaultReleaseURL = "https://api.github.com/repos/Dicklesworthstone/matrix_viewer/releases/latest"

type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Checker queries a release endpoint
type Checker struct {
	URL    string
	Client *http.Client
}

// New returns a checker for the mxv repository with a short timeout, so a
// slow network never holds up the CLI for long.
func New() *Checker {
	return &Checker{
		URL:    DefaultReleaseURL,
		Client: &http.Client{Timeout: 2 * time.Second},
	}
}

// CheckForUpdates returns the newer release, or nil when current is up to
// date.
func (c *Checker) CheckForUpdates(ctx context.Context, current string) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github api returned status: %s", resp.Status)
	}

	var rel Release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if CompareVersions(rel.TagName, current) > 0 {
		return &rel, nil
	}
	return nil, nil
}

// CompareVersions returns 1 if v1 > v2, -1 if v1 < v2, 0 if equal. Versions
// are dotted numbers with an optional "v" prefix; anything after '-' or '+'
// is ignored, and a non-numeric segment counts as 0.
func CompareVersions(v1, v2 string) int {
	a, b := segments(v1), segments(v2)
	for len(a) < len(b) {
		a = append(a, 0)
	}
	for len(b) < len(a) {
		b = append(b, 0)
	}
	for i := range a {
		switch {
		case a[i] > b[i]:
			return 1
		case a[i] < b[i]:
			return -1
		}
	}
	return 0
}

func segments(v string) []int {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v = v[:i]
	}
	parts := strings.Split(v, ".")
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err == nil {
			out[i] = n
		}
	}
	return out
}
