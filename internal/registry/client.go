package registry

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// DefaultPrimaryURL is the crates.io search endpoint.
	DefaultPrimaryURL = "https://crates.io/api/v1/crates"
	// DefaultSecondaryURL is the GitHub repository search endpoint.
	DefaultSecondaryURL = "https://api.github.com/search/repositories"

	defaultPageSize = 50
	userAgent       = "ratcrate-tui (github.com/ratcrate/ratcrate-tui)"

	// bodyExcerptLimit bounds how much of a raw response is carried in an
	// error string when diagnosing a schema mismatch.
	bodyExcerptLimit = 200
)

// Client performs the primary and secondary search requests. Searches are
// single-shot: transport failures and bad responses surface as errors and
// are never retried here.
type Client struct {
	http         *resty.Client
	primaryURL   string
	secondaryURL string
	pageSize     int
	throttle     *throttle
}

// Option customises a Client.
type Option func(*Client)

// WithPrimaryURL overrides the primary registry search endpoint.
func WithPrimaryURL(url string) Option {
	return func(c *Client) { c.primaryURL = url }
}

// WithSecondaryURL overrides the secondary index search endpoint.
func WithSecondaryURL(url string) Option {
	return func(c *Client) { c.secondaryURL = url }
}

// WithPageSize sets how many records a primary search requests.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithThrottleInterval sets the minimum spacing between outgoing requests.
func WithThrottleInterval(d time.Duration) Option {
	return func(c *Client) { c.throttle = newThrottle(d) }
}

// NewClient builds a search client with the default endpoints.
func NewClient(opts ...Option) *Client {
	httpClient := resty.New().
		SetTimeout(30 * time.Second).
		SetHeader("User-Agent", userAgent)
	c := &Client{
		http:         httpClient,
		primaryURL:   DefaultPrimaryURL,
		secondaryURL: DefaultSecondaryURL,
		pageSize:     defaultPageSize,
		throttle:     newThrottle(time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type crateJSON struct {
	Name            string   `json:"name"`
	MaxVersion      string   `json:"max_version"`
	NewestVersion   string   `json:"newest_version"`
	Description     string   `json:"description"`
	Downloads       uint64   `json:"downloads"`
	RecentDownloads uint64   `json:"recent_downloads"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
	Repository      *string  `json:"repository"`
	Homepage        *string  `json:"homepage"`
	Documentation   *string  `json:"documentation"`
	Categories      []string `json:"categories"`
	Yanked          bool     `json:"yanked"`
}

type crateSearchResponse struct {
	Crates []crateJSON `json:"crates"`
	Meta   struct {
		Total int `json:"total"`
	} `json:"meta"`
}

// SearchPackages queries the primary registry and returns an ordered
// snapshot with yanked records removed.
func (c *Client) SearchPackages(query string) (Snapshot, error) {
	c.throttle.wait()
	resp, err := c.http.R().
		SetQueryParam("q", query).
		SetQueryParam("per_page", fmt.Sprintf("%d", c.pageSize)).
		Get(c.primaryURL)
	if err != nil {
		return Snapshot{}, fmt.Errorf("primary search: %w", err)
	}
	body := resp.Body()
	if resp.IsError() {
		return Snapshot{}, fmt.Errorf("primary search: status %s: %s", resp.Status(), excerpt(body))
	}
	var parsed crateSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Snapshot{}, fmt.Errorf("primary search: parse response: %v: %s", err, excerpt(body))
	}
	records := make([]PackageRecord, 0, len(parsed.Crates))
	for _, cr := range parsed.Crates {
		if cr.Yanked {
			continue
		}
		records = append(records, packageFromJSON(cr))
	}
	return Snapshot{Query: query, Total: parsed.Meta.Total, Packages: records}, nil
}

func packageFromJSON(cr crateJSON) PackageRecord {
	version := cr.MaxVersion
	if version == "" {
		version = cr.NewestVersion
	}
	return PackageRecord{
		Name:            cr.Name,
		Version:         version,
		Description:     cr.Description,
		Downloads:       cr.Downloads,
		RecentDownloads: cr.RecentDownloads,
		CreatedAt:       cr.CreatedAt,
		UpdatedAt:       cr.UpdatedAt,
		Repository:      deref(cr.Repository),
		Homepage:        deref(cr.Homepage),
		Documentation:   deref(cr.Documentation),
		Categories:      append([]string(nil), cr.Categories...),
		Yanked:          cr.Yanked,
	}
}

type repoJSON struct {
	Name        string   `json:"name"`
	FullName    string   `json:"full_name"`
	Description string   `json:"description"`
	HTMLURL     string   `json:"html_url"`
	Stars       int      `json:"stargazers_count"`
	Forks       int      `json:"forks_count"`
	Language    string   `json:"language"`
	UpdatedAt   string   `json:"updated_at"`
	Topics      []string `json:"topics"`
}

type repoSearchResponse struct {
	TotalCount int        `json:"total_count"`
	Items      []repoJSON `json:"items"`
}

// SearchRepos queries the secondary index for repositories.
func (c *Client) SearchRepos(query string) (RepoSnapshot, error) {
	c.throttle.wait()
	resp, err := c.http.R().
		SetQueryParam("q", query).
		Get(c.secondaryURL)
	if err != nil {
		return RepoSnapshot{}, fmt.Errorf("index search: %w", err)
	}
	body := resp.Body()
	if resp.IsError() {
		return RepoSnapshot{}, fmt.Errorf("index search: status %s: %s", resp.Status(), excerpt(body))
	}
	var parsed repoSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return RepoSnapshot{}, fmt.Errorf("index search: parse response: %v: %s", err, excerpt(body))
	}
	records := make([]RepoRecord, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		records = append(records, RepoRecord{
			Name:        item.Name,
			FullName:    item.FullName,
			Description: item.Description,
			URL:         item.HTMLURL,
			Stars:       item.Stars,
			Forks:       item.Forks,
			Language:    item.Language,
			UpdatedAt:   item.UpdatedAt,
			Topics:      append([]string(nil), item.Topics...),
		})
	}
	return RepoSnapshot{Query: query, Total: parsed.TotalCount, Repos: records}, nil
}

func excerpt(body []byte) string {
	if len(body) > bodyExcerptLimit {
		return string(body[:bodyExcerptLimit]) + "…"
	}
	return string(body)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
