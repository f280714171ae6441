package registry

// PackageRecord describes a single package as reported by the primary
// registry search. Records are immutable once a snapshot is produced.
type PackageRecord struct {
	Name            string   `json:"name"`
	Version         string   `json:"version"`
	Description     string   `json:"description"`
	Downloads       uint64   `json:"downloads"`
	RecentDownloads uint64   `json:"recent_downloads"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
	Repository      string   `json:"repository,omitempty"`
	Homepage        string   `json:"homepage,omitempty"`
	Documentation   string   `json:"documentation,omitempty"`
	Categories      []string `json:"categories,omitempty"`
	Yanked          bool     `json:"yanked,omitempty"`
}

// Snapshot is an ordered primary search result. Each successful fetch fully
// replaces the previous snapshot; there is no incremental merge.
type Snapshot struct {
	Query    string          `json:"query"`
	Total    int             `json:"total"`
	Packages []PackageRecord `json:"packages"`
}

// RepoRecord describes a repository from the secondary index search.
type RepoRecord struct {
	Name        string
	FullName    string
	Description string
	URL         string
	Stars       int
	Forks       int
	Language    string
	UpdatedAt   string
	Topics      []string
}

// RepoSnapshot is an ordered secondary search result, replaced wholesale on
// each successful fetch and never mixed with primary snapshots.
type RepoSnapshot struct {
	Query string
	Total int
	Repos []RepoRecord
}
