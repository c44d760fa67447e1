package store

// Entry is one normalized article record as it appears in the snapshot.
type Entry struct {
	ID          string   `json:"id"`
	SourceName  string   `json:"source_name"`
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	Published   string   `json:"published"`
	Timestamp   int64    `json:"timestamp"`
	Summary     string   `json:"summary"`
	Content     string   `json:"content,omitempty"`
	Author      string   `json:"author,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Category    string   `json:"category"`
	SourceIcon  string   `json:"source_icon"`
	SourceColor string   `json:"source_color"`
}

// CategoryStat is the per-category rollup inside snapshot metadata.
type CategoryStat struct {
	Icon    string         `json:"icon"`
	Color   string         `json:"color"`
	Count   int            `json:"count"`
	Sources map[string]int `json:"sources"`
}

// Meta is the snapshot metadata block.
type Meta struct {
	TotalArticles  int                     `json:"total_articles"`
	LastUpdated    string                  `json:"last_updated"`
	EntriesPerPage int                     `json:"entries_per_page"`
	Categories     map[string]CategoryStat `json:"categories"`
}

// Snapshot is the complete persisted state: metadata plus the ordered
// article list. It is rebuilt wholesale on every run.
type Snapshot struct {
	Meta     Meta    `json:"meta"`
	Articles []Entry `json:"articles"`
}

// CountBySource tallies how many retained entries each source contributed.
func CountBySource(entries []Entry) map[string]int {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.SourceName]++
	}
	return counts
}
