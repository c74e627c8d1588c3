package catalog

import (
	"encoding/json"
	"time"

	"github.com/tidwall/gjson"
)

// Entry is one catalogued application as listed by the remote directory.
type Entry struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Enriched  bool      `json:"enriched"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Detail holds the storefront metadata captured when an entry was enriched.
type Detail struct {
	EntryID          int64           `json:"entry_id"`
	Name             string          `json:"name"`
	About            string          `json:"about,omitempty"`
	ShortDescription string          `json:"short_description,omitempty"`
	HeaderImageURL   string          `json:"header_image_url,omitempty"`
	WebsiteURL       string          `json:"website_url,omitempty"`
	IsGame           bool            `json:"is_game"`
	IsFree           bool            `json:"is_free"`
	RequiredAge      string          `json:"required_age,omitempty"`
	Developers       string          `json:"developers,omitempty"`
	Publishers       string          `json:"publishers,omitempty"`
	Genres           string          `json:"genres,omitempty"`
	ReleaseDate      string          `json:"release_date,omitempty"`
	PriceInfo        json.RawMessage `json:"price_info,omitempty"`
	Categories       json.RawMessage `json:"categories,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// PriceLabel returns the display price: "Free" for free titles, otherwise the
// formatted final price from the stored price payload.
func (d *Detail) PriceLabel() string {
	if d == nil {
		return ""
	}
	if d.IsFree {
		return "Free"
	}
	if len(d.PriceInfo) == 0 {
		return ""
	}
	return gjson.GetBytes(d.PriceInfo, "final_formatted").String()
}

// CategoryNames extracts the description of each stored category.
func (d *Detail) CategoryNames() []string {
	if d == nil || len(d.Categories) == 0 {
		return nil
	}
	var names []string
	gjson.GetBytes(d.Categories, "#.description").ForEach(func(_, value gjson.Result) bool {
		if s := value.String(); s != "" {
			names = append(names, s)
		}
		return true
	})
	return names
}

// ListFilter narrows List results.
type ListFilter struct {
	PendingOnly bool
	// Limit caps the number of rows; zero or negative means no limit.
	Limit int
}

// Stats summarises catalog counts.
type Stats struct {
	Entries        int `json:"entries"`
	Enriched       int `json:"enriched"`
	Pending        int `json:"pending"`
	Details        int `json:"details"`
	NonGameDetails int `json:"non_game_details"`
}

// DatabaseHealth captures diagnostic information about the catalog database.
type DatabaseHealth struct {
	DBPath           string   `json:"db_path"`
	DatabaseExists   bool     `json:"database_exists"`
	DatabaseReadable bool     `json:"database_readable"`
	SchemaVersion    int      `json:"schema_version"`
	TablesPresent    []string `json:"tables_present,omitempty"`
	MissingTables    []string `json:"missing_tables,omitempty"`
	IntegrityCheck   bool     `json:"integrity_check"`
	TotalEntries     int      `json:"total_entries"`
	// InvariantViolations counts entries whose enriched flag disagrees with
	// the presence of a detail row, plus details without an entry.
	InvariantViolations int    `json:"invariant_violations"`
	Error               string `json:"error,omitempty"`
}
