package model

import (
	"strconv"
	"time"
)

// Source is a site that postings are scraped from.
// A nil ID means the source has not been persisted yet.
type Source struct {
	ID          *int    `json:"id"`
	Name        string  `json:"name"`
	URL         string  `json:"url"`
	Pagination  *string `json:"pagination"`
	Selector    *string `json:"selector"`
	Content     *string `json:"content"`
	Favicon     *string `json:"favicon"`
	Unreachable bool    `json:"unreachable"`
	Deleted     bool    `json:"deleted"`
	Refreshing  bool    `json:"refreshing"`
}

// Posting is a single job posting extracted from a source.
// IsMatch is three-state: true=liked, false=disliked, nil=neutral.
type Posting struct {
	ID          *int      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	SourceID    *int      `json:"source_id"`
	CreatedAt   time.Time `json:"created_at"`
	Seen        bool      `json:"seen"`
	Bookmarked  bool      `json:"bookmarked"`
	Content     string    `json:"content"`
	IsMatch     *bool     `json:"is_match"`
	Similarity  *float64  `json:"similarity,omitempty"`
}

// Filter is a matching rule applied server-side during scraping.
type Filter struct {
	ID    *int   `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Settings is the singleton server configuration record. Consumers always
// see a value; an absent server record becomes the zero Settings.
type Settings struct {
	ID     *int    `json:"id"`
	APIKey *string `json:"api_key"`
	Model  *string `json:"model"`
}

// Suggestion is a candidate source that has not been added yet.
type Suggestion struct {
	ID       *int   `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	SourceID *int   `json:"source_id"`
}

// Usage is the aggregated extraction cost for one source. Read-only.
type Usage struct {
	SourceName string  `json:"source_name"`
	SourceID   *int    `json:"source_id"`
	Cost       float64 `json:"cost"`
}

// Severity of a notification.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
)

// Notification is an ephemeral user-facing message. Removed explicitly by
// the consumer, never expired.
type Notification struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Details  string   `json:"details,omitempty"`
}

// SelectedSource is the scalar that filters the postings view: one of the
// reserved sentinels below or a numeric source id.
type SelectedSource string

const (
	SelectAll        SelectedSource = "all"
	SelectToday      SelectedSource = "today"
	SelectBookmarked SelectedSource = "bookmarked"
)

// SelectSourceID builds a SelectedSource for a concrete source id.
func SelectSourceID(id int) SelectedSource {
	return SelectedSource(strconv.Itoa(id))
}

// SourceID returns the numeric source id when the selection is not one of
// the reserved sentinels.
func (s SelectedSource) SourceID() (int, bool) {
	switch s {
	case SelectAll, SelectToday, SelectBookmarked, "":
		return 0, false
	}
	id, err := strconv.Atoi(string(s))
	if err != nil {
		return 0, false
	}
	return id, true
}

// IntPtr is a convenience for building nullable id fields.
func IntPtr(v int) *int { return &v }

// StrPtr is a convenience for building nullable string fields.
func StrPtr(v string) *string { return &v }

// BoolPtr is a convenience for building the three-state match flag.
func BoolPtr(v bool) *bool { return &v }
