package domain

import (
	"fmt"
	"strings"
)

// SourceKind identifies which adapter produced a document.
type SourceKind string

const (
	// SourceBill marks documents fetched from the Congress API.
	SourceBill SourceKind = "bill"

	// SourceNewspaper marks documents read from the bulk newspaper corpus.
	SourceNewspaper SourceKind = "newspaper"
)

const (
	// CongressBaseYear is the start year of the 1st Congress.
	CongressBaseYear = 1789

	// CongressTermYears is the length of one Congress in years.
	CongressTermYears = 2

	// MaxObjectBytes is the per-object body ceiling of the downstream
	// knowledge base. Larger documents are rejected before any write.
	MaxObjectBytes = 50 * 1024 * 1024
)

// Value length caps applied when building object metadata.
// Stores reject oversized metadata values, so fields are clamped.
const (
	maxTitleLen = 1024
	maxDateLen  = 100
	maxPlaceLen = 256
	maxURLLen   = 1024
)

// Document is the canonical representation produced by either source
// adapter. Exactly one identity group (bill or newspaper) is populated
// depending on Kind; the metadata schema always carries both groups so
// downstream filtering never branches on source kind.
type Document struct {
	Kind SourceKind

	// Bill identity (Kind == SourceBill).
	Congress   int
	BillType   string // lowercase category code, e.g. "hr", "sjres"
	BillNumber string

	// Newspaper identity (Kind == SourceNewspaper).
	Batch int
	Row   int

	// Text is the extracted document body. Must be non-empty to persist.
	Text string

	// CanonicalURL is the remote location the text was derived from.
	CanonicalURL string

	// Descriptive attributes. Bill fields.
	Title            string
	IntroducedDate   string
	LatestAction     string
	LatestActionDate string

	// Descriptive attributes. Newspaper fields.
	IssueDate    string
	Place        string
	EditionNotes string
}

// BillID returns the composite bill identifier, e.g. "congress_6_hr_1".
func (d *Document) BillID() string {
	return fmt.Sprintf("congress_%d_%s_%s", d.Congress, d.BillType, d.BillNumber)
}

// Key returns the deterministic storage key for the document.
// Re-running the pipeline on the same identity always yields the same
// key; the persistence layer uses it for idempotent skip-if-exists.
func (d *Document) Key() string {
	if d.Kind == SourceBill {
		return fmt.Sprintf("bills/congress_%d/%s_%s.txt", d.Congress, d.BillType, d.BillNumber)
	}
	return fmt.Sprintf("newspapers/batch-%d/newspaper_%d_%s_%s.txt",
		d.Batch, d.Row, safeFragment(d.IssueDate), safeTitleFragment(d.Title))
}

// Year derives the coarse partition year as a four-digit string.
// Bills fall back through introduction date, latest action date, and
// finally the Congress start year, so a bill always has a year.
// Newspapers use the issue date and may legitimately be blank.
func (d *Document) Year() string {
	if d.Kind == SourceNewspaper {
		return yearOf(d.IssueDate)
	}
	if y := yearOf(d.IntroducedDate); y != "" {
		return y
	}
	if y := yearOf(d.LatestActionDate); y != "" {
		return y
	}
	return fmt.Sprintf("%d", CongressBaseYear+(d.Congress-1)*CongressTermYears)
}

// Metadata returns the unified attribute schema attached to every
// persisted object. Both field groups are always present; the group
// for the other source kind holds empty strings. This uniformity lets
// the semantic index apply identical filter predicates to both kinds.
func (d *Document) Metadata() map[string]string {
	m := map[string]string{
		"entity_type": string(d.Kind),
		"source":      "",
		"year":        d.Year(),

		"congress":           "",
		"bill_type":          "",
		"bill_number":        "",
		"bill_id":            "",
		"bill_title":         "",
		"introduced_date":    "",
		"latest_action_date": "",
		"bill_url":           "",

		"newspaper_title":      "",
		"issue_date":           "",
		"place_of_publication": "",
		"pdf_url":              "",
		"edition_notes":        "",
	}

	switch d.Kind {
	case SourceBill:
		m["source"] = "congress.gov"
		m["congress"] = fmt.Sprintf("%d", d.Congress)
		m["bill_type"] = strings.ToUpper(d.BillType)
		m["bill_number"] = d.BillNumber
		m["bill_id"] = d.BillID()
		m["bill_title"] = clamp(d.Title, maxTitleLen)
		m["introduced_date"] = clamp(d.IntroducedDate, maxDateLen)
		m["latest_action_date"] = clamp(d.LatestActionDate, maxDateLen)
		m["bill_url"] = clamp(d.CanonicalURL, maxURLLen)
	case SourceNewspaper:
		m["source"] = "chroniclingamerica.loc.gov"
		m["newspaper_title"] = clamp(d.Title, maxTitleLen)
		m["issue_date"] = clamp(d.IssueDate, maxDateLen)
		m["place_of_publication"] = clamp(d.Place, maxPlaceLen)
		m["pdf_url"] = clamp(d.CanonicalURL, maxURLLen)
		m["edition_notes"] = clamp(d.EditionNotes, maxPlaceLen)
	}

	return m
}

// Body renders the persisted object body: a metadata header block, a
// blank line, then the document text.
func (d *Document) Body() []byte {
	var b strings.Builder
	if d.Kind == SourceBill {
		fmt.Fprintf(&b, "BILL METADATA:\n")
		fmt.Fprintf(&b, "Congress: %d\n", d.Congress)
		fmt.Fprintf(&b, "Bill Type: %s\n", strings.ToUpper(d.BillType))
		fmt.Fprintf(&b, "Bill Number: %s\n", d.BillNumber)
		fmt.Fprintf(&b, "Bill ID: %s\n", d.BillID())
		fmt.Fprintf(&b, "Title: %s\n", orNA(d.Title))
		fmt.Fprintf(&b, "Introduced Date: %s\n", orNA(d.IntroducedDate))
		fmt.Fprintf(&b, "Latest Action: %s\n", orNA(d.LatestAction))
		fmt.Fprintf(&b, "Latest Action Date: %s\n", orNA(d.LatestActionDate))
		fmt.Fprintf(&b, "Document URL: %s\n", d.CanonicalURL)
		fmt.Fprintf(&b, "\nBILL TEXT:\n%s\n", d.Text)
	} else {
		fmt.Fprintf(&b, "NEWSPAPER METADATA:\n")
		fmt.Fprintf(&b, "Title: %s\n", orNA(d.Title))
		fmt.Fprintf(&b, "Issue Date: %s\n", orNA(d.IssueDate))
		fmt.Fprintf(&b, "Place of Publication: %s\n", orNA(d.Place))
		fmt.Fprintf(&b, "Edition Notes: %s\n", orNA(d.EditionNotes))
		fmt.Fprintf(&b, "Document URL: %s\n", d.CanonicalURL)
		fmt.Fprintf(&b, "\nPAGE TEXT:\n%s\n", d.Text)
	}
	return []byte(b.String())
}

// yearOf extracts the year portion of an ISO-ish date string.
// Returns "" for empty or placeholder values.
func yearOf(date string) string {
	if date == "" || date == "Unknown" {
		return ""
	}
	year, _, _ := strings.Cut(date, "-")
	return year
}

// clamp truncates s to at most n bytes.
func clamp(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// orNA substitutes "N/A" for empty header values.
func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// safeFragment makes a date usable inside a storage key.
func safeFragment(s string) string {
	return strings.ReplaceAll(s, "/", "-")
}

// safeTitleFragment makes a title usable inside a storage key,
// truncated to keep keys short.
func safeTitleFragment(s string) string {
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return clamp(s, 50)
}
