package congress

// listResponse is the bill listing payload.
type listResponse struct {
	Bills      []billItem `json:"bills"`
	Pagination pagination `json:"pagination"`
}

type pagination struct {
	Count int    `json:"count"`
	Next  string `json:"next"`
}

type billItem struct {
	Number         string       `json:"number"`
	Title          string       `json:"title"`
	IntroducedDate string       `json:"introducedDate"`
	LatestAction   latestAction `json:"latestAction"`
}

type latestAction struct {
	ActionDate string `json:"actionDate"`
	Text       string `json:"text"`
}

// textResponse is the text versions payload for a single bill.
type textResponse struct {
	TextVersions []TextVersion `json:"textVersions"`
}

// TextVersion is one published rendition of a bill's text. Versions
// are returned newest first.
type TextVersion struct {
	Date    string       `json:"date"`
	Type    string       `json:"type"`
	Formats []TextFormat `json:"formats"`
}

// TextFormat is one downloadable representation of a text version.
type TextFormat struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Format type discriminators used by the API.
const (
	FormatPlainText = "Plain Text"
	FormatPDF       = "PDF"
)
