package driven

import "context"

// QueryFilter narrows retrieval to a specific bill. Empty fields are
// not applied; a zero filter means an unfiltered search.
type QueryFilter struct {
	Congress   string
	BillType   string
	BillNumber string
}

// IsZero reports whether no filter fields are set.
func (f QueryFilter) IsZero() bool {
	return f.Congress == "" && f.BillType == "" && f.BillNumber == ""
}

// Citation is one source document backing an answer.
type Citation struct {
	DocumentID string  `json:"document_id"`
	Content    string  `json:"content"`
	Score      float64 `json:"score"`
	Title      string  `json:"title"`
	URL        string  `json:"url"`
}

// Answer is a generated answer with its cited sources.
type Answer struct {
	Text    string     `json:"answer"`
	Sources []Citation `json:"sources"`
}

// Answerer performs retrieval-augmented generation against the
// semantic index.
type Answerer interface {
	// Answer generates an answer to question using systemPrompt as the
	// persona framing, optionally filtered to a specific bill.
	Answer(ctx context.Context, question, systemPrompt string, filter *QueryFilter) (*Answer, error)
}

// PromptStore loads persona system prompts by name.
type PromptStore interface {
	// Load returns the prompt template for the given persona name.
	Load(name string) (string, error)
}
