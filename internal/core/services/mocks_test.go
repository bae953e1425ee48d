package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/histora/internal/core/domain"
	"github.com/custodia-labs/histora/internal/core/ports/driven"
)

// fakeClock advances instantly on Sleep.
type fakeClock struct {
	now    time.Time
	sleeps int
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	c.now = c.now.Add(d)
	c.sleeps++
	return nil
}

// fakeBillSource serves scripted listings and texts.
type fakeBillSource struct {
	bills    map[string][]driven.BillSummary // key "congress/type"
	texts    map[string]string               // key bill number
	listErr  error
	textErr  error
	resolves int
}

func (s *fakeBillSource) ListBills(_ context.Context, congress int, billType string) ([]driven.BillSummary, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.bills[fmt.Sprintf("%d/%s", congress, billType)], nil
}

func (s *fakeBillSource) ResolveText(_ context.Context, _ int, _, number string) (string, string, error) {
	s.resolves++
	if s.textErr != nil {
		return "", "", s.textErr
	}
	text, ok := s.texts[number]
	if !ok {
		return "", "", nil
	}
	return text, "https://example.test/" + number + ".txt", nil
}

// fakeCorpus serves scripted documents by row index.
type fakeCorpus struct {
	total   int
	docs    map[int]*domain.Document
	rowErrs map[int]error
	openErr error
}

func (c *fakeCorpus) Open(context.Context) (int, error) {
	if c.openErr != nil {
		return 0, c.openErr
	}
	return c.total, nil
}

func (c *fakeCorpus) Document(_ context.Context, index int) (*domain.Document, error) {
	if err := c.rowErrs[index]; err != nil {
		return nil, err
	}
	doc, ok := c.docs[index]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

// fakeIndex scripts collection sync behaviour.
type fakeIndex struct {
	collections []driven.IndexCollection
	listErr     error
	startErr    map[string]error
	statuses    map[string][]driven.IndexJobStatus // drained per collection
	started     []string
	polled      map[string]int
}

func (f *fakeIndex) Collections(context.Context) ([]driven.IndexCollection, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.collections, nil
}

func (f *fakeIndex) StartSync(_ context.Context, collectionID string) (string, error) {
	if err := f.startErr[collectionID]; err != nil {
		return "", err
	}
	f.started = append(f.started, collectionID)
	return "job-" + collectionID, nil
}

func (f *fakeIndex) SyncStatus(_ context.Context, collectionID, _ string) (driven.IndexJobStatus, error) {
	if f.polled == nil {
		f.polled = make(map[string]int)
	}
	f.polled[collectionID]++
	statuses := f.statuses[collectionID]
	if len(statuses) == 0 {
		return driven.IndexJobComplete, nil
	}
	status := statuses[0]
	if len(statuses) > 1 {
		f.statuses[collectionID] = statuses[1:]
	}
	return status, nil
}

// fakeAnswerer records its inputs and returns a scripted answer.
type fakeAnswerer struct {
	answer *driven.Answer
	err    error

	gotQuestion string
	gotPrompt   string
	gotFilter   *driven.QueryFilter
}

func (a *fakeAnswerer) Answer(_ context.Context, question, systemPrompt string, filter *driven.QueryFilter) (*driven.Answer, error) {
	a.gotQuestion = question
	a.gotPrompt = systemPrompt
	a.gotFilter = filter
	return a.answer, a.err
}

// fakePromptStore serves prompts from a map.
type fakePromptStore struct {
	prompts map[string]string
}

func (p *fakePromptStore) Load(name string) (string, error) {
	prompt, ok := p.prompts[name]
	if !ok {
		return "", fmt.Errorf("persona %q: %w", name, domain.ErrNotFound)
	}
	return prompt, nil
}

func newspaperDoc(row int) *domain.Document {
	return &domain.Document{
		Kind:         domain.SourceNewspaper,
		Batch:        row/25000 + 1,
		Row:          row,
		Text:         fmt.Sprintf("page text %d", row),
		CanonicalURL: fmt.Sprintf("https://example.test/%d.pdf", row),
		Title:        "The Daily Ledger",
		IssueDate:    "1850-03-02",
		Place:        "Boston, Mass.",
	}
}
