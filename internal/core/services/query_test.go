package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/histora/internal/core/domain"
	"github.com/custodia-labs/histora/internal/core/ports/driven"
)

func testPrompts() *fakePromptStore {
	return &fakePromptStore{prompts: map[string]string{
		"general":               "general prompt",
		"law_student":           "professor prompt",
		"congressional_staffer": "staffer prompt",
	}}
}

func citedAnswer(text string) *driven.Answer {
	return &driven.Answer{
		Text: text,
		Sources: []driven.Citation{
			{DocumentID: "s3://bucket/bills/congress_6/hr_1.txt", Content: "excerpt", Score: 0.9},
		},
	}
}

func TestAsk_UsesPersonaPrompt(t *testing.T) {
	answerer := &fakeAnswerer{answer: citedAnswer("the act establishes...")}
	svc := NewQueryService(answerer, testPrompts())

	answer, err := svc.Ask(context.Background(), "what did the first congress do?", "law_student")

	require.NoError(t, err)
	assert.Equal(t, "the act establishes...", answer.Text)
	assert.Equal(t, "professor prompt", answerer.gotPrompt)
	assert.Nil(t, answerer.gotFilter, "no bill reference, no filter")
}

func TestAsk_UnknownPersonaFallsBackToGeneral(t *testing.T) {
	answerer := &fakeAnswerer{answer: citedAnswer("answer")}
	svc := NewQueryService(answerer, testPrompts())

	_, err := svc.Ask(context.Background(), "a question", "time_traveler")

	require.NoError(t, err)
	assert.Equal(t, "general prompt", answerer.gotPrompt)
}

func TestAsk_EmptyQuestionRejected(t *testing.T) {
	svc := NewQueryService(&fakeAnswerer{}, testPrompts())

	_, err := svc.Ask(context.Background(), "   ", "general")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAsk_BillReferenceNarrowsRetrieval(t *testing.T) {
	answerer := &fakeAnswerer{answer: citedAnswer("answer")}
	svc := NewQueryService(answerer, testPrompts())

	_, err := svc.Ask(context.Background(), "What is bill HR 1 in congress 6?", "general")

	require.NoError(t, err)
	require.NotNil(t, answerer.gotFilter)
	assert.Equal(t, "HR", answerer.gotFilter.BillType)
	assert.Equal(t, "1", answerer.gotFilter.BillNumber)
	assert.Equal(t, "6", answerer.gotFilter.Congress)
}

func TestAsk_NoSourcesSuppressesAnswer(t *testing.T) {
	answerer := &fakeAnswerer{answer: &driven.Answer{Text: "confidently invented history"}}
	svc := NewQueryService(answerer, testPrompts())

	answer, err := svc.Ask(context.Background(), "who won?", "general")

	require.NoError(t, err)
	assert.NotContains(t, answer.Text, "invented")
	assert.Contains(t, answer.Text, "don't have access")
	assert.Empty(t, answer.Sources)
}

func TestAsk_AnswererErrorPropagates(t *testing.T) {
	answerer := &fakeAnswerer{err: errors.New("model unavailable")}
	svc := NewQueryService(answerer, testPrompts())

	_, err := svc.Ask(context.Background(), "a question", "general")

	assert.Error(t, err)
}

func TestExtractBillFilter(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     driven.QueryFilter
	}{
		{
			name:     "explicit bill phrasing",
			question: "what is bill HR 1 in congress 6?",
			want:     driven.QueryFilter{BillType: "HR", BillNumber: "1", Congress: "6"},
		},
		{
			name:     "compact bill phrasing",
			question: "tell me about bill hr1 congress 6",
			want:     driven.QueryFilter{BillType: "HR", BillNumber: "1", Congress: "6"},
		},
		{
			name:     "loose phrasing without the word bill",
			question: "show me S 2 from congress 16",
			want:     driven.QueryFilter{BillType: "S", BillNumber: "2", Congress: "16"},
		},
		{
			name:     "congress-first word order",
			question: "in congress 6, what was bill hjres 12 about?",
			want:     driven.QueryFilter{BillType: "HJRES", BillNumber: "12", Congress: "6"},
		},
		{
			name:     "no bill reference",
			question: "what did newspapers say about the tariff debates?",
			want:     driven.QueryFilter{},
		},
		{
			name:     "congress alone is not a bill reference",
			question: "what happened in congress?",
			want:     driven.QueryFilter{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractBillFilter(tt.question))
		})
	}
}
