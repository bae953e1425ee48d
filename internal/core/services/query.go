package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/histora/internal/core/domain"
	"github.com/custodia-labs/histora/internal/core/ports/driven"
	"github.com/custodia-labs/histora/internal/core/ports/driving"
	"github.com/custodia-labs/histora/internal/logger"
)

// FallbackPersona is used when an unknown persona is requested.
const FallbackPersona = "general"

// noSourcesAnswer replaces a generated answer that cites nothing.
// Answering from the model alone would be hallucination.
const noSourcesAnswer = "I don't have access to the historical documents yet. " +
	"The knowledge base may still be syncing or needs to be populated with data. " +
	"Please try again later or contact support."

// Bill reference patterns, tried in order against the lowercased
// question. Later patterns apply only when earlier ones fail; the
// second is a looser variant of the first, the third handles the
// congress-first word order.
var (
	billPatternExplicit = regexp.MustCompile(`bill\s+([a-z]+)\s*(\d+).*congress\s+(\d+)`)
	billPatternLoose    = regexp.MustCompile(`([a-z]+)\s*(\d+).*congress\s+(\d+)`)
	billPatternReversed = regexp.MustCompile(`congress\s+(\d+).*bill\s+([a-z]+)\s*(\d+)`)
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// QueryService answers questions about the collected documents with
// persona-tailored prompting and automatic bill-reference filtering.
type QueryService struct {
	answerer driven.Answerer
	prompts  driven.PromptStore
}

// NewQueryService creates a query service.
func NewQueryService(answerer driven.Answerer, prompts driven.PromptStore) *QueryService {
	return &QueryService{answerer: answerer, prompts: prompts}
}

// Ask answers a question for the given persona. When the question
// names a specific bill, retrieval is narrowed to that bill's
// documents via metadata filtering.
func (s *QueryService) Ask(ctx context.Context, question, persona string) (*driven.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("question is empty: %w", domain.ErrInvalidInput)
	}

	prompt, err := s.prompts.Load(persona)
	if err != nil {
		logger.Debug("persona %q unknown, falling back to %s", persona, FallbackPersona)
		prompt, err = s.prompts.Load(FallbackPersona)
		if err != nil {
			return nil, fmt.Errorf("load persona prompt: %w", err)
		}
	}

	var filter *driven.QueryFilter
	if f := ExtractBillFilter(question); !f.IsZero() {
		logger.Debug("bill reference detected: congress=%s type=%s number=%s",
			f.Congress, f.BillType, f.BillNumber)
		filter = &f
	}

	answer, err := s.answerer.Answer(ctx, question, prompt, filter)
	if err != nil {
		return nil, fmt.Errorf("answer: %w", err)
	}

	if len(answer.Sources) == 0 {
		logger.Warn("no sources cited for %q, suppressing generated answer", question)
		return &driven.Answer{Text: noSourcesAnswer, Sources: []driven.Citation{}}, nil
	}

	return answer, nil
}

// ExtractBillFilter pulls a bill reference out of a question, e.g.
// "what is bill HR 1 in congress 6?". A question with no recognizable
// reference yields a zero filter.
func ExtractBillFilter(question string) driven.QueryFilter {
	q := strings.ToLower(question)

	if m := billPatternExplicit.FindStringSubmatch(q); m != nil {
		return driven.QueryFilter{
			BillType:   strings.ToUpper(m[1]),
			BillNumber: m[2],
			Congress:   m[3],
		}
	}
	if m := billPatternLoose.FindStringSubmatch(q); m != nil {
		return driven.QueryFilter{
			BillType:   strings.ToUpper(m[1]),
			BillNumber: m[2],
			Congress:   m[3],
		}
	}
	if m := billPatternReversed.FindStringSubmatch(q); m != nil {
		return driven.QueryFilter{
			Congress:   m[1],
			BillType:   strings.ToUpper(m[2]),
			BillNumber: m[3],
		}
	}
	return driven.QueryFilter{}
}
