package driving

import (
	"context"

	"github.com/custodia-labs/histora/internal/core/ports/driven"
)

// QueryService answers natural-language questions about the collected
// documents with persona-tailored prompting.
type QueryService interface {
	// Ask answers a question for the given persona. Unknown personas
	// fall back to the general persona.
	Ask(ctx context.Context, question, persona string) (*driven.Answer, error)
}
