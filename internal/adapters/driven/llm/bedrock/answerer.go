// Package bedrock implements the answerer port with Bedrock's
// retrieve-and-generate API: retrieval from the knowledge base,
// generation under a persona prompt template, optional metadata
// filtering down to a single bill.
package bedrock

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/document"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"

	"github.com/custodia-labs/histora/internal/core/ports/driven"
)

const (
	// numberOfResults is the retrieval breadth. Historical OCR text is
	// noisy; a wide net with a low generation temperature works better
	// than a narrow precise one.
	numberOfResults = 50

	// temperature keeps generation close to the retrieved sources.
	temperature = 0.1

	// maxTokens bounds the generated answer.
	maxTokens = 2000

	// snippetLen truncates cited content in responses.
	snippetLen = 200
)

// promptTemplate frames the persona prompt around the retrieval
// placeholders the service substitutes at generation time.
const promptTemplate = `%s

Use the following context to answer the question. Provide a well-formatted response.

Context:
$search_results$

Question: $query$

Answer:`

// API is the subset of the agent runtime client the answerer uses.
type API interface {
	RetrieveAndGenerate(ctx context.Context, in *bedrockagentruntime.RetrieveAndGenerateInput, opts ...func(*bedrockagentruntime.Options)) (*bedrockagentruntime.RetrieveAndGenerateOutput, error)
}

// Ensure Answerer implements the interface.
var _ driven.Answerer = (*Answerer)(nil)

// Answerer generates grounded answers from one knowledge base.
type Answerer struct {
	client          API
	knowledgeBaseID string
	modelARN        string
}

// NewAnswerer creates an answerer over a knowledge base and model.
func NewAnswerer(client API, knowledgeBaseID, modelARN string) *Answerer {
	return &Answerer{client: client, knowledgeBaseID: knowledgeBaseID, modelARN: modelARN}
}

// Answer runs retrieve-and-generate and shapes the citations.
func (a *Answerer) Answer(ctx context.Context, question, systemPrompt string, filter *driven.QueryFilter) (*driven.Answer, error) {
	search := &types.KnowledgeBaseVectorSearchConfiguration{
		NumberOfResults:    aws.Int32(numberOfResults),
		OverrideSearchType: types.SearchTypeSemantic,
	}
	if f := buildFilter(filter); f != nil {
		search.Filter = f
	}

	out, err := a.client.RetrieveAndGenerate(ctx, &bedrockagentruntime.RetrieveAndGenerateInput{
		Input: &types.RetrieveAndGenerateInput{Text: aws.String(question)},
		RetrieveAndGenerateConfiguration: &types.RetrieveAndGenerateConfiguration{
			Type: types.RetrieveAndGenerateTypeKnowledgeBase,
			KnowledgeBaseConfiguration: &types.KnowledgeBaseRetrieveAndGenerateConfiguration{
				KnowledgeBaseId: aws.String(a.knowledgeBaseID),
				ModelArn:        aws.String(a.modelARN),
				GenerationConfiguration: &types.GenerationConfiguration{
					PromptTemplate: &types.PromptTemplate{
						TextPromptTemplate: aws.String(fmt.Sprintf(promptTemplate, systemPrompt)),
					},
					InferenceConfig: &types.InferenceConfig{
						TextInferenceConfig: &types.TextInferenceConfig{
							Temperature: aws.Float32(temperature),
							MaxTokens:   aws.Int32(maxTokens),
						},
					},
				},
				RetrievalConfiguration: &types.KnowledgeBaseRetrievalConfiguration{
					VectorSearchConfiguration: search,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("retrieve and generate: %w", err)
	}

	answer := &driven.Answer{Sources: []driven.Citation{}}
	if out.Output != nil {
		answer.Text = aws.ToString(out.Output.Text)
	}
	for _, citation := range out.Citations {
		for _, ref := range citation.RetrievedReferences {
			answer.Sources = append(answer.Sources, citationOf(ref))
		}
	}
	return answer, nil
}

// buildFilter turns a bill filter into the retrieval filter union:
// one equals clause per set field, combined with andAll when there is
// more than one.
func buildFilter(filter *driven.QueryFilter) types.RetrievalFilter {
	if filter == nil || filter.IsZero() {
		return nil
	}

	var clauses []types.RetrievalFilter
	add := func(key, value string) {
		if value == "" {
			return
		}
		clauses = append(clauses, &types.RetrievalFilterMemberEquals{
			Value: types.FilterAttribute{
				Key:   aws.String(key),
				Value: document.NewLazyDocument(value),
			},
		})
	}
	add("congress", filter.Congress)
	add("bill_type", filter.BillType)
	add("bill_number", filter.BillNumber)

	if len(clauses) == 1 {
		return clauses[0]
	}
	return &types.RetrievalFilterMemberAndAll{Value: clauses}
}

// citationOf shapes one retrieved reference.
func citationOf(ref types.RetrievedReference) driven.Citation {
	c := driven.Citation{}
	if ref.Content != nil {
		c.Content = snippet(aws.ToString(ref.Content.Text))
	}
	if ref.Location != nil && ref.Location.S3Location != nil {
		uri := aws.ToString(ref.Location.S3Location.Uri)
		c.DocumentID = uri
		c.URL = uri
	}
	if doc, ok := ref.Metadata["title"]; ok {
		var title string
		if err := doc.UnmarshalSmithyDocument(&title); err == nil {
			c.Title = title
		}
	}
	return c
}

// snippet truncates cited content, marking the cut.
func snippet(s string) string {
	if len(s) <= snippetLen {
		return s
	}
	return s[:snippetLen] + "..."
}
