package bedrock

import (
	"context"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/histora/internal/core/ports/driven"
)

type fakeAPI struct {
	in  *bedrockagentruntime.RetrieveAndGenerateInput
	out *bedrockagentruntime.RetrieveAndGenerateOutput
	err error
}

func (f *fakeAPI) RetrieveAndGenerate(_ context.Context, in *bedrockagentruntime.RetrieveAndGenerateInput, _ ...func(*bedrockagentruntime.Options)) (*bedrockagentruntime.RetrieveAndGenerateOutput, error) {
	f.in = in
	return f.out, f.err
}

func answerOutput(text string, uris ...string) *bedrockagentruntime.RetrieveAndGenerateOutput {
	out := &bedrockagentruntime.RetrieveAndGenerateOutput{
		Output: &types.RetrieveAndGenerateOutput{Text: aws.String(text)},
	}
	for _, uri := range uris {
		out.Citations = append(out.Citations, types.Citation{
			RetrievedReferences: []types.RetrievedReference{
				{
					Content:  &types.RetrievalResultContent{Text: aws.String("excerpt from " + uri)},
					Location: &types.RetrievalResultLocation{S3Location: &types.RetrievalResultS3Location{Uri: aws.String(uri)}},
				},
			},
		})
	}
	return out
}

func kbConfig(t *testing.T, in *bedrockagentruntime.RetrieveAndGenerateInput) *types.KnowledgeBaseRetrieveAndGenerateConfiguration {
	t.Helper()
	require.NotNil(t, in.RetrieveAndGenerateConfiguration)
	cfg := in.RetrieveAndGenerateConfiguration.KnowledgeBaseConfiguration
	require.NotNil(t, cfg)
	return cfg
}

func TestAnswer_ShapesTextAndCitations(t *testing.T) {
	api := &fakeAPI{out: answerOutput("The first act established oaths.",
		"s3://docs/bills/congress_1/hr_1.txt")}
	a := NewAnswerer(api, "kb-1", "arn:aws:bedrock:us-east-1::foundation-model/test")

	answer, err := a.Answer(context.Background(), "what was hr 1?", "persona prompt", nil)

	require.NoError(t, err)
	assert.Equal(t, "The first act established oaths.", answer.Text)
	require.Len(t, answer.Sources, 1)
	assert.Equal(t, "s3://docs/bills/congress_1/hr_1.txt", answer.Sources[0].DocumentID)
	assert.Equal(t, "s3://docs/bills/congress_1/hr_1.txt", answer.Sources[0].URL)
	assert.Contains(t, answer.Sources[0].Content, "excerpt")
}

func TestAnswer_EmbedsPersonaPromptInTemplate(t *testing.T) {
	api := &fakeAPI{out: answerOutput("answer")}
	a := NewAnswerer(api, "kb-1", "model-arn")

	_, err := a.Answer(context.Background(), "q", "You are a constitutional law professor.", nil)

	require.NoError(t, err)
	cfg := kbConfig(t, api.in)
	tpl := aws.ToString(cfg.GenerationConfiguration.PromptTemplate.TextPromptTemplate)
	assert.True(t, strings.HasPrefix(tpl, "You are a constitutional law professor."))
	assert.Contains(t, tpl, "$search_results$")
	assert.Contains(t, tpl, "$query$")
}

func TestAnswer_NoFilterForGeneralQuestions(t *testing.T) {
	api := &fakeAPI{out: answerOutput("answer")}
	a := NewAnswerer(api, "kb-1", "model-arn")

	_, err := a.Answer(context.Background(), "q", "p", nil)

	require.NoError(t, err)
	cfg := kbConfig(t, api.in)
	assert.Nil(t, cfg.RetrievalConfiguration.VectorSearchConfiguration.Filter)
}

func TestAnswer_BillFilterBecomesAndAllOfEquals(t *testing.T) {
	api := &fakeAPI{out: answerOutput("answer")}
	a := NewAnswerer(api, "kb-1", "model-arn")

	_, err := a.Answer(context.Background(), "q", "p", &driven.QueryFilter{
		Congress: "6", BillType: "HR", BillNumber: "1",
	})

	require.NoError(t, err)
	cfg := kbConfig(t, api.in)
	filter := cfg.RetrievalConfiguration.VectorSearchConfiguration.Filter
	andAll, ok := filter.(*types.RetrievalFilterMemberAndAll)
	require.True(t, ok, "multi-field filter must combine with andAll")
	assert.Len(t, andAll.Value, 3)
}

func TestAnswer_SingleFieldFilterIsBareEquals(t *testing.T) {
	api := &fakeAPI{out: answerOutput("answer")}
	a := NewAnswerer(api, "kb-1", "model-arn")

	_, err := a.Answer(context.Background(), "q", "p", &driven.QueryFilter{Congress: "6"})

	require.NoError(t, err)
	cfg := kbConfig(t, api.in)
	filter := cfg.RetrievalConfiguration.VectorSearchConfiguration.Filter
	equals, ok := filter.(*types.RetrievalFilterMemberEquals)
	require.True(t, ok)
	assert.Equal(t, "congress", aws.ToString(equals.Value.Key))
}

func TestAnswer_RetrievalParameters(t *testing.T) {
	api := &fakeAPI{out: answerOutput("answer")}
	a := NewAnswerer(api, "kb-1", "model-arn")

	_, err := a.Answer(context.Background(), "q", "p", nil)

	require.NoError(t, err)
	cfg := kbConfig(t, api.in)
	search := cfg.RetrievalConfiguration.VectorSearchConfiguration
	assert.Equal(t, int32(50), aws.ToInt32(search.NumberOfResults))
	assert.Equal(t, types.SearchTypeSemantic, search.OverrideSearchType)

	infer := cfg.GenerationConfiguration.InferenceConfig.TextInferenceConfig
	assert.InDelta(t, 0.1, float64(aws.ToFloat32(infer.Temperature)), 0.001)
	assert.Equal(t, int32(2000), aws.ToInt32(infer.MaxTokens))
}
