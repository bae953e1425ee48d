package bedrock

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagent"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagent/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/histora/internal/core/ports/driven"
)

type fakeAPI struct {
	pages   []*bedrockagent.ListDataSourcesOutput
	pageIdx int

	startIn  *bedrockagent.StartIngestionJobInput
	startOut *bedrockagent.StartIngestionJobOutput

	getIn  *bedrockagent.GetIngestionJobInput
	getOut *bedrockagent.GetIngestionJobOutput
}

func (f *fakeAPI) ListDataSources(_ context.Context, _ *bedrockagent.ListDataSourcesInput, _ ...func(*bedrockagent.Options)) (*bedrockagent.ListDataSourcesOutput, error) {
	out := f.pages[f.pageIdx]
	f.pageIdx++
	return out, nil
}

func (f *fakeAPI) StartIngestionJob(_ context.Context, in *bedrockagent.StartIngestionJobInput, _ ...func(*bedrockagent.Options)) (*bedrockagent.StartIngestionJobOutput, error) {
	f.startIn = in
	return f.startOut, nil
}

func (f *fakeAPI) GetIngestionJob(_ context.Context, in *bedrockagent.GetIngestionJobInput, _ ...func(*bedrockagent.Options)) (*bedrockagent.GetIngestionJobOutput, error) {
	f.getIn = in
	return f.getOut, nil
}

func TestCollections_DrainsPagination(t *testing.T) {
	api := &fakeAPI{pages: []*bedrockagent.ListDataSourcesOutput{
		{
			DataSourceSummaries: []types.DataSourceSummary{
				{DataSourceId: aws.String("ds-1"), Name: aws.String("bills")},
			},
			NextToken: aws.String("t2"),
		},
		{
			DataSourceSummaries: []types.DataSourceSummary{
				{DataSourceId: aws.String("ds-2"), Name: aws.String("newspapers-batch-1")},
			},
		},
	}}
	index := NewIndex(api, "kb-1")

	collections, err := index.Collections(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []driven.IndexCollection{
		{ID: "ds-1", Name: "bills"},
		{ID: "ds-2", Name: "newspapers-batch-1"},
	}, collections)
}

func TestStartSync(t *testing.T) {
	api := &fakeAPI{startOut: &bedrockagent.StartIngestionJobOutput{
		IngestionJob: &types.IngestionJob{IngestionJobId: aws.String("job-1")},
	}}
	index := NewIndex(api, "kb-1")

	jobID, err := index.StartSync(context.Background(), "ds-1")

	require.NoError(t, err)
	assert.Equal(t, "job-1", jobID)
	assert.Equal(t, "kb-1", aws.ToString(api.startIn.KnowledgeBaseId))
	assert.Equal(t, "ds-1", aws.ToString(api.startIn.DataSourceId))
}

func TestSyncStatus_Mapping(t *testing.T) {
	tests := []struct {
		upstream types.IngestionJobStatus
		want     driven.IndexJobStatus
	}{
		{types.IngestionJobStatusComplete, driven.IndexJobComplete},
		{types.IngestionJobStatusFailed, driven.IndexJobFailed},
		{types.IngestionJobStatusInProgress, driven.IndexJobInProgress},
		{types.IngestionJobStatusStarting, driven.IndexJobInProgress},
	}

	for _, tt := range tests {
		api := &fakeAPI{getOut: &bedrockagent.GetIngestionJobOutput{
			IngestionJob: &types.IngestionJob{Status: tt.upstream},
		}}
		index := NewIndex(api, "kb-1")

		status, err := index.SyncStatus(context.Background(), "ds-1", "job-1")

		require.NoError(t, err)
		assert.Equal(t, tt.want, status, "upstream %s", tt.upstream)
	}
}
