// Package bedrock implements the semantic index port over a Bedrock
// knowledge base: data sources are the indexed collections, ingestion
// jobs are the sync jobs.
package bedrock

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagent"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagent/types"

	"github.com/custodia-labs/histora/internal/core/ports/driven"
)

// API is the subset of the Bedrock agent client the index uses.
type API interface {
	ListDataSources(ctx context.Context, in *bedrockagent.ListDataSourcesInput, opts ...func(*bedrockagent.Options)) (*bedrockagent.ListDataSourcesOutput, error)
	StartIngestionJob(ctx context.Context, in *bedrockagent.StartIngestionJobInput, opts ...func(*bedrockagent.Options)) (*bedrockagent.StartIngestionJobOutput, error)
	GetIngestionJob(ctx context.Context, in *bedrockagent.GetIngestionJobInput, opts ...func(*bedrockagent.Options)) (*bedrockagent.GetIngestionJobOutput, error)
}

// Ensure Index implements the interface.
var _ driven.SemanticIndex = (*Index)(nil)

// Index drives one knowledge base's data source ingestion jobs.
type Index struct {
	client          API
	knowledgeBaseID string
}

// NewIndex creates an index over a knowledge base.
func NewIndex(client API, knowledgeBaseID string) *Index {
	return &Index{client: client, knowledgeBaseID: knowledgeBaseID}
}

// Collections lists the knowledge base's data sources.
func (x *Index) Collections(ctx context.Context) ([]driven.IndexCollection, error) {
	var collections []driven.IndexCollection
	var token *string

	for {
		out, err := x.client.ListDataSources(ctx, &bedrockagent.ListDataSourcesInput{
			KnowledgeBaseId: aws.String(x.knowledgeBaseID),
			NextToken:       token,
		})
		if err != nil {
			return nil, fmt.Errorf("list data sources: %w", err)
		}
		for _, ds := range out.DataSourceSummaries {
			collections = append(collections, driven.IndexCollection{
				ID:   aws.ToString(ds.DataSourceId),
				Name: aws.ToString(ds.Name),
			})
		}
		if out.NextToken == nil {
			break
		}
		token = out.NextToken
	}

	return collections, nil
}

// StartSync starts an ingestion job for one data source.
func (x *Index) StartSync(ctx context.Context, collectionID string) (string, error) {
	out, err := x.client.StartIngestionJob(ctx, &bedrockagent.StartIngestionJobInput{
		KnowledgeBaseId: aws.String(x.knowledgeBaseID),
		DataSourceId:    aws.String(collectionID),
	})
	if err != nil {
		return "", fmt.Errorf("start ingestion job: %w", err)
	}
	return aws.ToString(out.IngestionJob.IngestionJobId), nil
}

// SyncStatus reports a job's state.
func (x *Index) SyncStatus(ctx context.Context, collectionID, jobID string) (driven.IndexJobStatus, error) {
	out, err := x.client.GetIngestionJob(ctx, &bedrockagent.GetIngestionJobInput{
		KnowledgeBaseId: aws.String(x.knowledgeBaseID),
		DataSourceId:    aws.String(collectionID),
		IngestionJobId:  aws.String(jobID),
	})
	if err != nil {
		return "", fmt.Errorf("get ingestion job: %w", err)
	}

	switch out.IngestionJob.Status {
	case types.IngestionJobStatusComplete:
		return driven.IndexJobComplete, nil
	case types.IngestionJobStatusFailed:
		return driven.IndexJobFailed, nil
	default:
		return driven.IndexJobInProgress, nil
	}
}
