// Package textract implements the OCR backend over Amazon Textract.
// Small documents go through the synchronous detection API; larger or
// multi-page documents run as asynchronous jobs reading staged objects
// out of the S3 bucket.
package textract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"github.com/custodia-labs/histora/internal/core/domain"
	"github.com/custodia-labs/histora/internal/core/ports/driven"
)

// API is the subset of the Textract client the backend uses.
type API interface {
	DetectDocumentText(ctx context.Context, in *textract.DetectDocumentTextInput, opts ...func(*textract.Options)) (*textract.DetectDocumentTextOutput, error)
	StartDocumentTextDetection(ctx context.Context, in *textract.StartDocumentTextDetectionInput, opts ...func(*textract.Options)) (*textract.StartDocumentTextDetectionOutput, error)
	GetDocumentTextDetection(ctx context.Context, in *textract.GetDocumentTextDetectionInput, opts ...func(*textract.Options)) (*textract.GetDocumentTextDetectionOutput, error)
}

// Ensure Backend implements the interface.
var _ driven.OCRBackend = (*Backend)(nil)

// Backend runs text detection against Textract. Async jobs read their
// input from the given bucket, which must be the same bucket the
// staging keys are written to.
type Backend struct {
	client API
	bucket string
}

// NewBackend creates a Textract backend.
func NewBackend(client API, bucket string) *Backend {
	return &Backend{client: client, bucket: bucket}
}

// DetectSync runs single-call detection over inline bytes and returns
// the detected lines in reported order.
func (b *Backend) DetectSync(ctx context.Context, data []byte) ([]string, error) {
	out, err := b.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{Bytes: data},
	})
	if err != nil {
		return nil, classify(err)
	}
	return linesOf(out.Blocks), nil
}

// StartDetection starts an asynchronous detection job over a staged
// object and returns the job ID.
func (b *Backend) StartDetection(ctx context.Context, storageKey string) (string, error) {
	out, err := b.client.StartDocumentTextDetection(ctx, &textract.StartDocumentTextDetectionInput{
		DocumentLocation: &types.DocumentLocation{
			S3Object: &types.S3Object{
				Bucket: aws.String(b.bucket),
				Name:   aws.String(storageKey),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("start detection: %w", classify(err))
	}
	return aws.ToString(out.JobId), nil
}

// DetectionPage fetches one page of an asynchronous job's results.
func (b *Backend) DetectionPage(ctx context.Context, jobID, nextToken string) (*driven.DetectionPage, error) {
	in := &textract.GetDocumentTextDetectionInput{JobId: aws.String(jobID)}
	if nextToken != "" {
		in.NextToken = aws.String(nextToken)
	}
	out, err := b.client.GetDocumentTextDetection(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("get detection: %w", classify(err))
	}

	page := &driven.DetectionPage{
		Status:        statusOf(out.JobStatus),
		StatusMessage: aws.ToString(out.StatusMessage),
		Lines:         linesOf(out.Blocks),
		NextToken:     aws.ToString(out.NextToken),
	}
	return page, nil
}

// linesOf collects the LINE block texts in reported order.
func linesOf(blocks []types.Block) []string {
	var lines []string
	for _, block := range blocks {
		if block.BlockType == types.BlockTypeLine && block.Text != nil {
			lines = append(lines, *block.Text)
		}
	}
	return lines
}

// statusOf maps the job status. PARTIAL_SUCCESS still carries usable
// results, so it counts as succeeded.
func statusOf(status types.JobStatus) driven.JobStatus {
	switch status {
	case types.JobStatusSucceeded, types.JobStatusPartialSuccess:
		return driven.JobSucceeded
	case types.JobStatusFailed:
		return driven.JobFailed
	default:
		return driven.JobInProgress
	}
}

// classify maps service errors onto the domain sentinels the strategy
// selector branches on. Typed errors are matched first; the substring
// checks cover older error shapes that surface only as messages.
func classify(err error) error {
	var unsupported *types.UnsupportedDocumentException
	if errors.As(err, &unsupported) {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedDocument, aws.ToString(unsupported.Message))
	}
	var badDoc *types.BadDocumentException
	if errors.As(err, &badDoc) {
		return fmt.Errorf("%w: %s", domain.ErrCorruptDocument, aws.ToString(badDoc.Message))
	}
	var invalid *types.InvalidParameterException
	if errors.As(err, &invalid) {
		return fmt.Errorf("%w: %s", domain.ErrCorruptDocument, aws.ToString(invalid.Message))
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UnsupportedDocument"):
		return fmt.Errorf("%w: %v", domain.ErrUnsupportedDocument, err)
	case strings.Contains(msg, "BadDocument"), strings.Contains(msg, "InvalidParameter"):
		return fmt.Errorf("%w: %v", domain.ErrCorruptDocument, err)
	}
	return err
}
