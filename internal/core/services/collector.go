package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/histora/internal/core/domain"
	"github.com/custodia-labs/histora/internal/core/ports/driven"
	"github.com/custodia-labs/histora/internal/core/ports/driving"
	"github.com/custodia-labs/histora/internal/logger"
	"github.com/custodia-labs/histora/internal/poll"
)

// SummaryKey is where the run report is persisted.
const SummaryKey = "collection_summary.json"

// corpusDelayEvery throttles corpus writes: one pause per this many
// rows keeps the store comfortable without slowing the bulk phase.
const corpusDelayEvery = 100

// CollectorConfig holds the collection run parameters.
type CollectorConfig struct {
	// Congresses are the congress numbers to collect, in order.
	Congresses []int

	// BillTypes are the lowercase bill category codes per congress,
	// e.g. "hr", "s", "hjres".
	BillTypes []string

	// DatasetName identifies the bulk corpus, recorded in the report.
	DatasetName string

	// MaxNewspaperRows caps the corpus phase; 0 processes everything.
	MaxNewspaperRows int

	// ItemDelay is the pause after each legislative item, and after
	// every hundredth corpus row.
	ItemDelay time.Duration
}

// Ensure Collector implements the interface.
var _ driving.Collector = (*Collector)(nil)

// Collector runs the two-phase collection pipeline and the post-run
// reindex trigger.
type Collector struct {
	bills     driven.LegislativeSource
	corpus    driven.CorpusSource
	persister *Persister
	store     driven.ObjectStore
	reindexer *Reindexer
	clock     poll.Clock
	cfg       CollectorConfig
}

// NewCollector creates a collector. A nil reindexer disables the
// post-run trigger; a nil clock uses real time.
func NewCollector(
	bills driven.LegislativeSource,
	corpus driven.CorpusSource,
	persister *Persister,
	store driven.ObjectStore,
	reindexer *Reindexer,
	clock poll.Clock,
	cfg CollectorConfig,
) *Collector {
	if clock == nil {
		clock = poll.SystemClock{}
	}
	return &Collector{
		bills:     bills,
		corpus:    corpus,
		persister: persister,
		store:     store,
		reindexer: reindexer,
		clock:     clock,
		cfg:       cfg,
	}
}

// Run executes the full pipeline. Per-item failures are counted and
// recorded, never fatal; phases always advance. The only fatal errors
// are context cancellation and the corpus failing to open at all.
func (c *Collector) Run(ctx context.Context) (*domain.RunReport, error) {
	start := c.clock.Now()
	report := &domain.RunReport{
		RunID:     uuid.NewString(),
		Timestamp: start.UTC().Format(time.RFC3339),
		Config:    c.configSnapshot(),
	}

	logger.Section("Collection run %s", report.RunID)

	if err := c.collectBills(ctx, report); err != nil {
		return report, err
	}
	if err := c.collectNewspapers(ctx, report); err != nil {
		return report, err
	}

	report.ElapsedSeconds = c.clock.Now().Sub(start).Seconds()
	report.Totalise()

	c.writeSummary(ctx, report)

	if c.reindexer != nil {
		if err := c.reindexer.Reindex(ctx); err != nil {
			if ctx.Err() != nil {
				return report, err
			}
			logger.Error("reindex trigger failed: %v", err)
			report.Errors = append(report.Errors, fmt.Sprintf("reindex: %v", err))
		}
	}

	return report, nil
}

// collectBills runs the legislative phase: every (congress, billType)
// pair, every listed bill.
func (c *Collector) collectBills(ctx context.Context, report *domain.RunReport) error {
	for _, congress := range c.cfg.Congresses {
		for _, billType := range c.cfg.BillTypes {
			logger.Section("Congress %d: %s bills", congress, strings.ToUpper(billType))

			summaries, err := c.bills.ListBills(ctx, congress, billType)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Error("list congress %d %s: %v", congress, billType, err)
				report.Errors = append(report.Errors,
					fmt.Sprintf("list congress %d %s: %v", congress, billType, err))
				continue
			}
			logger.Info("found %d %s bills in congress %d", len(summaries), strings.ToUpper(billType), congress)

			for i, summary := range summaries {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Info("[%d/%d] %s %s", i+1, len(summaries), strings.ToUpper(billType), summary.Number)

				c.processBill(ctx, report, congress, billType, summary)

				if err := c.clock.Sleep(ctx, c.cfg.ItemDelay); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// processBill handles one bill end to end. Failures are recorded on
// the report; nothing propagates.
func (c *Collector) processBill(ctx context.Context, report *domain.RunReport, congress int, billType string, summary driven.BillSummary) {
	report.Bills.Total++

	doc := &domain.Document{
		Kind:             domain.SourceBill,
		Congress:         congress,
		BillType:         billType,
		BillNumber:       summary.Number,
		Title:            summary.Title,
		IntroducedDate:   summary.IntroducedDate,
		LatestAction:     summary.LatestAction,
		LatestActionDate: summary.LatestActionDate,
	}

	// Existence check before resolving text: a bill persisted by a
	// prior run costs one lookup, not a fetch and possibly an OCR job.
	exists, err := c.persister.Exists(ctx, doc)
	if err != nil {
		c.recordBillFailure(report, doc, fmt.Errorf("existence check: %w", err))
		return
	}
	if exists {
		logger.Info("  already collected, skipping")
		report.Bills.Record(domain.Skipped)
		return
	}

	text, canonicalURL, err := c.bills.ResolveText(ctx, congress, billType, summary.Number)
	if err != nil {
		c.recordBillFailure(report, doc, err)
		return
	}
	if text == "" {
		c.recordBillFailure(report, doc, domain.ErrNoText)
		return
	}
	doc.Text = text
	doc.CanonicalURL = canonicalURL

	outcome, err := c.persister.Persist(ctx, doc)
	report.Bills.Record(outcome)
	if err != nil {
		logger.Error("  %s: %v", doc.BillID(), err)
		report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", doc.BillID(), err))
	}
}

func (c *Collector) recordBillFailure(report *domain.RunReport, doc *domain.Document, err error) {
	logger.Warn("  %s: %v", doc.BillID(), err)
	report.Bills.Record(domain.Failed)
	report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", doc.BillID(), err))
}

// collectNewspapers runs the corpus phase. The corpus failing to open
// is the one fatal condition: without a row count there is no phase
// to run and no meaningful partial progress to record.
func (c *Collector) collectNewspapers(ctx context.Context, report *domain.RunReport) error {
	logger.Section("Newspaper corpus")

	total, err := c.corpus.Open(ctx)
	if err != nil {
		return fmt.Errorf("open corpus: %w", err)
	}
	logger.Info("processing %d newspaper pages", total)

	for i := 0; i < total; i++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		report.Newspapers.Total++

		doc, err := c.corpus.Document(ctx, i)
		if err != nil {
			logger.Warn("newspaper %d: %v", i, err)
			report.Newspapers.Record(domain.Failed)
			report.Errors = append(report.Errors, fmt.Sprintf("newspaper %d: %v", i, err))
		} else {
			outcome, err := c.persister.Persist(ctx, doc)
			report.Newspapers.Record(outcome)
			if err != nil {
				logger.Error("newspaper %d: %v", i, err)
				report.Errors = append(report.Errors, fmt.Sprintf("newspaper %d: %v", i, err))
			}
		}

		if i%corpusDelayEvery == 0 {
			if err := c.clock.Sleep(ctx, c.cfg.ItemDelay); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeSummary persists the run report. A failed summary write is
// recorded but does not fail the run; the collected documents are
// already durable.
func (c *Collector) writeSummary(ctx context.Context, report *domain.RunReport) {
	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		logger.Error("marshal summary: %v", err)
		report.Errors = append(report.Errors, fmt.Sprintf("summary: %v", err))
		return
	}
	if err := c.store.Put(ctx, SummaryKey, body, "application/json", nil); err != nil {
		logger.Error("write summary: %v", err)
		report.Errors = append(report.Errors, fmt.Sprintf("summary: %v", err))
		return
	}
	logger.Info("summary written to %s", SummaryKey)
}

// configSnapshot records the run parameters in the report.
func (c *Collector) configSnapshot() map[string]string {
	congresses := make([]string, len(c.cfg.Congresses))
	for i, n := range c.cfg.Congresses {
		congresses[i] = fmt.Sprintf("%d", n)
	}
	return map[string]string{
		"congresses":         strings.Join(congresses, ","),
		"bill_types":         strings.Join(c.cfg.BillTypes, ","),
		"dataset":            c.cfg.DatasetName,
		"max_newspaper_rows": fmt.Sprintf("%d", c.cfg.MaxNewspaperRows),
	}
}
