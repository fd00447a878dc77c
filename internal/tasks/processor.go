package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"pincheck/internal/collector"
	"pincheck/internal/config"
	"pincheck/internal/input"
	"pincheck/internal/pkg/anjani"
	"pincheck/internal/reporter"
	"pincheck/internal/store"
)

// TaskProcessor holds dependencies for our task handlers
type TaskProcessor struct {
	store         store.Store
	config        *config.Config
	courierClient *anjani.Client
}

// NewTaskProcessor creates a new TaskProcessor
func NewTaskProcessor(st store.Store, cfg *config.Config) *TaskProcessor {
	return &TaskProcessor{
		store:         st,
		config:        cfg,
		courierClient: anjani.New(cfg.CourierBaseURL, cfg.CourierUser, cfg.CourierPassword),
	}
}

// HandleCollectPincodesTask loads the input list and runs a full collection
// pass. Per-code failures are recorded in the store, not retried by asynq.
func (p *TaskProcessor) HandleCollectPincodesTask(ctx context.Context, t *asynq.Task) error {
	var payload CollectPincodesPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	path := payload.InputPath
	if path == "" {
		path = p.config.InputPath
	}

	codes, err := input.Load(path)
	if err != nil {
		log.Printf("failed to load pincode list: %v", err)
		return nil
	}

	col := collector.New(p.courierClient, p.store,
		collector.WithBatchSize(p.config.CollectBatchSize),
		collector.WithPause(p.config.CollectPause),
	)

	summary, err := col.Run(ctx, codes)
	if err != nil {
		return err
	}

	log.Printf("Collection finished. Found: %d, not found: %d, errors: %d, skipped: %d",
		summary.Found, summary.NotFound, summary.Errors, summary.Skipped)

	return nil
}

// HandleExportReportTask renders the workbook from whatever the store holds.
func (p *TaskProcessor) HandleExportReportTask(ctx context.Context, t *asynq.Task) error {
	var payload ExportReportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	path := payload.OutputPath
	if path == "" {
		path = p.config.ReportPath
	}

	if _, err := reporter.Run(ctx, p.store, path); err != nil {
		log.Printf("failed to export report: %v", err)
		return err
	}

	return nil
}

func (p *TaskProcessor) GetCourierClient() *anjani.Client {
	return p.courierClient
}
