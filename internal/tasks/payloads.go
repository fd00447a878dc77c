package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// This file defines the "types" and "payloads" for our async tasks.

// Task type names
const (
	TypeTaskCollectPincodes = "task:collect_pincodes"
	TypeTaskExportReport    = "task:export_report"
)

// CollectPincodesPayload names the input file to collect from. An empty
// path falls back to the configured default.
type CollectPincodesPayload struct {
	InputPath string `json:"input_path"`
}

// NewCollectPincodesTask creates a new task for asynq
func NewCollectPincodesTask(inputPath string) (*asynq.Task, error) {
	payloadBytes, err := json.Marshal(CollectPincodesPayload{InputPath: inputPath})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeTaskCollectPincodes, payloadBytes), nil
}

// ExportReportPayload names the workbook to write. An empty path falls back
// to the configured default.
type ExportReportPayload struct {
	OutputPath string `json:"output_path"`
}

// NewExportReportTask creates a new task for asynq
func NewExportReportTask(outputPath string) (*asynq.Task, error) {
	payloadBytes, err := json.Marshal(ExportReportPayload{OutputPath: outputPath})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeTaskExportReport, payloadBytes), nil
}
