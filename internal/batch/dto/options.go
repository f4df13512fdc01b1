package dto

import "time"

// Cascade behavior is configurable per call so callers can disable it
// (dry-run previews, manual sequencing). Nil options mean the documented
// defaults; use the Default constructors when overriding a single field.

type StartBatchOptions struct {
	StartDate           *time.Time
	AutoStartFirstStage bool
}

func DefaultStartBatchOptions() *StartBatchOptions {
	return &StartBatchOptions{AutoStartFirstStage: true}
}

type CompleteBatchOptions struct {
	EndDate        *time.Time
	SkipValidation bool
}

func DefaultCompleteBatchOptions() *CompleteBatchOptions {
	return &CompleteBatchOptions{}
}

type AbandonBatchOptions struct {
	EndDate          *time.Time
	ReleaseEquipment bool
}

func DefaultAbandonBatchOptions() *AbandonBatchOptions {
	return &AbandonBatchOptions{ReleaseEquipment: true}
}

type StartStageOptions struct {
	StartDate *time.Time
}

func DefaultStartStageOptions() *StartStageOptions {
	return &StartStageOptions{}
}

type CompleteStageOptions struct {
	EndDate          *time.Time
	ReleaseEquipment bool
	AutoAdvance      bool
}

func DefaultCompleteStageOptions() *CompleteStageOptions {
	return &CompleteStageOptions{ReleaseEquipment: true, AutoAdvance: true}
}
