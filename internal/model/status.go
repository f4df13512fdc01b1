package model

// Closed status enumerations for every stateful entity, with the legal
// transitions declared once here instead of scattered string comparisons.

type BatchStatus string

const (
	BatchPlanned   BatchStatus = "planned"
	BatchActive    BatchStatus = "active"
	BatchCompleted BatchStatus = "completed"
	BatchAbandoned BatchStatus = "abandoned"
)

var batchTransitions = map[BatchStatus][]BatchStatus{
	BatchPlanned:   {BatchActive, BatchAbandoned},
	BatchActive:    {BatchCompleted, BatchAbandoned},
	BatchCompleted: {},
	BatchAbandoned: {},
}

func (s BatchStatus) CanTransitionTo(target BatchStatus) bool {
	for _, t := range batchTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

type StageStatus string

const (
	StagePending   StageStatus = "pending"
	StageActive    StageStatus = "active"
	StageCompleted StageStatus = "completed"
	StageSkipped   StageStatus = "skipped"
)

var stageTransitions = map[StageStatus][]StageStatus{
	StagePending:   {StageActive, StageSkipped},
	StageActive:    {StageCompleted},
	StageCompleted: {},
	StageSkipped:   {},
}

func (s StageStatus) CanTransitionTo(target StageStatus) bool {
	for _, t := range stageTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Terminal reports whether the stage no longer blocks batch completion.
func (s StageStatus) Terminal() bool {
	return s == StageCompleted || s == StageSkipped
}

type LotStatus string

const (
	LotActive   LotStatus = "active"
	LotConsumed LotStatus = "consumed"
	LotExpired  LotStatus = "expired"
)

type UsageStatus string

const (
	UsageInUse     UsageStatus = "in-use"
	UsageAvailable UsageStatus = "available"
)

// ScalingMethod derives a planned ingredient amount from the recipe's
// reference amount when the actual batch size differs.
type ScalingMethod string

const (
	ScalingLinear ScalingMethod = "linear"
	ScalingFixed  ScalingMethod = "fixed"
	ScalingStep   ScalingMethod = "step"
)
