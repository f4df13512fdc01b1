package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure kinds the core reports. Callers match
// with errors.Is; none of these are retried internally.
var (
	ErrNotFound              = errors.New("brewcode: not found")
	ErrInvalidState          = errors.New("brewcode: operation not legal for current status")
	ErrRequiredStage         = errors.New("brewcode: required stage cannot be skipped")
	ErrAlreadyInUse          = errors.New("brewcode: equipment already in use")
	ErrNoInventory           = errors.New("brewcode: no inventory available")
	ErrInsufficientInventory = errors.New("brewcode: insufficient inventory")
	ErrUnitMismatch          = errors.New("brewcode: unit mismatch")
	ErrInvalidItem           = errors.New("brewcode: item is not stocked as inventory")
	ErrConversion            = errors.New("brewcode: incompatible unit conversion")
)

// ValidationError reports malformed or missing input. Caller's fault,
// never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("brewcode: validation failed for %s: %s", e.Field, e.Message)
}

// IncompleteStagesError blocks batch completion and names the stages that
// are neither completed nor skipped.
type IncompleteStagesError struct {
	Stages []string
}

func (e IncompleteStagesError) Error() string {
	return fmt.Sprintf("brewcode: batch has incomplete stages: %s", strings.Join(e.Stages, ", "))
}

// NotFound wraps ErrNotFound with the entity and id that were looked up.
func NotFound(entity, id string) error {
	return fmt.Errorf("%s %q: %w", entity, id, ErrNotFound)
}

// InvalidState wraps ErrInvalidState with a description of the rejected
// transition.
func InvalidState(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInvalidState)
}
