package dataset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDatasetNotFound    = errors.New("dataset not found")
	ErrRecordNotFound     = errors.New("record not found")
	ErrRecordNotInDataset = errors.New("record does not belong to this dataset")
	ErrEmptyBatch         = errors.New("records array must not be empty")
	ErrMissingName        = errors.New("dataset name is required")
)

// ValidationError reports a strict-mode required-field failure for a single
// record write.
type ValidationError struct {
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.MissingFields, ", "))
}

// BatchItemError identifies one invalid candidate by its zero-based position
// in the batch input.
type BatchItemError struct {
	Index         int      `json:"index"`
	MissingFields []string `json:"errors"`
}

// BatchValidationError rejects an entire batch. Every invalid candidate is
// listed; no records were persisted.
type BatchValidationError struct {
	Items []BatchItemError
}

func (e *BatchValidationError) Error() string {
	return fmt.Sprintf("batch validation failed for %d record(s)", len(e.Items))
}
