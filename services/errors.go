package services

import "errors"

var (
	ErrEmptyDataset       = errors.New("dataset is empty")
	ErrMissingColumn      = errors.New("missing column")
	ErrDuplicateModelName = errors.New("duplicate model name")
	ErrMissingArtifact    = errors.New("artifact not found")
	ErrNoMetrics          = errors.New("no model metrics")
	ErrInvalidMetric      = errors.New("invalid model metric")
)

// IsRecoverable reports whether the shell may render a placeholder instead
// of failing the whole report. Only missing artifacts qualify.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrMissingArtifact)
}
