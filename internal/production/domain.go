// Package production advances work-in-progress batches through the fixed
// manufacturing pipeline and folds packed batches into finished goods.
package production

import (
	"fmt"

	"github.com/surgiflow/surgiflow/internal/catalog"
	"github.com/surgiflow/surgiflow/internal/shared"
)

// Stages lists the pipeline in manufacturing order. PACKED is terminal.
var Stages = []catalog.ManufacturingStage{
	catalog.StageForging,
	catalog.StageMachining,
	catalog.StagePolishing,
	catalog.StageCleaning,
	catalog.StageQC,
	catalog.StageSterilization,
	catalog.StagePacked,
}

// ValidStage reports whether the stage belongs to the pipeline.
func ValidStage(stage catalog.ManufacturingStage) bool {
	for _, s := range Stages {
		if s == stage {
			return true
		}
	}
	return false
}

var (
	// ErrBatchNotFound indicates an unknown in-progress batch id.
	ErrBatchNotFound = fmt.Errorf("wip batch %w", shared.ErrNotFound)
	// ErrMissingID indicates a batch without an id.
	ErrMissingID = fmt.Errorf("%w: batch id required", shared.ErrValidation)
	// ErrMissingProduct indicates a batch without a product reference.
	ErrMissingProduct = fmt.Errorf("%w: batch product id required", shared.ErrValidation)
	// ErrInvalidQuantity indicates a non-positive batch quantity.
	ErrInvalidQuantity = fmt.Errorf("%w: batch quantity must be > 0", shared.ErrValidation)
	// ErrUnknownStage indicates a stage outside the pipeline.
	ErrUnknownStage = fmt.Errorf("%w: unknown manufacturing stage", shared.ErrValidation)
	// ErrInvalidQC indicates a malformed inspection record.
	ErrInvalidQC = fmt.Errorf("%w: qc record requires inspector and status", shared.ErrValidation)
)
