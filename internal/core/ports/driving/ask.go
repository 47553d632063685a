package driving

import (
	"context"

	"github.com/custodia-labs/counsel-core/internal/core/domain"
)

// AskService answers user questions through the guarded pipeline:
// screen, retrieve, generate, scan.
type AskService interface {
	// Ask runs the full pipeline and returns the composed answer.
	// Guardrail refusals are successful answers with
	// GuardrailTriggered set, not errors.
	Ask(ctx context.Context, req domain.AskRequest) (*domain.Answer, error)
}
