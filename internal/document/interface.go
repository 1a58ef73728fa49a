package document

import "context"

// UseCase routes documents to extraction templates and hands the
// resulting candidates to the item store.
type UseCase interface {
	// DetectType classifies a freshly uploaded document. It never fails:
	// any model error falls back to keyword matching.
	DetectType(ctx context.Context, input DetectInput) Detection

	// AnalyzeFollowUp runs the template matched by a follow-up instruction
	// given while a document is pending. A chat category returns an empty
	// Analysis with Category set and no model call.
	AnalyzeFollowUp(ctx context.Context, input AnalyzeInput) (Analysis, error)

	// AnalyzeDirect extracts candidates from text that arrived together
	// with its instruction.
	AnalyzeDirect(ctx context.Context, input AnalyzeInput) (Analysis, error)

	// Materialize persists candidates, parents before children. Per-item
	// failures are reported in the result and never roll back the batch.
	Materialize(ctx context.Context, input MaterializeInput) MaterializeResult
}
