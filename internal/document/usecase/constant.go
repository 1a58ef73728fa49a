package usecase

import (
	"time"

	"project-assistant/internal/model"
	"project-assistant/internal/prompt"
)

const (
	LogPrefixDetect      = "document.DetectType"
	LogPrefixFollowUp    = "document.AnalyzeFollowUp"
	LogPrefixDirect      = "document.AnalyzeDirect"
	LogPrefixMaterialize = "document.Materialize"
)

const (
	detectTemperature  = 0.0
	detectMaxTokens    = 256
	detectSampleRunes  = 2000
	extractTemperature = 0.2
	extractMaxTokens   = 4096

	// DefaultConcurrency bounds parallel item creations within one pass.
	DefaultConcurrency = 4
)

// defaultItemType is used when the model emits an unknown type.
var defaultItemType = map[prompt.TemplateID]model.ItemType{
	prompt.TemplateFeatureModules: model.ItemFeatureModule,
	prompt.TemplateWBS:            model.ItemWorkPackage,
	prompt.TemplateDecisions:      model.ItemDecision,
	prompt.TemplateChangeRequests: model.ItemChangeRequest,
	prompt.TemplatePending:        model.ItemPending,
}

// materializeTimeout bounds one whole batch.
const materializeTimeout = 2 * time.Minute
