package task

import (
	"github.com/randalmurphal/llmkit/model"
)

// Type represents the kind of work an LLM call performs. It determines
// which model tier is appropriate.
type Type string

const (
	// Customer-facing generation - needs the strongest writing.
	Generate Type = "generate"

	// Standard judgment calls - default tier.
	Review Type = "review"

	// High-volume, low-stakes calls - smaller models suffice.
	Classify  Type = "classify"
	Summarize Type = "summarize"
)

// DefaultModelMap maps task types to default models.
var DefaultModelMap = map[Type]model.ModelName{
	Generate:  model.ModelOpus,
	Review:    model.ModelSonnet,
	Classify:  model.ModelHaiku,
	Summarize: model.ModelHaiku,
}

// TierForTask returns the appropriate tier for a task type.
func TierForTask(t Type) model.Tier {
	switch t {
	case Generate:
		return model.TierThinking
	case Classify, Summarize:
		return model.TierFast
	default:
		return model.TierDefault
	}
}

// NewSelector creates a model selector configured for support workflow
// tasks, using the standard task-to-tier mapping.
func NewSelector(opts ...model.SelectorOption) *model.Selector {
	allOpts := append([]model.SelectorOption{
		model.WithTierFunc(func(task any) model.Tier {
			if t, ok := task.(Type); ok {
				return TierForTask(t)
			}
			return model.TierDefault
		}),
	}, opts...)

	return model.NewSelector(allOpts...)
}

// SelectModel selects the appropriate model for a task type. Uses the
// default model map unless the type is unknown, in which case it falls
// back to tier-based selection.
func SelectModel(t Type) model.ModelName {
	if m, ok := DefaultModelMap[t]; ok {
		return m
	}
	switch TierForTask(t) {
	case model.TierThinking:
		return model.ModelOpus
	case model.TierFast:
		return model.ModelHaiku
	default:
		return model.ModelSonnet
	}
}
