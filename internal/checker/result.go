package checker

import (
	"fmt"
	"math"
	"sort"

	"github.com/careline/medtriage/pkg/domain"
)

// Disclaimer is attached to every final result.
const Disclaimer = "⚠️ This assessment is for informational purposes only and does not " +
	"constitute medical advice. Always consult a qualified healthcare provider " +
	"for proper diagnosis and treatment."

// noConditionRecommendation is the fixed low-urgency result text for an
// empty score accumulator.
const noConditionRecommendation = "Based on your responses, no specific conditions were " +
	"strongly indicated. If symptoms persist, please consult a healthcare professional."

// ResultPolicy holds the ranking and urgency constants. The thresholds
// carry no documented clinical basis; they are kept configurable rather
// than reinterpreted.
type ResultPolicy struct {
	// HighThreshold: a max score strictly above this is high urgency.
	HighThreshold float64
	// MediumThreshold: strictly above this (and at most HighThreshold)
	// is medium urgency.
	MediumThreshold float64
	// TopConditions caps the ranked differential.
	TopConditions int
}

// DefaultResultPolicy mirrors the constants the tree definitions were
// authored against.
func DefaultResultPolicy() ResultPolicy {
	return ResultPolicy{
		HighThreshold:   5,
		MediumThreshold: 3,
		TopConditions:   3,
	}
}

func (p ResultPolicy) urgency(maxScore float64) domain.Urgency {
	switch {
	case maxScore > p.HighThreshold:
		return domain.UrgencyHigh
	case maxScore > p.MediumThreshold:
		return domain.UrgencyMedium
	default:
		return domain.UrgencyLow
	}
}

// buildResult ranks the accumulated condition scores into the final
// assessment. Ties keep the session's first-encounter order.
func buildResult(tree *domain.Tree, session *domain.Session, policy ResultPolicy) *domain.Result {
	if len(session.Scores) == 0 {
		return &domain.Result{
			Conditions:     []domain.ConditionAssessment{},
			Recommendation: noConditionRecommendation,
			Urgency:        domain.UrgencyLow,
			Disclaimer:     Disclaimer,
		}
	}

	ranked := append([]string(nil), session.ScoreOrder...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return session.Scores[ranked[i]] > session.Scores[ranked[j]]
	})

	var total float64
	for _, name := range ranked {
		total += session.Scores[name]
	}

	top := ranked
	if policy.TopConditions > 0 && len(top) > policy.TopConditions {
		top = top[:policy.TopConditions]
	}

	conditions := make([]domain.ConditionAssessment, 0, len(top))
	for _, name := range top {
		probability := 0.0
		if total > 0 {
			probability = math.Round(session.Scores[name]/total*1000) / 10
		}
		info := tree.Condition(name)
		conditions = append(conditions, domain.ConditionAssessment{
			Name:           name,
			Probability:    probability,
			Description:    info.Description,
			Recommendation: info.Recommendation,
		})
	}

	return &domain.Result{
		Conditions: conditions,
		Recommendation: fmt.Sprintf("Based on your symptoms, the most likely condition may be %s. "+
			"Please consult a healthcare professional for a proper diagnosis.", ranked[0]),
		Urgency:    policy.urgency(session.Scores[ranked[0]]),
		Disclaimer: Disclaimer,
	}
}
