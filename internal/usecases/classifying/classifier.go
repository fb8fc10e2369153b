package classifying

import (
	"math"
	"strings"

	"github.com/vfg2006/campaign-metrics-sync/internal/domain"
)

// Result é o valor e o nome do resultado escolhido para uma linha diária
type Result struct {
	Value float64
	Label *string
}

// LabelOrEmpty facilita logs e comparações
func (r Result) LabelOrEmpty() string {
	if r.Label == nil {
		return ""
	}
	return *r.Label
}

// ResolveFamily normaliza o objetivo e aplica as exceções por nome de campanha
func ResolveFamily(objective, campaignName string) Family {
	family, ok := ObjectiveFamilies[normalizeObjective(objective)]
	if !ok {
		return FamilyUnclassified
	}

	if override, ok := NameOverrides[family]; ok && containsAny(campaignName, override.Keywords) {
		return override.Target
	}

	return family
}

// Classify escolhe o resultado de uma linha diária a partir dos contadores de ações,
// do objetivo e do nome da campanha. É uma função pura: nenhum contador fora da
// lista aceita pela família é usado, mesmo que seja o maior número da linha.
func Classify(counters domain.ActionCounters, objective, campaignName string, row domain.DailyInsight) Result {
	rule := Rules[ResolveFamily(objective, campaignName)]

	if rule.UseReach && row.Reach > 0 {
		return newResult(float64(row.Reach), ReachLabel)
	}

	if result, ok := firstPresent(counters, rule.Accepts); ok {
		return result
	}

	if rule.Universal {
		if result, ok := firstPresent(counters, UniversalFallback); ok {
			return result
		}
	}

	return Result{}
}

func firstPresent(counters domain.ActionCounters, actionTypes []string) (Result, bool) {
	for _, actionType := range actionTypes {
		if value, ok := counters.Get(actionType); ok {
			return newResult(value, actionType), true
		}
	}

	return Result{}, false
}

func newResult(value float64, label string) Result {
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}

	return Result{Value: value, Label: &label}
}

func normalizeObjective(objective string) string {
	return strings.ToUpper(strings.TrimSpace(objective))
}

func containsAny(s string, keywords []string) bool {
	s = strings.ToLower(s)
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}

	return false
}
