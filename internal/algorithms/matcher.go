package algorithms

import (
	"math"
	"strings"
)

// Веса компонент итогового скора
const (
	teachWeight   = 0.7
	learnWeight   = 0.2
	synergyWeight = 0.1

	// Бонус студенту за верифицированного профессионала
	verifiedBonus = 0.1
)

// SkillSet строит множество имен навыков в нижнем регистре
func SkillSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = struct{}{}
	}
	return set
}

// CompatibilityScore вычисляет совместимость запрашивающего пользователя U
// и кандидата C как целый процент 0-100.
//
// cross_teach_overlap - навыки, которым стороны могут научить друг друга;
// teach/learn jaccard нормируют его на объединения соответствующих множеств;
// synergy - общие (не взаимодополняющие) интересы.
func CompatibilityScore(uOffered, uNeeded, cOffered, cNeeded map[string]struct{}, candidateVerified, requesterIsStudent bool) int {
	crossTeach := intersectionLen(uNeeded, cOffered) + intersectionLen(uOffered, cNeeded)

	teachUnion := unionLen(uNeeded, cOffered)
	if teachUnion == 0 {
		teachUnion = 1
	}
	learnUnion := unionLen(uOffered, cNeeded)
	if learnUnion == 0 {
		learnUnion = 1
	}

	teachJaccard := float64(crossTeach) / float64(teachUnion)
	learnJaccard := float64(crossTeach) / float64(learnUnion)

	ownTotal := len(uOffered) + len(uNeeded)
	if ownTotal == 0 {
		ownTotal = 1
	}
	synergy := float64(intersectionLen(uOffered, cOffered)+intersectionLen(uNeeded, cNeeded)) / float64(ownTotal)

	score := teachJaccard*teachWeight + learnJaccard*learnWeight + synergy*synergyWeight

	if candidateVerified && requesterIsStudent {
		score += verifiedBonus
	}

	result := int(math.Round(score * 100))
	if result > 100 {
		result = 100
	}
	return result
}

func intersectionLen(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	count := 0
	for k := range a {
		if _, ok := b[k]; ok {
			count++
		}
	}
	return count
}

func unionLen(a, b map[string]struct{}) int {
	count := len(a)
	for k := range b {
		if _, ok := a[k]; !ok {
			count++
		}
	}
	return count
}
