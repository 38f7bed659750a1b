package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillSet(t *testing.T) {
	set := SkillSet([]string{"Go", "go", "Python", "SQL"})
	assert.Len(t, set, 3)
	assert.Contains(t, set, "go")
	assert.Contains(t, set, "python")
	assert.Contains(t, set, "sql")
}

// Идеально взаимодополняющая пара: оба жаккарда равны 2,
// сырой скор выходит за 1.0 и срезается до 100.
func TestCompatibilityScore_PerfectComplementCapsAt100(t *testing.T) {
	uOffered := SkillSet([]string{"python"})
	uNeeded := SkillSet([]string{"go"})
	cOffered := SkillSet([]string{"go"})
	cNeeded := SkillSet([]string{"python"})

	score := CompatibilityScore(uOffered, uNeeded, cOffered, cNeeded, true, true)
	assert.Equal(t, 100, score)
}

func TestCompatibilityScore_NoOverlap(t *testing.T) {
	uOffered := SkillSet([]string{"cooking"})
	uNeeded := SkillSet([]string{"baking"})
	cOffered := SkillSet([]string{"go"})
	cNeeded := SkillSet([]string{"python"})

	score := CompatibilityScore(uOffered, uNeeded, cOffered, cNeeded, false, false)
	assert.Equal(t, 0, score)
}

// Бонус за верификацию дается только студенту
func TestCompatibilityScore_VerifiedBonus(t *testing.T) {
	uOffered := SkillSet([]string{"cooking"})
	uNeeded := SkillSet([]string{"baking"})
	cOffered := SkillSet([]string{"go"})
	cNeeded := SkillSet([]string{"python"})

	assert.Equal(t, 10, CompatibilityScore(uOffered, uNeeded, cOffered, cNeeded, true, true))
	assert.Equal(t, 0, CompatibilityScore(uOffered, uNeeded, cOffered, cNeeded, true, false))
	assert.Equal(t, 0, CompatibilityScore(uOffered, uNeeded, cOffered, cNeeded, false, true))
}

func TestCompatibilityScore_PartialOverlap(t *testing.T) {
	uOffered := SkillSet([]string{"a"})
	uNeeded := SkillSet([]string{"b"})
	cOffered := SkillSet([]string{"b", "c"})
	cNeeded := SkillSet([]string{"d"})

	// crossTeach=1; teach=1/2, learn=1/2; synergy=0
	// 0.5*0.7 + 0.5*0.2 = 0.45
	score := CompatibilityScore(uOffered, uNeeded, cOffered, cNeeded, false, false)
	assert.Equal(t, 45, score)
}

// Одинаковые (не взаимодополняющие) интересы дают только synergy
func TestCompatibilityScore_SynergyOnly(t *testing.T) {
	uOffered := SkillSet([]string{"x"})
	uNeeded := SkillSet([]string{"y"})
	cOffered := SkillSet([]string{"x"})
	cNeeded := SkillSet([]string{"y"})

	score := CompatibilityScore(uOffered, uNeeded, cOffered, cNeeded, false, false)
	assert.Equal(t, 10, score)
}

// Пустые множества не дают деления на ноль
func TestCompatibilityScore_EmptySets(t *testing.T) {
	empty := SkillSet(nil)

	assert.Equal(t, 0, CompatibilityScore(empty, empty, empty, empty, false, false))
	assert.Equal(t, 10, CompatibilityScore(empty, empty, empty, empty, true, true))
}

func TestCompatibilityScore_CaseInsensitive(t *testing.T) {
	uOffered := SkillSet([]string{"Python"})
	uNeeded := SkillSet([]string{"GO"})
	cOffered := SkillSet([]string{"go"})
	cNeeded := SkillSet([]string{"python"})

	score := CompatibilityScore(uOffered, uNeeded, cOffered, cNeeded, false, false)
	assert.Equal(t, 100, score)
}
