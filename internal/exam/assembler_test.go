package exam

import (
	"fmt"
	"testing"

	"github.com/abhisek/prepengine/internal/difficulty"
	"github.com/abhisek/prepengine/internal/question"
	"github.com/abhisek/prepengine/internal/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionPool(ela, math int) []question.Question {
	var pool []question.Question
	for i := 0; i < ela; i++ {
		pool = append(pool, question.Question{
			ID: fmt.Sprintf("e%03d", i), Section: question.SectionELA,
			Category: "reading", Difficulty: difficulty.TierMedium, Type: question.TypeMultipleChoice,
		})
	}
	for i := 0; i < math; i++ {
		pool = append(pool, question.Question{
			ID: fmt.Sprintf("m%03d", i), Section: question.SectionMath,
			Category: "algebra", Difficulty: difficulty.TierMedium, Type: question.TypeGridIn,
		})
	}
	return pool
}

func TestAssemble_SizeLaw(t *testing.T) {
	tests := []struct {
		name      string
		ela, math int
		wantELA   int
		wantMath  int
	}{
		{"full pool", 120, 90, 57, 57},
		{"exact", 57, 57, 57, 57},
		{"short ela", 20, 80, 20, 57},
		{"short math", 80, 3, 57, 3},
		{"empty", 0, 0, 0, 0},
	}

	a := NewAssembler(DefaultBlueprint(), rng.Seeded(1))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := a.Assemble(sectionPool(tt.ela, tt.math))
			assert.Len(t, set.ELA, tt.wantELA)
			assert.Len(t, set.Math, tt.wantMath)
			assert.Equal(t, tt.wantELA+tt.wantMath, set.Len())
		})
	}
}

func TestAssemble_WithoutReplacementAndSectionPure(t *testing.T) {
	pool := sectionPool(100, 100)
	pool = append(pool, pool[0], pool[150]) // duplicates in the pool

	set := NewAssembler(DefaultBlueprint(), rng.Seeded(3)).Assemble(pool)

	seen := map[string]bool{}
	for _, q := range set.ELA {
		require.Equal(t, question.SectionELA, q.Section)
		require.False(t, seen[q.ID], "repeated %s", q.ID)
		seen[q.ID] = true
	}
	for _, q := range set.Math {
		require.Equal(t, question.SectionMath, q.Section)
		require.False(t, seen[q.ID], "repeated %s", q.ID)
		seen[q.ID] = true
	}
}

func TestAssemble_DuplicatesDoNotInflateCount(t *testing.T) {
	pool := sectionPool(3, 0)
	pool = append(pool, pool...)

	set := NewAssembler(DefaultBlueprint(), rng.Seeded(1)).Assemble(pool)

	assert.Len(t, set.ELA, 3)
}

func TestAssemble_DoesNotMutatePool(t *testing.T) {
	pool := sectionPool(60, 60)
	before := question.IDs(pool)

	_ = NewAssembler(DefaultBlueprint(), rng.Seeded(5)).Assemble(pool)

	assert.Equal(t, before, question.IDs(pool))
}

func TestAssemble_CustomBlueprint(t *testing.T) {
	set := NewAssembler(Blueprint{ELACount: 5, MathCount: 2}, rng.Seeded(1)).Assemble(sectionPool(10, 10))

	assert.Len(t, set.ELA, 5)
	assert.Len(t, set.Math, 2)
}

func TestAssemble_ReproducibleForSeed(t *testing.T) {
	pool := sectionPool(80, 80)

	a := NewAssembler(DefaultBlueprint(), rng.Seeded(42)).Assemble(pool)
	b := NewAssembler(DefaultBlueprint(), rng.Seeded(42)).Assemble(pool)

	assert.Equal(t, question.IDs(a.ELA), question.IDs(b.ELA))
	assert.Equal(t, question.IDs(a.Math), question.IDs(b.Math))
}
