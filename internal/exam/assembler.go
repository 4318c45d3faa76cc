package exam

import (
	"github.com/abhisek/prepengine/internal/question"
	"github.com/abhisek/prepengine/internal/rng"
	"github.com/samber/lo"
)

// Set is the question set of one full-length exam, in presentation order.
type Set struct {
	ELA  []question.Question
	Math []question.Question
}

// Len returns the total number of questions in the set.
func (s Set) Len() int {
	return len(s.ELA) + len(s.Math)
}

// Assembler draws exam question sets from a pool. Exams are not adaptive:
// the student's mastery plays no part.
type Assembler struct {
	blueprint Blueprint
	source    rng.Source
}

// NewAssembler creates an assembler. A nil source draws at random.
func NewAssembler(bp Blueprint, src rng.Source) *Assembler {
	return &Assembler{blueprint: bp, source: rng.OrRandom(src)}
}

// Blueprint returns the composition the assembler draws.
func (a *Assembler) Blueprint() Blueprint {
	return a.blueprint
}

// Assemble draws min(blueprint count, available) questions per section
// without replacement.
func (a *Assembler) Assemble(pool []question.Question) Set {
	r := a.source()
	unique := lo.UniqBy(pool, func(q question.Question) string { return q.ID })

	draw := func(section question.Section) []question.Question {
		candidates := lo.Filter(unique, func(q question.Question, _ int) bool {
			return q.Section == section
		})
		r.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		n := min(a.blueprint.Count(section), len(candidates))
		return candidates[:n]
	}

	return Set{
		ELA:  draw(question.SectionELA),
		Math: draw(question.SectionMath),
	}
}
