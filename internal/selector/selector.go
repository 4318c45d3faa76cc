package selector

import (
	"math/rand"
	"sort"

	"github.com/abhisek/prepengine/internal/difficulty"
	"github.com/abhisek/prepengine/internal/mastery"
	"github.com/abhisek/prepengine/internal/question"
	"github.com/abhisek/prepengine/internal/rng"
	"github.com/samber/lo"
)

// Selector picks and orders practice questions for one student.
//
// Selection runs in two phases. Questions outside the cooldown set are used
// first; recently served questions only fill the session once every fresh
// candidate is gone. In each phase categories are interleaved by smooth
// weighted round-robin on their need weight, and inside a category the
// questions closest to the student's target tier come first.
type Selector struct {
	thresholds difficulty.Thresholds
	weights    Weights
	source     rng.Source
}

// Option configures a Selector.
type Option func(*Selector)

// WithThresholds overrides the mastery bands used for difficulty targeting.
func WithThresholds(th difficulty.Thresholds) Option {
	return func(s *Selector) { s.thresholds = th }
}

// WithWeights overrides the need weighting.
func WithWeights(w Weights) Option {
	return func(s *Selector) { s.weights = w }
}

// WithSource sets the randomness used for tie-breaks.
func WithSource(src rng.Source) Option {
	return func(s *Selector) { s.source = src }
}

// New creates a Selector with default policy.
func New(opts ...Option) *Selector {
	s := &Selector{
		thresholds: difficulty.DefaultThresholds(),
		weights:    DefaultWeights(),
	}
	for _, o := range opts {
		o(s)
	}
	s.source = rng.OrRandom(s.source)
	return s
}

// categoryQueue holds one category's remaining candidates for both phases.
type categoryQueue struct {
	category string
	weight   float64
	fresh    []question.Question
	cooling  []question.Question
	current  float64
}

func (c *categoryQueue) queue(phase int) *[]question.Question {
	if phase == 0 {
		return &c.fresh
	}
	return &c.cooling
}

// Select returns min(cfg.QuestionCount, |filtered pool|) questions in
// presentation order. An empty filtered pool yields an empty result.
func (s *Selector) Select(
	stats []mastery.SkillStats,
	cfg SessionConfig,
	pool []question.Question,
	recentIDs []string,
) []Selection {
	out := []Selection{}
	if cfg.QuestionCount <= 0 {
		return out
	}

	filter := cfg.Filter()
	candidates := lo.UniqBy(
		lo.Filter(pool, func(q question.Question, _ int) bool { return filter.Match(q) }),
		func(q question.Question) string { return q.ID },
	)
	if len(candidates) == 0 {
		return out
	}

	r := s.source()
	want := min(cfg.QuestionCount, len(candidates))
	queues := s.buildQueues(r, stats, candidates, recentIDs)

	last := ""
	for phase := 0; phase < 2 && len(out) < want; phase++ {
		for _, q := range queues {
			q.current = 0
		}
		for len(out) < want {
			next := pickCategory(r, queues, phase, last)
			if next == nil {
				break
			}
			items := next.queue(phase)
			picked := (*items)[0]
			*items = (*items)[1:]

			out = append(out, Selection{QuestionID: picked.ID, Position: len(out)})
			last = next.category
		}
	}
	return out
}

// buildQueues groups candidates by category, splits each group by cooldown
// and orders it by distance from the category's target tier.
func (s *Selector) buildQueues(
	r *rand.Rand,
	stats []mastery.SkillStats,
	candidates []question.Question,
	recentIDs []string,
) []*categoryQueue {
	// Shuffle before any stable sort so pool order never decides ties.
	shuffled := make([]question.Question, len(candidates))
	copy(shuffled, candidates)
	r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	recent := lo.Associate(recentIDs, func(id string) (string, bool) { return id, true })
	byStats := mastery.Index(stats)
	groups := lo.GroupBy(shuffled, func(q question.Question) string { return q.Category })

	categories := lo.Keys(groups)
	sort.Strings(categories)
	r.Shuffle(len(categories), func(i, j int) { categories[i], categories[j] = categories[j], categories[i] })

	queues := make([]*categoryQueue, 0, len(categories))
	for _, cat := range categories {
		st, ok := byStats[cat]
		if !ok {
			st = mastery.NewSkillStats("", cat)
		}
		target := s.thresholds.ForMastery(st.MasteryLevel)

		q := &categoryQueue{category: cat, weight: s.weights.Need(st)}
		for _, item := range groups[cat] {
			if recent[item.ID] {
				q.cooling = append(q.cooling, item)
			} else {
				q.fresh = append(q.fresh, item)
			}
		}
		byTarget := func(items []question.Question) func(i, j int) bool {
			return func(i, j int) bool {
				return items[i].Difficulty.Distance(target) < items[j].Difficulty.Distance(target)
			}
		}
		sort.SliceStable(q.fresh, byTarget(q.fresh))
		sort.SliceStable(q.cooling, byTarget(q.cooling))
		queues = append(queues, q)
	}
	return queues
}

// pickCategory advances the smooth weighted round-robin by one step over the
// categories that still have candidates in phase. On equal credit a
// category other than last wins; remaining ties are broken at random.
func pickCategory(r *rand.Rand, queues []*categoryQueue, phase int, last string) *categoryQueue {
	var (
		best  *categoryQueue
		ties  int
		total float64
	)
	for _, q := range queues {
		if len(*q.queue(phase)) == 0 {
			continue
		}
		q.current += q.weight
		total += q.weight

		switch {
		case best == nil || q.current > best.current:
			best, ties = q, 1
		case q.current < best.current:
		case best.category == last && q.category != last:
			best, ties = q, 1
		case q.category == last && best.category != last:
		default:
			ties++
			if r.Intn(ties) == 0 {
				best = q
			}
		}
	}
	if best != nil {
		best.current -= total
	}
	return best
}
