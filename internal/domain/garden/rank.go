package garden

import "sort"

// RankOptions control one advice run. Zero values pick the defaults: top 3,
// deterministic, no lookahead, no goal.
type RankOptions struct {
	TopN       int
	Stochastic bool
	Trials     int
	Lookahead  bool
	Goal       BubbleType
}

func (o RankOptions) topN() int {
	if o.TopN <= 0 {
		return DefaultTopN
	}
	return o.TopN
}

// Rank scores every candidate and returns the top entries strictly
// descending, stable on ties (catalog order preserved). A goal type boosts
// that type's weight for this run only.
func (e Engine) Rank(v Vision, lotuses []Lotus, w Weights, opts RankOptions) []Recommendation {
	w = w.WithGoal(opts.Goal)
	recs := make([]Recommendation, 0, len(lotuses))
	for _, l := range lotuses {
		var score float64
		if opts.Stochastic {
			score = e.ScoreMonteCarlo(v, l, w, opts.Trials)
		} else {
			score = e.Score(v, l, w)
		}
		recs = append(recs, Recommendation{
			Lotus:  l,
			Score:  score,
			Result: e.project(v, l, false),
		})
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	return truncate(recs, opts.topN())
}

// RankWithLookahead adds one extra ply: from each candidate's resulting
// vision the same candidate set is ranked again, always deterministically,
// and the average of that inner top 3 is discounted and added as future
// value. The search does not recurse deeper.
func (e Engine) RankWithLookahead(v Vision, lotuses []Lotus, w Weights, opts RankOptions) []Recommendation {
	if !opts.Lookahead {
		return e.Rank(v, lotuses, w, opts)
	}
	w = w.WithGoal(opts.Goal)
	inner := RankOptions{TopN: LookaheadInnerTop}

	recs := make([]Recommendation, 0, len(lotuses))
	for _, l := range lotuses {
		var score float64
		if opts.Stochastic {
			score = e.ScoreMonteCarlo(v, l, w, opts.Trials)
		} else {
			score = e.Score(v, l, w)
		}
		result := e.project(v, l, false)

		future := 0.0
		if next := e.Rank(result, lotuses, w, inner); len(next) > 0 {
			sum := 0.0
			for _, rec := range next {
				sum += rec.Score
			}
			future = sum / float64(len(next)) * LookaheadDiscount
		}
		recs = append(recs, Recommendation{
			Lotus:          l,
			Score:          score,
			FutureValue:    future,
			LookaheadScore: score + future,
			Result:         result,
		})
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].LookaheadScore > recs[j].LookaheadScore })
	return truncate(recs, opts.topN())
}

func truncate(recs []Recommendation, n int) []Recommendation {
	if len(recs) > n {
		recs = recs[:n]
	}
	return recs
}
