package garden

// Weights is the user's scoring preference. Grade multipliers are expected
// non-negative and non-decreasing across grades. RiskTolerance is carried
// for the UI collaborator and not consumed by scoring.
type Weights struct {
	Grade         map[Quality]float64    `json:"grade"`
	Type          map[BubbleType]float64 `json:"type"`
	RiskTolerance float64                `json:"risk_tolerance"`
}

func DefaultWeights() Weights {
	w := Weights{
		Grade:         make(map[Quality]float64, len(defaultGradeWeights)),
		Type:          make(map[BubbleType]float64, len(defaultTypeWeights)),
		RiskTolerance: 0.5,
	}
	for q, m := range defaultGradeWeights {
		w.Grade[q] = m
	}
	for t, m := range defaultTypeWeights {
		w.Type[t] = m
	}
	return w
}

// WithGoal returns a copy with the goal type's multiplier boosted, leaving
// the receiver untouched so the caller's base weights survive the pre-pass.
func (w Weights) WithGoal(goal BubbleType) Weights {
	if !IsBubbleType(goal) {
		return w
	}
	out := Weights{
		Grade:         make(map[Quality]float64, len(w.Grade)),
		Type:          make(map[BubbleType]float64, len(w.Type)),
		RiskTolerance: w.RiskTolerance,
	}
	for q, m := range w.Grade {
		out.Grade[q] = m
	}
	for t, m := range w.Type {
		out.Type[t] = m
	}
	// Seed from the fallback when the goal type has no stored entry, so the
	// boost never multiplies an implicit zero.
	out.Type[goal] = w.typeWeight(goal) * GoalWeightBoost
	return out
}

func (w Weights) gradeWeight(q Quality) float64 {
	if m, ok := w.Grade[q]; ok {
		return m
	}
	return 0
}

func (w Weights) typeWeight(t BubbleType) float64 {
	if m, ok := w.Type[t]; ok {
		return m
	}
	return 1
}

// Value maps a vision to a scalar under the given weights.
func Value(v Vision, w Weights) float64 {
	total := 0.0
	for _, b := range v.Bubbles {
		total += w.gradeWeight(b.Quality) * w.typeWeight(b.Type)
	}
	return total
}
