package garden

// Reason is one human-readable justification tag derived from a transition.
// Reasons are presentation metadata only and never influence ranking.
type Reason struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

const (
	ReasonSynergyCluster = "SYNERGY_CLUSTER"
	ReasonBulkUpgrade    = "BULK_UPGRADE"
	ReasonGoalProgress   = "GOAL_PROGRESS"
	ReasonHighValueAdd   = "HIGH_VALUE_ADD"
	ReasonBulkGain       = "BULK_GAIN"
)

const (
	clusterSize     = 3
	bulkThreshold   = 3
	highValueFloor  = QualityPurple
	strongAddsCount = 2
)

// Explain compares the before and after visions and derives zero or more
// reason tags for the pick.
func Explain(before Vision, l Lotus, after Vision, goal BubbleType) []Reason {
	reasons := []Reason{}
	reasons = append(reasons, clusterReasons(before, after)...)

	if n := upgradedCount(before, after); n >= bulkThreshold {
		reasons = append(reasons, Reason{
			Code:    ReasonBulkUpgrade,
			Message: "Upgrades a large part of the vision at once",
			Data:    map[string]any{"upgraded": n},
		})
	}

	added := addedBubbles(before, after)
	if IsBubbleType(goal) {
		goalAdds := 0
		for _, b := range added {
			if b.Type == goal {
				goalAdds++
			}
		}
		if goalAdds > 0 {
			reasons = append(reasons, Reason{
				Code:    ReasonGoalProgress,
				Message: "Moves the vision toward the chosen goal type",
				Data:    map[string]any{"goal": goal, "added": goalAdds},
			})
		}
	}

	if delta := highValueCount(after) - highValueCount(before); delta >= 1 {
		msg := "Adds a high-grade bubble"
		if delta >= strongAddsCount {
			msg = "Adds several high-grade bubbles"
		}
		reasons = append(reasons, Reason{
			Code:    ReasonHighValueAdd,
			Message: msg,
			Data:    map[string]any{"delta": delta},
		})
	}

	if net := len(after.Bubbles) - len(before.Bubbles); net >= bulkThreshold {
		reasons = append(reasons, Reason{
			Code:    ReasonBulkGain,
			Message: "Grows the vision by several bubbles",
			Data:    map[string]any{"net": net},
		})
	}
	return reasons
}

// clusterReasons reports a type crossing into a synergy cluster (2 -> 3) or
// an existing cluster growing.
func clusterReasons(before, after Vision) []Reason {
	out := []Reason{}
	for _, t := range AllBubbleTypes {
		b := before.CountByType(t)
		a := after.CountByType(t)
		switch {
		case b < clusterSize && a >= clusterSize:
			out = append(out, Reason{
				Code:    ReasonSynergyCluster,
				Message: "Completes a synergy cluster",
				Data:    map[string]any{"type": t, "count": a},
			})
		case b >= clusterSize && a > b:
			out = append(out, Reason{
				Code:    ReasonSynergyCluster,
				Message: "Reinforces an existing synergy cluster",
				Data:    map[string]any{"type": t, "count": a},
			})
		}
	}
	return out
}

func upgradedCount(before, after Vision) int {
	prior := make(map[string]Quality, len(before.Bubbles))
	for _, b := range before.Bubbles {
		prior[b.ID] = b.Quality
	}
	n := 0
	for _, b := range after.Bubbles {
		if q, ok := prior[b.ID]; ok && b.Quality != q {
			n++
		}
	}
	return n
}

func addedBubbles(before, after Vision) []Bubble {
	seen := make(map[string]bool, len(before.Bubbles))
	for _, b := range before.Bubbles {
		seen[b.ID] = true
	}
	out := []Bubble{}
	for _, b := range after.Bubbles {
		if !seen[b.ID] {
			out = append(out, b)
		}
	}
	return out
}

func highValueCount(v Vision) int {
	n := 0
	for _, b := range v.Bubbles {
		if b.Quality >= highValueFloor {
			n++
		}
	}
	return n
}
