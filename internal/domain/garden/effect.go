package garden

// Effect is the closed set of collection transformations a lotus can carry.
// Dispatch in the simulator is an exhaustive type switch; adding a variant is
// a compile-visible change everywhere effects are handled.
type Effect interface {
	isEffect()
}

// CountRange is a fixed count (Min == Max) or an inclusive range. For
// deterministic evaluation a range resolves to its floored arithmetic mean.
type CountRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func FixedCount(n int) CountRange {
	return CountRange{Min: n, Max: n}
}

func (c CountRange) Resolve() int {
	return (c.Min + c.Max) / 2
}

// GradeRuleKind selects how an Add effect assigns the new bubbles' grade.
type GradeRuleKind int

const (
	// GradeExact assigns the named grade.
	GradeExact GradeRuleKind = iota
	// GradeHighestOwned assigns the best grade currently in the vision,
	// white when the vision is empty.
	GradeHighestOwned
	// GradeFloor assigns exactly the named grade. "At least blue/purple"
	// catalog wording is treated as the floor itself, not a draw above it.
	GradeFloor
)

type GradeRule struct {
	Kind  GradeRuleKind `json:"kind"`
	Grade Quality       `json:"grade"`
}

// TypeRule selects the category of produced bubbles. Random draws no actual
// randomness at this layer: it resolves to the default type.
type TypeRule struct {
	Random bool       `json:"random,omitempty"`
	Type   BubbleType `json:"type,omitempty"`
}

func (r *TypeRule) resolve() BubbleType {
	if r == nil || r.Random || !IsBubbleType(r.Type) {
		return DefaultBubbleType
	}
	return r.Type
}

// AddEffect appends newly created bubbles, clamped to remaining capacity.
type AddEffect struct {
	Count CountRange
	Grade *GradeRule
	Type  *TypeRule
}

// RemoveEffect removes bubbles from the front of the sequence. Catalog text
// sometimes reads "lowest quality"; removal is positional regardless.
type RemoveEffect struct {
	Count int
}

// UpgradeEffect advances the first Count bubbles by Tiers grades, capped at
// rainbow. All overrides Count and upgrades the whole vision.
type UpgradeEffect struct {
	Count int
	Tiers int
	All   bool
}

// ReplicateEffect duplicates existing bubbles (same type and grade, fresh
// identity), optionally only those matching Type, clamped to capacity.
type ReplicateEffect struct {
	Count int
	Type  *TypeRule
}

// ChangeTypeEffect rewrites the category of the first Count bubbles and
// optionally advances them one grade afterwards.
type ChangeTypeEffect struct {
	Count        int
	To           BubbleType
	UpgradeAfter bool
}

// MultiplyOnEnterEffect is a fundamental: on entering a nightmare, gain
// floor(matching × Multiplier) rainbow bubbles of the target type. This
// layer intentionally does not clamp to capacity.
type MultiplyOnEnterEffect struct {
	Type       *TypeRule
	Multiplier float64
}

func (e MultiplyOnEnterEffect) multiplier() float64 {
	if e.Multiplier <= 0 {
		return DefaultMultiplyFactor
	}
	return e.Multiplier
}

// ChanceUpgradeOnEnterEffect is a fundamental: on entering a nightmare, a
// chance to upgrade the target set by one grade.
type ChanceUpgradeOnEnterEffect struct {
	Chance float64
	Type   *TypeRule
}

func (e ChanceUpgradeOnEnterEffect) chance() float64 {
	if e.Chance <= 0 {
		return DefaultUpgradeChance
	}
	return e.Chance
}

// ReactiveTrigger names the declared-but-unsimulated fundamental triggers.
type ReactiveTrigger string

const (
	TriggerQualityChange ReactiveTrigger = "quality_change"
	TriggerTypeChange    ReactiveTrigger = "type_change"
	TriggerAddRemove     ReactiveTrigger = "add_remove"
)

// ReactiveEffect is declared in the catalog but never evaluated by this
// engine; it simulates as a no-op.
type ReactiveEffect struct {
	Trigger ReactiveTrigger
}

// ComplexEffect is the free-text fallback for effects too irregular to
// model. It simulates as a no-op; a fundamental-flagged lotus carrying one
// still attaches as the vision's fundamental when picked.
type ComplexEffect struct {
	Text string
}

func (AddEffect) isEffect()                  {}
func (RemoveEffect) isEffect()               {}
func (UpgradeEffect) isEffect()              {}
func (ReplicateEffect) isEffect()            {}
func (ChangeTypeEffect) isEffect()           {}
func (MultiplyOnEnterEffect) isEffect()      {}
func (ChanceUpgradeOnEnterEffect) isEffect() {}
func (ReactiveEffect) isEffect()             {}
func (ComplexEffect) isEffect()              {}
