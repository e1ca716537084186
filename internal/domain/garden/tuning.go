package garden

import "errors"

const (
	DefaultCapacity = 10

	DefaultTrials = 100
	DefaultTopN   = 3

	LookaheadDiscount = 0.7
	LookaheadInnerTop = 3
	GoalWeightBoost   = 3.0

	DefaultMultiplyFactor = 1.0 / 3.0
	DefaultUpgradeChance  = 0.45

	DefaultBubbleType = TypeDream
)

// ErrFundamentalAlreadySet rejects a second fundamental attachment; the
// first fundamental chosen in a session is sticky.
var ErrFundamentalAlreadySet = errors.New("fundamental already set")

var defaultGradeWeights = map[Quality]float64{
	QualityWhite:   1,
	QualityGreen:   2,
	QualityBlue:    4,
	QualityPurple:  8,
	QualityGold:    16,
	QualityRainbow: 32,
}

var defaultTypeWeights = map[BubbleType]float64{
	TypeBeast:   1.0,
	TypeFlora:   1.0,
	TypeSpirit:  1.0,
	TypeMachine: 1.0,
	TypeDream:   1.2,
	TypeStar:    1.0,
	TypeAbyss:   1.0,
}
