package advise

import "lotusadvisor/internal/domain/garden"

type Request struct {
	PlayerID   string
	LotusIDs   []string
	TopN       int
	Stochastic bool
	Trials     int
	Lookahead  bool
	Goal       string
}

type Response struct {
	PlayerID        string           `json:"player_id"`
	Stochastic      bool             `json:"stochastic"`
	Lookahead       bool             `json:"lookahead"`
	Goal            string           `json:"goal,omitempty"`
	Recommendations []Recommendation `json:"recommendations"`
}

type Recommendation struct {
	LotusID        string          `json:"lotus_id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Risk           string          `json:"risk,omitempty"`
	Fundamental    bool            `json:"fundamental,omitempty"`
	Score          float64         `json:"score"`
	FutureValue    float64         `json:"future_value,omitempty"`
	LookaheadScore float64         `json:"lookahead_score,omitempty"`
	Result         garden.Vision   `json:"result"`
	Reasons        []garden.Reason `json:"reasons"`
}
