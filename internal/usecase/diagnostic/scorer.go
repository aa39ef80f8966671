package diagnostic

import (
	"fmt"

	"github.com/futig/eco-advisor/internal/entity"
)

// ScoreTable maps field -> label -> impact score (1 lowest, 3 highest).
type ScoreTable map[entity.Field]map[string]int

var defaultScoreTable = ScoreTable{
	entity.FieldHeating: {
		string(entity.HeatingLow):    1,
		string(entity.HeatingMedium): 2,
		string(entity.HeatingHigh):   3,
	},
	entity.FieldStandby: {
		string(entity.StandbyNever):     1,
		string(entity.StandbySometimes): 2,
		string(entity.StandbyAlways):    3,
	},
	entity.FieldLighting: {
		string(entity.LightingLED):       1,
		string(entity.LightingLowEnergy): 2,
		string(entity.LightingClassic):   3,
	},
	entity.FieldTransport: {
		string(entity.TransportActive): 1,
		string(entity.TransportPublic): 2,
		string(entity.TransportCar):    3,
	},
	entity.FieldRecycling: {
		string(entity.RecyclingYes):       1,
		string(entity.RecyclingSometimes): 2,
		string(entity.RecyclingNo):        3,
	},
}

// DefaultScoreTable returns a copy of the built-in score table.
func DefaultScoreTable() ScoreTable {
	out := make(ScoreTable, len(defaultScoreTable))
	for field, labels := range defaultScoreTable {
		cp := make(map[string]int, len(labels))
		for label, score := range labels {
			cp[label] = score
		}
		out[field] = cp
	}
	return out
}

// Scorer turns a complete questionnaire into a ScoreSet. It holds no mutable
// state and is safe for concurrent use.
type Scorer struct {
	table ScoreTable
}

func NewScorer() *Scorer {
	return &Scorer{table: defaultScoreTable}
}

// NewScorerWithTable builds a scorer over a custom table.
func NewScorerWithTable(table ScoreTable) *Scorer {
	return &Scorer{table: table}
}

// Score looks every answer up in the score table.
func (s *Scorer) Score(q *entity.Questionnaire) (entity.ScoreSet, error) {
	scores := make(entity.ScoreSet, len(entity.Fields))
	for _, field := range entity.Fields {
		value := q.Value(field)
		score, ok := s.table[field][value]
		if !ok {
			return nil, fmt.Errorf("%w: %q for %s", entity.ErrInvalidLabel, value, field)
		}
		scores[field] = score
	}
	return scores, nil
}
