package forest

import (
	"fmt"
	"math"

	"egov/util"
)

// Score is a log-probability that may be unset. Slots no derivation reaches
// stay unset instead of carrying a magic value.
type Score struct {
	Log   float64
	Valid bool
}

func LogScore(logProb float64) Score {
	return Score{logProb, true}
}

// Add combines alternative derivations: log(exp(s) + exp(logProb)), or
// logProb alone if s is unset
func (s Score) Add(logProb float64) Score {
	if !s.Valid {
		return LogScore(logProb)
	}
	return LogScore(util.LogAdd(s.Log, logProb))
}

// Prob is exp(s), zero when unset
func (s Score) Prob() float64 {
	if !s.Valid {
		return 0
	}
	return math.Exp(s.Log)
}

func (s Score) String() string {
	if !s.Valid {
		return "_"
	}
	return fmt.Sprintf("%g", s.Log)
}

func newScoreTable(heads [][]int) [][]Score {
	table := make([][]Score, len(heads))
	for i, slots := range heads {
		table[i] = make([]Score, len(slots))
	}
	return table
}
