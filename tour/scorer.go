package tour

import (
	"strconv"
	"strings"
)

// ScoreResult is the outcome of scoring one candidate tour. It is built
// fresh per call and never mutated afterwards.
type ScoreResult struct {
	TotalValue float64 `json:"total_value"`
	Feasible   bool    `json:"feasible"`
	Reason     string  `json:"reason,omitempty"`
}

// Score replays the candidate's daily routes against the problem and
// returns the total collected value.
//
// The candidate output must have exactly NDay lines after trimming
// trailing blank lines; each line lists 1-based site ids in visiting
// order, and an empty line is a day without visits. Travel costs one
// minute per unit of Manhattan distance, a visitor arriving early waits
// for the opening hour, and the full desired time must fit inside the
// opening window. A site may be visited at most once over the whole tour.
//
// The returned error is always a *Error.
func (p *Problem) Score(output string) (float64, error) {
	lines := strings.Split(output, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) != p.nDay {
		return 0, errorf(FeasibilityError, 0,
			"expected %d lines but there are %d", p.nDay, len(lines))
	}

	total := 0.0
	visited := make(map[int]bool, p.nSite)
	for day, line := range lines {
		now := 0 // minutes since the day's midnight
		x, y := 0, 0
		first := true
		for _, tok := range strings.Fields(line) {
			id, err := strconv.Atoi(tok)
			if err != nil {
				return 0, errorf(FeasibilityError, 0, "invalid site id %q", tok)
			}
			site := id - 1
			if site < 0 || site >= p.nSite {
				return 0, errorf(RangeError, 0,
					"site id %d must be between 1 and %d", id, p.nSite)
			}
			if visited[site] {
				return 0, errorf(FeasibilityError, 0, "already visited site %d", id)
			}
			visited[site] = true

			s := p.sites[site]
			if !first {
				now += abs(x-s.Avenue) + abs(y-s.Street)
			}
			first = false
			x, y = s.Avenue, s.Street

			w := p.windows[day][site]
			if open := w.Begin * 60; now < open {
				now = open
			}
			if now+s.DesiredTime > w.End*60 {
				return 0, errorf(FeasibilityError, 0, "insufficient time to visit site %d", id)
			}
			total += s.Value
		}
	}
	return total, nil
}

// ScoreOutput folds a scoring rejection into a zero-valued result.
func ScoreOutput(p *Problem, output string) *ScoreResult {
	total, err := p.Score(output)
	if err != nil {
		return &ScoreResult{Reason: err.Error()}
	}
	return &ScoreResult{TotalValue: total, Feasible: true}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
