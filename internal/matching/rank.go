package matching

import (
	"slices"

	"food-match-service/internal/domain"
)

type Candidate struct {
	Request domain.Request
	Score   domain.MatchScore
}

// Rank scores every candidate request against the donation and orders them by
// descending score. Equal scores keep their input order.
func (e *Engine) Rank(d domain.Donation, candidates []domain.Request) []Candidate {
	out := make([]Candidate, 0, len(candidates))
	for _, r := range candidates {
		out = append(out, Candidate{Request: r, Score: e.Score(d, r)})
	}

	slices.SortStableFunc(out, func(a, b Candidate) int {
		switch {
		case a.Score.Score > b.Score.Score:
			return -1
		case a.Score.Score < b.Score.Score:
			return 1
		}
		return 0
	})
	return out
}
