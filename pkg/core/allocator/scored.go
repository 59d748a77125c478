package allocator

import (
	"sort"
	"strings"
	"time"

	"github.com/jakechorley/camp-quarters/internal/config"
	"github.com/jakechorley/camp-quarters/pkg/core/model"
)

// runScored allocates greedily by score: candidates are ordered so people
// likely to cohabit are processed adjacently, then each takes the
// highest-scoring bed among those passing the hard constraints. Ties keep
// the first bed encountered in scan order.
func runScored(candidates []model.Person, state *runState, prefs config.GroupingPreferences, weights config.ScoringWeights, now time.Time) ([]Pairing, []UnallocatedPerson) {
	ordered := orderByGrouping(candidates, prefs)

	var pairings []Pairing
	var unallocated []UnallocatedPerson

	for _, person := range ordered {
		var reasons []Rejection
		var best *scoredBed

		for i := range state.beds {
			bed := &state.beds[i]
			if state.usedBeds[bed.Bed.ID] {
				continue
			}

			if rejections := CheckBed(&person, bed, state.ledger, now); len(rejections) > 0 {
				reasons = append(reasons, rejections...)
				continue
			}

			if prefs.StrictNationality {
				if rejection := CheckStrictNationality(&person, bed, state.ledger); rejection != nil {
					reasons = append(reasons, *rejection)
					continue
				}
			}

			score := ScoreBed(&person, bed, state.ledger, prefs, weights)
			if best == nil || score > best.score {
				best = &scoredBed{index: i, score: score}
			}
		}

		if best == nil {
			unallocated = append(unallocated, UnallocatedPerson{
				Person:  person,
				Reasons: rejectionsOrNoBeds(reasons),
			})
			continue
		}

		bed := &state.beds[best.index]
		state.usedBeds[bed.Bed.ID] = true
		state.ledger.Record(bed.Room.ID, person)
		pairings = append(pairings, Pairing{
			Person:      person,
			Bed:         bed.Bed,
			Room:        bed.Room,
			Floor:       bed.Floor,
			IsTemporary: bed.IsTemporary,
			LeaveID:     bed.LeaveID,
			Score:       best.score,
		})
	}

	return pairings, unallocated
}

type scoredBed struct {
	index int
	score float64
}

// orderByGrouping sorts candidates by the enabled grouping attributes in
// fixed priority (nationality, state, language, trade, shift) so likely
// roommates are processed back to back, with arrival time and ID as final
// keys for determinism. The ordering only affects which groups get first
// pick of desirable rooms.
func orderByGrouping(candidates []model.Person, prefs config.GroupingPreferences) []model.Person {
	ordered := make([]model.Person, len(candidates))
	copy(ordered, candidates)

	keyOf := func(p model.Person) string {
		var parts []string
		if prefs.GroupByNationality {
			parts = append(parts, p.Nationality)
		}
		if prefs.GroupByHomeState {
			parts = append(parts, p.HomeState)
		}
		if prefs.GroupByLanguage {
			parts = append(parts, strings.Join(p.Languages, ","))
		}
		if prefs.GroupByTrade {
			parts = append(parts, p.Trade)
		}
		if prefs.GroupByShift {
			parts = append(parts, string(p.Shift))
		}
		return strings.Join(parts, "|")
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		keyI, keyJ := keyOf(ordered[i]), keyOf(ordered[j])
		if keyI != keyJ {
			return keyI < keyJ
		}
		if !ordered[i].ArrivalAt.Equal(ordered[j].ArrivalAt) {
			return ordered[i].ArrivalAt.Before(ordered[j].ArrivalAt)
		}
		return ordered[i].ID < ordered[j].ID
	})

	return ordered
}
