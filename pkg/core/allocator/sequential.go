package allocator

import (
	"sort"
	"time"

	"github.com/jakechorley/camp-quarters/pkg/core/model"
)

// runSequential allocates first-come-first-served: candidates in arrival
// order each take the first bed, in physical (floor, room, bed) order, that
// passes the hard constraints. No scoring, no backtracking.
func runSequential(candidates []model.Person, state *runState, now time.Time) ([]Pairing, []UnallocatedPerson) {
	ordered := make([]model.Person, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].ArrivalAt.Equal(ordered[j].ArrivalAt) {
			return ordered[i].ArrivalAt.Before(ordered[j].ArrivalAt)
		}
		return ordered[i].ID < ordered[j].ID
	})

	var pairings []Pairing
	var unallocated []UnallocatedPerson

	for _, person := range ordered {
		var reasons []Rejection
		assigned := false

		for i := range state.beds {
			bed := &state.beds[i]
			if state.usedBeds[bed.Bed.ID] {
				continue
			}

			if rejections := CheckBed(&person, bed, state.ledger, now); len(rejections) > 0 {
				reasons = append(reasons, rejections...)
				continue
			}

			// First passing bed wins, stop scanning
			state.usedBeds[bed.Bed.ID] = true
			state.ledger.Record(bed.Room.ID, person)
			pairings = append(pairings, Pairing{
				Person:      person,
				Bed:         bed.Bed,
				Room:        bed.Room,
				Floor:       bed.Floor,
				IsTemporary: bed.IsTemporary,
				LeaveID:     bed.LeaveID,
			})
			assigned = true
			break
		}

		if !assigned {
			unallocated = append(unallocated, UnallocatedPerson{
				Person:  person,
				Reasons: rejectionsOrNoBeds(reasons),
			})
		}
	}

	return pairings, unallocated
}

// rejectionsOrNoBeds deduplicates collected reasons, substituting a no-beds
// marker when the scan never reached a single candidate bed.
func rejectionsOrNoBeds(reasons []Rejection) []Rejection {
	if len(reasons) == 0 {
		return []Rejection{{Code: RejectionNoBeds, Message: "no eligible beds remained"}}
	}
	return dedupeRejections(reasons)
}
