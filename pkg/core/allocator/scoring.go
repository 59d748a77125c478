package allocator

import (
	"github.com/jakechorley/camp-quarters/internal/config"
	"github.com/jakechorley/camp-quarters/pkg/core/inventory"
	"github.com/jakechorley/camp-quarters/pkg/core/model"
)

// ScoreBed computes the desirability of a bed that already passed the hard
// constraints. Cohesion bonuses are awarded only on full agreement between
// the candidate and every current occupant of the room, existing or
// tentative. An empty room scores a flat baseline so occupied rooms win only
// when something actually matches.
func ScoreBed(person *model.Person, bed *inventory.BedContext, ledger *RoomOccupancyLedger, prefs config.GroupingPreferences, weights config.ScoringWeights) float64 {
	occupants := ledger.Occupants(bed.Room.ID)
	if len(occupants) == 0 {
		return weights.EmptyRoom
	}

	score := 0.0

	if allMatch(occupants, func(o inventory.Occupant) bool { return o.Nationality == person.Nationality }) {
		score += weights.Nationality
	}

	if prefs.GroupByHomeState && person.HomeState != "" &&
		allMatch(occupants, func(o inventory.Occupant) bool { return o.HomeState == person.HomeState }) {
		score += weights.HomeState
	}

	if prefs.GroupByLanguage && hasCommonLanguage(person, occupants) {
		score += weights.Language
	}

	// Trade and shift cohesion only apply between workers
	if person.Type == model.PersonTypeWorker {
		if prefs.GroupByTrade && person.Trade != "" &&
			allMatch(occupants, func(o inventory.Occupant) bool {
				return o.Type == model.PersonTypeWorker && o.Trade == person.Trade
			}) {
			score += weights.Trade
		}

		if prefs.GroupByShift &&
			allMatch(occupants, func(o inventory.Occupant) bool {
				return o.Type == model.PersonTypeWorker && o.Shift == person.Shift
			}) {
			score += weights.Shift
		}
	}

	// Fuller rooms are preferred, proportional to current occupancy
	if bed.Room.Capacity > 0 {
		utilization := float64(len(occupants)) / float64(bed.Room.Capacity)
		score += utilization * weights.MaxUtilization
	}

	return score
}

func allMatch(occupants []inventory.Occupant, match func(inventory.Occupant) bool) bool {
	for _, occupant := range occupants {
		if !match(occupant) {
			return false
		}
	}
	return true
}

// hasCommonLanguage reports whether some single language is spoken by the
// candidate and every occupant of the room.
func hasCommonLanguage(person *model.Person, occupants []inventory.Occupant) bool {
	for _, language := range person.Languages {
		shared := true
		for _, occupant := range occupants {
			if !speaks(occupant, language) {
				shared = false
				break
			}
		}
		if shared {
			return true
		}
	}
	return false
}

func speaks(occupant inventory.Occupant, language string) bool {
	for _, spoken := range occupant.Languages {
		if spoken == language {
			return true
		}
	}
	return false
}
