package allocator

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jakechorley/camp-quarters/pkg/core/inventory"
)

// Run executes one allocation run over the snapshot. The strategy follows the
// camp type: induction, exit, and project camps fill first-come-first-served
// in physical bed order; regular camps use cohesion scoring.
//
// The run is sequential per person: every assignment updates the room
// occupancy ledger before the next candidate is considered, so room type and
// nationality exclusivity hold across the whole proposal. Every candidate
// ends up in exactly one of the proposal or the unallocated list, and the
// result is deterministic for identical input.
func Run(req AllocationRequest, snapshot *inventory.Snapshot) (*Outcome, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("allocation requires an inventory snapshot")
	}
	if snapshot.CampID != req.Camp.ID {
		return nil, fmt.Errorf("snapshot is for camp %s but request targets camp %s", snapshot.CampID, req.Camp.ID)
	}

	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	state := newRunState(snapshot)

	outcome := &Outcome{}
	if shortfall := len(req.Candidates) - len(snapshot.Beds); shortfall > 0 {
		outcome.CapacityShortfall = shortfall
	}

	var pairings []Pairing
	var unallocated []UnallocatedPerson

	if req.Camp.Type.UsesSequentialAllocation() {
		outcome.Strategy = StrategySequential
		pairings, unallocated = runSequential(req.Candidates, state, now)
	} else {
		outcome.Strategy = StrategyScored
		pairings, unallocated = runScored(req.Candidates, state, req.Preferences, req.Weights, now)
	}

	outcome.Proposal = &Proposal{
		ID:        uuid.NewString(),
		CampID:    req.Camp.ID,
		Mode:      req.Mode,
		CreatedAt: now,
		Pairings:  pairings,
	}
	outcome.Unallocated = unallocated

	return outcome, nil
}
