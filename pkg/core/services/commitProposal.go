package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/jakechorley/camp-quarters/pkg/core/allocator"
	"github.com/jakechorley/camp-quarters/pkg/core/model"
	"github.com/jakechorley/camp-quarters/pkg/db"
)

// CommitStage identifies which mutation of a pairing failed
type CommitStage string

const (
	CommitStageBed    CommitStage = "bed"
	CommitStageLeave  CommitStage = "leave"
	CommitStagePerson CommitStage = "person"
)

// CommitFailure records one failed pairing with the stage that failed.
// StateConflict distinguishes a bed whose status changed since the snapshot
// from a plain backend error; conflicts need re-allocation, backend errors
// can be retried as-is.
type CommitFailure struct {
	PersonID      string
	BedID         string
	Stage         CommitStage
	StateConflict bool
	Err           error
}

// CommitResult aggregates what a commit run applied and what it could not
type CommitResult struct {
	Applied  int
	Failed   int
	Failures []CommitFailure
}

// CommitStore defines the mutations needed to apply a proposal directly
type CommitStore interface {
	OccupyBed(ctx context.Context, bedID, personID string, personType model.PersonType) error
	SetBedTemporaryOccupant(ctx context.Context, bedID, personID string) error
	SetLeaveTemporaryOccupant(ctx context.Context, leaveID, personID string) error
	UpdatePersonResidence(ctx context.Context, personID, bedID, campID string) error
}

// CommitProposal applies a proposal to the backing store, one pairing at a
// time, each mutation awaited before the next. There is no cross-record
// transaction, so a failure partway through leaves prior mutations applied;
// the loop continues past individually failed pairings and reports them all.
// The caller retries failed pairings individually.
func CommitProposal(ctx context.Context, store CommitStore, logger *zap.Logger, proposal *allocator.Proposal) *CommitResult {
	result := &CommitResult{}

	for _, pairing := range proposal.Pairings {
		if failure := commitPairing(ctx, store, proposal.CampID, pairing); failure != nil {
			logger.Warn("Pairing failed to commit",
				zap.String("person_id", failure.PersonID),
				zap.String("bed_id", failure.BedID),
				zap.String("stage", string(failure.Stage)),
				zap.Bool("state_conflict", failure.StateConflict),
				zap.Error(failure.Err))
			result.Failed++
			result.Failures = append(result.Failures, *failure)
			continue
		}

		logger.Debug("Pairing committed",
			zap.String("person_id", pairing.Person.ID),
			zap.String("bed_id", pairing.Bed.ID),
			zap.Bool("temporary", pairing.IsTemporary))
		result.Applied++
	}

	return result
}

// commitPairing applies one pairing's mutations in order: bed first, then the
// leave annotation for temporary fills, then the person's residence. It stops
// at the first failed stage; anything already written for this pairing stays
// written.
func commitPairing(ctx context.Context, store CommitStore, campID string, pairing allocator.Pairing) *CommitFailure {
	fail := func(stage CommitStage, err error) *CommitFailure {
		return &CommitFailure{
			PersonID:      pairing.Person.ID,
			BedID:         pairing.Bed.ID,
			Stage:         stage,
			StateConflict: errors.Is(err, db.ErrBedStateChanged),
			Err:           err,
		}
	}

	if pairing.IsTemporary {
		if err := store.SetBedTemporaryOccupant(ctx, pairing.Bed.ID, pairing.Person.ID); err != nil {
			return fail(CommitStageBed, err)
		}
		if err := store.SetLeaveTemporaryOccupant(ctx, pairing.LeaveID, pairing.Person.ID); err != nil {
			return fail(CommitStageLeave, err)
		}
	} else {
		if err := store.OccupyBed(ctx, pairing.Bed.ID, pairing.Person.ID, pairing.Person.Type); err != nil {
			return fail(CommitStageBed, err)
		}
	}

	if err := store.UpdatePersonResidence(ctx, pairing.Person.ID, pairing.Bed.ID, campID); err != nil {
		return fail(CommitStagePerson, err)
	}

	return nil
}
