package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/camp-quarters/internal/config"
	"github.com/jakechorley/camp-quarters/pkg/core/allocator"
	"github.com/jakechorley/camp-quarters/pkg/core/inventory"
	"github.com/jakechorley/camp-quarters/pkg/core/model"
	"github.com/jakechorley/camp-quarters/pkg/db"
)

// InventoryStore defines the reads needed to build an allocation snapshot
type InventoryStore interface {
	GetCamp(ctx context.Context, campID string) (*db.Camp, error)
	GetFloors(ctx context.Context, campID string) ([]db.Floor, error)
	GetRooms(ctx context.Context, campID string) ([]db.Room, error)
	GetBeds(ctx context.Context, campID string) ([]db.Bed, error)
	GetPersonnel(ctx context.Context, ids []string) ([]db.Person, error)
	GetApprovedLeaves(ctx context.Context) ([]db.LeaveRequest, error)
	GetActiveTransfers(ctx context.Context) ([]db.TransferRequest, error)
}

// AllocateBedsStore defines the database operations needed for a direct
// allocation run
type AllocateBedsStore interface {
	InventoryStore
	CommitStore
}

// AllocateBedsResult contains the allocation and commit results
type AllocateBedsResult struct {
	Camp    model.Camp
	Outcome *allocator.Outcome
	Commit  *CommitResult // nil when dry-run
	DryRun  bool
}

// AllocateBeds runs a direct-mode allocation for a camp: candidates are
// assigned beds and, unless dryRun is set, the proposal is committed straight
// to the bed and person records.
func AllocateBeds(
	ctx context.Context,
	store AllocateBedsStore,
	cfg *config.Config,
	logger *zap.Logger,
	campID string,
	candidateIDs []string,
	dryRun bool,
) (*AllocateBedsResult, error) {
	logger.Debug("Starting allocateBeds",
		zap.String("camp_id", campID),
		zap.Int("candidates", len(candidateIDs)),
		zap.Bool("dry_run", dryRun))

	if len(candidateIDs) == 0 {
		return nil, fmt.Errorf("no candidates supplied")
	}

	// Step 1: Resolve target camp
	campRecord, err := store.GetCamp(ctx, campID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch camp: %w", err)
	}
	camp := campRecord.ToModel()
	logger.Debug("Target camp", zap.String("id", camp.ID), zap.String("type", string(camp.Type)))

	// Step 2: Resolve candidates
	candidates, err := fetchCandidates(ctx, store, candidateIDs)
	if err != nil {
		return nil, err
	}
	logger.Debug("Resolved candidates", zap.Int("count", len(candidates)))

	// Step 3: Conflict gate - reject the batch before anything else if a
	// candidate is already claimed by an active transfer
	transfers, err := store.GetActiveTransfers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active transfers: %w", err)
	}
	if err := allocator.DetectConflicts(candidates, toModelTransfers(transfers), ""); err != nil {
		return nil, err
	}

	// Step 4: Build the inventory snapshot
	snapshot, err := buildSnapshot(ctx, store, cfg, camp, time.Now())
	if err != nil {
		return nil, err
	}
	logger.Debug("Inventory snapshot built",
		zap.Int("eligible_beds", len(snapshot.Beds)),
		zap.Int("occupied_rooms", len(snapshot.Occupants)))

	// Step 5: Run the allocation
	outcome, err := allocator.Run(allocator.AllocationRequest{
		Camp:        camp,
		Candidates:  candidates,
		Preferences: cfg.Preferences,
		Weights:     cfg.EffectiveWeights(),
		Mode:        allocator.ModeDirect,
	}, snapshot)
	if err != nil {
		return nil, fmt.Errorf("allocation run failed: %w", err)
	}

	if outcome.CapacityShortfall > 0 {
		logger.Warn("Not enough eligible beds for all candidates",
			zap.Int("shortfall", outcome.CapacityShortfall))
	}
	logger.Info("Allocation run complete",
		zap.String("strategy", string(outcome.Strategy)),
		zap.Int("allocated", outcome.AllocatedCount()),
		zap.Int("unallocated", len(outcome.Unallocated)))

	result := &AllocateBedsResult{
		Camp:    camp,
		Outcome: outcome,
		DryRun:  dryRun,
	}

	if dryRun {
		logger.Info("Dry run - proposal not committed")
		return result, nil
	}

	// Step 6: Commit the proposal
	result.Commit = CommitProposal(ctx, store, logger, outcome.Proposal)
	logger.Info("Proposal committed",
		zap.Int("applied", result.Commit.Applied),
		zap.Int("failed", result.Commit.Failed))

	return result, nil
}

// fetchCandidates resolves candidate IDs to personnel records, failing if any
// are missing so a typo cannot silently shrink the batch.
func fetchCandidates(ctx context.Context, store InventoryStore, candidateIDs []string) ([]model.Person, error) {
	records, err := store.GetPersonnel(ctx, candidateIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidates: %w", err)
	}

	found := make(map[string]bool, len(records))
	candidates := make([]model.Person, 0, len(records))
	for _, record := range records {
		candidates = append(candidates, record.ToModel())
		found[record.ID] = true
	}

	for _, id := range candidateIDs {
		if !found[id] {
			return nil, fmt.Errorf("candidate %s: %w", id, db.ErrNotFound)
		}
	}

	return candidates, nil
}

// buildSnapshot fetches a camp's inventory and assembles the allocatable-bed
// view, enriching current occupants with their personnel records.
func buildSnapshot(ctx context.Context, store InventoryStore, cfg *config.Config, camp model.Camp, now time.Time) (*inventory.Snapshot, error) {
	floors, err := store.GetFloors(ctx, camp.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch floors: %w", err)
	}
	rooms, err := store.GetRooms(ctx, camp.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rooms: %w", err)
	}
	beds, err := store.GetBeds(ctx, camp.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch beds: %w", err)
	}
	leaves, err := store.GetApprovedLeaves(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leave requests: %w", err)
	}

	modelBeds := make([]model.Bed, 0, len(beds))
	occupantIDs := make([]string, 0, len(beds))
	for _, bed := range beds {
		modelBed := bed.ToModel()
		if occupantID, held := modelBed.OccupantID(); held {
			occupantIDs = append(occupantIDs, occupantID)
		}
		modelBeds = append(modelBeds, modelBed)
	}

	personnel := make(map[string]model.Person)
	if len(occupantIDs) > 0 {
		occupantRecords, err := store.GetPersonnel(ctx, occupantIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch occupant personnel: %w", err)
		}
		for _, record := range occupantRecords {
			personnel[record.ID] = record.ToModel()
		}
	}

	modelFloors := make([]model.Floor, 0, len(floors))
	for _, floor := range floors {
		modelFloors = append(modelFloors, floor.ToModel())
	}
	modelRooms := make([]model.Room, 0, len(rooms))
	for _, room := range rooms {
		modelRooms = append(modelRooms, room.ToModel())
	}
	modelLeaves := make([]model.LeaveRequest, 0, len(leaves))
	for _, leave := range leaves {
		modelLeaves = append(modelLeaves, leave.ToModel())
	}

	return inventory.BuildSnapshot(inventory.BuildInput{
		Camp:               camp,
		Floors:             modelFloors,
		Rooms:              modelRooms,
		Beds:               modelBeds,
		Leaves:             modelLeaves,
		Personnel:          personnel,
		MaintenanceWindows: cfg.MaintenanceWindows,
		Now:                now,
	})
}

func toModelTransfers(records []db.TransferRequest) []model.TransferRequest {
	transfers := make([]model.TransferRequest, 0, len(records))
	for _, record := range records {
		transfers = append(transfers, record.ToModel())
	}
	return transfers
}
