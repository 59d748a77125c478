package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/camp-quarters/internal/config"
	"github.com/jakechorley/camp-quarters/pkg/core/allocator"
	"github.com/jakechorley/camp-quarters/pkg/core/model"
	"github.com/jakechorley/camp-quarters/pkg/db"
)

// AllocateTransferStore defines the database operations needed for a
// transfer-mode allocation run
type AllocateTransferStore interface {
	InventoryStore
	GetTransfer(ctx context.Context, transferID string) (*db.TransferRequest, error)
	AttachTransferProposal(ctx context.Context, transferID string, proposal []byte) error
}

// AllocateTransferResult contains the transfer allocation results
type AllocateTransferResult struct {
	Transfer model.TransferRequest
	Camp     model.Camp
	Outcome  *allocator.Outcome
	Payload  []byte // Serialized proposal, as attached to the request
	DryRun   bool
}

// SerializedProposal is the JSON shape persisted on a transfer request. The
// arrival workflow reads it back to perform the actual bed mutations when
// personnel arrive.
type SerializedProposal struct {
	ProposalID string                      `json:"proposal_id"`
	CampID     string                      `json:"camp_id"`
	CreatedAt  time.Time                   `json:"created_at"`
	Pairings   []SerializedProposalPairing `json:"pairings"`
}

type SerializedProposalPairing struct {
	PersonID    string  `json:"person_id"`
	PersonType  string  `json:"person_type"`
	BedID       string  `json:"bed_id"`
	RoomID      string  `json:"room_id"`
	FloorID     string  `json:"floor_id"`
	IsTemporary bool    `json:"is_temporary"`
	LeaveID     string  `json:"leave_id,omitempty"`
	Score       float64 `json:"score,omitempty"`
}

// AllocateTransfer runs a proposal-mode allocation for a transfer request:
// beds are chosen for the request's personnel in the target camp, and the
// proposal is attached to the request with a transition to beds_allocated.
// No bed or person record is mutated; the arrival workflow applies the
// proposal later.
func AllocateTransfer(
	ctx context.Context,
	store AllocateTransferStore,
	cfg *config.Config,
	logger *zap.Logger,
	transferID string,
	dryRun bool,
) (*AllocateTransferResult, error) {
	logger.Debug("Starting allocateTransfer",
		zap.String("transfer_id", transferID),
		zap.Bool("dry_run", dryRun))

	// Step 1: Resolve the transfer request
	transferRecord, err := store.GetTransfer(ctx, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transfer request: %w", err)
	}
	transfer := transferRecord.ToModel()

	if transfer.Status != model.TransferStatusPendingAllocation {
		return nil, fmt.Errorf("transfer request %s is %s, expected %s",
			transfer.ID, transfer.Status, model.TransferStatusPendingAllocation)
	}
	if len(transfer.PersonnelIDs) == 0 {
		return nil, fmt.Errorf("transfer request %s lists no personnel", transfer.ID)
	}

	// Step 2: Resolve the target camp
	campRecord, err := store.GetCamp(ctx, transfer.TargetCampID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch target camp: %w", err)
	}
	camp := campRecord.ToModel()
	logger.Debug("Target camp", zap.String("id", camp.ID), zap.String("type", string(camp.Type)))

	// Step 3: Resolve candidates
	candidates, err := fetchCandidates(ctx, store, transfer.PersonnelIDs)
	if err != nil {
		return nil, err
	}

	// Step 4: Conflict gate, excluding the request driving this run
	transfers, err := store.GetActiveTransfers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active transfers: %w", err)
	}
	if err := allocator.DetectConflicts(candidates, toModelTransfers(transfers), transfer.ID); err != nil {
		return nil, err
	}

	// Step 5: Snapshot and run
	snapshot, err := buildSnapshot(ctx, store, cfg, camp, time.Now())
	if err != nil {
		return nil, err
	}
	logger.Debug("Inventory snapshot built", zap.Int("eligible_beds", len(snapshot.Beds)))

	outcome, err := allocator.Run(allocator.AllocationRequest{
		Camp:        camp,
		Candidates:  candidates,
		Preferences: cfg.Preferences,
		Weights:     cfg.EffectiveWeights(),
		Mode:        allocator.ModeTransfer,
		TransferID:  transfer.ID,
	}, snapshot)
	if err != nil {
		return nil, fmt.Errorf("allocation run failed: %w", err)
	}

	if outcome.CapacityShortfall > 0 {
		logger.Warn("Not enough eligible beds for all transfer personnel",
			zap.Int("shortfall", outcome.CapacityShortfall))
	}
	logger.Info("Allocation run complete",
		zap.String("strategy", string(outcome.Strategy)),
		zap.Int("allocated", outcome.AllocatedCount()),
		zap.Int("unallocated", len(outcome.Unallocated)))

	payload, err := json.Marshal(serializeProposal(outcome.Proposal))
	if err != nil {
		return nil, fmt.Errorf("failed to serialize proposal: %w", err)
	}

	result := &AllocateTransferResult{
		Transfer: transfer,
		Camp:     camp,
		Outcome:  outcome,
		Payload:  payload,
		DryRun:   dryRun,
	}

	if dryRun {
		logger.Info("Dry run - proposal not attached")
		return result, nil
	}

	// Step 6: Attach the proposal and transition the request
	if err := store.AttachTransferProposal(ctx, transfer.ID, payload); err != nil {
		return nil, fmt.Errorf("failed to attach proposal: %w", err)
	}
	logger.Info("Proposal attached to transfer request",
		zap.String("transfer_id", transfer.ID),
		zap.String("status", string(model.TransferStatusBedsAllocated)))

	return result, nil
}

func serializeProposal(proposal *allocator.Proposal) SerializedProposal {
	serialized := SerializedProposal{
		ProposalID: proposal.ID,
		CampID:     proposal.CampID,
		CreatedAt:  proposal.CreatedAt,
		Pairings:   make([]SerializedProposalPairing, 0, len(proposal.Pairings)),
	}
	for _, pairing := range proposal.Pairings {
		serialized.Pairings = append(serialized.Pairings, SerializedProposalPairing{
			PersonID:    pairing.Person.ID,
			PersonType:  string(pairing.Person.Type),
			BedID:       pairing.Bed.ID,
			RoomID:      pairing.Room.ID,
			FloorID:     pairing.Floor.ID,
			IsTemporary: pairing.IsTemporary,
			LeaveID:     pairing.LeaveID,
			Score:       pairing.Score,
		})
	}
	return serialized
}
