package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/camp-quarters/pkg/core/model"
	"github.com/jakechorley/camp-quarters/pkg/db"
)

// OccupyBed transitions an available bed to occupied and sets the occupant
// reference for the person's type. The update is conditional on the bed still
// being available: a bed taken by a concurrent run since the snapshot returns
// ErrBedStateChanged instead of overwriting.
func (s *Store) OccupyBed(ctx context.Context, bedID, personID string, personType model.PersonType) error {
	column := "worker_id"
	if personType == model.PersonTypeExternalStaff {
		column = "external_staff_id"
	}

	tag, err := s.pool.Exec(ctx, fmt.Sprintf(`
		UPDATE bed
		SET status = 'occupied', %s = $2
		WHERE id = $1 AND status = 'available'
	`, column), bedID, personID)
	if err != nil {
		return fmt.Errorf("failed to occupy bed %s: %w", bedID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bed %s: %w", bedID, db.ErrBedStateChanged)
	}
	return nil
}

// SetBedTemporaryOccupant fills a reserved bed for the duration of its
// holder's leave. The bed stays reserved; only the temporary occupant slot is
// written, conditional on the bed still being reserved and unfilled.
func (s *Store) SetBedTemporaryOccupant(ctx context.Context, bedID, personID string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE bed
		SET temporary_occupant = $2
		WHERE id = $1 AND status = 'reserved' AND temporary_occupant IS NULL
	`, bedID, personID)
	if err != nil {
		return fmt.Errorf("failed to set temporary occupant on bed %s: %w", bedID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bed %s: %w", bedID, db.ErrBedStateChanged)
	}
	return nil
}
