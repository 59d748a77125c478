package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/camp-quarters/pkg/db"
)

// GetCamp retrieves a single camp record
func (s *Store) GetCamp(ctx context.Context, campID string) (*db.Camp, error) {
	var camp db.Camp
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, camp_type
		FROM camp
		WHERE id = $1
	`, campID).Scan(&camp.ID, &camp.Name, &camp.Type)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("camp %s: %w", campID, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query camp: %w", err)
	}
	return &camp, nil
}

// GetFloors retrieves all floors for a camp
func (s *Store) GetFloors(ctx context.Context, campID string) ([]db.Floor, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, camp_id, floor_number
		FROM floor
		WHERE camp_id = $1
	`, campID)
	if err != nil {
		return nil, fmt.Errorf("failed to query floors: %w", err)
	}
	defer rows.Close()

	var floors []db.Floor
	for rows.Next() {
		var floor db.Floor
		if err := rows.Scan(&floor.ID, &floor.CampID, &floor.Number); err != nil {
			return nil, fmt.Errorf("failed to scan floor: %w", err)
		}
		floors = append(floors, floor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating floors: %w", err)
	}

	return floors, nil
}

// GetRooms retrieves all rooms for a camp
func (s *Store) GetRooms(ctx context.Context, campID string) ([]db.Room, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.id, r.floor_id, r.room_number, r.capacity, r.occupant_type, r.gender_restriction
		FROM room r
		JOIN floor f ON f.id = r.floor_id
		WHERE f.camp_id = $1
	`, campID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	var rooms []db.Room
	for rows.Next() {
		var room db.Room
		if err := rows.Scan(&room.ID, &room.FloorID, &room.Number, &room.Capacity,
			&room.OccupantType, &room.GenderRestriction); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rooms: %w", err)
	}

	return rooms, nil
}

// GetBeds retrieves all beds for a camp
func (s *Store) GetBeds(ctx context.Context, campID string) ([]db.Bed, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT b.id, b.room_id, b.bed_number, b.is_lower_berth, b.status,
		       b.worker_id, b.external_staff_id, b.reserved_for, b.temporary_occupant
		FROM bed b
		JOIN room r ON r.id = b.room_id
		JOIN floor f ON f.id = r.floor_id
		WHERE f.camp_id = $1
	`, campID)
	if err != nil {
		return nil, fmt.Errorf("failed to query beds: %w", err)
	}
	defer rows.Close()

	var beds []db.Bed
	for rows.Next() {
		var bed db.Bed
		if err := rows.Scan(&bed.ID, &bed.RoomID, &bed.Number, &bed.IsLowerBerth, &bed.Status,
			&bed.WorkerID, &bed.ExternalStaffID, &bed.ReservedFor, &bed.TemporaryOccupant); err != nil {
			return nil, fmt.Errorf("failed to scan bed: %w", err)
		}
		beds = append(beds, bed)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating beds: %w", err)
	}

	return beds, nil
}
