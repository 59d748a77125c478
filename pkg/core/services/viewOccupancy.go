package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/camp-quarters/pkg/core/model"
)

// RoomOccupancyRow summarizes one room for operational display
type RoomOccupancyRow struct {
	FloorNumber  int
	RoomNumber   string
	Capacity     int
	Occupied     int
	Reserved     int
	OccupantType model.OccupantType
	Occupants    []string // Display names
}

// ViewOccupancyResult contains the per-room occupancy summary for a camp
type ViewOccupancyResult struct {
	Camp  model.Camp
	Rooms []RoomOccupancyRow

	TotalBeds     int
	OccupiedBeds  int
	ReservedBeds  int
	AvailableBeds int
}

// ViewOccupancy builds a per-room occupancy summary for a camp.
func ViewOccupancy(ctx context.Context, store InventoryStore, logger *zap.Logger, campID string) (*ViewOccupancyResult, error) {
	logger.Debug("Starting viewOccupancy", zap.String("camp_id", campID))

	campRecord, err := store.GetCamp(ctx, campID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch camp: %w", err)
	}

	floors, err := store.GetFloors(ctx, campID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch floors: %w", err)
	}
	rooms, err := store.GetRooms(ctx, campID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rooms: %w", err)
	}
	beds, err := store.GetBeds(ctx, campID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch beds: %w", err)
	}

	floorNumbers := make(map[string]int, len(floors))
	for _, floor := range floors {
		floorNumbers[floor.ID] = floor.Number
	}

	// Resolve occupant display names
	var occupantIDs []string
	for _, bed := range beds {
		bedModel := bed.ToModel()
		if occupantID, held := bedModel.OccupantID(); held {
			occupantIDs = append(occupantIDs, occupantID)
		}
	}
	names := make(map[string]string)
	if len(occupantIDs) > 0 {
		personnel, err := store.GetPersonnel(ctx, occupantIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch occupant personnel: %w", err)
		}
		for _, person := range personnel {
			names[person.ID] = strings.TrimSpace(person.FirstName + " " + person.LastName)
		}
	}

	result := &ViewOccupancyResult{Camp: campRecord.ToModel()}

	rowsByRoom := make(map[string]*RoomOccupancyRow, len(rooms))
	for _, room := range rooms {
		rowsByRoom[room.ID] = &RoomOccupancyRow{
			FloorNumber:  floorNumbers[room.FloorID],
			RoomNumber:   room.Number,
			Capacity:     room.Capacity,
			OccupantType: model.OccupantType(room.OccupantType),
		}
	}

	for _, bedRecord := range beds {
		bed := bedRecord.ToModel()
		row, ok := rowsByRoom[bed.RoomID]
		if !ok {
			continue
		}
		result.TotalBeds++

		switch bed.Status {
		case model.BedStatusOccupied:
			result.OccupiedBeds++
			row.Occupied++
		case model.BedStatusReserved:
			result.ReservedBeds++
			row.Reserved++
		case model.BedStatusAvailable:
			result.AvailableBeds++
		}

		if occupantID, held := bed.OccupantID(); held {
			name := names[occupantID]
			if name == "" {
				name = occupantID
			}
			row.Occupants = append(row.Occupants, name)
		}
	}

	result.Rooms = make([]RoomOccupancyRow, 0, len(rowsByRoom))
	for _, row := range rowsByRoom {
		result.Rooms = append(result.Rooms, *row)
	}
	sort.Slice(result.Rooms, func(i, j int) bool {
		if result.Rooms[i].FloorNumber != result.Rooms[j].FloorNumber {
			return result.Rooms[i].FloorNumber < result.Rooms[j].FloorNumber
		}
		return result.Rooms[i].RoomNumber < result.Rooms[j].RoomNumber
	})

	logger.Debug("Occupancy summary built",
		zap.Int("rooms", len(result.Rooms)),
		zap.Int("beds", result.TotalBeds))

	return result, nil
}
