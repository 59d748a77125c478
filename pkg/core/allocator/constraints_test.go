package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/camp-quarters/pkg/core/model"
)

func emptyLedger() *RoomOccupancyLedger {
	return NewRoomOccupancyLedger(makeSnapshot())
}

func TestCheckBed_StaffRoomNeverEligible(t *testing.T) {
	person := makePerson("p1")
	bed := makeBed(1, "101", "1", roomType(model.OccupantTypeStaffOnly))

	rejections := CheckBed(&person, &bed, emptyLedger(), testNow)

	require.Len(t, rejections, 1)
	assert.Equal(t, RejectionOccupantType, rejections[0].Code)
	assert.Equal(t, "101", rejections[0].RoomNumber)
}

func TestCheckBed_TechnicianOnlyRejectsExternalStaff(t *testing.T) {
	person := makePerson("p1", external())
	bed := makeBed(1, "101", "1", roomType(model.OccupantTypeTechnicianOnly))

	rejections := CheckBed(&person, &bed, emptyLedger(), testNow)

	require.Len(t, rejections, 1)
	assert.Equal(t, RejectionOccupantType, rejections[0].Code)
	assert.Contains(t, rejections[0].Message, "technician-only")
}

func TestCheckBed_ExternalOnlyRejectsWorker(t *testing.T) {
	person := makePerson("p1")
	bed := makeBed(1, "101", "1", roomType(model.OccupantTypeExternalOnly))

	rejections := CheckBed(&person, &bed, emptyLedger(), testNow)

	require.Len(t, rejections, 1)
	assert.Equal(t, RejectionOccupantType, rejections[0].Code)
}

func TestCheckBed_MixedRoomLockedToOccupantType(t *testing.T) {
	worker := makePerson("w1")
	externalStaff := makePerson("e1", external())
	bed := makeBed(1, "101", "2")

	// Worker already holds a bed in the room
	snapshot := withOccupant(makeSnapshot(), bed.Room.ID, worker)
	ledger := NewRoomOccupancyLedger(snapshot)

	rejections := CheckBed(&externalStaff, &bed, ledger, testNow)
	require.Len(t, rejections, 1)
	assert.Equal(t, RejectionOccupantType, rejections[0].Code)

	// Same type is fine
	otherWorker := makePerson("w2")
	assert.Empty(t, CheckBed(&otherWorker, &bed, ledger, testNow))
}

func TestCheckBed_MixedRoomLockedByTentativeAssignment(t *testing.T) {
	bed := makeBed(1, "101", "2")
	ledger := emptyLedger()

	// Tentative assignment earlier in the run establishes the type
	ledger.Record(bed.Room.ID, makePerson("e1", external()))

	worker := makePerson("w1")
	rejections := CheckBed(&worker, &bed, ledger, testNow)

	require.Len(t, rejections, 1)
	assert.Equal(t, RejectionOccupantType, rejections[0].Code)
}

func TestCheckBed_GenderRestriction(t *testing.T) {
	woman := makePerson("p1", female())
	maleRoom := makeBed(1, "101", "1", roomGender(model.GenderRestrictionMale))

	rejections := CheckBed(&woman, &maleRoom, emptyLedger(), testNow)
	require.Len(t, rejections, 1)
	assert.Equal(t, RejectionGender, rejections[0].Code)

	femaleRoom := makeBed(1, "102", "1", roomGender(model.GenderRestrictionFemale))
	assert.Empty(t, CheckBed(&woman, &femaleRoom, emptyLedger(), testNow))

	mixedRoom := makeBed(1, "103", "1", roomGender(model.GenderRestrictionMixed))
	assert.Empty(t, CheckBed(&woman, &mixedRoom, emptyLedger(), testNow))
}

func TestCheckBed_OlderPersonRequiresLowerBerth(t *testing.T) {
	// 50 years old at testNow
	older := makePerson("p1", bornIn(1975))
	upper := makeBed(1, "101", "2", upperBerth())

	rejections := CheckBed(&older, &upper, emptyLedger(), testNow)
	require.Len(t, rejections, 1)
	assert.Equal(t, RejectionLowerBerth, rejections[0].Code)

	lower := makeBed(1, "101", "1")
	assert.Empty(t, CheckBed(&older, &lower, emptyLedger(), testNow))
}

func TestCheckBed_YoungerPersonMayTakeUpperBerth(t *testing.T) {
	younger := makePerson("p1", bornIn(1995))
	upper := makeBed(1, "101", "2", upperBerth())

	assert.Empty(t, CheckBed(&younger, &upper, emptyLedger(), testNow))
}

func TestCheckBed_UnknownAgeMayTakeUpperBerth(t *testing.T) {
	person := makePerson("p1") // No date of birth
	upper := makeBed(1, "101", "2", upperBerth())

	assert.Empty(t, CheckBed(&person, &upper, emptyLedger(), testNow))
}

func TestCheckBed_MultipleViolationsAllReported(t *testing.T) {
	older := makePerson("p1", female(), bornIn(1970))
	bed := makeBed(1, "101", "2", upperBerth(), roomGender(model.GenderRestrictionMale))

	rejections := CheckBed(&older, &bed, emptyLedger(), testNow)

	require.Len(t, rejections, 2)
	codes := []RejectionCode{rejections[0].Code, rejections[1].Code}
	assert.Contains(t, codes, RejectionGender)
	assert.Contains(t, codes, RejectionLowerBerth)
}

func TestCheckStrictNationality_RejectsDifferentNationality(t *testing.T) {
	bed := makeBed(1, "101", "2")
	snapshot := withOccupant(makeSnapshot(), bed.Room.ID, makePerson("o1", nationality("India")))
	ledger := NewRoomOccupancyLedger(snapshot)

	pakistani := makePerson("p1", nationality("Pakistan"))
	rejection := CheckStrictNationality(&pakistani, &bed, ledger)

	require.NotNil(t, rejection)
	assert.Equal(t, RejectionNationality, rejection.Code)

	indian := makePerson("p2", nationality("India"))
	assert.Nil(t, CheckStrictNationality(&indian, &bed, ledger))
}

func TestCheckStrictNationality_EmptyRoomAlwaysPasses(t *testing.T) {
	bed := makeBed(1, "101", "1")
	person := makePerson("p1", nationality("Nepal"))

	assert.Nil(t, CheckStrictNationality(&person, &bed, emptyLedger()))
}
