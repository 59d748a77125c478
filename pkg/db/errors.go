package db

import "errors"

// ErrBedStateChanged is returned by conditional bed updates when the bed's
// status no longer matches what the allocation snapshot saw. The pairing
// must be reported as a commit conflict rather than silently overwriting
// someone else's allocation.
var ErrBedStateChanged = errors.New("bed state changed since snapshot")

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")
