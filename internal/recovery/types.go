package recovery

import (
	"time"

	"github.com/google/uuid"
)

// MuscleGroup is reference data, seeded once.
type MuscleGroup struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name"`
}

type Session struct {
	ID       uuid.UUID
	UploadID *uuid.UUID
	// Date has no time of day, stored as midnight UTC.
	Date   time.Time
	IsSeed bool
}

type Exercise struct {
	ID         uuid.UUID
	SessionID  uuid.UUID
	RawName    string
	OrderIndex int
}

type ExerciseSet struct {
	ID         uuid.UUID
	ExerciseID uuid.UUID
	SetIndex   int
	// Weight is nil for bodyweight or unspecified load.
	Weight *float64
	Reps   int
}

// MappingRow is a direct exercise -> muscle mapping joined with the exercise raw name.
type MappingRow struct {
	ExerciseID uuid.UUID
	MuscleID   uuid.UUID
	Weight     float64
	RawName    string
}

type MuscleWeight struct {
	MuscleID uuid.UUID
	Weight   float64
}
