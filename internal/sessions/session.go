package sessions

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownMuscle   = errors.New("unknown muscle group code")
	ErrDuplicateIndex  = errors.New("duplicate exercise or set index")
	ErrInvalidSession  = errors.New("invalid session")
)

type Session struct {
	ID           uuid.UUID  `json:"id"`
	UploadID     *uuid.UUID `json:"upload_id,omitempty"`
	Date         string     `json:"date"`
	CaloriesKcal *int       `json:"calories_kcal,omitempty"`
	DurationMin  *int       `json:"duration_min,omitempty"`
	VolumeKg     *int       `json:"volume_kg,omitempty"`
	Exercises    []Exercise `json:"exercises"`
	CreatedAt    time.Time  `json:"created_at"`
}

type Exercise struct {
	ID         uuid.UUID     `json:"id"`
	RawName    string        `json:"raw_name"`
	OrderIndex int           `json:"order_index"`
	Sets       []Set         `json:"sets"`
	Muscles    []MuscleShare `json:"muscles,omitempty"`
}

type Set struct {
	ID       uuid.UUID `json:"id"`
	SetIndex int       `json:"set_index"`
	// WeightKg is nil for bodyweight sets.
	WeightKg *float64 `json:"weight_kg"`
	Reps     int      `json:"reps"`
}

// MuscleShare is a direct mapping given at ingestion, by muscle code.
type MuscleShare struct {
	Code   string  `json:"code"`
	Weight float64 `json:"weight"`
}

type ListResponse struct {
	Sessions []Session `json:"sessions"`
	Total    int       `json:"total"`
}

type DeleteSessionResponse struct {
	DeletedID uuid.UUID `json:"deletedId"`
}
