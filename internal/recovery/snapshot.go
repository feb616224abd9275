package recovery

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Snapshot is the in-memory view of one computation: the rows fetched from the
// store plus the lookup indexes built over them. It is never shared between calls.
type Snapshot struct {
	Muscles   []MuscleGroup
	Exercises []Exercise

	muscleByID       map[uuid.UUID]MuscleGroup
	sessionDateByID  map[uuid.UUID]time.Time
	volumeByExercise map[uuid.UUID]float64
	directByExercise map[uuid.UUID][]MuscleWeight
	fallbackByName   map[string]*fallbackMapping
}

// fallbackMapping keeps muscle -> max(weight) in first-seen muscle order.
type fallbackMapping struct {
	order  []uuid.UUID
	weight map[uuid.UUID]float64
}

func (f *fallbackMapping) observe(muscleID uuid.UUID, weight float64) {
	prev, ok := f.weight[muscleID]
	if !ok {
		f.order = append(f.order, muscleID)
		f.weight[muscleID] = weight
		return
	}
	if weight > prev {
		f.weight[muscleID] = weight
	}
}

func (f *fallbackMapping) list() []MuscleWeight {
	mappings := make([]MuscleWeight, 0, len(f.order))
	for _, muscleID := range f.order {
		mappings = append(mappings, MuscleWeight{MuscleID: muscleID, Weight: f.weight[muscleID]})
	}
	return mappings
}

// NewSnapshot builds the indexes. Sessions flagged as seed (or dated at the seed
// sentinel) are dropped here as well, so their exercises never get a session date.
func NewSnapshot(
	muscles []MuscleGroup,
	sessions []Session,
	exercises []Exercise,
	sets []ExerciseSet,
	mappings []MappingRow,
) *Snapshot {
	s := &Snapshot{
		Muscles:          muscles,
		muscleByID:       make(map[uuid.UUID]MuscleGroup, len(muscles)),
		sessionDateByID:  make(map[uuid.UUID]time.Time, len(sessions)),
		volumeByExercise: make(map[uuid.UUID]float64, len(exercises)),
		directByExercise: make(map[uuid.UUID][]MuscleWeight),
		fallbackByName:   make(map[string]*fallbackMapping),
	}

	for _, m := range muscles {
		s.muscleByID[m.ID] = m
	}

	for _, session := range sessions {
		if IsSeedSession(session) {
			continue
		}
		s.sessionDateByID[session.ID] = truncateToDate(session.Date)
	}

	for _, ex := range exercises {
		if _, ok := s.sessionDateByID[ex.SessionID]; !ok {
			continue
		}
		s.Exercises = append(s.Exercises, ex)
	}

	for _, set := range sets {
		s.volumeByExercise[set.ExerciseID] += SetVolume(set)
	}

	for _, row := range mappings {
		s.directByExercise[row.ExerciseID] = append(s.directByExercise[row.ExerciseID], MuscleWeight{
			MuscleID: row.MuscleID,
			Weight:   row.Weight,
		})

		key := NameKey(row.RawName)
		fb, ok := s.fallbackByName[key]
		if !ok {
			fb = &fallbackMapping{weight: make(map[uuid.UUID]float64)}
			s.fallbackByName[key] = fb
		}
		fb.observe(row.MuscleID, row.Weight)
	}

	return s
}

func (s *Snapshot) Muscle(id uuid.UUID) (MuscleGroup, bool) {
	m, ok := s.muscleByID[id]
	return m, ok
}

func (s *Snapshot) SessionDate(sessionID uuid.UUID) (time.Time, bool) {
	d, ok := s.sessionDateByID[sessionID]
	return d, ok
}

// Volume of the exercise instance, summed over its sets.
func (s *Snapshot) Volume(exerciseID uuid.UUID) float64 {
	return s.volumeByExercise[exerciseID]
}

// NameKey normalizes a raw exercise name for fallback lookups:
// trimmed, inner whitespace collapsed, lower-cased.
func NameKey(rawName string) string {
	return strings.ToLower(strings.Join(strings.Fields(rawName), " "))
}
