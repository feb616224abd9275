package recovery

type ResolutionKind int

const (
	Unmapped ResolutionKind = iota
	Direct
	Fallback
)

func (k ResolutionKind) String() string {
	switch k {
	case Direct:
		return "direct"
	case Fallback:
		return "fallback"
	default:
		return "unmapped"
	}
}

// Resolution is the muscle attribution picked for one exercise instance.
type Resolution struct {
	Kind     ResolutionKind
	Mappings []MuscleWeight
}

// Resolve applies the precedence: direct rows of the instance, else the
// by-name fallback, else unmapped.
func (s *Snapshot) Resolve(ex Exercise) Resolution {
	if direct := s.directByExercise[ex.ID]; len(direct) > 0 {
		return Resolution{Kind: Direct, Mappings: direct}
	}

	if fb, ok := s.fallbackByName[NameKey(ex.RawName)]; ok {
		if mappings := fb.list(); len(mappings) > 0 {
			return Resolution{Kind: Fallback, Mappings: mappings}
		}
	}

	return Resolution{Kind: Unmapped}
}
