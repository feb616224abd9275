package recovery

// SetVolume is reps x load; a nil load (bodyweight / unknown) counts as zero.
func SetVolume(set ExerciseSet) float64 {
	if set.Weight == nil || set.Reps <= 0 {
		return 0
	}
	return float64(set.Reps) * *set.Weight
}

// ExerciseVolume sums the training volume over the given sets.
func ExerciseVolume(sets []ExerciseSet) float64 {
	var volume float64
	for _, set := range sets {
		volume += SetVolume(set)
	}
	return volume
}
