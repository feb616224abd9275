package recovery

import (
	"sort"
	"time"
)

const DefaultContributorsLimit = 2

type Report struct {
	Window            ReportWindow            `json:"window"`
	HalfLifeHours     map[string]float64      `json:"half_life_hours"`
	RestHours         map[string]float64      `json:"recovery_settings"`
	Muscles           map[string]MuscleReport `json:"muscles"`
	TrainerAdvice     TrainerAdvice           `json:"trainer_advice"`
	UnmappedExercises []UnmappedExercise      `json:"unmapped_exercises"`
}

type ReportWindow struct {
	Days        int    `json:"days"`
	From        string `json:"from"`
	To          string `json:"to"`
	ReferenceAt string `json:"reference_at"`
}

type MuscleReport struct {
	Name           string        `json:"name"`
	FatigueRaw     float64       `json:"fatigue_raw"`
	Fatigue        float64       `json:"fatigue"`
	Recovery       float64       `json:"recovery"`
	Status         Status        `json:"status"`
	RestHours      float64       `json:"rest_hours"`
	LastTrainedAt  *time.Time    `json:"last_trained_at"`
	NextTrainAt    *time.Time    `json:"next_train_at"`
	RemainingHours float64       `json:"remaining_hours"`
	Contributors   []Contributor `json:"contributors"`
}

type Contributor struct {
	RawName      string  `json:"raw_name"`
	Contribution float64 `json:"contribution"`
}

type UnmappedExercise struct {
	RawName string `json:"raw_name"`
	Count   int    `json:"count"`
}

// TopContributors ranks names by contribution, descending; ties keep first-seen order.
func TopContributors(tally *contributorTally, limit int) []Contributor {
	contributors := make([]Contributor, 0, limit)
	if tally == nil || limit <= 0 {
		return contributors
	}

	names := make([]string, len(tally.order))
	copy(names, tally.order)
	sort.SliceStable(names, func(i, j int) bool {
		return tally.total[names[i]] > tally.total[names[j]]
	})

	if len(names) > limit {
		names = names[:limit]
	}
	for _, name := range names {
		contributors = append(contributors, Contributor{
			RawName:      name,
			Contribution: round2(tally.total[name]),
		})
	}
	return contributors
}

// UnmappedList groups unmapped occurrence counts, sorted by raw name.
func UnmappedList(counts map[string]int) []UnmappedExercise {
	unmapped := make([]UnmappedExercise, 0, len(counts))
	for name, count := range counts {
		unmapped = append(unmapped, UnmappedExercise{RawName: name, Count: count})
	}
	sort.Slice(unmapped, func(i, j int) bool {
		return unmapped[i].RawName < unmapped[j].RawName
	})
	return unmapped
}

// UnmappedTotal is the number of unmapped exercise instances in the report.
func (r *Report) UnmappedTotal() int {
	total := 0
	for _, u := range r.UnmappedExercises {
		total += u.Count
	}
	return total
}
