package recovery

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

const (
	trainRecoveryMin = 80.0
	lightRecoveryMin = 40.0
	// below this many hours left, a muscle counts as rested
	restedHoursEpsilon = 0.01
)

type TrainerAdvice struct {
	Summary        string   `json:"summary"`
	RecommendTrain []string `json:"recommend_train"`
	RecommendLight []string `json:"recommend_light"`
	RecommendRest  []string `json:"recommend_rest"`
	MessageTrain   string   `json:"message_train"`
	MessageRest    string   `json:"message_rest"`
	MessageTiming  string   `json:"message_timing"`
}

// BuildTrainerAdvice splits muscles into train / light / rest buckets.
func BuildTrainerAdvice(muscles map[string]MuscleReport) TrainerAdvice {
	codes := make([]string, 0, len(muscles))
	for code := range muscles {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	advice := TrainerAdvice{
		RecommendTrain: []string{},
		RecommendLight: []string{},
		RecommendRest:  []string{},
	}

	timingCode := ""
	for _, code := range codes {
		m := muscles[code]
		rested := m.RemainingHours <= restedHoursEpsilon
		switch {
		case rested && m.Recovery >= trainRecoveryMin:
			advice.RecommendTrain = append(advice.RecommendTrain, code)
		case rested && m.Recovery >= lightRecoveryMin:
			advice.RecommendLight = append(advice.RecommendLight, code)
		default:
			advice.RecommendRest = append(advice.RecommendRest, code)
		}

		if !rested && (timingCode == "" || m.RemainingHours > muscles[timingCode].RemainingHours) {
			timingCode = code
		}
	}

	label := func(code string) string {
		if name := muscles[code].Name; name != "" {
			return name
		}
		return code
	}
	labels := func(codes []string) string {
		names := make([]string, 0, len(codes))
		for _, code := range codes {
			names = append(names, label(code))
		}
		return strings.Join(names, ", ")
	}

	switch {
	case len(advice.RecommendTrain) > 0:
		advice.Summary = fmt.Sprintf("Recommended next: %s.", labels(advice.RecommendTrain))
	case len(advice.RecommendLight) > 0:
		advice.Summary = fmt.Sprintf("Go light on: %s.", labels(advice.RecommendLight))
	default:
		advice.Summary = "No muscle group is recovered enough, rest is recommended."
	}

	if len(advice.RecommendTrain) > 0 {
		advice.MessageTrain = fmt.Sprintf("Ready to train: %s.", labels(advice.RecommendTrain))
	} else {
		advice.MessageTrain = "No muscle group is recovered enough to recommend."
	}
	if len(advice.RecommendRest) > 0 {
		advice.MessageRest = fmt.Sprintf("Rest recommended for: %s.", labels(advice.RecommendRest))
	} else {
		advice.MessageRest = "No muscle group needs rest."
	}

	if timingCode == "" {
		advice.MessageTiming = "All muscle groups are ready to train."
	} else {
		m := muscles[timingCode]
		advice.MessageTiming = fmt.Sprintf(
			"%s needs about %d more hours to fully recover.",
			label(timingCode), int(math.Ceil(m.RemainingHours)),
		)
	}

	return advice
}
