//go:build integration_test || all_tests

package test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/musclerecovery/internal/recovery"
	"github.com/2beens/musclerecovery/internal/sessions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestRecovery_Report() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()

	s.addSession(ctx, sessions.Session{
		Date: "2025-03-10",
		Exercises: []sessions.Exercise{
			{
				// no direct mapping, resolved through the seed mappings
				RawName:    "스쿼트",
				OrderIndex: 1,
				Sets: []sessions.Set{
					{SetIndex: 1, WeightKg: ptr(100.0), Reps: 5},
					{SetIndex: 2, WeightKg: ptr(100.0), Reps: 5},
				},
			},
			{
				RawName:    "케이블 크로스오버",
				OrderIndex: 2,
				Sets:       []sessions.Set{{SetIndex: 1, WeightKg: ptr(20.0), Reps: 12}},
				Muscles:    []sessions.MuscleShare{{Code: "chest", Weight: 1}},
			},
			{
				RawName:    "미확인 운동",
				OrderIndex: 3,
				Sets:       []sessions.Set{{SetIndex: 1, WeightKg: ptr(20.0), Reps: 10}},
			},
		},
	})

	status, respBytes := s.doRequest(ctx, http.MethodGet, "/recovery?from=2025-03-10&to=2025-03-10", nil, false)
	require.Equal(t, http.StatusOK, status, string(respBytes))

	var report recovery.Report
	require.NoError(t, json.Unmarshal(respBytes, &report))

	assert.Equal(t, "2025-03-10", report.Window.From)
	assert.Equal(t, "2025-03-10", report.Window.To)
	assert.Len(t, report.Muscles, 8)

	legs := report.Muscles["legs"]
	assert.Greater(t, legs.FatigueRaw, 0.0)
	require.NotEmpty(t, legs.Contributors)
	assert.Equal(t, "스쿼트", legs.Contributors[0].RawName)
	assert.NotNil(t, legs.LastTrainedAt)
	assert.Greater(t, report.Muscles["core"].FatigueRaw, 0.0)

	chest := report.Muscles["chest"]
	require.NotEmpty(t, chest.Contributors)
	assert.Equal(t, "케이블 크로스오버", chest.Contributors[0].RawName)

	// seed exercises carry no sets and never add fatigue
	biceps := report.Muscles["biceps"]
	assert.Zero(t, biceps.FatigueRaw)
	assert.Equal(t, recovery.StatusGreen, biceps.Status)
	assert.Nil(t, biceps.LastTrainedAt)

	assert.Equal(t, []recovery.UnmappedExercise{{RawName: "미확인 운동", Count: 1}}, report.UnmappedExercises)
	assert.Equal(t, 72.0, report.HalfLifeHours["legs"])
}

func (s *IntegrationTestSuite) TestRecovery_EmptyWindow() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()

	status, respBytes := s.doRequest(ctx, http.MethodGet, "/recovery?from=2000-01-01&to=2000-01-07", nil, false)
	require.Equal(t, http.StatusOK, status)

	var report recovery.Report
	require.NoError(t, json.Unmarshal(respBytes, &report))
	for code, muscle := range report.Muscles {
		assert.Zero(t, muscle.FatigueRaw, code)
		assert.Equal(t, 100.0, muscle.Recovery, code)
	}
	assert.Empty(t, report.UnmappedExercises)
}

func (s *IntegrationTestSuite) TestRecovery_InvalidWindow() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()

	status, respBytes := s.doRequest(ctx, http.MethodGet, "/recovery?from=2025-03-10&to=2025-03-01", nil, false)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"invalid_time_window"}`, string(respBytes))

	status, _ = s.doRequest(ctx, http.MethodGet, "/recovery?days=0", nil, false)
	assert.Equal(t, http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestRecovery_Settings() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()

	status, respBytes := s.doRequest(ctx, http.MethodGet, "/recovery/settings", nil, false)
	require.Equal(t, http.StatusOK, status, string(respBytes))
	var listed struct {
		Settings map[string]float64 `json:"settings"`
	}
	require.NoError(t, json.Unmarshal(respBytes, &listed))
	assert.Len(t, listed.Settings, 8)
	assert.Equal(t, 36.0, listed.Settings["triceps"])
	assert.Equal(t, 24.0, listed.Settings["cardio"])

	update := []byte(`{"settings":{"triceps":90}}`)
	status, _ = s.doRequest(ctx, http.MethodPut, "/recovery/settings", update, false)
	require.Equal(t, http.StatusUnauthorized, status)

	status, respBytes = s.doRequest(ctx, http.MethodPut, "/recovery/settings", []byte(`{"settings":{"triceps":500}}`), true)
	require.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"invalid_rest_hours"}`, string(respBytes))

	status, respBytes = s.doRequest(ctx, http.MethodPut, "/recovery/settings", update, true)
	require.Equal(t, http.StatusOK, status, string(respBytes))
	defer func() {
		status, _ := s.doRequest(ctx, http.MethodPut, "/recovery/settings", []byte(`{"settings":{"triceps":36}}`), true)
		assert.Equal(t, http.StatusOK, status)
	}()

	status, respBytes = s.doRequest(ctx, http.MethodGet, "/recovery?to=2025-03-10", nil, false)
	require.Equal(t, http.StatusOK, status, string(respBytes))
	var report recovery.Report
	require.NoError(t, json.Unmarshal(respBytes, &report))
	assert.Equal(t, 90.0, report.RestHours["triceps"])
	assert.Equal(t, 90.0, report.Muscles["triceps"].RestHours)
}
