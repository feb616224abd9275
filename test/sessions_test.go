//go:build integration_test || all_tests

package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/2beens/musclerecovery/internal/sessions"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestSessions_Lifecycle() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()

	added := s.addSession(ctx, sessions.Session{
		Date:         "2025-02-01",
		CaloriesKcal: ptr(410),
		Exercises: []sessions.Exercise{
			{
				RawName:    "벤치 프레스",
				OrderIndex: 1,
				Sets: []sessions.Set{
					{SetIndex: 1, WeightKg: ptr(60.0), Reps: 10},
					{SetIndex: 2, WeightKg: ptr(60.0), Reps: 8},
				},
				Muscles: []sessions.MuscleShare{{Code: "chest", Weight: 1}},
			},
		},
	})
	require.NotEqual(t, uuid.Nil, added.ID)

	status, respBytes := s.doRequest(ctx, http.MethodGet, "/sessions/"+added.ID.String(), nil, false)
	require.Equal(t, http.StatusOK, status)
	var fetched sessions.Session
	require.NoError(t, json.Unmarshal(respBytes, &fetched))
	assert.Equal(t, "2025-02-01", fetched.Date)
	require.Len(t, fetched.Exercises, 1)
	assert.Len(t, fetched.Exercises[0].Sets, 2)

	status, respBytes = s.doRequest(ctx, http.MethodGet, "/sessions/list/page/1/size/50", nil, false)
	require.Equal(t, http.StatusOK, status)
	var list sessions.ListResponse
	require.NoError(t, json.Unmarshal(respBytes, &list))
	assert.GreaterOrEqual(t, list.Total, 1)
	for _, listed := range list.Sessions {
		assert.NotEqual(t, "1970-01-01", listed.Date, "seed session must never be listed")
	}

	status, _ = s.doRequest(ctx, http.MethodDelete, "/sessions/"+added.ID.String(), nil, false)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, respBytes = s.doRequest(ctx, http.MethodDelete, "/sessions/"+added.ID.String(), nil, true)
	require.Equal(t, http.StatusOK, status)
	var deleted sessions.DeleteSessionResponse
	require.NoError(t, json.Unmarshal(respBytes, &deleted))
	assert.Equal(t, added.ID, deleted.DeletedID)

	status, _ = s.doRequest(ctx, http.MethodGet, "/sessions/"+added.ID.String(), nil, false)
	assert.Equal(t, http.StatusNotFound, status)

	// children go with the session
	var exercisesLeft int
	require.NoError(t, s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM exercises WHERE session_id = $1`, added.ID,
	).Scan(&exercisesLeft))
	assert.Zero(t, exercisesLeft)
}

func (s *IntegrationTestSuite) TestSessions_SeedSessionProtected() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()

	var seedID uuid.UUID
	require.NoError(t, s.DB.QueryRowContext(ctx,
		`SELECT id FROM sessions WHERE is_seed IS TRUE`,
	).Scan(&seedID))

	status, _ := s.doRequest(ctx, http.MethodGet, "/sessions/"+seedID.String(), nil, false)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.doRequest(ctx, http.MethodDelete, "/sessions/"+seedID.String(), nil, true)
	assert.Equal(t, http.StatusNotFound, status)

	var seedSessions int
	require.NoError(t, s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE is_seed IS TRUE`,
	).Scan(&seedSessions))
	assert.Equal(t, 1, seedSessions)
}

func (s *IntegrationTestSuite) TestSessions_Rejected() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, tc := range []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "reserved date",
			body:       `{"date":"1970-01-01","exercises":[{"raw_name":"스쿼트","order_index":1,"sets":[]}]}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_session",
		},
		{
			name:       "unknown muscle",
			body:       `{"date":"2025-02-02","exercises":[{"raw_name":"x","order_index":1,"sets":[],"muscles":[{"code":"wings","weight":1}]}]}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "unknown_muscle",
		},
		{
			name:       "duplicate order index",
			body:       `{"date":"2025-02-03","exercises":[{"raw_name":"a","order_index":1,"sets":[]},{"raw_name":"b","order_index":1,"sets":[]}]}`,
			wantStatus: http.StatusConflict,
			wantError:  "duplicate_index",
		},
	} {
		s.Run(tc.name, func() {
			t := s.T()
			status, respBytes := s.doRequest(ctx, http.MethodPost, "/sessions", []byte(tc.body), true)
			assert.Equal(t, tc.wantStatus, status)
			assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tc.wantError), string(respBytes))
		})
	}
}
