//go:build integration_test || all_tests

package test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/musclerecovery/internal/health"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestHealth() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	status, respBytes := s.doRequest(ctx, http.MethodGet, "/health", nil, false)
	require.Equal(t, http.StatusOK, status)

	var healthStatus health.Status
	require.NoError(t, json.Unmarshal(respBytes, &healthStatus))
	assert.Equal(t, "ok", healthStatus.Status)
}
