//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/2beens/musclerecovery/internal/middleware"
	"github.com/2beens/musclerecovery/internal/sessions"

	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) doRequest(ctx context.Context, method, path string, body []byte, withToken bool) (int, []byte) {
	t := s.T()

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, fmt.Sprintf("%s%s", serverEndpoint, path), reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withToken {
		req.Header.Set(middleware.IngestTokenHeader, testIngestToken)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) addSession(ctx context.Context, session sessions.Session) sessions.Session {
	t := s.T()

	body, err := json.Marshal(session)
	require.NoError(t, err)

	status, respBytes := s.doRequest(ctx, http.MethodPost, "/sessions", body, true)
	require.Equal(t, http.StatusCreated, status, string(respBytes))

	var added sessions.Session
	require.NoError(t, json.Unmarshal(respBytes, &added))
	return added
}

func ptr[T any](v T) *T {
	return &v
}
