package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepverse/ai-interviewer/internal/models"
)

// fakePiston echoes the stdin back as output, and fails the whole request
// when stdin is "boom".
func fakePiston(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Language string `json:"language"`
			Source   string `json:"source"`
			Stdin    string `json:"stdin"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.Stdin == "boom" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(map[string]string{
			"output": req.Stdin + "\n",
			"stderr": "",
			"time":   "0.01",
		})
	}))
}

func TestPistonService_Execute(t *testing.T) {
	t.Parallel()

	server := fakePiston(t)
	defer server.Close()

	svc := NewCodeExecutionService(server.URL, 5*time.Second)

	result, err := svc.Execute(context.Background(), "python", "print(input())", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", result.Stdout)
	assert.Equal(t, "", result.Stderr)
	assert.Equal(t, "0.01", result.Time)
}

func TestPistonService_Execute_UpstreamError(t *testing.T) {
	t.Parallel()

	server := fakePiston(t)
	defer server.Close()

	svc := NewCodeExecutionService(server.URL, 5*time.Second)

	_, err := svc.Execute(context.Background(), "python", "code", "boom")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 500")
}

func TestPistonService_RunTestCases_Scoring(t *testing.T) {
	t.Parallel()

	server := fakePiston(t)
	defer server.Close()

	svc := NewCodeExecutionService(server.URL, 5*time.Second)

	cases := []models.TestCase{
		{Input: "a", Output: "a"},           // passes after trimming
		{Input: "b", Output: "something"},   // wrong output
		{Input: "boom", Output: "anything"}, // execution failure
		{Input: "c", Output: "  c  "},       // passes, expected is trimmed too
	}

	results, score := svc.RunTestCases(context.Background(), "python", "code", cases)

	require.Len(t, results, 4)
	assert.Equal(t, 2, score)

	assert.True(t, results[0].Passed)
	assert.False(t, results[1].Passed)
	assert.False(t, results[2].Passed)
	assert.NotEmpty(t, results[2].Error)
	assert.True(t, results[3].Passed)
}

func TestPistonService_RunTestCases_Empty(t *testing.T) {
	t.Parallel()

	server := fakePiston(t)
	defer server.Close()

	svc := NewCodeExecutionService(server.URL, 5*time.Second)

	results, score := svc.RunTestCases(context.Background(), "python", "code", nil)
	assert.Empty(t, results)
	assert.Equal(t, 0, score)
}
