package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"prepverse/ai-interviewer/internal/models"
)

// CodeExecutionService wraps the external execution endpoint: one stateless
// run per call, no persistent sandbox.
type CodeExecutionService interface {
	Execute(ctx context.Context, language, code, stdin string) (*ExecutionResult, error)
	RunTestCases(ctx context.Context, language, code string, cases []models.TestCase) ([]CaseResult, int)
}

type ExecutionResult struct {
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
	Time   string `json:"time"`
}

type CaseResult struct {
	Input    string `json:"input"`
	Expected string `json:"expected,omitempty"`
	Output   string `json:"output,omitempty"`
	Error    string `json:"error,omitempty"`
	Passed   bool   `json:"passed"`
}

type pistonService struct {
	url    string
	client *http.Client
}

func NewCodeExecutionService(url string, timeout time.Duration) CodeExecutionService {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}

	return &pistonService{
		url:    url,
		client: &http.Client{Timeout: timeout, Transport: t},
	}
}

type executeRequest struct {
	Language string `json:"language"`
	Source   string `json:"source"`
	Stdin    string `json:"stdin"`
}

type executeResponse struct {
	Output string `json:"output"`
	Stderr string `json:"stderr"`
	Time   string `json:"time"`
}

// Execute implements CodeExecutionService.
func (p *pistonService) Execute(ctx context.Context, language, code, stdin string) (*ExecutionResult, error) {
	payload, err := json.Marshal(executeRequest{
		Language: language,
		Source:   code,
		Stdin:    stdin,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode execution request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build execution request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execution request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("execution endpoint http %d", res.StatusCode)
	}

	var body executeResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode execution response: %w", err)
	}

	return &ExecutionResult{
		Stdout: body.Output,
		Stderr: body.Stderr,
		Time:   body.Time,
	}, nil
}

// RunTestCases implements CodeExecutionService. Cases run sequentially in
// the order given; a failing execution marks its own case as not passed and
// does not abort the rest. A case passes when trimmed output equals trimmed
// expected output exactly. The score is the count of passed cases.
func (p *pistonService) RunTestCases(ctx context.Context, language, code string, cases []models.TestCase) ([]CaseResult, int) {
	results := make([]CaseResult, 0, len(cases))
	score := 0

	for _, tc := range cases {
		res, err := p.Execute(ctx, language, code, tc.Input)
		if err != nil {
			results = append(results, CaseResult{
				Input:  tc.Input,
				Error:  err.Error(),
				Passed: false,
			})
			continue
		}

		output := strings.TrimSpace(res.Stdout)
		expected := strings.TrimSpace(tc.Output)
		passed := output == expected
		if passed {
			score++
		}

		results = append(results, CaseResult{
			Input:    tc.Input,
			Expected: expected,
			Output:   output,
			Passed:   passed,
		})
	}

	return results, score
}
