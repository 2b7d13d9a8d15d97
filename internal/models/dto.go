package models

import "encoding/json"

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ParsedResume is the structured output of résumé extraction.
type ParsedResume struct {
	Skills     []string `json:"skills"`
	Education  []string `json:"education"`
	Experience []string `json:"experience"`
	Projects   []string `json:"projects"`
	RawText    string   `json:"raw_text"`
}

type SaveResumeRequest struct {
	// Resume is either a structured object or a JSON-encoded string;
	// both are normalized to one stored JSON document.
	Resume json.RawMessage `json:"resume"`
}

type GenerateQuestionsRequest struct {
	Parsed ParsedResume `json:"parsed"`
	Role   string       `json:"role"`
}

type FollowUpRequest struct {
	Answer string `json:"answer"`
	Role   string `json:"role"`
}

type GenerateTestRequest struct {
	Level string `json:"level"`
	Topic string `json:"topic"`
}

type FeedbackRequest struct {
	TestType  string   `json:"test_type"`
	Questions []string `json:"questions"`
	Answers   []string `json:"answers"`
	Role      string   `json:"role"`
}

type RunCodeRequest struct {
	Language string `json:"language"`
	Code     string `json:"code"`
	Input    string `json:"input"`
}

type TestCase struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

type SubmitCodeRequest struct {
	Language  string     `json:"language"`
	Code      string     `json:"code"`
	TestCases []TestCase `json:"test_cases"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ProgressEntry struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Completed bool   `json:"completed"`
	Feedback  string `json:"feedback"`
}
