package services

import (
	"fmt"
	"strings"

	"prepverse/ai-interviewer/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildInterviewQuestionsPrompt creates the prompt for résumé-driven
// interview question generation.
func (pb *PromptBuilder) BuildInterviewQuestionsPrompt(parsed models.ParsedResume, role string) string {
	skills := strings.Join(parsed.Skills, ", ")
	if skills == "" {
		skills = "general programming"
	}

	experience := strings.Join(firstN(parsed.Experience, 5), "\n")
	if experience == "" {
		experience = "general experience"
	}

	education := strings.Join(firstN(parsed.Education, 3), "\n")
	if education == "" {
		education = "general education"
	}

	return fmt.Sprintf(`You are an expert interviewer.
The candidate is applying for: %s.

Candidate background:
- Skills: %s
- Experience: %s
- Education: %s

Task:
Generate 15-20 interview questions (excluding 'Tell me about yourself').
- Minimum 10 technical referencing candidate's skills/experience.
- Minimum 5 behavioral questions.
Do not include any intro text.`, role, skills, experience, education)
}

// BuildFollowUpPrompt creates the prompt for follow-up questions on a
// candidate's answer.
func (pb *PromptBuilder) BuildFollowUpPrompt(answer, role string) string {
	return fmt.Sprintf(`You are an interviewer for the role: %s.
The candidate just said: "%s"

Task:
Generate 2-3 concise, role-relevant follow-up interview questions.`, role, answer)
}

// BuildAptitudePrompt creates the prompt for aptitude MCQ generation. The
// "Q: / A) / Answer:" structure is a contract with the consuming UI,
// enforced only by this wording.
func (pb *PromptBuilder) BuildAptitudePrompt(level, topic string) string {
	return fmt.Sprintf(`You are an expert aptitude test generator.
Generate exactly 25 multiple-choice questions (MCQs) of %s difficulty.

The questions should be strictly about the topic: "%s".

Format each question like this:
Q: <question text>
A) <option A>
B) <option B>
C) <option C>
D) <option D>
Answer: <correct option>

Do NOT include any explanation or introduction text.
Separate each question clearly with a line "---".`, level, topic)
}

// BuildCodingPrompt creates the prompt for coding problem generation.
func (pb *PromptBuilder) BuildCodingPrompt(level, topic string) string {
	return fmt.Sprintf(`Generate exactly 2 coding problems of %s difficulty
focused on the topic: %s.
Include:
1. Problem statement
2. Input format
3. Output format
4. Sample input and output
Do NOT include solutions.`, level, topic)
}

// BuildFeedbackPrompt creates the evaluation prompt for a completed test.
// The "Score: <n> / 25" and "Result: <accepted/rejected>" formats are what
// the feedback post-processing recovers with pattern matching.
func (pb *PromptBuilder) BuildFeedbackPrompt(testType models.TestType, questions, answers []string, role string) string {
	qaPairs := formatQAPairs(questions, answers)

	switch testType {
	case models.TestTypeAptitude:
		return fmt.Sprintf(`You are an expert evaluator for an aptitude test.
The candidate has completed an aptitude test for the role: %s.

Responses:
%s

Task:
- Calculate the score out of 25 based on the candidate's answers.
- Provide feedback on strengths and areas for improvement.
- Suggest improvements for incorrect answers.
Provide your answer in the format: "Score: <score> / 25"`, role, qaPairs)

	case models.TestTypeCoding:
		return fmt.Sprintf(`You are an expert evaluator for a coding test.
The candidate has completed a coding test for the role: %s.

Responses:
%s

Task:
- Based on the answers and the code provided, evaluate if the code is correct.
- The code should be considered 'accepted' if it passes all the test cases.
- If the code fails any test cases, it should be considered 'rejected'.
Provide your answer in the format: "Result: <accepted/rejected>"`, role, qaPairs)

	default:
		return fmt.Sprintf(`You are an expert interviewer evaluating a candidate's interview answers.
The candidate has completed an interview for the role: %s.

Responses:
%s

Task:
- Provide detailed, constructive feedback on the candidate's answers.
- Highlight strengths and areas for improvement.
- Suggest actionable advice to improve performance in future interviews.`, role, qaPairs)
	}
}

func formatQAPairs(questions, answers []string) string {
	n := len(questions)
	if len(answers) < n {
		n = len(answers)
	}

	pairs := make([]string, 0, n)
	for i := 0; i < n; i++ {
		pairs = append(pairs, fmt.Sprintf("Q: %s\nA: %s", questions[i], answers[i]))
	}

	return strings.Join(pairs, "\n")
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
