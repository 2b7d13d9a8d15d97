package services

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// OpeningQuestion is always prepended to a generated interview set.
	OpeningQuestion = "Tell me about yourself."

	interviewFiller = "Tell me about a project where you applied your skills. What challenges did you face?"
	followUpFiller  = "Can you elaborate more on that?"

	minInterviewQuestions = 15
	maxInterviewQuestions = 20
	minFollowUpQuestions  = 2
	maxFollowUpQuestions  = 3

	aptitudeTotal = 25
)

var (
	ordinalRe = regexp.MustCompile(`^\d+[\).:\-]?\s*`)
	scoreRe   = regexp.MustCompile(`Score: (\d+)`)
	resultRe  = regexp.MustCompile(`result: (accepted|rejected)`)
)

// SplitQuestions splits raw model output into one question per non-empty
// line, stripping a leading ordinal marker from each.
func SplitQuestions(text string) []string {
	questions := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		questions = append(questions, ordinalRe.ReplaceAllString(line, ""))
	}

	return questions
}

// NormalizeInterviewQuestions pads with the filler question up to the
// minimum, truncates to the maximum and prepends the fixed opening question.
// The final count is always between 16 and 21 inclusive.
func NormalizeInterviewQuestions(questions []string) []string {
	for len(questions) < minInterviewQuestions {
		questions = append(questions, interviewFiller)
	}
	if len(questions) > maxInterviewQuestions {
		questions = questions[:maxInterviewQuestions]
	}

	return append([]string{OpeningQuestion}, questions...)
}

// NormalizeFollowUpQuestions pads with the filler up to 2 questions and
// truncates to 3.
func NormalizeFollowUpQuestions(questions []string) []string {
	for len(questions) < minFollowUpQuestions {
		questions = append(questions, followUpFiller)
	}
	if len(questions) > maxFollowUpQuestions {
		questions = questions[:maxFollowUpQuestions]
	}

	return questions
}

// ParseAptitudeScore recovers the score from "Score: <digits>" in the model
// output. No match yields 0, not an error. The total is always 25.
func ParseAptitudeScore(text string) (score, total int) {
	if m := scoreRe.FindStringSubmatch(text); m != nil {
		score, _ = strconv.Atoi(m[1])
	}

	return score, aptitudeTotal
}

// ParseCodingResult recovers the verdict from "Result: accepted" or
// "Result: rejected" (any case). No match defaults to "rejected".
func ParseCodingResult(text string) string {
	if m := resultRe.FindStringSubmatch(strings.ToLower(text)); m != nil {
		return m[1]
	}

	return "rejected"
}
