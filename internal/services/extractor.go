package services

import (
	"regexp"
	"sort"
	"strings"

	"prepverse/ai-interviewer/internal/models"
)

// techSkills is the fixed vocabulary matched against résumé tokens. Matching
// is exact and case-insensitive; no stemming or synonym resolution.
var techSkills = map[string]struct{}{
	"python": {}, "javascript": {}, "java": {}, "c": {}, "c++": {}, "c#": {},
	"html": {}, "css": {}, "react.js": {}, "node.js": {}, "express": {},
	"express.js": {}, "sql": {}, "mysql": {}, "postgresql": {}, "mongodb": {},
	"aws": {}, "docker": {}, "kubernetes": {}, "flask": {}, "django": {},
	"typescript": {}, "next.js": {}, "git": {}, "github": {}, "api": {},
	"machine learning": {}, "data science": {}, "analytics": {},
	"tensorflow": {}, "pytorch": {}, "nlp": {}, "data analytics": {},
}

// multiWordSkills are matched by substring search over the whole text, since
// the tokenizer would split them apart.
var multiWordSkills = []string{
	"machine learning", "data science", "data analytics",
	"node.js", "react.js", "c++",
}

var (
	// A "word" is a maximal run of alphanumerics plus + # .
	wordRe = regexp.MustCompile(`\b[\w+#.]+\b`)

	educationRe  = regexp.MustCompile(`(\d{4})\s+([A-Za-z0-9 &.-]+(?:University|School|College))`)
	experienceRe = regexp.MustCompile(`([A-Za-z0-9 &.-]+)\s*\|?\s*(\d{1,2}\s+\w+,\s+\d{4}\s*-\s*\d{1,2}\s+\w+,\s*\d{4})`)
	projectsRe   = regexp.MustCompile(`(?is)(?:PROJECTS|Project Name|Key Projects)[:|-]?\s*(.*?)\s*(?:Key Skills|$)`)
	projectSepRe = regexp.MustCompile(`\n|\|`)
)

// ResumeExtractor recovers structured fields from résumé text with
// best-effort regex heuristics. Every rule independently yields zero or more
// matches; no match is never an error.
type ResumeExtractor struct{}

func NewResumeExtractor() *ResumeExtractor {
	return &ResumeExtractor{}
}

func (e *ResumeExtractor) Extract(text string) models.ParsedResume {
	return models.ParsedResume{
		Skills:     e.ExtractSkills(text),
		Education:  e.extractEducation(text),
		Experience: e.extractExperience(text),
		Projects:   e.extractProjects(text),
		RawText:    text,
	}
}

// ExtractSkills returns the alphabetically sorted union of the token pass
// and the multi-word substring pass.
func (e *ResumeExtractor) ExtractSkills(text string) []string {
	textLower := strings.ToLower(text)
	found := make(map[string]struct{})

	for _, word := range wordRe.FindAllString(textLower, -1) {
		norm := strings.TrimSpace(word)
		if _, ok := techSkills[norm]; ok {
			found[norm] = struct{}{}
		}
	}

	for _, skill := range multiWordSkills {
		if strings.Contains(textLower, skill) {
			found[skill] = struct{}{}
		}
	}

	skills := make([]string, 0, len(found))
	for skill := range found {
		skills = append(skills, skill)
	}
	sort.Strings(skills)

	return skills
}

func (e *ResumeExtractor) extractEducation(text string) []string {
	education := []string{}
	for _, m := range educationRe.FindAllStringSubmatch(text, -1) {
		education = append(education, m[1]+" "+strings.TrimSpace(m[2]))
	}

	return education
}

func (e *ResumeExtractor) extractExperience(text string) []string {
	experience := []string{}
	for _, m := range experienceRe.FindAllStringSubmatch(text, -1) {
		experience = append(experience, strings.TrimSpace(m[1])+" ("+strings.TrimSpace(m[2])+")")
	}

	return experience
}

func (e *ResumeExtractor) extractProjects(text string) []string {
	projects := []string{}
	for _, m := range projectsRe.FindAllStringSubmatch(text, -1) {
		for _, p := range projectSepRe.Split(m[1], -1) {
			if p = strings.TrimSpace(p); p != "" {
				projects = append(projects, p)
			}
		}
	}

	return projects
}
