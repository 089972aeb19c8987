package matching

import (
	"math"
	"regexp"
	"strings"

	"job-matcher/internal/domain/taxonomy"
)

// Level is a job/resume seniority tier.
type Level int

const (
	LevelEntry Level = iota
	LevelMid
	LevelSenior
)

func (l Level) String() string {
	switch l {
	case LevelSenior:
		return "senior"
	case LevelMid:
		return "mid"
	default:
		return "entry"
	}
}

var (
	seniorKeywords = []string{"senior", "lead", "architect", "5+ years", "principal"}
	midKeywords    = []string{"mid level", "intermediate", "2-5 years", "3-5 years"}

	roleWordRe = regexp.MustCompile(`\b(developer|engineer|programmer|architect|consultant)\b`)
)

type Resume struct {
	Text string
	// TechStack, when non-nil, skips extraction from Text.
	TechStack []string
}

type Job struct {
	Title       string
	Description string
	TechStack   []string
}

type Result struct {
	Score                int
	TechStackScore       int
	TitleRelevanceScore  int
	ExperienceLevelMatch Level
	MatchingTechnologies []string
	MissingTechnologies  []string
}

// Calculate scores a resume against one job posting. Tech overlap carries up
// to 50 points, title relevance up to 30, experience alignment 5 to 20; the
// sum is capped at 100. Each component is rounded to an integer before
// summation, so Score always equals the reported sub-scores plus the
// experience contribution exactly. All inputs are valid, including empty
// ones; degenerate inputs simply score low.
func Calculate(tax *taxonomy.Taxonomy, resume Resume, job Job) Result {
	resumeStack := resume.TechStack
	if resumeStack == nil {
		resumeStack = tax.Extract(resume.Text)
	}

	resumeTechs := make(map[string]struct{}, len(resumeStack))
	for _, t := range resumeStack {
		resumeTechs[t] = struct{}{}
	}

	matched := make([]string, 0, len(job.TechStack))
	missing := make([]string, 0)
	seen := make(map[string]struct{}, len(job.TechStack))
	for _, t := range job.TechStack {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := resumeTechs[t]; ok {
			matched = append(matched, t)
		} else {
			missing = append(missing, t)
		}
	}

	// Empty job stack is a valid degenerate case, not a division error.
	techScore := 0
	if len(seen) > 0 {
		techScore = int(math.Round(float64(len(matched)) / float64(len(seen)) * 50))
	}

	titleScore := titleRelevance(resume.Text, job.Title)

	jobLevel := ClassifyLevel(job.Description)
	resumeLevel := ClassifyLevel(resume.Text)
	expScore := experienceScore(jobLevel, resumeLevel)

	score := techScore + titleScore + expScore
	if score > 100 {
		score = 100
	}

	return Result{
		Score:                score,
		TechStackScore:       techScore,
		TitleRelevanceScore:  titleScore,
		ExperienceLevelMatch: jobLevel,
		MatchingTechnologies: matched,
		MissingTechnologies:  missing,
	}
}

// titleRelevance awards 15 points per role word from the job title that also
// appears in the resume text, capped at 30. Tokens are taken verbatim from
// the whitespace split, trailing punctuation included.
func titleRelevance(resumeText, jobTitle string) int {
	resumeLower := strings.ToLower(resumeText)
	score := 0
	for _, tok := range strings.Fields(strings.ToLower(jobTitle)) {
		if !roleWordRe.MatchString(tok) {
			continue
		}
		if strings.Contains(resumeLower, tok) {
			score += 15
		}
	}
	if score > 30 {
		score = 30
	}
	return score
}

// ClassifyLevel infers a seniority tier from free text: senior keywords are
// checked first, then mid; entry is the fallback when nothing matches.
func ClassifyLevel(text string) Level {
	lower := strings.ToLower(text)
	for _, kw := range seniorKeywords {
		if strings.Contains(lower, kw) {
			return LevelSenior
		}
	}
	for _, kw := range midKeywords {
		if strings.Contains(lower, kw) {
			return LevelMid
		}
	}
	return LevelEntry
}

// experienceScore keeps the coarse original matrix, asymmetry included:
// a senior job paired with a mid resume scores the same 5 as a full mismatch.
func experienceScore(job, resume Level) int {
	if job == resume {
		return 20
	}
	if (job == LevelMid && resume == LevelSenior) ||
		(job == LevelEntry && resume != LevelEntry) {
		return 15
	}
	return 5
}
