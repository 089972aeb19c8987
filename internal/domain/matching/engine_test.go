package matching

import (
	"testing"

	"job-matcher/internal/domain/taxonomy"
)

func TestCalculate_ScoreIdentityAndBounds(t *testing.T) {
	tax := taxonomy.Default()

	cases := []struct {
		name   string
		resume Resume
		job    Job
	}{
		{
			name:   "typical",
			resume: Resume{Text: "Senior engineer, 5+ years of React and Go"},
			job:    Job{Title: "Senior Backend Engineer", Description: "senior role", TechStack: []string{"React", "Go", "Docker"}},
		},
		{
			name:   "empty everything",
			resume: Resume{},
			job:    Job{},
		},
		{
			name:   "no overlap",
			resume: Resume{Text: "ten years of cobol"},
			job:    Job{Title: "Rust Developer", Description: "mid level", TechStack: []string{"Rust"}},
		},
	}

	for _, tc := range cases {
		res := Calculate(tax, tc.resume, tc.job)
		if res.Score < 0 || res.Score > 100 {
			t.Fatalf("%s: score out of bounds: %d", tc.name, res.Score)
		}
		exp := res.Score - res.TechStackScore - res.TitleRelevanceScore
		if exp != 5 && exp != 15 && exp != 20 {
			t.Fatalf("%s: experience contribution %d not in {5,15,20}", tc.name, exp)
		}
		if res.TechStackScore < 0 || res.TechStackScore > 50 {
			t.Fatalf("%s: tech score out of bounds: %d", tc.name, res.TechStackScore)
		}
		if res.TitleRelevanceScore < 0 || res.TitleRelevanceScore > 30 {
			t.Fatalf("%s: title score out of bounds: %d", tc.name, res.TitleRelevanceScore)
		}
	}
}

func TestCalculate_EmptyJobTechStack(t *testing.T) {
	res := Calculate(taxonomy.Default(),
		Resume{Text: "react and go everywhere"},
		Job{Title: "Engineer", Description: "", TechStack: nil},
	)
	if res.TechStackScore != 0 {
		t.Fatalf("expected tech score 0 for empty job stack, got %d", res.TechStackScore)
	}
	if len(res.MatchingTechnologies) != 0 || len(res.MissingTechnologies) != 0 {
		t.Fatalf("expected empty tech lists, got %v / %v", res.MatchingTechnologies, res.MissingTechnologies)
	}
}

func TestCalculate_FullOverlap(t *testing.T) {
	res := Calculate(taxonomy.Default(),
		Resume{TechStack: []string{"React", "Node.js", "Docker"}},
		Job{Title: "x", Description: "", TechStack: []string{"React", "Node.js"}},
	)
	if res.TechStackScore != 50 {
		t.Fatalf("expected tech score 50, got %d", res.TechStackScore)
	}
	if len(res.MissingTechnologies) != 0 {
		t.Fatalf("expected no missing technologies, got %v", res.MissingTechnologies)
	}
}

func TestCalculate_ProvidedStackSkipsExtraction(t *testing.T) {
	// Resume text mentions Go, but the supplied stack has the final say.
	res := Calculate(taxonomy.Default(),
		Resume{Text: "years of go", TechStack: []string{"Rust"}},
		Job{Title: "x", Description: "", TechStack: []string{"Go"}},
	)
	if res.TechStackScore != 0 {
		t.Fatalf("expected 0 tech score, got %d", res.TechStackScore)
	}
}

func TestCalculate_EndToEnd(t *testing.T) {
	res := Calculate(taxonomy.Default(),
		Resume{Text: "5+ years experience with React and Node.js, senior engineer"},
		Job{
			Title:       "Senior Backend Engineer",
			Description: "We need a senior backend engineer",
			TechStack:   []string{"React", "Node.js"},
		},
	)

	if res.TechStackScore != 50 {
		t.Fatalf("expected tech score 50, got %d", res.TechStackScore)
	}
	if res.TitleRelevanceScore != 15 {
		t.Fatalf("expected title score 15, got %d", res.TitleRelevanceScore)
	}
	if res.ExperienceLevelMatch != LevelSenior {
		t.Fatalf("expected senior job level, got %s", res.ExperienceLevelMatch)
	}
	if res.Score != 85 {
		t.Fatalf("expected score 85, got %d", res.Score)
	}
	if len(res.MatchingTechnologies) != 2 {
		t.Fatalf("expected both technologies matched, got %v", res.MatchingTechnologies)
	}
	if len(res.MissingTechnologies) != 0 {
		t.Fatalf("expected no missing technologies, got %v", res.MissingTechnologies)
	}
}

func TestTitleRelevance_Cap(t *testing.T) {
	res := Calculate(taxonomy.Default(),
		Resume{Text: "engineer and developer and architect"},
		Job{Title: "developer engineer architect", Description: "", TechStack: nil},
	)
	if res.TitleRelevanceScore != 30 {
		t.Fatalf("expected title score capped at 30, got %d", res.TitleRelevanceScore)
	}
}

func TestClassifyLevel(t *testing.T) {
	cases := []struct {
		text string
		want Level
	}{
		{"Senior Platform Engineer", LevelSenior},
		{"5+ years required", LevelSenior},
		{"mid level position", LevelMid},
		{"2-5 years experience", LevelMid},
		{"graduate welcome", LevelEntry},
		{"", LevelEntry},
		// senior keywords take precedence over mid
		{"senior or intermediate", LevelSenior},
	}
	for _, tc := range cases {
		if got := ClassifyLevel(tc.text); got != tc.want {
			t.Fatalf("ClassifyLevel(%q) = %s, want %s", tc.text, got, tc.want)
		}
	}
}

// The original matrix is asymmetric: an overqualified resume meets a lower
// bar (15), but an underqualified one scores the mismatch floor even when
// only one tier short.
func TestExperienceMatrix_Asymmetry(t *testing.T) {
	tax := taxonomy.Default()

	res := Calculate(tax,
		Resume{Text: "intermediate developer, 3-5 years"},
		Job{Title: "x", Description: "senior architect wanted", TechStack: nil},
	)
	if exp := res.Score - res.TechStackScore - res.TitleRelevanceScore; exp != 5 {
		t.Fatalf("job=senior resume=mid: expected experience 5, got %d", exp)
	}

	res = Calculate(tax,
		Resume{Text: "senior principal engineer"},
		Job{Title: "x", Description: "mid level role, 2-5 years", TechStack: nil},
	)
	if exp := res.Score - res.TechStackScore - res.TitleRelevanceScore; exp != 15 {
		t.Fatalf("job=mid resume=senior: expected experience 15, got %d", exp)
	}

	res = Calculate(tax,
		Resume{Text: "senior engineer"},
		Job{Title: "x", Description: "graduate role", TechStack: nil},
	)
	if exp := res.Score - res.TechStackScore - res.TitleRelevanceScore; exp != 15 {
		t.Fatalf("job=entry resume=senior: expected experience 15, got %d", exp)
	}
}
