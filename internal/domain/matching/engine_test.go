package matching

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
)

var backendJob = []JobSkill{
	{SkillName: "Python", Weight: 10},
	{SkillName: "Django", Weight: 10},
	{SkillName: "PostgreSQL", Weight: 8},
	{SkillName: "REST", Weight: 9},
	{SkillName: "Docker", Weight: 7},
}

func TestRank_FitScores(t *testing.T) {
	full := Candidate{ID: uuid.New(), Skills: []string{"Python", "Django", "PostgreSQL", "REST", "Docker"}}
	partial := Candidate{ID: uuid.New(), Skills: []string{"Python", "Django"}}
	none := Candidate{ID: uuid.New(), Skills: []string{"Excel"}}

	results := Rank(backendJob, []Candidate{none, partial, full})
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	// total weight 44: full match 44/44, partial 20/44.
	if results[0].CandidateID != full.ID || results[0].FitScore != 100 {
		t.Fatalf("top: %+v", results[0])
	}
	if results[1].CandidateID != partial.ID || results[1].FitScore != 45 {
		t.Fatalf("second: %+v", results[1])
	}
	if results[1].MatchedWeight != 20 || results[1].TotalWeight != 44 {
		t.Fatalf("weights: %+v", results[1])
	}
	if results[2].CandidateID != none.ID || results[2].FitScore != 0 {
		t.Fatalf("third: %+v", results[2])
	}
}

func TestRank_MatchedSkillsInJobOrder(t *testing.T) {
	c := Candidate{ID: uuid.New(), Skills: []string{"docker", "python"}}

	results := Rank(backendJob, []Candidate{c})
	want := []string{"Python", "Docker"}
	if !reflect.DeepEqual(results[0].MatchedSkills, want) {
		t.Fatalf("matched = %v, want %v", results[0].MatchedSkills, want)
	}
	// 10 + 7 of 44 -> 38.6 -> 39
	if results[0].FitScore != 39 {
		t.Fatalf("fit = %d, want 39", results[0].FitScore)
	}
}

func TestRank_CaseInsensitiveMatch(t *testing.T) {
	c := Candidate{ID: uuid.New(), Skills: []string{"PYTHON", "django", "PostgreSQL"}}

	results := Rank(backendJob, []Candidate{c})
	// 28 of 44 -> 63.6 -> 64
	if results[0].FitScore != 64 {
		t.Fatalf("fit = %d, want 64", results[0].FitScore)
	}
}

func TestRank_ZeroJobSkills(t *testing.T) {
	a := Candidate{ID: uuid.New(), Skills: []string{"Python"}}
	b := Candidate{ID: uuid.New(), Skills: nil}

	results := Rank(nil, []Candidate{a, b})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.FitScore != 0 {
			t.Fatalf("zero-skill job must score 0, got %+v", r)
		}
		if r.MatchedSkills == nil || len(r.MatchedSkills) != 0 {
			t.Fatalf("matched skills must be empty, got %+v", r.MatchedSkills)
		}
	}
}

func TestRank_TieBrokenByCandidateID(t *testing.T) {
	lo := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	hi := uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")

	a := Candidate{ID: hi, Skills: []string{"Python"}}
	b := Candidate{ID: lo, Skills: []string{"Python"}}

	results := Rank(backendJob, []Candidate{a, b})
	if results[0].CandidateID != lo {
		t.Fatalf("tie should order by candidate id ascending, got %v first", results[0].CandidateID)
	}
	if results[0].FitScore != results[1].FitScore {
		t.Fatalf("expected a tie, got %d vs %d", results[0].FitScore, results[1].FitScore)
	}
}

func TestRank_EmptyPool(t *testing.T) {
	results := Rank(backendJob, nil)
	if len(results) != 0 {
		t.Fatalf("expected empty results, got %v", results)
	}
}
