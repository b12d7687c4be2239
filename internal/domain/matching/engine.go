// Package matching computes candidate fit scores against a job's weighted
// skill requirements. The engine is pure: it ranks whatever pool the caller
// hands it and never touches storage.
package matching

import (
	"bytes"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
)

type JobSkill struct {
	SkillName string
	Weight    int
}

// Candidate carries the merged skill names from every extraction source.
type Candidate struct {
	ID     uuid.UUID
	Skills []string
}

type MatchResult struct {
	CandidateID   uuid.UUID
	FitScore      int
	MatchedWeight int
	TotalWeight   int
	MatchedSkills []string
}

// Rank scores every candidate in the pool against the job skills and returns
// results sorted by fit score descending, candidate ID ascending on ties.
// Candidates with no overlap stay in the output with score 0. A job with no
// extracted skills scores every candidate 0.
func Rank(jobSkills []JobSkill, pool []Candidate) []MatchResult {
	total := 0
	for _, s := range jobSkills {
		total += s.Weight
	}

	out := make([]MatchResult, 0, len(pool))
	for _, c := range pool {
		out = append(out, score(jobSkills, total, c))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FitScore == out[j].FitScore {
			return bytes.Compare(out[i].CandidateID[:], out[j].CandidateID[:]) < 0
		}
		return out[i].FitScore > out[j].FitScore
	})
	return out
}

func score(jobSkills []JobSkill, total int, c Candidate) MatchResult {
	res := MatchResult{CandidateID: c.ID, TotalWeight: total, MatchedSkills: []string{}}

	have := make(map[string]struct{}, len(c.Skills))
	for _, s := range c.Skills {
		have[strings.ToLower(s)] = struct{}{}
	}

	matched := 0
	for _, js := range jobSkills {
		if _, ok := have[strings.ToLower(js.SkillName)]; ok {
			matched += js.Weight
			res.MatchedSkills = append(res.MatchedSkills, js.SkillName)
		}
	}
	res.MatchedWeight = matched

	if total <= 0 {
		return res
	}

	fit := int(math.Round(float64(matched) / float64(total) * 100))
	if fit > 100 {
		fit = 100
	}
	if fit < 0 {
		fit = 0
	}
	res.FitScore = fit
	return res
}
