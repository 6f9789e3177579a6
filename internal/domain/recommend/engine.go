package recommend

import (
	"bytes"
	"math"
	"sort"

	"github.com/google/uuid"
)

// Level is a user's self-declared proficiency in a skill. It is stored as
// a string and mapped to a numeric weight for scoring.
type Level string

const (
	LevelBeginner     Level = "BEGINNER"
	LevelIntermediate Level = "INTERMEDIATE"
	LevelAdvanced     Level = "ADVANCED"
)

func ParseLevel(s string) (Level, bool) {
	switch Level(s) {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return Level(s), true
	}
	return "", false
}

func (l Level) Weight() int {
	switch l {
	case LevelAdvanced:
		return 3
	case LevelIntermediate:
		return 2
	default:
		return 1
	}
}

type UserSkill struct {
	SkillID uuid.UUID
	Level   Level
}

type Career struct {
	ID             uuid.UUID
	Title          string
	RequiredSkills []uuid.UUID
}

type CareerScore struct {
	CareerID        uuid.UUID
	Title           string
	Score           float64
	MatchPercentage int
	MatchedSkills   int
	RequiredSkills  int
}

const (
	matchWeight       = 0.7
	proficiencyWeight = 0.3
	proficiencyScale  = 10.0
)

// Rank scores every career against the user's skill profile and returns the
// top results by score descending. Careers with no required skills and
// careers with no overlap at all are excluded. Ties are broken by career id
// ascending so the order is deterministic regardless of catalog enumeration.
func Rank(userSkills []UserSkill, careers []Career, limit int) []CareerScore {
	weights := make(map[uuid.UUID]int, len(userSkills))
	for _, us := range userSkills {
		if us.SkillID == uuid.Nil {
			continue
		}
		weights[us.SkillID] = us.Level.Weight()
	}

	out := make([]CareerScore, 0, len(careers))
	for _, c := range careers {
		if len(c.RequiredSkills) == 0 {
			continue
		}

		matched := 0
		totalScore := 0
		for _, sid := range c.RequiredSkills {
			if w, ok := weights[sid]; ok {
				matched++
				totalScore += w
			}
		}
		if matched == 0 {
			continue
		}

		// The whole-percent match value feeds the score, so a career's
		// stored match_percentage and score never disagree.
		matchPct := math.Round(float64(matched) / float64(len(c.RequiredSkills)) * 100)
		avgProficiency := float64(totalScore) / float64(matched)
		score := matchWeight*matchPct + proficiencyWeight*(avgProficiency*proficiencyScale)

		out = append(out, CareerScore{
			CareerID:        c.ID,
			Title:           c.Title,
			Score:           round2(score),
			MatchPercentage: int(matchPct),
			MatchedSkills:   matched,
			RequiredSkills:  len(c.RequiredSkills),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return bytes.Compare(out[i].CareerID[:], out[j].CareerID[:]) < 0
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
