package recommend

import (
	"math"

	"github.com/google/uuid"
)

type HeldSkill struct {
	SkillID uuid.UUID
	Level   Level
}

type Gap struct {
	Readiness int
	Held      []HeldSkill
	Missing   []uuid.UUID
}

// AnalyzeGap partitions a career's required skills into those the user
// holds (with the stored level) and those missing, preserving the required
// order. Readiness is the held share rounded to a whole percentage; a
// career with no required skills yields readiness 0.
func AnalyzeGap(userSkills []UserSkill, required []uuid.UUID) Gap {
	levels := make(map[uuid.UUID]Level, len(userSkills))
	for _, us := range userSkills {
		if us.SkillID == uuid.Nil {
			continue
		}
		levels[us.SkillID] = us.Level
	}

	g := Gap{
		Held:    make([]HeldSkill, 0, len(required)),
		Missing: make([]uuid.UUID, 0),
	}
	for _, sid := range required {
		if lvl, ok := levels[sid]; ok {
			g.Held = append(g.Held, HeldSkill{SkillID: sid, Level: lvl})
		} else {
			g.Missing = append(g.Missing, sid)
		}
	}

	if len(required) > 0 {
		g.Readiness = int(math.Round(float64(len(g.Held)) / float64(len(required)) * 100))
	}
	return g
}
