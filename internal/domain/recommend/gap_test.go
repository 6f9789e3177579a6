package recommend

import (
	"testing"

	"github.com/google/uuid"
)

func TestAnalyzeGap_PartitionsRequiredSkills(t *testing.T) {
	skillA := uuid.New()
	skillB := uuid.New()
	skillC := uuid.New()

	userSkills := []UserSkill{
		{SkillID: skillA, Level: LevelAdvanced},
		{SkillID: skillC, Level: LevelBeginner},
		{SkillID: uuid.New(), Level: LevelIntermediate},
	}
	required := []uuid.UUID{skillA, skillB, skillC}

	g := AnalyzeGap(userSkills, required)

	if len(g.Held) != 2 {
		t.Fatalf("expected 2 held skills, got %d", len(g.Held))
	}
	if len(g.Missing) != 1 || g.Missing[0] != skillB {
		t.Fatalf("expected only %s missing, got %v", skillB, g.Missing)
	}
	if len(g.Held)+len(g.Missing) != len(required) {
		t.Fatalf("held + missing must cover required")
	}

	// Required order is preserved.
	if g.Held[0].SkillID != skillA || g.Held[1].SkillID != skillC {
		t.Fatalf("held order not preserved: %v", g.Held)
	}
	if g.Held[0].Level != LevelAdvanced || g.Held[1].Level != LevelBeginner {
		t.Fatalf("held levels wrong: %v", g.Held)
	}

	// 2 of 3 held rounds to 67.
	if g.Readiness != 67 {
		t.Fatalf("expected readiness 67, got %d", g.Readiness)
	}
}

func TestAnalyzeGap_EmptyRequired(t *testing.T) {
	userSkills := []UserSkill{{SkillID: uuid.New(), Level: LevelAdvanced}}

	g := AnalyzeGap(userSkills, nil)
	if g.Readiness != 0 {
		t.Fatalf("expected readiness 0 for no required skills, got %d", g.Readiness)
	}
	if len(g.Held) != 0 || len(g.Missing) != 0 {
		t.Fatalf("expected empty partitions, got held=%v missing=%v", g.Held, g.Missing)
	}
}

func TestAnalyzeGap_FullAndZeroReadiness(t *testing.T) {
	skillA := uuid.New()
	skillB := uuid.New()
	required := []uuid.UUID{skillA, skillB}

	full := AnalyzeGap([]UserSkill{
		{SkillID: skillA, Level: LevelBeginner},
		{SkillID: skillB, Level: LevelBeginner},
	}, required)
	if full.Readiness != 100 {
		t.Fatalf("expected readiness 100, got %d", full.Readiness)
	}

	none := AnalyzeGap(nil, required)
	if none.Readiness != 0 {
		t.Fatalf("expected readiness 0, got %d", none.Readiness)
	}
	if len(none.Missing) != 2 {
		t.Fatalf("expected all required missing, got %v", none.Missing)
	}
}
