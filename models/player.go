package models

import (
	"fmt"
	"time"
)

// SkillTier - уровень игрока. Значения упорядочены: UltraNoob < Noob < Pro < UltraPro.
type SkillTier int

const (
	TierUltraNoob SkillTier = iota
	TierNoob
	TierPro
	TierUltraPro
)

// Tiers lists every tier from the weakest to the strongest.
var Tiers = []SkillTier{TierUltraNoob, TierNoob, TierPro, TierUltraPro}

var tierNames = map[SkillTier]string{
	TierUltraNoob: "ultra_noob",
	TierNoob:      "noob",
	TierPro:       "pro",
	TierUltraPro:  "ultra_pro",
}

func (t SkillTier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// Strong reports whether the tier is Pro or above.
func (t SkillTier) Strong() bool {
	return t >= TierPro
}

func (t SkillTier) Valid() bool {
	_, ok := tierNames[t]
	return ok
}

// ParseSkillTier преобразует строковое значение (как в БД и JSON) в SkillTier.
func ParseSkillTier(s string) (SkillTier, error) {
	for tier, name := range tierNames {
		if name == s {
			return tier, nil
		}
	}
	return 0, fmt.Errorf("unknown skill tier %q", s)
}

func (t SkillTier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid skill tier %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *SkillTier) UnmarshalText(text []byte) error {
	parsed, err := ParseSkillTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Player - игрок из ростера. Движок сборки команд только читает эти значения.
type Player struct {
	ID        int       `json:"id" db:"id"`
	Nickname  string    `json:"nickname" db:"nickname"`
	Tier      SkillTier `json:"tier" db:"tier"`
	Deleted   bool      `json:"deleted" db:"deleted"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
