package model

// Skill indexes one of the rated abilities of a player.
type Skill int

// Rated skills. SkillCount must stay last.
const (
	Skating Skill = iota
	Shooting
	Checking
	SkillCount
)

var skillNames = [SkillCount]string{
	Skating:  "Skating",
	Shooting: "Shooting",
	Checking: "Checking",
}

// Skills returns every rated skill in index order.
func Skills() []Skill {
	return []Skill{Skating, Shooting, Checking}
}

// String returns the skill's display name, as used in player payloads.
func (s Skill) String() string {
	if s < 0 || s >= SkillCount {
		return "Unknown"
	}
	return skillNames[s]
}

// SkillByName resolves a display name such as "Skating".
func SkillByName(name string) (Skill, bool) {
	for i, n := range skillNames {
		if n == name {
			return Skill(i), true
		}
	}
	return 0, false
}
