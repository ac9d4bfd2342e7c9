package profile

const (
	ModeQuickplay   = "quickplay"
	ModeCompetitive = "competitive"
)

// Modes is every game mode a profile page can have, in the order they are built.
var Modes = []string{ModeQuickplay, ModeCompetitive}

func validMode(mode string) bool {
	for _, m := range Modes {
		if m == mode {
			return true
		}
	}
	return false
}

const (
	ListEarned  = "earned"
	ListMissing = "missing"
)

// HeroStats maps a stat card title ("Combat", "Best", ...) to the stats on it.
type HeroStats = Ordered[Pairs]

// Mode holds everything a profile page shows for one game mode.
type Mode struct {
	// Comparisons maps a comparison ("Games Won", ...) to the value of each hero.
	Comparisons Ordered[Pairs] `json:"comparisons"`
	// Stats maps a hero ("All Heroes", "Tracer", ...) to its stat cards.
	Stats Ordered[HeroStats] `json:"stats"`
}

type AchievementList struct {
	Earned  []string `json:"earned"`
	Missing []string `json:"missing"`
}

// Model is everything scraped from one profile page.
type Model struct {
	// Modes only contains the modes the player has data for.
	Modes Ordered[Mode] `json:"modes"`
	// Achievements maps an achievement type ("General", "Offense", ...) to its lists.
	Achievements Ordered[AchievementList] `json:"achievements"`
}

func clonePairs(p Pairs) Pairs {
	return p.Clone(Value.clone)
}

func cloneHeroStats(h HeroStats) HeroStats {
	return h.Clone(clonePairs)
}

func (m Mode) clone() Mode {
	return Mode{
		Comparisons: m.Comparisons.Clone(clonePairs),
		Stats:       m.Stats.Clone(cloneHeroStats),
	}
}

func (l AchievementList) clone() AchievementList {
	return AchievementList{
		Earned:  append([]string{}, l.Earned...),
		Missing: append([]string{}, l.Missing...),
	}
}

// Clone returns a deep copy of m. The cached model of a Profile is never handed
// out directly, callers always get a Clone of it.
func (m Model) Clone() Model {
	return Model{
		Modes:        m.Modes.Clone(Mode.clone),
		Achievements: m.Achievements.Clone(AchievementList.clone),
	}
}
