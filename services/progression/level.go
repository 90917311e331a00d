package progression

import "math"

// Rank orders the named levels. Higher is better.
type Rank int

const (
	RankProphyte Rank = iota
	RankAcolyte
	RankArchon
	RankArchonMax
)

type step struct {
	min  int
	rank Rank
	name string
	next int
}

var ladder = []step{
	{min: 0, rank: RankProphyte, name: "Prophyte", next: 250},
	{min: 250, rank: RankAcolyte, name: "Acolyte", next: 750},
	{min: 750, rank: RankArchon, name: "Archon", next: 1500},
	{min: 1500, rank: RankArchonMax, name: "Archon (Max)", next: 1500},
}

// LevelInfo is what the UI shows for a learner's xp.
type LevelInfo struct {
	Rank          Rank   `json:"rank"`
	Name          string `json:"name"`
	XP            int    `json:"xp"`
	NextThreshold int    `json:"next_threshold"`
	Progress      int    `json:"progress"`
}

// LevelFor maps an xp total to its level. Negative xp is treated as 0.
func LevelFor(xp int) LevelInfo {
	if xp < 0 {
		xp = 0
	}
	current := ladder[0]
	for _, s := range ladder {
		if xp >= s.min {
			current = s
		}
	}

	progress := int(math.Round(100 * float64(xp) / float64(current.next)))
	if progress > 100 {
		progress = 100
	}

	return LevelInfo{
		Rank:          current.rank,
		Name:          current.name,
		XP:            xp,
		NextThreshold: current.next,
		Progress:      progress,
	}
}

// LevelName is shorthand for LevelFor(xp).Name.
func LevelName(xp int) string {
	return LevelFor(xp).Name
}

// RankByName resolves a level name such as "Acolyte".
func RankByName(name string) (Rank, bool) {
	for _, s := range ladder {
		if s.name == name {
			return s.rank, true
		}
	}
	return 0, false
}

// levelsReached lists the levels entered when xp moves from before to after, lowest first.
func levelsReached(before, after int) []LevelInfo {
	from := LevelFor(before).Rank
	to := LevelFor(after).Rank
	var reached []LevelInfo
	for _, s := range ladder {
		if s.rank > from && s.rank <= to {
			reached = append(reached, LevelFor(s.min))
		}
	}
	return reached
}
