package service

import (
	"sort"

	"github.com/avvvet/leaderboard-services/internal/leaderboardsvc/models"
)

var statusPriority = map[string]int{
	models.GameStatusStarted: 0,
	models.GameStatusPending: 1,
	models.GameStatusEnded:   2,
}

func gameStatusPriority(status string) int {
	if p, ok := statusPriority[status]; ok {
		return p
	}
	return 3
}

// SortGames orders games started first, then pending, then ended, then any
// other status. Within a status, games with fewer active players come first.
// Remaining ties keep their input order.
func SortGames(games []*models.GameListItem) {
	sort.SliceStable(games, func(i, j int) bool {
		pi, pj := gameStatusPriority(games[i].Status), gameStatusPriority(games[j].Status)
		if pi != pj {
			return pi < pj
		}
		return games[i].ActivePlayers < games[j].ActivePlayers
	})
}
