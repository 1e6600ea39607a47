package service

import (
	"time"

	"github.com/avvvet/leaderboard-services/internal/leaderboardsvc/models"
	"github.com/shopspring/decimal"
)

// Weights of the normalised metrics w1..w5; they sum to 1.
const (
	weightYesterdayPlayers  = 0.30
	weightCurrentPlayers    = 0.20
	weightUpvotes           = 0.25
	weightMaxSession        = 0.15
	weightYesterdaySessions = 0.10
)

// Aggregate picks the metrics of gameID out of a per-game snapshot and
// scores them against the largest value of each metric across the snapshot.
// A game missing from the snapshot has no sessions and scores zero.
func Aggregate(gameID int64, snapshot []models.PopularityMetrics) (models.PopularityMetrics, float64) {
	target := models.PopularityMetrics{GameID: gameID}
	var maxima models.PopularityMetrics

	for _, m := range snapshot {
		if m.GameID == gameID {
			target = m
		}
		maxima.YesterdayPlayers = max(maxima.YesterdayPlayers, m.YesterdayPlayers)
		maxima.CurrentPlayers = max(maxima.CurrentPlayers, m.CurrentPlayers)
		maxima.Upvotes = max(maxima.Upvotes, m.Upvotes)
		maxima.MaxSessionSeconds = max(maxima.MaxSessionSeconds, m.MaxSessionSeconds)
		maxima.YesterdaySessions = max(maxima.YesterdaySessions, m.YesterdaySessions)
	}

	// denominators never drop below one (one second for durations)
	index := weightYesterdayPlayers*ratio(target.YesterdayPlayers, maxima.YesterdayPlayers) +
		weightCurrentPlayers*ratio(target.CurrentPlayers, maxima.CurrentPlayers) +
		weightUpvotes*ratio(target.Upvotes, maxima.Upvotes) +
		weightMaxSession*target.MaxSessionSeconds/max(maxima.MaxSessionSeconds, 1) +
		weightYesterdaySessions*ratio(target.YesterdaySessions, maxima.YesterdaySessions)

	return target, roundIndex(index)
}

func ratio(value, maximum int64) float64 {
	return float64(value) / float64(max(maximum, 1))
}

func roundIndex(v float64) float64 {
	return decimal.NewFromFloat(v).Round(4).InexactFloat64()
}

// yesterday returns the UTC calendar date before now.
func yesterday(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
}
