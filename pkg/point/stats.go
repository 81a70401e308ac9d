package point

import (
	"github.com/doduclong204/vietvibe/pkg/db"
)

// Stats summarizes one user's ledger. TotalPoints sums the single best
// score+bonus per distinct game, so repeated plays of the same game are
// not double-counted; GamesPlayed counts every attempt.
type Stats struct {
	TotalPoints  int   `json:"total_points"`
	GamesPlayed  int64 `json:"games_played"`
	HighestScore int   `json:"highest_score"`
}

func GetUserStats(userID string) (*Stats, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	var perGameBest []struct {
		GameID uint
		Best   int
	}
	if err := db.DB.Model(&db.Point{}).
		Select("game_id, MAX(score + bonus) AS best").
		Where("user_id = ?", userID).
		Group("game_id").
		Scan(&perGameBest).Error; err != nil {
		return nil, err
	}

	stats := &Stats{}
	for _, row := range perGameBest {
		stats.TotalPoints += row.Best
		if row.Best > stats.HighestScore {
			stats.HighestScore = row.Best
		}
	}

	if err := db.DB.Model(&db.Point{}).
		Where("user_id = ?", userID).
		Count(&stats.GamesPlayed).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// GetTotalScore sums score+bonus over every attempt of the user.
func GetTotalScore(userID string) (int, error) {
	if err := requireUser(userID); err != nil {
		return 0, err
	}
	var total *int
	if err := db.DB.Model(&db.Point{}).
		Select("SUM(score + bonus)").
		Where("user_id = ?", userID).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func GetAverageScore(userID string) (float64, error) {
	if err := requireUser(userID); err != nil {
		return 0, err
	}
	var avg *float64
	if err := db.DB.Model(&db.Point{}).
		Select("AVG(score + bonus)").
		Where("user_id = ?", userID).
		Scan(&avg).Error; err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

// GetTotalGames counts the distinct games the user has played.
func GetTotalGames(userID string) (int64, error) {
	if err := requireUser(userID); err != nil {
		return 0, err
	}
	var count int64
	if err := db.DB.Model(&db.Point{}).
		Where("user_id = ?", userID).
		Distinct("game_id").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GameStats reports per-game aggregates derived from the ledger rows,
// independent of the counters stored on the game itself.
type GameStats struct {
	GameID      uint  `json:"game_id"`
	TimesPlayed int64 `json:"times_played"`
	BestScore   int   `json:"best_score"`
}

func GetGameStats(gameID uint) (*GameStats, error) {
	if err := requireGame(gameID); err != nil {
		return nil, err
	}
	stats := &GameStats{GameID: gameID}
	if err := db.DB.Model(&db.Point{}).
		Where("game_id = ?", gameID).
		Count(&stats.TimesPlayed).Error; err != nil {
		return nil, err
	}
	var best *int
	if err := db.DB.Model(&db.Point{}).
		Select("MAX(score + bonus)").
		Where("game_id = ?", gameID).
		Scan(&best).Error; err != nil {
		return nil, err
	}
	if best != nil {
		stats.BestScore = *best
	}
	return stats, nil
}

// GetMaxScore and GetMinScore report the global score+bonus extremes
// across the whole ledger; 0 when the ledger is empty.
func GetMaxScore() (int, error) {
	return scanExtreme("MAX(score + bonus)")
}

func GetMinScore() (int, error) {
	return scanExtreme("MIN(score + bonus)")
}

func scanExtreme(expr string) (int, error) {
	var value *int
	if err := db.DB.Model(&db.Point{}).Select(expr).Scan(&value).Error; err != nil {
		return 0, err
	}
	if value == nil {
		return 0, nil
	}
	return *value, nil
}
