package game

import (
	"errors"
	"strings"

	"github.com/doduclong204/vietvibe/pkg/apperr"
	"github.com/doduclong204/vietvibe/pkg/db"
	"github.com/doduclong204/vietvibe/pkg/logger"
	"github.com/doduclong204/vietvibe/pkg/pagination"
	"gorm.io/gorm"
)

type PageResult struct {
	Meta   pagination.Meta `json:"meta"`
	Result []db.Game       `json:"result"`
}

// CreateGame stores a game with its nested questions and answers.
// TotalQuestion is derived from the nested questions when unset.
func CreateGame(g *db.Game) error {
	if !g.Type.Valid() {
		return apperr.Newf(apperr.InvalidSubmission, "unknown game type %q", g.Type)
	}
	if strings.TrimSpace(g.Name) == "" {
		return apperr.New(apperr.InvalidSubmission, "game name is required")
	}
	if g.TotalQuestion == 0 {
		g.TotalQuestion = len(g.Questions)
	}
	if err := db.DB.Create(g).Error; err != nil {
		return err
	}
	logger.Info("created game", "game_id", g.ID, "name", g.Name, "type", g.Type)
	return nil
}

// ListGames pages through games without their question trees.
func ListGames(page pagination.Request) (*PageResult, error) {
	page = page.Normalized()

	var total int64
	if err := db.DB.Model(&db.Game{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var games []db.Game
	if err := db.DB.Order("created_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&games).Error; err != nil {
		return nil, err
	}

	return &PageResult{Meta: pagination.MetaFor(page, total), Result: games}, nil
}

// UpdateGame overwrites the game's own fields. Questions are kept
// as-is; replacing them would orphan in-flight play sessions.
func UpdateGame(gameID uint, updated *db.Game) (*db.Game, error) {
	var g db.Game
	err := db.DB.First(&g, "id = ?", gameID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.NotFound, "game %d not found", gameID)
	}
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(updated.Name); name != "" {
		g.Name = name
	}
	if updated.Description != "" {
		g.Description = updated.Description
	}
	if updated.Type != "" {
		if !updated.Type.Valid() {
			return nil, apperr.Newf(apperr.InvalidSubmission, "unknown game type %q", updated.Type)
		}
		g.Type = updated.Type
	}
	if updated.TotalQuestion > 0 {
		g.TotalQuestion = updated.TotalQuestion
	}

	if err := db.DB.Save(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// DeleteGame removes the game, its question tree, any play sessions
// and the recorded points.
func DeleteGame(gameID uint) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		var g db.Game
		err := tx.Preload("Questions").First(&g, "id = ?", gameID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Newf(apperr.NotFound, "game %d not found", gameID)
		}
		if err != nil {
			return err
		}

		questionIDs := make([]uint, len(g.Questions))
		for i := range g.Questions {
			questionIDs[i] = g.Questions[i].ID
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&db.Answer{}).Error; err != nil {
				return err
			}
			if err := tx.Where("game_id = ?", gameID).Delete(&db.Question{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("game_id = ?", gameID).Delete(&db.PlaySession{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id = ?", gameID).Delete(&db.Point{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db.Game{}, "id = ?", gameID).Error
	})
}
