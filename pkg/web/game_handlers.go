package web

import (
	"net/http"
	"strconv"

	"github.com/doduclong204/vietvibe/pkg/apperr"
	"github.com/doduclong204/vietvibe/pkg/db"
	"github.com/doduclong204/vietvibe/pkg/game"
	"github.com/doduclong204/vietvibe/pkg/logger"
	"github.com/doduclong204/vietvibe/pkg/notify"
	"github.com/doduclong204/vietvibe/pkg/pagination"
	"github.com/doduclong204/vietvibe/pkg/point"
	"github.com/gin-gonic/gin"
)

type createGameRequest struct {
	Name          string        `json:"name" binding:"required"`
	Description   string        `json:"description"`
	Type          string        `json:"type" binding:"required,gametype"`
	TotalQuestion int           `json:"total_question"`
	Questions     []db.Question `json:"questions"`
}

type submitScoreRequest struct {
	Score          int `json:"score" binding:"min=0"`
	CorrectAnswers int `json:"correct_answers" binding:"min=0"`
	TotalQuestions int `json:"total_questions" binding:"min=0"`
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(v), true
}

func bindPage(c *gin.Context) pagination.Request {
	var page pagination.Request
	// Malformed paging params fall back to the defaults.
	_ = c.ShouldBindQuery(&page)
	return page
}

func handleListGames(c *gin.Context) {
	result, err := game.ListGames(bindPage(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func handleGetGame(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	g, err := game.LoadGame(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func handleCreateGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	g := db.Game{
		Name:          req.Name,
		Description:   req.Description,
		Type:          db.GameType(req.Type),
		TotalQuestion: req.TotalQuestion,
		Questions:     req.Questions,
	}
	if err := game.CreateGame(&g); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

func handleUpdateGame(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var updated db.Game
	if err := c.ShouldBindJSON(&updated); err != nil {
		badRequest(c, err)
		return
	}
	g, err := game.UpdateGame(id, &updated)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func handleDeleteGame(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := game.DeleteGame(id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "game deleted"})
}

func handleStartSession(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	session, err := game.StartSession(identityFrom(c).UserID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// handlePlayQuestion evaluates one submitted question and tracks the
// answer on the caller's play session.
func handlePlayQuestion(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var sub game.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		badRequest(c, err)
		return
	}

	g, err := game.LoadGame(id)
	if err != nil {
		writeError(c, err)
		return
	}
	verdict, err := game.Evaluate(g, sub)
	if err != nil {
		writeError(c, err)
		return
	}

	identity := identityFrom(c)
	if _, err := game.RecordAnswer(identity.UserID, id, sub.QuestionID, verdict.Correct); err != nil {
		// Session tracking is advisory; the verdict still stands.
		if !apperr.Is(err, apperr.NotFound) {
			logger.Error("failed to record session answer", "error", err, "game_id", id)
		}
	}

	c.JSON(http.StatusOK, verdict)
}

// isNewBest reports whether the just-recorded submission holds the
// game record. Best score tracks score+bonus, so a perfect-run bonus
// counts toward the record.
func isNewBest(g *db.Game, rec *point.Record) bool {
	total := rec.Score + rec.Bonus
	return total > 0 && total == g.BestScore
}

func submitScoreHandler(notifier *notify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id")
		if !ok {
			return
		}
		var req submitScoreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		identity := identityFrom(c)
		record, err := point.Submit(identity.UserID, id, req.Score, req.CorrectAnswers, req.TotalQuestions)
		if err != nil {
			writeError(c, err)
			return
		}
		if err := game.FinishSession(identity.UserID, id); err != nil {
			logger.Error("failed to finish play session", "error", err, "game_id", id)
		}

		var g db.Game
		if err := db.DB.First(&g, "id = ?", id).Error; err == nil {
			if isNewBest(&g, record) {
				notifier.BestScore(c.Request.Context(), identity.Username, g.Name, g.BestScore)
			}
		}

		c.JSON(http.StatusCreated, record)
	}
}
