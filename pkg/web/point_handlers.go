package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/doduclong204/vietvibe/pkg/point"
	"github.com/gin-gonic/gin"
)

type updatePointRequest struct {
	Score int `json:"score" binding:"min=0"`
	Bonus int `json:"bonus" binding:"min=0"`
}

func handleListPoints(c *gin.Context) {
	result, err := point.GetAllPoints(bindPage(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func handleSearchPoints(c *gin.Context) {
	filter := point.Filter{
		Keyword:  c.Query("keyword"),
		Username: c.Query("username"),
		GameName: c.Query("game_name"),
	}
	if v, err := strconv.Atoi(c.Query("min_score")); err == nil {
		filter.MinScore = &v
	}
	if v, err := strconv.Atoi(c.Query("max_score")); err == nil {
		filter.MaxScore = &v
	}
	if t, err := time.Parse(time.RFC3339, c.Query("from")); err == nil {
		filter.From = &t
	}
	if t, err := time.Parse(time.RFC3339, c.Query("to")); err == nil {
		filter.To = &t
	}

	result, err := point.Search(filter, bindPage(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func handlePointsByScoreRange(c *gin.Context) {
	min, err := strconv.Atoi(c.Query("min"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min"})
		return
	}
	max, err := strconv.Atoi(c.Query("max"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max"})
		return
	}
	records, err := point.GetPointsByScoreRange(min, max)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func handleMaxScore(c *gin.Context) {
	score, err := point.GetMaxScore()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"max_score": score})
}

func handleMinScore(c *gin.Context) {
	score, err := point.GetMinScore()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"min_score": score})
}

func handleUserStats(c *gin.Context) {
	stats, err := point.GetUserStats(c.Param("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func handleUserHistory(c *gin.Context) {
	userID := c.Param("userId")
	if gameParam := c.Query("game_id"); gameParam != "" {
		gameID, err := strconv.ParseUint(gameParam, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game_id"})
			return
		}
		records, err := point.GetHistoryByGame(userID, uint(gameID))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, records)
		return
	}

	records, err := point.GetHistory(userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func handleGameStats(c *gin.Context) {
	gameID, err := strconv.ParseUint(c.Param("gameId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gameId"})
		return
	}
	stats, err := point.GetGameStats(uint(gameID))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func handleUpdatePoint(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req updatePointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	record, err := point.UpdatePoint(id, req.Score, req.Bonus)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func handleDeletePoint(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := point.DeletePoint(id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "point deleted"})
}

func handleResetUserPoints(c *gin.Context) {
	if err := point.ResetUserPoints(c.Param("userId")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user points reset"})
}

func handleResetGamePoints(c *gin.Context) {
	gameID, err := strconv.ParseUint(c.Param("gameId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gameId"})
		return
	}
	if err := point.ResetGamePoints(uint(gameID)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "game points reset"})
}
