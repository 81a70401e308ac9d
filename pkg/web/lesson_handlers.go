package web

import (
	"net/http"

	"github.com/doduclong204/vietvibe/pkg/db"
	"github.com/doduclong204/vietvibe/pkg/lesson"
	"github.com/gin-gonic/gin"
)

type saveProgressRequest struct {
	LessonID string  `json:"lesson_id" binding:"required"`
	Seconds  float64 `json:"seconds" binding:"min=0"`
}

func handleSaveProgress(c *gin.Context) {
	var req saveProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := lesson.SaveProgress(identityFrom(c), req.LessonID, req.Seconds); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "progress saved"})
}

func handleGetProgress(c *gin.Context) {
	seconds, err := lesson.GetProgress(identityFrom(c), c.Param("lessonId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"last_watched_second": seconds})
}

func handleCompletedCount(c *gin.Context) {
	count, err := lesson.CountCompletedLessons(identityFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed": count})
}

func handleListLessons(c *gin.Context) {
	result, err := lesson.ListLessons(identityFrom(c), bindPage(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func handleGetLesson(c *gin.Context) {
	l, err := lesson.GetLesson(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func handleCreateLesson(c *gin.Context) {
	var l db.Lesson
	if err := c.ShouldBindJSON(&l); err != nil {
		badRequest(c, err)
		return
	}
	l.CreatedBy = identityFrom(c).Username
	if err := lesson.CreateLesson(&l); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func handleUpdateLesson(c *gin.Context) {
	var updated db.Lesson
	if err := c.ShouldBindJSON(&updated); err != nil {
		badRequest(c, err)
		return
	}
	updated.UpdatedBy = identityFrom(c).Username
	l, err := lesson.UpdateLesson(c.Param("id"), &updated)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func handleDeleteLesson(c *gin.Context) {
	if err := lesson.DeleteLesson(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "lesson deleted"})
}

func handleListVocabulary(c *gin.Context) {
	words, err := lesson.ListVocabulary(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, words)
}

func handleAddVocabulary(c *gin.Context) {
	var v db.Vocabulary
	if err := c.ShouldBindJSON(&v); err != nil {
		badRequest(c, err)
		return
	}
	if err := lesson.AddVocabulary(c.Param("id"), &v); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func handleUpdateVocabulary(c *gin.Context) {
	var updated db.Vocabulary
	if err := c.ShouldBindJSON(&updated); err != nil {
		badRequest(c, err)
		return
	}
	v, err := lesson.UpdateVocabulary(c.Param("id"), &updated)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func handleDeleteVocabulary(c *gin.Context) {
	if err := lesson.DeleteVocabulary(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vocabulary deleted"})
}
