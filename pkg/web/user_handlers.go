package web

import (
	"net/http"

	"github.com/doduclong204/vietvibe/pkg/auth"
	"github.com/doduclong204/vietvibe/pkg/db"
	"github.com/gin-gonic/gin"
)

func handleListUsers(c *gin.Context) {
	result, err := auth.ListUsers(bindPage(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func handleGetUser(c *gin.Context) {
	u, err := auth.GetUser(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func handleUpdateUser(c *gin.Context) {
	var updated db.User
	if err := c.ShouldBindJSON(&updated); err != nil {
		badRequest(c, err)
		return
	}
	updated.UpdatedBy = identityFrom(c).Username
	u, err := auth.UpdateUser(c.Param("id"), &updated)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func handleDeleteUser(c *gin.Context) {
	if err := auth.DeleteUser(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
