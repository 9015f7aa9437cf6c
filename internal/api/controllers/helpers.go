package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// callerID reads the authenticated account id set by the JWT middleware.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// isOperator reports whether the caller is exempt from quota enforcement.
func isOperator(c *gin.Context) bool {
	return c.GetString("role") == "admin"
}
