package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"saccoledger/internal/pkg/logger"
	"saccoledger/internal/pkg/models"
)

// respondSuccess wraps data in the {success:true, ...} envelope.
func respondSuccess(c *gin.Context, data gin.H) {
	payload := gin.H{"success": true}
	for k, v := range data {
		payload[k] = v
	}
	c.JSON(http.StatusOK, payload)
}

// respondError maps domain errors to a 400 envelope and everything else to
// an opaque 500.
func respondError(c *gin.Context, err error) {
	code := models.ErrorCode(err)
	if code == "InternalError" {
		logger.CtxError(c.Request.Context(), "Request failed with internal error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "internal error",
			"code":    code,
		})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}
