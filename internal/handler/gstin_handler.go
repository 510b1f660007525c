package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gstpilot/internal/gst"
)

// GSTINHandler handles the stateless GSTIN validation endpoint.
type GSTINHandler struct{}

// NewGSTINHandler creates a new GSTINHandler.
func NewGSTINHandler() *GSTINHandler {
	return &GSTINHandler{}
}

// Validate handles GET /api/v1/gstin/:gstin
// Validation failures are part of the contract here, so they come back
// as 200 with valid=false rather than an error status.
func (h *GSTINHandler) Validate(c *gin.Context) {
	details, err := gst.ValidateGSTIN(c.Param("gstin"))
	if err != nil {
		_, code, msg := MapDomainError(err)
		c.JSON(http.StatusOK, APIResponse{
			Success: true,
			Data:    gin.H{"valid": false, "reason": code, "message": msg},
		})
		return
	}
	RespondOK(c, gin.H{"valid": true, "details": details})
}
