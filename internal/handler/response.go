package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gstpilot/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrDuplicateGSTIN):
		return http.StatusConflict, "DUPLICATE_GSTIN", "a profile with this GSTIN already exists"
	case errors.Is(err, domain.ErrInvalidGSTINLength):
		return http.StatusBadRequest, "INVALID_GSTIN_LENGTH", "GSTIN must be exactly 15 characters"
	case errors.Is(err, domain.ErrInvalidGSTINFormat):
		return http.StatusBadRequest, "INVALID_GSTIN_FORMAT", "GSTIN does not match the registration format"
	case errors.Is(err, domain.ErrUnknownStateCode):
		return http.StatusBadRequest, "UNKNOWN_STATE_CODE", "GSTIN state code is not a known state"
	case errors.Is(err, domain.ErrBadGSTINChecksum):
		return http.StatusBadRequest, "BAD_GSTIN_CHECKSUM", "GSTIN check character does not match"
	case errors.Is(err, domain.ErrInvalidPeriod):
		return http.StatusBadRequest, "INVALID_PERIOD", "period must be MMYYYY on or after 072017"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, "INVALID_TRANSITION", "filing status does not allow this action"
	case errors.Is(err, domain.ErrInvoiceFrozen):
		return http.StatusConflict, "INVOICE_FROZEN", "invoice belongs to a filed period and cannot change"
	case errors.Is(err, domain.ErrProfileHasFilings):
		return http.StatusConflict, "PROFILE_HAS_FILINGS", "profile has filings on record and cannot be deleted"
	case errors.Is(err, domain.ErrEmptyLineItems):
		return http.StatusBadRequest, "EMPTY_LINE_ITEMS", "invoice must have at least one line item"
	case errors.Is(err, domain.ErrUnsupportedReturn):
		return http.StatusBadRequest, "UNSUPPORTED_RETURN", "return type not supported; allowed: GSTR1, GSTR3B"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
