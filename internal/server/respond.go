package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kapu/socialintel-go/internal/service/ai"
	apperrors "github.com/kapu/socialintel-go/pkg/errors"
)

type errorResponse struct {
	Error string         `json:"error"`
	Code  string         `json:"code"`
	Extra map[string]any `json:"context,omitempty"`
}

// dataResponse wraps every successful or degraded payload.
type dataResponse struct {
	Data     any              `json:"data"`
	Reason   ai.FailureReason `json:"reason,omitempty"`
	Fallback bool             `json:"fallback,omitempty"`
}

// writeError maps typed errors to their HTTP status.
func writeError(c *gin.Context, err error) {
	if base, ok := apperrors.Base(err); ok {
		status := base.StatusCode
		if status == 0 {
			status = http.StatusInternalServerError
		}
		c.AbortWithStatusJSON(status, errorResponse{
			Error: base.Message,
			Code:  base.Code,
			Extra: base.Context,
		})
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{
		Error: err.Error(),
		Code:  apperrors.CodeAppError,
	})
}

func badRequest(c *gin.Context, message, field string) {
	writeError(c, apperrors.NewValidationError(message, field, nil))
}

// bindOptionalJSON decodes the body into dest and accepts an empty body.
func bindOptionalJSON(c *gin.Context, dest any) error {
	if err := c.ShouldBindJSON(dest); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func wantsFallback(c *gin.Context) bool {
	return c.Query("fallback") == "true"
}

// respondResult writes a degraded result as 200 with its reason, except
// for rejected input.
func respondResult(c *gin.Context, r ToolResult) {
	if r.Err == nil {
		c.JSON(http.StatusOK, dataResponse{Data: r.Value})
		return
	}
	if r.Reason == ai.ReasonInvalidInput {
		badRequest(c, r.Err.Error(), "")
		return
	}
	if r.Fallback != nil && wantsFallback(c) {
		c.JSON(http.StatusOK, dataResponse{Data: r.Fallback, Reason: r.Reason, Fallback: true})
		return
	}
	c.JSON(http.StatusOK, dataResponse{Data: r.Value, Reason: r.Reason})
}
