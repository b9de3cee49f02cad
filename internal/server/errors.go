package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/dustin-aeria/muster-sub008/internal/store"
	"github.com/dustin-aeria/muster-sub008/pkg/sora"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// bindError marks a malformed request body or query.
type bindError struct{ err error }

func (e *bindError) Error() string { return "bad request: " + e.err.Error() }
func (e *bindError) Unwrap() error { return e.err }

var statusMapping = []struct {
	err  error
	code int
}{
	{store.ErrNotFound, http.StatusNotFound},
	{sora.ErrInvalidCategory, http.StatusUnprocessableEntity},
	{sora.ErrIncompleteAssessment, http.StatusUnprocessableEntity},
	{sora.ErrDuplicateSite, http.StatusUnprocessableEntity},
}

func statusFor(err error) int {
	for e := err; e != nil; e = errors.Unwrap(e) {
		switch e.(type) {
		case *bindError, validator.ValidationErrors:
			return http.StatusBadRequest
		}
	}
	for _, m := range statusMapping {
		if errors.Is(err, m.err) {
			return m.code
		}
	}
	return http.StatusInternalServerError
}

// errorHandler renders the last error a handler attached to the context.
func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		code := statusFor(err)
		c.JSON(code, ErrorResponse{Message: err.Error(), Code: code})
	}
}
