package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/shared/apperror"
)

// Message is the body of every non-2xx response.
type Message struct {
	Message string `json:"message"`
}

// Success responses
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent writes a bare 204. Gin drops any body for 204 anyway.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error responses
func ErrorMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Message{Message: message})
}

func BadRequest(c *gin.Context, message string) {
	ErrorMessage(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	ErrorMessage(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context) {
	ErrorMessage(c, http.StatusInternalServerError, "Internal server error")
}

// StatusOf maps an application error to its HTTP status.
func StatusOf(err error) int {
	switch apperror.KindOf(err) {
	case apperror.KindValidation, apperror.KindConflict:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as a JSON message. Store failures are logged with their
// cause and reach the client only as a generic message.
func Error(c *gin.Context, err error) {
	status := StatusOf(err)

	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.
		Str("request_id", c.GetString("request_id")).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("kind", apperror.KindOf(err).String()).
		Err(err).
		Msg("Request failed")

	ErrorMessage(c, status, apperror.MessageOf(err))
}
