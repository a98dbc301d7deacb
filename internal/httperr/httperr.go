package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextRequestID é a chave onde o middleware de request id guarda o id.
const ContextRequestID = "requestID"

type HTTPError struct {
	Code      string `json:"error_code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func body(c *gin.Context, code, message string) HTTPError {
	return HTTPError{
		Code:      code,
		Message:   message,
		RequestID: c.GetString(ContextRequestID),
	}
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, body(c, code, message))
}

// Abort encerra a cadeia de handlers (uso em middleware).
func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, body(c, code, message))
}

// StatusFor devolve o status HTTP de um código de negócio.
func StatusFor(code string) int {
	switch code {
	case CodeNotFound, CodeClientNotFound:
		return http.StatusNotFound
	case CodeTimeConflict, CodeInvalidState:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}
