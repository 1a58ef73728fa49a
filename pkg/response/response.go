package response

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	pkgErrors "project-assistant/pkg/errors"
)

// OK sends 200 JSON with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Resp{
		ErrorCode: 0,
		Message:   MessageSuccess,
		Data:      data,
	})
}

// Error sends an error response. An HTTPError anywhere in the chain
// decides the status and code; other errors are sent as 400. Server
// errors keep their message only for 503, which describes a state the
// caller can act on rather than a failure.
func Error(c *gin.Context, err error, data map[string]any) {
	if data == nil {
		data = make(map[string]any)
	}

	he, ok := pkgErrors.AsHTTPError(err)
	if !ok {
		c.JSON(http.StatusBadRequest, Resp{
			ErrorCode: 1,
			Message:   err.Error(),
			Data:      data,
		})
		return
	}

	if he.StatusCode >= http.StatusInternalServerError && he.StatusCode != http.StatusServiceUnavailable {
		InternalError(c, err)
		return
	}
	c.JSON(he.StatusCode, Resp{
		ErrorCode: he.Code,
		Message:   he.Message,
		Data:      data,
	})
}

// InternalError sends 500 without exposing err.
func InternalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: InternalServerErrorCode,
		Message:   DefaultErrorMessage,
	})
}

// TooManyRequests aborts with 429 and a Retry-After header in whole
// seconds, at least one.
func TooManyRequests(c *gin.Context, retryAfter time.Duration) {
	secs := int(math.Ceil(retryAfter.Seconds()))
	if secs < 1 {
		secs = 1
	}
	c.Header("Retry-After", strconv.Itoa(secs))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, Resp{
		ErrorCode: http.StatusTooManyRequests,
		Message:   "Too Many Requests",
	})
}
