package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the single error body shape the API speaks.
type Response struct {
	Status int    `json:"-"`
	Error  string `json:"error"`
}

// Abort writes the error body and records the cause on the gin context so the
// error middleware and access log can see it.
func Abort(c *gin.Context, status int, err error, msg string) {
	resp := Response{Status: status, Error: msg}

	if err != nil {
		_ = c.Error(gin.Error{
			Err:  err,
			Type: gin.ErrorTypePublic,
			Meta: resp,
		})
	}
	c.AbortWithStatusJSON(status, resp)
}
