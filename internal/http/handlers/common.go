package handlers

import (
	"strings"

	"github.com/Tripcarte/easytix-booking/internal/domain"

	"github.com/gin-gonic/gin"
)

// BindJSONOrError ensures body is present and parsable; otherwise it answers
// with the failure envelope of the given intent.
func (h Handler) BindJSONOrError(c *gin.Context, in intent, dst any) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		h.fail(c, in, domain.ValidationError{Msg: "request body is empty"})
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		h.fail(c, in, domain.ValidationError{Msg: "invalid JSON body", Err: err})
		return false
	}
	return true
}

func pathID(c *gin.Context) string {
	return strings.TrimSpace(c.Param("id"))
}
