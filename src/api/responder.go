package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type responder struct{ c *gin.Context }

func (r responder) wantsJSON() bool {
	accept := strings.ToLower(r.c.GetHeader("Accept"))
	return strings.Contains(accept, "application/json")
}

func (r responder) err(status int, msg string) {
	if r.wantsJSON() {
		r.c.JSON(status, gin.H{"error": msg})
		return
	}
	r.c.String(status, msg)
}

// ok writes payload as JSON or text as plain text. requestID is attached
// when the response belongs to an experiment run.
func (r responder) ok(text string, payload gin.H, requestID string) {
	if r.wantsJSON() {
		out := gin.H{}
		for k, v := range payload {
			out[k] = v
		}
		if requestID != "" {
			out["request_id"] = requestID
		}
		r.c.JSON(http.StatusOK, out)
		return
	}
	if requestID != "" {
		text += "\nrequest_id: " + requestID
	}
	r.c.String(http.StatusOK, text)
}
