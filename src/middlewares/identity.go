package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Authentication happens upstream; by the time a request reaches this core
// the gateway has already verified the session and forwards the requester's
// identity in headers.

func IdentityMiddleware(ctx *gin.Context) {
	requester := ctx.Request.Header.Get("X-Requester-ID")
	if requester == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing requester identity"})
		return
	}
	ctx.Set("requester", requester)
	ctx.Set("role", ctx.Request.Header.Get("X-Requester-Role"))
}

func AdminMiddleware(ctx *gin.Context) {
	if ctx.GetString("role") != "admin" {
		ctx.AbortWithStatus(http.StatusForbidden)
		return
	}
}
