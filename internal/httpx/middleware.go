package httpx

import (
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MikeMC777/tienda-ecom/internal/apperr"
)

const headerRequestID = "X-Request-ID"

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(headerRequestID)
		if rid == "" || len(rid) > 64 {
			rid = uuid.NewString()
		}
		c.Set("rid", rid)
		c.Writer.Header().Set(headerRequestID, rid)
		c.Next()
	}
}

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		rid, _ := c.Get("rid")
		uid := c.GetString(ctxUserID)
		if uid == "" {
			uid = "-"
		}
		log.Printf("[http] rid=%v uid=%s %s %s status=%d bytes=%d dur=%s",
			rid, uid, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), c.Writer.Size(), time.Since(start))
	}
}

// Recover turns a handler panic into a 500 with the usual error body.
func Recover() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if p := recover(); p != nil {
				log.Printf("[http] panic: %v\n%s", p, debug.Stack())
				Fail(c, apperr.Wrap(apperr.KindInternal, fmt.Errorf("%v", p), "panic"))
			}
		}()
		c.Next()
	}
}
