package httpx

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/tienda-ecom/internal/apperr"
)

// ErrorBody is the JSON written for every failed request.
type ErrorBody struct {
	Error string `json:"error" example:"product not found"`
	Kind  string `json:"kind"  example:"not_found"`
}

// Fail writes err as JSON with the status of its kind and aborts the chain.
// Internal causes are logged, never returned.
func Fail(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		rid, _ := c.Get("rid")
		log.Printf("[http] rid=%v %s %s internal error: %v", rid, c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(kind.HTTPStatus(), ErrorBody{Error: apperr.Message(err), Kind: kind.String()})
}
