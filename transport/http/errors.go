package http

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/qlap/traingate/core"
)

// abortWithError normalizes any failure into the uniform error response
// and writes it with the status the kind maps to. Internal failures are
// logged with full detail server-side; the caller only sees an opaque
// message.
func abortWithError(c *gin.Context, err error) {
	resp := core.Normalize(err)
	if resp.Kind == core.KindInternal {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(resp.Kind.HTTPStatus(), resp)
}

// abortWithViolations reports collected validation failures in one response
// so the client can fix every problem in a single round trip.
func abortWithViolations(c *gin.Context, violations []core.FieldViolation) {
	resp := core.ValidationError(violations)
	c.AbortWithStatusJSON(resp.Kind.HTTPStatus(), resp)
}
