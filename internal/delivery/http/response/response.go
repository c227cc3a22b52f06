package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the wire contract with the wizard client: a boolean ok plus an
// optional error string. Nothing else is guaranteed, so nothing else is sent.
type Envelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// OK sends the success envelope.
func OK(c *gin.Context) {
	c.JSON(http.StatusOK, Envelope{OK: true})
}

// Fail sends a failure envelope with the given status code.
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, Envelope{OK: false, Error: message})
}
