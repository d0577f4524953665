package web

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every JSON endpoint answers with.
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	InsertedID string      `json:"insertedId,omitempty"`
}

// Respond writes a successful envelope.
func Respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

// RespondCreated writes the envelope used for inserts.
func RespondCreated(c *gin.Context, message, insertedID string, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Message: message, InsertedID: insertedID, Data: data})
}

// RespondError writes a failure envelope. Internal errors are logged and
// replaced by a generic message.
func RespondError(c *gin.Context, err error) {
	status := StatusOf(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		message = ErrInternalServerError.Error()
	}

	c.AbortWithStatusJSON(status, Response{Success: false, Message: message})
}
