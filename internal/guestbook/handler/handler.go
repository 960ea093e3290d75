package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventpage/guestbook/internal/guestbook/service"
)

const (
	msgInvalid   = "Name and message are required"
	msgSaveError = "Failed to save message"
	msgSaved     = "Message saved successfully"
)

type appendRequest struct {
	Name string `json:"name"`
	Text string `json:"text"`
	// Message is the field name used by the first version of the site.
	Message string `json:"message"`
}

// RegisterGuestbookRoutes registers the list/append endpoints at /entries
// and at /api/data, the path the legacy front end posts to.
func RegisterGuestbookRoutes(r gin.IRouter, svc service.Service) {
	for _, path := range []string{"/entries", "/api/data"} {
		r.GET(path, listEntries(svc))
		r.POST(path, appendEntry(svc))
	}
}

func listEntries(svc service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.List(c.Request.Context()))
	}
}

func appendEntry(svc service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req appendRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalid})
			return
		}
		text := req.Text
		if text == "" {
			text = req.Message
		}
		entries, err := svc.Append(c.Request.Context(), req.Name, text)
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalid})
			return
		case err != nil:
			// the cause is logged by the service; never echo it to the client
			c.JSON(http.StatusInternalServerError, gin.H{"error": msgSaveError})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": msgSaved, "entries": entries})
	}
}
