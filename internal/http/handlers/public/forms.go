package public

import (
	"github.com/cyfa-store/api/internal/http/response"
	"github.com/cyfa-store/api/internal/service"

	"github.com/gin-gonic/gin"
)

// ContactRequest is the contact form payload.
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// NewsletterRequest is a newsletter sign-up.
type NewsletterRequest struct {
	Email string `json:"email" binding:"required"`
}

// SubmitContact stores a contact message and queues the notification.
func (h *Handler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	msg, err := h.NotificationService.SubmitContact(service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		respondFormError(c, err)
		return
	}
	response.SuccessWithMsg(c, "message received", gin.H{"id": msg.ID})
}

// SubscribeNewsletter records a newsletter sign-up.
func (h *Handler) SubscribeNewsletter(c *gin.Context) {
	var req NewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := h.NotificationService.SubscribeNewsletter(req.Email); err != nil {
		respondFormError(c, err)
		return
	}
	response.SuccessWithMsg(c, "subscribed", nil)
}
