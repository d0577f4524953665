package handlers

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/profast/parcel-api/internal/models"
	"github.com/profast/parcel-api/internal/services"
)

// publish hands an event to the bus. Delivery is best effort.
func publish(c *gin.Context, events services.EventPublisher, eventType string, data interface{}) {
	if events == nil {
		return
	}
	msg := services.WebSocketMessage{Type: eventType, Data: data}
	if err := events.Publish(c.Request.Context(), msg); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}

// notifyPayment and notifyReview send email off the request path. The context
// keeps request values but not its cancellation; the mailer bounds each send.
func notifyPayment(c *gin.Context, notifier services.Notifier, payment *models.Payment) {
	if notifier == nil {
		return
	}
	ctx := context.WithoutCancel(c.Request.Context())
	go func() {
		if err := notifier.PaymentReceipt(ctx, payment); err != nil {
			log.Printf("Failed to send receipt for payment %s: %v", payment.ID, err)
		}
	}()
}

func notifyReview(c *gin.Context, notifier services.Notifier, application *models.RiderApplication) {
	if notifier == nil {
		return
	}
	ctx := context.WithoutCancel(c.Request.Context())
	go func() {
		if err := notifier.RiderReviewed(ctx, application); err != nil {
			log.Printf("Failed to notify %s about rider review: %v", application.Email, err)
		}
	}()
}
