package services

import "context"

const (
	EventParcelPaid    = "parcel_paid"
	EventRiderApplied  = "rider_applied"
	EventRiderReviewed = "rider_reviewed"
	EventRoleUpdated   = "role_updated"
)

// WebSocketMessage is the envelope of every event pushed to connected admins.
type WebSocketMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// EventPublisher fans domain events out to every API instance.
type EventPublisher interface {
	Publish(ctx context.Context, msg WebSocketMessage) error
}
