package events

import (
	"time"

	"github.com/snapgram/photo-service/internal/domain"
)

// TopicPhotoEvents is the Kafka topic all photo lifecycle events are
// published to.
const TopicPhotoEvents = "photo.events"

// Event types.
const (
	PhotoCreated   = "photo.created"
	PhotoDeleted   = "photo.deleted"
	PhotoLiked     = "photo.liked"
	PhotoCommented = "photo.commented"
)

// PhotoCreatedEvent is published when a user uploads a photo.
type PhotoCreatedEvent struct {
	PhotoID    domain.ID `json:"photo_id"`
	OwnerID    domain.ID `json:"owner_id"`
	Title      string    `json:"title"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PhotoDeletedEvent is published when an owner deletes a photo.
type PhotoDeletedEvent struct {
	PhotoID    domain.ID `json:"photo_id"`
	OwnerID    domain.ID `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PhotoLikedEvent is published when a user likes a photo.
type PhotoLikedEvent struct {
	PhotoID    domain.ID `json:"photo_id"`
	UserID     domain.ID `json:"user_id"`
	OwnerID    domain.ID `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PhotoCommentedEvent is published when a user comments on a photo.
type PhotoCommentedEvent struct {
	PhotoID    domain.ID `json:"photo_id"`
	UserID     domain.ID `json:"user_id"`
	OwnerID    domain.ID `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
