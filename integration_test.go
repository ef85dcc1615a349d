//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapgram/photo-service/internal/application"
	"github.com/snapgram/photo-service/internal/domain"
	photoDomain "github.com/snapgram/photo-service/internal/domain/photo"
	"github.com/snapgram/photo-service/internal/events"
	"github.com/snapgram/photo-service/internal/pkg/auth"
)

// TestPhotoLifecycle_PublishesEvents walks a photo through create, like
// and comment against real PostgreSQL and Kafka, checking persistence
// and the events published along the way.
func TestPhotoLifecycle_PublishesEvents(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupPhotoStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	ctx := context.Background()
	alice := auth.UserRef{ID: domain.NewID(), Name: "alice", ProfileImage: "alice.png"}
	bob := auth.UserRef{ID: domain.NewID(), Name: "bob", ProfileImage: "bob.png"}

	// Create.
	dto, err := stack.Service.Insert(ctx, alice, application.InsertPhotoRequest{
		Title: "Harbor at dusk",
		Image: "harbor.jpg",
	})
	require.NoError(t, err)

	ce := consumeOneEvent(t, infra.KafkaBrokers, events.TopicPhotoEvents,
		events.PhotoCreated, 15*time.Second)
	var created events.PhotoCreatedEvent
	require.NoError(t, ce.ParseData(&created))
	assert.Equal(t, dto.ID, created.PhotoID.String())
	assert.Equal(t, alice.ID, created.OwnerID)
	assert.Equal(t, "Harbor at dusk", created.Title)

	// Like, then a duplicate like from the same user.
	_, err = stack.Service.Like(ctx, bob, dto.ID)
	require.NoError(t, err)

	_, err = stack.Service.Like(ctx, bob, dto.ID)
	require.ErrorIs(t, err, photoDomain.ErrAlreadyLiked)

	ce = consumeOneEvent(t, infra.KafkaBrokers, events.TopicPhotoEvents,
		events.PhotoLiked, 15*time.Second)
	var liked events.PhotoLikedEvent
	require.NoError(t, ce.ParseData(&liked))
	assert.Equal(t, bob.ID, liked.UserID)

	// Comment.
	_, err = stack.Service.Comment(ctx, bob, dto.ID, application.CommentRequest{Comment: "great light"})
	require.NoError(t, err)

	ce = consumeOneEvent(t, infra.KafkaBrokers, events.TopicPhotoEvents,
		events.PhotoCommented, 15*time.Second)
	var commented events.PhotoCommentedEvent
	require.NoError(t, ce.ParseData(&commented))
	assert.Equal(t, bob.ID, commented.UserID)

	// Persistence: exactly one like, one comment, in order.
	got, err := stack.Service.GetByID(ctx, dto.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{bob.ID.String()}, got.Likes)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "great light", got.Comments[0].Comment)
	assert.Equal(t, "bob", got.Comments[0].UserName)
}

// TestOwnershipEnforcement verifies that a non-owner cannot delete or
// retitle a photo and that the failure does not reveal its existence.
func TestOwnershipEnforcement(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupPhotoStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	ctx := context.Background()
	alice := auth.UserRef{ID: domain.NewID(), Name: "alice"}
	mallory := auth.UserRef{ID: domain.NewID(), Name: "mallory"}

	dto, err := stack.Service.Insert(ctx, alice, application.InsertPhotoRequest{
		Title: "Private",
		Image: "private.jpg",
	})
	require.NoError(t, err)

	_, err = stack.Service.Remove(ctx, mallory, dto.ID)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	_, err = stack.Service.Update(ctx, mallory, dto.ID, application.UpdatePhotoRequest{Title: "Stolen"})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	got, err := stack.Service.GetByID(ctx, dto.ID)
	require.NoError(t, err)
	assert.Equal(t, "Private", got.Title)
}
