package photo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapgram/photo-service/internal/domain"
)

func TestNewPhoto(t *testing.T) {
	ownerID := domain.NewID()

	p, err := NewPhoto(ownerID, "alice", "Sunset", "abc123.jpg")
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID())
	assert.Equal(t, ownerID, p.OwnerID())
	assert.Equal(t, "alice", p.OwnerName())
	assert.Equal(t, "Sunset", p.Title())
	assert.Equal(t, "abc123.jpg", p.Image())
	assert.Empty(t, p.Likes())
	assert.Empty(t, p.Comments())
	assert.False(t, p.CreatedAt().IsZero())
}

func TestNewPhoto_RequiresImage(t *testing.T) {
	_, err := NewPhoto(domain.NewID(), "alice", "Sunset", "")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestNewPhoto_RequiresOwner(t *testing.T) {
	_, err := NewPhoto("", "alice", "Sunset", "abc123.jpg")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestChangeTitle(t *testing.T) {
	p, err := NewPhoto(domain.NewID(), "alice", "Sunset", "abc123.jpg")
	require.NoError(t, err)

	p.ChangeTitle("Sunrise")
	assert.Equal(t, "Sunrise", p.Title())

	// empty title keeps the existing value
	p.ChangeTitle("")
	assert.Equal(t, "Sunrise", p.Title())
}

func TestOwnedBy(t *testing.T) {
	ownerID := domain.NewID()
	p, err := NewPhoto(ownerID, "alice", "Sunset", "abc123.jpg")
	require.NoError(t, err)

	assert.True(t, p.OwnedBy(ownerID))
	assert.False(t, p.OwnedBy(domain.NewID()))
}

func TestLikedBy(t *testing.T) {
	liker := domain.NewID()
	now := time.Now().UTC()
	p := Reconstruct(domain.NewID(), "abc.jpg", "Sunset", domain.NewID(), "alice",
		[]domain.ID{liker}, nil, now, now)

	assert.True(t, p.LikedBy(liker))
	assert.False(t, p.LikedBy(domain.NewID()))
}
