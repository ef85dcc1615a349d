package photo

import (
	"time"

	"github.com/snapgram/photo-service/internal/domain"
)

// ErrAlreadyLiked is returned when a user likes a photo a second time.
var ErrAlreadyLiked = domain.NewConflictError("photo already liked by this user")

// Comment is a single comment on a photo. The commenter's name and
// avatar are denormalized at creation time and never re-synced.
type Comment struct {
	Text      string    `json:"comment"`
	UserID    domain.ID `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserImage string    `json:"user_image"`
	CreatedAt time.Time `json:"created_at"`
}

// Photo is the aggregate root for user-uploaded photos.
type Photo struct {
	id        domain.ID
	image     string
	title     string
	ownerID   domain.ID
	ownerName string
	likes     []domain.ID
	comments  []Comment
	createdAt time.Time
	updatedAt time.Time
}

// NewPhoto creates a new Photo owned by the given user. The image is
// the blob-store handle returned by the upload collaborator.
func NewPhoto(ownerID domain.ID, ownerName, title, image string) (*Photo, error) {
	if ownerID == "" {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if image == "" {
		return nil, domain.NewValidationError("image is required")
	}

	now := time.Now().UTC()
	return &Photo{
		id:        domain.NewID(),
		image:     image,
		title:     title,
		ownerID:   ownerID,
		ownerName: ownerName,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Photo from persistence (no validation).
func Reconstruct(
	id domain.ID,
	image string,
	title string,
	ownerID domain.ID,
	ownerName string,
	likes []domain.ID,
	comments []Comment,
	createdAt time.Time,
	updatedAt time.Time,
) *Photo {
	return &Photo{
		id:        id,
		image:     image,
		title:     title,
		ownerID:   ownerID,
		ownerName: ownerName,
		likes:     likes,
		comments:  comments,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

// ID returns the photo's unique identifier.
func (p *Photo) ID() domain.ID { return p.id }

// Image returns the blob-store handle of the photo's content.
func (p *Photo) Image() string { return p.image }

// Title returns the photo's title.
func (p *Photo) Title() string { return p.title }

// OwnerID returns the owning user's ID.
func (p *Photo) OwnerID() domain.ID { return p.ownerID }

// OwnerName returns the owner's display name denormalized at creation.
func (p *Photo) OwnerName() string { return p.ownerName }

// Likes returns the IDs of users who liked the photo.
func (p *Photo) Likes() []domain.ID { return p.likes }

// Comments returns the photo's comments in insertion order.
func (p *Photo) Comments() []Comment { return p.comments }

// CreatedAt returns the creation timestamp.
func (p *Photo) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (p *Photo) UpdatedAt() time.Time { return p.updatedAt }

// --- Behavior ---

// OwnedBy reports whether the photo belongs to the given user.
func (p *Photo) OwnedBy(userID domain.ID) bool { return p.ownerID == userID }

// LikedBy reports whether the given user already liked the photo.
func (p *Photo) LikedBy(userID domain.ID) bool {
	for _, id := range p.likes {
		if id == userID {
			return true
		}
	}
	return false
}

// ChangeTitle overwrites the title unless the new value is empty, in
// which case the existing title is kept.
func (p *Photo) ChangeTitle(title string) {
	if title == "" {
		return
	}
	p.title = title
	p.updatedAt = time.Now().UTC()
}
