package photo

import (
	"context"

	"github.com/snapgram/photo-service/internal/domain"
)

// Repository defines the persistence contract for Photo aggregates.
//
// AddLike and AddComment are atomic store-level operations rather than
// read-modify-write on the aggregate, so concurrent writers to the same
// photo cannot lose each other's updates.
type Repository interface {
	// Save persists a new photo.
	Save(ctx context.Context, p *Photo) error

	// FindByID retrieves a photo with its likes and comments.
	FindByID(ctx context.Context, id domain.ID) (*Photo, error)

	// FindAll retrieves every photo, newest first.
	FindAll(ctx context.Context) ([]*Photo, error)

	// FindByOwner retrieves the photos of a single owner, newest first.
	FindByOwner(ctx context.Context, ownerID domain.ID) ([]*Photo, error)

	// SearchByTitle retrieves photos whose title contains the query as a
	// literal, case-insensitive substring. An empty query matches all.
	SearchByTitle(ctx context.Context, query string) ([]*Photo, error)

	// Update persists changes to a photo's mutable fields.
	Update(ctx context.Context, p *Photo) error

	// Delete removes a photo and its likes and comments.
	Delete(ctx context.Context, id domain.ID) error

	// AddLike records that a user liked a photo. It reports false when
	// the user already liked it, without modifying anything.
	AddLike(ctx context.Context, id domain.ID, userID domain.ID) (bool, error)

	// AddComment appends a comment to a photo.
	AddComment(ctx context.Context, id domain.ID, c Comment) error
}
