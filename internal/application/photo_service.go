package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/snapgram/photo-service/internal/domain"
	photoDomain "github.com/snapgram/photo-service/internal/domain/photo"
	"github.com/snapgram/photo-service/internal/events"
	"github.com/snapgram/photo-service/internal/pkg/auth"
	"github.com/snapgram/photo-service/internal/pkg/blobstore"
	"github.com/snapgram/photo-service/internal/pkg/kafka"
)

// EventPublisher publishes CloudEvents; satisfied by kafka.Producer.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event kafka.CloudEvent) error
}

// InsertPhotoRequest holds the data to create a photo. Image is the
// blob-store handle produced by the upload collaborator.
type InsertPhotoRequest struct {
	Title string `json:"title"`
	Image string `json:"image"`
}

// UpdatePhotoRequest holds the mutable fields of a photo.
type UpdatePhotoRequest struct {
	Title string `json:"title"`
}

// CommentRequest holds a new comment's text.
type CommentRequest struct {
	Comment string `json:"comment"`
}

// CommentDTO is the API representation of a photo comment.
type CommentDTO struct {
	Comment   string    `json:"comment"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserImage string    `json:"user_image"`
	CreatedAt time.Time `json:"created_at"`
}

// PhotoDTO is the API representation of a photo.
type PhotoDTO struct {
	ID        string       `json:"id"`
	Image     string       `json:"image"`
	Title     string       `json:"title"`
	UserID    string       `json:"user_id"`
	UserName  string       `json:"user_name"`
	Likes     []string     `json:"likes"`
	Comments  []CommentDTO `json:"comments"`
	CreatedAt time.Time    `json:"created_at"`
}

// DeleteResultDTO confirms a deletion.
type DeleteResultDTO struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// UpdateResultDTO carries the updated photo and a confirmation.
type UpdateResultDTO struct {
	Photo   PhotoDTO `json:"photo"`
	Message string   `json:"message"`
}

// LikeResultDTO confirms a like.
type LikeResultDTO struct {
	PhotoID string `json:"photo_id"`
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// CommentResultDTO carries the stored comment and a confirmation.
type CommentResultDTO struct {
	Comment CommentDTO `json:"comment"`
	Message string     `json:"message"`
}

// PhotoService orchestrates photo use cases: creation, deletion,
// title updates, likes, comments, listing and search. It enforces
// identifier validation, existence and ownership before any mutation.
type PhotoService struct {
	repo     photoDomain.Repository
	blobs    blobstore.Store
	producer EventPublisher
	logger   *zap.Logger

	// hideOwnershipFailures reports foreign photos as not found on
	// owner-scoped operations instead of forbidden, hiding their
	// existence from non-owners.
	hideOwnershipFailures bool
}

// NewPhotoService creates a new PhotoService.
func NewPhotoService(
	repo photoDomain.Repository,
	blobs blobstore.Store,
	producer EventPublisher,
	logger *zap.Logger,
	hideOwnershipFailures bool,
) *PhotoService {
	return &PhotoService{
		repo:                  repo,
		blobs:                 blobs,
		producer:              producer,
		logger:                logger,
		hideOwnershipFailures: hideOwnershipFailures,
	}
}

// Insert creates a photo owned by the caller. The owner's name is
// denormalized onto the photo at creation time and never re-synced.
func (s *PhotoService) Insert(ctx context.Context, caller auth.UserRef, req InsertPhotoRequest) (*PhotoDTO, error) {
	p, err := photoDomain.NewPhoto(caller.ID, caller.Name, req.Title, req.Image)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}

	s.logger.Info("photo created",
		zap.String("photo_id", p.ID().String()),
		zap.String("owner_id", caller.ID.String()),
	)

	s.publishEvent(ctx, events.PhotoCreated, p.ID().String(), events.PhotoCreatedEvent{
		PhotoID:    p.ID(),
		OwnerID:    p.OwnerID(),
		Title:      p.Title(),
		OccurredAt: time.Now().UTC(),
	})

	dto := toPhotoDTO(p)
	return &dto, nil
}

// Remove deletes a photo after checking the caller owns it. The stored
// blob is removed best-effort; a failure there never fails the delete.
func (s *PhotoService) Remove(ctx context.Context, caller auth.UserRef, rawID string) (*DeleteResultDTO, error) {
	p, err := s.fetchOwned(ctx, caller, rawID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, p.ID()); err != nil {
		return nil, fmt.Errorf("failed to delete photo: %w", err)
	}

	if err := s.blobs.Remove(ctx, p.Image()); err != nil {
		s.logger.Warn("failed to remove photo blob",
			zap.String("photo_id", p.ID().String()),
			zap.String("handle", p.Image()),
			zap.Error(err),
		)
	}

	s.publishEvent(ctx, events.PhotoDeleted, p.ID().String(), events.PhotoDeletedEvent{
		PhotoID:    p.ID(),
		OwnerID:    p.OwnerID(),
		OccurredAt: time.Now().UTC(),
	})

	return &DeleteResultDTO{
		ID:      p.ID().String(),
		Message: "Photo deleted successfully.",
	}, nil
}

// ListAll returns every photo, newest first.
func (s *PhotoService) ListAll(ctx context.Context) ([]PhotoDTO, error) {
	photos, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	return toPhotoDTOs(photos), nil
}

// ListByOwner returns all photos belonging to the given user, newest
// first. Any caller may view any user's photos; only the identifier
// format is validated.
func (s *PhotoService) ListByOwner(ctx context.Context, rawUserID string) ([]PhotoDTO, error) {
	ownerID, err := domain.ParseID(rawUserID)
	if err != nil {
		return nil, err
	}

	photos, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos by owner: %w", err)
	}
	return toPhotoDTOs(photos), nil
}

// GetByID returns a single photo. A malformed identifier fails with a
// validation error; a well-formed but unknown one with not found.
func (s *PhotoService) GetByID(ctx context.Context, rawID string) (*PhotoDTO, error) {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := toPhotoDTO(p)
	return &dto, nil
}

// Update changes a photo's title after checking ownership. An empty
// title leaves the existing value untouched.
func (s *PhotoService) Update(ctx context.Context, caller auth.UserRef, rawID string, req UpdatePhotoRequest) (*UpdateResultDTO, error) {
	p, err := s.fetchOwned(ctx, caller, rawID)
	if err != nil {
		return nil, err
	}

	p.ChangeTitle(req.Title)

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update photo: %w", err)
	}

	return &UpdateResultDTO{
		Photo:   toPhotoDTO(p),
		Message: "Photo updated successfully.",
	}, nil
}

// Like records that the caller liked a photo. A second like from the
// same user fails with ErrAlreadyLiked; the likes set never holds
// duplicates.
func (s *PhotoService) Like(ctx context.Context, caller auth.UserRef, rawID string) (*LikeResultDTO, error) {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	added, err := s.repo.AddLike(ctx, p.ID(), caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to add like: %w", err)
	}
	if !added {
		return nil, photoDomain.ErrAlreadyLiked
	}

	s.publishEvent(ctx, events.PhotoLiked, p.ID().String(), events.PhotoLikedEvent{
		PhotoID:    p.ID(),
		UserID:     caller.ID,
		OwnerID:    p.OwnerID(),
		OccurredAt: time.Now().UTC(),
	})

	return &LikeResultDTO{
		PhotoID: p.ID().String(),
		UserID:  caller.ID.String(),
		Message: "Photo liked.",
	}, nil
}

// Comment appends a comment to a photo. The commenter's name and
// avatar are denormalized from the caller. Blank comment text is
// accepted.
func (s *PhotoService) Comment(ctx context.Context, caller auth.UserRef, rawID string, req CommentRequest) (*CommentResultDTO, error) {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c := photoDomain.Comment{
		Text:      req.Comment,
		UserID:    caller.ID,
		UserName:  caller.Name,
		UserImage: caller.ProfileImage,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.AddComment(ctx, p.ID(), c); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	s.publishEvent(ctx, events.PhotoCommented, p.ID().String(), events.PhotoCommentedEvent{
		PhotoID:    p.ID(),
		UserID:     caller.ID,
		OwnerID:    p.OwnerID(),
		OccurredAt: time.Now().UTC(),
	})

	return &CommentResultDTO{
		Comment: toCommentDTO(c),
		Message: "Comment added successfully.",
	}, nil
}

// Search returns photos whose title contains the query as a literal,
// case-insensitive substring. An empty query returns all photos.
func (s *PhotoService) Search(ctx context.Context, query string) ([]PhotoDTO, error) {
	photos, err := s.repo.SearchByTitle(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search photos: %w", err)
	}
	return toPhotoDTOs(photos), nil
}

// fetchOwned runs the shared protocol for owner-scoped operations:
// validate the identifier, fetch the photo, check ownership.
func (s *PhotoService) fetchOwned(ctx context.Context, caller auth.UserRef, rawID string) (*photoDomain.Photo, error) {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !p.OwnedBy(caller.ID) {
		if s.hideOwnershipFailures {
			return nil, domain.NewNotFoundError("Photo", id.String())
		}
		return nil, domain.NewForbiddenError("photo does not belong to this user")
	}
	return p, nil
}

func (s *PhotoService) publishEvent(ctx context.Context, eventType, key string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent("photo-service", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, events.TopicPhotoEvents, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

// --- Helpers ---

func toPhotoDTO(p *photoDomain.Photo) PhotoDTO {
	likes := make([]string, len(p.Likes()))
	for i, id := range p.Likes() {
		likes[i] = id.String()
	}

	comments := make([]CommentDTO, len(p.Comments()))
	for i, c := range p.Comments() {
		comments[i] = toCommentDTO(c)
	}

	return PhotoDTO{
		ID:        p.ID().String(),
		Image:     p.Image(),
		Title:     p.Title(),
		UserID:    p.OwnerID().String(),
		UserName:  p.OwnerName(),
		Likes:     likes,
		Comments:  comments,
		CreatedAt: p.CreatedAt(),
	}
}

func toPhotoDTOs(photos []*photoDomain.Photo) []PhotoDTO {
	dtos := make([]PhotoDTO, len(photos))
	for i, p := range photos {
		dtos[i] = toPhotoDTO(p)
	}
	return dtos
}

func toCommentDTO(c photoDomain.Comment) CommentDTO {
	return CommentDTO{
		Comment:   c.Text,
		UserID:    c.UserID.String(),
		UserName:  c.UserName,
		UserImage: c.UserImage,
		CreatedAt: c.CreatedAt,
	}
}
