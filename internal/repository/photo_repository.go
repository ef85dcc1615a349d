package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/snapgram/photo-service/internal/domain"
	photoDomain "github.com/snapgram/photo-service/internal/domain/photo"
)

// PhotoModel is the GORM model for the photos table.
type PhotoModel struct {
	ID        string    `gorm:"type:char(24);primaryKey"`
	Image     string    `gorm:"type:text;not null"`
	Title     string    `gorm:"type:text;not null;default:''"`
	UserID    string    `gorm:"type:char(24);not null;index"`
	UserName  string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`

	Likes    []LikeModel    `gorm:"foreignKey:PhotoID;references:ID;constraint:OnDelete:CASCADE"`
	Comments []CommentModel `gorm:"foreignKey:PhotoID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName sets the table name.
func (PhotoModel) TableName() string { return "photos" }

// LikeModel is the GORM model for the photo_likes table. The composite
// primary key is the no-duplicate-likes invariant.
type LikeModel struct {
	PhotoID   string    `gorm:"type:char(24);primaryKey"`
	UserID    string    `gorm:"type:char(24);primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName sets the table name.
func (LikeModel) TableName() string { return "photo_likes" }

// CommentModel is the GORM model for the photo_comments table. The
// serial ID preserves insertion order.
type CommentModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	PhotoID   string    `gorm:"type:char(24);not null;index"`
	Comment   string    `gorm:"type:text;not null"`
	UserID    string    `gorm:"type:char(24);not null"`
	UserName  string    `gorm:"type:text;not null"`
	UserImage string    `gorm:"type:text;not null;default:''"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName sets the table name.
func (CommentModel) TableName() string { return "photo_comments" }

// GormPhotoRepository implements photo.Repository using GORM.
type GormPhotoRepository struct {
	db *gorm.DB
}

// NewGormPhotoRepository creates a new GormPhotoRepository.
func NewGormPhotoRepository(db *gorm.DB) *GormPhotoRepository {
	return &GormPhotoRepository{db: db}
}

// Save persists a new photo.
func (r *GormPhotoRepository) Save(ctx context.Context, p *photoDomain.Photo) error {
	model := toPhotoModel(p)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save photo: %w", err)
	}
	return nil
}

// FindByID retrieves a photo with its likes and comments.
func (r *GormPhotoRepository) FindByID(ctx context.Context, id domain.ID) (*photoDomain.Photo, error) {
	var model PhotoModel
	err := r.preloaded(r.db.WithContext(ctx)).Where("id = ?", id.String()).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Photo", id.String())
		}
		return nil, fmt.Errorf("failed to find photo by ID: %w", err)
	}
	return toDomainPhoto(&model), nil
}

// FindAll retrieves every photo, newest first.
func (r *GormPhotoRepository) FindAll(ctx context.Context) ([]*photoDomain.Photo, error) {
	var models []PhotoModel
	err := r.preloaded(r.db.WithContext(ctx)).Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	return toDomainPhotos(models), nil
}

// FindByOwner retrieves one owner's photos, newest first.
func (r *GormPhotoRepository) FindByOwner(ctx context.Context, ownerID domain.ID) ([]*photoDomain.Photo, error) {
	var models []PhotoModel
	err := r.preloaded(r.db.WithContext(ctx)).
		Where("user_id = ?", ownerID.String()).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find photos by owner: %w", err)
	}
	return toDomainPhotos(models), nil
}

// SearchByTitle retrieves photos whose title contains the query as a
// literal, case-insensitive substring. LIKE metacharacters in the
// query are escaped so they match themselves.
func (r *GormPhotoRepository) SearchByTitle(ctx context.Context, query string) ([]*photoDomain.Photo, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"

	var models []PhotoModel
	err := r.preloaded(r.db.WithContext(ctx)).
		Where("LOWER(title) LIKE ? ESCAPE '\\'", pattern).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search photos: %w", err)
	}
	return toDomainPhotos(models), nil
}

// Update persists a photo's mutable fields.
func (r *GormPhotoRepository) Update(ctx context.Context, p *photoDomain.Photo) error {
	result := r.db.WithContext(ctx).
		Model(&PhotoModel{}).
		Where("id = ?", p.ID().String()).
		Updates(map[string]interface{}{
			"title":      p.Title(),
			"updated_at": p.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update photo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Photo", p.ID().String())
	}
	return nil
}

// Delete removes a photo together with its likes and comments.
func (r *GormPhotoRepository) Delete(ctx context.Context, id domain.ID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("photo_id = ?", id.String()).Delete(&LikeModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete photo likes: %w", err)
		}
		if err := tx.Where("photo_id = ?", id.String()).Delete(&CommentModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete photo comments: %w", err)
		}

		result := tx.Where("id = ?", id.String()).Delete(&PhotoModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete photo: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.NewNotFoundError("Photo", id.String())
		}
		return nil
	})
}

// AddLike inserts into the likes set, ignoring the insert when the
// (photo, user) pair already exists. The single conflict-ignoring
// statement makes concurrent duplicate likes race-free.
func (r *GormPhotoRepository) AddLike(ctx context.Context, id domain.ID, userID domain.ID) (bool, error) {
	like := LikeModel{
		PhotoID:   id.String(),
		UserID:    userID.String(),
		CreatedAt: time.Now().UTC(),
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
	if result.Error != nil {
		return false, fmt.Errorf("failed to add like: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// AddComment appends a comment row; the serial primary key keeps
// insertion order.
func (r *GormPhotoRepository) AddComment(ctx context.Context, id domain.ID, c photoDomain.Comment) error {
	comment := CommentModel{
		PhotoID:   id.String(),
		Comment:   c.Text,
		UserID:    c.UserID.String(),
		UserName:  c.UserName,
		UserImage: c.UserImage,
		CreatedAt: c.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}
	return nil
}

func (r *GormPhotoRepository) preloaded(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Likes", func(db *gorm.DB) *gorm.DB {
			return db.Order("photo_likes.created_at ASC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("photo_comments.id ASC")
		})
}

// escapeLike makes s safe to embed in a LIKE pattern with backslash
// escaping.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

// --- Conversion helpers ---

func toPhotoModel(p *photoDomain.Photo) PhotoModel {
	return PhotoModel{
		ID:        p.ID().String(),
		Image:     p.Image(),
		Title:     p.Title(),
		UserID:    p.OwnerID().String(),
		UserName:  p.OwnerName(),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}
}

func toDomainPhoto(m *PhotoModel) *photoDomain.Photo {
	likes := make([]domain.ID, len(m.Likes))
	for i, l := range m.Likes {
		likes[i] = domain.ID(l.UserID)
	}

	comments := make([]photoDomain.Comment, len(m.Comments))
	for i, c := range m.Comments {
		comments[i] = photoDomain.Comment{
			Text:      c.Comment,
			UserID:    domain.ID(c.UserID),
			UserName:  c.UserName,
			UserImage: c.UserImage,
			CreatedAt: c.CreatedAt,
		}
	}

	return photoDomain.Reconstruct(
		domain.ID(m.ID),
		m.Image,
		m.Title,
		domain.ID(m.UserID),
		m.UserName,
		likes,
		comments,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toDomainPhotos(models []PhotoModel) []*photoDomain.Photo {
	photos := make([]*photoDomain.Photo, len(models))
	for i := range models {
		photos[i] = toDomainPhoto(&models[i])
	}
	return photos
}
