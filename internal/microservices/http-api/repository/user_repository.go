package repository

import (
	"context"
	"fmt"
	"time"

	"yamdb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, userID string) error
	Activate(ctx context.Context, userID string, previousLogin *time.Time, at time.Time) (bool, error)
	FindByID(ctx context.Context, userID string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", translateError(err, nil))
	}
	return nil
}

// UpdateProfile writes only the self-editable columns. Role and the
// activation state are left to the admin path and Activate.
func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	return r.updateColumns(ctx, user, profileColumns(user))
}

// Update is the admin write: the profile columns plus role.
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	columns := profileColumns(user)
	columns["role"] = user.Role
	return r.updateColumns(ctx, user, columns)
}

func profileColumns(user *models.User) map[string]interface{} {
	return map[string]interface{}{
		"username":   user.Username,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"bio":        user.Bio,
	}
}

// updateColumns never inserts: a user deleted since it was read is reported
// as not found.
func (r *userRepository) updateColumns(ctx context.Context, user *models.User, columns map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(columns)
	if result.Error != nil {
		return fmt.Errorf("update user: %w", translateError(result.Error, nil))
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes the user together with everything they authored: comments
// they wrote, comments on their reviews, and the reviews themselves.
func (r *userRepository) Delete(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownReviews := tx.Model(&models.Review{}).Select("id").Where("author_id = ?", userID)
		if err := tx.Where("author_id = ? OR review_id IN (?)", userID, ownReviews).
			Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete user comments: %w", err)
		}
		if err := tx.Where("author_id = ?", userID).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("delete user reviews: %w", err)
		}
		result := tx.Where("id = ?", userID).Delete(&models.User{})
		if result.Error != nil {
			return fmt.Errorf("delete user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}

// Activate marks the user active and stamps last_login, but only if
// last_login still equals previousLogin. It reports false when another
// request consumed the login first.
func (r *userRepository) Activate(ctx context.Context, userID string, previousLogin *time.Time, at time.Time) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID)
	if previousLogin == nil {
		q = q.Where("last_login IS NULL")
	} else {
		q = q.Where("last_login = ?", *previousLogin)
	}
	result := q.Updates(map[string]interface{}{
		"is_active":  true,
		"last_login": at,
	})
	if result.Error != nil {
		return false, fmt.Errorf("activate user: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *userRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, translateError(err, ErrUserNotFound)
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateError(err, ErrUserNotFound)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateError(err, ErrUserNotFound)
	}
	return &user, nil
}

// List pages through users, newest first, optionally filtered by a
// case-insensitive username substring.
func (r *userRepository) List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error) {
	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.User{})
		if search != "" {
			q = q.Where("username ILIKE ?", containsPattern(search))
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	var users []models.User
	if err := query().
		Order("created_at DESC").
		Offset(offset(page, pageSize)).
		Limit(pageSize).
		Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}
