package repositories

import (
	"context"
	"errors"
	"time"

	"kardetailing/internal/database"
	. "kardetailing/internal/models"
	"kardetailing/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	USER_CACHE_EXPIRY = 24 * time.Hour
	USER_CACHE_PREFIX = "user"
)

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name, contactNumber, address string) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) error
}

type userRepository struct {
	db  database.DB
	log logger.Logger
}

func NewUserRepository(db database.DB) UserRepository {
	return &userRepository{
		db:  db,
		log: logger.New("userRepository"),
	}
}

func (r *userRepository) Create(ctx context.Context, user *User) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return types.Wrap(types.ErrDuplicateIdentifier, "Email already exists.")
		}
		return log.Err("failed to create user", err, "email", user.Email)
	}

	return nil
}

// GetByID serves session lookups, so it reads through the user cache. The
// cached copy never contains the password hash.
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	log := r.log.Function("GetByID")

	var user User
	found, err := r.cacheKey(ctx, id).Get(&user)
	if err != nil && !errors.Is(err, database.ErrCacheUnavailable) {
		log.Warn("failed to read user cache", "userID", id, "error", err)
	}
	if found {
		return &user, nil
	}

	if err := r.db.SQLWithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "User not found")
	}

	if err := r.cacheKey(ctx, id).WithStruct(&user).WithTTL(USER_CACHE_EXPIRY).Set(); err != nil &&
		!errors.Is(err, database.ErrCacheUnavailable) {
		log.Warn("failed to add user to cache", "userID", id, "error", err)
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	if err := r.db.SQLWithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, notFound(err, "User not found")
	}

	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]*User, error) {
	log := r.log.Function("List")

	var users []*User
	if err := r.db.SQLWithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, log.Err("failed to list users", err)
	}

	return users, nil
}

func (r *userRepository) UpdateProfile(
	ctx context.Context,
	id uuid.UUID,
	name, contactNumber, address string,
) error {
	log := r.log.Function("UpdateProfile")

	result := r.db.SQLWithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":           name,
			"contact_number": contactNumber,
			"address":        address,
		})
	if result.Error != nil {
		return log.Err("failed to update user profile", result.Error, "userID", id)
	}
	if result.RowsAffected == 0 {
		return types.Wrap(types.ErrNotFound, "User not found")
	}

	r.clearUserCache(ctx, id)
	return nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	log := r.log.Function("UpdateLastLogin")

	if err := r.db.SQLWithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error; err != nil {
		return log.Err("failed to update last login", err, "userID", id)
	}

	r.clearUserCache(ctx, id)
	return nil
}

// SetAdmin changes the role flag. The cached account is dropped so the next
// session lookup sees the new role.
func (r *userRepository) SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) error {
	log := r.log.Function("SetAdmin")

	result := r.db.SQLWithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Update("is_admin", isAdmin)
	if result.Error != nil {
		return log.Err("failed to update admin flag", result.Error, "userID", id)
	}
	if result.RowsAffected == 0 {
		return types.Wrap(types.ErrNotFound, "User not found")
	}

	r.clearUserCache(ctx, id)
	return nil
}

func (r *userRepository) clearUserCache(ctx context.Context, id uuid.UUID) {
	if err := r.cacheKey(ctx, id).Delete(); err != nil &&
		!errors.Is(err, database.ErrCacheUnavailable) {
		r.log.Function("clearUserCache").Warn("failed to clear user cache", "userID", id, "error", err)
	}
}

func (r *userRepository) cacheKey(ctx context.Context, id uuid.UUID) *database.CacheBuilder {
	return database.NewCacheBuilder(r.db.Cache.User, id).
		WithHash(USER_CACHE_PREFIX).
		WithContext(ctx)
}
