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
)

const (
	FEEDBACK_CACHE_EXPIRY = 10 * time.Minute
	FEEDBACK_CACHE_KEY    = "feedback:list"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *Feedback) error
	List(ctx context.Context) ([]*Feedback, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type feedbackRepository struct {
	db  database.DB
	log logger.Logger
}

func NewFeedbackRepository(db database.DB) FeedbackRepository {
	return &feedbackRepository{
		db:  db,
		log: logger.New("feedbackRepository"),
	}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *Feedback) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(feedback).Error; err != nil {
		return log.Err("failed to create feedback", err)
	}

	r.clearListCache(ctx)
	return nil
}

// List is public and read far more often than it changes, so the whole
// board is kept in the general cache until the next write.
func (r *feedbackRepository) List(ctx context.Context) ([]*Feedback, error) {
	log := r.log.Function("List")

	var feedback []*Feedback
	found, err := r.listCache(ctx).Get(&feedback)
	if err != nil && !errors.Is(err, database.ErrCacheUnavailable) {
		log.Warn("failed to read feedback cache", "error", err)
	}
	if found {
		return feedback, nil
	}

	if err := r.db.SQLWithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&feedback).Error; err != nil {
		return nil, log.Err("failed to list feedback", err)
	}

	if err := r.listCache(ctx).WithStruct(feedback).WithTTL(FEEDBACK_CACHE_EXPIRY).Set(); err != nil &&
		!errors.Is(err, database.ErrCacheUnavailable) {
		log.Warn("failed to cache feedback", "error", err)
	}

	return feedback, nil
}

func (r *feedbackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	log := r.log.Function("Delete")

	result := r.db.SQLWithContext(ctx).Delete(&Feedback{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete feedback", result.Error, "feedbackID", id)
	}
	if result.RowsAffected == 0 {
		return types.Wrap(types.ErrNotFound, "Feedback not found")
	}

	r.clearListCache(ctx)
	return nil
}

func (r *feedbackRepository) clearListCache(ctx context.Context) {
	if err := r.listCache(ctx).Delete(); err != nil &&
		!errors.Is(err, database.ErrCacheUnavailable) {
		r.log.Function("clearListCache").Warn("failed to clear feedback cache", "error", err)
	}
}

func (r *feedbackRepository) listCache(ctx context.Context) *database.CacheBuilder {
	return database.NewCacheBuilder(r.db.Cache.General, FEEDBACK_CACHE_KEY).WithContext(ctx)
}
