package feedbackController

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	. "kardetailing/internal/models"
	"kardetailing/internal/repositories"
	"kardetailing/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

const msgFeedbackNotFound = "Feedback not found"

type FeedbackController struct {
	feedbackRepo repositories.FeedbackRepository
	log          logger.Logger
}

type FeedbackControllerInterface interface {
	Submit(ctx context.Context, author *User, req SubmitFeedbackRequest) (*Feedback, error)
	List(ctx context.Context) ([]*Feedback, error)
	Delete(ctx context.Context, actor *User, feedbackID string) error
}

type SubmitFeedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func New(repos repositories.Repository) FeedbackControllerInterface {
	return &FeedbackController{
		feedbackRepo: repos.Feedback,
		log:          logger.New("feedbackController"),
	}
}

func (fc *FeedbackController) Submit(
	ctx context.Context,
	author *User,
	req SubmitFeedbackRequest,
) (*Feedback, error) {
	log := fc.log.TraceFromContext(ctx).Function("Submit")

	comment := strings.TrimSpace(req.Comment)
	if err := validate(req.Rating, comment); err != nil {
		return nil, err
	}

	authorID := author.ID
	feedback := &Feedback{
		UserID:  &authorID,
		Name:    author.DisplayName(),
		Rating:  req.Rating,
		Comment: comment,
	}

	if err := fc.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, log.Err("failed to create feedback", err, "userID", author.ID)
	}

	log.Info("feedback submitted", "feedbackID", feedback.ID, "rating", feedback.Rating)
	return feedback, nil
}

func (fc *FeedbackController) List(ctx context.Context) ([]*Feedback, error) {
	log := fc.log.TraceFromContext(ctx).Function("List")

	feedback, err := fc.feedbackRepo.List(ctx)
	if err != nil {
		return nil, log.Err("failed to list feedback", err)
	}

	return feedback, nil
}

func (fc *FeedbackController) Delete(ctx context.Context, actor *User, feedbackID string) error {
	log := fc.log.TraceFromContext(ctx).Function("Delete")

	if actor == nil || !actor.IsAdmin {
		return types.Wrap(types.ErrForbidden, "Admin access required")
	}

	id, err := uuid.Parse(feedbackID)
	if err != nil {
		return types.Wrap(types.ErrNotFound, msgFeedbackNotFound)
	}

	if err := fc.feedbackRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return types.Wrap(types.ErrNotFound, msgFeedbackNotFound)
		}
		return log.Err("failed to delete feedback", err, "feedbackID", id)
	}

	log.Info("feedback deleted", "feedbackID", id, "adminID", actor.ID)
	return nil
}

func validate(rating int, comment string) error {
	if rating < MinFeedbackRating || rating > MaxFeedbackRating {
		return types.Wrap(
			types.ErrValidation,
			fmt.Sprintf("Rating must be between %d and %d", MinFeedbackRating, MaxFeedbackRating),
		)
	}

	if comment == "" {
		return types.Wrap(types.ErrValidation, "Comment is required")
	}

	if utf8.RuneCountInString(comment) > MaxFeedbackCommentLength {
		return types.Wrap(
			types.ErrValidation,
			fmt.Sprintf("Comment must be at most %d characters", MaxFeedbackCommentLength),
		)
	}

	return nil
}
