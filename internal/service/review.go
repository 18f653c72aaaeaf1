// Package service contains the application logic between the HTTP
// handlers and the storage layer: review ownership enforcement and
// account lifecycle operations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mknox/bookshelf/internal/covers"
	"github.com/mknox/bookshelf/internal/models"
	"github.com/mknox/bookshelf/internal/storage"
)

// noNotes is stored when a review is submitted without notes.
const noNotes = "No notes"

const dateFormat = "Jan 2, 2006"

// ReviewService implements review operations. Every mutation of an
// existing review verifies that the caller owns it; a non-owner gets the
// same not-found answer as a missing id, so review existence is not
// leaked.
type ReviewService struct {
	store  storage.ReviewStore
	logger *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(store storage.ReviewStore, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		store:  store,
		logger: logger,
	}
}

// Add creates a review owned by ownerID. The creation date and the cover
// image URL are derived here; blank notes become the "No notes" sentinel.
func (s *ReviewService) Add(ctx context.Context, ownerID int64, title, description, notes, isbn string) (*models.Review, error) {
	review := &models.Review{
		UserID:      ownerID,
		Title:       title,
		Description: description,
		Notes:       normalizeNotes(notes),
		ISBN:        isbn,
		Date:        time.Now().Format(dateFormat),
		Image:       covers.URL(isbn),
	}

	if err := s.store.CreateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to add review: %w", err)
	}

	s.logger.Info("review added", "review_id", review.ID, "user_id", ownerID)
	return review, nil
}

// Edit updates a review's mutable fields. The cover URL is recomputed from
// the new ISBN; owner and date are untouched. Requires callerID to own the
// review.
func (s *ReviewService) Edit(ctx context.Context, callerID, id int64, title, description, notes, isbn string) error {
	review, err := s.getOwned(ctx, callerID, id)
	if err != nil {
		return err
	}

	review.Title = title
	review.Description = description
	review.Notes = normalizeNotes(notes)
	review.ISBN = isbn
	review.Image = covers.URL(isbn)

	if err := s.store.UpdateReview(ctx, review); err != nil {
		return fmt.Errorf("failed to edit review: %w", err)
	}

	s.logger.Info("review edited", "review_id", id, "user_id", callerID)
	return nil
}

// Delete removes a review. Requires callerID to own it.
func (s *ReviewService) Delete(ctx context.Context, callerID, id int64) error {
	if _, err := s.getOwned(ctx, callerID, id); err != nil {
		return err
	}

	if err := s.store.DeleteReview(ctx, id); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	s.logger.Info("review deleted", "review_id", id, "user_id", callerID)
	return nil
}

// Get retrieves a review by id.
func (s *ReviewService) Get(ctx context.Context, id int64) (*models.Review, error) {
	return s.store.GetReview(ctx, id)
}

// GetOwned retrieves a review the caller owns, for pre-filling the edit
// form. A review owned by someone else reads as not found.
func (s *ReviewService) GetOwned(ctx context.Context, callerID, id int64) (*models.Review, error) {
	return s.getOwned(ctx, callerID, id)
}

// ListAll returns every review, newest first.
func (s *ReviewService) ListAll(ctx context.Context) ([]models.Review, error) {
	return s.store.ListReviews(ctx)
}

// ListByOwner returns the reviews owned by the given user.
func (s *ReviewService) ListByOwner(ctx context.Context, ownerID int64) ([]models.Review, error) {
	return s.store.ListReviewsByOwner(ctx, ownerID)
}

// ListSorted returns every review in the requested order. Invalid sort
// specs fail with storage.ErrInvalidSortSpec.
func (s *ReviewService) ListSorted(ctx context.Context, field, order string) ([]models.Review, error) {
	return s.store.ListReviewsSorted(ctx, field, order)
}

func (s *ReviewService) getOwned(ctx context.Context, callerID, id int64) (*models.Review, error) {
	review, err := s.store.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.UserID != callerID {
		s.logger.Warn("review access denied", "review_id", id, "user_id", callerID, "owner_id", review.UserID)
		return nil, storage.ErrNotFound
	}
	return review, nil
}

func normalizeNotes(notes string) string {
	if strings.TrimSpace(notes) == "" {
		return noNotes
	}
	return notes
}
