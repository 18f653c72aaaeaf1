package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mknox/bookshelf/internal/models"
	"github.com/mknox/bookshelf/internal/storage"
)

const reviewColumns = "id, user_id, title, description, notes, isbn, date, image"

// CreateReview inserts a new review and populates review.ID.
func (s *SQLiteStore) CreateReview(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (user_id, title, description, notes, isbn, date, image)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		review.UserID,
		review.Title,
		review.Description,
		review.Notes,
		review.ISBN,
		review.Date,
		review.Image,
	).Scan(&review.ID)

	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// GetReview retrieves a review by ID.
func (s *SQLiteStore) GetReview(ctx context.Context, id int64) (*models.Review, error) {
	query := "SELECT " + reviewColumns + " FROM reviews WHERE id = ?"

	review := &models.Review{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&review.ID,
		&review.UserID,
		&review.Title,
		&review.Description,
		&review.Notes,
		&review.ISBN,
		&review.Date,
		&review.Image,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return review, nil
}

// UpdateReview updates the mutable fields of the review identified by
// review.ID. Owner and date stay untouched.
func (s *SQLiteStore) UpdateReview(ctx context.Context, review *models.Review) error {
	query := `
		UPDATE reviews
		SET title = ?, description = ?, notes = ?, isbn = ?, image = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		review.Title,
		review.Description,
		review.Notes,
		review.ISBN,
		review.Image,
		review.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// DeleteReview removes a review by ID.
func (s *SQLiteStore) DeleteReview(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM reviews WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// ListReviews returns all reviews, newest first.
func (s *SQLiteStore) ListReviews(ctx context.Context) ([]models.Review, error) {
	return s.queryReviews(ctx, "SELECT "+reviewColumns+" FROM reviews ORDER BY id DESC")
}

// ListReviewsByOwner returns all reviews owned by the given user.
func (s *SQLiteStore) ListReviewsByOwner(ctx context.Context, userID int64) ([]models.Review, error) {
	return s.queryReviews(ctx,
		"SELECT "+reviewColumns+" FROM reviews WHERE user_id = ? ORDER BY id DESC",
		userID,
	)
}

// ListReviewsSorted returns all reviews in the requested order. The field
// and order pass through the storage allow-list before any SQL is built.
func (s *SQLiteStore) ListReviewsSorted(ctx context.Context, field, order string) ([]models.Review, error) {
	clause, err := storage.OrderClause(field, order)
	if err != nil {
		return nil, err
	}
	return s.queryReviews(ctx, "SELECT "+reviewColumns+" FROM reviews ORDER BY "+clause)
}

func (s *SQLiteStore) queryReviews(ctx context.Context, query string, args ...any) ([]models.Review, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.Title,
			&review.Description,
			&review.Notes,
			&review.ISBN,
			&review.Date,
			&review.Image,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return reviews, nil
}
