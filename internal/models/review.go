package models

// Review is a book review owned by exactly one user. Ownership is set at
// creation and never reassigned.
type Review struct {
	// ID is the unique identifier for the review, assigned by the database.
	ID int64

	// UserID references the owning user.
	UserID int64

	// Title is the book title.
	Title string

	// Description is the review text.
	Description string

	// Notes holds optional reading notes. Blank notes are stored as the
	// "No notes" sentinel.
	Notes string

	// ISBN identifies the book edition.
	ISBN string

	// Date is the creation date in "Jan 2, 2006" form. Immutable after
	// creation.
	Date string

	// Image is the cover image URL derived from the ISBN. Recomputed
	// whenever the ISBN is edited.
	Image string
}
