package errs

import (
	"errors"
)

// Not-found family: surfaced as 404.
var (
	ErrBookNotFound     = errors.New("book not found")
	ErrLoanNotFound     = errors.New("borrow record not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrAuthorNotFound   = errors.New("author not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// Conflict family: the requested transition is invalid from the
// current state. Surfaced as 400.
var (
	ErrBookUnavailable = errors.New("book is not available for borrowing")
	ErrLoanClosed      = errors.New("book already returned")
	ErrBookBorrowed    = errors.New("cannot delete a book that is currently borrowed")
	ErrBookHasLoans    = errors.New("cannot delete a book with loan history")
	ErrIsbnExists      = errors.New("book with this ISBN already exists")
	ErrUserExists      = errors.New("username or email already exists")
	ErrCategoryExists  = errors.New("category already exists")
	ErrEntityInUse     = errors.New("entity is referenced by existing books")
)

// Policy family: business-rule precondition failed. Surfaced as 400.
var (
	ErrOverdueLoans      = errors.New("you have overdue books, return them before borrowing more")
	ErrDueDaysOutOfRange = errors.New("loan duration must be between 1 and 60 days")
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrBookNotFound) ||
		errors.Is(err, ErrLoanNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrAuthorNotFound) ||
		errors.Is(err, ErrCategoryNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrBookUnavailable) ||
		errors.Is(err, ErrLoanClosed) ||
		errors.Is(err, ErrBookBorrowed) ||
		errors.Is(err, ErrBookHasLoans) ||
		errors.Is(err, ErrIsbnExists) ||
		errors.Is(err, ErrUserExists) ||
		errors.Is(err, ErrCategoryExists) ||
		errors.Is(err, ErrEntityInUse) ||
		errors.Is(err, ErrOverdueLoans) ||
		errors.Is(err, ErrDueDaysOutOfRange)
}
