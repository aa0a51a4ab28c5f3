package model

import (
	"time"
)

type Paging struct {
	Page          int `json:"page"`
	PageSize      int `json:"pageSize"`
	TotalElements int `json:"totalElements"`
}

type Book struct {
	ID            int     `json:"bookId" db:"id"`
	Title         string  `json:"title" db:"title"`
	AuthorID      int     `json:"authorId" db:"author_id"`
	CategoryID    int     `json:"categoryId" db:"category_id"`
	Isbn          *string `json:"isbn" db:"isbn"`
	PublishedYear *int    `json:"publishedYear" db:"published_year"`
	Available     bool    `json:"available" db:"available"`
}

// BookDetails is a Book joined with its author and category names.
type BookDetails struct {
	Book         `json:",inline"`
	AuthorName   string  `json:"authorName" db:"author_name"`
	AuthorBio    *string `json:"authorBio,omitempty" db:"author_bio"`
	CategoryName string  `json:"categoryName" db:"category_name"`
}

type ListBooks struct {
	Paging `json:",inline"`
	Items  []BookDetails `json:"items"`
}

type BookFilter struct {
	Title     string
	Author    string
	Category  string
	Available *bool
	Page      int
	Size      int
}

type AuthorInfo struct {
	ID        int     `json:"authorId" db:"id"`
	Name      string  `json:"name" db:"name"`
	Bio       *string `json:"bio" db:"bio"`
	BookCount int     `json:"bookCount" db:"book_count"`
}

type CategoryInfo struct {
	ID        int    `json:"categoryId" db:"id"`
	Name      string `json:"name" db:"name"`
	BookCount int    `json:"bookCount" db:"book_count"`
}

type LoanStatus string

const (
	StatusBorrowed LoanStatus = "BORROWED"
	StatusReturned LoanStatus = "RETURNED"
)

// Loan is one ledger entry: a book borrowed by a user for a bounded
// period. Status is kept alongside the nullable return date so state
// never has to be re-derived from field nullness.
type Loan struct {
	ID         int        `json:"-" db:"id"`
	LoanUid    string     `json:"loanUid" db:"loan_uid"`
	BookID     int        `json:"bookId" db:"book_id"`
	UserID     int        `json:"userId" db:"user_id"`
	Status     LoanStatus `json:"status" db:"status"`
	BorrowDate time.Time  `json:"borrowDate" db:"borrow_date"`
	DueDate    time.Time  `json:"dueDate" db:"due_date"`
	ReturnDate *time.Time `json:"returnDate" db:"return_date"`
}

// IsOverdue reports whether the loan is open and past due at now.
// Overdue is always computed, never stored.
func (l Loan) IsOverdue(now time.Time) bool {
	return l.Status == StatusBorrowed && l.DueDate.Before(truncateToDay(now))
}

// ReturnedLate reports whether a closed loan came back after its due date.
func (l Loan) ReturnedLate() bool {
	return l.ReturnDate != nil && l.ReturnDate.After(l.DueDate)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

type BorrowRequest struct {
	BookID  int `json:"-" validate:"required"`
	UserID  int `json:"-" validate:"required"`
	DueDays int `json:"dueDays" validate:"omitempty,min=1,max=60"`
}

// Loan duration policy: the original source accepted any numeric
// duration; here the allowed range is fixed at 1-60 days.
const (
	DefaultDueDays = 14
	MinDueDays     = 1
	MaxDueDays     = 60
)

type BorrowResponse struct {
	Message string    `json:"message"`
	LoanUid string    `json:"loanUid"`
	DueDate time.Time `json:"dueDate"`
}

// LoanInfo is the borrower-facing view of a loan joined with book
// metadata. State folds overdue into the display status.
type LoanInfo struct {
	LoanUid      string     `json:"loanUid" db:"loan_uid"`
	BorrowDate   time.Time  `json:"borrowDate" db:"borrow_date"`
	DueDate      time.Time  `json:"dueDate" db:"due_date"`
	ReturnDate   *time.Time `json:"returnDate" db:"return_date"`
	BookID       int        `json:"bookId" db:"book_id"`
	Title        string     `json:"title" db:"title"`
	Isbn         *string    `json:"isbn" db:"isbn"`
	AuthorName   string     `json:"authorName" db:"author_name"`
	CategoryName string     `json:"categoryName" db:"category_name"`
	State        string     `json:"state" db:"state"`
}

type OverdueLoan struct {
	LoanUid     string    `json:"loanUid" db:"loan_uid"`
	BorrowDate  time.Time `json:"borrowDate" db:"borrow_date"`
	DueDate     time.Time `json:"dueDate" db:"due_date"`
	DaysOverdue int       `json:"daysOverdue" db:"days_overdue"`
	BookID      int       `json:"bookId" db:"book_id"`
	Title       string    `json:"title" db:"title"`
	UserID      int       `json:"userId" db:"user_id"`
	Username    string    `json:"username" db:"username"`
	FullName    string    `json:"fullName" db:"full_name"`
	Email       string    `json:"email" db:"email"`
}

type LoanHistory struct {
	LoanUid    string     `json:"loanUid" db:"loan_uid"`
	BorrowDate time.Time  `json:"borrowDate" db:"borrow_date"`
	DueDate    time.Time  `json:"dueDate" db:"due_date"`
	ReturnDate *time.Time `json:"returnDate" db:"return_date"`
	UserID     int        `json:"userId" db:"user_id"`
	Username   string     `json:"username" db:"username"`
	FullName   string     `json:"fullName" db:"full_name"`
}

type TopBook struct {
	BookID      int    `json:"bookId" db:"id"`
	Title       string `json:"title" db:"title"`
	AuthorName  string `json:"authorName" db:"author_name"`
	BorrowCount int    `json:"borrowCount" db:"borrow_count"`
}

type User struct {
	ID               int       `json:"id" db:"id"`
	Username         string    `json:"username" db:"username"`
	Password         string    `json:"-" db:"password"`
	Email            string    `json:"email" db:"email"`
	FullName         string    `json:"fullName" db:"full_name"`
	Role             string    `json:"role" db:"role"`
	RegistrationDate time.Time `json:"registrationDate" db:"registration_date"`
}

type UserCreateRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName"`
	Role     string `json:"role" validate:"omitempty,oneof=member admin"`
}

type AuthRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
}

type BorrowStats struct {
	TotalBorrowed     int `json:"totalBorrowed" db:"total_borrowed"`
	CurrentlyBorrowed int `json:"currentlyBorrowed" db:"currently_borrowed"`
	Overdue           int `json:"overdue" db:"overdue"`
}

type UserProfile struct {
	User  `json:",inline"`
	Stats BorrowStats `json:"stats"`
}

type UserStats struct {
	User        `json:",inline"`
	BorrowStats `json:",inline"`
}

type SystemStats struct {
	TotalBooks      int `json:"totalBooks"`
	AvailableBooks  int `json:"availableBooks"`
	BorrowedBooks   int `json:"borrowedBooks"`
	TotalUsers      int `json:"totalUsers"`
	TotalAuthors    int `json:"totalAuthors"`
	TotalCategories int `json:"totalCategories"`
	OverdueBooks    int `json:"overdueBooks"`
}

type BookCreateRequest struct {
	Title         string  `json:"title" validate:"required"`
	AuthorID      int     `json:"authorId" validate:"required"`
	CategoryID    int     `json:"categoryId" validate:"required"`
	Isbn          *string `json:"isbn"`
	PublishedYear *int    `json:"publishedYear"`
}

type BookUpdateRequest struct {
	Title         string  `json:"title" validate:"required"`
	AuthorID      int     `json:"authorId" validate:"required"`
	CategoryID    int     `json:"categoryId" validate:"required"`
	Isbn          *string `json:"isbn"`
	PublishedYear *int    `json:"publishedYear"`
	Available     *bool   `json:"available"`
}

type AuthorRequest struct {
	Name string  `json:"name" validate:"required"`
	Bio  *string `json:"bio"`
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

type LoanEventRow struct {
	ID         int       `json:"-" db:"id"`
	EventType  string    `json:"eventType" db:"event_type"`
	LoanUid    string    `json:"loanUid" db:"loan_uid"`
	BookID     int       `json:"bookId" db:"book_id"`
	UserID     int       `json:"userId" db:"user_id"`
	OccurredAt time.Time `json:"occurredAt" db:"occurred_at"`
}
