package handler

import (
	"context"

	"github.com/openshelf/library-service/internal/model"
	"github.com/openshelf/library-service/internal/service"
	"github.com/openshelf/library-service/pkg/kafka"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

var (
	_ CatalogService = (*service.Service)(nil)
	_ LoanService    = (*service.Service)(nil)
	_ AuthService    = (*service.Service)(nil)
	_ StatsService   = (*service.Service)(nil)
)

type CatalogService interface {
	ListBooks(ctx context.Context, f model.BookFilter) (model.ListBooks, error)
	GetBook(ctx context.Context, bookID int) (model.BookDetails, error)
	BookHistory(ctx context.Context, bookID int) ([]model.LoanHistory, error)
	ListAuthors(ctx context.Context) ([]model.AuthorInfo, error)
	ListCategories(ctx context.Context) ([]model.CategoryInfo, error)
	TopBorrowed(ctx context.Context, limit int) ([]model.TopBook, error)
	CreateBook(ctx context.Context, req model.BookCreateRequest) (model.Book, error)
	UpdateBook(ctx context.Context, bookID int, req model.BookUpdateRequest) (model.Book, error)
	DeleteBook(ctx context.Context, bookID int) error
	CreateAuthor(ctx context.Context, req model.AuthorRequest) (model.AuthorInfo, error)
	UpdateAuthor(ctx context.Context, authorID int, req model.AuthorRequest) (model.AuthorInfo, error)
	DeleteAuthor(ctx context.Context, authorID int) error
	CreateCategory(ctx context.Context, req model.CategoryRequest) (model.CategoryInfo, error)
	UpdateCategory(ctx context.Context, categoryID int, req model.CategoryRequest) (model.CategoryInfo, error)
	DeleteCategory(ctx context.Context, categoryID int) error
}

type LoanService interface {
	Borrow(ctx context.Context, req model.BorrowRequest) (model.BorrowResponse, error)
	Return(ctx context.Context, loanUid string, userID int) (model.Loan, error)
	UserLoans(ctx context.Context, userID int) ([]model.LoanInfo, error)
	OverdueLoans(ctx context.Context) ([]model.OverdueLoan, error)
}

type AuthService interface {
	Register(ctx context.Context, req model.UserCreateRequest) (model.User, error)
	Login(ctx context.Context, req model.AuthRequest) (model.AuthResponse, error)
	Profile(ctx context.Context, userID int) (model.UserProfile, error)
	ListUsers(ctx context.Context) ([]model.UserStats, error)
}

type StatsService interface {
	SystemStats(ctx context.Context) (model.SystemStats, error)
	RecentLoanEvents(ctx context.Context, limit int) ([]model.LoanEventRow, error)
}

// LoanEvents publishes audit events after committed transitions.
type LoanEvents interface {
	Log(event kafka.LoanEvent) error
}
