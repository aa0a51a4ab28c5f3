package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/openshelf/library-service/internal/model"
	"github.com/openshelf/library-service/pkg/kafka"
)

//go:generate go run github.com/golang/mock/mockgen -destination=mocks/mock.go github.com/openshelf/library-service/internal/repository Repository

type CatalogRepository interface {
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

type LoanRepository interface {
	Borrow(ctx context.Context, bookID, userID, dueDays int) (model.Loan, error)
	Return(ctx context.Context, loanUid string, userID int) (model.Loan, error)
	UserLoans(ctx context.Context, userID int) ([]model.LoanInfo, error)
	OverdueLoans(ctx context.Context) ([]model.OverdueLoan, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, req model.UserCreateRequest, passwordHash string) (model.User, error)
	GetUserByUsername(ctx context.Context, username string) (model.User, error)
	Profile(ctx context.Context, userID int) (model.UserProfile, error)
	ListUsers(ctx context.Context) ([]model.UserStats, error)
}

type StatsRepository interface {
	CountBooks(ctx context.Context, available *bool) (int, error)
	CountUsers(ctx context.Context) (int, error)
	CountAuthors(ctx context.Context) (int, error)
	CountCategories(ctx context.Context) (int, error)
	CountOverdueLoans(ctx context.Context) (int, error)
	RecordLoanEvent(ctx context.Context, event kafka.LoanEvent) error
	RecentLoanEvents(ctx context.Context, limit int) ([]model.LoanEventRow, error)
}

type Repository interface {
	CatalogRepository
	LoanRepository
	UserRepository
	StatsRepository
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	booksTableName      = `books`
	authorsTableName    = `authors`
	categoriesTableName = `categories`
	loansTableName      = `loans`
	usersTableName      = `users`
	loanEventsTableName = `loan_events`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
