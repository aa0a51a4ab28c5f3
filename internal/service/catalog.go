package service

import (
	"context"

	"github.com/openshelf/library-service/internal/model"
)

func (s *Service) ListBooks(ctx context.Context, f model.BookFilter) (model.ListBooks, error) {
	return s.repo.ListBooks(ctx, f)
}

func (s *Service) GetBook(ctx context.Context, bookID int) (model.BookDetails, error) {
	return s.repo.GetBook(ctx, bookID)
}

func (s *Service) BookHistory(ctx context.Context, bookID int) ([]model.LoanHistory, error) {
	return s.repo.BookHistory(ctx, bookID)
}

func (s *Service) ListAuthors(ctx context.Context) ([]model.AuthorInfo, error) {
	return s.repo.ListAuthors(ctx)
}

func (s *Service) ListCategories(ctx context.Context) ([]model.CategoryInfo, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) TopBorrowed(ctx context.Context, limit int) ([]model.TopBook, error) {
	return s.repo.TopBorrowed(ctx, limit)
}

func (s *Service) CreateBook(ctx context.Context, req model.BookCreateRequest) (model.Book, error) {
	return s.repo.CreateBook(ctx, req)
}

func (s *Service) UpdateBook(ctx context.Context, bookID int, req model.BookUpdateRequest) (model.Book, error) {
	return s.repo.UpdateBook(ctx, bookID, req)
}

func (s *Service) DeleteBook(ctx context.Context, bookID int) error {
	return s.repo.DeleteBook(ctx, bookID)
}

func (s *Service) CreateAuthor(ctx context.Context, req model.AuthorRequest) (model.AuthorInfo, error) {
	return s.repo.CreateAuthor(ctx, req)
}

func (s *Service) UpdateAuthor(ctx context.Context, authorID int, req model.AuthorRequest) (model.AuthorInfo, error) {
	return s.repo.UpdateAuthor(ctx, authorID, req)
}

func (s *Service) DeleteAuthor(ctx context.Context, authorID int) error {
	return s.repo.DeleteAuthor(ctx, authorID)
}

func (s *Service) CreateCategory(ctx context.Context, req model.CategoryRequest) (model.CategoryInfo, error) {
	return s.repo.CreateCategory(ctx, req)
}

func (s *Service) UpdateCategory(ctx context.Context, categoryID int, req model.CategoryRequest) (model.CategoryInfo, error) {
	return s.repo.UpdateCategory(ctx, categoryID, req)
}

func (s *Service) DeleteCategory(ctx context.Context, categoryID int) error {
	return s.repo.DeleteCategory(ctx, categoryID)
}
