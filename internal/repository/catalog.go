package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/openshelf/library-service/internal/errs"
	"github.com/openshelf/library-service/internal/model"
)

// bookRow carries the windowed total so one query serves both the
// page and the full match count.
type bookRow struct {
	model.BookDetails
	Total int `db:"total"`
}

func (r *repository) ListBooks(ctx context.Context, f model.BookFilter) (model.ListBooks, error) {
	q := qb.Select("b.id", "b.title", "b.author_id", "b.category_id", "b.isbn", "b.published_year", "b.available",
		"a.name as author_name", "c.name as category_name",
		"count(*) over() as total").
		From(booksTableName + " b").
		Join(authorsTableName + " a on b.author_id = a.id").
		Join(categoriesTableName + " c on b.category_id = c.id")

	if f.Title != "" {
		q = q.Where(sq.ILike{"b.title": "%" + f.Title + "%"})
	}
	if f.Author != "" {
		q = q.Where(sq.ILike{"a.name": "%" + f.Author + "%"})
	}
	if f.Category != "" {
		q = q.Where(sq.ILike{"c.name": "%" + f.Category + "%"})
	}
	if f.Available != nil {
		q = q.Where(sq.Eq{"b.available": *f.Available})
	}
	q = q.OrderBy("b.title")

	if f.Page != 0 && f.Size != 0 {
		q = q.Limit(uint64(f.Size)).Offset(uint64((f.Page - 1) * f.Size))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return model.ListBooks{}, err
	}
	r.log.Debug("ListBooks", zap.String("query", query), zap.Any("args", args))

	var rows []bookRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return model.ListBooks{}, err
	}

	total := 0
	books := make([]model.BookDetails, 0, len(rows))
	for _, row := range rows {
		total = row.Total
		books = append(books, row.BookDetails)
	}

	return model.ListBooks{
		Paging: model.Paging{
			Page:          f.Page,
			PageSize:      f.Size,
			TotalElements: total,
		},
		Items: books,
	}, nil
}

func (r *repository) GetBook(ctx context.Context, bookID int) (model.BookDetails, error) {
	query, args, err := qb.Select("b.id", "b.title", "b.author_id", "b.category_id", "b.isbn", "b.published_year", "b.available",
		"a.name as author_name", "a.bio as author_bio", "c.name as category_name").
		From(booksTableName + " b").
		Join(authorsTableName + " a on b.author_id = a.id").
		Join(categoriesTableName + " c on b.category_id = c.id").
		Where(sq.Eq{"b.id": bookID}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.BookDetails{}, err
	}

	var book model.BookDetails
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BookDetails{}, errs.ErrBookNotFound
		}
		return model.BookDetails{}, err
	}
	return book, nil
}

func (r *repository) BookHistory(ctx context.Context, bookID int) ([]model.LoanHistory, error) {
	const q = `
	select l.loan_uid, l.borrow_date, l.due_date, l.return_date,
	       u.id as user_id, u.username, u.full_name
	from loans l
	join users u on l.user_id = u.id
	where l.book_id = $1
	order by l.borrow_date desc`

	var history []model.LoanHistory
	if err := r.db.SelectContext(ctx, &history, q, bookID); err != nil {
		return nil, err
	}
	return history, nil
}

func (r *repository) ListAuthors(ctx context.Context) ([]model.AuthorInfo, error) {
	const q = `
	select a.id, a.name, a.bio, count(b.id) as book_count
	from authors a
	left join books b on b.author_id = a.id
	group by a.id
	order by a.name`

	var authors []model.AuthorInfo
	if err := r.db.SelectContext(ctx, &authors, q); err != nil {
		return nil, err
	}
	return authors, nil
}

func (r *repository) ListCategories(ctx context.Context) ([]model.CategoryInfo, error) {
	const q = `
	select c.id, c.name, count(b.id) as book_count
	from categories c
	left join books b on b.category_id = c.id
	group by c.id
	order by c.name`

	var categories []model.CategoryInfo
	if err := r.db.SelectContext(ctx, &categories, q); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repository) TopBorrowed(ctx context.Context, limit int) ([]model.TopBook, error) {
	const q = `
	select b.id, b.title, a.name as author_name, count(l.id) as borrow_count
	from loans l
	join books b on l.book_id = b.id
	join authors a on b.author_id = a.id
	group by b.id, b.title, a.name
	order by borrow_count desc
	limit $1`

	var top []model.TopBook
	if err := r.db.SelectContext(ctx, &top, q, limit); err != nil {
		return nil, err
	}
	return top, nil
}

func (r *repository) CreateBook(ctx context.Context, req model.BookCreateRequest) (model.Book, error) {
	query, args, err := qb.Insert(booksTableName).
		Columns("title", "author_id", "category_id", "isbn", "published_year", "available").
		Values(req.Title, req.AuthorID, req.CategoryID, req.Isbn, req.PublishedYear, true).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		return model.Book{}, mapBookWriteErr(err)
	}
	return book, nil
}

func (r *repository) UpdateBook(ctx context.Context, bookID int, req model.BookUpdateRequest) (model.Book, error) {
	q := qb.Update(booksTableName).
		Set("title", req.Title).
		Set("author_id", req.AuthorID).
		Set("category_id", req.CategoryID).
		Set("isbn", req.Isbn).
		Set("published_year", req.PublishedYear).
		Where(sq.Eq{"id": bookID}).
		Suffix("returning *")
	if req.Available != nil {
		q = q.Set("available", *req.Available)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrBookNotFound
		}
		return model.Book{}, mapBookWriteErr(err)
	}
	return book, nil
}

func (r *repository) DeleteBook(ctx context.Context, bookID int) error {
	var hasOpen bool
	err := r.db.GetContext(ctx, &hasOpen,
		`select exists(select 1 from loans where book_id = $1 and status = $2)`,
		bookID, model.StatusBorrowed)
	if err != nil {
		return err
	}
	if hasOpen {
		return errs.ErrBookBorrowed
	}

	res, err := r.db.ExecContext(ctx, `delete from books where id = $1`, bookID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return errs.ErrBookHasLoans
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrBookNotFound
	}
	return nil
}

func (r *repository) CreateAuthor(ctx context.Context, req model.AuthorRequest) (model.AuthorInfo, error) {
	query, args, err := qb.Insert(authorsTableName).
		Columns("name", "bio").
		Values(req.Name, req.Bio).
		Suffix("returning id, name, bio, 0 as book_count").
		ToSql()
	if err != nil {
		return model.AuthorInfo{}, err
	}

	var author model.AuthorInfo
	if err := r.db.GetContext(ctx, &author, query, args...); err != nil {
		return model.AuthorInfo{}, err
	}
	return author, nil
}

func (r *repository) UpdateAuthor(ctx context.Context, authorID int, req model.AuthorRequest) (model.AuthorInfo, error) {
	const q = `
	update authors set name = $2, bio = $3
	where id = $1
	returning id, name, bio,
	    (select count(*) from books where author_id = authors.id) as book_count`

	var author model.AuthorInfo
	if err := r.db.GetContext(ctx, &author, q, authorID, req.Name, req.Bio); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.AuthorInfo{}, errs.ErrAuthorNotFound
		}
		return model.AuthorInfo{}, err
	}
	return author, nil
}

func (r *repository) DeleteAuthor(ctx context.Context, authorID int) error {
	res, err := r.db.ExecContext(ctx, `delete from authors where id = $1`, authorID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return errs.ErrEntityInUse
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrAuthorNotFound
	}
	return nil
}

func (r *repository) CreateCategory(ctx context.Context, req model.CategoryRequest) (model.CategoryInfo, error) {
	query, args, err := qb.Insert(categoriesTableName).
		Columns("name").
		Values(req.Name).
		Suffix("returning id, name, 0 as book_count").
		ToSql()
	if err != nil {
		return model.CategoryInfo{}, err
	}

	var category model.CategoryInfo
	if err := r.db.GetContext(ctx, &category, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.CategoryInfo{}, errs.ErrCategoryExists
		}
		return model.CategoryInfo{}, err
	}
	return category, nil
}

func (r *repository) UpdateCategory(ctx context.Context, categoryID int, req model.CategoryRequest) (model.CategoryInfo, error) {
	const q = `
	update categories set name = $2
	where id = $1
	returning id, name,
	    (select count(*) from books where category_id = categories.id) as book_count`

	var category model.CategoryInfo
	if err := r.db.GetContext(ctx, &category, q, categoryID, req.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.CategoryInfo{}, errs.ErrCategoryNotFound
		}
		return model.CategoryInfo{}, err
	}
	return category, nil
}

func (r *repository) DeleteCategory(ctx context.Context, categoryID int) error {
	res, err := r.db.ExecContext(ctx, `delete from categories where id = $1`, categoryID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return errs.ErrEntityInUse
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrCategoryNotFound
	}
	return nil
}

func mapBookWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return errs.ErrIsbnExists
	}
	return err
}
