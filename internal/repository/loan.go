package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/openshelf/library-service/internal/errs"
	"github.com/openshelf/library-service/internal/model"
)

// Borrow flips the book's availability and inserts an open loan as one
// atomic unit. The book row is locked for the duration of the
// transaction so two concurrent borrows cannot both observe
// available = true; all precondition checks run before any write.
func (r *repository) Borrow(ctx context.Context, bookID, userID, dueDays int) (model.Loan, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return model.Loan{}, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	var available bool
	err = tx.GetContext(ctx, &available,
		`select available from books where id = $1 for update`, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, errs.ErrBookNotFound
		}
		return model.Loan{}, errors.Wrap(err, "check availability")
	}
	if !available {
		return model.Loan{}, errs.ErrBookUnavailable
	}

	var overdue int
	err = tx.GetContext(ctx, &overdue,
		`select count(*) from loans where user_id = $1 and status = $2 and due_date < current_date`,
		userID, model.StatusBorrowed)
	if err != nil {
		return model.Loan{}, errors.Wrap(err, "check overdue")
	}
	if overdue > 0 {
		return model.Loan{}, errs.ErrOverdueLoans
	}

	if _, err = tx.ExecContext(ctx,
		`update books set available = false where id = $1`, bookID); err != nil {
		return model.Loan{}, errors.Wrap(err, "flip availability")
	}

	const insertLoan = `
	insert into loans (loan_uid, book_id, user_id, status, borrow_date, due_date)
	values ($1, $2, $3, $4, current_date, current_date + $5::int)
	returning id, loan_uid, book_id, user_id, status, borrow_date, due_date, return_date`

	var loan model.Loan
	if err = tx.GetContext(ctx, &loan, insertLoan,
		uuid.New(), bookID, userID, model.StatusBorrowed, dueDays); err != nil {
		// loans_open_book_uq: someone slipped an open loan in, treat as taken
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.Loan{}, errs.ErrBookUnavailable
		}
		r.log.Error("Borrow insert", zap.Int("bookID", bookID), zap.Error(err))
		return model.Loan{}, errors.Wrap(err, "insert loan")
	}

	if err = tx.Commit(); err != nil {
		return model.Loan{}, errors.Wrap(err, "commit borrow")
	}
	return loan, nil
}

// Return closes the borrower's open loan and restores availability,
// atomically. The loan row is locked so a duplicate return observes
// the closed state and fails.
func (r *repository) Return(ctx context.Context, loanUid string, userID int) (model.Loan, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return model.Loan{}, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	var loan model.Loan
	err = tx.GetContext(ctx, &loan, `
	select id, loan_uid, book_id, user_id, status, borrow_date, due_date, return_date
	from loans
	where loan_uid = $1 and user_id = $2
	for update`, loanUid, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, errs.ErrLoanNotFound
		}
		return model.Loan{}, errors.Wrap(err, "get loan")
	}
	if loan.Status == model.StatusReturned {
		return model.Loan{}, errs.ErrLoanClosed
	}

	if _, err = tx.ExecContext(ctx,
		`update books set available = true where id = $1`, loan.BookID); err != nil {
		return model.Loan{}, errors.Wrap(err, "restore availability")
	}

	if err = tx.GetContext(ctx, &loan, `
	update loans set status = $2, return_date = current_date
	where id = $1
	returning id, loan_uid, book_id, user_id, status, borrow_date, due_date, return_date`,
		loan.ID, model.StatusReturned); err != nil {
		return model.Loan{}, errors.Wrap(err, "close loan")
	}

	if err = tx.Commit(); err != nil {
		return model.Loan{}, errors.Wrap(err, "commit return")
	}
	return loan, nil
}

func (r *repository) UserLoans(ctx context.Context, userID int) ([]model.LoanInfo, error) {
	const q = `
	select l.loan_uid, l.borrow_date, l.due_date, l.return_date,
	       b.id as book_id, b.title, b.isbn,
	       a.name as author_name, c.name as category_name,
	       case
	           when l.status = 'BORROWED' and l.due_date < current_date then 'Overdue'
	           when l.status = 'BORROWED' then 'Borrowed'
	           else 'Returned'
	       end as state
	from loans l
	join books b on l.book_id = b.id
	join authors a on b.author_id = a.id
	join categories c on b.category_id = c.id
	where l.user_id = $1
	order by l.borrow_date desc`

	var items []model.LoanInfo
	if err := r.db.SelectContext(ctx, &items, q, userID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) OverdueLoans(ctx context.Context) ([]model.OverdueLoan, error) {
	const q = `
	select l.loan_uid, l.borrow_date, l.due_date,
	       (current_date - l.due_date) as days_overdue,
	       b.id as book_id, b.title,
	       u.id as user_id, u.username, u.full_name, u.email
	from loans l
	join books b on l.book_id = b.id
	join users u on l.user_id = u.id
	where l.status = $1 and l.due_date < current_date
	order by days_overdue desc`

	var items []model.OverdueLoan
	if err := r.db.SelectContext(ctx, &items, q, model.StatusBorrowed); err != nil {
		return nil, err
	}
	return items, nil
}
