package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/openshelf/library-service/internal/model"
	"github.com/openshelf/library-service/pkg/kafka"
)

func (r *repository) CountBooks(ctx context.Context, available *bool) (int, error) {
	q := qb.Select("count(*)").From(booksTableName)
	if available != nil {
		q = q.Where(sq.Eq{"available": *available})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) CountUsers(ctx context.Context) (int, error) {
	return r.countRows(ctx, usersTableName)
}

func (r *repository) CountAuthors(ctx context.Context) (int, error) {
	return r.countRows(ctx, authorsTableName)
}

func (r *repository) CountCategories(ctx context.Context) (int, error) {
	return r.countRows(ctx, categoriesTableName)
}

func (r *repository) countRows(ctx context.Context, table string) (int, error) {
	query, args, err := qb.Select("count(*)").From(table).ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) CountOverdueLoans(ctx context.Context) (int, error) {
	const q = `
	select count(*) from loans
	where status = $1 and due_date < current_date`

	var count int
	if err := r.db.GetContext(ctx, &count, q, model.StatusBorrowed); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) RecordLoanEvent(ctx context.Context, event kafka.LoanEvent) error {
	query, args, err := qb.Insert(loanEventsTableName).
		Columns("event_type", "loan_uid", "book_id", "user_id", "occurred_at").
		Values(event.EventType, event.LoanUid, event.BookID, event.UserID, event.OccurredAt).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *repository) RecentLoanEvents(ctx context.Context, limit int) ([]model.LoanEventRow, error) {
	query, args, err := qb.Select("id", "event_type", "loan_uid", "book_id", "user_id", "occurred_at").
		From(loanEventsTableName).
		OrderBy("occurred_at desc").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	var events []model.LoanEventRow
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, err
	}
	return events, nil
}
