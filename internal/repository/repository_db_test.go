package repository_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/openshelf/library-service/internal/errs"
	"github.com/openshelf/library-service/internal/model"
	"github.com/openshelf/library-service/internal/repository"
	"github.com/openshelf/library-service/migrations"
	"github.com/openshelf/library-service/pkg/postgres"
)

// These tests need a running postgres; set TEST_DB_HOST to enable them.

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST is not set")
	}
	cfg := &postgres.Config{
		Host:     host,
		Port:     envOr("TEST_DB_PORT", "5432"),
		User:     envOr("TEST_DB_USER", "postgres"),
		Password: os.Getenv("TEST_DB_PASSWORD"),
		DBName:   envOr("TEST_DB_NAME", "library"),
		SSLMode:  "disable",
	}
	db, err := postgres.NewPostgresDB(context.Background(), cfg, migrations.MigrationFiles)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func createUser(t *testing.T, db *sqlx.DB) int {
	t.Helper()
	tag := uuid.NewString()[:8]
	var id int
	err := db.Get(&id, `
	insert into users (username, password, email)
	values ($1, 'x', $2)
	returning id`,
		"u_"+tag, tag+"@test.local")
	require.NoError(t, err)
	return id
}

func createBook(t *testing.T, db *sqlx.DB, title string) int {
	t.Helper()
	tag := uuid.NewString()[:8]
	var bookID int
	err := db.Get(&bookID, `
	with a as (
	    insert into authors (name) values ($1) returning id
	), c as (
	    insert into categories (name) values ($2) returning id
	)
	insert into books (title, author_id, category_id)
	select $3, a.id, c.id from a, c
	returning id`,
		"author_"+tag, "category_"+tag, title)
	require.NoError(t, err)
	return bookID
}

func TestRepository_Borrow_MutualExclusion(t *testing.T) {
	db := testDB(t)
	repo, err := repository.NewRepository(db, zap.NewExample().Named("test"))
	require.NoError(t, err)
	ctx := context.Background()

	bookID := createBook(t, db, "race_"+uuid.NewString()[:8])
	const borrowers = 8
	userIDs := make([]int, borrowers)
	for i := range userIDs {
		userIDs[i] = createUser(t, db)
	}

	errCh := make(chan error, borrowers)
	var wg sync.WaitGroup
	for _, userID := range userIDs {
		userID := userID
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Borrow(ctx, bookID, userID, model.DefaultDueDays)
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)

	wins := 0
	for err := range errCh {
		if err == nil {
			wins++
			continue
		}
		require.ErrorIs(t, err, errs.ErrBookUnavailable)
	}
	require.Equal(t, 1, wins)

	var available bool
	require.NoError(t, db.Get(&available, `select available from books where id = $1`, bookID))
	require.False(t, available)

	var open int
	require.NoError(t, db.Get(&open,
		`select count(*) from loans where book_id = $1 and status = $2`, bookID, model.StatusBorrowed))
	require.Equal(t, 1, open)
}

func TestRepository_Borrow_OverdueBorrowerRejected(t *testing.T) {
	db := testDB(t)
	repo, err := repository.NewRepository(db, zap.NewExample().Named("test"))
	require.NoError(t, err)
	ctx := context.Background()

	userID := createUser(t, db)
	overdueBook := createBook(t, db, "overdue_"+uuid.NewString()[:8])
	wantedBook := createBook(t, db, "wanted_"+uuid.NewString()[:8])

	_, err = db.Exec(`
	insert into loans (loan_uid, book_id, user_id, status, borrow_date, due_date)
	values ($1, $2, $3, $4, current_date - 10, current_date - 3)`,
		uuid.New(), overdueBook, userID, model.StatusBorrowed)
	require.NoError(t, err)

	_, err = repo.Borrow(ctx, wantedBook, userID, model.DefaultDueDays)
	require.ErrorIs(t, err, errs.ErrOverdueLoans)

	// the rejected borrow must leave the book untouched
	var available bool
	require.NoError(t, db.Get(&available, `select available from books where id = $1`, wantedBook))
	require.True(t, available)
}

func TestRepository_Return(t *testing.T) {
	db := testDB(t)
	repo, err := repository.NewRepository(db, zap.NewExample().Named("test"))
	require.NoError(t, err)
	ctx := context.Background()

	userID := createUser(t, db)
	bookID := createBook(t, db, "return_"+uuid.NewString()[:8])

	loan, err := repo.Borrow(ctx, bookID, userID, model.DefaultDueDays)
	require.NoError(t, err)

	closed, err := repo.Return(ctx, loan.LoanUid, userID)
	require.NoError(t, err)
	require.Equal(t, model.StatusReturned, closed.Status)
	require.NotNil(t, closed.ReturnDate)

	var available bool
	require.NoError(t, db.Get(&available, `select available from books where id = $1`, bookID))
	require.True(t, available)

	_, err = repo.Return(ctx, loan.LoanUid, userID)
	require.ErrorIs(t, err, errs.ErrLoanClosed)

	_, err = repo.Return(ctx, uuid.NewString(), userID)
	require.ErrorIs(t, err, errs.ErrLoanNotFound)
}

func TestRepository_ListBooks_PagingTotal(t *testing.T) {
	db := testDB(t)
	repo, err := repository.NewRepository(db, zap.NewExample().Named("test"))
	require.NoError(t, err)
	ctx := context.Background()

	prefix := "paging_" + uuid.NewString()[:8]
	for i := 0; i < 3; i++ {
		createBook(t, db, fmt.Sprintf("%s_%d", prefix, i))
	}

	page1, err := repo.ListBooks(ctx, model.BookFilter{Title: prefix, Page: 1, Size: 2})
	require.NoError(t, err)
	require.Len(t, page1.Items, 2)
	require.Equal(t, 3, page1.TotalElements)

	page2, err := repo.ListBooks(ctx, model.BookFilter{Title: prefix, Page: 2, Size: 2})
	require.NoError(t, err)
	require.Len(t, page2.Items, 1)
	require.Equal(t, 3, page2.TotalElements)
}
