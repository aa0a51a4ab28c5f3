package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/openshelf/library-service/internal/errs"
	"github.com/openshelf/library-service/internal/model"
	"github.com/openshelf/library-service/internal/service"
	"github.com/openshelf/library-service/pkg/auth"

	repo_mocks "github.com/openshelf/library-service/internal/repository/mocks"
)

func TestService_Borrow(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *repo_mocks.MockRepository, req model.BorrowRequest)

	dueDate := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		req          model.BorrowRequest
		want         model.BorrowResponse
		wantErr      error
	}{
		{
			name: "explicit duration is passed through",
			mockBehavior: func(r *repo_mocks.MockRepository, req model.BorrowRequest) {
				r.EXPECT().
					Borrow(context.Background(), req.BookID, req.UserID, 30).
					Return(model.Loan{
						LoanUid: "0d3c9b2e-5f04-4aef-aab2-6e53f77f9a11",
						BookID:  req.BookID,
						UserID:  req.UserID,
						Status:  model.StatusBorrowed,
						DueDate: dueDate,
					}, nil)
			},
			req: model.BorrowRequest{BookID: 1, UserID: 7, DueDays: 30},
			want: model.BorrowResponse{
				Message: "Book borrowed successfully",
				LoanUid: "0d3c9b2e-5f04-4aef-aab2-6e53f77f9a11",
				DueDate: dueDate,
			},
		},
		{
			name: "zero duration falls back to the default",
			mockBehavior: func(r *repo_mocks.MockRepository, req model.BorrowRequest) {
				r.EXPECT().
					Borrow(context.Background(), req.BookID, req.UserID, model.DefaultDueDays).
					Return(model.Loan{
						LoanUid: "0d3c9b2e-5f04-4aef-aab2-6e53f77f9a11",
						BookID:  req.BookID,
						UserID:  req.UserID,
						Status:  model.StatusBorrowed,
						DueDate: dueDate,
					}, nil)
			},
			req: model.BorrowRequest{BookID: 1, UserID: 7},
			want: model.BorrowResponse{
				Message: "Book borrowed successfully",
				LoanUid: "0d3c9b2e-5f04-4aef-aab2-6e53f77f9a11",
				DueDate: dueDate,
			},
		},
		{
			name:         "duration above the cap is rejected without touching the db",
			mockBehavior: func(r *repo_mocks.MockRepository, req model.BorrowRequest) {},
			req:          model.BorrowRequest{BookID: 1, UserID: 7, DueDays: 61},
			wantErr:      errs.ErrDueDaysOutOfRange,
		},
		{
			name:         "negative duration is rejected without touching the db",
			mockBehavior: func(r *repo_mocks.MockRepository, req model.BorrowRequest) {},
			req:          model.BorrowRequest{BookID: 1, UserID: 7, DueDays: -5},
			wantErr:      errs.ErrDueDaysOutOfRange,
		},
		{
			name: "repository errors pass through untouched",
			mockBehavior: func(r *repo_mocks.MockRepository, req model.BorrowRequest) {
				r.EXPECT().
					Borrow(context.Background(), req.BookID, req.UserID, model.DefaultDueDays).
					Return(model.Loan{}, errs.ErrBookUnavailable)
			},
			req:     model.BorrowRequest{BookID: 1, UserID: 7},
			wantErr: errs.ErrBookUnavailable,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			repo := repo_mocks.NewMockRepository(c)
			tt.mockBehavior(repo, tt.req)

			svc := service.NewService(repo, auth.Config{}, zap.NewExample().Named("test"))
			got, err := svc.Borrow(context.Background(), tt.req)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestService_Return(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	repo := repo_mocks.NewMockRepository(c)

	returned := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	repo.EXPECT().
		Return(context.Background(), "83575e12-7ce0-48ee-9931-51919ff3c9ee", 7).
		Return(model.Loan{
			LoanUid:    "83575e12-7ce0-48ee-9931-51919ff3c9ee",
			BookID:     3,
			UserID:     7,
			Status:     model.StatusReturned,
			ReturnDate: &returned,
		}, nil)

	svc := service.NewService(repo, auth.Config{}, zap.NewExample().Named("test"))
	loan, err := svc.Return(context.Background(), "83575e12-7ce0-48ee-9931-51919ff3c9ee", 7)
	require.NoError(t, err)
	require.Equal(t, model.StatusReturned, loan.Status)
	require.NotNil(t, loan.ReturnDate)
}
