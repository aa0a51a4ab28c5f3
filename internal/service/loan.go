package service

import (
	"context"

	"github.com/openshelf/library-service/internal/errs"
	"github.com/openshelf/library-service/internal/model"
)

// Borrow validates the requested duration and runs the atomic
// availability-flip + loan-insert transition.
func (s *Service) Borrow(ctx context.Context, req model.BorrowRequest) (model.BorrowResponse, error) {
	dueDays := req.DueDays
	if dueDays == 0 {
		dueDays = model.DefaultDueDays
	}
	if dueDays < model.MinDueDays || dueDays > model.MaxDueDays {
		return model.BorrowResponse{}, errs.ErrDueDaysOutOfRange
	}

	loan, err := s.repo.Borrow(ctx, req.BookID, req.UserID, dueDays)
	if err != nil {
		return model.BorrowResponse{}, err
	}
	return model.BorrowResponse{
		Message: "Book borrowed successfully",
		LoanUid: loan.LoanUid,
		DueDate: loan.DueDate,
	}, nil
}

func (s *Service) Return(ctx context.Context, loanUid string, userID int) (model.Loan, error) {
	return s.repo.Return(ctx, loanUid, userID)
}

func (s *Service) UserLoans(ctx context.Context, userID int) ([]model.LoanInfo, error) {
	return s.repo.UserLoans(ctx, userID)
}

func (s *Service) OverdueLoans(ctx context.Context) ([]model.OverdueLoan, error) {
	return s.repo.OverdueLoans(ctx)
}
