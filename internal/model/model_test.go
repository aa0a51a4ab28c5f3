package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openshelf/library-service/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLoan_IsOverdue(t *testing.T) {
	t.Parallel()

	due := day(2026, 8, 10)

	var tests = []struct {
		name string
		loan model.Loan
		now  time.Time
		want bool
	}{
		{
			name: "open loan past due",
			loan: model.Loan{Status: model.StatusBorrowed, DueDate: due},
			now:  day(2026, 8, 11),
			want: true,
		},
		{
			name: "open loan before due",
			loan: model.Loan{Status: model.StatusBorrowed, DueDate: due},
			now:  day(2026, 8, 9),
			want: false,
		},
		{
			name: "due day itself is not overdue",
			loan: model.Loan{Status: model.StatusBorrowed, DueDate: due},
			now:  time.Date(2026, 8, 10, 23, 59, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "returned loan is never overdue",
			loan: model.Loan{Status: model.StatusReturned, DueDate: due},
			now:  day(2026, 9, 1),
			want: false,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, tt.loan.IsOverdue(tt.now))
		})
	}
}

func TestLoan_ReturnedLate(t *testing.T) {
	t.Parallel()

	due := day(2026, 8, 10)
	onTime := day(2026, 8, 10)
	late := day(2026, 8, 12)

	var tests = []struct {
		name string
		loan model.Loan
		want bool
	}{
		{
			name: "returned on the due day",
			loan: model.Loan{Status: model.StatusReturned, DueDate: due, ReturnDate: &onTime},
			want: false,
		},
		{
			name: "returned after the due day",
			loan: model.Loan{Status: model.StatusReturned, DueDate: due, ReturnDate: &late},
			want: true,
		},
		{
			name: "still open",
			loan: model.Loan{Status: model.StatusBorrowed, DueDate: due},
			want: false,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, tt.loan.ReturnedLate())
		})
	}
}
