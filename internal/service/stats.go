package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/openshelf/library-service/internal/model"
	"github.com/openshelf/library-service/pkg/kafka"
)

// SystemStats gathers the admin dashboard counters; the counts are
// independent, so they run concurrently.
func (s *Service) SystemStats(ctx context.Context) (model.SystemStats, error) {
	var stats model.SystemStats
	gg, ctx := errgroup.WithContext(ctx)

	available := true
	borrowed := false

	gg.Go(func() (err error) {
		stats.TotalBooks, err = s.repo.CountBooks(ctx, nil)
		return err
	})
	gg.Go(func() (err error) {
		stats.AvailableBooks, err = s.repo.CountBooks(ctx, &available)
		return err
	})
	gg.Go(func() (err error) {
		stats.BorrowedBooks, err = s.repo.CountBooks(ctx, &borrowed)
		return err
	})
	gg.Go(func() (err error) {
		stats.TotalUsers, err = s.repo.CountUsers(ctx)
		return err
	})
	gg.Go(func() (err error) {
		stats.TotalAuthors, err = s.repo.CountAuthors(ctx)
		return err
	})
	gg.Go(func() (err error) {
		stats.TotalCategories, err = s.repo.CountCategories(ctx)
		return err
	})
	gg.Go(func() (err error) {
		stats.OverdueBooks, err = s.repo.CountOverdueLoans(ctx)
		return err
	})

	if err := gg.Wait(); err != nil {
		return model.SystemStats{}, err
	}
	return stats, nil
}

// RecordLoanEvent is used by the kafka consumer.
func (s *Service) RecordLoanEvent(ctx context.Context, event kafka.LoanEvent) error {
	return s.repo.RecordLoanEvent(ctx, event)
}

func (s *Service) RecentLoanEvents(ctx context.Context, limit int) ([]model.LoanEventRow, error) {
	return s.repo.RecentLoanEvents(ctx, limit)
}
