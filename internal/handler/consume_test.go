package handler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/openshelf/library-service/internal/handler"
	"github.com/openshelf/library-service/pkg/kafka"
)

// A group rebalance ends the session and starts a new one on the same
// handler instance, so Setup/Cleanup must survive repeated calls.
func TestConsumer_SetupAcrossSessions(t *testing.T) {
	t.Parallel()

	record := func(ctx context.Context, event kafka.LoanEvent) error { return nil }
	consumer := handler.NewConsumer(record, zap.NewExample().Named("test"))

	require.NotPanics(t, func() {
		require.NoError(t, consumer.Setup(nil))
		require.NoError(t, consumer.Cleanup(nil))
		require.NoError(t, consumer.Setup(nil))
		require.NoError(t, consumer.Cleanup(nil))
	})
}
