package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/luxecart/internal/domain/entity"
)

func TestSimulatedProcessorApprovesAfterDelay(t *testing.T) {
	p := NewSimulatedProcessor(20 * time.Millisecond)

	start := time.Now()
	res, err := p.Process(context.Background(), entity.PaymentRequest{OrderID: "o1", Amount: 10})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	assert.True(t, res.Approved)
	assert.NotEmpty(t, res.TransactionID)
}

func TestSimulatedProcessorHonoursCancellation(t *testing.T) {
	p := NewSimulatedProcessor(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.Process(ctx, entity.PaymentRequest{OrderID: "o1"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSimulatedProcessorZeroDelay(t *testing.T) {
	p := NewSimulatedProcessor(0)

	res, err := p.Process(context.Background(), entity.PaymentRequest{})
	require.NoError(t, err)
	assert.True(t, res.Approved)
}
