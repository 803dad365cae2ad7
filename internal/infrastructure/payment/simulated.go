package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/internal/domain/repository"
)

type simulatedProcessor struct {
	delay time.Duration
	now   func() time.Time
}

// NewSimulatedProcessor tashqi chaqiruvsiz, belgilangan kechikishdan keyin tasdiqlaydigan protsessor
func NewSimulatedProcessor(delay time.Duration) repository.PaymentProcessor {
	return &simulatedProcessor{delay: delay, now: time.Now}
}

// Process kechikishni kutib to'lovni tasdiqlash. Kontekst bekor qilinsa xato qaytadi.
func (p *simulatedProcessor) Process(ctx context.Context, req entity.PaymentRequest) (*entity.PaymentResult, error) {
	log.Ctx(ctx).Debug().
		Str("component", "payment").
		Str("order_id", req.OrderID).
		Float64("amount", req.Amount).
		Dur("delay", p.delay).
		Msg("simulating payment")

	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &entity.PaymentResult{
		TransactionID: uuid.New().String(),
		Approved:      true,
		ProcessedAt:   p.now(),
	}, nil
}
