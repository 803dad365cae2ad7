package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/internal/domain/repository"
	"github.com/yourusername/luxecart/internal/infrastructure/fixtures"
	"github.com/yourusername/luxecart/internal/infrastructure/storage"
)

func seededProducts(t *testing.T) repository.ProductRepository {
	t.Helper()

	repo := storage.NewMemoryProductRepository()
	require.NoError(t, repo.UpdateCatalog(context.Background(), fixtures.Catalog()))
	return repo
}

func validForm() entity.CheckoutForm {
	return entity.CheckoutForm{
		Email:      "jane@example.com",
		FirstName:  "Jane",
		LastName:   "Doe",
		Address:    "1 Main St",
		City:       "Springfield",
		State:      "IL",
		ZipCode:    "62701",
		Country:    "US",
		CardNumber: "4111 1111 1111 1111",
		CardName:   "Jane Doe",
		ExpiryDate: "12/99",
		CVV:        "123",
	}
}

type stubPayments struct {
	calls    int
	approved bool
	err      error
	// during to'lov jarayonida chaqiriladi
	during func()
}

func (s *stubPayments) Process(ctx context.Context, req entity.PaymentRequest) (*entity.PaymentResult, error) {
	s.calls++
	if s.during != nil {
		s.during()
	}
	if s.err != nil {
		return nil, s.err
	}
	return &entity.PaymentResult{
		TransactionID: "tx-" + req.OrderID[:8],
		Approved:      s.approved,
		ProcessedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}, nil
}

type stubAI struct {
	prompt  string
	history []entity.Message
	reply   string
	err     error
}

func (s *stubAI) GenerateResponse(ctx context.Context, message entity.Message, history []entity.Message) (string, error) {
	s.prompt = message.Text
	s.history = history
	return s.reply, s.err
}
