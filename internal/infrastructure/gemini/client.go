package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/internal/domain/repository"
	"github.com/yourusername/luxecart/pkg/errs"
	"google.golang.org/api/option"
)

const systemInstruction = `You are the LuxeCart shopping assistant. You help shoppers of an online store choose products.

Rules:
1. Only recommend products from the catalog list you are given. Never invent products, prices or discounts.
2. Copy product names and prices exactly as written in the list. When a product is on sale, mention the sale price.
3. If a shopper asks for something the catalog does not have, say so and suggest the closest items that are in stock.
4. Orders over the free-shipping threshold ship free; otherwise a flat shipping fee applies. Tax is added at checkout.
5. Greetings and thanks get a short friendly answer without product lists.
6. Keep answers short: at most 5 products, one line each, "Name - $price".`

// generateFunc modelga so'rov yuborish
type generateFunc func(ctx context.Context, parts ...genai.Part) (string, error)

type geminiClient struct {
	client   *genai.Client
	generate generateFunc
	breaker  *gobreaker.CircuitBreaker[string]
	logger   zerolog.Logger
	sem      chan struct{}
	mu       sync.Mutex
	last     time.Time
	delay    time.Duration
}

// Client AI repository va yopish
type Client interface {
	repository.AIRepository
	Close() error
}

// NewGeminiClient yangi Gemini AI client yaratish
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)

	// Aniq javoblar uchun past temperatura
	model.SetTemperature(0.3)
	model.SetTopK(20)
	model.SetTopP(0.9)
	model.SetMaxOutputTokens(1024)

	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	g := newClient(func(ctx context.Context, parts ...genai.Part) (string, error) {
		resp, err := model.GenerateContent(ctx, parts...)
		if err != nil {
			return "", err
		}
		if len(resp.Candidates) == 0 {
			return "", fmt.Errorf("no response candidates")
		}
		return extractText(resp), nil
	})
	g.client = client
	return g, nil
}

func newClient(generate generateFunc) *geminiClient {
	return &geminiClient{
		generate: generate,
		breaker:  newBreaker("gemini"),
		logger:   log.With().Str("component", "gemini").Logger(),
		sem:      make(chan struct{}, 3), // bir vaqtda 3 ta so'rovdan oshirma
		delay:    350 * time.Millisecond, // minimal interval
	}
}

// newBreaker 3+ so'rovdan 60% xato bo'lsa ochiladi
func newBreaker(name string) *gobreaker.CircuitBreaker[string] {
	var st gobreaker.Settings
	st.Name = name
	st.Timeout = 30 * time.Second
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= 3 && failureRatio >= 0.6
	}
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
	}
	return gobreaker.NewCircuitBreaker[string](st)
}

// GenerateResponse tarix bilan javob yaratish
func (g *geminiClient) GenerateResponse(ctx context.Context, message entity.Message, history []entity.Message) (string, error) {
	release, err := g.acquire(ctx)
	if err != nil {
		return "", err
	}
	defer release()

	parts := buildParts(message, history)

	start := time.Now()
	text, err := g.breaker.Execute(func() (string, error) {
		return g.generate(ctx, parts...)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: %v", errs.ErrAssistantUnhealthy, err)
		}
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	g.logger.Debug().
		Str("shopper_id", message.ShopperID).
		Int("history", len(history)).
		Dur("took", time.Since(start)).
		Msg("assistant replied")

	return strings.TrimSpace(text), nil
}

// buildParts oldingi xabarlar va hozirgi savol
func buildParts(message entity.Message, history []entity.Message) []genai.Part {
	parts := make([]genai.Part, 0, len(history)*2+1)
	for _, msg := range history {
		if msg.Text != "" {
			parts = append(parts, genai.Text("Shopper: "+msg.Text))
		}
		if msg.Response != "" {
			parts = append(parts, genai.Text("Assistant: "+msg.Response))
		}
	}
	return append(parts, genai.Text(message.Text))
}

// extractText javobdan textni ajratib olish
func extractText(resp *genai.GenerateContentResponse) string {
	var result strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				result.WriteString(string(text))
			}
		}
	}
	return result.String()
}

func (g *geminiClient) acquire(ctx context.Context) (func(), error) {
	select {
	case g.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	if !g.last.IsZero() {
		if sleep := g.delay - now.Sub(g.last); sleep > 0 {
			timer := time.NewTimer(sleep)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				<-g.sem
				return nil, ctx.Err()
			}
			now = time.Now()
		}
	}
	g.last = now

	return func() {
		<-g.sem
	}, nil
}

// Close client ni yopish
func (g *geminiClient) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}
