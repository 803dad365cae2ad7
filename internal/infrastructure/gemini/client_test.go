package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/pkg/errs"
)

func TestBuildParts(t *testing.T) {
	history := []entity.Message{
		{Text: "hi", Response: "Hello! How can I help?"},
		{Text: "any headphones?"},
	}
	parts := buildParts(entity.Message{Text: "under $100?"}, history)

	require.Len(t, parts, 4)
	assert.Equal(t, genai.Text("Shopper: hi"), parts[0])
	assert.Equal(t, genai.Text("Assistant: Hello! How can I help?"), parts[1])
	assert.Equal(t, genai.Text("Shopper: any headphones?"), parts[2])
	assert.Equal(t, genai.Text("under $100?"), parts[3])
}

func TestExtractText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("Wireless "), genai.Text("Headphones - $159.99")}}},
			{Content: nil},
		},
	}
	assert.Equal(t, "Wireless Headphones - $159.99", extractText(resp))
}

func TestGenerateResponse(t *testing.T) {
	var got []genai.Part
	g := newClient(func(ctx context.Context, parts ...genai.Part) (string, error) {
		got = parts
		return "  We have 3 pairs.  ", nil
	})
	g.delay = 0

	reply, err := g.GenerateResponse(context.Background(), entity.Message{ShopperID: "s1", Text: "headphones?"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "We have 3 pairs.", reply)
	assert.Equal(t, []genai.Part{genai.Text("headphones?")}, got)
}

func TestGenerateResponseOpensBreaker(t *testing.T) {
	calls := 0
	g := newClient(func(ctx context.Context, parts ...genai.Part) (string, error) {
		calls++
		return "", errors.New("quota exceeded")
	})
	g.delay = 0

	for i := 0; i < 3; i++ {
		_, err := g.GenerateResponse(context.Background(), entity.Message{Text: "hi"}, nil)
		require.Error(t, err)
		assert.NotErrorIs(t, err, errs.ErrAssistantUnhealthy)
	}

	_, err := g.GenerateResponse(context.Background(), entity.Message{Text: "hi"}, nil)
	assert.ErrorIs(t, err, errs.ErrAssistantUnhealthy)
	assert.Equal(t, 3, calls)
}

func TestAcquireHonoursContext(t *testing.T) {
	g := newClient(nil)
	g.delay = time.Hour
	g.last = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := g.acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, g.sem)
}

func TestCloseWithoutClient(t *testing.T) {
	assert.NoError(t, newClient(nil).Close())
}
