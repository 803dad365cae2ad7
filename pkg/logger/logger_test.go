package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductionLoggerWritesJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(Production, &buf)

	log.Debug().Msg("hidden")
	cartLog := Component("cart")
	cartLog.Info().Str("shopper", "s-1").Msg("item added")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "item added", entry["message"])
	assert.Equal(t, "cart", entry["component"])
	assert.Equal(t, "s-1", entry["shopper"])
	assert.NotContains(t, buf.String(), "hidden")
}
