package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONConCampos(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "debug", Service: "produccion-api", Out: &buf})

	l.Named("conversion").Info().Str("productionId", "p-1").Msg("producción confirmada")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "produccion-api", line["service"])
	assert.Equal(t, "conversion", line["component"])
	assert.Equal(t, "p-1", line["productionId"])
	assert.Equal(t, "info", line["level"])
}

func TestNew_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "WARN", Out: &buf})
	l.Info().Msg("no se escribe")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("sí")
	assert.NotZero(t, buf.Len())
}

func TestParseLevel_Default(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verbose"))
	assert.Equal(t, zerolog.TraceLevel, parseLevel(" trace "))
}
