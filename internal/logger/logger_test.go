package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, env := range []string{"development", "production"} {
		t.Run(env, func(t *testing.T) {
			log, err := New(env)
			require.NoError(t, err)
			require.NotNil(t, log)
			log.Sync()
		})
	}
}

func TestStructuredOutputIsValidJSON(t *testing.T) {
	var buf bytes.Buffer

	encoderConfig := zap.NewProductionEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(&buf),
		zapcore.InfoLevel,
	)

	log := zap.New(core)
	log.Info("Order processed successfully",
		zap.String("order_id", "o-123"),
		zap.Float64("total_amount", 149.97),
	)
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Order processed successfully", entry["msg"])
	assert.Equal(t, "o-123", entry["order_id"])
	assert.Equal(t, 149.97, entry["total_amount"])
}
