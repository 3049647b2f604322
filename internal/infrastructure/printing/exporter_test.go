package printing

import (
	"context"
	"testing"

	"github.com/compras/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestExporter_Disabled(t *testing.T) {
	e := NewExporter(config.ExportConfig{Enabled: false}, zaptest.NewLogger(t))

	assert.False(t, e.IsEnabled())

	_, err := e.ExportPage(context.Background(), "/bolsa/x", "sesion", "token")
	assert.ErrorIs(t, err, ErrDisabled)

	assert.NoError(t, e.Close())
}

func TestMMToInches(t *testing.T) {
	assert.InDelta(t, 8.27, mmToInches(paperWidthMM), 0.01)
	assert.InDelta(t, 11.69, mmToInches(paperHeightMM), 0.01)
}
