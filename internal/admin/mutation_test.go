package admin

import (
	"math"
	"testing"
	"time"

	pkgerrors "github.com/angelmondragon/storefront-admin/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProductPayloadTranslatesAliases(t *testing.T) {
	payload, err := BuildProductPayload(map[string]any{
		"name":          "Áo khoác",
		"originalPrice": 450000.0,
		"soldCount":     float64(12),
		"description":   nil,
		"price":         399000,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":          "Áo khoác",
		"originalprice": 450000.0,
		"sold_count":    int64(12),
		"description":   nil,
		"price":         399000.0,
	}, payload)
}

func TestBuildProductPayloadRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		updates map[string]any
	}{
		{name: "empty", updates: map[string]any{}},
		{name: "unknown column", updates: map[string]any{"owner_id": "x"}},
		{name: "storage name is not an alias", updates: map[string]any{"original_price": 1.0}},
		{name: "null name", updates: map[string]any{"name": nil}},
		{name: "fractional stock", updates: map[string]any{"stock": 3.5}},
		{name: "text price", updates: map[string]any{"price": "abc"}},
		{name: "numeric category", updates: map[string]any{"category": 4.0}},
		{name: "negative stock", updates: map[string]any{"stock": -5.0}},
		{name: "negative sold count alias", updates: map[string]any{"soldCount": -1}},
		{name: "stock beyond integer column", updates: map[string]any{"stock": 1e20}},
		{name: "sold count just past int32", updates: map[string]any{"sold_count": float64(math.MaxInt32) + 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := BuildProductPayload(tt.updates)
			require.Error(t, err)
			assert.Nil(t, payload)
			assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation), "got %v", err)
		})
	}
}

func TestBuildProductPayloadAcceptsCountBounds(t *testing.T) {
	payload, err := BuildProductPayload(map[string]any{"stock": 0.0, "sold_count": float64(math.MaxInt32)})
	require.NoError(t, err)
	assert.Equal(t, int64(0), payload["stock"])
	assert.Equal(t, int64(math.MaxInt32), payload["sold_count"])
}

func TestBuildProductPayloadAliasWinsOverColumn(t *testing.T) {
	for i := 0; i < 50; i++ {
		payload, err := BuildProductPayload(map[string]any{
			"originalPrice": 1.0,
			"originalprice": 2.0,
			"soldCount":     7,
			"sold_count":    3,
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"originalprice": 1.0, "sold_count": int64(7)}, payload)
	}
}

func TestBuildProductPayloadReportsEveryField(t *testing.T) {
	_, err := BuildProductPayload(map[string]any{"stock": "many", "colour": "red"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Len(t, details, 2)
	assert.Contains(t, details, "stock")
	assert.Contains(t, details, "colour")
}

func TestBuildStatusPayload(t *testing.T) {
	now := time.Date(2026, 10, 15, 19, 0, 0, 0, ict)

	payload := BuildStatusPayload("Đang giao", "  ", now)
	assert.Equal(t, map[string]any{
		"status":             "Đang giao",
		"last_status_change": now.UTC(),
	}, payload)

	payload = BuildStatusPayload("Đã giao", "để ở bảo vệ", now)
	assert.Equal(t, "để ở bảo vệ", payload["note"])
}
