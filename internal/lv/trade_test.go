package lv_test

import (
	"testing"

	"github.com/hauptbau/fieldops-api/internal/lv"
	"github.com/stretchr/testify/assert"
)

func TestClassifyTrade(t *testing.T) {
	tests := []struct {
		name       string
		positionID string
		want       string
	}{
		{"known electrical prefix", "06.08.01.0140", "Elektro"},
		{"known plumbing prefix", "07.01.02.0010", "Sanitär"},
		{"known heating prefix", "07.02.01.0200", "Heizung"},
		{"prefix only", "09.04", "Malerarbeiten"},
		{"unknown prefix", "99.99.01.0001", "Sonstiges"},
		{"empty identifier", "", "Sonstiges"},
		{"shorter than prefix", "06.", "Sonstiges"},
		{"four characters", "06.0", "Sonstiges"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lv.ClassifyTrade(tt.positionID))
		})
	}
}

func TestClassifyTradeIsTotal(t *testing.T) {
	// Any input yields a non-empty trade name.
	inputs := []string{"", "x", "0140", "06.08.01.0140", "......", "Elektro"}
	for _, in := range inputs {
		assert.NotEmpty(t, lv.ClassifyTrade(in))
	}
}

func TestKnownTrades(t *testing.T) {
	trades := lv.KnownTrades()
	assert.Len(t, trades, 11)
	assert.Contains(t, trades, "Elektro")
	assert.NotContains(t, trades, lv.FallbackTrade)
}
