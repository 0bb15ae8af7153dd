package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerivePopularity(t *testing.T) {
	tests := []struct {
		name     string
		category string
		district string
		expected float64
	}{
		{"transport hub in high-density district", "transport_hub", "Ernakulam", 2.0},
		{"airport in high-density district", "airport", "Ernakulam", 2.2},
		{"commercial in medium-density district", "commercial", "Thrissur", 1.6},
		{"educational in medium-density district", "educational", "Kottayam", 1.4},
		{"medical with unknown district", "medical", "Idukki", 1.2},
		{"tourist with unknown district", "tourist", "Lakshadweep", 1.4},
		{"regular everywhere else", "regular", "Idukki", 1.0},
		{"empty metadata falls back to base", "", "", 1.0},
		{"category with spaces and mixed case", "Transport Hub", "kozhikode", 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, DerivePopularity(tt.category, tt.district), 1e-9)
		})
	}
}
