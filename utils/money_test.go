package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalInCents(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		quantity int
		want     int64
	}{
		{"whole price", 12, 3, 3600},
		{"fractional price", 19.99, 3, 5997},
		{"float artefact", 0.1, 3, 30},
		{"half cent rounds up", 0.005, 1, 1},
		{"free plant", 0, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TotalInCents(tt.price, tt.quantity)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTotalInCents_Rejects(t *testing.T) {
	_, err := TotalInCents(10, 0)
	assert.Error(t, err)

	_, err = TotalInCents(-1, 1)
	assert.Error(t, err)
}
