package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBirr(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0 ETB"},
		{800, "800 ETB"},
		{15000, "15,000 ETB"},
		{-2700, "-2,700 ETB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBirr(tt.amount))
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "-", FormatDate(time.Time{}))
	assert.Equal(t, "2025-01-15", FormatDate(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)))
}
