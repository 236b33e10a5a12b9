package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"PT45S", 45},
		{"PT12M30S", 750},
		{"PT1H5M", 3900},
		{"PT2H46M13S", 9973},
		{"P1DT2H", 93600},
		{"P0D", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "P", "PT", "1H", "PT1.5S", "PTXM"} {
		t.Run("invalid "+bad, func(t *testing.T) {
			_, err := ParseDuration(bad)
			assert.Error(t, err)
		})
	}
}
