package query

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"epoch_seconds", "1700000000", 1700000000000},
		{"epoch_millis", "1700000000000", 1700000000000},
		{"iso_z", "2023-11-14T22:13:20Z", 1700000000000},
		{"iso_naive", "2023-11-14T22:13:20", 1700000000000},
		{"date_only", "2023-11-14", 1699920000000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimestamp_RejectsGarbage(t *testing.T) {
	_, err := ParseTimestamp("not-a-time")
	require.Error(t, err)
}

func TestParseTimestamp_RejectsEmpty(t *testing.T) {
	_, err := ParseTimestamp("")
	require.Error(t, err)
}
