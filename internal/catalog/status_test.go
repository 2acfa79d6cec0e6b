package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		name      string
		stock     int
		threshold int
		want      StockStatus
	}{
		{"above threshold", 50, 40, StatusInStock},
		{"exactly at threshold", 40, 40, StatusLowStock},
		{"below threshold", 5, 40, StatusLowStock},
		{"zero stock", 0, 40, StatusOutOfStock},
		{"zero stock zero threshold", 0, 0, StatusOutOfStock},
		{"positive stock zero threshold", 1, 0, StatusInStock},
		{"negative stock treated as exhausted", -3, 40, StatusOutOfStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Status(tc.stock, tc.threshold))
		})
	}
}
