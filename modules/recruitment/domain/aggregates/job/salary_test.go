package job

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSalaryRange(t *testing.T) {
	cases := []struct {
		raw  string
		smin int
		smax int
	}{
		{"40k - 60k", 40000, 60000},
		{"40K-60K", 40000, 60000},
		{"50000 to 70000", 50000, 70000},
		{"55000", 55000, 55000},
		{"55k", 55000, 55000},
		{"competitive", 0, 0},
		{"", 0, 0},
		{"45k to 65k", 45000, 65000},
		{"40 - 50k", 40000, 50000},
	}
	for _, tc := range cases {
		smin, smax := ParseSalaryRange(tc.raw)
		require.Equal(t, tc.smin, smin, "min of %q", tc.raw)
		require.Equal(t, tc.smax, smax, "max of %q", tc.raw)
	}
}
