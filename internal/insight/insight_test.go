package insight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"mindwell-api/internal/mood"
)

func TestRecommendPriorityOrder(t *testing.T) {
	tests := []struct {
		name      string
		trend     mood.Trend
		intensity float64
		entries   int
		contains  string
	}{
		{"declining low mood wins first", mood.TrendDeclining, 3.5, 7, "trending downward"},
		{"declining but intensity ok falls through", mood.TrendDeclining, 6, 2, "fewer check-ins"},
		{"sparse logging", mood.TrendStable, 6, 2, "fewer check-ins"},
		{"improving", mood.TrendImproving, 6, 5, "improving"},
		{"consistently high", mood.TrendStable, 8, 5, "consistently good"},
		{"default self-care", mood.TrendStable, 6, 5, "self-care"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recommend(tt.trend, tt.intensity, tt.entries)
			assert.True(t, strings.Contains(got, tt.contains), "got %q", got)
		})
	}
}
