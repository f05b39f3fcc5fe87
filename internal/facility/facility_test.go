package facility

import (
	"testing"

	"sigma_app/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		current, total int
		want           Level
	}{
		{0, 100, Relaxed},
		{29, 100, Relaxed},
		{30, 100, Moderate},
		{79, 100, Moderate},
		{80, 100, Crowded},
		{100, 100, Crowded},
		{150, 100, Crowded},
		{-5, 100, Relaxed},
		{10, 0, Unknown},
		{10, -1, Unknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.current, tt.total), "%d/%d", tt.current, tt.total)
	}
}

func TestStatusesFromCatalog(t *testing.T) {
	c, err := catalog.Load()
	require.NoError(t, err)

	got := Statuses(c.Facilities())
	require.Len(t, got, 4)

	want := []struct {
		name    string
		level   Level
		percent int
	}{
		{"중앙도서관", Crowded, 82},
		{"학생식당", Crowded, 90},
		{"컴퓨터실습실", Crowded, 90},
		{"체육관", Relaxed, 3},
	}
	for i, w := range want {
		assert.Equal(t, w.name, got[i].Facility.Name)
		assert.Equal(t, w.level, got[i].Level, w.name)
		assert.Equal(t, w.percent, got[i].Percent(), w.name)
	}
}

func TestLevelLabels(t *testing.T) {
	assert.Equal(t, "여유", Relaxed.Label())
	assert.Equal(t, "보통", Moderate.Label())
	assert.Equal(t, "혼잡", Crowded.Label())
	assert.Equal(t, "unknown", Unknown.String())
}
