package stats

import (
	"math/rand"
	"testing"

	"github.com/ZetoOfficial/vk-friends-cities/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const other = "Другие города"

func repeat(label string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = label
	}
	return out
}

func join(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestMostCommon(t *testing.T) {
	c := NewCounter([]string{"b", "a", "c", "a", "b", "a", "d"})

	got := c.MostCommon(3)
	require.Len(t, got, 3)
	assert.Equal(t, models.Share{Label: "a", Count: 3, Percent: 42.86}, got[0])
	assert.Equal(t, models.Share{Label: "b", Count: 2, Percent: 28.57}, got[1])
	// c и d встречаются по разу, выигрывает алфавит
	assert.Equal(t, "c", got[2].Label)

	assert.Len(t, c.MostCommon(0), 4)
	assert.Len(t, c.MostCommon(10), 4)
	assert.Equal(t, 7, c.Total())
	assert.Equal(t, 2, c.Count("b"))
	assert.Equal(t, 0, c.Count("z"))
}

func TestSummaryBucketsTail(t *testing.T) {
	labels := join(
		repeat("Москва", 10),
		repeat("Тверь", 6),
		repeat("Казань", 5),
		repeat("Омск", 4),
		repeat("Сочи", 3),
		repeat("Тула", 2),
		repeat("Орёл", 1),
	)

	dist := Summary(labels, 5, other)
	assert.Equal(t, 31, dist.Total)
	require.Len(t, dist.Shares, 6)

	var names []string
	for _, s := range dist.Shares {
		names = append(names, s.Label)
	}
	assert.Equal(t, []string{"Москва", "Тверь", "Казань", "Омск", "Сочи", other}, names)
	assert.Equal(t, 3, dist.Shares[5].Count)
}

func TestSummaryWithoutTail(t *testing.T) {
	dist := Summary([]string{"a", "b", "a"}, 5, other)
	require.Len(t, dist.Shares, 2)
	assert.Equal(t, "a", dist.Shares[0].Label)
	assert.Equal(t, "b", dist.Shares[1].Label)
}

func TestSummaryLabelEqualToOther(t *testing.T) {
	labels := join(repeat(other, 4), repeat("a", 3), repeat("b", 1))

	dist := Summary(labels, 1, other)
	require.Len(t, dist.Shares, 2)
	assert.Equal(t, models.Share{Label: "a", Count: 3, Percent: 37.5}, dist.Shares[0])
	assert.Equal(t, models.Share{Label: other, Count: 5, Percent: 62.5}, dist.Shares[1])
}

func TestSummaryStableForMultiset(t *testing.T) {
	labels := join(
		repeat("a", 3), repeat("b", 3), repeat("c", 3),
		repeat("d", 3), repeat("e", 3), repeat("f", 3), repeat("g", 2),
	)
	want := Summary(labels, 5, other)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := append([]string(nil), labels...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, Summary(shuffled, 5, other))
	}
}

func TestPercentagesSumToHundred(t *testing.T) {
	labels := join(repeat("a", 1), repeat("b", 1), repeat("c", 1), repeat("d", 2), repeat("e", 7), repeat("f", 11), repeat("g", 13))

	for _, top := range []int{0, 1, 3, 5} {
		var sum float64
		for _, s := range Summary(labels, top, other).Shares {
			sum += s.Percent
		}
		assert.InDelta(t, 100, sum, 0.05, "top=%d", top)
	}
}

func TestSummaryEmpty(t *testing.T) {
	dist := Summary(nil, 5, other)
	assert.Equal(t, 0, dist.Total)
	assert.Empty(t, dist.Shares)
}
