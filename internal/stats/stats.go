// Package stats считает частоты названий городов.
package stats

import (
	"math"
	"sort"

	"github.com/ZetoOfficial/vk-friends-cities/internal/models"
)

// Counter считает, сколько раз встретилась каждая метка.
type Counter struct {
	counts map[string]int
	total  int
}

func NewCounter(labels []string) *Counter {
	c := &Counter{counts: make(map[string]int)}
	for _, label := range labels {
		c.Add(label)
	}
	return c
}

func (c *Counter) Add(label string) {
	c.counts[label]++
	c.total++
}

func (c *Counter) Total() int {
	return c.total
}

func (c *Counter) Count(label string) int {
	return c.counts[label]
}

// MostCommon возвращает n самых частых меток (все при n <= 0).
// Равные по частоте метки упорядочены по алфавиту, поэтому результат
// зависит только от набора меток, а не от порядка их добавления.
func (c *Counter) MostCommon(n int) []models.Share {
	shares := make([]models.Share, 0, len(c.counts))
	for label, count := range c.counts {
		shares = append(shares, models.Share{Label: label, Count: count, Percent: percent(count, c.total)})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Label < shares[j].Label
	})
	if n > 0 && len(shares) > n {
		shares = shares[:n]
	}
	return shares
}

// Summary оставляет top самых частых меток, а остальные складывает в одну долю other.
// Доля other не добавляется, если вне топа ничего не осталось.
func Summary(labels []string, top int, other string) models.Distribution {
	c := NewCounter(labels)
	rest := c.Total()
	var shares []models.Share
	for _, share := range c.MostCommon(0) {
		if top > 0 && len(shares) == top {
			break
		}
		// метка, совпавшая с other, уходит в хвост
		if share.Label == other {
			continue
		}
		shares = append(shares, share)
		rest -= share.Count
	}
	if rest > 0 {
		shares = append(shares, models.Share{Label: other, Count: rest, Percent: percent(rest, c.Total())})
	}

	return models.Distribution{Total: c.Total(), Shares: shares}
}

func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*100*100) / 100
}
