package subscription

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Count is one entry of an ordered breakdown.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// NodeStats is the aggregation of a subscription body.
type NodeStats struct {
	// Count is meaningful only when CountKnown is set.
	Count      int     `json:"count"`
	CountKnown bool    `json:"count_known"`
	Types      []Count `json:"types"`
	Regions    []Count `json:"regions"`
}

// CountText renders the node count or 未知.
func (s *NodeStats) CountText() string {
	if s == nil || !s.CountKnown {
		return MsgUnknown
	}
	return fmt.Sprintf("%d", s.Count)
}

// counter keeps first-seen order.
type counter struct {
	index map[string]int
	items []Count
}

func newCounter() *counter {
	return &counter{index: make(map[string]int)}
}

func (c *counter) add(name string) {
	if i, ok := c.index[name]; ok {
		c.items[i].Count++
		return
	}
	c.index[name] = len(c.items)
	c.items = append(c.items, Count{Name: name, Count: 1})
}

func (c *counter) get(name string) int {
	if i, ok := c.index[name]; ok {
		return c.items[i].Count
	}
	return 0
}

func (c *counter) counts() []Count {
	return lo.Filter(c.items, func(item Count, _ int) bool {
		return item.Count > 0
	})
}

// FormatCounts joins a breakdown as "a:1, b:2".
func FormatCounts(counts []Count) string {
	return strings.Join(lo.Map(counts, func(c Count, _ int) string {
		return fmt.Sprintf("%s:%d", c.Name, c.Count)
	}), ", ")
}
