package models

import "strings"

// IndexID identifies a stock index basket.
type IndexID string

const (
	IndexNasdaq100 IndexID = "nasdaq100"
	IndexSP500     IndexID = "sp500"
)

// Index describes an index the heatmap can be built for.
// Feed is the file name suffix used by the constituents feed.
type Index struct {
	ID   IndexID `json:"id"`
	Name string  `json:"name"`
	Feed string  `json:"-"`
}

// Indexes lists the supported indexes in display order.
var Indexes = []Index{
	{ID: IndexNasdaq100, Name: "NASDAQ-100", Feed: "nasdaq100"},
	{ID: IndexSP500, Name: "S&P 500", Feed: "sp500"},
}

// LookupIndex finds an index by id. Common spellings such as "nasdaq-100",
// "s-and-p-500" and "sp-500" are accepted.
func LookupIndex(id string) (Index, bool) {
	key := strings.ToLower(strings.TrimSpace(id))
	switch key {
	case "nasdaq-100", "ndx":
		key = string(IndexNasdaq100)
	case "s-and-p-500", "sp-500", "s&p500", "spx":
		key = string(IndexSP500)
	}
	for _, idx := range Indexes {
		if string(idx.ID) == key {
			return idx, true
		}
	}
	return Index{}, false
}
