package service

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"github.com/sakif/alumni-search/internal/model"
)

// UnknownKey replaces a blank company or address in the aggregations.
const UnknownKey = "Unknown"

// CountEntry is one key of a grouped count.
type CountEntry struct {
	Key   string
	Count int
}

// CountList is a grouped count sorted by Count descending.
//
// It marshals as a JSON OBJECT ({"CSE": 4, "ECE": 2}), not an array. Go maps
// have no order and encoding/json sorts map keys alphabetically, so the
// ordered object is written by hand.
type CountList []CountEntry

// MarshalJSON writes the entries as one object, keys in slice order.
func (c CountList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(e.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Total sums every count.
func (c CountList) Total() int {
	n := 0
	for _, e := range c {
		n += e.Count
	}
	return n
}

// StatsReport is the /stats payload. Field order is the wire key order.
type StatsReport struct {
	TotalAlumni      int       `json:"Total Alumni"`
	RecentBatch      int       `json:"Recent Batch"`
	CurrentBatch     int       `json:"Current Batch"`
	Departments      int       `json:"Departments"`
	DepartmentCounts CountList `json:"Department Counts"`
	Companies        int       `json:"Companies"`
	CompanyCounts    CountList `json:"Company Counts"`
	Locations        int       `json:"Locations"`
	LocationCounts   CountList `json:"Location Counts"`
}

// ComputeStats aggregates list relative to the calendar year of now.
//
// Department keys are used as-is, so a blank department counts under "".
// Blank companies and addresses count under UnknownKey.
//
// TIE-BREAKING:
// Keys are collected in first-seen order and sorted with sort.SliceStable,
// so keys with equal counts keep the order in which they first appeared in
// the collection. The output is therefore deterministic for a given file.
func ComputeStats(list []model.Alumni, now time.Time) *StatsReport {
	year := now.Year()

	depts := newCounter()
	companies := newCounter()
	locations := newCounter()

	report := &StatsReport{TotalAlumni: len(list)}
	for _, a := range list {
		switch a.Year {
		case year - 1:
			report.RecentBatch++
		case year:
			report.CurrentBatch++
		}

		depts.add(a.Department)
		companies.add(orUnknown(a.Company))
		locations.add(orUnknown(a.Address))
	}

	report.DepartmentCounts = depts.sorted()
	report.Departments = len(report.DepartmentCounts)
	report.CompanyCounts = companies.sorted()
	report.Companies = len(report.CompanyCounts)
	report.LocationCounts = locations.sorted()
	report.Locations = len(report.LocationCounts)

	return report
}

// counter counts keys while remembering first-seen order.
type counter struct {
	index   map[string]int
	entries CountList
}

func newCounter() *counter {
	return &counter{index: make(map[string]int), entries: CountList{}}
}

func (c *counter) add(key string) {
	if i, ok := c.index[key]; ok {
		c.entries[i].Count++
		return
	}
	c.index[key] = len(c.entries)
	c.entries = append(c.entries, CountEntry{Key: key, Count: 1})
}

func (c *counter) sorted() CountList {
	out := make(CountList, len(c.entries))
	copy(out, c.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

func orUnknown(s string) string {
	if s == "" {
		return UnknownKey
	}
	return s
}
