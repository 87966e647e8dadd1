package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// dateLayout matches the JHU CSSE column headers, e.g. "1/22/20" or "3/5/20".
const dateLayout = "1/2/06"

// Observation is one dated cumulative confirmed-case count.
type Observation struct {
	Date      time.Time
	Confirmed float64
}

// Geo is a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64
	Lon float64
}

// Record is one parsed row of the time-series CSV: a location plus its
// ordered observation history. Records are immutable once parsed.
type Record struct {
	Province     string
	Country      string
	Geo          Geo
	Observations []Observation
}

// LastObservation returns the most recent observation, or false when the
// record has none.
func (r Record) LastObservation() (Observation, bool) {
	if len(r.Observations) == 0 {
		return Observation{}, false
	}
	return r.Observations[len(r.Observations)-1], true
}

// ParseCSV reads a JHU CSSE time-series CSV into records. Column positions
// are resolved from the header by name, so extra or reordered metadata
// columns are tolerated; date columns are recognized by parsing as M/D/YY.
func ParseCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var records []Record
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no data rows in time-series CSV")
	}
	return records, nil
}

// columns maps header names to positions. dates is parallel to dateIdx.
type columns struct {
	province int
	country  int
	lat      int // -1 when absent
	lon      int // -1 when absent
	dateIdx  []int
	dates    []time.Time
}

func resolveColumns(header []string) (columns, error) {
	cols := columns{province: -1, country: -1, lat: -1, lon: -1}

	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "Province/State":
			cols.province = i
		case "Country/Region":
			cols.country = i
		case "Lat":
			cols.lat = i
		case "Long":
			cols.lon = i
		default:
			d, err := time.Parse(dateLayout, strings.TrimSpace(name))
			if err != nil {
				continue
			}
			cols.dateIdx = append(cols.dateIdx, i)
			cols.dates = append(cols.dates, d.UTC())
		}
	}

	if cols.province == -1 || cols.country == -1 {
		return columns{}, fmt.Errorf("CSV header missing Province/State or Country/Region column")
	}
	if len(cols.dateIdx) == 0 {
		return columns{}, fmt.Errorf("CSV header contains no date columns")
	}
	return cols, nil
}

func parseRow(row []string, cols columns) (Record, error) {
	country := strings.TrimSpace(row[cols.country])
	if country == "" {
		return Record{}, fmt.Errorf("record has empty Country/Region")
	}

	rec := Record{
		Province:     strings.TrimSpace(row[cols.province]),
		Country:      country,
		Observations: make([]Observation, 0, len(cols.dateIdx)),
	}

	if cols.lat >= 0 && cols.lon >= 0 {
		rec.Geo.Lat = parseFloatOrZero(row[cols.lat])
		rec.Geo.Lon = parseFloatOrZero(row[cols.lon])
	}

	for j, i := range cols.dateIdx {
		cell := strings.TrimSpace(row[i])
		var count float64
		if cell != "" {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return Record{}, fmt.Errorf("column %q: invalid count %q", cols.dates[j].Format("2006-01-02"), cell)
			}
			count = v
		}
		rec.Observations = append(rec.Observations, Observation{Date: cols.dates[j], Confirmed: count})
	}
	return rec, nil
}

// parseFloatOrZero parses a string as float64, returning 0 on failure.
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
