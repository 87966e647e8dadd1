// Package dataset models the JHU CSSE confirmed-cases time series.
//
// # Data Source
//
// Records originate from the Johns Hopkins CSSE COVID-19 repository at
// https://github.com/CSSEGISandData/COVID-19, specifically the global
// confirmed-cases time-series CSV. Each row describes one location and its
// full observation history; the fetcher adapter downloads the file on demand
// and caches it on disk.
//
// # CSV Conventions
//
// Column layout:
//
//	Province/State,Country/Region,Lat,Long,1/22/20,1/23/20,...
//
// The first two columns are free text. Province/State is frequently empty
// (country-level rows) and, for early US data, carries county-style labels
// such as "Charleston County, SC". Every column after Lat/Long is a date in
// M/D/YY notation; its cell holds the cumulative confirmed count for that
// location up to and including that day.
//
// Counts are cumulative, so a day-over-day delta of zero usually means the
// upstream file was not updated for that location rather than "no new
// cases". The series package turns such deltas into NaN before charting.
//
// # Structural Validation
//
// ParseCSV rejects files that are structurally unusable: missing
// Province/State or Country/Region columns, no date columns, no data rows,
// or a row whose Country/Region cell is empty. Everything else (odd
// punctuation in names, zero counts, stale tails) is preserved as-is and
// left to downstream components to interpret.
package dataset
