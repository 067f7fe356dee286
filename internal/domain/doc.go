// Package domain models daily temperature observations from a single weather
// station and extracts them from a CSV export.
//
// # Data Source
//
// Input files are NOAA NCEI Climate Data Online "Daily Summaries" exports
// (GHCN-Daily), one station per file, e.g. 4150697.csv. Every field is quoted:
//
//	"STATION","NAME","DATE","TAVG","TMAX","TMIN"
//	"USW00024233","SEATTLE TACOMA AIRPORT, WA US","2024-07-01",,"67","54"
//
// Only positions are used, never header names:
//
//	1  station identifier (the NAME column in CDO exports)
//	2  observation date, YYYY-MM-DD
//	4  daily high in whole degrees Fahrenheit
//	5  daily low in whole degrees Fahrenheit
//
// # Missing Values
//
// CDO leaves a cell empty when a sensor reported nothing for the day. A row
// whose high or low is empty or non-numeric is skipped and its date recorded in
// the error log. Dates are never expected to be missing; an unparseable date is
// treated as a corrupt export and aborts extraction.
//
// # Station Identifier
//
// An export is expected to cover exactly one station. The set of identifiers
// seen on valid rows is checked by [StationSet.Name], which refuses to guess
// when the set is empty or holds more than one name.
//
// # ID Generation
//
// Published observations carry a deterministic SHA-256 ID of station|date so
// consumers can upsert idempotently and replays collapse. See [generateID].
package domain
