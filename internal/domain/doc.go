// Package domain models National Hurricane Center (NHC) best-track data.
//
// # Data Source
//
// Storm tracks come from the HURDAT2 archive, available at
// https://www.nhc.noaa.gov/data/. The archive is a plain-text file that
// alternates one storm header line with the declared number of observation
// lines, all comma-delimited:
//
//	AL092005,            KATRINA,     34,
//	20050823, 1800,  , TD, 23.1N,  75.1W,  30, 1008, ...
//	20050829, 1110, L, HU, 29.3N,  89.6W, 110,  920, ...
//
// # HURDAT2 Conventions
//
// Header line:
//
//	"<basin><cyclone number><year>, <name>, <entry count>,"
//	The identifier is a two-letter basin code (AL = Atlantic, EP = East
//	Pacific, CP = Central Pacific), a two-digit sequential cyclone number for
//	that season, and a four-digit year. Unnamed storms carry the placeholder
//	name "UNNAMED". Cyclone numbers repeat across years; the full id
//	including the year is the unique key.
//
// Observation line columns (first eight; trailing wind-radii columns are
// ignored here):
//
//	date (YYYYMMDD), time (HHMM UTC), record identifier, system status,
//	latitude, longitude, max sustained wind (kt), min central pressure (mb)
//
// Coordinates:
//
//	Hemisphere-suffixed decimal degrees: "28.0N" → +28.0, "80.0W" → -80.0.
//	South and West are negative after normalization.
//
// Record identifier (single letter, blank on most lines):
//
//	C closest approach to a coast, not followed by a landfall
//	G genesis
//	I intensity peak in terms of both pressure and wind
//	L landfall (center of system crossing a coastline)
//	P minimum in central pressure
//	R additional detail on intensity during rapid changes
//	S change of status of the system
//	T additional detail on the track of the cyclone
//	W maximum sustained wind speed
//
// The L flag only appears from 1991 onward; older tracks need the geometric
// fallback in the geo package to detect landfall.
//
// System status (two letters):
//
//	TD tropical depression (< 34 kt)    TS tropical storm (34-63 kt)
//	HU hurricane (>= 64 kt)             EX extratropical cyclone
//	SD subtropical depression           SS subtropical storm
//	LO low                              WV tropical wave
//	DB disturbance
//
// Missing values:
//
//	-99 for wind and -999 for pressure mean "not recorded". The sentinels are
//	preserved on the Observation and exposed via WindMissing and
//	PressureMissing; aggregation never treats them as real readings.
package domain
