package geo

import "github.com/couchcryptid/hurdat2-report-service/internal/domain"

// Landfalls returns the observations at which the storm made landfall within
// the region, in track order.
//
// When the track carries any L record identifier, the flags are authoritative:
// the result is the flagged observations whose position lies in the region.
// Tracks predating 1991 never carry the flag, so for those the water-to-land
// transition is inferred geometrically: each observation whose position is in
// the region and whose predecessor was not counts as a landfall.
func Landfalls(storm domain.Storm, region Region) []domain.Observation {
	if storm.HasLandfallFlag() {
		var hits []domain.Observation
		for _, o := range storm.Observations {
			if o.IsLandfall() && region.Contains(o.Lat, o.Lon) {
				hits = append(hits, o)
			}
		}
		return hits
	}

	var hits []domain.Observation
	inRegion := false
	for _, o := range storm.Observations {
		now := region.Contains(o.Lat, o.Lon)
		if now && !inRegion {
			hits = append(hits, o)
		}
		inRegion = now
	}
	return hits
}
