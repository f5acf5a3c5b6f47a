package geo

import (
	"math"

	"github.com/jmoon-dev/lunchscout/pkg/types"
)

const earthRadiusM = 6371000.0 // mean Earth radius in meters

// Unreachable is the sentinel distance in meters returned for a candidate
// without a usable coordinate fix. It exceeds any realistic search radius,
// so radius filters exclude such candidates instead of failing.
const Unreachable = 999999

// Distance returns the great-circle distance in meters between the user
// position and a candidate's raw coordinate pair. Conversion failure yields
// Unreachable, never an error.
func Distance(lat, lon float64, mapx, mapy string) float64 {
	targetLat, targetLon, ok := Convert(mapx, mapy)
	if !ok {
		return Unreachable
	}
	return haversine(lat, lon, targetLat, targetLon)
}

// haversine computes the great-circle surface distance in meters.
func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180.0

	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad

	lat1 = lat1 * degToRad
	lat2 = lat2 * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusM * c
}

// DefaultRadii is the progressive search expansion in meters.
var DefaultRadii = []float64{500, 1000, 2000}

// FilterProgressive keeps the records within the smallest radius that yields
// at least one hit, expanding outward through radii (DefaultRadii when nil).
// It returns the kept records and the radius that produced them. ok is false
// when even the widest radius found nothing; callers typically fall back to
// the unfiltered batch in that case.
func FilterProgressive(records []types.PlaceRecord, lat, lon float64, radii []float64) (kept []types.PlaceRecord, radius float64, ok bool) {
	if len(radii) == 0 {
		radii = DefaultRadii
	}

	for _, r := range radii {
		var within []types.PlaceRecord
		for _, rec := range records {
			if Distance(lat, lon, rec.MapX, rec.MapY) <= r {
				within = append(within, rec)
			}
		}
		if len(within) > 0 {
			return within, r, true
		}
	}
	return nil, 0, false
}
