package geo

import "strconv"

const (
	// The provider encodes WGS84 degrees scaled by 1e7. Anything below these
	// magnitudes is the legacy projected encoding, which we cannot interpret.
	minScaledLon = 120000000
	minScaledLat = 30000000

	coordScale = 1e7
)

// Convert translates the provider's scaled-integer coordinate pair into
// WGS84 degrees. An empty or unparseable pair yields no fix rather than an
// error. The magnitude heuristic is load-bearing: a pair in the unsupported
// legacy encoding is silently dropped (no fix) instead of mis-plotted, trading
// availability for precision.
func Convert(mapx, mapy string) (lat, lon float64, ok bool) {
	if mapx == "" || mapy == "" {
		return 0, 0, false
	}

	x, err := strconv.ParseFloat(mapx, 64)
	if err != nil {
		return 0, 0, false
	}
	y, err := strconv.ParseFloat(mapy, 64)
	if err != nil {
		return 0, 0, false
	}

	if x > minScaledLon && y > minScaledLat {
		return y / coordScale, x / coordScale, true
	}
	return 0, 0, false
}
