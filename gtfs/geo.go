package gtfs

import "math"

// HaversineKM is the great-circle distance between two points in kilometers
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371.0
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	la1 := lat1 * math.Pi / 180
	la2 := lat2 * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}

// distanceMeters estimates the length between two stops from coordinates
func distanceMeters(a, b Stop) float64 {
	if !a.HasCoord || !b.HasCoord {
		return 0
	}
	return HaversineKM(a.Lat, a.Lon, b.Lat, b.Lon) * 1000
}
