package geo

import "math"

// earthRadiusKM is the mean radius of the Earth in kilometers.
const earthRadiusKM = 6371

// Distance returns the great-circle distance in kilometers between two
// points given as (lat, lng) degree pairs, using the haversine formula.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Pow(math.Sin(dLng/2), 2)

	return earthRadiusKM * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
