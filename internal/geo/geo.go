package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64 `json:"lat" msgpack:"lat"`
	Lng float64 `json:"lng" msgpack:"lng"`
}

// Location is a possibly coordinate-less place.
type Location struct {
	Lat     *float64 `json:"lat,omitempty" msgpack:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty" msgpack:"lng,omitempty"`
	Address string   `json:"address" msgpack:"address"`
}

// Point returns the coordinates, or false if either one is missing.
func (l Location) Point() (Point, bool) {
	if l.Lat == nil || l.Lng == nil {
		return Point{}, false
	}
	return Point{Lat: *l.Lat, Lng: *l.Lng}, true
}

// At builds a Location with coordinates.
func At(lat, lng float64, address string) Location {
	return Location{Lat: &lat, Lng: &lng, Address: address}
}

// HaversineKm returns the great-circle distance between a and b.
func HaversineKm(a, b Point) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
