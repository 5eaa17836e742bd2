package models

import (
	"math"
)

const earthRadiusKm = 6371.0

// GeoPoint is a GeoJSON point as stored under a 2dsphere index.
// Coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// NewGeoPoint validates the ranges and builds a point.
func NewGeoPoint(lat, lng float64) (*GeoPoint, error) {
	if !finite(lat) || !finite(lng) {
		return nil, Invalid("coordinates must be finite numbers")
	}
	if lat < -90 || lat > 90 {
		return nil, Invalid("latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return nil, Invalid("longitude must be between -180 and 180")
	}
	return &GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func (p *GeoPoint) Lat() float64 {
	if p == nil || len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[1]
}

func (p *GeoPoint) Lng() float64 {
	if p == nil || len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[0]
}

// DistanceKm is the great-circle (haversine) distance between two coordinates.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLng := (lng2 - lng1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
