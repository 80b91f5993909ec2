// Package geo handles the presentational side of the flight: where the
// aircraft is along its route. Nothing here feeds back into the altitude
// loop.
package geo

import (
	"fmt"
	"math"
	"time"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.009

// Wind drift per unit of wind effect, in degrees.
const (
	DriftLatPerWind = 0.00001
	DriftLonPerWind = 0.00002
)

type Point struct {
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", p.Lat, p.Lon)
}

func radians(d float64) float64 { return d * math.Pi / 180 }

// GreatCircleKm returns the distance between a and b along the surface of
// a spherical Earth.
func GreatCircleKm(a, b Point) float64 {
	lat1, lat2 := radians(a.Lat), radians(b.Lat)
	dLon := radians(b.Lon - a.Lon)

	// Vincenty formula for a sphere; well conditioned for both short and
	// antipodal distances.
	sdl, cdl := math.Sincos(dLon)
	s1, c1 := math.Sincos(lat1)
	s2, c2 := math.Sincos(lat2)
	y := math.Hypot(c2*sdl, c1*s2-s1*c2*cdl)
	x := s1*s2 + c1*c2*cdl
	return EarthRadiusKm * math.Atan2(y, x)
}

// Route is a start/end pair sampled at a fixed number of evenly spaced
// points; point 0 is Start and point Steps-1 is End.
type Route struct {
	Start Point `yaml:"start"`
	End   Point `yaml:"end"`
	Steps int   `yaml:"-"`
}

func (r Route) DistanceKm() float64 { return GreatCircleKm(r.Start, r.End) }

// At returns the i'th interpolated point along the route.
func (r Route) At(i int) Point {
	if r.Steps <= 1 {
		return r.Start
	}
	f := float64(i) / float64(r.Steps-1)
	return Point{
		Lat: r.Start.Lat + f*(r.End.Lat-r.Start.Lat),
		Lon: r.Start.Lon + f*(r.End.Lon-r.Start.Lon),
	}
}

// Points returns all Steps route points.
func (r Route) Points() []Point {
	pts := make([]Point, r.Steps)
	for i := range pts {
		pts[i] = r.At(i)
	}
	return pts
}

// Drift offsets p by the given wind effect.
func Drift(p Point, wind float64) Point {
	return Point{Lat: p.Lat + wind*DriftLatPerWind, Lon: p.Lon + wind*DriftLonPerWind}
}

// FlightTime estimates the time to cover distanceKm at speedKmh.
func FlightTime(distanceKm, speedKmh float64) time.Duration {
	if speedKmh <= 0 {
		return 0
	}
	return time.Duration(distanceKm / speedKmh * float64(time.Hour))
}
