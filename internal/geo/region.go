// Package geo provides the geographic predicates used to filter storm
// tracks: named region containment and landfall detection.
package geo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Region is a point-in-region predicate. Implementations are stateless with
// respect to storm identity and deterministic for a given (lat, lon).
type Region interface {
	Name() string
	Contains(lat, lon float64) bool
}

// PolygonRegion is a Region backed by a multipolygon boundary in WGS-84.
type PolygonRegion struct {
	name string
	geom orb.MultiPolygon
}

// NewPolygonRegion creates a region from an orb geometry. Polygon and
// MultiPolygon geometries are accepted.
func NewPolygonRegion(name string, g orb.Geometry) (*PolygonRegion, error) {
	switch geom := g.(type) {
	case orb.Polygon:
		return &PolygonRegion{name: name, geom: orb.MultiPolygon{geom}}, nil
	case orb.MultiPolygon:
		return &PolygonRegion{name: name, geom: geom}, nil
	default:
		return nil, fmt.Errorf("region %q: unsupported geometry type %s", name, g.GeoJSONType())
	}
}

func (r *PolygonRegion) Name() string { return r.name }

// Contains reports whether the point lies within or on the region boundary.
// orb points are (lon, lat) order.
func (r *PolygonRegion) Contains(lat, lon float64) bool {
	return planar.MultiPolygonContains(r.geom, orb.Point{lon, lat})
}

// FromGeoJSON builds a region from a GeoJSON document. A Feature, a bare
// Geometry, or a FeatureCollection (first polygonal feature wins) are all
// accepted, matching the shapes regions are published in.
func FromGeoJSON(name string, data []byte) (*PolygonRegion, error) {
	if fc, err := geojson.UnmarshalFeatureCollection(data); err == nil {
		for _, f := range fc.Features {
			if r, err := NewPolygonRegion(name, f.Geometry); err == nil {
				return r, nil
			}
		}
		return nil, fmt.Errorf("region %q: feature collection has no polygonal feature", name)
	}
	if f, err := geojson.UnmarshalFeature(data); err == nil {
		return NewPolygonRegion(name, f.Geometry)
	}
	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return nil, fmt.Errorf("region %q: parse geojson: %w", name, err)
	}
	return NewPolygonRegion(name, g.Geometry())
}

// Builtin returns one of the statically defined regions, or an error naming
// the valid choices when the name is unknown. The lookup is case-insensitive.
func Builtin(name string) (Region, error) {
	geom, ok := builtinBoundaries[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown region %q (builtin regions: %s)", name, strings.Join(BuiltinNames(), ", "))
	}
	return &PolygonRegion{name: strings.ToLower(name), geom: geom}, nil
}

// BuiltinNames lists the available builtin region names, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinBoundaries))
	for name := range builtinBoundaries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// builtinBoundaries holds coarse political boundaries in (lon, lat) ring
// order. They trace the coastline loosely, which is close enough for
// best-track points recorded to 0.1 degree.
var builtinBoundaries = map[string]orb.MultiPolygon{
	"florida": {orb.Polygon{orb.Ring{
		{-87.6, 31.0}, {-85.0, 31.0}, {-82.2, 30.6}, {-81.4, 30.8},
		{-81.2, 29.8}, {-80.4, 28.6}, {-80.0, 26.8}, {-80.1, 25.8},
		{-80.4, 25.2}, {-81.2, 25.1}, {-81.9, 25.9}, {-82.4, 26.5},
		{-82.9, 27.5}, {-82.7, 28.9}, {-83.7, 29.9}, {-84.4, 30.0}, {-85.3, 29.7},
		{-86.2, 30.4}, {-87.5, 30.3}, {-87.6, 31.0},
	}}},
	"texas": {orb.Polygon{orb.Ring{
		{-106.6, 32.0}, {-103.0, 32.0}, {-103.0, 36.5}, {-100.0, 36.5},
		{-100.0, 34.6}, {-99.2, 34.2}, {-98.1, 34.1}, {-96.9, 33.9},
		{-95.8, 33.9}, {-94.0, 33.5}, {-94.0, 29.7}, {-95.0, 29.2},
		{-96.8, 28.4}, {-97.4, 27.3}, {-97.1, 25.9}, {-99.1, 26.4},
		{-99.5, 27.5}, {-101.4, 29.8}, {-103.1, 28.9}, {-104.9, 30.6},
		{-106.6, 31.8}, {-106.6, 32.0},
	}}},
	"gulf-coast": {orb.Polygon{orb.Ring{
		{-97.6, 26.0}, {-97.1, 25.9}, {-94.0, 29.6}, {-90.2, 29.0},
		{-89.0, 29.0}, {-85.3, 29.7}, {-84.4, 30.0}, {-82.7, 28.9},
		{-82.7, 27.5}, {-81.2, 25.1}, {-80.4, 25.2}, {-81.0, 26.5},
		{-82.0, 28.0}, {-83.0, 30.0}, {-85.0, 31.2}, {-89.0, 31.2},
		{-92.0, 31.0}, {-95.0, 30.5}, {-97.6, 28.5}, {-97.6, 26.0},
	}}},
}
