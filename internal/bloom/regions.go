package bloom

import "time"

// Region is a named point on the global bloom map.
type Region struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// GlobalRegions are the six fixed regions of the global bloom map, in
// response order.
var GlobalRegions = []Region{
	{Name: "Amazon", Lat: -3.4653, Lon: -62.2159},
	{Name: "Sahel", Lat: 15.0, Lon: 0.0},
	{Name: "Mediterranean", Lat: 40.0, Lon: 10.0},
	{Name: "North America", Lat: 40.0, Lon: -100.0},
	{Name: "Southeast Asia", Lat: 10.0, Lon: 105.0},
	{Name: "Australia", Lat: -25.0, Lon: 135.0},
}

// RegionStatus is the assessed bloom state of one map region.
type RegionStatus struct {
	Name       string    `json:"name"`
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	BloomLevel float64   `json:"bloom_level"`
	Status     Status    `json:"status"`
	Timestamp  time.Time `json:"-"`
}

// Store caches region statuses between map refreshes. Implementations must be
// safe for concurrent use.
type Store interface {
	SaveRegion(rs RegionStatus)
	LatestRegion(name string) (RegionStatus, error)
}
