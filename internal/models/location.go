package models

// Location is a plain lat/lng pair. No real geocoding or routing exists
// here; coordinates only drift through the movement simulation.
type Location struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}
