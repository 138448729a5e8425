package models

// Driver is a registered driver with an availability flag. Availability
// flips false when a ride is assigned and back to true on completion or
// cancellation. Rating is a running weighted average over completed
// rides that were rated.
type Driver struct {
	ID             string   `json:"id" bson:"id"`
	Name           string   `json:"name" bson:"name"`
	Car            string   `json:"car" bson:"car"`
	Rating         float64  `json:"rating" bson:"rating"`
	Available      bool     `json:"available" bson:"available"`
	Location       Location `json:"location" bson:"location"`
	RidesCompleted int64    `json:"ridesCompleted,omitempty" bson:"rides_completed"`
}

// ApplyRating folds a new rating into the running average:
// (avg*n + r) / (n+1), then increments the completed count.
func (d *Driver) ApplyRating(rating float64) {
	n := float64(d.RidesCompleted)
	d.Rating = (d.Rating*n + rating) / (n + 1)
	d.RidesCompleted++
}
