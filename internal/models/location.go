package models

// Coordinate is a position in decimal degrees. It is a plain value type and can be used as a map key.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the latitude is within [-90, 90] and the longitude within [-180, 180].
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// VehicleLocation is the last reported position of a single vehicle.
type VehicleLocation struct {
	VehicleID string     `json:"vehicle_id"`
	Location  Coordinate `json:"location"`
}
