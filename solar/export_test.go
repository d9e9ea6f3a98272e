package solar

var (
	Refraction = refraction
	AzimuthOf  = azimuthOf
	HourAngle  = hourAngle
	Clamp      = clamp
)

func (c Coordinate) Internal() (latitude, longitudeWest float64) {
	return c.internal()
}
