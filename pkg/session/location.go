package session

// LocationSource records how the player's location was captured.
type LocationSource string

const (
	LocationSourceUserInput   LocationSource = "USER_INPUT"
	LocationSourceGeoIP       LocationSource = "GEOIP"
	LocationSourcePlacePicker LocationSource = "PLACE_PICKER"
	LocationSourceOther       LocationSource = "OTHER"
)

// GeoPoint is a WGS-84 coordinate pair.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks the coordinate ranges.
func (g GeoPoint) Validate() error {
	if g.Latitude < -90 || g.Latitude > 90 {
		return validationErr("latitude %v out of range [-90, 90]", g.Latitude)
	}
	if g.Longitude < -180 || g.Longitude > 180 {
		return validationErr("longitude %v out of range [-180, 180]", g.Longitude)
	}
	return nil
}

// PlayerLocation is a purely descriptive capture of where the session is
// being played. Every field is optional; this package never resolves or
// geocodes anything.
type PlayerLocation struct {
	DisplayName string         `json:"display_name,omitempty"`
	Geo         *GeoPoint      `json:"geo,omitempty"`
	Address     string         `json:"address,omitempty"`
	PlaceID     string         `json:"place_id,omitempty"`
	Source      LocationSource `json:"source,omitempty"`
}

// Validate checks the coordinate range and the source enum; empty fields
// are always valid.
func (l PlayerLocation) Validate() error {
	if l.Geo != nil {
		if err := l.Geo.Validate(); err != nil {
			return err
		}
	}
	switch l.Source {
	case "", LocationSourceUserInput, LocationSourceGeoIP, LocationSourcePlacePicker, LocationSourceOther:
		return nil
	default:
		return validationErr("unknown location source %q", l.Source)
	}
}
