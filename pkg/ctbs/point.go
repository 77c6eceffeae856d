package ctbs

import "fmt"

type Location struct {
	Latitude  float64 `groups:"basic" json:"latitude"`
	Longitude float64 `groups:"basic" json:"longitude"`
}

func (l *Location) Valid() bool {
	return l.Latitude >= -90 && l.Latitude <= 90 &&
		l.Longitude >= -180 && l.Longitude <= 180
}

type Station struct {
	StationID string    `groups:"basic" json:"station_id"`
	Name      string    `groups:"basic" json:"station_name"`
	Location  *Location `groups:"detailed" json:"location,omitempty"`
}

// PointCity is a searchable location as the autocomplete and country
// listings return it. Ephemeral: cached with a TTL, never persisted.
type PointCity struct {
	PointID   string `groups:"basic" json:"point_id"`
	Name      string `groups:"basic" json:"name"`
	LatinName string `groups:"detailed" json:"latin_name,omitempty"`

	CountryID   string `groups:"basic" json:"country_id,omitempty"`
	CountryName string `groups:"basic" json:"country_name,omitempty"`
	Currency    string `groups:"detailed" json:"currency,omitempty"`

	Location *Location `groups:"detailed" json:"location,omitempty"`

	Stations []Station `groups:"detailed" json:"stations,omitempty"`
	Airports []Station `groups:"detailed" json:"airports,omitempty"`
}

func (p *PointCity) Validate() error {
	if p.PointID == "" {
		return fmt.Errorf("point has no point_id")
	}
	if p.Name == "" {
		return fmt.Errorf("point %s has no resolvable name", p.PointID)
	}
	if p.Location != nil && !p.Location.Valid() {
		return fmt.Errorf("point %s has out-of-range coordinates", p.PointID)
	}

	return nil
}

type Country struct {
	CountryID string `groups:"basic" json:"country_id"`
	Name      string `groups:"basic" json:"name"`
	Code      string `groups:"basic" json:"code,omitempty"`
	Currency  string `groups:"detailed" json:"currency,omitempty"`
}

func (c *Country) Validate() error {
	if c.CountryID == "" {
		return fmt.Errorf("country has no country_id")
	}
	if c.Name == "" {
		return fmt.Errorf("country %s has no resolvable name", c.CountryID)
	}

	return nil
}

// CountryGroup is a country together with its bookable points, as returned
// by the grouped variant of the points listing.
type CountryGroup struct {
	Country `groups:"basic"`

	Points []PointCity `groups:"basic" json:"points"`
}
