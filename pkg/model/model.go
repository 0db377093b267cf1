package model

import "fmt"

// RaceRecord is one row of the cyclist dataset. Records are decoded once
// and never mutated.
type RaceRecord struct {
	Time        string `json:"Time"`
	Place       int    `json:"Place"`
	Seconds     int    `json:"Seconds"`
	Name        string `json:"Name"`
	Year        int    `json:"Year"`
	Nationality string `json:"Nationality"`
	Doping      string `json:"Doping"`
	URL         string `json:"URL"`
}

func (r RaceRecord) HasDopingAllegation() bool {
	return r.Doping != ""
}

func (r RaceRecord) String() string {
	return fmt.Sprintf("  ▸ Rider: %s (%s)\n  ▸ Year: %d\n  ▸ Time: %s", r.Name, r.Nationality, r.Year, r.Time)
}
