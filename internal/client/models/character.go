package models

import "strings"

// CharacterStatus is the tri-state life status reported by the catalog.
type CharacterStatus string

const (
	StatusAlive   CharacterStatus = "Alive"
	StatusDead    CharacterStatus = "Dead"
	StatusUnknown CharacterStatus = "unknown"
)

// CharacterGender as reported by the catalog.
type CharacterGender string

const (
	GenderFemale     CharacterGender = "Female"
	GenderMale       CharacterGender = "Male"
	GenderGenderless CharacterGender = "Genderless"
	GenderUnknown    CharacterGender = "unknown"
)

// Location is an origin or current location. Type and Dimension are only
// populated by detail queries.
type Location struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type,omitempty"`
	Dimension string `json:"dimension,omitempty"`
}

// Episode is a single appearance of a character.
type Episode struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Code    string `json:"episode"`
	AirDate string `json:"air_date,omitempty"`
}

// CharacterSummary is the list-level record shown in the catalog grid.
type CharacterSummary struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Status   CharacterStatus `json:"status"`
	Species  string          `json:"species"`
	Type     string          `json:"type"`
	Gender   CharacterGender `json:"gender"`
	Image    string          `json:"image"`
	Origin   Location        `json:"origin"`
	Location Location        `json:"location"`
}

// CharacterDetail is the full record fetched lazily for the detail view.
// It shares its ID with the corresponding summary.
type CharacterDetail struct {
	CharacterSummary
	Episodes []Episode `json:"episode"`
	Created  string    `json:"created,omitempty"`
}

// PageInfo describes the position of a list page in the whole catalog.
// Next and Prev are nil at the boundaries.
type PageInfo struct {
	Count int  `json:"count"`
	Pages int  `json:"pages"`
	Next  *int `json:"next"`
	Prev  *int `json:"prev"`
}

// CharacterPage is one page of the catalog.
type CharacterPage struct {
	Info    PageInfo           `json:"info"`
	Results []CharacterSummary `json:"results"`
}

// Find returns the summary with the given id on this page.
func (p CharacterPage) Find(id string) (CharacterSummary, bool) {
	id = strings.TrimSpace(id)
	for _, c := range p.Results {
		if c.ID == id {
			return c, true
		}
	}
	return CharacterSummary{}, false
}
