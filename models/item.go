package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Item is a search candidate, either a restaurant or a menu item, with its
// localized text fields.
type Item struct {
	ID            string  `json:"id"`
	NameHr        string  `json:"nameHr"`
	NameEn        string  `json:"nameEn"`
	DescriptionHr string  `json:"descriptionHr,omitempty"`
	DescriptionEn string  `json:"descriptionEn,omitempty"`
	Price         *Price  `json:"price,omitempty"`
	Sizes         []Size  `json:"sizes,omitempty"`
	Location      *LatLng `json:"location,omitempty"`
}

// Size is a priced size variant of a menu item.
type Size struct {
	Name  string `json:"name,omitempty"`
	Price Price  `json:"price"`
}

// Price keeps the raw upstream value. Catalogs send prices as JSON numbers or
// as strings such as "12.50"; values that do not parse are ignored by scoring.
type Price string

// UnmarshalJSON accepts a JSON string, number or null.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Price(strings.TrimSpace(s))
		return nil
	}
	*p = Price(data)
	return nil
}

// ScoredItem is a ranked candidate.
type ScoredItem struct {
	Item       Item     `json:"item"`
	Score      float64  `json:"score"`
	Price      *float64 `json:"price,omitempty"`
	DistanceKm *float64 `json:"distanceKm,omitempty"`
}
