package outfit

import "github.com/yanqian/closet-keeper/internal/domain/closet"

// Style enumerates the accepted outfit styles.
type Style string

const (
	StyleCasual  Style = "Casual"
	StyleElegant Style = "Elegant"
	StyleSporty  Style = "Sporty"
	StyleParty   Style = "Party"
	StyleWork    Style = "Work"
)

// Valid reports whether s is one of the accepted styles.
func (s Style) Valid() bool {
	switch s {
	case StyleCasual, StyleElegant, StyleSporty, StyleParty, StyleWork:
		return true
	}
	return false
}

// Weather is the band an outfit is suited for.
type Weather string

const (
	WeatherCold Weather = "Cold"
	WeatherMild Weather = "Mild"
	WeatherHot  Weather = "Hot"
)

// Valid reports whether w is one of the accepted bands.
func (w Weather) Valid() bool {
	switch w {
	case WeatherCold, WeatherMild, WeatherHot:
		return true
	}
	return false
}

// ItemSummary is the resolved slice of a clothing item an outfit keeps.
type ItemSummary struct {
	Type  closet.ItemType `json:"type"`
	Photo string          `json:"photo"`
}

// Outfit is a validated composition of clothing items. Waterproof and
// OutfitPhoto are derived at write time; OutfitPhoto is positionally
// parallel to ClothingItems.
type Outfit struct {
	ID               string        `json:"id"`
	Style            Style         `json:"style"`
	ClothingItems    []ItemSummary `json:"clothingItems"`
	SuitableWeathers Weather       `json:"suitableWeathers"`
	Waterproof       bool          `json:"waterproof"`
	OutfitPhoto      []string      `json:"outfitPhoto"`
}

// Request is the payload for creating or updating an outfit.
type Request struct {
	Style            string   `json:"style"`
	ClothingItems    []string `json:"clothingItems"`
	SuitableWeathers string   `json:"suitableWeathers"`
}

// QueryFilter narrows the weather-gated recommendation query.
type QueryFilter struct {
	Style        string
	ID           string
	ClothingType string
}

// RecommendationResult carries the live weather context alongside the
// outfits that survived the gate.
type RecommendationResult struct {
	Band            Weather  `json:"band"`
	NeedsWaterproof bool     `json:"needsWaterproof"`
	Outfits         []Outfit `json:"outfits"`
}
