package weather

// Band buckets a temperature into the closet's weather vocabulary.
type Band string

const (
	BandCold Band = "Cold"
	BandMild Band = "Mild"
	BandHot  Band = "Hot"
)

// BandFor classifies a Celsius temperature. The brackets are half-open
// upward: 15 and 30 exactly belong to the warmer band.
func BandFor(tempC float64) Band {
	switch {
	case tempC < 15:
		return BandCold
	case tempC < 30:
		return BandMild
	default:
		return BandHot
	}
}

// Coordinates is a resolved geographic position.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Observation is the current-conditions snapshot a provider reports.
type Observation struct {
	// Condition is the provider's keyword for the general weather,
	// e.g. "Rain" or "Clear".
	Condition string
	TempC     float64
}

// Recommendation is the advisor's combined answer.
type Recommendation struct {
	NeedsWaterproof bool `json:"needsWaterproof"`
	Band            Band `json:"band"`
}

// wetConditions are the condition keywords that call for waterproof
// clothing.
var wetConditions = map[string]struct{}{
	"Drizzle":      {},
	"Rain":         {},
	"Snow":         {},
	"Thunderstorm": {},
}
