package closet

// ItemType enumerates the clothing categories the closet tracks.
type ItemType string

const (
	TypeDress      ItemType = "Dress"
	TypeShirt      ItemType = "Shirt"
	TypeLongPants  ItemType = "Long Pants"
	TypeShortPants ItemType = "Short Pants"
	TypeSkirt      ItemType = "Skirt"
	TypeShoes      ItemType = "Shoes"
	TypeJacket     ItemType = "Jacket"
	TypeBag        ItemType = "Bag"
	TypeHat        ItemType = "Hat"
	TypeBelt       ItemType = "Belt"
	TypeScarf      ItemType = "Scarf"
	TypeSunglasses ItemType = "Sunglasses"
)

// TrackedTypes returns every category in a fixed order. The order is
// load-bearing for composition validation, which reports the first
// over-represented category it encounters.
func TrackedTypes() []ItemType {
	return []ItemType{
		TypeDress, TypeShirt, TypeLongPants, TypeShortPants, TypeSkirt,
		TypeShoes, TypeJacket, TypeBag, TypeHat, TypeBelt, TypeScarf,
		TypeSunglasses,
	}
}

// Valid reports whether t is a recognized clothing category.
func (t ItemType) Valid() bool {
	for _, known := range TrackedTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Item is a single clothing piece. The id is assigned by the service
// and never supplied by callers; the photo URL is unique across the
// whole closet.
type Item struct {
	ID         string   `json:"id"`
	Type       ItemType `json:"type"`
	Color      string   `json:"color"`
	Photo      string   `json:"photo"`
	WaterProof bool     `json:"waterProof"`
}

// CreateRequest is the payload accepted when adding a piece.
type CreateRequest struct {
	Type       string `json:"type"`
	Color      string `json:"color"`
	Photo      string `json:"photo"`
	WaterProof bool   `json:"waterProof"`
}

// Filter narrows listing queries. Zero values mean "any".
type Filter struct {
	Type       string
	Color      string
	WaterProof *bool
}

// DeleteResult reports what a cascading item delete removed.
type DeleteResult struct {
	ID             string   `json:"id"`
	Photo          string   `json:"deletedPhoto"`
	OutfitsRemoved []string `json:"outfitsRemoved"`
}
