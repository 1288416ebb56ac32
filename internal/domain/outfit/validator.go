package outfit

import (
	"fmt"

	"github.com/yanqian/closet-keeper/internal/domain/closet"
	apperrors "github.com/yanqian/closet-keeper/pkg/errors"
)

// ValidateComposition applies the outfit composition rules to the
// resolved item types, in order, and reports the first violated rule.
// It is pure: same multiset in, same decision out.
//
// A single Dress counts as both the top and the bottom, so a Dress
// plus Shoes is a complete outfit and must not trip the "too many"
// rules on its own.
func ValidateComposition(types []closet.ItemType) error {
	counts := make(map[closet.ItemType]int, len(types))
	for _, t := range types {
		counts[t]++
	}

	if counts[closet.TypeShoes] < 1 {
		return rejection("You should have a pair of shoes!")
	}
	if counts[closet.TypeShirt] < 1 && counts[closet.TypeDress] < 1 {
		return rejection("You should have at least one top!")
	}

	bottoms := counts[closet.TypeLongPants] + counts[closet.TypeShortPants] + counts[closet.TypeSkirt]
	if counts[closet.TypeDress] < 1 && bottoms < 1 {
		return rejection("You should have at least one bottom!")
	}
	if bottoms+counts[closet.TypeDress] > 1 {
		return rejection("Too many bottoms!")
	}
	if counts[closet.TypeShirt]+counts[closet.TypeDress] > 1 {
		return rejection("Too many tops!")
	}

	for _, t := range closet.TrackedTypes() {
		if counts[t] > 1 {
			return rejection(fmt.Sprintf("Too many %ss!", t))
		}
	}
	return nil
}

// ValidateAttributes checks the enum-valued outfit fields. It runs
// after the composition rules so rejection ordering stays stable.
func ValidateAttributes(style Style, weather Weather) error {
	if !style.Valid() {
		return rejection("invalid style value")
	}
	if !weather.Valid() {
		return rejection("invalid weather value")
	}
	return nil
}

func rejection(reason string) error {
	return apperrors.Wrap(apperrors.CodeInvalidInput, reason, nil)
}
