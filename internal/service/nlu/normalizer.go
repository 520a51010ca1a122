package nlu

import (
	"strconv"
	"strings"

	"github.com/Anantaverma20/Retailmind/internal/domain"
)

// Normalization bounds. Values outside these are dropped, not clamped;
// a missing entity is a validation concern, a nonsense one never reaches a
// handler.
const (
	MaxQuantity   = 100000
	MaxWindowDays = 365
)

// Normalize canonicalizes raw parser output into the typed EntitySet handlers
// receive. Total function: unparseable values are dropped, unrecognized keys
// are dropped, and string values come out as canonical English regardless of
// input language.
func Normalize(raw map[string]string, lang domain.Language) domain.EntitySet {
	var set domain.EntitySet

	for key, value := range raw {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		switch key {
		case domain.EntityProductName:
			set.ProductName = canonicalize(productVocab, lang, value)
		case domain.EntityColor:
			set.Color = canonicalize(colorVocab, lang, value)
		case domain.EntitySize:
			set.Size = canonicalizeSize(lang, value)
		case domain.EntitySKU:
			set.SKU = strings.ToUpper(value)
		case domain.EntityQuantity:
			if n, ok := parseBounded(value, 1, MaxQuantity); ok {
				set.Quantity = n
			}
		case domain.EntityWindowDays:
			if n, ok := parseBounded(value, 1, MaxWindowDays); ok {
				set.WindowDays = n
			}
		case domain.EntityReorderID:
			set.ReorderID = strings.ToUpper(value)
		}
	}

	return set
}

// canonicalize folds the value and maps it through the vocabulary; values the
// vocabulary does not know pass through folded, so novel product names still
// reach the fuzzy storage query.
func canonicalize(tables map[domain.Language]map[string]string, lang domain.Language, value string) string {
	folded := Fold(value)
	if canonical, ok := lookupVocab(tables, lang, folded); ok {
		return canonical
	}
	return folded
}

func canonicalizeSize(lang domain.Language, value string) string {
	folded := Fold(value)
	if canonical, ok := lookupVocab(sizeVocab, lang, folded); ok {
		return canonical
	}
	return strings.ToUpper(folded)
}

// parseBounded accepts only pure digit strings inside [min, max]. "25 units",
// "-3" and "9999999999" all fail.
func parseBounded(value string, min, max int) (int, bool) {
	for _, r := range value {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < min || n > max {
		return 0, false
	}
	return n, true
}
