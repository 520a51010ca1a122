package nlu

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Anantaverma20/Retailmind/internal/domain"
)

// foldTransformer strips combining marks so "cuántas" and "cuantas" compare
// equal. Spanish matching is diacritic-insensitive throughout.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases and removes diacritics. Used by the rules parser and the
// normalizer so vocabulary tables only need one spelling per word.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}

// Vocabulary tables map folded localized tokens to canonical English values.
// Adding a language means adding entries here, a rule table and a template
// set; no code changes.

var colorVocab = map[domain.Language]map[string]string{
	domain.LanguageEnglish: {
		"red": "red", "blue": "blue", "black": "black", "white": "white",
		"green": "green", "yellow": "yellow", "brown": "brown",
		"gray": "gray", "grey": "gray", "orange": "orange",
		"pink": "pink", "purple": "purple", "navy": "navy", "beige": "beige",
	},
	domain.LanguageSpanish: {
		"rojo": "red", "roja": "red", "rojos": "red", "rojas": "red",
		"azul": "blue", "azules": "blue",
		"negro": "black", "negra": "black", "negros": "black", "negras": "black",
		"blanco": "white", "blanca": "white", "blancos": "white", "blancas": "white",
		"verde": "green", "verdes": "green",
		"amarillo": "yellow", "amarilla": "yellow",
		"marron": "brown", "cafe": "brown",
		"gris": "gray", "grises": "gray",
		"naranja": "orange",
		"rosa":    "pink", "rosado": "pink", "rosada": "pink",
		"morado": "purple", "morada": "purple",
		"azul marino": "navy", "beige": "beige",
	},
}

var sizeVocab = map[domain.Language]map[string]string{
	domain.LanguageEnglish: {
		"xs": "XS", "extra small": "XS",
		"s": "S", "small": "S",
		"m": "M", "medium": "M",
		"l": "L", "large": "L",
		"xl": "XL", "extra large": "XL",
		"xxl": "XXL",
	},
	domain.LanguageSpanish: {
		"xs":      "XS",
		"pequeno": "S", "pequena": "S", "chico": "S", "chica": "S",
		"mediano": "M", "mediana": "M",
		"grande": "L",
		"extra grande": "XL", "xl": "XL", "xxl": "XXL",
	},
}

var productVocab = map[domain.Language]map[string]string{
	domain.LanguageEnglish: {
		"hoodie": "hoodie", "hoodies": "hoodie",
		"jeans": "jeans", "jean": "jeans",
		"t-shirt": "t-shirt", "t-shirts": "t-shirt", "tshirt": "t-shirt", "tee": "t-shirt", "tees": "t-shirt",
		"shirt": "shirt", "shirts": "shirt",
		"jacket": "jacket", "jackets": "jacket",
		"dress": "dress", "dresses": "dress",
		"skirt": "skirt", "skirts": "skirt",
		"sweater": "sweater", "sweaters": "sweater",
		"shorts": "shorts",
		"socks":  "socks",
	},
	domain.LanguageSpanish: {
		"sudadera": "hoodie", "sudaderas": "hoodie",
		"vaqueros": "jeans", "vaquero": "jeans", "jeans": "jeans",
		"camiseta": "t-shirt", "camisetas": "t-shirt",
		"camisa": "shirt", "camisas": "shirt",
		"chaqueta": "jacket", "chaquetas": "jacket",
		"vestido": "dress", "vestidos": "dress",
		"falda": "skirt", "faldas": "skirt",
		"sueter": "sweater", "sueteres": "sweater",
		"pantalones cortos": "shorts",
		"calcetines":        "socks",
	},
}

// lookupVocab resolves a folded value against the language table, trying the
// English table second so mixed-language transcripts still canonicalize.
func lookupVocab(tables map[domain.Language]map[string]string, lang domain.Language, folded string) (string, bool) {
	if canonical, ok := tables[lang][folded]; ok {
		return canonical, true
	}
	if canonical, ok := tables[domain.LanguageEnglish][folded]; ok {
		return canonical, true
	}
	return "", false
}

// scanVocab finds the first transcript token (or two-token phrase, so "extra
// grande" works) that resolves through the vocabulary. Scanning transcript
// order keeps extraction deterministic when several candidates appear.
func scanVocab(tables map[domain.Language]map[string]string, lang domain.Language, folded string) (string, bool) {
	tokens := splitWords(folded)
	for i, tok := range tokens {
		if i+1 < len(tokens) {
			if canonical, ok := lookupVocab(tables, lang, tok+" "+tokens[i+1]); ok {
				return canonical, true
			}
		}
		if canonical, ok := lookupVocab(tables, lang, tok); ok {
			return canonical, true
		}
	}
	return "", false
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
}
