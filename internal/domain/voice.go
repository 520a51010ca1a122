package domain

import "strings"

// Language is a supported response language. Adding a language is a data
// change: vocabulary tables, a template set and a translation table.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSpanish Language = "es"
)

// ParseLanguage maps a device-supplied language tag to a supported language,
// defaulting to English when the tag is absent or unrecognized.
func ParseLanguage(tag string) Language {
	switch Language(strings.ToLower(strings.TrimSpace(tag))) {
	case LanguageSpanish:
		return LanguageSpanish
	default:
		return LanguageEnglish
	}
}

// Intent is the closed category of user request a transcript maps to.
type Intent string

const (
	IntentGetStock          Intent = "get_stock"
	IntentCreateReorder     Intent = "create_reorder"
	IntentGetSalesSummary   Intent = "get_sales_summary"
	IntentGetSupplierInfo   Intent = "get_supplier_info"
	IntentGetDeliveryStatus Intent = "get_delivery_status"

	// IntentUnknown is a first-class terminal intent, not an error. It is the
	// result when no parser reaches confidence above threshold.
	IntentUnknown Intent = "unknown"
)

// AllIntents lists every intent the dispatcher must be able to handle,
// including unknown. The handler registry is checked against this list at
// startup.
func AllIntents() []Intent {
	return []Intent{
		IntentGetStock,
		IntentCreateReorder,
		IntentGetSalesSummary,
		IntentGetSupplierInfo,
		IntentGetDeliveryStatus,
		IntentUnknown,
	}
}

// Valid reports whether i is a member of the closed intent enumeration.
func (i Intent) Valid() bool {
	switch i {
	case IntentGetStock, IntentCreateReorder, IntentGetSalesSummary,
		IntentGetSupplierInfo, IntentGetDeliveryStatus, IntentUnknown:
		return true
	}
	return false
}

// ParseSource identifies which parser produced a ParseResult. Confidence is
// only comparable within the same source.
type ParseSource string

const (
	SourceLLM   ParseSource = "llm"
	SourceRules ParseSource = "rules"
)

// Recognized entity keys. Unrecognized keys are dropped during normalization.
const (
	EntityProductName = "product_name"
	EntityColor       = "color"
	EntitySize        = "size"
	EntitySKU         = "sku"
	EntityQuantity    = "quantity"
	EntityWindowDays  = "window_days"
	EntityReorderID   = "reorder_id"
)

// TranscriptRequest is the immutable input from the device webhook.
type TranscriptRequest struct {
	Transcript string            `json:"transcript"`
	Entities   map[string]string `json:"entities,omitempty"`
	SessionID  string            `json:"session_id,omitempty"`
	Language   string            `json:"language,omitempty"`
}

// ParseResult is the raw output of one NLU parser, before normalization.
// Entities hold string fragments exactly as extracted (or as supplied by the
// device, which always wins for the same key).
type ParseResult struct {
	Intent     Intent            `json:"intent"`
	Entities   map[string]string `json:"entities"`
	Confidence float64           `json:"confidence"`
	Source     ParseSource       `json:"source"`
}

// EntitySet is the normalized, typed entity mapping handlers receive.
// String values are canonical English regardless of input language. Quantity
// and WindowDays are always positive when set.
type EntitySet struct {
	ProductName string `json:"product_name,omitempty"`
	Color       string `json:"color,omitempty"`
	Size        string `json:"size,omitempty"`
	SKU         string `json:"sku,omitempty"`
	Quantity    int    `json:"quantity,omitempty"`
	WindowDays  int    `json:"window_days,omitempty"`
	ReorderID   string `json:"reorder_id,omitempty"`
}

// Empty reports whether no entity is set.
func (e EntitySet) Empty() bool {
	return e == EntitySet{}
}

// HasProductReference reports whether the set carries anything a product
// query could anchor on.
func (e EntitySet) HasProductReference() bool {
	return e.SKU != "" || e.ProductName != "" || e.Color != "" || e.Size != ""
}

// ValidatedIntent is an (intent, entities) pair that passed the intent
// validator and may be dispatched.
type ValidatedIntent struct {
	Intent   Intent
	Entities EntitySet
}

// Response is the single boundary contract returned to the webhook layer.
// OK is false only when a handler raised a domain or persistence error; an
// unknown intent still answers with OK true and a clarification sentence.
type Response struct {
	OK       bool      `json:"ok"`
	Intent   Intent    `json:"intent"`
	Entities EntitySet `json:"entities"`
	Result   any       `json:"result"`
	Speech   string    `json:"speech"`
}
