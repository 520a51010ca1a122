package speech

import (
	"golang.org/x/text/language"

	"github.com/Anantaverma20/Retailmind/internal/domain"
)

// TemplateSet holds every sentence fragment one language needs. The renderer
// never concatenates hardcoded words, so adding a language is a new entry in
// DefaultTemplates plus vocabulary and rule tables elsewhere.
type TemplateSet struct {
	Tag language.Tag

	ErrorGeneric       string
	ErrorNotFound      string
	ErrorSupplier      string
	ErrorPersistence   string
	Clarification      string
	ClarificationAsk   string
	NoProducts         string
	NoSales            string
	NoDeliveries       string
	LowStockWarning    string
	StockSingle        string // quantity, name, qualifiers, e.g. "There are %d %s%s in stock."
	StockQualifierIn   string // color qualifier, e.g. " in %s"
	StockQualifierSize string // size qualifier, e.g. " size %s"
	StockMultiple      string // count, total
	ReorderSuccess     string // task id, quantity, product name, status
	SalesSummary       string // days, quantity, revenue
	SupplierInfo       string // name, lead time days
	SupplierContact    string // contact name, email
	DeliveryStatus     string // po id, status
	DeliveryETA        string // days
	DeliveryOverdue    string
	PluralSuffix       string // naive pluralization appended to product names
}

// DefaultTemplates is the process-wide immutable template table, injected
// into the renderer at startup so tests can substitute their own.
var DefaultTemplates = map[domain.Language]TemplateSet{
	domain.LanguageEnglish: {
		Tag:                language.AmericanEnglish,
		ErrorGeneric:       "I'm sorry, something went wrong while processing your request.",
		ErrorNotFound:      "I couldn't find that product.",
		ErrorSupplier:      "I couldn't find supplier information.",
		ErrorPersistence:   "The inventory system is unavailable right now. Please try again shortly.",
		Clarification:      "I'm sorry, I didn't understand that. Could you rephrase?",
		ClarificationAsk:   "I need a bit more detail: please mention the %s.",
		NoProducts:         "No products found matching your criteria.",
		NoSales:            "No sales were recorded in that period.",
		NoDeliveries:       "There are no open deliveries right now.",
		LowStockWarning:    "This product is running low and needs restocking.",
		StockSingle:        "There are %v %s%s in stock.",
		StockQualifierIn:   " in %s",
		StockQualifierSize: " size %s",
		StockMultiple:      "Found %v matching products with a total quantity of %v.",
		ReorderSuccess:     "Created reorder %s for %v %s. Status: %s.",
		SalesSummary:       "In the last %v days, you sold %v items with total revenue of $%.2f.",
		SupplierInfo:       "The supplier is %s with a lead time of %v days.",
		SupplierContact:    "You can reach %s at %s.",
		DeliveryStatus:     "Order %s status is %s.",
		DeliveryETA:        "Expected delivery in %v days.",
		DeliveryOverdue:    "The delivery is overdue.",
		PluralSuffix:       "s",
	},
	domain.LanguageSpanish: {
		Tag:                language.EuropeanSpanish,
		ErrorGeneric:       "Lo siento, algo salió mal al procesar tu solicitud.",
		ErrorNotFound:      "No pude encontrar ese producto.",
		ErrorSupplier:      "No pude encontrar información del proveedor.",
		ErrorPersistence:   "El sistema de inventario no está disponible en este momento. Inténtalo de nuevo en breve.",
		Clarification:      "Lo siento, no entendí eso. ¿Podrías reformularlo?",
		ClarificationAsk:   "Necesito un poco más de detalle: por favor menciona %s.",
		NoProducts:         "No se encontraron productos que coincidan con tus criterios.",
		NoSales:            "No se registraron ventas en ese período.",
		NoDeliveries:       "No hay entregas abiertas en este momento.",
		LowStockWarning:    "Este producto se está agotando y necesita reabastecimiento.",
		StockSingle:        "Hay %v %s%s en stock.",
		StockQualifierIn:   " en %s",
		StockQualifierSize: " talla %s",
		StockMultiple:      "Se encontraron %v productos que coinciden, con una cantidad total de %v.",
		ReorderSuccess:     "Reorden %s creada para %v %s. Estado: %s.",
		SalesSummary:       "En los últimos %v días, vendiste %v artículos con un ingreso total de $%.2f.",
		SupplierInfo:       "El proveedor es %s con un tiempo de entrega de %v días.",
		SupplierContact:    "Puedes contactar a %s en %s.",
		DeliveryStatus:     "El estado del pedido %s es %s.",
		DeliveryETA:        "Entrega esperada en %v días.",
		DeliveryOverdue:    "La entrega está atrasada.",
		PluralSuffix:       "s",
	},
}

// entityNames localizes entity keys for clarification sentences.
var entityNames = map[domain.Language]map[string]string{
	domain.LanguageEnglish: {
		domain.EntityProductName: "product name",
		domain.EntityColor:       "color or size",
		domain.EntitySize:        "size",
		domain.EntitySKU:         "product code",
		domain.EntityQuantity:    "quantity",
		domain.EntityWindowDays:  "number of days",
		domain.EntityReorderID:   "order number",
	},
	domain.LanguageSpanish: {
		domain.EntityProductName: "el nombre del producto",
		domain.EntityColor:       "el color o la talla",
		domain.EntitySize:        "la talla",
		domain.EntitySKU:         "el código del producto",
		domain.EntityQuantity:    "la cantidad",
		domain.EntityWindowDays:  "el número de días",
		domain.EntityReorderID:   "el número de pedido",
	},
}
