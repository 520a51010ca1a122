package speech

import (
	"strings"

	"golang.org/x/text/message"

	"github.com/Anantaverma20/Retailmind/internal/domain"
)

// Renderer turns a handler result into a spoken sentence in the requested
// language. Template tables are injected and immutable; the renderer holds no
// per-request state and is safe to share.
type Renderer struct {
	templates map[domain.Language]TemplateSet
	printers  map[domain.Language]*message.Printer
}

func NewRenderer(templates map[domain.Language]TemplateSet) *Renderer {
	printers := make(map[domain.Language]*message.Printer, len(templates))
	for lang, set := range templates {
		printers[lang] = message.NewPrinter(set.Tag)
	}
	return &Renderer{templates: templates, printers: printers}
}

func (r *Renderer) set(lang domain.Language) (TemplateSet, *message.Printer) {
	if set, ok := r.templates[lang]; ok {
		return set, r.printers[lang]
	}
	set := r.templates[domain.LanguageEnglish]
	return set, r.printers[domain.LanguageEnglish]
}

// Render produces the speech string for an intent's result. A result type
// that does not belong to the intent is a programming defect and comes back
// as *domain.RendererError; the caller decides whether that is fatal.
func (r *Renderer) Render(intent domain.Intent, result domain.HandlerResult, lang domain.Language) (string, error) {
	set, p := r.set(lang)

	switch res := result.(type) {
	case domain.StockResult:
		if intent != domain.IntentGetStock {
			return "", r.mismatch(intent, lang, result)
		}
		return r.renderStock(set, p, res), nil

	case domain.ReorderResult:
		if intent != domain.IntentCreateReorder {
			return "", r.mismatch(intent, lang, result)
		}
		if res.TaskID == "" {
			return "", &domain.RendererError{Intent: intent, Language: lang, Reason: "reorder result without task id"}
		}
		name := res.ProductName
		if name == "" {
			name = "items"
		}
		return p.Sprintf(set.ReorderSuccess, res.TaskID, res.Quantity, name, res.Status), nil

	case domain.SalesSummaryResult:
		if intent != domain.IntentGetSalesSummary {
			return "", r.mismatch(intent, lang, result)
		}
		if res.TransactionCount == 0 {
			return set.NoSales, nil
		}
		return p.Sprintf(set.SalesSummary, res.WindowDays, res.TotalQuantity, res.TotalRevenue), nil

	case domain.SupplierInfoResult:
		if intent != domain.IntentGetSupplierInfo {
			return "", r.mismatch(intent, lang, result)
		}
		if res.SupplierName == "" {
			return set.ErrorSupplier, nil
		}
		speech := p.Sprintf(set.SupplierInfo, res.SupplierName, res.LeadTimeDays)
		if res.ContactName != "" && res.ContactEmail != "" {
			speech += " " + p.Sprintf(set.SupplierContact, res.ContactName, res.ContactEmail)
		}
		return speech, nil

	case domain.DeliveryStatusResult:
		if intent != domain.IntentGetDeliveryStatus {
			return "", r.mismatch(intent, lang, result)
		}
		return r.renderDelivery(set, p, res), nil

	case domain.ClarificationResult:
		if len(res.Missing) > 0 {
			return p.Sprintf(set.ClarificationAsk, r.localizeEntity(lang, res.Missing[0])), nil
		}
		return set.Clarification, nil
	}

	return "", r.mismatch(intent, lang, result)
}

// RenderError produces the localized failure sentence for a handler error.
func (r *Renderer) RenderError(kind domain.HandlerErrorKind, lang domain.Language) string {
	set, _ := r.set(lang)
	switch kind {
	case domain.ErrProductNotFound:
		return set.ErrorNotFound
	case domain.ErrSupplierNotFound:
		return set.ErrorSupplier
	case domain.ErrPersistenceUnavailable:
		return set.ErrorPersistence
	}
	return set.ErrorGeneric
}

// Generic returns the language-correct generic failure sentence, the
// production fallback when rendering itself is the defect.
func (r *Renderer) Generic(lang domain.Language) string {
	set, _ := r.set(lang)
	return set.ErrorGeneric
}

func (r *Renderer) renderStock(set TemplateSet, p *message.Printer, res domain.StockResult) string {
	switch len(res.Items) {
	case 0:
		return set.NoProducts
	case 1:
		item := res.Items[0]
		name := item.Name
		if name == "" {
			name = "item"
		}
		if item.Quantity != 1 {
			name += set.PluralSuffix
		}
		var qualifiers strings.Builder
		if item.Color != "" {
			qualifiers.WriteString(p.Sprintf(set.StockQualifierIn, strings.ToLower(item.Color)))
		}
		if item.Size != "" {
			qualifiers.WriteString(p.Sprintf(set.StockQualifierSize, item.Size))
		}
		speech := p.Sprintf(set.StockSingle, item.Quantity, name, qualifiers.String())
		if item.LowStock {
			speech += " " + set.LowStockWarning
		}
		return speech
	}

	total := 0
	for _, item := range res.Items {
		total += item.Quantity
	}
	return p.Sprintf(set.StockMultiple, len(res.Items), total)
}

func (r *Renderer) renderDelivery(set TemplateSet, p *message.Printer, res domain.DeliveryStatusResult) string {
	if len(res.Orders) == 0 {
		return set.NoDeliveries
	}

	var parts []string
	for _, order := range res.Orders {
		part := p.Sprintf(set.DeliveryStatus, order.PurchaseOrderID, strings.ToLower(order.Status))
		if order.DaysUntilDelivery != nil {
			if *order.DaysUntilDelivery >= 0 {
				part += " " + p.Sprintf(set.DeliveryETA, *order.DaysUntilDelivery)
			} else {
				part += " " + set.DeliveryOverdue
			}
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " ")
}

func (r *Renderer) localizeEntity(lang domain.Language, key string) string {
	names, ok := entityNames[lang]
	if !ok {
		names = entityNames[domain.LanguageEnglish]
	}
	if name, ok := names[key]; ok {
		return name
	}
	return key
}

func (r *Renderer) mismatch(intent domain.Intent, lang domain.Language, result domain.HandlerResult) *domain.RendererError {
	return &domain.RendererError{
		Intent:   intent,
		Language: lang,
		Reason:   "result shape does not match intent",
	}
}
