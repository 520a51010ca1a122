package nlu

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Anantaverma20/Retailmind/internal/domain"
	"github.com/Anantaverma20/Retailmind/internal/ports"
)

// Rule match confidences. A phrase pattern is stronger evidence than a single
// keyword, but both are below what the model reports for a clean
// classification.
const (
	confidencePhrase  = 0.90
	confidenceKeyword = 0.75
)

type rulePattern struct {
	re         *regexp.Regexp
	confidence float64
}

type intentRule struct {
	intent   domain.Intent
	patterns []rulePattern
}

func phrase(expr string) rulePattern {
	return rulePattern{re: regexp.MustCompile(expr), confidence: confidencePhrase}
}

func keyword(expr string) rulePattern {
	return rulePattern{re: regexp.MustCompile(expr), confidence: confidenceKeyword}
}

// Rule tables are ordered by priority: action intents outrank query intents,
// so "reorder 50 hoodies, how many are left" books the reorder instead of
// answering the stock question. Within a language the first matching rule
// wins. Patterns match against the folded (lowercased, diacritic-stripped)
// transcript.
var ruleTables = map[domain.Language][]intentRule{
	domain.LanguageEnglish: {
		{domain.IntentCreateReorder, []rulePattern{
			phrase(`\brestock\b`),
			phrase(`\breorder\b`),
			phrase(`\border\b.*\bmore\b`),
			phrase(`\bbuy\b.*\bmore\b`),
			keyword(`\bpurchase order\b`),
		}},
		{domain.IntentGetDeliveryStatus, []rulePattern{
			phrase(`\bdelivery\b.*\bstatus\b`),
			phrase(`\bwhen\b.*\barriv`),
			phrase(`\bwhen\b.*\bdeliver`),
			phrase(`\border\b.*\bstatus\b`),
			keyword(`\bshipment\b`),
		}},
		{domain.IntentGetSupplierInfo, []rulePattern{
			phrase(`\bwho\b.*\bsupplies\b`),
			phrase(`\bsupplier\b.*\binfo`),
			keyword(`\bsupplier\b`),
			keyword(`\bvendor\b`),
		}},
		{domain.IntentGetSalesSummary, []rulePattern{
			phrase(`\bsales\b.*\bsummary\b`),
			phrase(`\bsales\b.*\breport\b`),
			phrase(`\bhow (many|much)\b.*\bsold\b`),
			phrase(`\btotal\b.*\bsales\b`),
			phrase(`\bhow did we do\b`),
			keyword(`\brevenue\b`),
		}},
		{domain.IntentGetStock, []rulePattern{
			phrase(`\bhow many\b.*\bleft\b`),
			phrase(`\bhow many\b.*\bin stock\b`),
			phrase(`\bhow many\b.*\bhave\b`),
			phrase(`\bdo we have\b`),
			phrase(`\bstock\b.*\blevel\b`),
			phrase(`\binventory\b.*\bcount\b`),
			phrase(`\bquantity\b.*\bavailable\b`),
			phrase(`\bwhat\b.*\bstock\b`),
			keyword(`\bstock\b`),
			keyword(`\binventory\b`),
		}},
	},
	domain.LanguageSpanish: {
		{domain.IntentCreateReorder, []rulePattern{
			phrase(`\breabastec`),
			phrase(`\breorden`),
			phrase(`\bpide\b.*\bmas\b`),
			phrase(`\bpedir\b.*\bmas\b`),
			phrase(`\bordena\b.*\bmas\b`),
			phrase(`\bcompra\b.*\bmas\b`),
			keyword(`\borden de compra\b`),
		}},
		{domain.IntentGetDeliveryStatus, []rulePattern{
			phrase(`\bestado\b.*\b(pedido|entrega|orden)\b`),
			phrase(`\bcuando\b.*\blleg`),
			phrase(`\bcuando\b.*\bentrega`),
			keyword(`\benvio\b`),
		}},
		{domain.IntentGetSupplierInfo, []rulePattern{
			phrase(`\bquien\b.*\bsuministra\b`),
			phrase(`\bproveedor\b.*\binfo`),
			keyword(`\bproveedor\b`),
			keyword(`\bvendedor\b`),
		}},
		{domain.IntentGetSalesSummary, []rulePattern{
			phrase(`\bresumen\b.*\bventas\b`),
			phrase(`\breporte\b.*\bventas\b`),
			phrase(`\bcuant[oa]s?\b.*\bvendi`),
			phrase(`\btotal\b.*\bventas\b`),
			phrase(`\bcomo nos fue\b`),
			keyword(`\bingresos\b`),
		}},
		{domain.IntentGetStock, []rulePattern{
			phrase(`\bcuant[oa]s\b.*\bquedan\b`),
			phrase(`\bcuant[oa]s\b.*\bhay\b`),
			phrase(`\bcuant[oa]s\b.*\btenemos\b`),
			phrase(`\bnivel\b.*\bstock\b`),
			phrase(`\ben stock\b`),
			phrase(`\bhay\b.*\bdisponible`),
			keyword(`\bstock\b`),
			keyword(`\binventario\b`),
		}},
	},
}

var (
	skuPattern      = regexp.MustCompile(`\b[a-z0-9]+(?:-[a-z0-9]+)+\b`)
	quantityPattern = regexp.MustCompile(`\b(\d+)\b`)
	daysPattern     = regexp.MustCompile(`\b(\d+)\s*(?:days?|dias?)\b`)
)

// findSKU extracts a hyphenated code, requiring at least one digit so
// hyphenated words ("t-shirts") are not mistaken for product codes.
func findSKU(folded string) string {
	for _, candidate := range skuPattern.FindAllString(folded, -1) {
		if strings.ContainsAny(candidate, "0123456789") {
			return candidate
		}
	}
	return ""
}

// RulesParser is the offline fallback parser. It is total: any input,
// including empty or mixed-language text, yields a ParseResult without error.
type RulesParser struct {
	log *zap.Logger
}

func NewRulesParser(log *zap.Logger) *RulesParser {
	return &RulesParser{log: log}
}

var _ ports.IntentParser = (*RulesParser)(nil)

func (p *RulesParser) Parse(_ context.Context, req domain.TranscriptRequest, lang domain.Language) (domain.ParseResult, error) {
	folded := Fold(req.Transcript)

	intent := domain.IntentUnknown
	confidence := 0.0
	rules, ok := ruleTables[lang]
	if !ok {
		rules = ruleTables[domain.LanguageEnglish]
	}
	for _, rule := range rules {
		for _, pat := range rule.patterns {
			if pat.re.MatchString(folded) {
				intent = rule.intent
				confidence = pat.confidence
				break
			}
		}
		if intent != domain.IntentUnknown {
			break
		}
	}

	entities := p.extractEntities(intent, lang, folded)
	for k, v := range req.Entities {
		entities[k] = v
	}

	return domain.ParseResult{
		Intent:     intent,
		Entities:   entities,
		Confidence: confidence,
		Source:     domain.SourceRules,
	}, nil
}

// extractEntities mines the folded transcript for the entities the selected
// intent cares about. Raw fragments only; canonicalization is the
// normalizer's job, but rule extraction already uses vocabulary tables so the
// fragments it emits are canonical as a side effect.
func (p *RulesParser) extractEntities(intent domain.Intent, lang domain.Language, folded string) map[string]string {
	entities := map[string]string{}

	switch intent {
	case domain.IntentGetStock, domain.IntentCreateReorder:
		if name, ok := scanVocab(productVocab, lang, folded); ok {
			entities[domain.EntityProductName] = name
		}
		if color, ok := scanVocab(colorVocab, lang, folded); ok {
			entities[domain.EntityColor] = color
		}
		if size, ok := scanVocab(sizeVocab, lang, folded); ok {
			entities[domain.EntitySize] = size
		}
		if sku := findSKU(folded); sku != "" {
			entities[domain.EntitySKU] = strings.ToUpper(sku)
		}
		if intent == domain.IntentCreateReorder {
			if m := quantityPattern.FindStringSubmatch(folded); m != nil {
				entities[domain.EntityQuantity] = m[1]
			}
		}

	case domain.IntentGetSalesSummary:
		entities[domain.EntityWindowDays] = extractWindowDays(folded)

	case domain.IntentGetSupplierInfo:
		if name, ok := scanVocab(productVocab, lang, folded); ok {
			entities[domain.EntityProductName] = name
		}
		if sku := findSKU(folded); sku != "" {
			entities[domain.EntitySKU] = strings.ToUpper(sku)
		}

	case domain.IntentGetDeliveryStatus:
		if id := findSKU(folded); id != "" {
			entities[domain.EntityReorderID] = strings.ToUpper(id)
		} else if m := quantityPattern.FindAllString(folded, -1); len(m) > 0 {
			entities[domain.EntityReorderID] = m[len(m)-1]
		}
	}

	return entities
}

func extractWindowDays(folded string) string {
	if m := daysPattern.FindStringSubmatch(folded); m != nil {
		return m[1]
	}
	switch {
	case strings.Contains(folded, "week") || strings.Contains(folded, "semana"):
		return "7"
	case strings.Contains(folded, "month") || strings.Contains(folded, "mes"):
		return "30"
	case strings.Contains(folded, "today") || strings.Contains(folded, "hoy"):
		return "1"
	}
	return strconv.Itoa(domain.DefaultSalesWindowDays)
}
