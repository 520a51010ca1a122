package nlu

import (
	"github.com/Anantaverma20/Retailmind/internal/domain"
)

// Validate checks that an (intent, entities) pair carries the entity subset
// its handler requires. Structural completeness only; whether a referenced
// product or order exists is the handler's problem. Validation is idempotent:
// a pair that passed once passes again unchanged.
func Validate(intent domain.Intent, entities domain.EntitySet) (domain.ValidatedIntent, error) {
	switch intent {
	case domain.IntentGetStock:
		if !entities.HasProductReference() {
			return domain.ValidatedIntent{}, &domain.MissingEntityError{
				Intent:  intent,
				Missing: []string{domain.EntityProductName},
			}
		}

	case domain.IntentCreateReorder:
		var missing []string
		if entities.SKU == "" {
			if entities.ProductName == "" {
				missing = append(missing, domain.EntityProductName)
			} else if entities.Color == "" && entities.Size == "" {
				missing = append(missing, domain.EntityColor)
			}
		}
		if entities.Quantity == 0 {
			missing = append(missing, domain.EntityQuantity)
		}
		if len(missing) > 0 {
			return domain.ValidatedIntent{}, &domain.MissingEntityError{Intent: intent, Missing: missing}
		}

	case domain.IntentGetSupplierInfo:
		if entities.SKU == "" && entities.ProductName == "" {
			return domain.ValidatedIntent{}, &domain.MissingEntityError{
				Intent:  intent,
				Missing: []string{domain.EntityProductName},
			}
		}

	case domain.IntentGetDeliveryStatus:
		// ReorderID is optional: without one the handler reports the most
		// recent open orders instead.

	case domain.IntentGetSalesSummary, domain.IntentUnknown:
		// No required entities.
	}

	return domain.ValidatedIntent{Intent: intent, Entities: entities}, nil
}
