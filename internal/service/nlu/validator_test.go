package nlu

import (
	"errors"
	"testing"

	"github.com/Anantaverma20/Retailmind/internal/domain"
)

func TestValidate_StockNeedsProductReference(t *testing.T) {
	_, err := Validate(domain.IntentGetStock, domain.EntitySet{})

	var missing *domain.MissingEntityError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingEntityError, got %v", err)
	}

	if _, err := Validate(domain.IntentGetStock, domain.EntitySet{Color: "red"}); err != nil {
		t.Errorf("color alone should satisfy get_stock, got %v", err)
	}
}

func TestValidate_ReorderRequirements(t *testing.T) {
	// SKU plus quantity is enough.
	if _, err := Validate(domain.IntentCreateReorder, domain.EntitySet{SKU: "TSH-001", Quantity: 25}); err != nil {
		t.Errorf("sku+quantity should pass, got %v", err)
	}

	// Name needs a discriminator.
	_, err := Validate(domain.IntentCreateReorder, domain.EntitySet{ProductName: "jeans", Quantity: 25})
	var missing *domain.MissingEntityError
	if !errors.As(err, &missing) {
		t.Fatalf("name without color/size should fail, got %v", err)
	}

	if _, err := Validate(domain.IntentCreateReorder, domain.EntitySet{ProductName: "jeans", Color: "black", Quantity: 25}); err != nil {
		t.Errorf("name+color+quantity should pass, got %v", err)
	}

	// Quantity is mandatory.
	_, err = Validate(domain.IntentCreateReorder, domain.EntitySet{SKU: "TSH-001"})
	if !errors.As(err, &missing) {
		t.Fatalf("missing quantity should fail, got %v", err)
	}
	found := false
	for _, key := range missing.Missing {
		if key == domain.EntityQuantity {
			found = true
		}
	}
	if !found {
		t.Errorf("expected quantity in missing list, got %v", missing.Missing)
	}
}

func TestValidate_DeliveryStatusAcceptsNoID(t *testing.T) {
	if _, err := Validate(domain.IntentGetDeliveryStatus, domain.EntitySet{}); err != nil {
		t.Errorf("delivery status without id should pass, got %v", err)
	}
}

func TestValidate_UnknownAlwaysPasses(t *testing.T) {
	if _, err := Validate(domain.IntentUnknown, domain.EntitySet{}); err != nil {
		t.Errorf("unknown must always validate, got %v", err)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	entities := domain.EntitySet{SKU: "TSH-001", Quantity: 10}

	first, err := Validate(domain.IntentCreateReorder, entities)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Validate(first.Intent, first.Entities)
	if err != nil {
		t.Fatalf("revalidation failed: %v", err)
	}
	if first != second {
		t.Errorf("validation is not idempotent: %+v vs %+v", first, second)
	}
}
