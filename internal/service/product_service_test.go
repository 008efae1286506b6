package service

import (
	"errors"
	"testing"

	"github.com/botanical-decor/shop-api/internal/constants"
	"github.com/botanical-decor/shop-api/internal/repository"

	"github.com/shopspring/decimal"
)

func newTestProductService(t *testing.T) *ProductService {
	t.Helper()
	db := newShopTestDB(t)
	return NewProductService(repository.NewProductRepository(db))
}

func validProductInput() UpsertProductInput {
	return UpsertProductInput{
		Name:             "Crimson Dozen",
		Category:         constants.CategoryRoses,
		Price:            decimal.NewFromFloat(45.99),
		Stock:            24,
		Description:      "Twelve long-stemmed red roses.",
		Colors:           []string{"Red"},
		BunchesAvailable: []int{1, 2, 3},
		Rating:           4.8,
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc := newTestProductService(t)

	cases := []struct {
		name   string
		mutate func(*UpsertProductInput)
	}{
		{"empty name", func(in *UpsertProductInput) { in.Name = "  " }},
		{"unknown category", func(in *UpsertProductInput) { in.Category = "Cacti" }},
		{"query sentinel category", func(in *UpsertProductInput) { in.Category = constants.CategoryAll }},
		{"zero price", func(in *UpsertProductInput) { in.Price = decimal.Zero }},
		{"negative stock", func(in *UpsertProductInput) { in.Stock = -1 }},
		{"rating out of range", func(in *UpsertProductInput) { in.Rating = 5.5 }},
		{"discount above price", func(in *UpsertProductInput) {
			d := decimal.NewFromFloat(50)
			in.DiscountPrice = &d
		}},
		{"discount equal to price", func(in *UpsertProductInput) {
			d := decimal.NewFromFloat(45.99)
			in.DiscountPrice = &d
		}},
	}
	for _, tc := range cases {
		input := validProductInput()
		tc.mutate(&input)
		if _, err := svc.Create(input); !errors.Is(err, ErrProductInvalid) {
			t.Fatalf("%s: err = %v, want ErrProductInvalid", tc.name, err)
		}
	}
}

func TestCreateProductRoundTrip(t *testing.T) {
	svc := newTestProductService(t)

	input := validProductInput()
	sale := decimal.NewFromFloat(29.50)
	input.DiscountPrice = &sale

	created, err := svc.Create(input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned ID")
	}

	got, err := svc.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != "Crimson Dozen" || got.Category != constants.CategoryRoses {
		t.Fatalf("unexpected product: %+v", got)
	}
	if got.DiscountPrice == nil || got.DiscountPrice.StringFixed(2) != "29.50" {
		t.Fatalf("discount price not persisted: %+v", got.DiscountPrice)
	}
	if got.EffectivePrice().StringFixed(2) != "29.50" {
		t.Fatalf("effective price = %s, want the sale price", got.EffectivePrice().StringFixed(2))
	}
}

func TestUpdateProductKeepsIdentity(t *testing.T) {
	svc := newTestProductService(t)

	created, err := svc.Create(validProductInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	input := validProductInput()
	input.Name = "Crimson Dozen Deluxe"
	input.Stock = 5
	updated, err := svc.Update(created.ID, input)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("update changed ID: %d -> %d", created.ID, updated.ID)
	}
	if updated.Name != "Crimson Dozen Deluxe" || updated.Stock != 5 {
		t.Fatalf("update not applied: %+v", updated)
	}
}

func TestProductMutationsOnMissingID(t *testing.T) {
	svc := newTestProductService(t)

	if _, err := svc.Update(424242, validProductInput()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update err = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(424242); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete err = %v, want ErrNotFound", err)
	}
	if _, err := svc.GetByID(424242); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get err = %v, want ErrNotFound", err)
	}
}

func TestListDefaultsSortToNewest(t *testing.T) {
	svc := newTestProductService(t)

	if _, err := svc.Create(validProductInput()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, total, err := svc.List(CatalogQuery{SortBy: "price-sideways"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("total = %d, want 1", total)
	}
}
