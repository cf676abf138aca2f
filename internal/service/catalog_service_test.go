package service

import (
	"errors"
	"testing"

	"quotepanel/internal/model"
)

func TestCatalogService_GetAll(t *testing.T) {
	env := newTestEnv(t)

	all := env.catalog.GetAll(ctx())
	if len(all) != 6 {
		t.Fatalf("expected the 6 built-in products, got %d", len(all))
	}
	if all[0].ID != "dubai-negro" || all[0].Origin != model.ProductOriginBase {
		t.Fatalf("unexpected first entry: %+v", all[0])
	}

	created, err := env.catalog.Save(ctx(), SaveProductRequest{Name: "Mesa ratona", Price: 45000, Category: "Mesas"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if created.Origin != model.ProductOriginUser {
		t.Fatalf("origin: got %q, want %q", created.Origin, model.ProductOriginUser)
	}

	all = env.catalog.GetAll(ctx())
	if len(all) != 7 || all[6].ID != created.ID {
		t.Fatalf("user product should list after the built-ins: %+v", all)
	}
}

func TestCatalogService_Filter(t *testing.T) {
	env := newTestEnv(t)

	t.Run("text is accent and case insensitive", func(t *testing.T) {
		got := env.catalog.Filter(ctx(), ProductFilter{Text: "nordica"})
		if len(got) != 1 || got[0].ID != "silla-nordica" {
			t.Fatalf("expected silla-nordica, got %+v", got)
		}
	})

	t.Run("category is exact", func(t *testing.T) {
		got := env.catalog.Filter(ctx(), ProductFilter{Category: "Sillas"})
		if len(got) != 2 {
			t.Fatalf("expected 2 chairs, got %+v", got)
		}
	})

	t.Run("sort by price", func(t *testing.T) {
		asc := env.catalog.Filter(ctx(), ProductFilter{Sort: "priceAsc"})
		if asc[0].ID != "armario-bajo" {
			t.Fatalf("priceAsc: expected armario-bajo first, got %s", asc[0].ID)
		}
		desc := env.catalog.Filter(ctx(), ProductFilter{Sort: "priceDesc"})
		if desc[0].ID != "dubai-blanco" {
			t.Fatalf("priceDesc: expected dubai-blanco first, got %s", desc[0].ID)
		}
	})

	t.Run("unknown sort keeps catalog order", func(t *testing.T) {
		got := env.catalog.Filter(ctx(), ProductFilter{Sort: "alphabetical"})
		if got[0].ID != "dubai-negro" {
			t.Fatalf("expected catalog order, got %s first", got[0].ID)
		}
	})
}

func TestCatalogService_Save(t *testing.T) {
	env := newTestEnv(t)

	t.Run("validation", func(t *testing.T) {
		if _, err := env.catalog.Save(ctx(), SaveProductRequest{Name: "", Price: 100}); !errors.Is(err, ErrValidation) {
			t.Fatalf("empty name: expected ErrValidation, got %v", err)
		}
		if _, err := env.catalog.Save(ctx(), SaveProductRequest{Name: "Mesa", Price: 0}); !errors.Is(err, ErrValidation) {
			t.Fatalf("zero price: expected ErrValidation, got %v", err)
		}
	})

	t.Run("built-in entries are read-only", func(t *testing.T) {
		_, err := env.catalog.Save(ctx(), SaveProductRequest{ID: "zen-ergo", Name: "Silla hackeada", Price: 1})
		if !errors.Is(err, ErrBuiltInImmutable) {
			t.Fatalf("expected ErrBuiltInImmutable, got %v", err)
		}
	})

	t.Run("update keeps the id and forces user origin", func(t *testing.T) {
		created, err := env.catalog.Save(ctx(), SaveProductRequest{Name: "Mesa ratona", Price: 45000})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		updated, err := env.catalog.Save(ctx(), SaveProductRequest{ID: created.ID, Name: "Mesa ratona XL", Price: 52000})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.ID != created.ID || updated.Name != "Mesa ratona XL" || updated.Origin != model.ProductOriginUser {
			t.Fatalf("update mismatch: %+v", updated)
		}
	})
}

func TestCatalogService_Delete(t *testing.T) {
	env := newTestEnv(t)
	created, err := env.catalog.Save(ctx(), SaveProductRequest{Name: "Mesa ratona", Price: 45000})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("built-in", func(t *testing.T) {
		if err := env.catalog.Delete(ctx(), "dubai-negro", true); !errors.Is(err, ErrBuiltInImmutable) {
			t.Fatalf("expected ErrBuiltInImmutable, got %v", err)
		}
	})

	t.Run("needs confirmation", func(t *testing.T) {
		if err := env.catalog.Delete(ctx(), created.ID, false); !errors.Is(err, ErrConfirmationRequired) {
			t.Fatalf("expected ErrConfirmationRequired, got %v", err)
		}
		if _, err := env.catalog.GetByID(ctx(), created.ID); err != nil {
			t.Fatalf("product should survive unconfirmed delete: %v", err)
		}
	})

	t.Run("confirmed", func(t *testing.T) {
		if err := env.catalog.Delete(ctx(), created.ID, true); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := env.catalog.GetByID(ctx(), created.ID); !errors.Is(err, ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if err := env.catalog.Delete(ctx(), "ghost", true); !errors.Is(err, ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}
	})
}
