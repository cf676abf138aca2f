package service

import (
	"errors"
	"math"
	"testing"
	"time"

	"quotepanel/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestComputeTotals(t *testing.T) {
	cfg := model.Config{IvaPercent: 21, MaxDiscount: 30}

	t.Run("discount capped at configured maximum", func(t *testing.T) {
		items := []model.LineItem{{ProductID: "p1", Name: "Mesa", UnitPrice: 100000, Quantity: 2}}
		totals := ComputeTotals(items, 50, 1000, cfg)

		if !almostEqual(totals.Subtotal, 200000) {
			t.Fatalf("subtotal: got %v, want 200000", totals.Subtotal)
		}
		if !almostEqual(totals.DiscountPercent, 30) {
			t.Fatalf("effective discount: got %v, want 30", totals.DiscountPercent)
		}
		if !almostEqual(totals.DiscountAmount, 60000) {
			t.Fatalf("discount amount: got %v, want 60000", totals.DiscountAmount)
		}
		if !almostEqual(totals.Iva, 29400) {
			t.Fatalf("iva: got %v, want 29400", totals.Iva)
		}
		if !almostEqual(totals.Total, 170400) {
			t.Fatalf("total: got %v, want 170400", totals.Total)
		}
		if totals.FormattedTotal != "$ 170.400" {
			t.Fatalf("formatted total: got %q, want %q", totals.FormattedTotal, "$ 170.400")
		}
	})

	t.Run("negative discount clamps to zero", func(t *testing.T) {
		items := []model.LineItem{{ProductID: "p1", Name: "Mesa", UnitPrice: 1000, Quantity: 1}}
		totals := ComputeTotals(items, -10, 0, cfg)
		if !almostEqual(totals.DiscountPercent, 0) || !almostEqual(totals.DiscountAmount, 0) {
			t.Fatalf("expected zero discount, got %v / %v", totals.DiscountPercent, totals.DiscountAmount)
		}
		if !almostEqual(totals.Total, 1210) {
			t.Fatalf("total: got %v, want 1210", totals.Total)
		}
	})

	t.Run("empty items", func(t *testing.T) {
		totals := ComputeTotals(nil, 10, 500, cfg)
		if !almostEqual(totals.Subtotal, 0) || !almostEqual(totals.Total, 500) {
			t.Fatalf("expected shipping-only total, got %+v", totals)
		}
	})

	t.Run("shipping is not taxed", func(t *testing.T) {
		items := []model.LineItem{{ProductID: "p1", Name: "Silla", UnitPrice: 100, Quantity: 1}}
		totals := ComputeTotals(items, 0, 1000, cfg)
		if !almostEqual(totals.Iva, 21) {
			t.Fatalf("iva should only cover the taxable base: got %v, want 21", totals.Iva)
		}
		if !almostEqual(totals.Total, 1121) {
			t.Fatalf("total: got %v, want 1121", totals.Total)
		}
	})
}

func TestBudgetService_DraftItems(t *testing.T) {
	t.Run("adding the same product twice accumulates quantity", func(t *testing.T) {
		env := newTestEnv(t)

		if _, err := env.budgets.AddProduct(ctx(), "dubai-negro"); err != nil {
			t.Fatalf("add: %v", err)
		}
		draft, err := env.budgets.AddProduct(ctx(), "dubai-negro")
		if err != nil {
			t.Fatalf("add again: %v", err)
		}
		if len(draft.Items) != 1 {
			t.Fatalf("expected a single row, got %d", len(draft.Items))
		}
		if draft.Items[0].Quantity != 2 {
			t.Fatalf("quantity: got %d, want 2", draft.Items[0].Quantity)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		env := newTestEnv(t)
		if _, err := env.budgets.AddProduct(ctx(), "no-such-product"); !errors.Is(err, ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}
	})

	t.Run("set quantity clamps below one", func(t *testing.T) {
		env := newTestEnv(t)
		if _, err := env.budgets.AddProduct(ctx(), "zen-ergo"); err != nil {
			t.Fatalf("add: %v", err)
		}
		draft := env.budgets.SetQuantity(ctx(), "zen-ergo", 0)
		if draft.Items[0].Quantity != 1 {
			t.Fatalf("quantity: got %d, want 1", draft.Items[0].Quantity)
		}
	})

	t.Run("set quantity on absent line is a no-op", func(t *testing.T) {
		env := newTestEnv(t)
		if _, err := env.budgets.AddProduct(ctx(), "zen-ergo"); err != nil {
			t.Fatalf("add: %v", err)
		}
		draft := env.budgets.SetQuantity(ctx(), "ghost", 5)
		if len(draft.Items) != 1 || draft.Items[0].Quantity != 1 {
			t.Fatalf("draft changed unexpectedly: %+v", draft.Items)
		}
	})

	t.Run("remove item", func(t *testing.T) {
		env := newTestEnv(t)
		if _, err := env.budgets.AddProduct(ctx(), "zen-ergo"); err != nil {
			t.Fatalf("add: %v", err)
		}
		draft := env.budgets.RemoveItem(ctx(), "zen-ergo")
		if len(draft.Items) != 0 {
			t.Fatalf("expected empty draft, got %+v", draft.Items)
		}
	})

	t.Run("custom item validation", func(t *testing.T) {
		env := newTestEnv(t)
		if _, err := env.budgets.AddCustomItem(ctx(), "", 1, 100); !errors.Is(err, ErrValidation) {
			t.Fatalf("empty name: expected ErrValidation, got %v", err)
		}
		if _, err := env.budgets.AddCustomItem(ctx(), "Flete", 0, 100); !errors.Is(err, ErrValidation) {
			t.Fatalf("zero qty: expected ErrValidation, got %v", err)
		}
		if _, err := env.budgets.AddCustomItem(ctx(), "Flete", 1, -5); !errors.Is(err, ErrValidation) {
			t.Fatalf("negative price: expected ErrValidation, got %v", err)
		}
		draft, err := env.budgets.AddCustomItem(ctx(), "Mesa a medida", 2, 100000)
		if err != nil {
			t.Fatalf("valid item: %v", err)
		}
		if len(draft.Items) != 1 || draft.Items[0].UnitPrice != 100000 || draft.Items[0].Quantity != 2 {
			t.Fatalf("custom item mismatch: %+v", draft.Items)
		}
	})
}

func TestBudgetService_Save(t *testing.T) {
	t.Run("requires a client name", func(t *testing.T) {
		env := newTestEnv(t)
		if _, err := env.budgets.AddProduct(ctx(), "zen-ergo"); err != nil {
			t.Fatalf("add: %v", err)
		}
		if _, err := env.budgets.Save(ctx()); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("resolves client link ignoring case and accents", func(t *testing.T) {
		env := newTestEnv(t)
		client, err := env.clients.Save(ctx(), SaveClientRequest{Name: "José Pérez"})
		if err != nil {
			t.Fatalf("client save: %v", err)
		}

		if _, err := env.budgets.AddProduct(ctx(), "zen-ergo"); err != nil {
			t.Fatalf("add: %v", err)
		}
		name := "jose perez"
		env.budgets.UpdateDraft(ctx(), UpdateDraftRequest{ClientName: &name})

		saved, err := env.budgets.Save(ctx())
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		if saved.ClientID == nil || *saved.ClientID != client.ID {
			t.Fatalf("client link not resolved: %+v", saved.ClientID)
		}
		if saved.Status != model.BudgetStatusDraft {
			t.Fatalf("status: got %q, want %q", saved.Status, model.BudgetStatusDraft)
		}
	})

	t.Run("advances the document number and resets the draft", func(t *testing.T) {
		env := newTestEnv(t)
		if env.budgets.DocumentNumber(ctx()) != "0001" {
			t.Fatalf("initial number: got %q", env.budgets.DocumentNumber(ctx()))
		}

		if _, err := env.budgets.AddProduct(ctx(), "zen-ergo"); err != nil {
			t.Fatalf("add: %v", err)
		}
		name := "Cliente Uno"
		env.budgets.UpdateDraft(ctx(), UpdateDraftRequest{ClientName: &name})

		saved, err := env.budgets.Save(ctx())
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		if env.budgets.DocumentNumber(ctx()) != "0002" {
			t.Fatalf("number after save: got %q, want 0002", env.budgets.DocumentNumber(ctx()))
		}

		draft := env.budgets.Draft(ctx())
		if len(draft.Items) != 0 || draft.ClientName != "" || draft.ID == saved.ID {
			t.Fatalf("draft was not reset: %+v", draft)
		}

		stored, err := env.budgets.Get(ctx(), saved.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if !almostEqual(stored.Total, saved.Total) || stored.Total <= 0 {
			t.Fatalf("stored total mismatch: %v vs %v", stored.Total, saved.Total)
		}
	})
}

func seedBudget(t *testing.T, env *testEnv, id, clientName, date, status string, clientID *string) {
	t.Helper()
	err := env.budgetRepo.Upsert(model.Budget{
		ID:         id,
		ClientID:   clientID,
		ClientName: clientName,
		Date:       date,
		Status:     status,
		Items:      []model.LineItem{{ProductID: "p", Name: "Mesa", UnitPrice: 100, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("seed %s: %v", id, err)
	}
}

func TestBudgetService_List(t *testing.T) {
	env := newTestEnv(t)
	cli := "cli_1"
	seedBudget(t, env, "b1", "Acme SRL", "2026-01-10", model.BudgetStatusApproved, &cli)
	seedBudget(t, env, "b2", "José Pérez", "2026-02-01", model.BudgetStatusDraft, nil)
	seedBudget(t, env, "b3", "Muebles Río", "2026-03-15", model.BudgetStatusLost, nil)

	t.Run("sorts newest first", func(t *testing.T) {
		list, total, err := env.budgets.List(ctx(), BudgetFilter{})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if total != 3 || len(list) != 3 {
			t.Fatalf("expected 3 budgets, got %d/%d", len(list), total)
		}
		if list[0].ID != "b3" || list[2].ID != "b1" {
			t.Fatalf("wrong order: %s, %s, %s", list[0].ID, list[1].ID, list[2].ID)
		}
	})

	t.Run("text filter is accent insensitive", func(t *testing.T) {
		list, _, err := env.budgets.List(ctx(), BudgetFilter{Text: "jose"})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 1 || list[0].ID != "b2" {
			t.Fatalf("expected b2, got %+v", list)
		}
	})

	t.Run("client filter", func(t *testing.T) {
		list, _, err := env.budgets.List(ctx(), BudgetFilter{ClientID: "cli_1"})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 1 || list[0].ID != "b1" {
			t.Fatalf("expected b1, got %+v", list)
		}
	})

	t.Run("status filter", func(t *testing.T) {
		list, _, err := env.budgets.List(ctx(), BudgetFilter{Status: model.BudgetStatusLost})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 1 || list[0].ID != "b3" {
			t.Fatalf("expected b3, got %+v", list)
		}
	})

	t.Run("date range is inclusive", func(t *testing.T) {
		list, _, err := env.budgets.List(ctx(), BudgetFilter{DateFrom: "2026-02-01", DateTo: "2026-03-15"})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("expected 2 budgets, got %+v", list)
		}
	})

	t.Run("pagination window", func(t *testing.T) {
		list, total, err := env.budgets.List(ctx(), BudgetFilter{Page: 2, Limit: 2})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if total != 3 || len(list) != 1 || list[0].ID != "b1" {
			t.Fatalf("expected last page with b1, got total=%d %+v", total, list)
		}
	})
}

func TestBudgetService_Lifecycle(t *testing.T) {
	t.Run("duplicate resets status and date", func(t *testing.T) {
		env := newTestEnv(t)
		seedBudget(t, env, "b1", "Acme SRL", "2020-01-01", model.BudgetStatusApproved, nil)

		dup, err := env.budgets.Duplicate(ctx(), "b1")
		if err != nil {
			t.Fatalf("duplicate: %v", err)
		}
		if dup.ID == "b1" {
			t.Fatalf("duplicate kept the original id")
		}
		if dup.Status != model.BudgetStatusDraft {
			t.Fatalf("status: got %q, want %q", dup.Status, model.BudgetStatusDraft)
		}
		if dup.Date != time.Now().Format("2006-01-02") {
			t.Fatalf("date: got %q, want today", dup.Date)
		}
		if dup.ClientName != "Acme SRL" || len(dup.Items) != 1 {
			t.Fatalf("content not copied: %+v", dup)
		}
	})

	t.Run("set status rejects unknown values", func(t *testing.T) {
		env := newTestEnv(t)
		seedBudget(t, env, "b1", "Acme SRL", "2020-01-01", model.BudgetStatusDraft, nil)

		if _, err := env.budgets.SetStatus(ctx(), "b1", "Ganado"); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
		b, err := env.budgets.SetStatus(ctx(), "b1", model.BudgetStatusApproved)
		if err != nil {
			t.Fatalf("set status: %v", err)
		}
		if b.Status != model.BudgetStatusApproved {
			t.Fatalf("status: got %q", b.Status)
		}
	})

	t.Run("delete needs confirmation", func(t *testing.T) {
		env := newTestEnv(t)
		seedBudget(t, env, "b1", "Acme SRL", "2020-01-01", model.BudgetStatusDraft, nil)

		if err := env.budgets.Delete(ctx(), "b1", false); !errors.Is(err, ErrConfirmationRequired) {
			t.Fatalf("expected ErrConfirmationRequired, got %v", err)
		}
		if _, err := env.budgets.Get(ctx(), "b1"); err != nil {
			t.Fatalf("budget should survive unconfirmed delete: %v", err)
		}

		if err := env.budgets.Delete(ctx(), "b1", true); err != nil {
			t.Fatalf("confirmed delete: %v", err)
		}
		if _, err := env.budgets.Get(ctx(), "b1"); !errors.Is(err, ErrBudgetNotFound) {
			t.Fatalf("expected ErrBudgetNotFound, got %v", err)
		}
	})

	t.Run("delete unknown budget", func(t *testing.T) {
		env := newTestEnv(t)
		if err := env.budgets.Delete(ctx(), "ghost", true); !errors.Is(err, ErrBudgetNotFound) {
			t.Fatalf("expected ErrBudgetNotFound, got %v", err)
		}
	})
}

func TestBudgetService_TodayCount(t *testing.T) {
	env := newTestEnv(t)
	today := time.Now().Format("2006-01-02")
	seedBudget(t, env, "b1", "Acme SRL", today, model.BudgetStatusDraft, nil)
	seedBudget(t, env, "b2", "Acme SRL", "2020-01-01", model.BudgetStatusDraft, nil)

	if got := env.budgets.TodayCount(ctx()); got != 1 {
		t.Fatalf("today count: got %d, want 1", got)
	}
}

func TestBudgetService_ConditionsPreset(t *testing.T) {
	env := newTestEnv(t)

	for _, kind := range []string{"standard", "contado", "medida"} {
		p, err := env.budgets.ConditionsPreset(ctx(), kind)
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		if p.DeliveryTime == "" || p.Validity == "" || p.Conditions == "" {
			t.Fatalf("%s: incomplete preset %+v", kind, p)
		}
	}

	if _, err := env.budgets.ConditionsPreset(ctx(), "express"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestBudgetService_ApplyConfig(t *testing.T) {
	env := newTestEnv(t)

	cfg := model.DefaultConfig()
	cfg.DefaultShipping = 5000
	cfg.Currency = "USD"
	cfg.MaxDiscount = 10
	if _, err := env.config.Save(ctx(), cfg); err != nil {
		t.Fatalf("config save: %v", err)
	}

	draft := env.budgets.Draft(ctx())
	if draft.Shipping != 5000 || draft.Currency != "USD" {
		t.Fatalf("draft did not pick up new defaults: %+v", draft)
	}

	// The cap applies to totals immediately.
	if _, err := env.budgets.AddCustomItem(ctx(), "Mesa", 1, 1000); err != nil {
		t.Fatalf("add: %v", err)
	}
	disc := 50.0
	env.budgets.UpdateDraft(ctx(), UpdateDraftRequest{DiscountPercent: &disc})
	totals := env.budgets.Totals(ctx())
	if !almostEqual(totals.DiscountPercent, 10) {
		t.Fatalf("effective discount: got %v, want 10", totals.DiscountPercent)
	}
}
