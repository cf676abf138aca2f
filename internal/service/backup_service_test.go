package service

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"quotepanel/internal/model"
)

func seedBackupData(t *testing.T, env *testEnv) {
	t.Helper()
	if _, err := env.clients.Save(ctx(), SaveClientRequest{Name: "Acme SRL"}); err != nil {
		t.Fatalf("seed client: %v", err)
	}
	if _, err := env.catalog.Save(ctx(), SaveProductRequest{Name: "Mesa ratona", Price: 45000}); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	seedBudget(t, env, "b1", "Acme SRL", "2026-01-10", model.BudgetStatusDraft, nil)
}

func TestBackupService_ExportAll(t *testing.T) {
	env := newTestEnv(t)
	seedBackupData(t, env)

	backup, filename := env.backup.ExportAll(ctx())

	if backup.App != "Farber Panel Pro" || backup.Version != "1.0.0" || backup.GeneratedAt == "" {
		t.Fatalf("envelope header mismatch: %+v", backup)
	}
	if len(backup.Clients) != 1 || len(backup.Budgets) != 1 {
		t.Fatalf("sections mismatch: %d clients, %d budgets", len(backup.Clients), len(backup.Budgets))
	}
	if len(backup.Products.All) != 7 || len(backup.Products.CustomOnly) != 1 {
		t.Fatalf("products mismatch: %d all, %d custom", len(backup.Products.All), len(backup.Products.CustomOnly))
	}
	if !strings.HasPrefix(filename, "farber-backup-") || !strings.HasSuffix(filename, ".json") {
		t.Fatalf("filename: %q", filename)
	}
}

func TestBackupService_SectionExports(t *testing.T) {
	env := newTestEnv(t)
	seedBackupData(t, env)

	budgets, name := env.backup.ExportBudgets(ctx())
	if len(budgets) != 1 || !strings.HasPrefix(name, "farber-presupuestos-") {
		t.Fatalf("budgets export: %d items, %q", len(budgets), name)
	}
	clients, name := env.backup.ExportClients(ctx())
	if len(clients) != 1 || !strings.HasPrefix(name, "farber-clientes-") {
		t.Fatalf("clients export: %d items, %q", len(clients), name)
	}
	products, name := env.backup.ExportProducts(ctx())
	if len(products) != 7 || !strings.HasPrefix(name, "farber-productos-") {
		t.Fatalf("products export: %d items, %q", len(products), name)
	}
}

func TestBackupService_Import(t *testing.T) {
	t.Run("bare list is rejected without touching data", func(t *testing.T) {
		env := newTestEnv(t)
		seedBackupData(t, env)

		_, err := env.backup.Import(ctx(), []byte(`[{"id":"x"}]`), true)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
		if len(env.clientRepo.All()) != 1 {
			t.Fatalf("clients were modified")
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		env := newTestEnv(t)
		if _, err := env.backup.Import(ctx(), []byte(`{broken`), true); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("no recognized sections", func(t *testing.T) {
		env := newTestEnv(t)
		if _, err := env.backup.Import(ctx(), []byte(`{"foo": 1}`), true); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("needs confirmation", func(t *testing.T) {
		env := newTestEnv(t)
		seedBackupData(t, env)

		_, err := env.backup.Import(ctx(), []byte(`{"budgets": []}`), false)
		if !errors.Is(err, ErrConfirmationRequired) {
			t.Fatalf("expected ErrConfirmationRequired, got %v", err)
		}
		if len(env.budgetRepo.All()) != 1 {
			t.Fatalf("budgets were modified before confirmation")
		}
	})

	t.Run("partial import only replaces present sections", func(t *testing.T) {
		env := newTestEnv(t)
		seedBackupData(t, env)

		payload := `{"budgets": [{"id":"nb1","clientName":"Nuevo","date":"2026-05-01","items":[],"status":"Borrador"}]}`
		sum, err := env.backup.Import(ctx(), []byte(payload), true)
		if err != nil {
			t.Fatalf("import: %v", err)
		}
		if !sum.BudgetsApplied || sum.Budgets != 1 || sum.ClientsApplied || sum.ProductsApplied {
			t.Fatalf("summary mismatch: %+v", sum)
		}

		budgets := env.budgetRepo.All()
		if len(budgets) != 1 || budgets[0].ID != "nb1" {
			t.Fatalf("budgets not replaced: %+v", budgets)
		}
		if len(env.clientRepo.All()) != 1 || len(env.productRepo.All()) != 1 {
			t.Fatalf("untouched sections were modified")
		}
	})

	t.Run("full roundtrip", func(t *testing.T) {
		env := newTestEnv(t)
		seedBackupData(t, env)
		backup, _ := env.backup.ExportAll(ctx())
		raw, err := json.Marshal(backup)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		fresh := newTestEnv(t)
		sum, err := fresh.backup.Import(ctx(), raw, true)
		if err != nil {
			t.Fatalf("import: %v", err)
		}
		if !sum.ClientsApplied || !sum.BudgetsApplied || !sum.ProductsApplied {
			t.Fatalf("summary mismatch: %+v", sum)
		}
		if len(fresh.clientRepo.All()) != 1 || len(fresh.budgetRepo.All()) != 1 || len(fresh.productRepo.All()) != 1 {
			t.Fatalf("restore incomplete")
		}
		// The catalog view mixes built-ins back in after restore.
		if got := fresh.catalog.GetAll(ctx()); len(got) != 7 {
			t.Fatalf("catalog after restore: got %d, want 7", len(got))
		}
	})
}
