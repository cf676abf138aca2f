package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"quotepanel/internal/model"
	"quotepanel/internal/repository"
)

const (
	backupApp     = "Farber Panel Pro"
	backupVersion = "1.0.0"
)

// Backup is the full export envelope. The products section carries both
// the complete catalog view and the user-created subset; only the latter
// is restored on import, since built-ins ship with the binary.
type Backup struct {
	App         string         `json:"app"`
	Version     string         `json:"version"`
	GeneratedAt string         `json:"generatedAt"`
	Clients     []model.Client `json:"clients"`
	Products    BackupProducts `json:"products"`
	Budgets     []model.Budget `json:"budgets"`
}

type BackupProducts struct {
	All        []model.Product `json:"all"`
	CustomOnly []model.Product `json:"customOnly"`
}

// ImportSummary reports which sections a backup restore touched.
type ImportSummary struct {
	Clients         int  `json:"clients"`
	Budgets         int  `json:"budgets"`
	Products        int  `json:"products"`
	ClientsApplied  bool `json:"clientsApplied"`
	BudgetsApplied  bool `json:"budgetsApplied"`
	ProductsApplied bool `json:"productsApplied"`
}

type BackupService interface {
	ExportAll(ctx context.Context) (Backup, string)
	ExportBudgets(ctx context.Context) ([]model.Budget, string)
	ExportClients(ctx context.Context) ([]model.Client, string)
	ExportProducts(ctx context.Context) ([]model.Product, string)
	Import(ctx context.Context, raw []byte, confirm bool) (ImportSummary, error)
}

type backupService struct {
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
	budgetRepo  repository.BudgetRepository
	catalog     CatalogService
	hub         EventBroadcaster
}

func NewBackupService(
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	budgetRepo repository.BudgetRepository,
	catalog CatalogService,
	hub EventBroadcaster,
) BackupService {
	return &backupService{
		clientRepo:  clientRepo,
		productRepo: productRepo,
		budgetRepo:  budgetRepo,
		catalog:     catalog,
		hub:         hub,
	}
}

func (s *backupService) ExportAll(ctx context.Context) (Backup, string) {
	b := Backup{
		App:         backupApp,
		Version:     backupVersion,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Clients:     s.clientRepo.All(),
		Products: BackupProducts{
			All:        s.catalog.GetAll(ctx),
			CustomOnly: s.productRepo.All(),
		},
		Budgets: s.budgetRepo.All(),
	}
	return b, fmt.Sprintf("farber-backup-%s.json", todayStamp())
}

func (s *backupService) ExportBudgets(ctx context.Context) ([]model.Budget, string) {
	return s.budgetRepo.All(), fmt.Sprintf("farber-presupuestos-%s.json", todayStamp())
}

func (s *backupService) ExportClients(ctx context.Context) ([]model.Client, string) {
	return s.clientRepo.All(), fmt.Sprintf("farber-clientes-%s.json", todayStamp())
}

func (s *backupService) ExportProducts(ctx context.Context) ([]model.Product, string) {
	return s.catalog.GetAll(ctx), fmt.Sprintf("farber-productos-%s.json", todayStamp())
}

// backupEnvelope decodes each recognized section lazily; a section that
// is missing or not an array simply stays nil instead of failing the
// whole import.
type backupEnvelope struct {
	Clients  json.RawMessage `json:"clients"`
	Budgets  json.RawMessage `json:"budgets"`
	Products struct {
		CustomOnly json.RawMessage `json:"customOnly"`
	} `json:"products"`
}

// Import restores a full backup. Section exports (bare JSON lists) are
// rejected without touching stored data; only sections present in the
// envelope are replaced.
func (s *backupService) Import(ctx context.Context, raw []byte, confirm bool) (ImportSummary, error) {
	var sum ImportSummary

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return sum, fmt.Errorf("el archivo no contiene un JSON válido: %w", ErrValidation)
	}
	if trimmed[0] == '[' {
		return sum, fmt.Errorf("este archivo parece ser una lista simple, usá el backup completo: %w", ErrValidation)
	}

	var env backupEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return sum, fmt.Errorf("el archivo no contiene un JSON válido: %w", ErrValidation)
	}

	var clients []model.Client
	if env.Clients != nil && json.Unmarshal(env.Clients, &clients) == nil && clients != nil {
		sum.ClientsApplied = true
		sum.Clients = len(clients)
	}
	var budgets []model.Budget
	if env.Budgets != nil && json.Unmarshal(env.Budgets, &budgets) == nil && budgets != nil {
		sum.BudgetsApplied = true
		sum.Budgets = len(budgets)
	}
	var products []model.Product
	if env.Products.CustomOnly != nil && json.Unmarshal(env.Products.CustomOnly, &products) == nil && products != nil {
		sum.ProductsApplied = true
		sum.Products = len(products)
	}

	if !sum.ClientsApplied && !sum.BudgetsApplied && !sum.ProductsApplied {
		return ImportSummary{}, fmt.Errorf("no se encontraron secciones reconocidas en el backup (clients, budgets, products.customOnly): %w", ErrValidation)
	}

	if !confirm {
		return ImportSummary{}, fmt.Errorf("esta acción reemplaza los datos locales de clientes, presupuestos y productos creados por vos: %w", ErrConfirmationRequired)
	}

	if sum.ClientsApplied {
		if err := s.clientRepo.Replace(clients); err != nil {
			return ImportSummary{}, fmt.Errorf("failed to restore clients: %w", err)
		}
	}
	if sum.BudgetsApplied {
		if err := s.budgetRepo.Replace(budgets); err != nil {
			return ImportSummary{}, fmt.Errorf("failed to restore budgets: %w", err)
		}
	}
	if sum.ProductsApplied {
		if err := s.productRepo.Replace(products); err != nil {
			return ImportSummary{}, fmt.Errorf("failed to restore products: %w", err)
		}
	}

	if s.hub != nil {
		s.hub.BroadcastEvent("backup.imported", sum)
	}
	return sum, nil
}

func todayStamp() string {
	return time.Now().Format("20060102")
}
