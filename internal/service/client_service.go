package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quotepanel/internal/model"
	"quotepanel/internal/repository"
	"quotepanel/pkg/textutil"

	"github.com/google/uuid"
)

// ClientWithStats is a catalog row plus how many saved quotes reference
// the client.
type ClientWithStats struct {
	model.Client
	BudgetsCount int `json:"budgetsCount"`
}

// SaveClientRequest creates or updates a client. An empty ID means create.
type SaveClientRequest struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	TaxID   string `json:"taxId"`
	Notes   string `json:"notes"`
}

type ClientService interface {
	GetAll(ctx context.Context) []ClientWithStats
	GetByID(ctx context.Context, id string) (model.Client, error)
	Search(ctx context.Context, text string) []ClientWithStats
	Save(ctx context.Context, req SaveClientRequest) (model.Client, error)
	Delete(ctx context.Context, id string, confirm bool) error
	ResolveByName(ctx context.Context, name string) (model.Client, bool)
}

type clientService struct {
	clientRepo repository.ClientRepository
	budgetRepo repository.BudgetRepository
	hub        EventBroadcaster
}

func NewClientService(clientRepo repository.ClientRepository, budgetRepo repository.BudgetRepository, hub EventBroadcaster) ClientService {
	return &clientService{clientRepo: clientRepo, budgetRepo: budgetRepo, hub: hub}
}

func (s *clientService) GetAll(ctx context.Context) []ClientWithStats {
	return s.withStats(s.clientRepo.All())
}

func (s *clientService) GetByID(ctx context.Context, id string) (model.Client, error) {
	c, ok := s.clientRepo.FindByID(id)
	if !ok {
		return model.Client{}, ErrClientNotFound
	}
	return c, nil
}

// Search matches the normalized concatenation of name, contact, email
// and phone, the same haystack the list screen filters on.
func (s *clientService) Search(ctx context.Context, text string) []ClientWithStats {
	all := s.GetAll(ctx)
	norm := textutil.Normalize(text)
	if norm == "" {
		return all
	}
	out := make([]ClientWithStats, 0, len(all))
	for _, c := range all {
		base := textutil.Normalize(fmt.Sprintf("%s %s %s %s", c.Name, c.Contact, c.Email, c.Phone))
		if strings.Contains(base, norm) {
			out = append(out, c)
		}
	}
	return out
}

func (s *clientService) Save(ctx context.Context, req SaveClientRequest) (model.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.Client{}, fmt.Errorf("el nombre del cliente es obligatorio: %w", ErrValidation)
	}

	c := model.Client{
		ID:        req.ID,
		Name:      name,
		Contact:   strings.TrimSpace(req.Contact),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		TaxID:     strings.TrimSpace(req.TaxID),
		Notes:     strings.TrimSpace(req.Notes),
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	if c.ID == "" {
		c.ID = "cli_" + uuid.NewString()
	} else if existing, ok := s.clientRepo.FindByID(c.ID); ok {
		c.CreatedAt = existing.CreatedAt
	}

	if err := s.clientRepo.Upsert(c); err != nil {
		return model.Client{}, fmt.Errorf("failed to save client: %w", err)
	}
	if s.hub != nil {
		s.hub.BroadcastEvent("client.saved", map[string]interface{}{"id": c.ID})
	}
	return c, nil
}

// Delete removes a client. When saved quotes reference it, the caller
// must confirm; confirmed deletion keeps each quote's client name but
// drops the link.
func (s *clientService) Delete(ctx context.Context, id string, confirm bool) error {
	if _, ok := s.clientRepo.FindByID(id); !ok {
		return ErrClientNotFound
	}

	refs := s.budgetCount(id)
	if !confirm {
		msg := "¿seguro que querés eliminar este cliente?"
		if refs > 0 {
			msg = "este cliente tiene presupuestos asociados. " +
				"Los presupuestos guardados conservarán el nombre, pero perderán el vínculo"
		}
		return fmt.Errorf("%s: %w", msg, ErrConfirmationRequired)
	}

	if refs > 0 {
		budgets := s.budgetRepo.All()
		changed := false
		for i := range budgets {
			if budgets[i].ClientID != nil && *budgets[i].ClientID == id {
				budgets[i].ClientID = nil
				changed = true
			}
		}
		if changed {
			if err := s.budgetRepo.Replace(budgets); err != nil {
				return fmt.Errorf("failed to unlink budgets: %w", err)
			}
		}
	}

	if _, err := s.clientRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if s.hub != nil {
		s.hub.BroadcastEvent("client.deleted", map[string]interface{}{"id": id})
	}
	return nil
}

// ResolveByName finds the client whose normalized name matches exactly.
func (s *clientService) ResolveByName(ctx context.Context, name string) (model.Client, bool) {
	if name == "" {
		return model.Client{}, false
	}
	norm := textutil.Normalize(name)
	for _, c := range s.clientRepo.All() {
		if textutil.Normalize(c.Name) == norm {
			return c, true
		}
	}
	return model.Client{}, false
}

func (s *clientService) withStats(clients []model.Client) []ClientWithStats {
	counts := map[string]int{}
	for _, b := range s.budgetRepo.All() {
		if b.ClientID != nil {
			counts[*b.ClientID]++
		}
	}
	out := make([]ClientWithStats, 0, len(clients))
	for _, c := range clients {
		out = append(out, ClientWithStats{Client: c, BudgetsCount: counts[c.ID]})
	}
	return out
}

func (s *clientService) budgetCount(clientID string) int {
	n := 0
	for _, b := range s.budgetRepo.All() {
		if b.ClientID != nil && *b.ClientID == clientID {
			n++
		}
	}
	return n
}
