package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"esn-planner/core/errors"
	"esn-planner/core/logger"
	"esn-planner/modules/consultant/entity"
	"esn-planner/modules/consultant/repository"
	notifService "esn-planner/modules/notification/service"
)

// ConsultantServiceInterface defines the service contract
type ConsultantServiceInterface interface {
	Load(ctx context.Context) *errors.AppError
	List() []entity.Consultant
	Filter(query string) []entity.Consultant
	GetByID(id int) (*entity.Consultant, *errors.AppError)
	Add(ctx context.Context, name, role string) (*entity.Consultant, *errors.AppError)
	ReplaceAll(ctx context.Context, consultants []entity.Consultant) *errors.AppError
}

// ConsultantService owns the roster in memory and mirrors every mutation to
// the repository. The in-memory list is authoritative: a failing write is
// logged and surfaced as an error toast but does not roll memory back.
type ConsultantService struct {
	mu          sync.RWMutex
	consultants []entity.Consultant

	repo     repository.ConsultantRepositoryInterface
	notifier notifService.Notifier
}

// NewConsultantService creates a new consultant service
func NewConsultantService(repo repository.ConsultantRepositoryInterface, notifier notifService.Notifier) ConsultantServiceInterface {
	return &ConsultantService{
		repo:     repo,
		notifier: notifier,
	}
}

// Load reads the roster at startup. A read failure leaves an empty roster and
// is reported, never fatal.
func (s *ConsultantService) Load(ctx context.Context) *errors.AppError {
	consultants, err := s.repo.LoadAll(ctx)
	if err != nil {
		logger.Error("ConsultantService:Load:Error", "error", err)
		s.notifier.Error(ctx, "Chargement", "Impossible de charger les consultants")
		return errors.NewAppError(errors.ErrPersistence, "Impossible de charger les consultants", err)
	}

	s.mu.Lock()
	s.consultants = consultants
	s.mu.Unlock()

	logger.Info("ConsultantService:Load:Done", "count", len(consultants))
	return nil
}

// List returns a copy of the roster.
func (s *ConsultantService) List() []entity.Consultant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Consultant, len(s.consultants))
	copy(out, s.consultants)
	return out
}

// Filter returns the consultants whose name or role contains the query,
// case-insensitively. The roster itself is untouched.
func (s *ConsultantService) Filter(query string) []entity.Consultant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Consultant, 0, len(s.consultants))
	for _, c := range s.consultants {
		if c.Matches(query) {
			out = append(out, c)
		}
	}
	return out
}

func (s *ConsultantService) GetByID(id int) (*entity.Consultant, *errors.AppError) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.consultants {
		if c.ID == id {
			consultant := c
			return &consultant, nil
		}
	}
	return nil, errors.NewAppError(errors.ErrNotFound, "Consultant introuvable", nil)
}

// Add creates a consultant with the next integer id. Blank name or role after
// trimming is rejected before any mutation.
func (s *ConsultantService) Add(ctx context.Context, name, role string) (*entity.Consultant, *errors.AppError) {
	name = strings.TrimSpace(name)
	role = strings.TrimSpace(role)
	if name == "" || role == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Le nom et le rôle sont obligatoires", nil)
	}

	s.mu.Lock()
	nextID := 1
	for _, c := range s.consultants {
		if c.ID >= nextID {
			nextID = c.ID + 1
		}
	}
	now := time.Now()
	consultant := entity.Consultant{
		ID:        nextID,
		Name:      name,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.consultants = append(s.consultants, consultant)
	snapshot := make([]entity.Consultant, len(s.consultants))
	copy(snapshot, s.consultants)
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	s.notifier.Success(ctx, "Consultant", "Consultant ajouté")
	return &consultant, nil
}

// ReplaceAll swaps the full roster, the only removal path.
func (s *ConsultantService) ReplaceAll(ctx context.Context, consultants []entity.Consultant) *errors.AppError {
	s.mu.Lock()
	s.consultants = make([]entity.Consultant, len(consultants))
	copy(s.consultants, consultants)
	snapshot := make([]entity.Consultant, len(consultants))
	copy(snapshot, consultants)
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return nil
}

func (s *ConsultantService) persist(ctx context.Context, snapshot []entity.Consultant) {
	if err := s.repo.SaveAll(ctx, snapshot); err != nil {
		logger.Error("ConsultantService:persist:Error", "error", err)
		s.notifier.Error(ctx, "Sauvegarde", "Erreur lors de la sauvegarde des consultants")
	}
}
