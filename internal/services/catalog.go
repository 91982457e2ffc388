package services

import (
	"errors"

	"github.com/tastemaker/taste/internal/domain"
	"github.com/tastemaker/taste/internal/ports"
)

// CatalogService lists the persisted rule corpus.
type CatalogService struct {
	Repository ports.RuleRepository
}

// List returns every stored rule sorted by ID.
func (s *CatalogService) List() ([]domain.StoredRule, error) {
	if s.Repository == nil {
		return nil, errors.New("services.CatalogService dependencies not satisfied")
	}
	return s.Repository.List()
}
