package services

import (
	"context"

	"waterbill-backend/internal/models"
	"waterbill-backend/internal/repositories"
)

type CustomerService struct {
	Repo *repositories.CustomerRepository
}

func NewCustomerService(repo *repositories.CustomerRepository) *CustomerService {
	return &CustomerService{Repo: repo}
}

func (s *CustomerService) List(ctx context.Context) ([]*models.Customer, error) {
	return s.Repo.List(ctx)
}

func (s *CustomerService) GetByID(ctx context.Context, id int) (*models.Customer, error) {
	return s.Repo.GetByID(ctx, id)
}
