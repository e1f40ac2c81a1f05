package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobhub_backend/internal/models"
	"jobhub_backend/internal/repositories"
	"jobhub_backend/pkg/apperrors"
)

type CustomerService interface {
	FindAll(ctx context.Context) ([]models.Customer, error)
	FindOne(ctx context.Context, id primitive.ObjectID) (*models.Customer, error)
	Jobs(ctx context.Context, id primitive.ObjectID) ([]models.Job, error)
	BlockedJobs(ctx context.Context, id primitive.ObjectID) ([]models.Job, error)
}

type CustomerServiceImpl struct {
	customers repositories.CustomerRepository
	jobs      repositories.JobRepository
}

func NewCustomerService(customers repositories.CustomerRepository, jobs repositories.JobRepository) CustomerService {
	return &CustomerServiceImpl{customers: customers, jobs: jobs}
}

func (s *CustomerServiceImpl) FindAll(ctx context.Context) ([]models.Customer, error) {
	customers, err := s.customers.FindAll(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return customers, nil
}

func (s *CustomerServiceImpl) FindOne(ctx context.Context, id primitive.ObjectID) (*models.Customer, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, mapCustomerRepoError(err)
	}
	return customer, nil
}

func (s *CustomerServiceImpl) Jobs(ctx context.Context, id primitive.ObjectID) ([]models.Job, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, mapCustomerRepoError(err)
	}
	jobs, err := s.jobs.FindByIDs(ctx, customer.Jobs)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return jobs, nil
}

func (s *CustomerServiceImpl) BlockedJobs(ctx context.Context, id primitive.ObjectID) ([]models.Job, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, mapCustomerRepoError(err)
	}
	jobs, err := s.jobs.FindByIDs(ctx, customer.BlockedJobs)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return jobs, nil
}

func mapCustomerRepoError(err error) error {
	if errors.Is(err, repositories.ErrCustomerNotFound) {
		return apperrors.NotFound("customer", "customer not found")
	}
	return apperrors.DatabaseError(err)
}
