// Package repository provides hand-written testify doubles for the
// persistence interfaces.
package repository

import (
	"context"

	"gatekeeper/internal/domain/entity"
	domainrepo "gatekeeper/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a testify mock of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

// MockRepositoryFactory hands out fixed repository doubles, standing in for
// a transaction-bound factory.
type MockRepositoryFactory struct {
	UserRepository     domainrepo.UserRepository
	ActivityRepository domainrepo.ActivityRepository
}

func (f *MockRepositoryFactory) UserRepo() domainrepo.UserRepository {
	return f.UserRepository
}

func (f *MockRepositoryFactory) ActivityRepo() domainrepo.ActivityRepository {
	return f.ActivityRepository
}

// MockTransactionManager runs the callback directly against its factory with
// no real transaction, so tests observe every repository call as usual.
type MockTransactionManager struct {
	Factory domainrepo.RepositoryFactory
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(domainrepo.RepositoryFactory) error) error {
	return fn(m.Factory)
}

// MockActivityRepository is a testify mock of repository.ActivityRepository.
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *entity.Activity) error {
	args := m.Called(ctx, activity)

	return args.Error(0)
}

func (m *MockActivityRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Activity, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Activity), args.Error(1)
}
