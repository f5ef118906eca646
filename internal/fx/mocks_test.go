package fx

import (
	"context"

	"p2parb/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockRateClient struct{ mock.Mock }

func (m *MockRateClient) FetchRate(ctx context.Context, from string) (float64, error) {
	args := m.Called(ctx, from)
	v, _ := args.Get(0).(float64)
	return v, args.Error(1)
}

type MockRateRepository struct{ mock.Mock }

func (m *MockRateRepository) SaveRates(ctx context.Context, rates []domain.Rate) error {
	args := m.Called(ctx, rates)
	return args.Error(0)
}

func (m *MockRateRepository) LoadRates(ctx context.Context, reference string) ([]domain.Rate, error) {
	args := m.Called(ctx, reference)
	rates, _ := args.Get(0).([]domain.Rate)
	return rates, args.Error(1)
}
