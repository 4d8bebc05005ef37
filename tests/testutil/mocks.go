package testutil

import (
	"context"

	"github.com/dimitrije/pagbank-connect/internal/oauth"
	"github.com/stretchr/testify/mock"
)

// MockPagBankProvider mocks the PagBankProvider
type MockPagBankProvider struct {
	mock.Mock
}

func (m *MockPagBankProvider) GetConsentURL(state string) (string, error) {
	args := m.Called(state)
	return args.String(0), args.Error(1)
}

func (m *MockPagBankProvider) ExchangeCode(ctx context.Context, code string) (*oauth.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth.Token), args.Error(1)
}

func (m *MockPagBankProvider) GetAccount(ctx context.Context, accessToken, accountID string) (*oauth.AccountInfo, error) {
	args := m.Called(ctx, accessToken, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth.AccountInfo), args.Error(1)
}
