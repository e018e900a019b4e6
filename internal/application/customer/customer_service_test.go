package customer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

func newCustomerService() (*CustomerService, *MockCustomerRepository, *MockAddressRepository) {
	customerRepo := new(MockCustomerRepository)
	addressRepo := new(MockAddressRepository)
	svc := NewCustomerService(customerRepo, addressRepo, nil, zap.NewNop())
	return svc, customerRepo, addressRepo
}

func validSaveAddressRequest() SaveAddressRequest {
	return SaveAddressRequest{
		RecipientName: "Jordan Smith",
		Phone:         "+1 555 123 4567",
		Line1:         "1 Main Street",
		City:          "Springfield",
		PostalCode:    "12345",
		Country:       "us",
	}
}

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates profile", func(t *testing.T) {
		svc, customerRepo, _ := newCustomerService()
		customerRepo.On("ExistsByEmail", ctx, "jordan@example.com").Return(false, nil)
		customerRepo.On("Save", ctx, mock.AnythingOfType("*customer.Customer")).Return(nil)

		resp, err := svc.Create(ctx, CreateCustomerRequest{
			Email:     "jordan@example.com",
			FirstName: "Jordan",
			LastName:  "Smith",
		})

		require.NoError(t, err)
		assert.Equal(t, "jordan@example.com", resp.Email)
		customerRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc, customerRepo, _ := newCustomerService()
		customerRepo.On("ExistsByEmail", ctx, "jordan@example.com").Return(true, nil)

		_, err := svc.Create(ctx, CreateCustomerRequest{
			Email:     "jordan@example.com",
			FirstName: "Jordan",
			LastName:  "Smith",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
	})
}

func TestCustomerService_AddAddress(t *testing.T) {
	ctx := context.Background()

	existing := func(t *testing.T) *customer.Customer {
		c, err := customer.NewCustomer("jordan@example.com", "Jordan", "Smith")
		require.NoError(t, err)
		return c
	}

	t.Run("saves a valid address", func(t *testing.T) {
		svc, customerRepo, addressRepo := newCustomerService()
		c := existing(t)
		customerRepo.On("FindByID", ctx, c.ID).Return(c, nil)
		addressRepo.On("Save", ctx, mock.AnythingOfType("*customer.Address")).Return(nil)

		resp, err := svc.AddAddress(ctx, c.ID, validSaveAddressRequest())

		require.NoError(t, err)
		assert.Equal(t, "Jordan Smith", resp.RecipientName)
		assert.Equal(t, "US", resp.Country)
		addressRepo.AssertExpectations(t)
	})

	t.Run("default address clears previous default", func(t *testing.T) {
		svc, customerRepo, addressRepo := newCustomerService()
		c := existing(t)
		customerRepo.On("FindByID", ctx, c.ID).Return(c, nil)
		addressRepo.On("ClearDefaultForCustomer", ctx, c.ID).Return(nil)
		addressRepo.On("Save", ctx, mock.AnythingOfType("*customer.Address")).Return(nil)

		req := validSaveAddressRequest()
		req.IsDefault = true
		resp, err := svc.AddAddress(ctx, c.ID, req)

		require.NoError(t, err)
		assert.True(t, resp.IsDefault)
		addressRepo.AssertExpectations(t)
	})

	t.Run("rejects malformed postal code before touching storage", func(t *testing.T) {
		svc, _, _ := newCustomerService()

		req := validSaveAddressRequest()
		req.PostalCode = "!!"
		_, err := svc.AddAddress(ctx, uuid.New(), req)

		require.Error(t, err)
		var validationErr *shared.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "postal_code")
	})

	t.Run("rejects too-short phone", func(t *testing.T) {
		svc, _, _ := newCustomerService()

		req := validSaveAddressRequest()
		req.Phone = "555"
		_, err := svc.AddAddress(ctx, uuid.New(), req)

		require.Error(t, err)
		var validationErr *shared.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "phone")
	})

	t.Run("empty phone is allowed", func(t *testing.T) {
		svc, customerRepo, addressRepo := newCustomerService()
		c := existing(t)
		customerRepo.On("FindByID", ctx, c.ID).Return(c, nil)
		addressRepo.On("Save", ctx, mock.AnythingOfType("*customer.Address")).Return(nil)

		req := validSaveAddressRequest()
		req.Phone = ""
		_, err := svc.AddAddress(ctx, c.ID, req)

		require.NoError(t, err)
	})
}

func TestCustomerService_UpdateAddress(t *testing.T) {
	ctx := context.Background()

	t.Run("address of another customer is not found", func(t *testing.T) {
		svc, _, addressRepo := newCustomerService()

		c, err := customer.NewCustomer("jordan@example.com", "Jordan", "Smith")
		require.NoError(t, err)
		location, err := valueobject.NewAddress("9 Elm Road", "Shelbyville", "54321", "US")
		require.NoError(t, err)
		addr, err := customer.NewAddress(uuid.New(), "Someone Else", location)
		require.NoError(t, err)
		addressRepo.On("FindByID", ctx, addr.ID).Return(addr, nil)

		_, err = svc.UpdateAddress(ctx, c.ID, addr.ID, validSaveAddressRequest())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
