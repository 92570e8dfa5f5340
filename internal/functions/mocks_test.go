package functions

import (
	"github.com/stripe/stripe-go/v74"

	"stripe-payments/internal/model"
)

// mockStore records every write so tests can assert exactly which mappings
// were touched.
type mockStore struct {
	customers map[string]string

	getCustomerErr    error
	setCustomerErr    error
	deleteCustomerErr error
	setResponseErr    error
	setErrorErr       error

	setCustomerCalls    []string
	deleteCustomerCalls []string
	storedResponse      *stripe.Charge
	storedError         string
	responseWrites      int
	errorWrites         int
}

func newMockStore() *mockStore {
	return &mockStore{customers: map[string]string{}}
}

func (m *mockStore) Close() {}

func (m *mockStore) SetCustomerID(userID, customerID string) error {
	if m.setCustomerErr != nil {
		return m.setCustomerErr
	}
	m.customers[userID] = customerID
	m.setCustomerCalls = append(m.setCustomerCalls, userID+":"+customerID)
	return nil
}

func (m *mockStore) GetCustomerID(userID string) (string, error) {
	if m.getCustomerErr != nil {
		return "", m.getCustomerErr
	}
	return m.customers[userID], nil
}

func (m *mockStore) DeleteCustomerID(userID string) error {
	if m.deleteCustomerErr != nil {
		return m.deleteCustomerErr
	}
	delete(m.customers, userID)
	m.deleteCustomerCalls = append(m.deleteCustomerCalls, userID)
	return nil
}

func (m *mockStore) UpsertChargeAmount(userID, chargeID string, amount int64) (*model.ChargeRequest, error) {
	return &model.ChargeRequest{UserID: userID, ChargeID: chargeID, Amount: amount}, nil
}

func (m *mockStore) GetCharge(userID, chargeID string) (*model.ChargeRequest, error) {
	return nil, nil
}

func (m *mockStore) SetChargeResponse(userID, chargeID string, response *stripe.Charge) error {
	if m.setResponseErr != nil {
		return m.setResponseErr
	}
	m.responseWrites++
	m.storedResponse = response
	return nil
}

func (m *mockStore) SetChargeError(userID, chargeID, message string) error {
	if m.setErrorErr != nil {
		return m.setErrorErr
	}
	m.errorWrites++
	m.storedError = message
	return nil
}

// mockGateway simulates the payment provider.
type mockGateway struct {
	createCustomerErr error
	createChargeErr   error
	deleteCustomerErr error

	customerID string
	charge     *stripe.Charge

	createdCustomers []string
	deletedCustomers []string
	chargeCalls      []chargeCall
}

type chargeCall struct {
	amount         int64
	currency       string
	customerID     string
	idempotencyKey string
}

func (m *mockGateway) CreateCustomer(email string) (string, error) {
	if m.createCustomerErr != nil {
		return "", m.createCustomerErr
	}
	m.createdCustomers = append(m.createdCustomers, email)
	return m.customerID, nil
}

func (m *mockGateway) CreateCharge(amount int64, currency, customerID, idempotencyKey string) (*stripe.Charge, error) {
	m.chargeCalls = append(m.chargeCalls, chargeCall{amount, currency, customerID, idempotencyKey})
	if m.createChargeErr != nil {
		return nil, m.createChargeErr
	}
	return m.charge, nil
}

func (m *mockGateway) DeleteCustomer(customerID string) error {
	if m.deleteCustomerErr != nil {
		return m.deleteCustomerErr
	}
	m.deletedCustomers = append(m.deletedCustomers, customerID)
	return nil
}

// mockReporter captures forwarded failures.
type mockReporter struct {
	reported []error
	contexts []map[string]string
	err      error
}

func (m *mockReporter) Report(err error, context map[string]string) error {
	if m.err != nil {
		return m.err
	}
	m.reported = append(m.reported, err)
	m.contexts = append(m.contexts, context)
	return nil
}
