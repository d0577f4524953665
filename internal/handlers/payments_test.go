package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/profast/parcel-api/internal/models"
	"github.com/profast/parcel-api/internal/services"
)

func (e *testEnv) expectLock() {
	e.locker.On("Lock", mock.Anything, "payment:parcel:"+parcelID, time.Minute).Return(func() {}, nil).Once()
}

func TestCreatePaymentIntent_UsesStoredCost(t *testing.T) {
	env := newTestEnv(t)
	env.parcels.On("FindByID", mock.Anything, parcelID).Return(storedParcel(userEmail), nil).Once()
	env.gateway.On("CreatePaymentIntent", mock.Anything, mock.MatchedBy(func(req services.IntentRequest) bool {
		return req.Amount == 1250 && req.Metadata["customerEmail"] == userEmail
	})).Return(&services.PaymentIntent{
		ID:           "pi_1",
		ClientSecret: "pi_1_secret",
		Amount:       1250,
		Currency:     "usd",
	}, nil).Once()

	w := env.do(t, http.MethodPost, "/create-payment-intent", userEmail, map[string]interface{}{
		"parcelId":     parcelID,
		"amount":       1,
		"cost":         0.01,
		"customerName": "User",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var intent map[string]interface{}
	decodeData(t, w, &intent)
	assert.Equal(t, "pi_1_secret", intent["clientSecret"])
	assert.Equal(t, "pi_1", intent["paymentIntentId"])
	assert.EqualValues(t, 1250, intent["amount"])
}

func TestCreatePaymentIntent_Errors(t *testing.T) {
	t.Run("missing parcel id", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodPost, "/create-payment-intent", userEmail, map[string]interface{}{"amount": 100})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown parcel", func(t *testing.T) {
		env := newTestEnv(t)
		env.parcels.On("FindByID", mock.Anything, parcelID).Return(nil, models.ErrNotFound).Once()

		w := env.do(t, http.MethodPost, "/create-payment-intent", userEmail, map[string]interface{}{"parcelId": parcelID})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("already paid", func(t *testing.T) {
		env := newTestEnv(t)
		parcel := storedParcel(userEmail)
		parcel.PaymentStatus = models.PaymentStatusPaid
		env.parcels.On("FindByID", mock.Anything, parcelID).Return(parcel, nil).Once()

		w := env.do(t, http.MethodPost, "/create-payment-intent", userEmail, map[string]interface{}{"parcelId": parcelID})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestRecordPayment_AlreadyPaid(t *testing.T) {
	env := newTestEnv(t)
	env.expectLock()

	parcel := storedParcel(userEmail)
	parcel.PaymentStatus = models.PaymentStatusPaid
	env.parcels.On("FindByID", mock.Anything, parcelID).Return(parcel, nil).Once()

	w := env.do(t, http.MethodPost, "/payments", userEmail, map[string]interface{}{
		"parcelId":      parcelID,
		"transactionId": "pi_2",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	env.payments.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	env.gateway.AssertNotCalled(t, "GetPaymentIntent", mock.Anything, mock.Anything)
}

func TestRecordPayment_IntentOfAnotherCustomer(t *testing.T) {
	env := newTestEnv(t)
	env.expectLock()
	env.parcels.On("FindByID", mock.Anything, parcelID).Return(storedParcel(userEmail), nil).Once()
	env.gateway.On("GetPaymentIntent", mock.Anything, "pi_1").Return(&services.PaymentIntent{
		ID:       "pi_1",
		Amount:   1250,
		Status:   models.PaymentStatusSucceeded,
		Metadata: map[string]string{"parcelId": parcelID, "customerEmail": adminEmail},
	}, nil).Once()

	w := env.do(t, http.MethodPost, "/payments", userEmail, map[string]interface{}{
		"parcelId":      parcelID,
		"transactionId": "pi_1",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	env.payments.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestRecordPayment_FirstPayment(t *testing.T) {
	env := newTestEnv(t)
	env.expectLock()
	env.parcels.On("FindByID", mock.Anything, parcelID).Return(storedParcel(userEmail), nil).Once()
	env.gateway.On("GetPaymentIntent", mock.Anything, "pi_1").Return(&services.PaymentIntent{
		ID:       "pi_1",
		Amount:   1250,
		Currency: "usd",
		Status:   models.PaymentStatusSucceeded,
		Metadata: map[string]string{"parcelId": parcelID},
	}, nil).Once()

	now := time.Now().UTC()
	transactionID := "pi_1"
	paid := storedParcel(userEmail)
	paid.PaymentStatus = models.PaymentStatusPaid
	paid.TransactionID = &transactionID
	paid.PaidAt = &now

	env.payments.On("Record", mock.Anything, mock.MatchedBy(func(p *models.Payment) bool {
		return p.ParcelID == parcelID && p.Amount == 12.5 && p.CustomerEmail == userEmail
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Payment).ID = "0c0ffee0-0000-4000-8000-000000000001"
	}).Return(paid, nil).Once()
	// The receipt blocks until the response has been checked.
	release, sent := make(chan struct{}), make(chan struct{})
	env.notifier.On("PaymentReceipt", mock.Anything, mock.MatchedBy(func(p *models.Payment) bool {
		return p.TransactionID == "pi_1"
	})).Run(func(mock.Arguments) {
		<-release
		close(sent)
	}).Return(nil).Once()

	w := env.do(t, http.MethodPost, "/payments", userEmail, map[string]interface{}{
		"parcelId":      parcelID,
		"transactionId": "pi_1",
		"amount":        0.5,
		"customerEmail": "someone-else@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "0c0ffee0-0000-4000-8000-000000000001", decode(t, w).InsertedID)

	var data struct {
		Payment models.Payment         `json:"payment"`
		Parcel  map[string]interface{} `json:"parcel"`
	}
	decodeData(t, w, &data)
	assert.Equal(t, userEmail, data.Payment.CustomerEmail)
	assert.Equal(t, "paid", data.Parcel["paymentStatus"])
	assert.Equal(t, "pi_1", data.Parcel["transactionId"])
	assert.NotNil(t, data.Parcel["paidAt"])

	close(release)
	waitClosed(t, sent)
}

func TestRecordPayment_Validation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/payments", userEmail, map[string]interface{}{"parcelId": parcelID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/payments", userEmail, map[string]interface{}{"parcelId": "bad", "transactionId": "pi_1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecordPayment_UnsettledIntent(t *testing.T) {
	env := newTestEnv(t)
	env.expectLock()
	env.parcels.On("FindByID", mock.Anything, parcelID).Return(storedParcel(userEmail), nil).Once()
	env.gateway.On("GetPaymentIntent", mock.Anything, "pi_1").Return(&services.PaymentIntent{
		ID:       "pi_1",
		Status:   "requires_confirmation",
		Metadata: map[string]string{"parcelId": parcelID},
	}, nil).Once()

	w := env.do(t, http.MethodPost, "/payments", userEmail, map[string]interface{}{
		"parcelId":        parcelID,
		"paymentIntentId": "pi_1",
	})
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}

func TestListPayments_NonAdminIsScopedToOwnEmail(t *testing.T) {
	env := newTestEnv(t)
	env.asUser(userEmail)
	env.payments.On("List", mock.Anything, userEmail).
		Return([]models.Payment{{ID: "p1", CustomerEmail: userEmail}}, nil).Once()

	w := env.do(t, http.MethodGet, "/payments?email=victim@example.com&role=admin", userEmail, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var payments []models.Payment
	decodeData(t, w, &payments)
	require.Len(t, payments, 1)
	assert.Equal(t, userEmail, payments[0].CustomerEmail)
}

func TestListPayments_UnknownUserIsScopedToOwnEmail(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, models.ErrNotFound).Once()
	env.payments.On("List", mock.Anything, "new@example.com").Return([]models.Payment{}, nil).Once()

	w := env.do(t, http.MethodGet, "/payments?role=admin", "new@example.com", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListPayments_Admin(t *testing.T) {
	env := newTestEnv(t)
	env.asAdmin()
	env.payments.On("List", mock.Anything, "").Return([]models.Payment{{ID: "p1"}, {ID: "p2"}}, nil).Once()
	env.payments.On("List", mock.Anything, userEmail).Return([]models.Payment{{ID: "p1"}}, nil).Once()

	w := env.do(t, http.MethodGet, "/payments", adminEmail, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.Payment
	decodeData(t, w, &all)
	assert.Len(t, all, 2)

	w = env.do(t, http.MethodGet, "/payments?email=User@example.com", adminEmail, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var filtered []models.Payment
	decodeData(t, w, &filtered)
	assert.Len(t, filtered, 1)
}
