package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/profast/parcel-api/internal/models"
	repomocks "github.com/profast/parcel-api/internal/repository/mocks"
	"github.com/profast/parcel-api/internal/services"
	"github.com/profast/parcel-api/internal/services/mocks"
)

const parcelID = "4f1c1bd6-9a0e-4a57-8a3f-0f6f1a2b3c4d"

type paymentFixture struct {
	parcels  *repomocks.ParcelRepository
	payments *repomocks.PaymentRepository
	gateway  *mocks.PaymentGateway
	locker   *mocks.Locker
	events   *mocks.EventPublisher
	service  *services.PaymentService
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	f := &paymentFixture{
		parcels:  repomocks.NewParcelRepository(t),
		payments: repomocks.NewPaymentRepository(t),
		gateway:  mocks.NewPaymentGateway(t),
		locker:   mocks.NewLocker(t),
		events:   mocks.NewEventPublisher(t),
	}
	f.service = services.NewPaymentService(f.parcels, f.payments, f.gateway, f.locker, f.events, "usd", 30*time.Second)
	return f
}

func (f *paymentFixture) expectLock() *bool {
	released := false
	f.locker.On("Lock", mock.Anything, "payment:parcel:"+parcelID, 30*time.Second).
		Return(func() { released = true }, nil).Once()
	return &released
}

func unpaidParcel(cost float64) *models.Parcel {
	return &models.Parcel{
		ID:            parcelID,
		Title:         "Documents",
		ParcelType:    "document",
		SenderEmail:   "sender@example.com",
		Cost:          cost,
		PaymentStatus: models.PaymentStatusUnpaid,
	}
}

func TestCreateIntent_AmountComesFromStoredCost(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	f.parcels.On("FindByID", ctx, parcelID).Return(unpaidParcel(12.5), nil).Once()
	f.gateway.On("CreatePaymentIntent", ctx, mock.MatchedBy(func(req services.IntentRequest) bool {
		return req.Amount == 1250 &&
			req.Currency == "usd" &&
			req.Metadata["parcelId"] == parcelID &&
			req.ReceiptEmail == "payer@example.com"
	})).Return(&services.PaymentIntent{ID: "pi_1", ClientSecret: "pi_1_secret", Amount: 1250, Currency: "usd"}, nil).Once()

	intent, err := f.service.CreateIntent(ctx, parcelID, services.Customer{Name: "Payer", Email: "payer@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "pi_1_secret", intent.ClientSecret)
	assert.Equal(t, int64(1250), intent.Amount)
}

func TestCreateIntent_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid id", func(t *testing.T) {
		f := newPaymentFixture(t)
		_, err := f.service.CreateIntent(ctx, "not-an-id", services.Customer{})
		assert.ErrorIs(t, err, models.ErrInvalidID)
	})

	t.Run("unknown parcel", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.parcels.On("FindByID", ctx, parcelID).Return(nil, models.ErrNotFound).Once()

		_, err := f.service.CreateIntent(ctx, parcelID, services.Customer{})
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("already paid", func(t *testing.T) {
		f := newPaymentFixture(t)
		parcel := unpaidParcel(10)
		parcel.PaymentStatus = models.PaymentStatusPaid
		f.parcels.On("FindByID", ctx, parcelID).Return(parcel, nil).Once()

		_, err := f.service.CreateIntent(ctx, parcelID, services.Customer{})
		assert.ErrorIs(t, err, models.ErrAlreadyPaid)
	})

	t.Run("cost above chargeable maximum", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.parcels.On("FindByID", ctx, parcelID).Return(unpaidParcel(1e300), nil).Once()

		_, err := f.service.CreateIntent(ctx, parcelID, services.Customer{})
		assert.ErrorIs(t, err, models.ErrNotPayable)
		f.gateway.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything)
	})

	t.Run("zero cost", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.parcels.On("FindByID", ctx, parcelID).Return(unpaidParcel(0), nil).Once()

		_, err := f.service.CreateIntent(ctx, parcelID, services.Customer{})
		assert.ErrorIs(t, err, models.ErrNotPayable)
	})
}

func TestRecord_Succeeds(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	released := f.expectLock()

	f.parcels.On("FindByID", ctx, parcelID).Return(unpaidParcel(12.5), nil).Once()
	f.gateway.On("GetPaymentIntent", ctx, "pi_1").Return(&services.PaymentIntent{
		ID:       "pi_1",
		Amount:   1250,
		Currency: "usd",
		Status:   models.PaymentStatusSucceeded,
		Metadata: map[string]string{"parcelId": parcelID, "customerEmail": "payer@example.com"},
	}, nil).Once()

	paidAt := time.Now()
	txID := "pi_1"
	paid := unpaidParcel(12.5)
	paid.PaymentStatus = models.PaymentStatusPaid
	paid.TransactionID = &txID
	paid.PaidAt = &paidAt

	f.payments.On("Record", ctx, mock.MatchedBy(func(p *models.Payment) bool {
		return p.ParcelID == parcelID &&
			p.Amount == 12.5 &&
			p.TransactionID == "pi_1" &&
			p.CustomerEmail == "payer@example.com" &&
			p.Status == models.PaymentStatusSucceeded
	})).Return(paid, nil).Once()
	f.events.On("Publish", ctx, mock.MatchedBy(func(msg services.WebSocketMessage) bool {
		return msg.Type == services.EventParcelPaid
	})).Return(nil).Once()

	payment, parcel, err := f.service.Record(ctx, services.RecordInput{
		ParcelID:      parcelID,
		TransactionID: "pi_1",
		Customer:      services.Customer{Name: "Payer", Email: "payer@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, "usd", payment.Currency)
	assert.True(t, parcel.IsPaid())
	assert.True(t, *released)
}

func TestRecord_PublishFailureDoesNotFailPayment(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	f.expectLock()

	f.parcels.On("FindByID", ctx, parcelID).Return(unpaidParcel(5), nil).Once()
	f.gateway.On("GetPaymentIntent", ctx, "pi_1").Return(&services.PaymentIntent{
		ID:       "pi_1",
		Amount:   500,
		Status:   models.PaymentStatusSucceeded,
		Metadata: map[string]string{"parcelId": parcelID},
	}, nil).Once()
	f.payments.On("Record", ctx, mock.Anything).Return(unpaidParcel(5), nil).Once()
	f.events.On("Publish", ctx, mock.Anything).Return(errors.New("redis down")).Once()

	_, _, err := f.service.Record(ctx, services.RecordInput{ParcelID: parcelID, TransactionID: "pi_1"})
	assert.NoError(t, err)
}

func TestRecord_AlreadyPaidIsRejectedWithoutWriting(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	released := f.expectLock()

	parcel := unpaidParcel(5)
	parcel.PaymentStatus = models.PaymentStatusPaid
	f.parcels.On("FindByID", ctx, parcelID).Return(parcel, nil).Once()

	_, _, err := f.service.Record(ctx, services.RecordInput{ParcelID: parcelID, TransactionID: "pi_2"})
	assert.ErrorIs(t, err, models.ErrAlreadyPaid)
	assert.True(t, *released)
	f.payments.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestRecord_LockHeld(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	f.locker.On("Lock", mock.Anything, "payment:parcel:"+parcelID, 30*time.Second).
		Return(nil, services.ErrLockHeld).Once()

	_, _, err := f.service.Record(ctx, services.RecordInput{ParcelID: parcelID, TransactionID: "pi_1"})
	assert.ErrorIs(t, err, models.ErrPaymentInProgress)
}

func TestRecord_IntentMustBeSettledForThisParcel(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name   string
		intent *services.PaymentIntent
	}{
		{
			name: "requires payment method",
			intent: &services.PaymentIntent{
				ID:       "pi_1",
				Status:   "requires_payment_method",
				Metadata: map[string]string{"parcelId": parcelID},
			},
		},
		{
			name: "other parcel",
			intent: &services.PaymentIntent{
				ID:       "pi_1",
				Status:   models.PaymentStatusSucceeded,
				Metadata: map[string]string{"parcelId": "0b9f2a8e-0000-4000-8000-000000000000"},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newPaymentFixture(t)
			f.expectLock()
			f.parcels.On("FindByID", ctx, parcelID).Return(unpaidParcel(5), nil).Once()
			f.gateway.On("GetPaymentIntent", ctx, "pi_1").Return(tc.intent, nil).Once()

			_, _, err := f.service.Record(ctx, services.RecordInput{ParcelID: parcelID, TransactionID: "pi_1"})
			assert.ErrorIs(t, err, models.ErrPaymentNotSettled)
		})
	}
}

func TestRecord_IntentOfAnotherCustomerIsForbidden(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	released := f.expectLock()

	f.parcels.On("FindByID", ctx, parcelID).Return(unpaidParcel(5), nil).Once()
	f.gateway.On("GetPaymentIntent", ctx, "pi_1").Return(&services.PaymentIntent{
		ID:     "pi_1",
		Amount: 500,
		Status: models.PaymentStatusSucceeded,
		Metadata: map[string]string{
			"parcelId":      parcelID,
			"customerEmail": "payer@example.com",
		},
	}, nil).Once()

	_, _, err := f.service.Record(ctx, services.RecordInput{
		ParcelID:      parcelID,
		TransactionID: "pi_1",
		Customer:      services.Customer{Email: "someone@example.com"},
	})
	assert.ErrorIs(t, err, models.ErrForbidden)
	assert.True(t, *released)
	f.payments.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestList_ScopedByStoredRole(t *testing.T) {
	ctx := context.Background()

	t.Run("user only sees own payments", func(t *testing.T) {
		f := newPaymentFixture(t)
		caller := &models.User{Email: "user@example.com", Role: models.RoleUser}
		f.payments.On("List", ctx, "user@example.com").Return([]models.Payment{}, nil).Once()

		_, err := f.service.List(ctx, caller, "other@example.com")
		assert.NoError(t, err)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		f := newPaymentFixture(t)
		caller := &models.User{Email: "admin@example.com", Role: models.RoleAdmin}
		f.payments.On("List", ctx, "").Return([]models.Payment{{ID: "a"}, {ID: "b"}}, nil).Once()

		payments, err := f.service.List(ctx, caller, "")
		require.NoError(t, err)
		assert.Len(t, payments, 2)
	})

	t.Run("admin may filter by email", func(t *testing.T) {
		f := newPaymentFixture(t)
		caller := &models.User{Email: "admin@example.com", Role: models.RoleAdmin}
		f.payments.On("List", ctx, "other@example.com").Return([]models.Payment{}, nil).Once()

		_, err := f.service.List(ctx, caller, "other@example.com")
		assert.NoError(t, err)
	})
}
