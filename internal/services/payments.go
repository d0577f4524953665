package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/profast/parcel-api/internal/models"
	"github.com/profast/parcel-api/internal/repository"
	"github.com/profast/parcel-api/pkg/utils"
)

// Locker serialises work on a key across API instances.
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

// ErrLockHeld is returned by a Locker when another holder owns the key.
var ErrLockHeld = errors.New("lock is held by another request")

// Customer identifies who pays for a parcel.
type Customer struct {
	Name  string
	Email string
}

// RecordInput is what the client reports after confirming a card payment.
type RecordInput struct {
	ParcelID      string
	TransactionID string
	Customer      Customer
}

// PaymentService derives charges from stored parcels and records completed
// payments exactly once per parcel.
type PaymentService struct {
	parcels  repository.ParcelRepository
	payments repository.PaymentRepository
	gateway  PaymentGateway
	locker   Locker
	events   EventPublisher
	currency string
	lockTTL  time.Duration
}

func NewPaymentService(
	parcels repository.ParcelRepository,
	payments repository.PaymentRepository,
	gateway PaymentGateway,
	locker Locker,
	events EventPublisher,
	currency string,
	lockTTL time.Duration,
) *PaymentService {
	return &PaymentService{
		parcels:  parcels,
		payments: payments,
		gateway:  gateway,
		locker:   locker,
		events:   events,
		currency: currency,
		lockTTL:  lockTTL,
	}
}

// CreateIntent asks the gateway for a payment intent whose amount comes from
// the parcel's stored cost.
func (s *PaymentService) CreateIntent(ctx context.Context, parcelID string, customer Customer) (*PaymentIntent, error) {
	id, err := models.ParseID(parcelID)
	if err != nil {
		return nil, err
	}

	parcel, err := s.parcels.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if parcel.IsPaid() {
		return nil, models.ErrAlreadyPaid
	}

	if parcel.Cost > models.MaxParcelCost {
		return nil, fmt.Errorf("%w: cost %.2f exceeds the chargeable maximum", models.ErrNotPayable, parcel.Cost)
	}
	amount := utils.ToMinorUnits(parcel.Cost)
	if amount <= 0 {
		return nil, models.ErrNotPayable
	}

	return s.gateway.CreatePaymentIntent(ctx, IntentRequest{
		Amount:       amount,
		Currency:     s.currency,
		Description:  fmt.Sprintf("Parcel delivery: %s", parcel.Title),
		ReceiptEmail: customer.Email,
		Metadata: map[string]string{
			"parcelId":      parcel.ID,
			"parcelTitle":   parcel.Title,
			"customerEmail": customer.Email,
			"customerName":  customer.Name,
		},
	})
}

// Record stores the payment history entry and marks the parcel paid. The
// amount and currency are taken from the settled intent.
func (s *PaymentService) Record(ctx context.Context, in RecordInput) (*models.Payment, *models.Parcel, error) {
	id, err := models.ParseID(in.ParcelID)
	if err != nil {
		return nil, nil, err
	}

	release, err := s.locker.Lock(ctx, "payment:parcel:"+id, s.lockTTL)
	if err != nil {
		if errors.Is(err, ErrLockHeld) {
			return nil, nil, models.ErrPaymentInProgress
		}
		return nil, nil, fmt.Errorf("acquire payment lock: %w", err)
	}
	defer release()

	parcel, err := s.parcels.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if parcel.IsPaid() {
		return nil, nil, models.ErrAlreadyPaid
	}

	intent, err := s.gateway.GetPaymentIntent(ctx, in.TransactionID)
	if err != nil {
		return nil, nil, err
	}
	if intent.Status != models.PaymentStatusSucceeded {
		return nil, nil, fmt.Errorf("%w: status %s", models.ErrPaymentNotSettled, intent.Status)
	}
	if intent.Metadata["parcelId"] != id {
		return nil, nil, fmt.Errorf("%w: intent %s was not created for this parcel", models.ErrPaymentNotSettled, intent.ID)
	}
	if payer := intent.Metadata["customerEmail"]; payer != "" && payer != in.Customer.Email {
		return nil, nil, fmt.Errorf("%w: intent %s belongs to another customer", models.ErrForbidden, intent.ID)
	}

	payment := &models.Payment{
		ParcelID:      id,
		Amount:        utils.FromMinorUnits(intent.Amount),
		Currency:      intent.Currency,
		TransactionID: intent.ID,
		CustomerName:  in.Customer.Name,
		CustomerEmail: in.Customer.Email,
		Status:        models.PaymentStatusSucceeded,
	}

	paid, err := s.payments.Record(ctx, payment)
	if err != nil {
		return nil, nil, err
	}

	s.publish(ctx, WebSocketMessage{Type: EventParcelPaid, Data: payment})

	return payment, paid, nil
}

// List returns the caller's payment history; admins see every payment and may
// filter by email.
func (s *PaymentService) List(ctx context.Context, caller *models.User, email string) ([]models.Payment, error) {
	if !caller.IsAdmin() {
		email = caller.Email
	}
	return s.payments.List(ctx, email)
}

func (s *PaymentService) publish(ctx context.Context, msg WebSocketMessage) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, msg); err != nil {
		log.Printf("Failed to publish %s event: %v", msg.Type, err)
	}
}
