package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/profast/parcel-api/internal/models"
)

// ParcelRepository stores parcels.
type ParcelRepository interface {
	Create(ctx context.Context, parcel *models.Parcel) error
	FindByID(ctx context.Context, id string) (*models.Parcel, error)
	ListBySender(ctx context.Context, email string) ([]models.Parcel, error)
	Delete(ctx context.Context, id string) error
}

// UserRepository stores user accounts keyed by email.
type UserRepository interface {
	// UpsertOnLogin creates the user on first sign-in and refreshes the
	// profile otherwise. created reports which branch was taken.
	UpsertOnLogin(ctx context.Context, email, name, photoURL string) (user *models.User, created bool, err error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, email string, role models.Role) (*models.User, error)
}

// RiderRepository stores rider applications.
type RiderRepository interface {
	Apply(ctx context.Context, application *models.RiderApplication) error
	List(ctx context.Context, status models.ApplicationStatus) ([]models.RiderApplication, error)
	// Review sets the application status and the applicant's role in one
	// transaction.
	Review(ctx context.Context, id string, status models.ApplicationStatus) (*models.RiderApplication, error)
}

// PaymentRepository stores the append-only payment history.
type PaymentRepository interface {
	// Record inserts the payment and marks its parcel paid in one
	// transaction. It fails with models.ErrAlreadyPaid if the parcel was
	// paid before.
	Record(ctx context.Context, payment *models.Payment) (*models.Parcel, error)
	List(ctx context.Context, customerEmail string) ([]models.Payment, error)
}

// Store bundles the repositories backed by one database handle.
type Store struct {
	Parcels  ParcelRepository
	Users    UserRepository
	Riders   RiderRepository
	Payments PaymentRepository
}

func NewStore(db *gorm.DB, retry *Retrier) *Store {
	return &Store{
		Parcels:  NewParcelRepository(db, retry),
		Users:    NewUserRepository(db, retry),
		Riders:   NewRiderRepository(db, retry),
		Payments: NewPaymentRepository(db, retry),
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrNotFound
	}
	return err
}
