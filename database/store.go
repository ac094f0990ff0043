package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/plantnet/plantnet-server/models"
)

// QueryTimeout bounds every store call made on behalf of a request.
const QueryTimeout = 10 * time.Second

var (
	ErrNotFound       = errors.New("record not found")
	ErrOrderDelivered = errors.New("order already delivered")
)

type UserRepository interface {
	// RegisterUser inserts user unless a record with the same email exists,
	// and returns whichever record is stored.
	RegisterUser(ctx context.Context, user models.User) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsersExcept(ctx context.Context, email string) ([]models.User, error)
	SetUserStatus(ctx context.Context, email string, status models.UserStatus) error
	// SetUserRole sets the role and marks the user Verified in one update.
	SetUserRole(ctx context.Context, email string, role models.Role) error
	CountUsers(ctx context.Context) (int64, error)
}

type PlantRepository interface {
	InsertPlant(ctx context.Context, plant *models.Plant) error
	ListPlants(ctx context.Context) ([]models.Plant, error)
	ListPlantsBySeller(ctx context.Context, sellerEmail string) ([]models.Plant, error)
	FindPlant(ctx context.Context, id primitive.ObjectID) (*models.Plant, error)
	DeletePlant(ctx context.Context, id primitive.ObjectID, sellerEmail string) error
	// AdjustPlantQuantity adds delta (which may be negative) to the stock.
	AdjustPlantQuantity(ctx context.Context, id primitive.ObjectID, delta int) error
	CountPlants(ctx context.Context) (int64, error)
}

type OrderRepository interface {
	InsertOrder(ctx context.Context, order *models.Order) error
	FindOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	ListCustomerOrders(ctx context.Context, customerEmail string) ([]models.OrderView, error)
	ListSellerOrders(ctx context.Context, sellerEmail string) ([]models.OrderView, error)
	UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error
	// CancelOrder deletes the order unless it is Delivered, in which case
	// ErrOrderDelivered is returned and the order is kept.
	CancelOrder(ctx context.Context, id primitive.ObjectID) error
	OrderTotals(ctx context.Context) (count int64, revenue float64, err error)
}

// Store is the persistence surface the handlers depend on.
type Store interface {
	UserRepository
	PlantRepository
	OrderRepository
}
