package database

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/plantnet/plantnet-server/models"
)

// MemoryStore is an in-process Store used by tests and by the memory store
// driver. It follows the same semantics as MongoStore, including the
// orders-to-plants join dropping orders whose plant is missing.
type MemoryStore struct {
	mu     sync.RWMutex
	users  []models.User
	plants []models.Plant
	orders []models.Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) RegisterUser(_ context.Context, user models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.userIndex(user.Email); i >= 0 {
		existing := m.users[i]
		return &existing, nil
	}
	stored := models.User{
		ID:        primitive.NewObjectID(),
		Email:     user.Email,
		Name:      user.Name,
		Image:     user.Image,
		Role:      models.RoleCustomer,
		Status:    models.UserStatusNone,
		Timestamp: user.Timestamp,
	}
	m.users = append(m.users, stored)
	return &stored, nil
}

func (m *MemoryStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.userIndex(email)
	if i < 0 {
		return nil, ErrNotFound
	}
	user := m.users[i]
	return &user, nil
}

func (m *MemoryStore) ListUsersExcept(_ context.Context, email string) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := []models.User{}
	for _, u := range m.users {
		if u.Email != email {
			users = append(users, u)
		}
	}
	return users, nil
}

func (m *MemoryStore) SetUserStatus(_ context.Context, email string, status models.UserStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.userIndex(email)
	if i < 0 {
		return ErrNotFound
	}
	m.users[i].Status = status
	return nil
}

func (m *MemoryStore) SetUserRole(_ context.Context, email string, role models.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.userIndex(email)
	if i < 0 {
		return ErrNotFound
	}
	m.users[i].Role = role
	m.users[i].Status = models.UserStatusVerified
	return nil
}

func (m *MemoryStore) CountUsers(context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.users)), nil
}

func (m *MemoryStore) InsertPlant(_ context.Context, plant *models.Plant) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if plant.ID.IsZero() {
		plant.ID = primitive.NewObjectID()
	}
	m.plants = append(m.plants, *plant)
	return nil
}

func (m *MemoryStore) ListPlants(context.Context) ([]models.Plant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]models.Plant{}, m.plants...), nil
}

func (m *MemoryStore) ListPlantsBySeller(_ context.Context, sellerEmail string) ([]models.Plant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plants := []models.Plant{}
	for _, p := range m.plants {
		if p.Seller.Email == sellerEmail {
			plants = append(plants, p)
		}
	}
	return plants, nil
}

func (m *MemoryStore) FindPlant(_ context.Context, id primitive.ObjectID) (*models.Plant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.plantIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	plant := m.plants[i]
	return &plant, nil
}

func (m *MemoryStore) DeletePlant(_ context.Context, id primitive.ObjectID, sellerEmail string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.plantIndex(id)
	if i < 0 || m.plants[i].Seller.Email != sellerEmail {
		return ErrNotFound
	}
	m.plants = append(m.plants[:i], m.plants[i+1:]...)
	return nil
}

func (m *MemoryStore) AdjustPlantQuantity(_ context.Context, id primitive.ObjectID, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.plantIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	m.plants[i].Quantity += delta
	return nil
}

func (m *MemoryStore) CountPlants(context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.plants)), nil
}

func (m *MemoryStore) InsertOrder(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	m.orders = append(m.orders, *order)
	return nil
}

func (m *MemoryStore) FindOrder(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.orderIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	order := m.orders[i]
	return &order, nil
}

func (m *MemoryStore) ListCustomerOrders(_ context.Context, customerEmail string) ([]models.OrderView, error) {
	return m.joinedOrders(func(o models.Order) bool { return o.Customer.Email == customerEmail }), nil
}

func (m *MemoryStore) ListSellerOrders(_ context.Context, sellerEmail string) ([]models.OrderView, error) {
	return m.joinedOrders(func(o models.Order) bool { return o.Seller == sellerEmail }), nil
}

func (m *MemoryStore) UpdateOrderStatus(_ context.Context, id primitive.ObjectID, status models.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.orderIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	m.orders[i].Status = status
	return nil
}

func (m *MemoryStore) CancelOrder(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.orderIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	if m.orders[i].Status == models.OrderStatusDelivered {
		return ErrOrderDelivered
	}
	m.orders = append(m.orders[:i], m.orders[i+1:]...)
	return nil
}

func (m *MemoryStore) OrderTotals(context.Context) (int64, float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var revenue float64
	for _, o := range m.orders {
		revenue += o.Price
	}
	return int64(len(m.orders)), revenue, nil
}

func (m *MemoryStore) joinedOrders(match func(models.Order) bool) []models.OrderView {
	m.mu.RLock()
	defer m.mu.RUnlock()

	views := []models.OrderView{}
	for _, o := range m.orders {
		if !match(o) {
			continue
		}
		plantID, err := primitive.ObjectIDFromHex(o.PlantID)
		if err != nil {
			continue
		}
		i := m.plantIndex(plantID)
		if i < 0 {
			continue
		}
		p := m.plants[i]
		views = append(views, models.OrderView{Order: o, Name: p.Name, Image: p.Image, Category: p.Category})
	}
	return views
}

func (m *MemoryStore) userIndex(email string) int {
	for i := range m.users {
		if m.users[i].Email == email {
			return i
		}
	}
	return -1
}

func (m *MemoryStore) plantIndex(id primitive.ObjectID) int {
	for i := range m.plants {
		if m.plants[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *MemoryStore) orderIndex(id primitive.ObjectID) int {
	for i := range m.orders {
		if m.orders[i].ID == id {
			return i
		}
	}
	return -1
}
