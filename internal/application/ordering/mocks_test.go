package ordering

import (
	"context"

	"github.com/gestock/backend/internal/domain/catalog"
	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/domain/inventory"
	"github.com/gestock/backend/internal/domain/ordering"
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of ordering.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByNumber(ctx context.Context, number string) (*ordering.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[ordering.Order], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[ordering.Order]), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveWithLock(ctx context.Context, order *ordering.Order, expectedVersion int) error {
	args := m.Called(ctx, order, expectedVersion)
	return args.Error(0)
}

func (m *MockOrderRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context) (map[ordering.OrderStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[ordering.OrderStatus]int64), args.Error(1)
}

// MockHistoryRepository is a mock implementation of ordering.OrderHistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Append(ctx context.Context, entry *ordering.OrderHistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]ordering.OrderHistoryEntry, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ordering.OrderHistoryEntry), args.Error(1)
}

// MockStockRepository is a mock implementation of inventory.StockRepository
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Stock, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Stock), args.Error(1)
}

func (m *MockStockRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*inventory.Stock, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Stock), args.Error(1)
}

func (m *MockStockRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[inventory.Stock], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[inventory.Stock]), args.Error(1)
}

func (m *MockStockRepository) FindBelowThreshold(ctx context.Context) ([]inventory.Stock, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Stock), args.Error(1)
}

func (m *MockStockRepository) FindOutOfStock(ctx context.Context) ([]inventory.Stock, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Stock), args.Error(1)
}

func (m *MockStockRepository) Save(ctx context.Context, stock *inventory.Stock) error {
	args := m.Called(ctx, stock)
	return args.Error(0)
}

func (m *MockStockRepository) SaveWithLock(ctx context.Context, stock *inventory.Stock, expectedVersion int) error {
	args := m.Called(ctx, stock, expectedVersion)
	return args.Error(0)
}

// MockMovementRepository is a mock implementation of inventory.StockMovementRepository
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) Append(ctx context.Context, movement *inventory.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockMovementRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) (shared.Paginated[inventory.StockMovement], error) {
	args := m.Called(ctx, productID, filter)
	return args.Get(0).(shared.Paginated[inventory.StockMovement]), args.Error(1)
}

func (m *MockMovementRepository) FindByReference(ctx context.Context, reference string) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockMovementRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[inventory.StockMovement], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[inventory.StockMovement]), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[catalog.Product], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[catalog.Product]), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[identity.User], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[identity.User]), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindActiveCourier(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}
