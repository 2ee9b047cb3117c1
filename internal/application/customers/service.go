package customers

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/backo/backend/internal/domain/order"
	"github.com/backo/backend/internal/domain/returns"
	"github.com/backo/backend/internal/domain/shared"
)

// Customer is the aggregated per-buyer view built from the store's orders
// and returns, keyed by email. It is computed on demand, never persisted.
type Customer struct {
	Name         string
	Email        string
	Phone        string
	TrustScore   int
	TotalOrders  int
	TotalReturns int
}

// Service aggregates customer profiles across orders and returns
type Service struct {
	orders  order.Repository
	returns returns.Repository
	logger  *zap.Logger
}

// NewService creates a new customer Service
func NewService(orders order.Repository, ret returns.Repository, logger *zap.Logger) *Service {
	return &Service{
		orders:  orders,
		returns: ret,
		logger:  logger,
	}
}

type accumulator struct {
	name         string
	email        string
	phone        string
	totalOrders  int
	totalReturns int
	orderAmounts []decimal.Decimal
}

// ListCustomers returns every known buyer for the store with an aggregated
// trust score, sorted by name
func (s *Service) ListCustomers(ctx context.Context, storeID uuid.UUID) ([]Customer, error) {
	orders, err := s.orders.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	rets, err := s.returns.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	byEmail := make(map[string]*accumulator)

	for _, o := range orders {
		email := strings.ToLower(strings.TrimSpace(o.Customer.Email))
		if email == "" {
			continue
		}
		acc, ok := byEmail[email]
		if !ok {
			acc = &accumulator{name: o.Customer.Name, email: email, phone: o.Customer.Phone}
			byEmail[email] = acc
		}
		acc.totalOrders++
		acc.orderAmounts = append(acc.orderAmounts, o.Amount)
	}

	for _, r := range rets {
		email := strings.ToLower(strings.TrimSpace(r.Customer.Email))
		if email == "" {
			continue
		}
		acc, ok := byEmail[email]
		if !ok {
			acc = &accumulator{name: r.Customer.Name, email: email, phone: r.Customer.Phone}
			byEmail[email] = acc
		}
		acc.totalReturns++
	}

	customers := make([]Customer, 0, len(byEmail))
	for _, acc := range byEmail {
		customers = append(customers, Customer{
			Name:         acc.name,
			Email:        acc.email,
			Phone:        acc.phone,
			TrustScore:   trustScore(acc),
			TotalOrders:  acc.totalOrders,
			TotalReturns: acc.totalReturns,
		})
	}

	sort.Slice(customers, func(i, j int) bool {
		return customers[i].Name < customers[j].Name
	})
	return customers, nil
}

// GetCustomer returns one aggregated buyer by email
func (s *Service) GetCustomer(ctx context.Context, storeID uuid.UUID, email string) (*Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.ErrInvalidInput
	}

	customers, err := s.ListCustomers(ctx, storeID)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].Email == email {
			return &customers[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

// trustScore rates a buyer 0-100: base 50, up to +30 for order count, up to
// -30 for return rate, up to +20 for average order value
func trustScore(acc *accumulator) int {
	score := 50.0

	orderBonus := float64(acc.totalOrders) * 2
	if orderBonus > 30 {
		orderBonus = 30
	}
	score += orderBonus

	var returnRate float64
	switch {
	case acc.totalOrders > 0:
		returnRate = float64(acc.totalReturns) / float64(acc.totalOrders) * 100
	case acc.totalReturns > 0:
		returnRate = 100
	}
	penalty := returnRate * 0.3
	if penalty > 30 {
		penalty = 30
	}
	score -= penalty

	var avg float64
	if len(acc.orderAmounts) > 0 {
		sum := decimal.Zero
		for _, amount := range acc.orderAmounts {
			sum = sum.Add(amount)
		}
		avg, _ = sum.Div(decimal.NewFromInt(int64(len(acc.orderAmounts)))).Float64()
	}
	valueBonus := avg / 100 * 2
	if valueBonus > 20 {
		valueBonus = 20
	}
	score += valueBonus

	rounded := int(score + 0.5)
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}
