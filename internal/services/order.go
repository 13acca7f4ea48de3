package services

import (
	"ticketbooth/internal/models"
)

// OrderRepository interface for order read operations
type OrderRepository interface {
	GetByID(id int) (*models.Order, error)
	GetByReference(reference string) (*models.Order, error)
	GetByUser(userID int) ([]*models.Order, error)
}

// OrderService handles order history lookups. Orders are created only by
// the booking service; nothing here mutates them.
type OrderService struct {
	orderRepo OrderRepository
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// GetUserOrders retrieves the given user's order history
func (s *OrderService) GetUserOrders(userID int) ([]*models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// GetOrderByReference looks up an order by reference, restricted to its owner
func (s *OrderService) GetOrderByReference(reference string, requestingUserID int) (*models.Order, error) {
	order, err := s.orderRepo.GetByReference(reference)
	if err != nil {
		return nil, err
	}
	if order.UserID != requestingUserID {
		return nil, models.ErrUnauthorized
	}
	return order, nil
}
