package devapi

import (
	"fmt"

	"qrmenu/internal/model"
)

// SeedPassword is the password of every seeded account.
const SeedPassword = "password"

// Seed adds one account per role and a few orders.
func (s *Server) Seed() error {
	accounts := []struct {
		reg  model.Registration
		role model.Role
	}{
		{model.Registration{FirstName: "Ada", LastName: "Admin", Email: "admin@qrmenu.local"}, model.RoleAdmin},
		{model.Registration{FirstName: "Ursula", LastName: "Owner", Email: "owner@qrmenu.local"}, model.RoleUser},
		{model.Registration{FirstName: "Walt", LastName: "Waiter", Email: "waiter@qrmenu.local"}, model.RoleWaiter},
	}
	for _, a := range accounts {
		a.reg.Password = SeedPassword
		if err := s.AddAccount(a.reg, a.role); err != nil {
			return fmt.Errorf("seed account %s: %w", a.reg.Email, err)
		}
	}

	table := func(n int) *int { return &n }
	s.AddOrder(model.Order{
		CustomerInfo: model.CustomerInfo{Name: "Jane Doe", TableNumber: table(4), SpecialRequests: "No onions"},
		Items:        []model.OrderItem{{Name: "Soup", Price: 5.00, Quantity: 2}},
		TotalAmount:  10.00,
	})
	s.AddOrder(model.Order{
		CustomerInfo: model.CustomerInfo{Name: "John Roe", Email: "john@example.com", TableNumber: table(2)},
		Items: []model.OrderItem{
			{Name: "Burger", Price: 12.50, Quantity: 1},
			{Name: "Lemonade", Price: 3.00, Quantity: 2},
		},
		TotalAmount: 18.50,
		Status:      model.StatusCompleted,
	})
	return nil
}
