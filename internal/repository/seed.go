package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mesero-nana/api/internal/domain"
	"github.com/mesero-nana/api/internal/enum"
	"github.com/mesero-nana/api/internal/pricing"
)

// ExampleOrders returns a small demo set for fresh installations. Seeding
// only happens when explicitly enabled; a fresh store otherwise starts
// empty.
func ExampleOrders(now time.Time) []domain.Order {
	orders := []domain.Order{
		{
			ID:          uuid.New().String(),
			OrderNumber: "ORD-" + now.Format("20060102") + "-001",
			Source:      enum.OrderSourceWhatsApp,
			Status:      enum.OrderStatusPending,
			CustomerInfo: domain.CustomerInfo{
				Name:            "María González",
				Phone:           "+52 55 1234 5678",
				DeliveryType:    enum.DeliveryTypeDomicilio,
				DeliveryAddress: "Calle Reforma 123, Col. Centro",
			},
			Items: []domain.OrderItem{
				{
					ID:        uuid.New().String(),
					Name:      "Pizza Margherita",
					UnitPrice: decimal.RequireFromString("12.99"),
					Quantity:  1,
					Comments:  "Sin cebolla",
				},
				{
					ID:        uuid.New().String(),
					Name:      "Coca Cola",
					UnitPrice: decimal.RequireFromString("2.99"),
					Quantity:  2,
				},
			},
			CreatedAt:            now.Add(-45 * time.Minute),
			UpdatedAt:            now.Add(-45 * time.Minute),
			EstimatedTimeMinutes: 25,
			Notes:                "Cliente prefiere entrega después de las 7 PM",
		},
		{
			ID:          uuid.New().String(),
			OrderNumber: "ORD-" + now.Format("20060102") + "-002",
			Source:      enum.OrderSourcePhone,
			Status:      enum.OrderStatusCooking,
			CustomerInfo: domain.CustomerInfo{
				Name:         "Carlos Rodríguez",
				Phone:        "+52 55 9876 5432",
				DeliveryType: enum.DeliveryTypeMesa,
				TableNumber:  "5",
			},
			Items: []domain.OrderItem{
				{
					ID:        uuid.New().String(),
					Name:      "Pizza Pepperoni",
					UnitPrice: decimal.RequireFromString("14.99"),
					Quantity:  1,
					Modifiers: []domain.ModifierSelection{
						{
							ModifierID:   "queso",
							ModifierName: "Queso Extra",
							Value:        1,
							PricePerUnit: decimal.RequireFromString("1.50"),
						},
					},
				},
				{
					ID:        uuid.New().String(),
					Name:      "Ensalada César",
					UnitPrice: decimal.RequireFromString("8.99"),
					Quantity:  1,
					Modifiers: []domain.ModifierSelection{
						{
							ModifierID:   "pollo",
							ModifierName: "Pollo",
							Value:        1,
							PricePerUnit: decimal.RequireFromString("3.00"),
						},
					},
				},
			},
			CreatedAt:            now.Add(-30 * time.Minute),
			UpdatedAt:            now.Add(-20 * time.Minute),
			EstimatedTimeMinutes: 20,
		},
		{
			ID:          uuid.New().String(),
			OrderNumber: "ORD-" + now.Format("20060102") + "-003",
			Source:      enum.OrderSourceInternal,
			Status:      enum.OrderStatusReady,
			CustomerInfo: domain.CustomerInfo{
				Name:         "Mesa 3",
				DeliveryType: enum.DeliveryTypeMesa,
				TableNumber:  "3",
			},
			Items: []domain.OrderItem{
				{
					ID:        uuid.New().String(),
					Name:      "Pizza Hawaiana",
					UnitPrice: decimal.RequireFromString("15.99"),
					Quantity:  1,
				},
				{
					ID:        uuid.New().String(),
					Name:      "Jugo de Naranja",
					UnitPrice: decimal.RequireFromString("3.99"),
					Quantity:  1,
				},
			},
			CreatedAt:            now.Add(-15 * time.Minute),
			UpdatedAt:            now.Add(-5 * time.Minute),
			EstimatedTimeMinutes: 15,
		},
	}

	for i := range orders {
		orders[i].Total = pricing.OrderTotal(orders[i])
	}
	return orders
}
