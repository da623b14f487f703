// Package orderrepo maps order aggregates onto the orders, order_items and
// order_status_changes tables.
package orderrepo

import (
	"time"

	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Customer snapshot and totals are stored inline since
// they never change after creation.
type OrderDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number             string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	RestaurantID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID         *uuid.UUID      `gorm:"type:uuid;index"`
	CustomerName       string          `gorm:"type:varchar(255);not null"`
	CustomerPhone      string          `gorm:"type:varchar(64);not null"`
	CustomerAddress    string          `gorm:"type:text;not null"`
	Subtotal           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DiscountPercentage decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	DiscountAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DeliveryFee        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TaxAmount          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalPrice         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DriverID           *uuid.UUID      `gorm:"type:uuid;index"`
	Status             string          `gorm:"type:varchar(32);not null;index"`
	CreatedAt          time.Time       `gorm:"not null;index"`
	DeliveredAt        *time.Time
	Items              []OrderItemDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History            []StatusChangeDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type OrderItemDTO struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position  int             `gorm:"not null"`
	Name      string          `gorm:"type:varchar(255);not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity  int             `gorm:"not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// StatusChangeDTO is one audit trail row. FromStatus is empty for the creation entry.
type StatusChangeDTO struct {
	ID         uint      `gorm:"primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	FromStatus string    `gorm:"type:varchar(32)"`
	ToStatus   string    `gorm:"type:varchar(32);not null"`
	ActorRole  string    `gorm:"type:varchar(16);not null"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null"`
	At         time.Time `gorm:"not null"`
}

func (StatusChangeDTO) TableName() string {
	return "order_status_changes"
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelPtr(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil // absent reference
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func statusName(s order.Status) string {
	if s == order.Unknown {
		return ""
	}
	return s.String()
}

func historyFromDomain(orderID uuid.UUID, changes []order.StatusChange) []StatusChangeDTO {
	out := make([]StatusChangeDTO, 0, len(changes))
	for _, c := range changes {
		out = append(out, StatusChangeDTO{
			OrderID:    orderID,
			FromStatus: statusName(c.From),
			ToStatus:   c.To.String(),
			ActorRole:  c.ActorRole.String(),
			ActorID:    c.ActorID.Bytes(),
			At:         c.At,
		})
	}
	return out
}

func fromDomain(aggregate *order.Order) OrderDTO {
	id := aggregate.ID().Bytes()
	totals := aggregate.Totals()
	customer := aggregate.Customer()

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for i, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   id,
			Position:  i,
			Name:      item.Name(),
			UnitPrice: item.UnitPrice().Amount(),
			Quantity:  item.Quantity(),
		})
	}

	return OrderDTO{
		ID:                 id,
		Number:             aggregate.Number().String(),
		RestaurantID:       aggregate.RestaurantID().Bytes(),
		CustomerID:         uuidPtr(aggregate.CustomerID()),
		CustomerName:       customer.Name(),
		CustomerPhone:      customer.Phone(),
		CustomerAddress:    customer.Address(),
		Subtotal:           totals.Subtotal.Amount(),
		DiscountPercentage: totals.DiscountPercentage,
		DiscountAmount:     totals.Discount.Amount(),
		DeliveryFee:        totals.DeliveryFee.Amount(),
		TaxAmount:          totals.Tax.Amount(),
		TotalPrice:         totals.Total.Amount(),
		DriverID:           uuidPtr(aggregate.DriverID()),
		Status:             aggregate.Status().String(),
		CreatedAt:          aggregate.CreatedAt(),
		DeliveredAt:        aggregate.DeliveredAt(),
		Items:              items,
		History:            historyFromDomain(id, aggregate.History()),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernelPtr(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	driverID, err := kernelPtr(dto.DriverID)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	customer, err := order.NewCustomerSnapshot(dto.CustomerName, dto.CustomerPhone, dto.CustomerAddress)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		price, priceErr := kernel.NewMoney(itemDTO.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.NewLineItem(itemDTO.Name, price, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	totals, err := totalsToDomain(dto)
	if err != nil {
		return nil, err
	}

	history := make([]order.StatusChange, 0, len(dto.History))
	for _, h := range dto.History {
		change, changeErr := changeToDomain(h)
		if changeErr != nil {
			return nil, changeErr
		}
		history = append(history, change)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:           id,
		Number:       order.Number(dto.Number),
		RestaurantID: restaurantID,
		CustomerID:   customerID,
		Customer:     customer,
		Items:        items,
		Totals:       totals,
		DriverID:     driverID,
		Status:       status,
		CreatedAt:    dto.CreatedAt,
		DeliveredAt:  dto.DeliveredAt,
		History:      history,
	})
}

func totalsToDomain(dto OrderDTO) (order.Totals, error) {
	amounts := []decimal.Decimal{dto.Subtotal, dto.DiscountAmount, dto.DeliveryFee, dto.TaxAmount, dto.TotalPrice}
	money := make([]kernel.Money, len(amounts))
	for i, a := range amounts {
		m, err := kernel.NewMoney(a)
		if err != nil {
			return order.Totals{}, err
		}
		money[i] = m
	}
	return order.RestoreTotals(money[0], money[1], money[2], money[3], money[4], dto.DiscountPercentage)
}

func changeToDomain(dto StatusChangeDTO) (order.StatusChange, error) {
	from := order.Unknown
	if dto.FromStatus != "" {
		parsed, err := order.ParseStatus(dto.FromStatus)
		if err != nil {
			return order.StatusChange{}, err
		}
		from = parsed
	}
	to, err := order.ParseStatus(dto.ToStatus)
	if err != nil {
		return order.StatusChange{}, err
	}
	role, err := kernel.ParseRole(dto.ActorRole)
	if err != nil {
		return order.StatusChange{}, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return order.StatusChange{}, err
	}
	return order.StatusChange{From: from, To: to, ActorRole: role, ActorID: actorID, At: dto.At}, nil
}
