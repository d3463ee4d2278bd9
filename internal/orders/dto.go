package orders

import "time"

type createOrderRequest struct {
	ProductID            int64     `json:"product_id" validate:"required,gt=0"`
	SupplierID           int64     `json:"supplier_id" validate:"required,gt=0"`
	Quantity             int64     `json:"quantity" validate:"required,gt=0"`
	PricePerUnit         *float64  `json:"price_per_unit,omitempty" validate:"omitempty,gte=0"`
	ExpectedDeliveryDate time.Time `json:"expected_delivery_date" validate:"required"`
}

type transitionRequest struct {
	Status             Status     `json:"status" validate:"required"`
	ActualDeliveryDate *time.Time `json:"actual_delivery_date,omitempty"`
	DeliveryNotes      string     `json:"delivery_notes,omitempty" validate:"max=2000"`
	Reason             string     `json:"reason,omitempty" validate:"max=2000"`
}

// orderResponse mirrors PurchaseOrder and adds the derived total.
type orderResponse struct {
	PurchaseOrder
	TotalPrice float64 `json:"total_price"`
}

func toResponse(o PurchaseOrder) orderResponse {
	return orderResponse{PurchaseOrder: o, TotalPrice: o.TotalPrice()}
}

func toResponseList(orders []PurchaseOrder) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toResponse(o))
	}
	return out
}
