package order

// MaxQuantity is the largest quantity a single order line accepts.
const MaxQuantity = 10000

// CreateOrderItem payload de ítem. Sin quantity se pide una unidad.
// swagger:model CreateOrderItem
type CreateOrderItem struct {
	ProductID string `json:"product_id" binding:"required,uuid"              example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Quantity  *int   `json:"quantity"   binding:"omitempty,min=1,max=10000" example:"2"`
}

// CreateOrderRequest payload de creación de orden. El dueño es quien llama.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	ShippingAddress string            `json:"shipping_address" binding:"omitempty,max=200" example:"Calle 1 # 2-3"`
	Items           []CreateOrderItem `json:"items"            binding:"required,min=1,dive"`
}

// UpdateStatusRequest payload de cambio de estado.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status *string `json:"status" example:"SHIPPED"`
}
