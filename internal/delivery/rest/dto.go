package rest

import "github.com/yourusername/luxecart/internal/domain/entity"

type cartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type newsletterRequest struct {
	Email string `json:"email"`
}

type assistantRequest struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

type cartResponse struct {
	Items  []entity.CartItem `json:"items"`
	Totals entity.Totals     `json:"totals"`
}

type toggleResponse struct {
	Added bool `json:"added"`
}

type assistantResponse struct {
	Reply    string           `json:"reply,omitempty"`
	Products []entity.Product `json:"products,omitempty"`
	Fallback bool             `json:"fallback"`
}
