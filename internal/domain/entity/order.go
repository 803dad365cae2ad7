package entity

import "time"

// CheckoutForm checkout sahifasidagi forma maydonlari
type CheckoutForm struct {
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zipCode"`
	Country    string `json:"country"`
	CardNumber string `json:"cardNumber"`
	CardName   string `json:"cardName"`
	ExpiryDate string `json:"expiryDate"` // MM/YY
	CVV        string `json:"cvv"`
}

// OrderStatus buyurtma holati
type OrderStatus string

const (
	OrderStatusPlaced OrderStatus = "placed"
)

// Order simulyatsiya qilingan to'lovdan keyingi buyurtma
type Order struct {
	ID            string      `json:"id"`
	ShopperID     string      `json:"shopperId"`
	Items         []CartItem  `json:"items"`
	Totals        Totals      `json:"totals"`
	Email         string      `json:"email"`
	ShipTo        string      `json:"shipTo"`
	CardLast4     string      `json:"cardLast4"`
	TransactionID string      `json:"transactionId"`
	Status        OrderStatus `json:"status"`
	PlacedAt      time.Time   `json:"placedAt"`
}

// PaymentRequest to'lov protsessoriga so'rov
type PaymentRequest struct {
	OrderID    string
	Amount     float64
	CardNumber string
	CardName   string
	ExpiryDate string
	CVV        string
}

// PaymentResult to'lov natijasi
type PaymentResult struct {
	TransactionID string
	Approved      bool
	ProcessedAt   time.Time
}

// Subscriber newsletter obunachisi
type Subscriber struct {
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribedAt"`
}
