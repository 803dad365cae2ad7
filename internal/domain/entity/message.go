package entity

import "time"

// Message yordamchi bilan suhbatdagi bitta xabar
type Message struct {
	ID        string    `json:"id"`
	ShopperID string    `json:"shopperId"`
	Username  string    `json:"username,omitempty"`
	Text      string    `json:"text"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatContext suhbat kontekstini saqlash uchun
type ChatContext struct {
	ShopperID string
	Messages  []Message
	LastUsed  time.Time
}
