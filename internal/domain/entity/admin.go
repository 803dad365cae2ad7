package entity

import "time"

// AdminSessionTTL admin sessiyasi amal qilish muddati
const AdminSessionTTL = 24 * time.Hour

// AdminSession admin sessiya
type AdminSession struct {
	UserID       int64
	IsAdmin      bool
	LoginTime    time.Time
	LastActivity time.Time
}

// Expired sessiya muddati o'tganmi
func (s AdminSession) Expired(now time.Time) bool {
	return now.Sub(s.LastActivity) > AdminSessionTTL
}

// Admin harakatlari turlari
const (
	ActionLogin         = "login"
	ActionUploadCatalog = "upload_catalog"
	ActionCleanAll      = "clean_all"
)

// AdminAction admin harakatlari
type AdminAction struct {
	ID        string
	UserID    int64
	Action    string
	Details   string
	Timestamp time.Time
}
