package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusClient         = http.StatusBadRequest
	ErrStatusUnauthorized   = http.StatusUnauthorized
	ErrStatusNotFound       = http.StatusNotFound
	ErrStatusConflict       = http.StatusConflict
	ErrStatusUnprocessable  = http.StatusUnprocessableEntity
	ErrStatusBadGateway     = http.StatusBadGateway
	ErrStatusUnavailable    = http.StatusServiceUnavailable
)

var (
	ErrInternalServer     = errors.New("internal server error")
	ErrClient             = errors.New("bad request")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrNotFound           = errors.New("resource not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrCatalogNotFound    = errors.New("catalog not found")
	ErrOutOfStock         = errors.New("product is out of stock")
	ErrInvalidQuantity    = errors.New("quantity is out of range")
	ErrCompareFull        = errors.New("compare list is full")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrCheckoutInProgress = errors.New("checkout is already in progress")
	ErrInvalidCheckout    = errors.New("checkout form is invalid")
	ErrPaymentDeclined    = errors.New("payment was declined")
	ErrInvalidEmail       = errors.New("email address is invalid")
	ErrAlreadySubscribed  = errors.New("email is already subscribed")
	ErrAssistantDisabled  = errors.New("shopping assistant is not configured")
	ErrAssistantUnhealthy = errors.New("shopping assistant is temporarily unavailable")
)

var errorMap = map[error]int{
	ErrInternalServer:     ErrStatusInternalServer,
	ErrClient:             ErrStatusClient,
	ErrUnauthorized:       ErrStatusUnauthorized,
	ErrNotFound:           ErrStatusNotFound,
	ErrProductNotFound:    ErrStatusNotFound,
	ErrOrderNotFound:      ErrStatusNotFound,
	ErrCatalogNotFound:    ErrStatusNotFound,
	ErrOutOfStock:         ErrStatusConflict,
	ErrInvalidQuantity:    ErrStatusClient,
	ErrCompareFull:        ErrStatusConflict,
	ErrEmptyCart:          ErrStatusClient,
	ErrCheckoutInProgress: ErrStatusConflict,
	ErrInvalidCheckout:    ErrStatusUnprocessable,
	ErrPaymentDeclined:    ErrStatusBadGateway,
	ErrInvalidEmail:       ErrStatusClient,
	ErrAlreadySubscribed:  ErrStatusConflict,
	ErrAssistantDisabled:  ErrStatusUnavailable,
	ErrAssistantUnhealthy: ErrStatusUnavailable,
}

// GetErrorStatusCode xatoga mos HTTP status kodini qaytarish.
// Wrap qilingan xatolar ham errors.Is orqali topiladi.
func GetErrorStatusCode(err error) int {
	for target, code := range errorMap {
		if errors.Is(err, target) {
			return code
		}
	}
	return ErrStatusInternalServer
}

// FieldError bitta maydon validatsiya xatosi
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
}

// ValidationErrors checkout formasi xatolari ro'yxati
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fmt.Sprintf("%s:%s", fe.Field, fe.Tag))
	}
	return fmt.Sprintf("%s (%s)", ErrInvalidCheckout.Error(), strings.Join(parts, ", "))
}

// Is ValidationErrors ni ErrInvalidCheckout bilan solishtirish imkonini beradi
func (v ValidationErrors) Is(target error) bool {
	return target == ErrInvalidCheckout
}

// Has berilgan maydon xato ekanligini tekshirish
func (v ValidationErrors) Has(field string) bool {
	for _, fe := range v {
		if fe.Field == field {
			return true
		}
	}
	return false
}
