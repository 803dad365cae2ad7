package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/internal/domain/repository"
	"github.com/yourusername/luxecart/pkg/errs"
)

// AdminUseCase admin bilan bog'liq business logic
type AdminUseCase interface {
	// Enabled admin paroli sozlanganmi
	Enabled() bool

	// Login admin login qilish
	Login(ctx context.Context, userID int64, password string) (bool, error)

	// Logout admin logout qilish
	Logout(ctx context.Context, userID int64) error

	// IsAdmin admin ekanligini tekshirish
	IsAdmin(ctx context.Context, userID int64) (bool, error)

	// UploadCatalog Excel fayldan katalogni yuklash
	UploadCatalog(ctx context.Context, userID int64, fileData []byte, filename string) (int, error)

	// GetCatalogInfo katalog haqida ma'lumot
	GetCatalogInfo(ctx context.Context) (string, error)

	// CleanAll katalogni boshlang'ich holatga qaytarish va chat tarixlarini tozalash
	CleanAll(ctx context.Context, userID int64) error

	// RecentOrders so'nggi buyurtmalar
	RecentOrders(ctx context.Context, userID int64, limit int) ([]entity.Order, error)

	// RecentActions so'nggi admin harakatlari
	RecentActions(ctx context.Context, userID int64, limit int) ([]entity.AdminAction, error)
}

type adminUseCase struct {
	password    string
	adminRepo   repository.AdminRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	excelParser repository.ExcelParser
	chatRepo    repository.ChatRepository
	seed        func() entity.ProductCatalog
	now         func() time.Time
}

// NewAdminUseCase yangi AdminUseCase yaratish. seed CleanAll dan keyingi katalogni beradi.
func NewAdminUseCase(
	password string,
	adminRepo repository.AdminRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	excelParser repository.ExcelParser,
	chatRepo repository.ChatRepository,
	seed func() entity.ProductCatalog,
) AdminUseCase {
	return &adminUseCase{
		password:    password,
		adminRepo:   adminRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		excelParser: excelParser,
		chatRepo:    chatRepo,
		seed:        seed,
		now:         time.Now,
	}
}

func (u *adminUseCase) Enabled() bool {
	return u.password != ""
}

// Login admin login qilish
func (u *adminUseCase) Login(ctx context.Context, userID int64, password string) (bool, error) {
	if !u.Enabled() || subtle.ConstantTimeCompare([]byte(password), []byte(u.password)) != 1 {
		return false, nil
	}

	now := u.now()
	session := entity.AdminSession{
		UserID:       userID,
		IsAdmin:      true,
		LoginTime:    now,
		LastActivity: now,
	}
	if err := u.adminRepo.CreateSession(ctx, session); err != nil {
		return false, fmt.Errorf("failed to create session: %w", err)
	}

	u.logAction(ctx, userID, entity.ActionLogin, "Admin successfully logged in")
	return true, nil
}

// Logout admin logout qilish
func (u *adminUseCase) Logout(ctx context.Context, userID int64) error {
	return u.adminRepo.DeleteSession(ctx, userID)
}

// IsAdmin admin ekanligini tekshirish
func (u *adminUseCase) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return u.adminRepo.IsAdmin(ctx, userID)
}

func (u *adminUseCase) requireAdmin(ctx context.Context, userID int64) error {
	isAdmin, err := u.adminRepo.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return errs.ErrUnauthorized
	}
	return nil
}

// UploadCatalog Excel fayldan katalogni yuklash
func (u *adminUseCase) UploadCatalog(ctx context.Context, userID int64, fileData []byte, filename string) (int, error) {
	if err := u.requireAdmin(ctx, userID); err != nil {
		return 0, err
	}

	products, err := u.excelParser.ParseProductsFromBytes(ctx, fileData, filename)
	if err != nil {
		return 0, fmt.Errorf("failed to parse excel: %w", err)
	}
	if len(products) == 0 {
		return 0, fmt.Errorf("no products found in excel file")
	}

	catalog := entity.ProductCatalog{
		Products:  products,
		UpdatedAt: u.now(),
		Source:    filename,
	}
	if err := u.productRepo.UpdateCatalog(ctx, catalog); err != nil {
		return 0, fmt.Errorf("failed to update catalog: %w", err)
	}

	u.logAction(ctx, userID, entity.ActionUploadCatalog, fmt.Sprintf("Uploaded %d products from %s", len(products), filename))
	return len(products), nil
}

// GetCatalogInfo katalog haqida ma'lumot
func (u *adminUseCase) GetCatalogInfo(ctx context.Context) (string, error) {
	catalog, err := u.productRepo.GetCatalog(ctx)
	if err != nil {
		return "", err
	}

	categories := make(map[string]int)
	inStock := 0
	for _, product := range catalog.Products {
		categories[product.Category]++
		if product.InStock {
			inStock++
		}
	}
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📦 Catalog: %s\n", catalog.Source))
	sb.WriteString(fmt.Sprintf("📅 Updated: %s\n", catalog.UpdatedAt.Format("2006-01-02 15:04")))
	sb.WriteString(fmt.Sprintf("📊 Products: %d (%d in stock)\n\n", len(catalog.Products), inStock))
	sb.WriteString("📂 Categories:\n")
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("  • %s: %d\n", name, categories[name]))
	}
	return sb.String(), nil
}

// CleanAll katalogni qayta tiklash va chat tarixlarini tozalash
func (u *adminUseCase) CleanAll(ctx context.Context, userID int64) error {
	if err := u.requireAdmin(ctx, userID); err != nil {
		return err
	}

	if err := u.productRepo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}
	if u.seed != nil {
		if err := u.productRepo.UpdateCatalog(ctx, u.seed()); err != nil {
			return fmt.Errorf("failed to restore catalog: %w", err)
		}
	}
	if err := u.chatRepo.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to clear chats: %w", err)
	}

	u.logAction(ctx, userID, entity.ActionCleanAll, "Reset catalog and cleared chat histories")
	return nil
}

func (u *adminUseCase) RecentOrders(ctx context.Context, userID int64, limit int) ([]entity.Order, error) {
	if err := u.requireAdmin(ctx, userID); err != nil {
		return nil, err
	}
	return u.orderRepo.ListAll(ctx, limit)
}

func (u *adminUseCase) RecentActions(ctx context.Context, userID int64, limit int) ([]entity.AdminAction, error) {
	if err := u.requireAdmin(ctx, userID); err != nil {
		return nil, err
	}
	return u.adminRepo.ListActions(ctx, limit)
}

func (u *adminUseCase) logAction(ctx context.Context, userID int64, action, details string) {
	_ = u.adminRepo.LogAction(ctx, entity.AdminAction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		Timestamp: u.now(),
	})
}
