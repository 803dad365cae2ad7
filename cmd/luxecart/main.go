package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yourusername/luxecart/config"
	"github.com/yourusername/luxecart/internal/delivery/rest"
	"github.com/yourusername/luxecart/internal/delivery/telegram"
	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/internal/domain/repository"
	"github.com/yourusername/luxecart/internal/infrastructure/fixtures"
	"github.com/yourusername/luxecart/internal/infrastructure/gemini"
	"github.com/yourusername/luxecart/internal/infrastructure/parser"
	"github.com/yourusername/luxecart/internal/infrastructure/payment"
	"github.com/yourusername/luxecart/internal/infrastructure/storage"
	"github.com/yourusername/luxecart/internal/usecase"
	"github.com/yourusername/luxecart/pkg/logger"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Init(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("luxecart stopped with error")
	}
	log.Info().Msg("luxecart stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	pricing := entity.Pricing{
		FreeShippingThreshold: cfg.Pricing.FreeShippingThreshold,
		ShippingFee:           cfg.Pricing.ShippingFee,
		TaxRate:               cfg.Pricing.TaxRate,
	}

	excelParser := parser.NewExcelParser()
	productRepo := storage.NewMemoryProductRepository()
	catalog, err := initialCatalog(ctx, cfg.CatalogFile, excelParser)
	if err != nil {
		return err
	}
	if err := productRepo.UpdateCatalog(ctx, catalog); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	log.Info().Str("source", catalog.Source).Int("products", len(catalog.Products)).Msg("catalog loaded")

	chatRepo, err := newChatRepository(cfg)
	if err != nil {
		return err
	}
	if closer, ok := chatRepo.(io.Closer); ok {
		defer closer.Close()
	}

	// Kalit bo'lmasa yordamchi o'chiq, interfeys nil qoladi
	var ai repository.AIRepository
	if cfg.AssistantEnabled() {
		client, err := gemini.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return err
		}
		defer client.Close()
		ai = client
		log.Info().Str("model", cfg.GeminiModel).Msg("shopping assistant enabled")
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, assistant disabled")
	}

	shopperRepo := storage.NewMemoryShopperRepository()
	orderRepo := storage.NewMemoryOrderRepository()

	products := usecase.NewProductUseCase(productRepo, fixtures.CategoryImages)
	cart := usecase.NewCartUseCase(shopperRepo, productRepo, pricing)
	checkout := usecase.NewCheckoutUseCase(shopperRepo, orderRepo, payment.NewSimulatedProcessor(cfg.Payment.Delay), pricing)
	storefront := usecase.NewStorefrontUseCase(products, storage.NewMemoryNewsletterRepository(), usecase.StorefrontContent{
		Features:     fixtures.Features(pricing),
		Testimonials: fixtures.Testimonials(),
		Contact:      fixtures.Contact(),
	})
	chat := usecase.NewChatUseCase(ai, chatRepo, products, pricing)
	admin := usecase.NewAdminUseCase(cfg.AdminPassword, storage.NewMemoryAdminRepository(), productRepo, orderRepo,
		excelParser, chatRepo, fixtures.Catalog)

	var bot *telegram.BotHandler
	if cfg.TelegramEnabled() {
		bot, err = telegram.NewBotHandler(cfg.TelegramToken, telegram.UseCases{
			Products:   products,
			Cart:       cart,
			Checkout:   checkout,
			Storefront: storefront,
			Chat:       chat,
			Admin:      admin,
		})
		if err != nil {
			return err
		}
	} else {
		log.Warn().Msg("TELEGRAM_BOT_TOKEN not set, bot disabled")
	}

	g, ctx := errgroup.WithContext(ctx)

	server := rest.NewServer(rest.UseCases{
		Products:   products,
		Cart:       cart,
		Checkout:   checkout,
		Storefront: storefront,
		Chat:       chat,
	})
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("http server started")
		if err := server.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if bot != nil {
		g.Go(func() error {
			if err := bot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("telegram bot: %w", err)
			}
			return nil
		})
	}

	return g.Wait()
}

// initialCatalog CATALOG_FILE berilgan bo'lsa Excel dan, aks holda fixtures
func initialCatalog(ctx context.Context, path string, p repository.ExcelParser) (entity.ProductCatalog, error) {
	if path == "" {
		return fixtures.Catalog(), nil
	}

	products, err := p.ParseProducts(ctx, path)
	if err != nil {
		return entity.ProductCatalog{}, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return entity.ProductCatalog{
		Products:  products,
		UpdatedAt: time.Now(),
		Source:    filepath.Base(path),
	}, nil
}

func newChatRepository(cfg *config.Config) (repository.ChatRepository, error) {
	if cfg.ChatDBPath == "" {
		return storage.NewMemoryChatRepository(cfg.MaxContextSize), nil
	}

	repo, err := storage.NewSQLiteChatRepository(cfg.ChatDBPath, cfg.MaxContextSize)
	if err != nil {
		return nil, fmt.Errorf("failed to open chat db: %w", err)
	}
	log.Info().Str("path", cfg.ChatDBPath).Msg("chat log stored in sqlite")
	return repo, nil
}
