package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/internal/usecase"
	"github.com/yourusername/luxecart/pkg/errs"
	"github.com/yourusername/luxecart/pkg/response"
)

const (
	relatedCount     = 4
	searchLimit      = 20
	assistantResults = 5
)

// UseCases HTTP API ishlatadigan business logic
type UseCases struct {
	Products   usecase.ProductUseCase
	Cart       usecase.CartUseCase
	Checkout   usecase.CheckoutUseCase
	Storefront usecase.StorefrontUseCase
	Chat       usecase.ChatUseCase
}

type Controller struct {
	products   usecase.ProductUseCase
	cart       usecase.CartUseCase
	checkout   usecase.CheckoutUseCase
	storefront usecase.StorefrontUseCase
	chat       usecase.ChatUseCase
}

// NewServer echo serverini middleware va marshrutlar bilan yig'ish
func NewServer(uc UseCases) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(RequestLogger)
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowHeaders:  []string{echo.HeaderContentType, ShopperHeader},
		ExposeHeaders: []string{ShopperHeader, echo.HeaderXRequestID},
	}))

	g := e.Group("/api/v1")
	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "pong", nil)
	})

	CreateStoreController(g, uc, Shopper)
	return e
}

// CreateStoreController barcha storefront marshrutlarini ro'yxatdan o'tkazish
func CreateStoreController(g *echo.Group, uc UseCases, shopper echo.MiddlewareFunc) {
	c := Controller{
		products:   uc.Products,
		cart:       uc.Cart,
		checkout:   uc.Checkout,
		storefront: uc.Storefront,
		chat:       uc.Chat,
	}

	g.GET("/home", c.GetHome)
	g.GET("/products", c.GetProducts)
	g.GET("/products/:id", c.GetProduct)
	g.GET("/products/:id/related", c.GetRelated)
	g.GET("/categories", c.GetCategories)
	g.GET("/search", c.Search)
	g.GET("/contact", c.GetContact)
	g.POST("/newsletter", c.Subscribe)

	s := g.Group("", shopper)
	s.GET("/summary", c.GetSummary)

	s.GET("/cart", c.GetCart)
	s.POST("/cart", c.AddToCart)
	s.DELETE("/cart", c.ClearCart)
	s.GET("/cart/totals", c.GetTotals)
	s.PATCH("/cart/:id", c.UpdateQuantity)
	s.DELETE("/cart/:id", c.RemoveFromCart)

	s.GET("/wishlist", c.GetWishlist)
	s.POST("/wishlist/:id", c.ToggleWishlist)
	s.DELETE("/wishlist/:id", c.RemoveFromWishlist)
	s.POST("/wishlist/:id/move", c.MoveWishlistToCart)

	s.GET("/compare", c.GetCompare)
	s.POST("/compare/:id", c.AddToCompare)
	s.DELETE("/compare", c.ClearCompare)
	s.DELETE("/compare/:id", c.RemoveFromCompare)

	s.GET("/checkout/quote", c.GetQuote)
	s.POST("/checkout", c.PlaceOrder)
	s.GET("/orders", c.ListOrders)
	s.GET("/orders/:id", c.GetOrder)

	s.POST("/assistant", c.Ask)
	s.GET("/assistant/history", c.GetHistory)
	s.DELETE("/assistant/history", c.ClearHistory)
}

func (c *Controller) GetHome(e echo.Context) error {
	home, err := c.storefront.Home(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	return response.WriteSuccessResponse(e, "successfully retrieved home page", home)
}

func (c *Controller) GetProducts(e echo.Context) error {
	var filter entity.ProductFilter
	var sort string
	err := echo.QueryParamsBinder(e).
		String("category", &filter.Category).
		Float64("minPrice", &filter.MinPrice).
		Float64("maxPrice", &filter.MaxPrice).
		Bool("inStock", &filter.InStockOnly).
		Bool("onSale", &filter.OnSaleOnly).
		String("sort", &sort).
		Int("offset", &filter.Offset).
		Int("limit", &filter.Limit).
		BindError()
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, err.Error())
	}
	filter.Sort = entity.ProductSort(sort)

	page, err := c.products.List(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved products", response.DataWithPaginationsResponse{
		Data: page.Products,
		Pagination: response.Pagination{
			Offset: page.Offset,
			Limit:  page.Limit,
			Total:  page.Total,
		},
	})
}

func (c *Controller) GetProduct(e echo.Context) error {
	product, err := c.products.GetByID(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	return response.WriteSuccessResponse(e, "successfully retrieved product", product)
}

func (c *Controller) GetRelated(e echo.Context) error {
	related, err := c.products.Related(e.Request().Context(), e.Param("id"), relatedCount)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	return response.WriteSuccessResponse(e, "successfully retrieved related products", related)
}

func (c *Controller) GetCategories(e echo.Context) error {
	categories, err := c.products.Categories(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	return response.WriteSuccessResponse(e, "successfully retrieved categories", categories)
}

func (c *Controller) Search(e echo.Context) error {
	query := strings.TrimSpace(e.QueryParam("q"))
	if query == "" {
		return response.WriteErrorResponse(e, errs.ErrClient, "query parameter q is required")
	}

	results, err := c.products.Search(e.Request().Context(), query)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	if len(results) > searchLimit {
		results = results[:searchLimit]
	}
	return response.WriteSuccessResponse(e, "successfully searched products", results)
}

func (c *Controller) GetContact(e echo.Context) error {
	return response.WriteSuccessResponse(e, "successfully retrieved contact info", c.storefront.Contact(e.Request().Context()))
}

func (c *Controller) Subscribe(e echo.Context) error {
	var req newsletterRequest
	if err := e.Bind(&req); err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, err.Error())
	}

	sub, err := c.storefront.Subscribe(e.Request().Context(), req.Email)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	return response.WriteResponse(e, http.StatusCreated, "successfully subscribed", sub)
}

func (c *Controller) GetSummary(e echo.Context) error {
	summary, err := c.cart.Summary(e.Request().Context(), shopperID(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	return response.WriteSuccessResponse(e, "successfully retrieved summary", summary)
}

// writeCart savat qatorlari va summalari bilan javob
func (c *Controller) writeCart(e echo.Context, message string) error {
	ctx := e.Request().Context()
	sid := shopperID(e)

	items, err := c.cart.GetCart(ctx, sid)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	totals, err := c.cart.Totals(ctx, sid)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	return response.WriteSuccessResponse(e, message, cartResponse{Items: items, Totals: totals.Rounded()})
}

func (c *Controller) GetCart(e echo.Context) error {
	return c.writeCart(e, "successfully retrieved cart")
}

func (c *Controller) AddToCart(e echo.Context) error {
	var req cartRequest
	if err := e.Bind(&req); err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, err.Error())
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if _, err := c.cart.AddToCart(e.Request().Context(), shopperID(e), req.ProductID, req.Quantity); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	return c.writeCart(e, "successfully added to cart")
}

func (c *Controller) UpdateQuantity(e echo.Context) error {
	var req quantityRequest
	if err := e.Bind(&req); err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, err.Error())
	}

	if _, err := c.cart.UpdateQuantity(e.Request().Context(), shopperID(e), e.Param("id"), req.Quantity); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	return c.writeCart(e, "successfully updated cart")
}

func (c *Controller) RemoveFromCart(e echo.Context) error {
	if _, err := c.cart.RemoveFromCart(e.Request().Context(), shopperID(e), e.Param("id")); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	return c.writeCart(e, "successfully removed from cart")
}

func (c *Controller) ClearCart(e echo.Context) error {
	if err := c.cart.ClearCart(e.Request().Context(), shopperID(e)); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	return c.writeCart(e, "successfully cleared cart")
}

func (c *Controller) GetTotals(e echo.Context) error {
	totals, err := c.cart.Totals(e.Request().Context(), shopperID(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	return response.WriteSuccessResponse(e, "successfully retrieved totals", totals.Rounded())
}

func (c *Controller) GetWishlist(e echo.Context) error {
	wishlist, err := c.cart.GetWishlist(e.Request().Context(), shopperID(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	return response.WriteSuccessResponse(e, "successfully retrieved wishlist", wishlist)
}

func (c *Controller) ToggleWishlist(e echo.Context) error {
	added, err := c.cart.ToggleWishlist(e.Request().Context(), shopperID(e), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	return response.WriteSuccessResponse(e, "successfully toggled wishlist", toggleResponse{Added: added})
}

func (c *Controller) RemoveFromWishlist(e echo.Context) error {
	wishlist, err := c.cart.RemoveFromWishlist(e.Request().Context(), shopperID(e), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	return response.WriteSuccessResponse(e, "successfully removed from wishlist", wishlist)
}

func (c *Controller) MoveWishlistToCart(e echo.Context) error {
	if err := c.cart.MoveWishlistToCart(e.Request().Context(), shopperID(e), e.Param("id")); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	return c.writeCart(e, "successfully moved to cart")
}

func (c *Controller) GetCompare(e echo.Context) error {
	compare, err := c.cart.GetCompare(e.Request().Context(), shopperID(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	return response.WriteSuccessResponse(e, "successfully retrieved compare list", compare)
}

func (c *Controller) AddToCompare(e echo.Context) error {
	compare, err := c.cart.AddToCompare(e.Request().Context(), shopperID(e), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	return response.WriteSuccessResponse(e, "successfully added to compare", compare)
}

func (c *Controller) RemoveFromCompare(e echo.Context) error {
	compare, err := c.cart.RemoveFromCompare(e.Request().Context(), shopperID(e), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	return response.WriteSuccessResponse(e, "successfully removed from compare", compare)
}

func (c *Controller) ClearCompare(e echo.Context) error {
	if err := c.cart.ClearCompare(e.Request().Context(), shopperID(e)); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	return response.WriteSuccessResponse(e, "successfully cleared compare list", []entity.Product{})
}

func (c *Controller) GetQuote(e echo.Context) error {
	quote, err := c.checkout.Quote(e.Request().Context(), shopperID(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	quote.Totals = quote.Totals.Rounded()
	return response.WriteSuccessResponse(e, "successfully retrieved quote", quote)
}

func (c *Controller) PlaceOrder(e echo.Context) error {
	var form entity.CheckoutForm
	if err := e.Bind(&form); err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, err.Error())
	}

	order, err := c.checkout.PlaceOrder(e.Request().Context(), shopperID(e), form)
	if err != nil {
		log.Ctx(e.Request().Context()).Warn().Err(err).Str("component", "PlaceOrder").Msg("place order failed")
		return response.WriteErrorResponse(e, err, nil)
	}
	return response.WriteResponse(e, http.StatusCreated, "successfully placed order", order)
}

func (c *Controller) ListOrders(e echo.Context) error {
	orders, err := c.checkout.ListOrders(e.Request().Context(), shopperID(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	return response.WriteSuccessResponse(e, "successfully retrieved orders", orders)
}

func (c *Controller) GetOrder(e echo.Context) error {
	order, err := c.checkout.GetOrder(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	// Boshqa mijozning buyurtmasi ko'rinmaydi
	if order.ShopperID != shopperID(e) {
		return response.WriteErrorResponse(e, errs.ErrOrderNotFound, nil)
	}
	return response.WriteSuccessResponse(e, "successfully retrieved order", order)
}

// Ask yordamchiga savol, yordamchi ishlamasa katalog qidiruvi
func (c *Controller) Ask(e echo.Context) error {
	var req assistantRequest
	if err := e.Bind(&req); err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, err.Error())
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return response.WriteErrorResponse(e, errs.ErrClient, "message is required")
	}

	ctx := e.Request().Context()
	reply, err := c.chat.ProcessMessage(ctx, shopperID(e), req.Username, req.Message)
	if err == nil {
		return response.WriteSuccessResponse(e, "successfully answered", assistantResponse{Reply: reply})
	}
	if !errors.Is(err, errs.ErrAssistantDisabled) && !errors.Is(err, errs.ErrAssistantUnhealthy) {
		return response.WriteErrorResponse(e, err, nil)
	}

	log.Ctx(ctx).Warn().Err(err).Str("component", "Ask").Msg("assistant unavailable, using search")
	results, serr := c.products.Search(ctx, req.Message)
	if serr != nil {
		return response.WriteErrorResponse(e, serr, nil)
	}
	if len(results) > assistantResults {
		results = results[:assistantResults]
	}
	return response.WriteSuccessResponse(e, "assistant unavailable, showing search results", assistantResponse{
		Products: results,
		Fallback: true,
	})
}

func (c *Controller) GetHistory(e echo.Context) error {
	history, err := c.chat.GetHistory(e.Request().Context(), shopperID(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	return response.WriteSuccessResponse(e, "successfully retrieved history", history)
}

func (c *Controller) ClearHistory(e echo.Context) error {
	if err := c.chat.ClearHistory(e.Request().Context(), shopperID(e)); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	return response.WriteSuccessResponse(e, "successfully cleared history", nil)
}
