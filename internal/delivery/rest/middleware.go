package rest

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const (
	// ShopperHeader mijoz savatini aniqlovchi header
	ShopperHeader = "X-Shopper-ID"

	shopperKey = "shopper_id"
)

// RequestLogger har bir so'rovga request_id li logger biriktiradi
func RequestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		requestID := uuid.New().String()

		ctx := c.Request().Context()

		logger := log.With().Str("request_id", requestID).Logger()
		ctx = logger.WithContext(ctx)

		c.SetRequest(c.Request().WithContext(ctx))
		c.Response().Header().Set(echo.HeaderXRequestID, requestID)

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		req := c.Request()
		res := c.Response()

		log.Ctx(req.Context()).Info().
			Str("method", req.Method).
			Str("endpoint", req.URL.Path).
			Int("status", res.Status).
			Int64("latency", time.Since(start).Milliseconds()).
			Msg("request processed")

		return nil
	}
}

// Shopper X-Shopper-ID ni o'qiydi, bo'lmasa yangisini beradi
func Shopper(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(ShopperHeader)
		if id == "" || len(id) > 64 {
			id = uuid.New().String()
		}
		c.Set(shopperKey, id)
		c.Response().Header().Set(ShopperHeader, id)
		return next(c)
	}
}

func shopperID(c echo.Context) string {
	id, _ := c.Get(shopperKey).(string)
	return id
}
