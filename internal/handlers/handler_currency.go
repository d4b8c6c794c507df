package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/masoo/money/internal/apperrors"
	portssvc "github.com/masoo/money/internal/core/ports/services"
	"github.com/masoo/money/internal/core/services"
	"github.com/masoo/money/internal/dto"
	"github.com/masoo/money/internal/middleware"
	"github.com/masoo/money/internal/utils"
)

// currencyHandler handles HTTP requests against the currency registry.
type currencyHandler struct {
	registry portssvc.CurrencyRegistrySvc
}

func newCurrencyHandler(registry portssvc.CurrencyRegistrySvc) *currencyHandler {
	return &currencyHandler{registry: registry}
}

// RegisterCurrencyRoutes registers the registry routes. The optional mutation
// middlewares (rate limiting) apply only to routes that change the table.
func RegisterCurrencyRoutes(rg *gin.RouterGroup, registry portssvc.CurrencyRegistrySvc, mutation ...gin.HandlerFunc) {
	h := newCurrencyHandler(registry)

	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listCurrencies)
		currencies.GET("/heuristics/iso-compliance", h.isoCompliance)
		currencies.GET("/iso-numeric/:number", h.getCurrencyByISONumeric)
		currencies.GET("/:code", h.getCurrency)
		currencies.GET("/:code/format", h.formatAmount)

		mutating := currencies.Group("", mutation...)
		mutating.POST("", h.registerCurrency)
		mutating.POST("/reset", h.resetRegistry)
		mutating.POST("/:code/inherit", h.inheritCurrency)
		mutating.DELETE("/:code", h.unregisterCurrency)
	}
}

// listCurrencies godoc
// @Summary List all currencies
// @Description Returns every live currency in registration order
// @Tags currencies
// @Produce json
// @Success 200 {array} dto.CurrencyResponse
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	currencies := h.registry.All()
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(currencies))
}

// getCurrency godoc
// @Summary Get a currency by identifier
// @Description Resolves an ISO or custom identifier, case-insensitively
// @Tags currencies
// @Produce json
// @Param code path string true "Currency identifier"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} map[string]string "Currency not found"
// @Router /currencies/{code} [get]
func (h *currencyHandler) getCurrency(c *gin.Context) {
	code := c.Param("code")
	currency, ok := h.registry.Find(code)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Currency %q not found", code)})
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// getCurrencyByISONumeric godoc
// @Summary Get a currency by ISO numeric code
// @Description Resolves a 3-digit ISO 4217 numeric code via the secondary index
// @Tags currencies
// @Produce json
// @Param number path string true "ISO numeric code (e.g. 978)"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} map[string]string "Currency not found"
// @Router /currencies/iso-numeric/{number} [get]
func (h *currencyHandler) getCurrencyByISONumeric(c *gin.Context) {
	number := c.Param("number")
	currency, ok := h.registry.FindByISONumeric(number)
	if !ok {
		// Covers malformed input too; numeric lookup is total.
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("No currency with ISO numeric code %q", number)})
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// formatAmount godoc
// @Summary Format an amount in a currency
// @Description Rounds the amount to the currency's display precision
// @Tags currencies
// @Produce json
// @Param code path string true "Currency identifier"
// @Param amount query string true "Decimal amount, e.g. 12.3456"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 404 {object} map[string]string "Currency not found"
// @Router /currencies/{code}/format [get]
func (h *currencyHandler) formatAmount(c *gin.Context) {
	code := c.Param("code")
	currency, ok := h.registry.Find(code)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Currency %q not found", code)})
		return
	}

	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount: " + c.Query("amount")})
		return
	}

	resp := gin.H{
		"currency": currency.Code(),
		"amount":   utils.FormatWithCurrencyExponent(amount, currency),
	}
	if sd, ok := utils.SmallestDenominationValue(currency); ok {
		resp["smallest_denomination"] = sd.String()
	}
	c.JSON(http.StatusOK, resp)
}

// registerCurrency godoc
// @Summary Register a currency
// @Description Registers a currency from an attribute bag; an existing id is replaced
// @Tags currencies
// @Accept json
// @Produce json
// @Param currency body dto.RegisterCurrencyRequest true "Currency attributes"
// @Success 201 {object} dto.CurrencyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /currencies [post]
func (h *currencyHandler) registerCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	currency, err := h.registry.Register(req.ToAttributes())
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error registering currency", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to register currency", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register currency"})
		return
	}

	logger.Info("Currency registered", slog.String("currency_id", currency.Key()))
	c.JSON(http.StatusCreated, dto.ToCurrencyResponse(currency))
}

// inheritCurrency godoc
// @Summary Register a currency derived from a parent
// @Description Merges the attribute bag over a copy of the parent's attributes and registers the result
// @Tags currencies
// @Accept json
// @Produce json
// @Param code path string true "Parent currency identifier"
// @Param currency body dto.RegisterCurrencyRequest true "Child attributes (override parent)"
// @Success 201 {object} dto.CurrencyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Parent currency not found"
// @Router /currencies/{code}/inherit [post]
func (h *currencyHandler) inheritCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	parentCode := c.Param("code")

	var req dto.RegisterCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for InheritCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	currency, err := h.registry.Inherit(parentCode, req.ToAttributes())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUnknownCurrency):
			logger.Warn("Inherit from unknown parent", slog.String("parent", parentCode))
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Parent currency %q not found", parentCode)})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error inheriting currency", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to inherit currency", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to inherit currency"})
		}
		return
	}

	logger.Info("Currency inherited", slog.String("parent", parentCode), slog.String("currency_id", currency.Key()))
	c.JSON(http.StatusCreated, dto.ToCurrencyResponse(currency))
}

// unregisterCurrency godoc
// @Summary Unregister a currency
// @Description Removes a currency from both indices; absence is not an error
// @Tags currencies
// @Produce json
// @Param code path string true "Currency identifier"
// @Success 200 {object} dto.UnregisterCurrencyResponse
// @Router /currencies/{code} [delete]
func (h *currencyHandler) unregisterCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	removed := h.registry.Unregister(code)
	if removed {
		logger.Info("Currency unregistered", slog.String("currency_id", code))
	}
	c.JSON(http.StatusOK, dto.UnregisterCurrencyResponse{Removed: removed})
}

// resetRegistry godoc
// @Summary Reset the registry
// @Description Discards runtime registrations and reloads the seed source
// @Tags currencies
// @Produce json
// @Success 200 {object} map[string]int "Live record count after reset"
// @Failure 500 {object} map[string]string "Seed source failure"
// @Router /currencies/reset [post]
func (h *currencyHandler) resetRegistry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.registry.Reset(c.Request.Context()); err != nil {
		logger.Error("Failed to reset currency registry", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset currency registry"})
		return
	}

	count := h.registry.Count()
	logger.Info("Currency registry reset", slog.Int("count", count))
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// isoCompliance godoc
// @Summary ISO compliance report
// @Description Advisory classification of the live table by ISO 4217 compliance
// @Tags currencies
// @Produce json
// @Success 200 {object} services.ISOComplianceReport
// @Router /currencies/heuristics/iso-compliance [get]
func (h *currencyHandler) isoCompliance(c *gin.Context) {
	report := services.AnalyzeISOCompliance(h.registry.All())
	c.JSON(http.StatusOK, report)
}
