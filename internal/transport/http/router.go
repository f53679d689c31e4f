package rest

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Gunvolt24/grocery/internal/domain"
	"github.com/Gunvolt24/grocery/internal/ports"
	"github.com/Gunvolt24/grocery/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type Handler struct {
	service ports.OrderReadService
	log     ports.Logger
	timeout time.Duration // 0 — без собственного таймаута
}

func NewHandler(service ports.OrderReadService, log ports.Logger, timeout time.Duration) *Handler {
	return &Handler{service: service, log: log, timeout: timeout}
}

// NewRouter — gin-роутер сервиса. otelServiceName пустой — без трейсинга.
func NewRouter(h *Handler, staticDir, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log, "/ping", "/metrics"))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/orders", h.listOrders)
	order := r.Group("/order/:id", httpx.OrderIDParam("id"))
	order.GET("", h.getOrderByID)
	order.POST("/quote", h.quoteOrder)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	if staticDir != "" {
		r.Static("/static", staticDir)
		r.StaticFile("/", filepath.Join(staticDir, "index.html"))
	}

	return r
}

func (h *Handler) getOrderByID(c *gin.Context) {
	id, _ := httpx.OrderID(c)

	ctx, cancel := h.requestContext(c)
	defer cancel()

	order, err := h.service.GetOrder(ctx, id)
	if err != nil {
		h.writeError(c, "GetOrder", id, err)
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(order))
}

func (h *Handler) listOrders(c *gin.Context) {
	limit, offset := httpx.ParseLimitOffset(c, defaultLimit, maxLimit)

	ctx, cancel := h.requestContext(c)
	defer cancel()

	orders, err := h.service.ListOrders(ctx, limit, offset)
	if err != nil {
		h.log.Errorf(ctx, "ListOrders failed limit=%d offset=%d err=%v", limit, offset, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, newOrderResponse(o))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) quoteOrder(c *gin.Context) {
	id, _ := httpx.OrderID(c)

	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	domainReq, err := req.toDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	q, err := h.service.Quote(ctx, id, domainReq)
	if err != nil {
		h.writeError(c, "Quote", id, err)
		return
	}
	c.JSON(http.StatusOK, newQuoteResponse(q))
}

// ------вспомогательные функции------

func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout > 0 {
		return context.WithTimeout(c.Request.Context(), h.timeout)
	}
	return context.WithCancel(c.Request.Context())
}

// writeError — NotFound отдаётся как 404, остальное — 500 без деталей.
func (h *Handler) writeError(c *gin.Context, op string, id int, err error) {
	if domain.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	h.log.Errorf(c.Request.Context(), "%s failed id=%d err=%v", op, id, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
