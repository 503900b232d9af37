package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nomnom/order-service/internal/cart"
	"github.com/nomnom/order-service/internal/idempotency"
	"github.com/nomnom/order-service/internal/orders"
	"github.com/nomnom/order-service/internal/validation"
)

// HandlerConfig groups dependencies for the order handlers. Idempotency is
// optional; without it the Idempotency-Key header is ignored.
type HandlerConfig struct {
	Service     *orders.Service
	Idempotency *idempotency.Store
}

// RegisterOrderRoutes registers the /api/order surface.
func RegisterOrderRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	api := r.Group("/api/order")

	api.POST("/create", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.CreateOrderRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			// BindAndValidate already wrote a 400
			return
		}

		idempKey := c.GetHeader("Idempotency-Key")

		order, err := cfg.Service.CreateOrder(ctx, orders.CreateOrderInput{
			CustomerID:      req.CustomerID,
			RestaurantID:    req.RestaurantID,
			CustomerName:    req.CustomerName,
			CustomerContact: req.CustomerContact,
			Longitude:       req.Longitude,
			Latitude:        req.Latitude,
			PaymentType:     req.PaymentType,
			IdempotencyKey:  idempKey,
		})
		if err != nil {
			if errors.Is(err, orders.ErrDuplicateRequest) && cfg.Idempotency != nil {
				replayIdempotent(c, cfg, idempKey)
				return
			}
			writeError(c, err)
			return
		}

		if idempKey != "" && cfg.Idempotency != nil {
			markCompleted(ctx, cfg, idempKey, order)
		}

		c.JSON(http.StatusOK, order)
	})

	api.GET("/getAll", func(c *gin.Context) {
		list, err := cfg.Service.ListOrders(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	api.GET("/customer/:customerId", func(c *gin.Context) {
		list, err := cfg.Service.ListByCustomer(c.Request.Context(), c.Param("customerId"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	api.GET("/:orderId", func(c *gin.Context) {
		order, err := cfg.Service.GetOrder(c.Request.Context(), c.Param("orderId"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	})

	api.PUT("/update-status/:orderId", func(c *gin.Context) {
		status := c.Query("status")
		if status == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing_status"})
			return
		}
		order, err := cfg.Service.UpdateStatus(c.Request.Context(), c.Param("orderId"), status)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Order status has been successfully updated",
			"order":   order,
		})
	})

	api.PUT("/cancel/:orderId", func(c *gin.Context) {
		order, err := cfg.Service.CancelOrder(c.Request.Context(), c.Param("orderId"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Order has been successfully canceled",
			"order":   order,
		})
	})

	api.PUT("/assign-driver/:orderId", func(c *gin.Context) {
		var req validation.AssignDriverRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}
		order, err := cfg.Service.AssignDriver(c.Request.Context(), c.Param("orderId"), orders.DriverDetails{
			DriverID:      req.DriverID,
			DriverName:    req.DriverName,
			VehicleNumber: req.VehicleNumber,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Driver has been successfully assigned to the order",
			"order":   order,
		})
	})

	api.PUT("/apply-discount/:orderId", func(c *gin.Context) {
		var req validation.ApplyDiscountRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}
		order, err := cfg.Service.ApplyDiscount(c.Request.Context(), c.Param("orderId"), req.DiscountAmount)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Discount has been successfully applied to the order",
			"order":   order,
		})
	})
}

// markCompleted records the create response against the idempotency key so
// duplicates can replay it. When the record cannot be marked DONE it is marked
// FAILED instead; leaving it IN_PROGRESS would have duplicates answered with
// 202 until the record expires.
func markCompleted(ctx context.Context, cfg HandlerConfig, key string, order *orders.Order) {
	body, err := json.Marshal(order)
	if err != nil {
		log.Printf("[order-service] marshal idempotent response for key %s: %v", key, err)
		if err := cfg.Idempotency.MarkFailed(ctx, key, "response marshaling failed"); err != nil {
			log.Printf("[order-service] mark idempotency record failed for key %s: %v", key, err)
		}
		return
	}
	if err := cfg.Idempotency.MarkDone(ctx, key, string(body), http.StatusOK); err != nil {
		log.Printf("[order-service] mark idempotency record done for key %s: %v", key, err)
		if err := cfg.Idempotency.MarkFailed(ctx, key, "recording response failed"); err != nil {
			log.Printf("[order-service] mark idempotency record failed for key %s: %v", key, err)
		}
	}
}

// replayIdempotent answers a duplicate create according to the stored record.
func replayIdempotent(c *gin.Context, cfg HandlerConfig, key string) {
	ctx := c.Request.Context()
	rec, err := cfg.Idempotency.Get(ctx, key)
	if err != nil {
		log.Printf("[order-service] idempotency lookup for key %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "idempotency_check_failed"})
		return
	}
	if rec == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "duplicate_without_idempotency_record"})
		return
	}
	switch rec.Status {
	case idempotency.StatusDone:
		if rec.ResponseBody != "" {
			c.Data(rec.ResponseStatus, "application/json", []byte(rec.ResponseBody))
			return
		}
		c.JSON(http.StatusOK, gin.H{"orderId": rec.OrderID})
	case idempotency.StatusInProgress:
		c.JSON(http.StatusAccepted, gin.H{"message": "request already in progress", "orderId": rec.OrderID})
	case idempotency.StatusFailed:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "previous_attempt_failed", "orderId": rec.OrderID})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unknown_idempotency_status"})
	}
}

// writeError maps domain errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrEmpty):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart_empty"})
	case errors.Is(err, cart.ErrUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "cart_service_unavailable"})
	case errors.Is(err, orders.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "order_not_found"})
	case errors.Is(err, orders.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_status"})
	case errors.Is(err, orders.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "invalid_transition"})
	default:
		log.Printf("[order-service] request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
