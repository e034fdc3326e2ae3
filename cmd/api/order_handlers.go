package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bekzatm/tezdeliver/internal/cart"
	"github.com/bekzatm/tezdeliver/internal/order"
	"github.com/bekzatm/tezdeliver/internal/policy"
)

func orderDTO(c *gin.Context, carts cart.Repository, row *order.Row) order.OrderDTO {
	total := "0"
	if t, err := carts.TotalPrice(c.Request.Context(), row.CartID); err == nil {
		total = t.String()
	}
	return order.OrderDTO{
		OrderClient:     row.Client,
		Courier:         row.CourierID,
		DeliveryAddress: row.DeliveryAddress,
		Status:          row.Status,
		Total:           total,
	}
}

// GET /order — owners are shut out of order endpoints entirely.
func listOrdersHandler(repo order.Repository, carts cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		if !policy.CanAccessOrders(actor) {
			deny(c)
			return
		}
		rows, err := repo.List(c.Request.Context(), intQuery(c, "limit"), intQuery(c, "offset"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list orders"})
			return
		}
		out := make([]order.OrderDTO, 0, len(rows))
		for i := range rows {
			out = append(out, orderDTO(c, carts, &rows[i]))
		}
		c.JSON(http.StatusOK, out)
	}
}

// GET /order/:id
func getOrderHandler(repo order.Repository, carts cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		if !policy.CanAccessOrders(actor) {
			deny(c)
			return
		}
		row, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if !policy.CanAccessOwnOrder(actor, row.ClientID) {
			deny(c)
			return
		}
		c.JSON(http.StatusOK, orderDTO(c, carts, row))
	}
}

// POST /order
func createOrderHandler(repo order.Repository, carts cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		if !policy.CanAccessOrders(actor) {
			deny(c)
			return
		}
		var in order.CreateOrderRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
			return
		}
		if in.DeliveryAddress == "" || in.CourierID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "delivery_address and courier_id are required"})
			return
		}
		cartID := in.CartID
		if cartID == "" {
			crt, err := carts.GetByUser(c.Request.Context(), actor.ID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "no cart to order from"})
				return
			}
			cartID = crt.ID
		}
		o := &order.Order{
			ID:              uuid.NewString(),
			ClientID:        actor.ID,
			CartID:          cartID,
			Status:          order.StatusPending,
			DeliveryAddress: in.DeliveryAddress,
			CourierID:       in.CourierID,
		}
		if err := repo.Create(c.Request.Context(), o); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not create order"})
			return
		}
		c.JSON(http.StatusCreated, o)
	}
}

type orderStatusRequest struct {
	Status order.Status `json:"status"`
}

// PUT /order/:id
func updateOrderHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		if !policy.CanAccessOrders(actor) {
			deny(c)
			return
		}
		row, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if !policy.CanAccessOwnOrder(actor, row.ClientID) {
			deny(c)
			return
		}
		var in orderStatusRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		if !in.Status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown order status"})
			return
		}
		if err := repo.UpdateStatus(c.Request.Context(), row.ID, in.Status); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update order"})
			return
		}
		c.Status(http.StatusOK)
	}
}

// DELETE /order/:id
func deleteOrderHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		if !policy.CanAccessOrders(actor) {
			deny(c)
			return
		}
		row, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if !policy.CanAccessOwnOrder(actor, row.ClientID) {
			deny(c)
			return
		}
		if _, err := repo.Delete(c.Request.Context(), row.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete order"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type courierRequest struct {
	UserID         string              `json:"user"`
	CurrentOrderID string              `json:"current_orders"`
	Status         order.CourierStatus `json:"status"`
}

func listCouriersHandler(repo order.CourierRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		out, err := repo.ListCouriers(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list couriers"})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func getCourierHandler(repo order.CourierRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		courier, err := repo.GetCourier(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "courier not found"})
			return
		}
		c.JSON(http.StatusOK, courier)
	}
}

func createCourierHandler(repo order.CourierRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		var in courierRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
			return
		}
		if in.UserID == "" || in.CurrentOrderID == "" || !in.Status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user, current_orders and a valid status are required"})
			return
		}
		courier := &order.Courier{
			ID:             uuid.NewString(),
			UserID:         in.UserID,
			CurrentOrderID: in.CurrentOrderID,
			Status:         in.Status,
		}
		if err := repo.CreateCourier(c.Request.Context(), courier); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not create courier"})
			return
		}
		c.JSON(http.StatusCreated, courier)
	}
}

func updateCourierHandler(repo order.CourierRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		var in courierRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		if in.Status != "" && !in.Status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown courier status"})
			return
		}
		courier := &order.Courier{
			ID:             c.Param("id"),
			CurrentOrderID: in.CurrentOrderID,
			Status:         in.Status,
		}
		if err := repo.UpdateCourier(c.Request.Context(), courier); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "courier not found"})
			return
		}
		c.Status(http.StatusOK)
	}
}

func deleteCourierHandler(repo order.CourierRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		ok, err := repo.DeleteCourier(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete courier"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "courier not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type courierReviewRequest struct {
	CourierID string `json:"courier_id"`
	Rating    int    `json:"rating"`
}

// GET /courier_review?courier=
func listCourierReviewsHandler(repo order.CourierReviewRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		rows, err := repo.ListCourierReviews(c.Request.Context(), c.Query("courier"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list courier reviews"})
			return
		}
		out := make([]order.CourierReviewDTO, 0, len(rows))
		for _, r := range rows {
			out = append(out, order.NewCourierReviewDTO(r))
		}
		c.JSON(http.StatusOK, out)
	}
}

// POST /courier_review
func createCourierReviewHandler(repo order.CourierReviewRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		var in courierReviewRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
			return
		}
		if in.CourierID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "courier_id is required"})
			return
		}
		if in.Rating < 1 || in.Rating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
			return
		}
		rv := &order.CourierReview{
			ID:        uuid.NewString(),
			ClientID:  actor.ID,
			CourierID: in.CourierID,
			Rating:    in.Rating,
		}
		if err := repo.CreateCourierReview(c.Request.Context(), rv); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not create courier review"})
			return
		}
		c.JSON(http.StatusCreated, rv)
	}
}

// PUT|DELETE /courier_review/:id — write-once, same as store reviews.
func mutateCourierReviewHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		if !policy.ReviewImmutable(c.Request.Method) {
			deny(c)
			return
		}
		c.Status(http.StatusMethodNotAllowed)
	}
}
