package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/tienda-ecom/internal/httpx"
	"github.com/MikeMC777/tienda-ecom/internal/order"
)

func callerOf(c *gin.Context) order.Caller {
	uid, role := httpx.Identity(c)
	return order.Caller{UserID: uid, Role: role}
}

// createOrderHandler godoc
// @Summary      Crear pedido
// @Description  The order belongs to the authenticated user. Quantity defaults to 1.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      order.CreateOrderRequest  true  "order lines"
// @Success      201   {object}  order.Order
// @Failure      400   {object}  httpx.ErrorBody
// @Failure      404   {object}  httpx.ErrorBody
// @Failure      409   {object}  httpx.ErrorBody
// @Router       /pedidos/ [post]
func createOrderHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.CreateOrderRequest
		if err := httpx.BindJSON(c, &req); err != nil {
			httpx.Fail(c, err)
			return
		}
		uid, _ := httpx.Identity(c)
		o, err := orders.CreateOrder(c.Request.Context(), uid, req)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, o)
	}
}

// getOrderHandler godoc
// @Summary   Obtener pedido
// @Tags      pedidos
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      string  true  "order id"
// @Success   200  {object}  order.Order
// @Failure   403  {object}  httpx.ErrorBody
// @Failure   404  {object}  httpx.ErrorBody
// @Router    /pedidos/unico/{id} [get]
func getOrderHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := orders.Get(c.Request.Context(), c.Param("id"), callerOf(c))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// listOrdersHandler godoc
// @Summary   Pedidos de un usuario
// @Tags      pedidos
// @Produce   json
// @Security  BearerAuth
// @Param     usuario_id  path     string  true  "user id"
// @Success   200         {array}  order.Order
// @Failure   403         {object}  httpx.ErrorBody
// @Router    /pedidos/{usuario_id} [get]
func listOrdersHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := orders.ListByUser(c.Request.Context(), c.Param("usuario_id"), callerOf(c))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// updateOrderHandler godoc
// @Summary      Cambiar estado del pedido (ADMIN)
// @Description  PENDING -> SHIPPED -> DELIVERED. Without status the order is returned unchanged.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "order id"
// @Param        body  body      order.UpdateStatusRequest  true  "new status"
// @Success      200   {object}  order.Order
// @Failure      400   {object}  httpx.ErrorBody
// @Failure      403   {object}  httpx.ErrorBody
// @Failure      404   {object}  httpx.ErrorBody
// @Failure      409   {object}  httpx.ErrorBody
// @Router       /pedidos/{id} [patch]
func updateOrderHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.UpdateStatusRequest
		if err := httpx.BindJSON(c, &req); err != nil {
			httpx.Fail(c, err)
			return
		}
		o, err := orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, callerOf(c))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}
