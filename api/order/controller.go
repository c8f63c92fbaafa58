/*
Package order is the HTTP surface of checkout, order history and the admin
order ledger.

Binding failures answer 400 through response.HandleError; everything returned
by the application service goes through response.HandleAppError, which maps
the error code to a status. A missing order and another customer's order both
come back as ORDER_NOT_FOUND.
*/
package order

import (
	stdErrors "errors"
	"io"

	"storefront/api/ctxutil"
	"storefront/api/response"
	orderapp "storefront/application/order"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	orderService *orderapp.Service
}

func NewController(orderService *orderapp.Service) *Controller {
	return &Controller{orderService: orderService}
}

// RegisterRoutes router must already authenticate the caller; requireAdmin
// guards the administrator routes.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup, requireAdmin gin.HandlerFunc) {
	orderGroup := router.Group("/orders")
	{
		orderGroup.POST("/checkout", c.Checkout)
		orderGroup.GET("/my-orders", c.ListMyOrders)
		orderGroup.GET("/admin/all", requireAdmin, c.ListAllOrders)
		orderGroup.GET("/admin/:orderId", requireAdmin, c.GetAnyOrder)
		orderGroup.GET("/:orderId", c.GetMyOrder)
		orderGroup.PUT("/:orderId/status", requireAdmin, c.UpdateStatus)
	}
}

// Checkout POST /api/v1/orders/checkout; the body is optional
func (c *Controller) Checkout(ctx *gin.Context) {
	var req orderapp.CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !stdErrors.Is(err, io.EOF) {
		response.HandleError(ctx, err, "invalid request parameters")
		return
	}

	order, err := c.orderService.Checkout(ctxutil.Context(ctx), ctxutil.Principal(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, order, "Order placed successfully")
}

// ListMyOrders GET /api/v1/orders/my-orders?page=&limit=
func (c *Controller) ListMyOrders(ctx *gin.Context) {
	page, err := c.orderService.ListMyOrders(ctxutil.Context(ctx), ctxutil.Principal(ctx),
		ctxutil.QueryInt(ctx, "page"), ctxutil.QueryInt(ctx, "limit"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePaginated(ctx, page.Orders, response.NewPagination(page.Page, page.Limit, page.Total),
		"Orders retrieved successfully")
}

// GetMyOrder GET /api/v1/orders/:orderId
func (c *Controller) GetMyOrder(ctx *gin.Context) {
	order, err := c.orderService.GetMyOrder(ctxutil.Context(ctx), ctxutil.Principal(ctx), ctx.Param("orderId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, order, "Order retrieved successfully")
}

// ListAllOrders GET /api/v1/orders/admin/all?page=&limit=&status=&search=
func (c *Controller) ListAllOrders(ctx *gin.Context) {
	page, err := c.orderService.ListAllOrders(ctxutil.Context(ctx), ctxutil.Principal(ctx), orderapp.AdminOrderQuery{
		Page:   ctxutil.QueryInt(ctx, "page"),
		Limit:  ctxutil.QueryInt(ctx, "limit"),
		Status: ctx.Query("status"),
		Search: ctx.Query("search"),
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePaginated(ctx, page.Orders, response.NewPagination(page.Page, page.Limit, page.Total),
		"Orders retrieved successfully")
}

// GetAnyOrder GET /api/v1/orders/admin/:orderId
func (c *Controller) GetAnyOrder(ctx *gin.Context) {
	order, err := c.orderService.GetAnyOrder(ctxutil.Context(ctx), ctxutil.Principal(ctx), ctx.Param("orderId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, order, "Order retrieved successfully")
}

// UpdateStatus PUT /api/v1/orders/:orderId/status
func (c *Controller) UpdateStatus(ctx *gin.Context) {
	var req orderapp.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "status is required")
		return
	}

	order, err := c.orderService.UpdateStatus(ctxutil.Context(ctx), ctxutil.Principal(ctx), ctx.Param("orderId"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, order, "Order status updated successfully")
}
