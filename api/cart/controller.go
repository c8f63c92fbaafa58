// Package cart exposes the shopping cart of the authenticated user.
package cart

import (
	"storefront/api/ctxutil"
	"storefront/api/response"
	cartapp "storefront/application/cart"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	cartService *cartapp.Service
}

func NewController(cartService *cartapp.Service) *Controller {
	return &Controller{cartService: cartService}
}

// RegisterRoutes router must already authenticate the caller
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	cartGroup := router.Group("/cart")
	{
		cartGroup.POST("", c.AddItem)
		cartGroup.GET("", c.GetCart)
		cartGroup.PUT("/:itemId", c.UpdateItem)
		cartGroup.DELETE("/:itemId", c.RemoveItem)
		cartGroup.DELETE("", c.ClearCart)
	}
}

// AddItem POST /api/v1/cart
func (c *Controller) AddItem(ctx *gin.Context) {
	var req cartapp.AddItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "productId is required")
		return
	}

	cart, err := c.cartService.AddItem(ctxutil.Context(ctx), ctxutil.Principal(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, cart, "Item added to cart")
}

// GetCart GET /api/v1/cart
func (c *Controller) GetCart(ctx *gin.Context) {
	cart, err := c.cartService.GetCart(ctxutil.Context(ctx), ctxutil.Principal(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, cart, "Cart retrieved successfully")
}

// UpdateItem PUT /api/v1/cart/:itemId
func (c *Controller) UpdateItem(ctx *gin.Context) {
	var req cartapp.UpdateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters")
		return
	}

	cart, err := c.cartService.UpdateItem(ctxutil.Context(ctx), ctxutil.Principal(ctx), ctx.Param("itemId"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, cart, "Cart item updated")
}

// RemoveItem DELETE /api/v1/cart/:itemId
func (c *Controller) RemoveItem(ctx *gin.Context) {
	cart, err := c.cartService.RemoveItem(ctxutil.Context(ctx), ctxutil.Principal(ctx), ctx.Param("itemId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, cart, "Item removed from cart")
}

// ClearCart DELETE /api/v1/cart
func (c *Controller) ClearCart(ctx *gin.Context) {
	if err := c.cartService.ClearCart(ctxutil.Context(ctx), ctxutil.Principal(ctx)); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, nil, "Cart cleared")
}
