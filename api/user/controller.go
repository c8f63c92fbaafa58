// Package user is the administrator view over customer accounts.
package user

import (
	"storefront/api/ctxutil"
	"storefront/api/response"
	userapp "storefront/application/user"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	userService *userapp.ApplicationService
}

func NewController(userService *userapp.ApplicationService) *Controller {
	return &Controller{userService: userService}
}

// RegisterRoutes every route is admin only
func (c *Controller) RegisterRoutes(router *gin.RouterGroup, requireAdmin gin.HandlerFunc) {
	adminGroup := router.Group("/admin", requireAdmin)
	{
		adminGroup.GET("/users", c.ListUsers)
		adminGroup.PUT("/user/:id", c.UpdateUser)
	}
}

// ListUsers GET /api/v1/admin/users?page=&limit=
func (c *Controller) ListUsers(ctx *gin.Context) {
	page, err := c.userService.ListUsers(ctxutil.Context(ctx), ctxutil.Principal(ctx),
		ctxutil.QueryInt(ctx, "page"), ctxutil.QueryInt(ctx, "limit"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePaginated(ctx, page.Users, response.NewPagination(page.Page, page.Limit, page.Total),
		"Users retrieved successfully")
}

// UpdateUser PUT /api/v1/admin/user/:id
func (c *Controller) UpdateUser(ctx *gin.Context) {
	var req userapp.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters")
		return
	}

	user, err := c.userService.UpdateUser(ctxutil.Context(ctx), ctxutil.Principal(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, user, "User updated successfully")
}
