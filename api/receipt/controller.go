package receipt

import (
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

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	receiptGroup := router.Group("/receipt")
	{
		receiptGroup.GET("/download/:orderId", c.Download)
		receiptGroup.GET("/status/:orderId", c.Status)
	}
}

// Download GET /api/v1/receipt/download/:orderId streams the PDF
func (c *Controller) Download(ctx *gin.Context) {
	receipt, err := c.orderService.DownloadReceipt(ctxutil.Context(ctx), ctxutil.Principal(ctx), ctx.Param("orderId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleAttachment(ctx, receipt.Filename, receipt.ContentType, receipt.Data)
}

func (c *Controller) Status(ctx *gin.Context) {
	status, err := c.orderService.ReceiptStatus(ctxutil.Context(ctx), ctxutil.Principal(ctx), ctx.Param("orderId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, status, "Receipt available")
}
