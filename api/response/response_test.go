package response

import (
	"encoding/json"
	stdErrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/domain/order"
	"storefront/domain/shared"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	c.Set(RequestIDKey, "req-7")
	handler(c)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHandleAppErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", order.NewOrderNotFoundError("o1"), http.StatusNotFound, "ORDER_NOT_FOUND"},
		{"empty cart", order.NewEmptyCartError(), http.StatusBadRequest, "CART_EMPTY"},
		{"invalid status", order.NewInvalidStatusError("bogus"), http.StatusBadRequest, "INVALID_STATUS"},
		{"out of stock", shared.NewDomainError(shared.ErrOutOfStock, "product", "stock", "Insufficient stock"), http.StatusConflict, "OUT_OF_STOCK"},
		{"unauthorized", shared.NewUnauthorizedError("token expired"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", shared.NewForbiddenError("order", "admins only"), http.StatusForbidden, "FORBIDDEN"},
		{"dependency", shared.NewDependencyError("receipt renderer", stdErrors.New("font")), http.StatusBadGateway, "DEPENDENCY_FAILURE"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := serve(t, func(c *gin.Context) { HandleAppError(c, tc.err) })
			assert.Equal(t, tc.status, rec.Code)
			assert.False(t, body.Success)
			assert.Equal(t, tc.code, body.Error)
			assert.Equal(t, tc.status, body.Code)
			assert.Equal(t, "req-7", body.RequestID)
		})
	}
}

func TestHandleAppErrorHidesInternals(t *testing.T) {
	rec, body := serve(t, func(c *gin.Context) {
		HandleAppError(c, stdErrors.New("dial tcp 10.0.0.5:3306: connection refused"))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", body.Error)
	assert.Equal(t, "internal server error", body.Message)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestHandleErrorIsBadRequest(t *testing.T) {
	rec, body := serve(t, func(c *gin.Context) {
		HandleError(c, stdErrors.New("EOF"), "status is required")
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "status is required", body.Message)
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	last := NewPagination(3, 10, 25)
	assert.False(t, last.HasNext)

	empty := NewPagination(1, 10, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}

func TestHandleAttachment(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAttachment(c, "Receipt-ORD-1.pdf", "application/pdf", []byte("%PDF-1.3"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Receipt-ORD-1.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.3", rec.Body.String())
}
