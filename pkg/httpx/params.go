package httpx

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Gunvolt24/grocery/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
)

// orderIDKey — ключ gin.Context, под которым OrderIDParam сохраняет разобранный id.
const orderIDKey = "order_id"

// ClampInt — ограничение значения v в диапазоне [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseLimitOffset - читает limit/offset из query с дефолтами и границами.
func ParseLimitOffset(c *gin.Context, defaultLimit, maxLimit int) (limit, offset int) {
	limit = ClampInt(defaultLimit, 1, maxLimit)
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = ClampInt(v, 1, maxLimit)
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v >= 0 {
		offset = v
	}
	return
}

// ParsePositiveID — id из строки; ok=false для нечисловых и неположительных значений.
func ParsePositiveID(s string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// OrderIDParam — middleware для маршрутов с параметром заказа:
// некорректный id → 400 без вызова обработчика, корректный кладётся
// в gin.Context и в контекст запроса (для полей логов).
func OrderIDParam(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := ParsePositiveID(c.Param(param))
		if !ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "order id must be a positive integer"})
			return
		}
		c.Set(orderIDKey, id)
		c.Request = c.Request.WithContext(ctxmeta.WithOrderID(c.Request.Context(), id))
		c.Next()
	}
}

// OrderID — id, сохранённый OrderIDParam (0, false — если middleware не применялся).
func OrderID(c *gin.Context) (int, bool) {
	id, ok := c.Get(orderIDKey)
	if !ok {
		return 0, false
	}
	v, ok := id.(int)
	return v, ok
}
