package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sabor-go/internal/service"
	"sabor-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestHandleRelationErrorStatusCodes(t *testing.T) {
	require.NoError(t, logger.Init("error", "console", "stdout", ""))

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"重复添加返回400", service.ErrRelationExists, http.StatusBadRequest},
		{"订阅自己返回400", service.ErrSelfSubscription, http.StatusBadRequest},
		{"关系不存在返回404", service.ErrRelationMissing, http.StatusNotFound},
		{"菜谱不存在返回404", service.ErrRecipeNotFound, http.StatusNotFound},
		{"用户不存在返回404", service.ErrUserNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, w := newTestContext(t)
			handleRelationError(c, tc.err)
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestHandleRecipeErrorStatusCodes(t *testing.T) {
	require.NoError(t, logger.Init("error", "console", "stdout", ""))

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"烹饪时间越界返回400", service.ErrInvalidCookingTime, http.StatusBadRequest},
		{"食材数量越界返回400", service.ErrInvalidAmount, http.StatusBadRequest},
		{"非作者返回403", service.ErrNotRecipeAuthor, http.StatusForbidden},
		{"菜谱不存在返回404", service.ErrRecipeNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, w := newTestContext(t)
			handleRecipeError(c, tc.err)
			assert.Equal(t, tc.code, w.Code)
		})
	}
}
