package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func queryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest(http.MethodGet, "/notes/recent?"+rawQuery, nil)
	return ctx
}

func TestListLimit(t *testing.T) {
	assert.Equal(t, 15, listLimit(queryContext(t, "limit=15")))
	assert.Equal(t, 0, listLimit(queryContext(t, "")))
	assert.Equal(t, 0, listLimit(queryContext(t, "limit=abc")))
	assert.Equal(t, 0, listLimit(queryContext(t, "limit=-3")))
}
