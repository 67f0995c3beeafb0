package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/yieldfarm/base/ctx"
)

func TestAddContextAndAddress(t *testing.T) {
	req := require.New(t)
	m := InitMiddleware(time.Second)
	e := echo.New()
	e.Use(m.AddContext(), m.ResponseLogger(), m.CORS)

	var deadline bool
	e.GET("/farms/:farmId", func(c echo.Context) error {
		_, deadline = c.Get("ctx").(ctx.Ctx).Deadline()
		return c.String(http.StatusOK, "ok")
	}, IsValidAddress("farmId"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/farms/0xfa", nil))
	req.Equal(http.StatusOK, rec.Code)
	req.True(deadline)
	req.Equal("*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/farms/alice", nil))
	req.Equal(http.StatusBadRequest, rec.Code)
}
