package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/yieldfarm/domain"
	"github.com/x-xyz/yieldfarm/domain/farm"
	"github.com/x-xyz/yieldfarm/service/notify"
	"github.com/x-xyz/yieldfarm/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data    interface{}        `json:"data"`
	Status  JsonResponseStatus `json:"status"`
	Notices []notify.Notice    `json:"notices,omitempty"`
}

// ErrorStatus maps an error class to its http status, fallback when none matches
func ErrorStatus(err error, fallback int) int {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, query.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, farm.ErrValidation), errors.Is(err, domain.ErrBadParamInput):
		return http.StatusBadRequest
	// checked before ErrPrecondition, it is one too
	case errors.Is(err, farm.ErrOperationInProgress):
		return http.StatusConflict
	case errors.Is(err, farm.ErrPrecondition):
		return http.StatusPreconditionFailed
	case errors.Is(err, farm.ErrNetwork):
		return http.StatusBadGateway
	}
	return fallback
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	return MakeJsonRespWithNotices(c, status, data, nil)
}

// MakeJsonRespWithNotices also returns the user facing notices collected while serving the request
func MakeJsonRespWithNotices(c echo.Context, status int, data interface{}, notices []notify.Notice) error {
	if err, ok := data.(error); ok {
		status = ErrorStatus(err, status)
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail, notices})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess, notices})
	}

	return c.JSON(status, data)
}
