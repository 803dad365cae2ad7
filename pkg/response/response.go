package response

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/yourusername/luxecart/pkg/errs"
)

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Errors  interface{} `json:"errors"`
}

type DataWithPaginationsResponse struct {
	Data       interface{} `json:"data,omitempty"`
	Pagination interface{} `json:"pagination,omitempty"`
}

type Pagination struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	Total  int `json:"total"`
}

func WriteSuccessResponse(c echo.Context, message string, data interface{}) error {
	return WriteResponse(c, http.StatusOK, message, data)
}

func WriteResponse(c echo.Context, status int, message string, data interface{}) error {
	resp := SuccessResponse{}
	resp.Status = "success"
	resp.Data = data
	resp.Message = message

	return c.JSON(status, resp)
}

func WriteErrorResponse(c echo.Context, err error, details interface{}) error {
	statusCode := errs.GetErrorStatusCode(err)
	resp := ErrorResponse{}
	resp.Status = "error"
	resp.Message = err.Error()
	resp.Errors = details

	var verrs errs.ValidationErrors
	if details == nil && errors.As(err, &verrs) {
		resp.Message = errs.ErrInvalidCheckout.Error()
		resp.Errors = verrs
	}
	if statusCode == errs.ErrStatusInternalServer {
		resp.Message = errs.ErrInternalServer.Error()
	}

	return c.JSON(statusCode, resp)
}
