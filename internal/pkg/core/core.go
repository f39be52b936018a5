package core

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kanosa0101/TODO-List/pkg/errorx"
	"github.com/kanosa0101/TODO-List/pkg/logger"
)

// ErrResponse defines the return messages when an error occurred.
// Error carries the public message; Detail carries the internal one when it
// adds information.
type ErrResponse struct {
	Code   int    `json:"code,omitempty"`
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// WriteResponse writes an error or the response data into the http response
// body. An error is mapped through its registered errorx code.
func WriteResponse(c *gin.Context, err error, data interface{}) {
	if err != nil {
		logger.Error("%+v", err)
		coder := errorx.ParseCoder(err)

		resp := ErrResponse{
			Code:  coder.Code(),
			Error: coder.String(),
		}
		if msg := err.Error(); msg != coder.String() {
			resp.Detail = msg
		}
		c.JSON(coder.HTTPStatus(), resp)
		return
	}

	c.JSON(http.StatusOK, data)
}
