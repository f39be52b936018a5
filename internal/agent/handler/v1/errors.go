package v1

import (
	"net/http"

	"github.com/kanosa0101/TODO-List/pkg/errorx"
)

// Agent handler error codes.
// Code format: 2XXYYZ
//   - 2:  module prefix (todo-agent handler)
//   - XX: resource group (00=common, 01=chat, 02=tools)
//   - YY: sequential error number
//   - Z:  reserved (0)

const (
	// Common request errors (200xxx).
	ErrBind = 200001

	// Chat errors (2001xx).
	ErrMessagesEmpty = 200101
	ErrLLMNotReady   = 200102
	ErrLLMCall       = 200103
	ErrInvalidRole   = 200104
)

func init() {
	errorx.MustRegister(newCoder(ErrBind, http.StatusBadRequest, "Request body binding failed"))

	errorx.MustRegister(newCoder(ErrMessagesEmpty, http.StatusBadRequest, "Messages array is required and must not be empty"))
	errorx.MustRegister(newCoder(ErrLLMNotReady, http.StatusServiceUnavailable, "LLM service is not initialized, check the LLM configuration"))
	errorx.MustRegister(newCoder(ErrLLMCall, http.StatusInternalServerError, "LLM call failed"))
	errorx.MustRegister(newCoder(ErrInvalidRole, http.StatusBadRequest, "Message role must be system, user, assistant or tool"))
}

type coder struct {
	code int
	http int
	msg  string
}

func newCoder(code, httpStatus int, msg string) *coder {
	return &coder{code: code, http: httpStatus, msg: msg}
}

func (c *coder) Code() int         { return c.code }
func (c *coder) HTTPStatus() int   { return c.http }
func (c *coder) String() string    { return c.msg }
func (c *coder) Reference() string { return "" }
