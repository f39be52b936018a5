package errorx

import (
	"fmt"
	"net/http"
	"sync"
)

// Coder describes an error code registered at init time.
type Coder interface {
	// HTTPStatus is the status written when the code reaches an HTTP boundary.
	HTTPStatus() int
	// String is the message safe to show to external users.
	String() string
	// Reference points to user documentation, may be empty.
	Reference() string
	// Code returns the numeric code.
	Code() int
}

type defaultCoder struct {
	code int
	http int
	ext  string
	ref  string
}

func (c defaultCoder) Code() int         { return c.code }
func (c defaultCoder) String() string    { return c.ext }
func (c defaultCoder) Reference() string { return c.ref }
func (c defaultCoder) HTTPStatus() int {
	if c.http == 0 {
		return http.StatusInternalServerError
	}
	return c.http
}

// unknownCoder is returned by ParseCoder for errors without a registered code.
var unknownCoder = defaultCoder{code: 1, http: http.StatusInternalServerError, ext: "An internal server error occurred"}

var (
	codes   = map[int]Coder{}
	codeMux = &sync.RWMutex{}
)

// Register registers a user defined error code, overriding an existing one.
func Register(coder Coder) {
	if coder.Code() == 0 {
		panic("code `0` is reserved by errorx as unknown error code")
	}

	codeMux.Lock()
	defer codeMux.Unlock()

	codes[coder.Code()] = coder
}

// MustRegister registers a user defined error code and panics on duplicates.
func MustRegister(coder Coder) {
	if coder.Code() == 0 {
		panic("code `0` is reserved by errorx as unknown error code")
	}

	codeMux.Lock()
	defer codeMux.Unlock()

	if _, ok := codes[coder.Code()]; ok {
		panic(fmt.Sprintf("code: %d already exist", coder.Code()))
	}

	codes[coder.Code()] = coder
}

// ParseCoder resolves the registered Coder carried by err.
func ParseCoder(err error) Coder {
	if err == nil {
		return nil
	}

	if v, ok := asWithCode(err); ok {
		codeMux.RLock()
		defer codeMux.RUnlock()
		if coder, ok := codes[v.code]; ok {
			return coder
		}
	}

	return unknownCoder
}

// IsCode reports whether any error in err's chain carries the given code.
func IsCode(err error, code int) bool {
	for err != nil {
		v, ok := asWithCode(err)
		if !ok {
			return false
		}
		if v.code == code {
			return true
		}
		err = v.cause
	}
	return false
}

func init() {
	codes[unknownCoder.Code()] = unknownCoder
}
