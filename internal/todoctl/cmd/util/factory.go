package util

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/viper"
)

const (
	FlagServer = "server"
	FlagToken  = "token"

	DefaultServer = "http://localhost:5000"
)

// IOStreams provides the standard names for iostreams.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// Factory provides the resources every subcommand needs.
type Factory interface {
	ServerAddr() string
	Token() string
	HTTPClient() *http.Client
}

type factory struct{}

// NewDefaultFactory reads server and token from flags, TODOCTL_* variables
// or the viper config.
func NewDefaultFactory() Factory {
	return factory{}
}

func (factory) ServerAddr() string {
	addr := viper.GetString(FlagServer)
	if addr == "" {
		addr = DefaultServer
	}
	if !strings.HasPrefix(addr, "http://") && !strings.HasPrefix(addr, "https://") {
		addr = "http://" + addr
	}
	return strings.TrimRight(addr, "/")
}

func (factory) Token() string {
	return viper.GetString(FlagToken)
}

func (factory) HTTPClient() *http.Client {
	// No overall timeout: streamed answers may span many tool rounds.
	return &http.Client{Transport: &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		ResponseHeaderTimeout: 2 * time.Minute,
	}}
}

// CheckErr prints err and exits with code 1.
func CheckErr(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
	os.Exit(1)
}
