package options

import (
	"testing"
	"time"

	"github.com/kanosa0101/TODO-List/internal/pkg/server"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerRunOptionsApplyTo(t *testing.T) {
	o := NewServerRunOptions()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.AddFlags(fs)
	require.NoError(t, fs.Parse([]string{"--server.bind-port=8088", "--server.bind-address=127.0.0.1", "--server.idle-timeout=90s"}))
	assert.Empty(t, o.Validate())

	c := server.NewConfig()
	require.NoError(t, o.ApplyTo(c))
	assert.Equal(t, "127.0.0.1:8088", c.InsecureServing.Address)
	assert.Equal(t, 90*time.Second, c.IdleTimeout)
	assert.Zero(t, c.WriteTimeout)
}

func TestServerRunOptionsValidate(t *testing.T) {
	o := NewServerRunOptions()
	o.Mode = "prod"
	o.BindPort = 0
	assert.Len(t, o.Validate(), 2)
}

func TestModelOptionsValidate(t *testing.T) {
	o := NewModelOptions()
	assert.Empty(t, o.Validate())

	o.Provider = ""
	o.Timeout = -time.Second
	o.MaxTokens = -1
	assert.Len(t, o.Validate(), 3)
}
