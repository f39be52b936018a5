package options

import (
	"fmt"

	"github.com/kanosa0101/TODO-List/internal/agent/service/chat"
	"github.com/spf13/pflag"
)

// ChatOptions tunes the tool-calling loop.
type ChatOptions struct {
	MaxIterations                 int  `json:"max-iterations"                   mapstructure:"max-iterations"`
	Passthrough                   bool `json:"passthrough"                      mapstructure:"passthrough"`
	ChunkSize                     int  `json:"chunk-size"                       mapstructure:"chunk-size"`
	StreamBuffer                  int  `json:"stream-buffer"                    mapstructure:"stream-buffer"`
	DirectStreamWithoutCredential bool `json:"direct-stream-without-credential" mapstructure:"direct-stream-without-credential"`
}

func NewChatOptions() *ChatOptions {
	return &ChatOptions{
		MaxIterations: chat.DefaultMaxIterations,
		Passthrough:   true,
		ChunkSize:     chat.DefaultChunkSize,
		StreamBuffer:  chat.DefaultStreamBuffer,
	}
}

func (o *ChatOptions) Validate() []error {
	var errs []error
	if o.MaxIterations < 1 {
		errs = append(errs, fmt.Errorf("chat.max-iterations must be at least 1, got %d", o.MaxIterations))
	}
	if o.ChunkSize < 1 {
		errs = append(errs, fmt.Errorf("chat.chunk-size must be at least 1, got %d", o.ChunkSize))
	}
	if o.StreamBuffer < 0 {
		errs = append(errs, fmt.Errorf("chat.stream-buffer must not be negative, got %d", o.StreamBuffer))
	}
	return errs
}

func (o *ChatOptions) AddFlags(fs *pflag.FlagSet) {
	fs.IntVar(&o.MaxIterations, "chat.max-iterations", o.MaxIterations, "Maximum tool-executing model calls per request.")
	fs.BoolVar(&o.Passthrough, "chat.passthrough", o.Passthrough, "Forward answer text to the client while the model streams it.")
	fs.IntVar(&o.ChunkSize, "chat.chunk-size", o.ChunkSize, "Rune length of answer chunks when passthrough is off.")
	fs.IntVar(&o.StreamBuffer, "chat.stream-buffer", o.StreamBuffer, "Events buffered ahead of a slow streaming client.")
	fs.BoolVar(&o.DirectStreamWithoutCredential, "chat.direct-stream-without-credential", o.DirectStreamWithoutCredential, ""+
		"Stream requests without a bearer token straight from the model, skipping the tool loop.")
}
