// Package json routes all encoding through sonic with the standard library
// compatible configuration.
package json

import (
	"io"

	"github.com/bytedance/sonic"
)

var api = sonic.ConfigStd

func Marshal(v interface{}) ([]byte, error) {
	return api.Marshal(v)
}

func MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	return api.MarshalIndent(v, prefix, indent)
}

func MarshalString(v interface{}) (string, error) {
	return api.MarshalToString(v)
}

func Unmarshal(data []byte, v interface{}) error {
	return api.Unmarshal(data, v)
}

func UnmarshalString(data string, v interface{}) error {
	return api.UnmarshalFromString(data, v)
}

func Valid(data []byte) bool {
	return api.Valid(data)
}

func NewEncoder(w io.Writer) sonic.Encoder {
	return api.NewEncoder(w)
}

func NewDecoder(r io.Reader) sonic.Decoder {
	return api.NewDecoder(r)
}
