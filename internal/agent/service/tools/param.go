package tools

import (
	"math"
	"strconv"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/invopop/jsonschema"
	"github.com/kanosa0101/TODO-List/internal/agent/service/backend"
	"github.com/kanosa0101/TODO-List/pkg/utils/json"
)

// ParamType is the JSON type of a tool parameter.
type ParamType string

const (
	String  ParamType = "string"
	Integer ParamType = "integer"
	Boolean ParamType = "boolean"
)

// Param declares one named tool parameter. A tool's parameter list is the
// single source for its advertised JSON schema, the eino tool definition
// and argument validation.
type Param struct {
	Name     string
	Type     ParamType
	Desc     string
	Enum     []string
	Required bool
	// Default is filled in when the caller omits the parameter.
	Default interface{}
}

func (p Param) jsonSchema() *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:        string(p.Type),
		Description: p.Desc,
		Default:     p.Default,
	}
	for _, e := range p.Enum {
		s.Enum = append(s.Enum, e)
	}
	return s
}

func (p Param) parameterInfo() *schema.ParameterInfo {
	return &schema.ParameterInfo{
		Type:     schema.DataType(p.Type),
		Desc:     p.Desc,
		Enum:     p.Enum,
		Required: p.Required,
	}
}

// coerce normalizes a decoded argument to the Go type handlers expect:
// int64 for integers, bool for booleans. Models frequently send numbers as
// strings, so numeric and boolean strings are accepted. Values that cannot be
// converted are returned unchanged and rejected by schema validation.
func (p Param) coerce(v interface{}) interface{} {
	switch p.Type {
	case Integer:
		switch n := v.(type) {
		case float64:
			if n == math.Trunc(n) && !math.IsInf(n, 0) {
				return int64(n)
			}
		case float32:
			if float64(n) == math.Trunc(float64(n)) {
				return int64(n)
			}
		case int:
			return int64(n)
		case int32:
			return int64(n)
		case int64:
			return n
		case interface{ Int64() (int64, error) }:
			if i, err := n.Int64(); err == nil {
				return i
			}
		case string:
			if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
				return i
			}
		}
	case Boolean:
		if s, ok := v.(string); ok {
			if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
				return b
			}
		}
	}
	return v
}

// objectSchema renders a parameter list as a JSON object schema.
func objectSchema(params []Param) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:       "object",
		Properties: jsonschema.NewProperties(),
	}
	for _, p := range params {
		s.Properties.Set(p.Name, p.jsonSchema())
		if p.Required {
			s.Required = append(s.Required, p.Name)
		}
	}
	return s
}

// Args is a validated, normalized argument bag.
type Args map[string]interface{}

// Str returns the string argument key.
func (a Args) Str(key string) string {
	s, _ := a[key].(string)
	return s
}

// ID returns the integer argument key.
func (a Args) ID(key string) int64 {
	n, _ := a[key].(int64)
	return n
}

func (a Args) optString(key string) backend.Optional[string] {
	if s, ok := a[key].(string); ok {
		return backend.Some(s)
	}
	return backend.None[string]()
}

func (a Args) optBool(key string) backend.Optional[bool] {
	if b, ok := a[key].(bool); ok {
		return backend.Some(b)
	}
	return backend.None[bool]()
}

func (a Args) optInt(key string) backend.Optional[int] {
	if n, ok := a[key].(int64); ok {
		return backend.Some(int(n))
	}
	return backend.None[int]()
}

// ParseArguments decodes the raw arguments text of a tool call. Malformed or
// non-object input yields an empty bag and ok=false; the call still proceeds.
func ParseArguments(raw string) (args map[string]interface{}, ok bool) {
	if strings.TrimSpace(raw) == "" {
		return map[string]interface{}{}, true
	}
	if err := json.UnmarshalString(raw, &args); err != nil || args == nil {
		return map[string]interface{}{}, false
	}
	return args, true
}
