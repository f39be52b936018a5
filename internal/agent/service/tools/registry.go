package tools

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/kanosa0101/TODO-List/internal/agent/domain/entity"
	"github.com/kanosa0101/TODO-List/pkg/logger"
	"github.com/kanosa0101/TODO-List/pkg/utils/json"
	validator "github.com/santhosh-tekuri/jsonschema/v6"
)

const moduleName = "tools"

// Handler runs one tool with validated arguments. It must report every
// failure through the returned result.
type Handler func(ctx context.Context, credential string, args Args) *entity.ToolResult

// Tool is a catalog entry.
type Tool struct {
	Name        string
	Description string
	Params      []Param
	Handler     Handler
}

type entry struct {
	tool      *Tool
	spec      *entity.ToolSpec
	rawSchema []byte
	schema    *validator.Schema
}

// Registry maps tool names to handlers. It keeps no per-call state and is
// safe for concurrent use.
type Registry struct {
	entries []*entry
	index   map[string]*entry
}

// NewRegistry compiles the parameter schema of every tool. Order is kept for
// ListTools.
func NewRegistry(tools ...*Tool) (*Registry, error) {
	r := &Registry{index: make(map[string]*entry, len(tools))}
	compiler := validator.NewCompiler()

	for _, t := range tools {
		if t == nil || t.Name == "" || t.Handler == nil {
			return nil, fmt.Errorf("invalid tool definition %+v", t)
		}
		if _, ok := r.index[t.Name]; ok {
			return nil, fmt.Errorf("tool %s is already registered", t.Name)
		}

		spec := &entity.ToolSpec{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  objectSchema(t.Params),
		}
		raw, err := json.Marshal(spec.Parameters)
		if err != nil {
			return nil, fmt.Errorf("encode schema of tool %s: %w", t.Name, err)
		}
		doc, err := validator.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("decode schema of tool %s: %w", t.Name, err)
		}
		url := "mem://tools/" + t.Name + ".json"
		if err := compiler.AddResource(url, doc); err != nil {
			return nil, fmt.Errorf("add schema of tool %s: %w", t.Name, err)
		}
		compiled, err := compiler.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("compile schema of tool %s: %w", t.Name, err)
		}

		e := &entry{tool: t, spec: spec, rawSchema: raw, schema: compiled}
		r.entries = append(r.entries, e)
		r.index[t.Name] = e
	}
	return r, nil
}

// ListTools returns the catalog in declaration order.
func (r *Registry) ListTools() []*entity.ToolSpec {
	specs := make([]*entity.ToolSpec, 0, len(r.entries))
	for _, e := range r.entries {
		specs = append(specs, e.spec)
	}
	return specs
}

// RawSchema returns the JSON parameter schema of a tool.
func (r *Registry) RawSchema(name string) ([]byte, bool) {
	e, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return e.rawSchema, true
}

// ToolInfos returns the catalog as eino tool definitions for chat requests.
func (r *Registry) ToolInfos() []*schema.ToolInfo {
	infos := make([]*schema.ToolInfo, 0, len(r.entries))
	for _, e := range r.entries {
		params := make(map[string]*schema.ParameterInfo, len(e.tool.Params))
		for _, p := range e.tool.Params {
			params[p.Name] = p.parameterInfo()
		}
		infos = append(infos, &schema.ToolInfo{
			Name:        e.tool.Name,
			Desc:        e.tool.Description,
			ParamsOneOf: schema.NewParamsOneOfByParams(params),
		})
	}
	return infos
}

// Execute runs the named tool. It never returns nil and never panics: an
// unknown name, a missing required argument, an argument of the wrong shape
// and a handler failure all come back as a failed result.
func (r *Registry) Execute(ctx context.Context, credential, name string, arguments map[string]interface{}) (result *entity.ToolResult) {
	e, ok := r.index[name]
	if !ok {
		logger.WarnX(moduleName, "[Tools] unknown tool %q", name)
		return entity.Fail("unknown tool: %s", name)
	}

	args, err := e.prepare(arguments)
	if err != nil {
		logger.WarnX(moduleName, "[Tools] %s rejected: %v", name, err)
		return entity.Fail("%s", err.Error())
	}

	defer func() {
		if p := recover(); p != nil {
			logger.ErrorX(moduleName, "[Tools] %s panicked: %v", name, p)
			result = entity.Fail("tool %s failed: %v", name, p)
		}
	}()

	start := time.Now()
	result = e.tool.Handler(ctx, credential, args)
	if result == nil {
		result = entity.Fail("tool %s returned no result", name)
	}
	logger.InfoX(moduleName, "[Tools] %s finished in %s, success=%t", name, time.Since(start).Round(time.Millisecond), result.Success)
	return result
}

// prepare copies, normalizes, defaults and validates the caller's arguments.
// A null value counts as omitted.
func (e *entry) prepare(in map[string]interface{}) (Args, error) {
	args := make(Args, len(e.tool.Params))
	known := make(map[string]Param, len(e.tool.Params))
	for _, p := range e.tool.Params {
		known[p.Name] = p
	}

	for k, v := range in {
		if v == nil {
			continue
		}
		if p, ok := known[k]; ok {
			v = p.coerce(v)
		}
		args[k] = v
	}

	for _, p := range e.tool.Params {
		if _, ok := args[p.Name]; ok {
			continue
		}
		if p.Required {
			return nil, fmt.Errorf("missing required argument: %s", p.Name)
		}
		if p.Default != nil {
			args[p.Name] = p.Default
		}
	}

	if err := e.schema.Validate(map[string]interface{}(args)); err != nil {
		return nil, fmt.Errorf("invalid arguments for %s: %s", e.tool.Name, flatten(err))
	}
	return args, nil
}

func flatten(err error) string {
	lines := strings.Split(strings.TrimSpace(err.Error()), "\n")
	out := lines[:0]
	for _, l := range lines {
		l = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(l), "-"))
		if l != "" && !strings.HasPrefix(l, "jsonschema validation failed") {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		return err.Error()
	}
	return strings.Join(out, "; ")
}
