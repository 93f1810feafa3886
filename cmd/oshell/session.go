package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/wippyai/object-runtime/object"
	"github.com/wippyai/object-runtime/runtime"
)

// session interprets shell commands against one runtime. Objects and
// factories live under names chosen at construction time.
type session struct {
	rt        *runtime.Runtime
	objects   map[string]*object.Instance
	factories map[string]*runtime.Factory
}

func newSession(rt *runtime.Runtime) *session {
	return &session{
		rt:        rt,
		objects:   make(map[string]*object.Instance),
		factories: make(map[string]*runtime.Factory),
	}
}

const helpText = `Commands:
  construct NAME [PROPS]       build an object, PROPS as a JSON object
  factory NAME [DEFAULTS]      create a factory with default properties
  new NAME FACTORY [OPTIONS]   build an instance from a factory
  set NAME KEY VALUE           set an own property
  get NAME KEY                 look a property up (own first, then shared)
  share NAME KEY VALUE         install a capability on the shared set
  call NAME METHOD [ARGS]      invoke a capability, ARGS as JSON values
  keys NAME                    list own and delegated keys
  objects                      list session objects and factories
  plugins                      list registered plugins
  help                         show this help
  exit                         leave the shell

Values parse as JSON, falling back to plain strings. Wrap arguments with
spaces in a JSON array: call car drive ["north", 42]`

// Exec runs one command line and returns its output.
func (s *session) Exec(ctx context.Context, line string) (string, error) {
	line = strings.TrimSpace(line)
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}

	cmd := fields[0]
	rest := strings.TrimSpace(strings.TrimPrefix(line, cmd))

	switch cmd {
	case "help":
		return helpText, nil
	case "construct":
		return s.construct(rest)
	case "factory":
		return s.factory(rest)
	case "new":
		return s.newInstance(rest)
	case "set":
		return s.setProp(rest)
	case "get":
		return s.getProp(rest)
	case "share":
		return s.share(rest)
	case "call":
		return s.call(ctx, rest)
	case "keys":
		return s.keys(rest)
	case "objects":
		return s.listObjects(), nil
	case "plugins":
		return s.listPlugins(), nil
	default:
		return "", fmt.Errorf("unknown command %q, try help", cmd)
	}
}

func (s *session) construct(rest string) (string, error) {
	name, raw := splitName(rest)
	if name == "" {
		return "", fmt.Errorf("usage: construct NAME [PROPS]")
	}

	props, err := parseProps(raw)
	if err != nil {
		return "", err
	}

	obj := s.rt.Construct(nil, props, nil).(*object.Instance)
	s.objects[name] = obj
	return fmt.Sprintf("object %s (%d shared entries)", name, obj.Capabilities().Len()), nil
}

func (s *session) factory(rest string) (string, error) {
	name, raw := splitName(rest)
	if name == "" {
		return "", fmt.Errorf("usage: factory NAME [DEFAULTS]")
	}

	defaults, err := parseProps(raw)
	if err != nil {
		return "", err
	}

	s.factories[name] = s.rt.NewFactory(runtime.FactoryConfig{Defaults: defaults})
	return fmt.Sprintf("factory %s", name), nil
}

func (s *session) newInstance(rest string) (string, error) {
	name, rest := splitName(rest)
	factoryName, raw := splitName(rest)
	if name == "" || factoryName == "" {
		return "", fmt.Errorf("usage: new NAME FACTORY [OPTIONS]")
	}

	f, ok := s.factories[factoryName]
	if !ok {
		return "", fmt.Errorf("no factory %q", factoryName)
	}

	options, err := parseProps(raw)
	if err != nil {
		return "", err
	}

	obj := f.New(options).(*object.Instance)
	s.objects[name] = obj
	return fmt.Sprintf("object %s from %s", name, factoryName), nil
}

func (s *session) setProp(rest string) (string, error) {
	name, rest := splitName(rest)
	key, raw := splitName(rest)
	if name == "" || key == "" || raw == "" {
		return "", fmt.Errorf("usage: set NAME KEY VALUE")
	}

	obj, err := s.object(name)
	if err != nil {
		return "", err
	}

	v := parseValue(raw)
	obj.Set(key, v)
	return fmt.Sprintf("%s.%s = %s", name, key, formatValue(v)), nil
}

func (s *session) getProp(rest string) (string, error) {
	name, key := splitName(rest)
	if name == "" || key == "" {
		return "", fmt.Errorf("usage: get NAME KEY")
	}

	obj, err := s.object(name)
	if err != nil {
		return "", err
	}

	v, ok := obj.Get(key)
	if !ok {
		return "", fmt.Errorf("no property %q on %s", key, name)
	}
	return formatValue(v), nil
}

func (s *session) share(rest string) (string, error) {
	name, rest := splitName(rest)
	key, raw := splitName(rest)
	if name == "" || key == "" || raw == "" {
		return "", fmt.Errorf("usage: share NAME KEY VALUE")
	}

	obj, err := s.object(name)
	if err != nil {
		return "", err
	}

	v := parseValue(raw)
	obj.Share(key, v)
	return fmt.Sprintf("shared %s on %s", key, name), nil
}

func (s *session) call(ctx context.Context, rest string) (string, error) {
	name, rest := splitName(rest)
	method, raw := splitName(rest)
	if name == "" || method == "" {
		return "", fmt.Errorf("usage: call NAME METHOD [ARGS]")
	}

	obj, err := s.object(name)
	if err != nil {
		return "", err
	}

	args, err := parseArgs(raw)
	if err != nil {
		return "", err
	}

	result, err := obj.Call(ctx, method, args...)
	if err != nil {
		return "", err
	}
	return formatValue(result), nil
}

func (s *session) keys(rest string) (string, error) {
	name, _ := splitName(rest)
	if name == "" {
		return "", fmt.Errorf("usage: keys NAME")
	}

	obj, err := s.object(name)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("own:    %s\nshared: %s",
		strings.Join(obj.OwnKeys(), ", "),
		strings.Join(obj.Capabilities().Keys(), ", ")), nil
}

func (s *session) listObjects() string {
	names := make([]string, 0, len(s.objects)+len(s.factories))
	for name := range s.objects {
		names = append(names, name)
	}
	for name := range s.factories {
		names = append(names, name+" (factory)")
	}
	if len(names) == 0 {
		return "no objects yet, try construct or factory"
	}
	sort.Strings(names)
	return strings.Join(names, "\n")
}

func (s *session) listPlugins() string {
	names := s.rt.Registry().Names()
	if len(names) == 0 {
		return "no plugins registered"
	}
	return strings.Join(names, "\n")
}

func (s *session) object(name string) (*object.Instance, error) {
	obj, ok := s.objects[name]
	if !ok {
		return nil, fmt.Errorf("no object %q", name)
	}
	return obj, nil
}

// splitName peels the first word off rest.
func splitName(rest string) (name, remainder string) {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "", ""
	}
	if i := strings.IndexByte(rest, ' '); i >= 0 {
		return rest[:i], strings.TrimSpace(rest[i+1:])
	}
	return rest, ""
}

// parseValue reads a JSON value, falling back to the raw string.
func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

// parseProps reads a JSON object into properties.
func parseProps(raw string) (object.Properties, error) {
	if raw == "" {
		return nil, nil
	}
	var props object.Properties
	if err := json.Unmarshal([]byte(raw), &props); err != nil {
		return nil, fmt.Errorf("parse properties: %w", err)
	}
	return props, nil
}

// parseArgs reads call arguments: a JSON array, or whitespace-separated
// JSON values.
func parseArgs(raw string) ([]any, error) {
	if raw == "" {
		return nil, nil
	}
	if strings.HasPrefix(raw, "[") {
		var args []any
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return nil, fmt.Errorf("parse arguments: %w", err)
		}
		return args, nil
	}

	fields := strings.Fields(raw)
	args := make([]any, len(fields))
	for i, f := range fields {
		args[i] = parseValue(f)
	}
	return args, nil
}

// formatValue renders a command result.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case *object.Instance:
		return fmt.Sprintf("<object own=[%s]>", strings.Join(val.OwnKeys(), ", "))
	case object.Method:
		return "<method>"
	case string:
		return val
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
