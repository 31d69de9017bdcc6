// Package record converts provenance nodes to and from plain nested records
// that survive persistence: each record is a map with a "type" discriminant
// plus variant-specific fields. FromRecord(ToRecord(n)) rebuilds n exactly.
package record

import (
	"encoding/json"
	"fmt"

	"github.com/sightglass/provenance/internal/model"
)

// Node discriminants.
const (
	typeProgrammatic = "programmatic"
	typeLocalReader  = "local_reader"
	typeScpReader    = "scp_reader"
	typeCommand      = "command"
	typeUserEdit     = "user-edit"
)

// Parameter discriminants.
const (
	paramUser   = "user"
	paramModel  = "model"
	paramWindow = "window"
	paramList   = "list"
)

// UnknownVariantError reports a record whose discriminant names no known
// node or parameter variant. Readers fail hard on these: an unrecognized
// variant is never silently defaulted.
type UnknownVariantError struct {
	Type string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown provenance variant %q", e.Type)
}

// ToRecord converts n to a plain nested record. Nested nodes are converted
// recursively; a single-element path list is flattened to a bare string.
func ToRecord(n model.Node) map[string]any {
	switch node := n.(type) {
	case *model.Programmatic:
		return map[string]any{"type": typeProgrammatic}
	case *model.LocalRead:
		return map[string]any{
			"type":   typeLocalReader,
			"path":   pathField(node.Paths),
			"plugin": nullable(node.Plugin),
		}
	case *model.RemoteRead:
		return map[string]any{
			"type":     typeScpReader,
			"host":     node.Host,
			"username": node.Username,
			"path":     node.Path,
			"wsl":      node.WSL,
			"plugin":   nullable(node.Plugin),
		}
	case *model.CommandRun:
		return map[string]any{
			"type":       typeCommand,
			"command_id": node.CommandID,
			"contexts":   paramRecords(node.Contexts),
			"parameters": paramRecords(node.Parameters),
		}
	case *model.UserEdit:
		return map[string]any{
			"type":     typeUserEdit,
			"original": ToRecord(node.Original),
		}
	}
	// The variant set is closed; reaching here means a new variant was
	// added without updating the serializer.
	panic(fmt.Sprintf("record: unhandled node variant %T", n))
}

// FromRecord rebuilds a node from a record produced by ToRecord.
func FromRecord(rec map[string]any) (model.Node, error) {
	typ, ok := rec["type"].(string)
	if !ok {
		return nil, fmt.Errorf("record has no \"type\" field")
	}
	switch typ {
	case typeProgrammatic:
		return &model.Programmatic{}, nil
	case typeLocalReader:
		paths, err := pathList(rec["path"])
		if err != nil {
			return nil, err
		}
		return &model.LocalRead{
			Paths:  paths,
			Plugin: stringOrEmpty(rec["plugin"]),
		}, nil
	case typeScpReader:
		wsl, _ := rec["wsl"].(bool)
		return &model.RemoteRead{
			Host:     stringOrEmpty(rec["host"]),
			Username: stringOrEmpty(rec["username"]),
			Path:     stringOrEmpty(rec["path"]),
			WSL:      wsl,
			Plugin:   stringOrEmpty(rec["plugin"]),
		}, nil
	case typeCommand:
		contexts, err := paramsFromField(rec["contexts"])
		if err != nil {
			return nil, err
		}
		parameters, err := paramsFromField(rec["parameters"])
		if err != nil {
			return nil, err
		}
		return &model.CommandRun{
			CommandID:  stringOrEmpty(rec["command_id"]),
			Contexts:   contexts,
			Parameters: parameters,
		}, nil
	case typeUserEdit:
		orig, ok := rec["original"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("user-edit record has no \"original\" record")
		}
		node, err := FromRecord(orig)
		if err != nil {
			return nil, err
		}
		return &model.UserEdit{Original: node}, nil
	}
	return nil, &UnknownVariantError{Type: typ}
}

// Marshal encodes n as JSON via its record form.
func Marshal(n model.Node) ([]byte, error) {
	return json.Marshal(ToRecord(n))
}

// Unmarshal decodes a JSON record back into a node.
func Unmarshal(data []byte) (model.Node, error) {
	var rec map[string]any
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing provenance record: %w", err)
	}
	return FromRecord(rec)
}

func paramRecords(params []model.Parameter) []any {
	out := make([]any, len(params))
	for i, p := range params {
		out[i] = paramRecord(p)
	}
	return out
}

func paramRecord(p model.Parameter) map[string]any {
	switch param := p.(type) {
	case *model.UserValue:
		return map[string]any{"type": paramUser, "name": param.Name, "value": param.Value}
	case *model.ArtifactRef:
		return map[string]any{"type": paramModel, "name": param.Name, "value": ToRecord(param.Node)}
	case *model.WindowRef:
		return map[string]any{"type": paramWindow, "name": param.Name, "value": ToRecord(param.Node)}
	case *model.ArtifactListRef:
		values := make([]any, len(param.Nodes))
		for i, n := range param.Nodes {
			values[i] = ToRecord(n)
		}
		return map[string]any{"type": paramList, "name": param.Name, "value": values}
	}
	panic(fmt.Sprintf("record: unhandled parameter variant %T", p))
}

func paramsFromField(field any) ([]model.Parameter, error) {
	if field == nil {
		return nil, nil
	}
	raw, ok := field.([]any)
	if !ok {
		return nil, fmt.Errorf("parameter list is %T, want a list", field)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]model.Parameter, len(raw))
	for i, item := range raw {
		rec, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("parameter record is %T, want a map", item)
		}
		p, err := paramFromRecord(rec)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

func paramFromRecord(rec map[string]any) (model.Parameter, error) {
	typ, ok := rec["type"].(string)
	if !ok {
		return nil, fmt.Errorf("parameter record has no \"type\" field")
	}
	name := stringOrEmpty(rec["name"])
	switch typ {
	case paramUser:
		return &model.UserValue{Name: name, Value: rec["value"]}, nil
	case paramModel, paramWindow:
		nested, ok := rec["value"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("parameter %q: value is %T, want a record", name, rec["value"])
		}
		node, err := FromRecord(nested)
		if err != nil {
			return nil, err
		}
		if typ == paramWindow {
			return &model.WindowRef{Name: name, Node: node}, nil
		}
		return &model.ArtifactRef{Name: name, Node: node}, nil
	case paramList:
		raw, ok := rec["value"].([]any)
		if !ok {
			return nil, fmt.Errorf("parameter %q: value is %T, want a list", name, rec["value"])
		}
		nodes := make([]model.Node, len(raw))
		for i, item := range raw {
			nested, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("parameter %q: element %d is %T, want a record", name, i, item)
			}
			node, err := FromRecord(nested)
			if err != nil {
				return nil, err
			}
			nodes[i] = node
		}
		return &model.ArtifactListRef{Name: name, Nodes: nodes}, nil
	}
	return nil, &UnknownVariantError{Type: typ}
}

// pathField keeps single-path reads as a bare string, matching records
// written by earlier sessions; multi-path reads serialize as a list.
func pathField(paths []string) any {
	if len(paths) == 0 {
		return nil
	}
	if len(paths) == 1 {
		return paths[0]
	}
	out := make([]any, len(paths))
	for i, p := range paths {
		out[i] = p
	}
	return out
}

func pathList(field any) ([]string, error) {
	switch v := field.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []any:
		if len(v) == 0 {
			return nil, nil
		}
		out := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("path %d is %T, want a string", i, item)
			}
			out[i] = s
		}
		return out, nil
	case []string:
		return v, nil
	}
	return nil, fmt.Errorf("path field is %T, want a string or list", field)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func stringOrEmpty(v any) string {
	s, _ := v.(string)
	return s
}
