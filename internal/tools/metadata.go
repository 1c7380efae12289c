package tools

import (
	"encoding/json"

	"github.com/xtrnai/toolgate/internal/schema"
)

// ToolInfo describes one registered tool in the details document.
type ToolInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Schema      json.RawMessage `json:"schema"`
	Tags        []Tag           `json:"tags"`
}

// Details is the server's self-description document.
type Details struct {
	Name         string               `json:"name"`
	Version      string               `json:"version"`
	Credential   *AuthInfo            `json:"credentialDescriptor"`
	ConfigFields []schema.ConfigField `json:"configFields"`
	Tools        []ToolInfo           `json:"tools"`
}

// Details assembles the self-description document. Credential secret
// values are resolved from the environment at call time, not cached;
// schema renderings come from the validators compiled at registration.
func (r *Registry) Details() Details {
	infos := make([]ToolInfo, len(r.tools))
	for i, t := range r.tools {
		tags := t.Tags
		if tags == nil {
			tags = []Tag{}
		}
		infos[i] = ToolInfo{
			Name:        t.Name,
			Description: t.Description,
			Schema:      t.Input.Describe(),
			Tags:        tags,
		}
	}

	fields := r.decl.ConfigFields
	if fields == nil {
		fields = []schema.ConfigField{}
	}

	return Details{
		Name:         r.decl.Name,
		Version:      r.decl.Version,
		Credential:   r.decl.ResolveAuth(),
		ConfigFields: fields,
		Tools:        infos,
	}
}
