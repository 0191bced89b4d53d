package models

import (
	"hash/fnv"
	"strconv"
)

// SchemaField is one declared participant column.
type SchemaField struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ParticipantSchema is the ordered set of declared participant fields.
// Version changes whenever a field is added, dropped, renamed or retyped.
type ParticipantSchema struct {
	Version string        `json:"version"`
	Fields  []SchemaField `json:"fields"`
}

func NewParticipantSchema(fields []SchemaField) ParticipantSchema {
	h := fnv.New64a()
	for _, f := range fields {
		_, _ = h.Write([]byte(f.Name))
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(f.Type))
		_, _ = h.Write([]byte{0})
	}
	return ParticipantSchema{
		Version: strconv.FormatUint(h.Sum64(), 16),
		Fields:  fields,
	}
}

func (s ParticipantSchema) Names() []string {
	out := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		out = append(out, f.Name)
	}
	return out
}

func (s ParticipantSchema) Has(name string) bool {
	for _, f := range s.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Project returns every declared field of p in schema order; absent fields are nil.
func (s ParticipantSchema) Project(p Participant) Participant {
	out := make(Participant, len(s.Fields))
	for _, f := range s.Fields {
		v, ok := p[f.Name]
		if !ok {
			v = nil
		}
		out[f.Name] = v
	}
	return out
}

// Values returns p's values aligned with Names(), for positional inserts.
func (s ParticipantSchema) Values(p Participant) []any {
	out := make([]any, 0, len(s.Fields))
	for _, f := range s.Fields {
		out = append(out, p[f.Name])
	}
	return out
}

// Unknown lists keys of p that the schema does not declare.
func (s ParticipantSchema) Unknown(p Participant) []string {
	var out []string
	for k := range p {
		if !s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}
