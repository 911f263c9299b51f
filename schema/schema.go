package schema

import "encoding/json"

// Schema is the message schema interface shared by every tool input, tool
// output and chat message in the catalog.
type Schema interface {
	// Attachement returns the schema attachement
	Attachement() *Attachement
}

type SchemaPointer interface {
	Schema
	SetAttachement(*Attachement)
}

// Stringify renders a schema for prompt context. String schemas pass
// through untouched, everything else is JSON encoded.
func Stringify(s Schema) string {
	switch v := s.(type) {
	case String:
		return string(v)
	case *String:
		return string(*v)
	}
	bs, _ := json.Marshal(s)
	return string(bs)
}

func ToBytes(s Schema) []byte {
	switch v := s.(type) {
	case String:
		return []byte(v)
	case *String:
		return []byte(*v)
	}
	bs, _ := json.Marshal(s)
	return bs
}
