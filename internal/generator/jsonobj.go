package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// jsonObject is a JSON object that marshals its fields in insertion
// order. encoding/json sorts map keys, which would be fine for
// determinism but scrambles the fixed layout of the aggregated
// OpenCode config ($schema first, instructions next, then entries).
type jsonObject struct {
	fields []jsonField
}

type jsonField struct {
	key   string
	value any
}

// set writes a field. A repeated key keeps its original position.
func (o *jsonObject) set(key string, value any) {
	for i := range o.fields {
		if o.fields[i].key == key {
			o.fields[i].value = value
			return
		}
	}
	o.fields = append(o.fields, jsonField{key: key, value: value})
}

func (o *jsonObject) len() int {
	return len(o.fields)
}

// MarshalJSON implements json.Marshaler preserving field order.
func (o *jsonObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.key)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", f.key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(f.value)
		if err != nil {
			return nil, fmt.Errorf("marshal value of %q: %w", f.key, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
