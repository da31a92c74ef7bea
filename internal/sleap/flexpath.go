package sleap

import "encoding/json"

// FlexPath is a filename record in whatever shape the writing tool produced:
// a plain string, a list of strings (multi-page TIFF stacks), or something
// unusable (numbers, objects). Unparseable shapes decode to an empty record
// rather than failing the whole file.
type FlexPath struct {
	values []string
}

// NewFlexPath builds a record from explicit values, mainly for tests and
// programmatic construction.
func NewFlexPath(values ...string) FlexPath {
	return FlexPath{values: values}
}

// First returns the first recorded value, or "" when the record is empty.
func (f FlexPath) First() string {
	if len(f.values) == 0 {
		return ""
	}
	return f.values[0]
}

// Values returns all recorded values.
func (f FlexPath) Values() []string {
	return f.values
}

// IsEmpty reports whether no usable value was recorded.
func (f FlexPath) IsEmpty() bool {
	return len(f.values) == 0
}

func (f *FlexPath) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			f.values = nil
		} else {
			f.values = []string{s}
		}
		return nil
	}

	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err == nil {
		f.values = nil
		for _, item := range list {
			var elem string
			if err := json.Unmarshal(item, &elem); err == nil && elem != "" {
				f.values = append(f.values, elem)
			}
		}
		return nil
	}

	// Numbers, booleans, nulls, objects: tolerated but unusable.
	f.values = nil
	return nil
}

func (f FlexPath) MarshalJSON() ([]byte, error) {
	switch len(f.values) {
	case 0:
		return json.Marshal("")
	case 1:
		return json.Marshal(f.values[0])
	default:
		return json.Marshal(f.values)
	}
}
