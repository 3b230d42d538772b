package manifest

import (
	"errors"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned when the input is not valid JSON.
var ErrInvalidJSON = errors.New("manifest: invalid JSON")

// Inspector examines raw bytes and returns a View for field queries.
type Inspector interface {
	Inspect(raw []byte) (View, error)
}

// View provides field access over one manifest node, either the whole
// document or one entry of an array in it.
type View interface {
	// HasField returns true if the path exists.
	HasField(path string) bool

	// GetString returns the string value at path, or false if not found
	// or not a string.
	GetString(path string) (string, bool)

	// GetInt returns the numeric value at path as an int, or false if not
	// found or not a number.
	GetInt(path string) (int, bool)

	// GetBool returns the boolean value at path, or false if not found or
	// not a boolean. The second result reports presence.
	GetBool(path string) (bool, bool)

	// GetStrings returns the string elements of the array at path. Non-string
	// elements are skipped.
	GetStrings(path string) []string

	// Each calls fn with the index and a View of each element of the array
	// at path, stopping when fn returns false.
	Each(path string, fn func(i int, v View) bool)

	// EachField calls fn with each key and string value of the object at
	// path, in document order.
	EachField(path string, fn func(key, value string) bool)

	// GetBytes returns the raw JSON at path, or false if not found.
	GetBytes(path string) ([]byte, bool)
}

// JSONInspector returns an Inspector that uses gjson for field access.
func JSONInspector() Inspector {
	return jsonInspector{}
}

type jsonInspector struct{}

func (jsonInspector) Inspect(raw []byte) (View, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidJSON
	}
	return jsonView{res: gjson.ParseBytes(raw)}, nil
}

type jsonView struct {
	res gjson.Result
}

func (v jsonView) HasField(path string) bool {
	return v.res.Get(path).Exists()
}

func (v jsonView) GetString(path string) (string, bool) {
	r := v.res.Get(path)
	if !r.Exists() || r.Type != gjson.String {
		return "", false
	}
	return r.String(), true
}

func (v jsonView) GetInt(path string) (int, bool) {
	r := v.res.Get(path)
	if !r.Exists() || r.Type != gjson.Number {
		return 0, false
	}
	return int(r.Int()), true
}

func (v jsonView) GetBool(path string) (bool, bool) {
	r := v.res.Get(path)
	if r.Type != gjson.True && r.Type != gjson.False {
		return false, false
	}
	return r.Bool(), true
}

func (v jsonView) GetStrings(path string) []string {
	r := v.res.Get(path)
	if !r.IsArray() {
		return nil
	}
	var out []string
	for _, r := range r.Array() {
		if r.Type == gjson.String {
			out = append(out, r.String())
		}
	}
	return out
}

func (v jsonView) Each(path string, fn func(i int, v View) bool) {
	r := v.res.Get(path)
	if !r.IsArray() {
		return
	}
	i := 0
	r.ForEach(func(_, value gjson.Result) bool {
		ok := fn(i, jsonView{res: value})
		i++
		return ok
	})
}

func (v jsonView) EachField(path string, fn func(key, value string) bool) {
	r := v.res.Get(path)
	if !r.IsObject() {
		return
	}
	r.ForEach(func(key, value gjson.Result) bool {
		return fn(key.String(), value.String())
	})
}

func (v jsonView) GetBytes(path string) ([]byte, bool) {
	r := v.res.Get(path)
	if !r.Exists() {
		return nil, false
	}
	return []byte(r.Raw), true
}
