package manifest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingField is returned when an entry lacks a required field.
	ErrMissingField = errors.New("manifest: missing field")
	// ErrInvalidValue is returned when a field holds a value the manifest
	// format does not allow.
	ErrInvalidValue = errors.New("manifest: invalid value")
)

// Rule checks that a manifest entry has the shape the loader expects.
// Check returns nil on success or an error naming the offending field.
type Rule interface {
	Check(v View) error
}

// RuleFunc adapts a function to a Rule.
type RuleFunc func(v View) error

func (f RuleFunc) Check(v View) error { return f(v) }

// matches reports whether v passes r.
func matches(r Rule, v View) bool {
	return r.Check(v) == nil
}

// Required returns a Rule that passes when all paths exist.
func Required(paths ...string) Rule {
	return RuleFunc(func(v View) error {
		for _, p := range paths {
			if !v.HasField(p) {
				return fmt.Errorf("%w: %s", ErrMissingField, p)
			}
		}
		return nil
	})
}

// OneOf returns a Rule that passes when the string at path is one of
// values. A missing field passes; combine with Required to demand it.
func OneOf(path string, values ...string) Rule {
	return RuleFunc(func(v View) error {
		if !v.HasField(path) {
			return nil
		}
		if s, ok := v.GetString(path); ok {
			for _, val := range values {
				if s == val {
					return nil
				}
			}
		}
		got, _ := v.GetBytes(path)
		return fmt.Errorf("%w: %s is %s, want one of %s", ErrInvalidValue, path, got, strings.Join(values, ", "))
	})
}

// Strings returns a Rule that passes when each path, if present, holds an
// array of strings.
func Strings(paths ...string) Rule {
	return RuleFunc(func(v View) error {
		for _, p := range paths {
			if !v.HasField(p) {
				continue
			}
			raw, _ := v.GetBytes(p)
			n := 0
			v.Each(p, func(int, View) bool {
				n++
				return true
			})
			if raw[0] != '[' || len(v.GetStrings(p)) != n {
				return fmt.Errorf("%w: %s must be an array of strings", ErrInvalidValue, p)
			}
		}
		return nil
	})
}

// Bools returns a Rule that passes when each path, if present, holds a
// boolean.
func Bools(paths ...string) Rule {
	return RuleFunc(func(v View) error {
		for _, p := range paths {
			if _, ok := v.GetBool(p); v.HasField(p) && !ok {
				return fmt.Errorf("%w: %s must be a boolean", ErrInvalidValue, p)
			}
		}
		return nil
	})
}

// Ints returns a Rule that passes when each path, if present, holds a
// number.
func Ints(paths ...string) Rule {
	return RuleFunc(func(v View) error {
		for _, p := range paths {
			if _, ok := v.GetInt(p); v.HasField(p) && !ok {
				return fmt.Errorf("%w: %s must be a number", ErrInvalidValue, p)
			}
		}
		return nil
	})
}

// All returns a Rule that passes when every rule passes, reporting the
// first failure.
func All(rules ...Rule) Rule {
	return RuleFunc(func(v View) error {
		for _, r := range rules {
			if err := r.Check(v); err != nil {
				return err
			}
		}
		return nil
	})
}
