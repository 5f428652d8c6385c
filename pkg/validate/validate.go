// Package validate provides struct-tag validation for request bodies.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must not be zero/empty; a nil pointer fails
//	email               valid email address
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	gt=N gte=N lt=N lte=N
//	                    numeric comparison; works on ints, floats and any
//	                    type whose String() is a decimal number
//	decimals=N          at most N digits after the decimal point
//
// Pointer fields are dereferenced. A nil pointer only fails `required`.
//
//	type ProductRequest struct {
//	    Name     string           `json:"name"     validate:"required,max=255"`
//	    Price    *decimal.Decimal `json:"price"    validate:"required,gte=0,decimals=2"`
//	    Quantity *int             `json:"quantity" validate:"required,gte=1"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Errors maps a JSON field path to its first failing message.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Merge copies sub into e with every key prefixed, e.g. "products[0].".
func (e Errors) Merge(prefix string, sub Errors) {
	for k, v := range sub {
		e[prefix+k] = v
	}
}

// Struct validates all exported fields of v that carry a `validate` tag.
// An empty map means no errors.
func Struct(v interface{}) Errors {
	errs := make(Errors)
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return errs
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" || !field.IsExported() {
			continue
		}

		name := jsonFieldName(field)
		rules := splitRules(tag)
		value := rv.Field(i)

		if value.Kind() == reflect.Ptr {
			if value.IsNil() {
				if hasRule(rules, "required") {
					errs[name] = requiredMsg(name)
				}
				continue
			}
			value = value.Elem()
		}

		for _, rule := range rules {
			if msg := applyRule(rule, name, value); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}

	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func requiredMsg(field string) string {
	return fmt.Sprintf("The %s field is required.", field)
}

func applyRule(rule, field string, v reflect.Value) string {
	raw := stringOf(v)
	key, param, _ := strings.Cut(rule, "=")

	switch key {
	case "required":
		if isEmpty(v) {
			return requiredMsg(field)
		}

	case "email":
		if !emailRE.MatchString(raw) {
			return fmt.Sprintf("The %s must be a valid email address.", field)
		}
	case "min":
		n := mustParseFloat(param)
		if isNumeric(v) {
			if f, _ := toFloat(v); f < n {
				return fmt.Sprintf("The %s must be at least %s.", field, param)
			}
		} else if float64(len([]rune(raw))) < n {
			return fmt.Sprintf("The %s must be at least %s characters.", field, param)
		}
	case "max":
		n := mustParseFloat(param)
		if isNumeric(v) {
			if f, _ := toFloat(v); f > n {
				return fmt.Sprintf("The %s must not be greater than %s.", field, param)
			}
		} else if float64(len([]rune(raw))) > n {
			return fmt.Sprintf("The %s must not exceed %s characters.", field, param)
		}
	case "gt", "gte", "lt", "lte":
		f, ok := toFloat(v)
		if !ok {
			return fmt.Sprintf("The %s field must be a number.", field)
		}
		if msg := compare(key, field, param, f); msg != "" {
			return msg
		}
	case "decimals":
		if _, frac, ok := strings.Cut(raw, "."); ok {
			if n, _ := strconv.Atoi(param); len(strings.TrimRight(frac, "0")) > n {
				return fmt.Sprintf("The %s must not have more than %s decimal places.", field, param)
			}
		}
	}

	return ""
}

func compare(op, field, param string, f float64) string {
	n := mustParseFloat(param)
	switch op {
	case "gt":
		if f <= n {
			return fmt.Sprintf("The %s must be greater than %s.", field, param)
		}
	case "gte":
		if f < n {
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
		}
	case "lt":
		if f >= n {
			return fmt.Sprintf("The %s must be less than %s.", field, param)
		}
	case "lte":
		if f > n {
			return fmt.Sprintf("The %s must be less than or equal to %s.", field, param)
		}
	}
	return ""
}

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func stringOf(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", v.Interface())
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		return false // false is a valid boolean value, not empty
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	}
	return false
}

// isNumeric is true for Go number kinds and for Stringers whose text parses
// as a number (decimal.Decimal, big.Float).
func isNumeric(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Struct:
		if _, ok := v.Interface().(fmt.Stringer); ok {
			_, err := strconv.ParseFloat(stringOf(v), 64)
			return err == nil
		}
	}
	return false
}

func toFloat(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	f, err := strconv.ParseFloat(stringOf(v), 64)
	return f, err == nil
}

func mustParseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func jsonFieldName(f reflect.StructField) string {
	name := f.Tag.Get("json")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	if idx := strings.Index(name, ","); idx != -1 {
		name = name[:idx]
	}
	return name
}

// splitRules splits a tag on commas and drops blanks.
func splitRules(tag string) []string {
	var rules []string
	for _, tok := range strings.Split(tag, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			rules = append(rules, tok)
		}
	}
	return rules
}

func hasRule(rules []string, target string) bool {
	for _, r := range rules {
		if r == target {
			return true
		}
	}
	return false
}
