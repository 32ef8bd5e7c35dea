// Package matchers compares decoded JSON bodies and header maps against
// snapshots in which volatile fields are replaced by predicates.
package matchers

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"newsletter-admin-go/pkg/utils"
	"newsletter-admin-go/pkg/webhooks"
)

// Object and Array spell snapshot literals the way encoding/json decodes them.
type (
	Object = map[string]any
	Array  = []any
)

// Matcher stands in for a value that differs between runs.
type Matcher interface {
	Match(actual any) bool
	String() string
}

type predicate struct {
	name string
	fn   func(any) bool
}

func (p predicate) Match(actual any) bool { return p.fn(actual) }
func (p predicate) String() string        { return p.name }

// New returns a named Matcher backed by fn.
func New(name string, fn func(actual any) bool) Matcher {
	return predicate{name: name, fn: fn}
}

var (
	contentVersionPattern = regexp.MustCompile(`^v\d+\.\d+$`)
	agentPattern          = regexp.MustCompile(`^[A-Za-z][\w.-]*/\d+\.\d+\.\d+( \(.+\))?$`)
)

var (
	AnyObjectID = New("AnyObjectID", func(v any) bool {
		s, ok := v.(string)
		return ok && len(s) == 24 && utils.IsObjectID(s)
	})

	AnyUUID = New("AnyUUID", func(v any) bool {
		s, ok := v.(string)
		if !ok || len(s) != 36 {
			return false
		}
		_, err := uuid.Parse(s)
		return err == nil
	})

	AnyISODateTime = New("AnyISODateTime", func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		_, err := time.Parse(webhooks.TimeFormat, s)
		return err == nil
	})

	AnyContentVersion = New("AnyContentVersion", func(v any) bool {
		s, ok := v.(string)
		return ok && contentVersionPattern.MatchString(s)
	})

	// AnyNumber accepts JSON numbers and decimal strings such as Content-Length.
	AnyNumber = New("AnyNumber", func(v any) bool {
		if s, ok := v.(string); ok {
			_, err := strconv.ParseInt(s, 10, 64)
			return err == nil
		}
		_, ok := toFloat(v)
		return ok
	})

	AnyAgent = New("AnyAgent", func(v any) bool {
		s, ok := v.(string)
		return ok && agentPattern.MatchString(s)
	})

	AnyString = New("AnyString", func(v any) bool {
		_, ok := v.(string)
		return ok
	})
)

// MismatchError lists every path at which actual diverged from the snapshot.
type MismatchError struct {
	Mismatches []string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%d mismatch(es):\n  %s", len(e.Mismatches), strings.Join(e.Mismatches, "\n  "))
}

// Compare walks expected and actual together. Objects must have exactly the
// same keys, arrays the same length, and literals must be equal. A Matcher in
// expected is applied to the value at the same path.
func Compare(expected, actual any) error {
	var out []string
	compare("$", expected, actual, &out)
	if len(out) == 0 {
		return nil
	}
	return &MismatchError{Mismatches: out}
}

func compare(path string, expected, actual any, out *[]string) {
	switch exp := expected.(type) {
	case Matcher:
		if !exp.Match(actual) {
			*out = append(*out, fmt.Sprintf("%s: expected %s, got %#v", path, exp, actual))
		}

	case map[string]any:
		act, ok := actual.(map[string]any)
		if !ok {
			*out = append(*out, fmt.Sprintf("%s: expected object, got %T", path, actual))
			return
		}
		for _, key := range unionKeys(exp, act) {
			ev, inExpected := exp[key]
			av, inActual := act[key]
			child := path + "." + key
			switch {
			case !inActual:
				*out = append(*out, fmt.Sprintf("%s: missing", child))
			case !inExpected:
				*out = append(*out, fmt.Sprintf("%s: unexpected key with value %#v", child, av))
			default:
				compare(child, ev, av, out)
			}
		}

	case []any:
		act, ok := actual.([]any)
		if !ok {
			*out = append(*out, fmt.Sprintf("%s: expected array, got %T", path, actual))
			return
		}
		if len(exp) != len(act) {
			*out = append(*out, fmt.Sprintf("%s: expected %d element(s), got %d", path, len(exp), len(act)))
			return
		}
		for i := range exp {
			compare(fmt.Sprintf("%s[%d]", path, i), exp[i], act[i], out)
		}

	default:
		if !equalLiteral(exp, actual) {
			*out = append(*out, fmt.Sprintf("%s: expected %#v, got %#v", path, expected, actual))
		}
	}
}

func unionKeys(a, b map[string]any) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		seen[k] = struct{}{}
	}
	for k := range b {
		seen[k] = struct{}{}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func equalLiteral(expected, actual any) bool {
	if e, ok := toFloat(expected); ok {
		a, ok := toFloat(actual)
		return ok && a == e
	}
	return reflect.DeepEqual(expected, actual)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
