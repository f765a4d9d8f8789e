package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog"

	"github.com/s0up4200/rallyctl/rally"
)

// Filter is a compiled expression evaluated against Rally objects
type Filter struct {
	program *vm.Program
	expr    string
	logger  zerolog.Logger
}

// helpers are available to every expression. They shadow object fields
// of the same name.
var helpers = map[string]any{
	// Date helpers
	"parseDate": parseDate,
	"daysSince": func(v any) int {
		t := toTime(v)
		if t.IsZero() {
			return 0
		}
		return int(time.Since(t).Hours() / 24)
	},
	"daysAgo": func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	},
	"now": time.Now,

	// String helpers. contains, startsWith and endsWith are expr operators
	// and are case sensitive; these fold case.
	"icontains": func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	},
	"istartsWith": func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	},
	"iendsWith": func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	},
	"lower": strings.ToLower,
	"upper": strings.ToUpper,

	// Reference helpers
	"refOf": refOf,
	"refID": refID,
}

// Compile compiles a filter expression. Object fields are top-level
// variables, e.g. `ScheduleState == "Accepted" && PlanEstimate > 3`.
func Compile(expression string, logger zerolog.Logger) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression", Position: -1}
	}

	program, err := expr.Compile(expression,
		expr.Env(helpers),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     err.Error(),
			Position:   -1,
			Err:        err,
		}
	}

	return &Filter{
		program: program,
		expr:    expression,
		logger:  logger,
	}, nil
}

// Match reports whether obj satisfies the filter. Evaluation errors,
// typically from fields missing on obj, count as no match.
func (f *Filter) Match(obj rally.Object) bool {
	env := make(map[string]any, len(obj)+len(helpers))
	for k, v := range obj {
		env[k] = v
	}
	for k, v := range helpers {
		env[k] = v
	}

	result, err := expr.Run(f.program, env)
	if err != nil {
		f.logger.Debug().
			Err(err).
			Str("ref", obj.Ref()).
			Str("filter", f.expr).
			Msg("Filter evaluation failed")
		return false
	}

	matched, ok := result.(bool)
	return ok && matched
}

// Apply returns the objects matching the filter, in order
func (f *Filter) Apply(objects []rally.Object) []rally.Object {
	var matches []rally.Object
	for _, obj := range objects {
		if f.Match(obj) {
			matches = append(matches, obj)
		}
	}
	return matches
}

// String returns the original expression
func (f *Filter) String() string {
	return f.expr
}

// parseDate parses Rally timestamps and plain dates. Invalid input
// yields the zero time.
func parseDate(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func toTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		return parseDate(t)
	default:
		return time.Time{}
	}
}

// refOf returns the _ref of a nested object such as Owner or Project
func refOf(v any) string {
	switch obj := v.(type) {
	case map[string]any:
		ref, _ := obj["_ref"].(string)
		return ref
	case rally.Object:
		return obj.Ref()
	case string:
		return obj
	default:
		return ""
	}
}

// refID extracts the object id from a reference, e.g. "/defect/42.js" -> "42"
func refID(v any) string {
	ref := strings.TrimSuffix(refOf(v), ".js")
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		ref = ref[i+1:]
	}
	return ref
}

// MustCompile is like Compile but panics on error. Intended for tests
// and package-level filters.
func MustCompile(expression string) *Filter {
	f, err := Compile(expression, zerolog.Nop())
	if err != nil {
		panic(fmt.Sprintf("filter: %v", err))
	}
	return f
}
