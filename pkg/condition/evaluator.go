// Package condition provides safe boolean-expression evaluation for filter
// and conditional transformations. Expressions are never executed as code;
// they are tokenized and interpreted against a single data object.
package condition

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/weftlabs/weft/pkg/values"
)

var numberPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// Evaluator evaluates condition strings against payload objects. It never
// returns an error: any parse or evaluation failure resolves to false and is
// logged as a diagnostic.
type Evaluator struct {
	logger *slog.Logger
}

func NewEvaluator(logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}

	return &Evaluator{logger: logger.With("module", "condition_evaluator")}
}

// Evaluate interprets a condition against data.
//
// Supported forms:
//   - a single field path, checked for truthiness
//   - "field op literal" with op one of == != >= <= > <
//
// Anything longer (expressions using &&, || or parentheses) is not handled by
// this interpreter and evaluates to a permissive true with a logged warning.
// Whether such expressions should instead fail closed is an open product
// question; the permissive behavior is kept until that is settled.
func (e *Evaluator) Evaluate(cond string, data map[string]any) bool {
	if strings.TrimSpace(cond) == "" {
		return false
	}

	tokens, err := tokenize(cond)
	if err != nil {
		e.logger.Warn("Failed to tokenize condition", "condition", cond, "error", err)

		return false
	}

	switch len(tokens) {
	case 0:
		return false
	case 1:
		v, _ := values.Get(data, tokens[0])

		return values.Truthy(v)
	case 3:
		return e.compare(tokens[0], tokens[1], tokens[2], data)
	default:
		e.logger.Warn("Unsupported condition expression, defaulting to true",
			"condition", cond, "tokens", len(tokens))

		return true
	}
}

func (e *Evaluator) compare(field, operator, rawLiteral string, data map[string]any) bool {
	left, _ := values.Get(data, field)
	right := parseLiteral(rawLiteral)

	switch operator {
	case "==":
		return values.DeepEqual(left, right)
	case "!=":
		return !values.DeepEqual(left, right)
	case ">", ">=", "<", "<=":
		ordering, ok := values.Compare(left, right)
		if !ok {
			return false
		}

		switch operator {
		case ">":
			return ordering > 0
		case ">=":
			return ordering >= 0
		case "<":
			return ordering < 0
		default:
			return ordering <= 0
		}
	default:
		e.logger.Warn("Unknown comparison operator", "operator", operator)

		return false
	}
}

// parseLiteral converts a literal token: number, boolean, null/undefined,
// de-quoted string, else the raw token as a string.
func parseLiteral(token string) any {
	if numberPattern.MatchString(token) {
		if f, err := strconv.ParseFloat(token, 64); err == nil {
			return f
		}
	}

	switch token {
	case "true":
		return true
	case "false":
		return false
	case "null", "undefined":
		return nil
	}

	if len(token) >= 2 {
		if (token[0] == '\'' && token[len(token)-1] == '\'') ||
			(token[0] == '"' && token[len(token)-1] == '"') {
			return token[1 : len(token)-1]
		}
	}

	return token
}
