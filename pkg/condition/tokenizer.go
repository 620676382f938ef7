package condition

import (
	"errors"
	"strings"
)

var errUnterminatedString = errors.New("unterminated string literal")

// tokenize splits a condition on whitespace while keeping quoted string
// literals (single or double quotes, retained with their quotes) as single
// tokens and emitting parentheses as their own tokens.
func tokenize(cond string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		quote   rune
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range cond {
		switch {
		case quote != 0:
			current.WriteRune(r)

			if r == quote {
				quote = 0

				flush()
			}
		case r == '\'' || r == '"':
			flush()

			quote = r

			current.WriteRune(r)
		case r == '(' || r == ')':
			flush()

			tokens = append(tokens, string(r))
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			current.WriteRune(r)
		}
	}

	if quote != 0 {
		return nil, errUnterminatedString
	}

	flush()

	return tokens, nil
}
