package clif

import "strings"

// sexpr is a node of the parsed S-expression tree: either an atom (string)
// or a list ([]sexpr).
type sexpr any

// tokenize splits a CLIF string into tokens. Parentheses are standalone
// tokens; everything else is a whitespace-delimited atom.
func tokenize(input string) []string {
	replaced := strings.NewReplacer("(", " ( ", ")", " ) ").Replace(input)
	return strings.Fields(replaced)
}

// readSexpr parses one expression from the token stream by recursive
// descent, returning the expression and the remaining tokens.
func readSexpr(tokens []string) (sexpr, []string, error) {
	if len(tokens) == 0 {
		return nil, nil, &SyntaxError{
			Code:    ErrCodeUnexpectedEOF,
			Message: "unexpected end of input",
		}
	}
	head, rest := tokens[0], tokens[1:]
	switch head {
	case "(":
		var list []sexpr
		for {
			if len(rest) == 0 {
				return nil, nil, &SyntaxError{
					Code:    ErrCodeUnbalanced,
					Message: "unclosed parenthesis",
				}
			}
			if rest[0] == ")" {
				return list, rest[1:], nil
			}
			elem, remaining, err := readSexpr(rest)
			if err != nil {
				return nil, nil, err
			}
			list = append(list, elem)
			rest = remaining
		}
	case ")":
		return nil, nil, &SyntaxError{
			Code:    ErrCodeUnbalanced,
			Message: "unexpected closing parenthesis",
		}
	default:
		return head, rest, nil
	}
}

// parseSexpr tokenizes and parses a complete CLIF sentence. Trailing
// tokens after the first expression are an error.
func parseSexpr(input string) (sexpr, error) {
	tokens := tokenize(input)
	expr, rest, err := readSexpr(tokens)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, &SyntaxError{
			Code:    ErrCodeUnbalanced,
			Message: "trailing input after sentence",
		}
	}
	return expr, nil
}
