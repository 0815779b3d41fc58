package lang

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dantswain/nushell/internal/value"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokInt
	tokString
	tokIdent
	tokVar  // $name, text holds the name without the dollar
	tokFlag // -a or --all, text holds the raw spelling with dashes
	tokLBracket
	tokRBracket
	tokLBrace
	tokRBrace
	tokLParen
	tokRParen
	tokPipe
	tokComma
	tokDot
	tokPlus
	tokGt
)

type token struct {
	kind tokenKind
	text string
	span value.Span
}

// lex tokenizes a pipeline source string. Tokens carry byte spans into
// the source so every AST node and value can point back at it.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	n := len(src)

	emit := func(kind tokenKind, start, end int) {
		toks = append(toks, token{kind: kind, text: src[start:end], span: value.NewSpan(start, end)})
	}

	for i < n {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case c == '#':
			// Comment to end of line.
			for i < n && src[i] != '\n' {
				i++
			}

		case c == '"':
			start := i
			i++
			var sb strings.Builder
			closed := false
			for i < n {
				if src[i] == '\\' && i+1 < n {
					switch src[i+1] {
					case '"':
						sb.WriteByte('"')
					case '\\':
						sb.WriteByte('\\')
					case 'n':
						sb.WriteByte('\n')
					case 't':
						sb.WriteByte('\t')
					default:
						return nil, &ParseError{
							Message: fmt.Sprintf("unknown escape \\%c", src[i+1]),
							Span:    value.NewSpan(i, i+2),
						}
					}
					i += 2
					continue
				}
				if src[i] == '"' {
					closed = true
					i++
					break
				}
				sb.WriteByte(src[i])
				i++
			}
			if !closed {
				return nil, &ParseError{
					Message: "unclosed string literal",
					Span:    value.NewSpan(start, n),
				}
			}
			toks = append(toks, token{kind: tokString, text: sb.String(), span: value.NewSpan(start, i)})

		case c == '$':
			start := i
			i++
			j := i
			for j < n && isIdentByte(src[j]) {
				j++
			}
			if j == i {
				return nil, &ParseError{
					Message: "expected variable name after $",
					Span:    value.NewSpan(start, start+1),
				}
			}
			toks = append(toks, token{kind: tokVar, text: src[i:j], span: value.NewSpan(start, j)})
			i = j

		case c == '-' && i+1 < n && isDigit(src[i+1]):
			start := i
			i++
			for i < n && isDigit(src[i]) {
				i++
			}
			emit(tokInt, start, i)

		case c == '-':
			start := i
			i++
			if i < n && src[i] == '-' {
				i++
			}
			j := i
			for j < n && isIdentByte(src[j]) {
				j++
			}
			if j == i {
				return nil, &ParseError{
					Message: "expected flag name after dash",
					Span:    value.NewSpan(start, i),
				}
			}
			emit(tokFlag, start, j)
			i = j

		case isDigit(c):
			start := i
			for i < n && isDigit(src[i]) {
				i++
			}
			emit(tokInt, start, i)

		case isIdentStart(c):
			start := i
			for i < n && isIdentByte(src[i]) {
				i++
			}
			emit(tokIdent, start, i)

		default:
			start := i
			var kind tokenKind
			switch c {
			case '[':
				kind = tokLBracket
			case ']':
				kind = tokRBracket
			case '{':
				kind = tokLBrace
			case '}':
				kind = tokRBrace
			case '(':
				kind = tokLParen
			case ')':
				kind = tokRParen
			case '|':
				kind = tokPipe
			case ',':
				kind = tokComma
			case '.':
				kind = tokDot
			case '+':
				kind = tokPlus
			case '>':
				kind = tokGt
			default:
				return nil, &ParseError{
					Message: fmt.Sprintf("unexpected character %q", rune(c)),
					Span:    value.NewSpan(i, i+1),
				}
			}
			i++
			emit(kind, start, i)
		}
	}

	toks = append(toks, token{kind: tokEOF, span: value.NewSpan(n, n)})
	return toks, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || unicode.IsLetter(rune(c))
}

func isIdentByte(c byte) bool {
	return c == '_' || isDigit(c) || unicode.IsLetter(rune(c))
}
