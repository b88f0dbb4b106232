// Copyright 2019 The netsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package hdl

import (
	"strings"
	"unicode"

	"github.com/dtbx/netsim/internal/lex"
)

// Token types of the chip file grammar.
const (
	tEOF lex.Type = lex.EOF
	tRaw lex.Type = iota
	tIdent
	tInt
	tLBrace
	tRBrace
	tLParen
	tRParen
	tLBracket
	tRBracket
	tComma
	tSemi
	tColon
	tEqual
	tRange
)

func scan(src string) lex.Interface {
	return lex.New(src, scanAny)
}

func scanAny(l *lex.Lexer) lex.StateFn {
	r := l.Next()
	switch {
	case r == lex.EOF:
		return scanEOF
	case unicode.IsSpace(r):
		l.AcceptWhile(unicode.IsSpace)
	case unicode.IsLetter(r) || r == '_':
		return scanIdent
	case '0' <= r && r <= '9':
		return scanNumber
	case r == '{':
		l.Emit(tLBrace, "{")
	case r == '}':
		l.Emit(tRBrace, "}")
	case r == '(':
		l.Emit(tLParen, "(")
	case r == ')':
		l.Emit(tRParen, ")")
	case r == '[':
		l.Emit(tLBracket, "[")
	case r == ']':
		l.Emit(tRBracket, "]")
	case r == ',':
		l.Emit(tComma, ",")
	case r == ';':
		l.Emit(tSemi, ";")
	case r == ':':
		l.Emit(tColon, ":")
	case r == '=':
		l.Emit(tEqual, "=")
	case r == '.':
		if l.Next() == '.' {
			l.Emit(tRange, "..")
			break
		}
		l.Backup()
		l.Emit(tRaw, '.')
		return scanEOF
	case r == '/':
		return scanComment
	default:
		l.Emit(tRaw, r)
		return scanEOF
	}
	return nil
}

func scanComment(l *lex.Lexer) lex.StateFn {
	switch l.Next() {
	case '/':
		l.AcceptWhile(func(r rune) bool { return r != '\n' })
	case '*':
		var star bool
		for {
			r := l.Next()
			if r == lex.EOF {
				l.Emit(tRaw, "unterminated comment")
				return scanEOF
			}
			if star && r == '/' {
				break
			}
			star = r == '*'
		}
	default:
		l.Backup()
		l.Emit(tRaw, '/')
		return scanEOF
	}
	return nil
}

func scanNumber(l *lex.Lexer) lex.StateFn {
	i := int(l.Current() - '0')
	r := l.Next()
	for '0' <= r && r <= '9' {
		i = i*10 + int(r-'0')
		r = l.Next()
	}
	l.Backup()
	l.Emit(tInt, i)
	return nil
}

func scanIdent(l *lex.Lexer) lex.StateFn {
	var b strings.Builder
	b.WriteRune(l.Current())
	r := l.Next()
	for unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
		b.WriteRune(r)
		r = l.Next()
	}
	l.Backup()
	l.Emit(tIdent, b.String())
	return nil
}

func scanEOF(l *lex.Lexer) lex.StateFn {
	l.Emit(lex.EOF, "end of input")
	return scanEOF
}
