// Copyright 2019 The netsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

// Package lex implements a small state-function lexer shared by the pin
// grammar and the HDL front end.
package lex

import (
	"fmt"
	"strconv"
)

// EOF is returned by Lexer.Next at end of input and is the Type of the
// final Item. It is untyped so that it compares against both runes and
// item types.
const EOF = -1

// Type identifies the kind of a lexed item. Values other than EOF are
// defined by the client grammar.
type Type int

// Pos is a byte offset into the input string.
type Pos int

// An Item is a single lexeme.
type Item struct {
	Type  Type
	Pos   Pos
	Value interface{}
}

func (i Item) String() string {
	switch v := i.Value.(type) {
	case string:
		return strconv.Quote(v)
	case rune:
		return strconv.QuoteRune(v)
	default:
		return fmt.Sprint(v)
	}
}

// A StateFn lexes some prefix of the input and returns the next state.
// Returning nil hands control back to the initial state.
type StateFn func(l *Lexer) StateFn

// Interface is the lexer's client facing side.
type Interface interface {
	Lex() Item
}

// Lexer holds the scanning state.
type Lexer struct {
	src   string
	pos   int // next rune index
	start int // start of current item
	cur   rune
	curSz int
	init  StateFn
	queue []Item
}

// New returns a lexer for src starting in state init.
func New(src string, init StateFn) *Lexer {
	return &Lexer{src: src, init: init}
}

// Lex returns the next item in the input stream.
func (l *Lexer) Lex() Item {
	for len(l.queue) == 0 {
		if l.init == nil {
			return Item{Type: EOF, Pos: Pos(l.pos), Value: "end of input"}
		}
		l.start = l.pos
		// run state functions until one emits or control returns to the
		// initial state. Stopping on emit lets EOF states return
		// themselves and still yield one item per Lex call.
		for state := l.init(l); state != nil && len(l.queue) == 0; state = state(l) {
		}
	}
	i := l.queue[0]
	l.queue = l.queue[1:]
	return i
}

// Next consumes and returns the next rune, or EOF.
func (l *Lexer) Next() rune {
	if l.pos >= len(l.src) {
		l.cur, l.curSz = EOF, 0
		return EOF
	}
	// inputs are ASCII grammars; multi-byte runes only ever show up in
	// error values, one byte at a time is good enough there.
	l.cur, l.curSz = rune(l.src[l.pos]), 1
	l.pos++
	return l.cur
}

// Current returns the last rune consumed by Next.
func (l *Lexer) Current() rune {
	return l.cur
}

// Backup un-reads the last rune consumed by Next.
func (l *Lexer) Backup() {
	l.pos -= l.curSz
	l.curSz = 0
}

// AcceptWhile consumes runes while pred holds.
func (l *Lexer) AcceptWhile(pred func(r rune) bool) {
	for {
		r := l.Next()
		if r == EOF {
			return
		}
		if !pred(r) {
			l.Backup()
			return
		}
	}
}

// Emit queues an item whose position is the start of the current lexeme.
func (l *Lexer) Emit(t Type, value interface{}) {
	l.queue = append(l.queue, Item{Type: t, Pos: Pos(l.start), Value: value})
}
