// Copyright 2019 The netsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Updater is the interface implemented by custom parts built through
// reflection. Update is called once per simulation step with the pin
// number fields already resolved. See MakePart.
type Updater interface {
	Update(c *Circuit)
}

// MakePart builds a PartSpec from a struct implementing Updater. Pins
// are int fields tagged `hw:"in"` or `hw:"out"`, buses are arrays of
// int. The pin name defaults to the lowercased field name; a second tag
// value forces it: `hw:"in,sel"`.
//
//	type mux struct {
//		A, B int `hw:"in"`
//		S    int `hw:"in,sel"`
//		Out  int `hw:"out"`
//	}
//
//	func (m *mux) Update(c *Circuit) {
//		if c.Get(m.S) {
//			c.Set(m.Out, c.Get(m.B))
//		} else {
//			c.Set(m.Out, c.Get(m.A))
//		}
//	}
//
// MakePart panics on unsupported field types, this is a programmer
// error.
func MakePart(t Updater) *PartSpec {
	typ := reflect.TypeOf(t)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if k := typ.Kind(); k != reflect.Struct {
		panic(errors.Errorf("unsupported kind %q for part %q", k, typ.Name()))
	}

	sp := &PartSpec{Name: typ.Name()}

	for i, n := 0, typ.NumField(); i < n; i++ {
		f := typ.Field(i)
		pin, isInput, ok := pinTag(f)
		if !ok {
			continue
		}
		ft := f.Type
		switch {
		case ft.Kind() == reflect.Array && ft.Elem().Kind() == reflect.Int:
			for j := 0; j < ft.Len(); j++ {
				if isInput {
					sp.Inputs = append(sp.Inputs, busPin(pin, j))
				} else {
					sp.Outputs = append(sp.Outputs, busPin(pin, j))
				}
			}
		case ft.Kind() == reflect.Int:
			if isInput {
				sp.Inputs = append(sp.Inputs, pin)
			} else {
				sp.Outputs = append(sp.Outputs, pin)
			}
		default:
			panic(errors.Errorf("unsupported type %q for field %q in %q", ft.Kind(), f.Name, typ.Name()))
		}
	}
	sp.Mount = mountStruct(typ)
	return sp
}

func pinTag(f reflect.StructField) (pin string, isInput, ok bool) {
	tag, ok := f.Tag.Lookup("hw")
	if !ok {
		return "", false, false
	}
	pin = strings.ToLower(f.Name)
	tv := strings.Split(tag, ",")
	if len(tv) > 1 && tv[1] != "" {
		pin = tv[1]
	}
	switch tv[0] {
	case "in":
		return pin, true, true
	case "out":
		return pin, false, true
	}
	panic(errors.Errorf("unsupported tag %q for field %q", tag, f.Name))
}

func mountStruct(typ reflect.Type) MountFn {
	return func(s *Socket) []Component {
		v := reflect.New(typ)
		e := v.Elem()
		for i, n := 0, typ.NumField(); i < n; i++ {
			f := typ.Field(i)
			pin, _, ok := pinTag(f)
			if !ok {
				continue
			}
			fv := e.Field(i)
			if f.Type.Kind() == reflect.Array {
				for j := 0; j < fv.Len(); j++ {
					fv.Index(j).SetInt(int64(s.Pin(pin + "[" + strconv.Itoa(j) + "]")))
				}
			} else {
				fv.SetInt(int64(s.Pin(pin)))
			}
		}
		u := v.Interface().(Updater)
		return []Component{u.Update}
	}
}
