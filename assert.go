package chartdraw

import (
	"fmt"
	"reflect"
)

// ContractError reports that a collaborator broke its contract, for
// example a pane view source returned no price scale. It is raised with
// panic by Assert and Ensure and is never recovered inside chartdraw.
type ContractError struct {
	Msg string
}

func (e *ContractError) Error() string {
	return "chartdraw: contract violation: " + e.Msg
}

// Assert panics with a *ContractError when cond is false.
func Assert(cond bool, msg string) {
	if !cond {
		panic(&ContractError{Msg: msg})
	}
}

// Ensure returns v when it is non-nil and panics with a *ContractError
// naming what otherwise. Typed nil pointers and interfaces holding them
// count as nil.
func Ensure[T any](v T, what string) T {
	if isNil(v) {
		panic(&ContractError{Msg: fmt.Sprintf("%s is nil", what)})
	}
	return v
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
