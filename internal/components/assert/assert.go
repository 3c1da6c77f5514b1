package assert

import (
	"fmt"
	"reflect"
)

// NotNil panics if value is nil, nil pointers wrapped in an interface
// included.
func NotNil(value any) {
	if value == nil {
		panic("expected value to be not nil")
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		if v.IsNil() {
			panic(fmt.Sprintf("expected %s to be not nil", v.Type()))
		}
	}
}

