package chain

import (
	"fmt"
	"reflect"
	"runtime"
)

// NameOf returns the fully-qualified name of a function value, such as
// "github.com/foo/bar.FuncName", for use as an entry name. Non-function
// values are described by their type.
func NameOf(fn any) string {
	if fn == nil {
		return "<nil>"
	}
	val := reflect.ValueOf(fn)
	if val.Kind() != reflect.Func {
		return fmt.Sprintf("%T", fn)
	}
	if val.IsNil() {
		return fmt.Sprintf("<nil %s>", val.Type())
	}
	if info := runtime.FuncForPC(val.Pointer()); info != nil {
		return info.Name()
	}
	return val.Type().String()
}
