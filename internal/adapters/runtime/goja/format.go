package goja

import (
	"strconv"

	goja "github.com/dop251/goja"
)

// display renders a value the way the REPL prints results: strings quoted,
// objects and arrays as indented JSON, functions and errors by name.
func (e *Engine) display(val goja.Value) string {
	if val == nil || goja.IsUndefined(val) {
		return ""
	}
	if goja.IsNull(val) {
		return "null"
	}

	if s, ok := val.Export().(string); ok {
		return strconv.Quote(s)
	}

	obj, ok := val.(*goja.Object)
	if !ok {
		return val.String()
	}

	if _, isFunc := goja.AssertFunction(val); isFunc {
		name := obj.Get("name")
		if name == nil || name.String() == "" {
			return "[Function (anonymous)]"
		}
		return "[Function: " + name.String() + "]"
	}

	if obj.ClassName() == "Error" {
		return val.String()
	}

	if text, ok := e.stringify(val); ok {
		return text
	}

	return val.String()
}

func (e *Engine) stringify(val goja.Value) (text string, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	json := e.vm.Get("JSON").ToObject(e.vm)
	stringify, isFunc := goja.AssertFunction(json.Get("stringify"))
	if !isFunc {
		return "", false
	}

	out, err := stringify(json, val, goja.Null(), e.vm.ToValue(2))
	if err != nil || out == nil || goja.IsUndefined(out) {
		return "", false
	}

	return out.String(), true
}
