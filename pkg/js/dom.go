package js

import (
	"github.com/dop251/goja"

	"skiff/pkg/html"
)

// registerDocument binds a minimal document API onto the runtime:
// document.title, getElementById, and per-element textContent /
// getAttribute / setAttribute. Enough surface for inline javascript:
// targets to observably mutate the page.
func registerDocument(vm *goja.Runtime, doc *html.Document) {
	docObj := vm.NewObject()

	docObj.DefineAccessorProperty("title",
		vm.ToValue(func(goja.FunctionCall) goja.Value {
			return vm.ToValue(doc.Title)
		}),
		vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) > 0 {
				doc.Title = call.Arguments[0].String()
			}
			return goja.Undefined()
		}),
		goja.FLAG_TRUE, goja.FLAG_TRUE)

	docObj.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return goja.Null()
		}
		node := doc.ElementByID(call.Arguments[0].String())
		if node == nil {
			return goja.Null()
		}
		return wrapNode(vm, doc, node)
	})

	vm.Set("document", docObj)
}

func wrapNode(vm *goja.Runtime, doc *html.Document, node *html.Node) goja.Value {
	obj := vm.NewObject()

	obj.Set("tagName", node.TagName)

	obj.DefineAccessorProperty("textContent",
		vm.ToValue(func(goja.FunctionCall) goja.Value {
			return vm.ToValue(node.TextContent())
		}),
		vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) > 0 {
				node.Children = node.Children[:0]
				node.AppendText(call.Arguments[0].String())
				doc.NotifyLayoutUpdated()
			}
			return goja.Undefined()
		}),
		goja.FLAG_TRUE, goja.FLAG_TRUE)

	obj.Set("getAttribute", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return goja.Null()
		}
		if v, ok := node.GetAttribute(call.Arguments[0].String()); ok {
			return vm.ToValue(v)
		}
		return goja.Null()
	})

	obj.Set("setAttribute", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) >= 2 {
			if node.Attributes == nil {
				node.Attributes = make(map[string]string)
			}
			node.Attributes[call.Arguments[0].String()] = call.Arguments[1].String()
			doc.NotifyLayoutUpdated()
		}
		return goja.Undefined()
	})

	return obj
}
