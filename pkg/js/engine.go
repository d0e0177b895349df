// Package js executes inline scripts against a document. The page-view
// controller uses it for javascript: pseudo-scheme link targets; page
// <script> blocks run through the same engine.
package js

import (
	"fmt"

	"github.com/dop251/goja"

	"skiff/pkg/html"
)

// Engine executes JavaScript against a document's node tree.
type Engine struct {
	vm *goja.Runtime
}

// New creates an Engine with a fresh goja runtime and the console API
// registered.
func New() *Engine {
	vm := goja.New()
	registerConsole(vm)
	return &Engine{vm: vm}
}

// Run executes one script source string with the given document bound as
// the `document` global.
func (e *Engine) Run(doc *html.Document, source string) error {
	registerDocument(e.vm, doc)
	if _, err := e.vm.RunString(source); err != nil {
		return fmt.Errorf("running script: %w", err)
	}
	return nil
}

// Execute runs all of the document's captured <script> blocks in order.
func (e *Engine) Execute(doc *html.Document) error {
	for i, script := range doc.Scripts {
		if err := e.Run(doc, script); err != nil {
			return fmt.Errorf("script %d: %w", i, err)
		}
	}
	return nil
}
