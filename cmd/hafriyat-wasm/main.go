//go:build js && wasm

// Command hafriyat-wasm is the browser runtime of the site. Build it with
// GOOS=js GOARCH=wasm and serve it next to wasm_exec.js.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goliatone/go-hafriyat/internal/dom"
)

func main() {
	if err := dom.Run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
