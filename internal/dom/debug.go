//go:build js && wasm

package dom

import (
	"syscall/js"
)

// initDebug exposes window.debugForm, which prints the contact form and the
// controller state.
func (rt *Runtime) initDebug() {
	rt.console.Call("log", "Geliştirme modu aktif")

	rt.win.Set("debugForm", rt.callback("debug-form", func([]js.Value) {
		form := rt.doc.Call("getElementById", rt.cfg.FormID)
		info := map[string]any{
			"form":         form,
			"inputs":       js.Null(),
			"submitButton": js.Null(),
			"state":        "uninitialised",
		}
		if !missing(form) {
			info["inputs"] = form.Call("querySelectorAll", "input, textarea")
			info["submitButton"] = form.Call("querySelector", `button[type="submit"]`)
		}

		rt.mu.Lock()
		c := rt.controller
		rt.mu.Unlock()
		if c != nil {
			info["state"] = c.State().String()
		}
		rt.console.Call("log", "Form durumu:", info)
	}))
}
