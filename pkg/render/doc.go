// Package render defines the renderer contract shared by the page and
// terminal renderers, the page data they consume and a name-keyed registry.
package render
