// Package htmldoc implements the controller surface over a parsed HTML
// document. It backs the simulate command and lets the controller run
// against the page the vanilla renderer produces without a browser.
package htmldoc
