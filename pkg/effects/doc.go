// Package effects holds the constants and pure computations behind the page
// effects: navbar restyling, smooth-scroll offsets, reveal observers, the
// mobile viewport unit and press/hover feedback. The browser runtime reads
// them from a RuntimeConfig serialised into the page, so values live here
// only.
package effects
