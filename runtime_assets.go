package hafriyat

import (
	"io/fs"

	"github.com/goliatone/go-hafriyat/pkg/renderers/vanilla"
)

// RuntimeAssetsFS exposes the stylesheet and the wasm loader the page links
// to. The wasm binary itself is built separately into server.wasm_dir.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(hafriyat.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
