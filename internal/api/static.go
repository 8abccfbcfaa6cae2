package api

import (
	"net/http"
	"os"
	"path"
)

// spaHandler serves a built front end. Paths that do not name a file get
// index.html so the client-side router can take over.
type spaHandler struct {
	root  http.FileSystem
	files http.Handler
}

// newSPAHandler returns false when dir does not exist. Checked once at startup.
func newSPAHandler(dir string) (http.Handler, bool) {
	if dir == "" {
		return nil, false
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, false
	}

	root := http.Dir(dir)
	return spaHandler{
		root:  root,
		files: http.FileServer(root),
	}, true
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	upath := path.Clean("/" + r.URL.Path)

	// Regular files are served directly. http.FileServer and http.ServeFile
	// would redirect ".../index.html" to "./".
	if h.serveFile(w, r, upath) {
		return
	}
	if h.isIndexedDir(upath) {
		h.files.ServeHTTP(w, r)
		return
	}
	if !h.serveFile(w, r, "/index.html") {
		writeDetail(w, http.StatusNotFound, msgRouteNotFound)
	}
}

// serveFile writes upath if it is a regular file and reports whether it did
func (h spaHandler) serveFile(w http.ResponseWriter, r *http.Request, upath string) bool {
	f, err := h.root.Open(upath)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}

// isIndexedDir reports whether upath is a directory with its own index.html
func (h spaHandler) isIndexedDir(upath string) bool {
	f, err := h.root.Open(upath)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.IsDir() {
		return false
	}

	idx, err := h.root.Open(path.Join(upath, "index.html"))
	if err != nil {
		return false
	}
	defer idx.Close()

	st, err := idx.Stat()
	return err == nil && st.Mode().IsRegular()
}
