package http

import (
	"fmt"
	"html"
	"mime"
	"path/filepath"
	"strings"

	"github.com/alexsup/swifter/filesystem"
)

// ShareFile returns a handler serving the single file at path. The body goes
// through the whole-file transfer path of the body writer.
func ShareFile(fs filesystem.Filesystem, path string) Handler {
	return func(req *Request) Response {
		return serveFile(fs, path)
	}
}

// ShareDirectory returns a handler serving files under root. Register it on
// a wildcard route; the "*" parameter selects the file. Directories serve
// their index.html when present, or a generated listing when listing is
// true.
func ShareDirectory(fs filesystem.Filesystem, root string, listing bool) Handler {
	return func(req *Request) Response {
		rel := filepath.Clean("/" + req.Param("*"))
		path := filepath.Join(root, rel)

		isDir, err := fs.IsDirectory(path)
		if err != nil {
			return NewResponse(StatusInternalServerError).WithText(err.Error())
		}
		if !isDir {
			return serveFile(fs, path)
		}

		index := filepath.Join(path, "index.html")
		if exists, _ := fs.FileExists(index); exists {
			return serveFile(fs, index)
		}
		if listing {
			return listDirectory(fs, path, req.Path)
		}
		return NewResponse(StatusNotFound).WithText("not found")
	}
}

func serveFile(fs filesystem.Filesystem, path string) Response {
	file, err := fs.Open(path)
	if err != nil {
		if err == filesystem.ErrFileNotFound {
			return NewResponse(StatusNotFound).WithText("not found")
		}
		return NewResponse(StatusInternalServerError).WithText(err.Error())
	}

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		file.Close()
		return NewResponse(StatusNotFound).WithText("not found")
	}

	resp := NewResponse(StatusOK)
	if contentType := mime.TypeByExtension(filepath.Ext(path)); contentType != "" {
		resp.Headers.Set("Content-Type", contentType)
	}
	resp.ContentLength = info.Size()
	resp.WriteBody = func(w BodyWriter) error {
		defer file.Close()
		_, err := w.WriteFile(file)
		return err
	}
	return resp
}

func listDirectory(fs filesystem.Filesystem, path, requestPath string) Response {
	infos, err := fs.ListDirectory(path)
	if err != nil {
		return NewResponse(StatusInternalServerError).WithText(err.Error())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<html><body><h3>%s</h3><table>", html.EscapeString(requestPath))
	for _, info := range infos {
		name := info.Name()
		href := strings.TrimSuffix(requestPath, "/") + "/" + name
		size := ""
		if !info.IsDir() {
			size = formatSize(info.Size())
		}
		fmt.Fprintf(&b, "<tr><td><a href=%q>%s</a></td><td>%s</td></tr>",
			href, html.EscapeString(name), size)
	}
	b.WriteString("</table></body></html>")

	return NewResponse(StatusOK).WithHTML(b.String())
}

func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
