package ui

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/gofiber/template/html/v2"
)

//go:embed views/*.html
var viewsFS embed.FS

// NewEngine creates the template engine for the embedded views.
func NewEngine(debug bool) *html.Engine {
	views, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(views), ".html")
	engine.Debug(debug)

	engine.AddFunc("millis", func(t time.Time) int64 {
		return t.UnixMilli()
	})
	engine.AddFunc("ago", func(t time.Time) string {
		if t.IsZero() {
			return "never"
		}
		return time.Since(t).Truncate(time.Second).String() + " ago"
	})
	engine.AddFunc("add", func(a, b int) int {
		return a + b
	})
	return engine
}
