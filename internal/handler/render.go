package handler

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/showtime"
)

// Date styles understood by the datetime template filter.
const (
	FullDateTime   = "Monday January, 2, 2006 at 3:04PM"
	MediumDateTime = "Mon 01, 02, 2006 3:04PM"
)

// TemplateRenderer implements echo.Renderer over a set of pages that share
// the main layout.  Pages are keyed by their path below templates/, for
// example "pages/home.html".
type TemplateRenderer struct {
	templates map[string]*template.Template
}

// NewTemplateRenderer parses every page under templates/pages, templates/forms
// and templates/errors together with the layout and the partials.  Dates
// passed to the datetime filter are shown in loc.
func NewTemplateRenderer(fsys fs.FS, loc *time.Location) (*TemplateRenderer, error) {
	if loc == nil {
		loc = time.UTC
	}
	funcs := template.FuncMap{
		"datetime": func(v any, style ...string) string {
			s := "medium"
			if len(style) > 0 {
				s = style[0]
			}
			return FormatDateTime(v, s, loc)
		},
		"contains": func(list []string, s string) bool { return slices.Contains(list, s) },
		"flag":     form.Flag,
		"dict":     dict,
	}

	shared := []string{"templates/layouts/main.html"}
	partials, err := fs.Glob(fsys, "templates/partials/*.html")
	if err != nil {
		return nil, err
	}
	shared = append(shared, partials...)

	r := &TemplateRenderer{templates: map[string]*template.Template{}}
	for _, dir := range []string{"pages", "forms", "errors"} {
		files, err := fs.Glob(fsys, path.Join("templates", dir, "*.html"))
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			t, err := template.New("main.html").Funcs(funcs).ParseFS(fsys, append(slices.Clone(shared), file)...)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", file, err)
			}
			r.templates[strings.TrimPrefix(file, "templates/")] = t
		}
	}
	return r, nil
}

// Render implements echo.Renderer.
func (r *TemplateRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, "main.html", data)
}

func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}

// FormatDateTime renders a time.Time, or a string in the show summary or
// RFC 3339 layout, in the "full" or "medium" style.  Unparsable strings
// are returned unchanged.
func FormatDateTime(v any, style string, loc *time.Location) string {
	var t time.Time
	switch x := v.(type) {
	case time.Time:
		t = x
	case string:
		parsed, err := time.ParseInLocation(showtime.StartTimeLayout, x, loc)
		if err != nil {
			if parsed, err = time.Parse(time.RFC3339, x); err != nil {
				return x
			}
		}
		t = parsed
	default:
		return fmt.Sprint(v)
	}
	layout := MediumDateTime
	if style == "full" {
		layout = FullDateTime
	}
	return t.In(loc).Format(layout)
}

// WantsJSON reports whether the client asked for JSON instead of HTML.  A
// header that also accepts text/html is a browser and gets HTML.
func WantsJSON(c echo.Context) bool {
	accept := c.Request().Header.Get(echo.HeaderAccept)
	return strings.Contains(accept, echo.MIMEApplicationJSON) && !strings.Contains(accept, echo.MIMETextHTML)
}

// render writes data with the named template, or as JSON when the client
// asked for it.  Pending flash messages and the form choice lists are
// added to the data of every page.
func render(c echo.Context, code int, name string, data echo.Map) error {
	if data == nil {
		data = echo.Map{}
	}
	if flashes := takeFlashes(c); len(flashes) > 0 {
		data["flashes"] = flashes
	}
	if WantsJSON(c) {
		return c.JSON(code, data)
	}
	if _, ok := data["errors"]; !ok {
		data["errors"] = map[string]string{}
	}
	data["states"] = form.States
	data["genres"] = form.Genres
	return c.Render(code, name, data)
}
