// Package view renders the storefront's HTML pages.
package view

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"storefront/internal/errors"
	"storefront/internal/usecase"
	"storefront/internal/util"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Renderer implements echo.Renderer with one template set per page, each
// sharing the layout.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page template.
func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"price":       util.FormatPrice,
		"total":       util.FormatTotal,
		"productURL":  usecase.ProductRoute,
		"paymentURL":  usecase.PaymentRoute,
		"flashClass":  flashClass,
		"paymentOpts": paymentOptions,
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "list templates")
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		if file == layoutFile {
			continue
		}

		tmpl, err := template.New(path.Base(layoutFile)).Funcs(funcs).ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s", file)
		}
		pages[strings.TrimSuffix(path.Base(file), ".html")] = tmpl
	}

	return &Renderer{pages: pages}, nil
}

// Render executes the named page.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return errors.Errorf("template %q not found", name)
	}

	return errors.WithStack(tmpl.ExecuteTemplate(w, path.Base(layoutFile), data))
}

func flashClass(status usecase.Status) string {
	switch status {
	case usecase.StatusSuccess:
		return "alert-success"
	case usecase.StatusWarning:
		return "alert-warning"
	case usecase.StatusError:
		return "alert-danger"
	default:
		return "alert-info"
	}
}

type paymentOption struct {
	Code string
	Name string
}

func paymentOptions() []paymentOption {
	return []paymentOption{
		{Code: "T", Name: usecase.PaymentProviders["T"]},
		{Code: "Z", Name: usecase.PaymentProviders["Z"]},
		{Code: "U", Name: usecase.PaymentProviders["U"]},
	}
}
