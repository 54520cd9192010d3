// Package prompt renders the Seaware booking script handed to the browser
// agent. The script text lives in a template resource; by default the one
// embedded under templates/.
package prompt

import (
	"bytes"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"text/template"
	"time"

	"github.com/nbenliogludev/seaware-booking-agent/internal/extract"
)

// DefaultTemplate is the identifier of the embedded booking script.
const DefaultTemplate = "seaware_booking.tmpl"

//go:embed templates/*.tmpl
var embedded embed.FS

// Data is what a template sees: .StartDate, .Cabins and .Passengers.
type Data struct {
	StartDate  time.Time
	Cabins     []extract.CabinInformation
	Passengers []extract.PassengerInformation
}

type Renderer struct {
	name    string
	version string
	tmpl    *template.Template
}

type options struct {
	fsys fs.FS
	name string
}

type Option func(*options)

// WithDir loads templates from a directory on disk instead of the embedded set.
func WithDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.fsys = os.DirFS(dir)
		}
	}
}

// WithFS loads templates from fsys.
func WithFS(fsys fs.FS) Option {
	return func(o *options) {
		if fsys != nil {
			o.fsys = fsys
		}
	}
}

// WithName selects the template identifier (a file name inside the source).
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// NewRenderer loads and parses the template once. The result is immutable and
// safe for concurrent use.
func NewRenderer(opts ...Option) (*Renderer, error) {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		return nil, &TemplateResourceError{Name: DefaultTemplate, Op: "load", Err: err}
	}
	o := options{fsys: sub, name: DefaultTemplate}
	for _, opt := range opts {
		opt(&o)
	}

	if !fs.ValidPath(o.name) {
		return nil, &TemplateResourceError{Name: o.name, Op: "load", Err: fs.ErrInvalid}
	}
	src, err := fs.ReadFile(o.fsys, o.name)
	if err != nil {
		return nil, &TemplateResourceError{Name: o.name, Op: "load", Err: err}
	}

	tmpl, err := template.New(o.name).Option("missingkey=error").Parse(string(src))
	if err != nil {
		return nil, &TemplateResourceError{Name: o.name, Op: "parse", Err: err}
	}

	// прогоняем шаблон на образце, чтобы неверные поля всплыли сразу
	if err := tmpl.Execute(io.Discard, sampleData); err != nil {
		return nil, &TemplateResourceError{Name: o.name, Op: "parse", Err: err}
	}

	sum := sha256.Sum256(src)
	return &Renderer{
		name:    o.name,
		version: hex.EncodeToString(sum[:8]),
		tmpl:    tmpl,
	}, nil
}

var sampleData = Data{
	StartDate:  time.Date(2028, time.March, 18, 0, 0, 0, 0, time.UTC),
	Cabins:     []extract.CabinInformation{{CabinNumber: "336", CabinType: "Outside Cabin", CabinCategory: "N2"}},
	Passengers: []extract.PassengerInformation{{PassengerName: "SAMPLE GUEST", PassengerEmail: "guest@example.com"}},
}

// Name is the template identifier.
func (r *Renderer) Name() string { return r.name }

// Version changes whenever the template source changes.
func (r *Renderer) Version() string { return r.version }

// Render executes the template. Output is never partially returned.
func (r *Renderer) Render(data Data) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", &TemplateResourceError{Name: r.name, Op: "execute", Err: err}
	}
	return buf.String(), nil
}

// TemplateResourceError is returned when the template resource cannot be
// found, parsed or executed.
type TemplateResourceError struct {
	Name string
	Op   string
	Err  error
}

func (e *TemplateResourceError) Error() string {
	return fmt.Sprintf("prompt template %q: %s: %v", e.Name, e.Op, e.Err)
}

func (e *TemplateResourceError) Unwrap() error { return e.Err }
