package v1

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"easi-website/internal/delivery/http/middleware"
	"easi-website/internal/domain"
	"easi-website/internal/form"
	"easi-website/internal/site"
	"easi-website/internal/usecase"
	"easi-website/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FormView is one rendered form instance.
type FormView struct {
	ID      string
	Values  map[string]string
	Errors  map[string]bool
	Notice  *form.Notice
	Pending bool
}

// ResourcesView is the rendered state of one resource list.
type ResourcesView struct {
	State string
	Cards []usecase.ResourceCard
	Error string
}

// PageView is the data every page template receives.
type PageView struct {
	Title      string
	Path       string
	Site       *site.Content
	Nav        site.Navigation
	CSRFToken  string
	Year       int
	Newsletter FormView
	// NewsletterInline moves the newsletter form from the footer into the page body
	NewsletterInline bool

	Contact      *FormView
	InquiryTypes []domain.InquiryType
	Resources    *ResourcesView
	StatusCode   int
	ErrorMessage string
}

// formState is what a form holder exposes for rendering.
type formState interface {
	Values() map[string]string
	Errors() domain.ValidationErrorSet
	Status() domain.SubmissionStatus
	Pending() bool
}

// pages builds PageViews and FormViews for the handlers.
type pages struct {
	content   *site.Content
	presenter form.Presenter
}

func newPages(content *site.Content, noticeTTL time.Duration) *pages {
	return &pages{content: content, presenter: form.NewPresenter(noticeTTL)}
}

func (p *pages) page(c *gin.Context, title string) *PageView {
	path := c.Request.URL.Path
	return &PageView{
		Title:      title,
		Path:       path,
		Site:       p.content,
		Nav:        p.content.Navigation.WithActive(path),
		CSRFToken:  middleware.CSRFToken(c),
		Year:       time.Now().Year(),
		Newsletter: p.form(uuid.NewString(), form.NewNewsletter()),
	}
}

func (p *pages) errorPage(c *gin.Context, status int, message string) {
	view := p.page(c, http.StatusText(status))
	view.StatusCode = status
	view.ErrorMessage = message
	c.HTML(status, "error.tmpl", view)
}

func (p *pages) form(id string, f formState) FormView {
	return FormView{
		ID:      id,
		Values:  f.Values(),
		Errors:  f.Errors().Strings(),
		Notice:  p.presenter.Notice(f.Status()),
		Pending: f.Pending(),
	}
}

var templateFuncs = template.FuncMap{
	"fieldMessage": validation.Message,
	"hasError": func(errs map[string]bool, field string) bool {
		return errs[field]
	},
}

// LoadTemplates parses every page template in fsys (rooted at the web
// directory). Pages are addressed by file name, e.g. "contact.tmpl".
func LoadTemplates(fsys fs.FS) (*template.Template, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(fsys, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}
