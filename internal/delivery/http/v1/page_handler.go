package v1

import (
	"net/http"

	"easi-website/internal/domain"

	"github.com/gin-gonic/gin"
)

type PageHandler struct {
	pages *pages
}

type staticPage struct {
	path, title, template string
}

var staticPages = []staticPage{
	{"/", "Excellence in Statistical Research & Training", "home.tmpl"},
	{"/about", "About Us", "about.tmpl"},
	{"/courses", "Courses", "courses.tmpl"},
	{"/training", "Training", "training.tmpl"},
	{"/consultancy", "Consultancy", "consultancy.tmpl"},
	{"/gallery", "Gallery", "gallery.tmpl"},
	{"/terms-and-conditions", "Terms & Conditions", "terms.tmpl"},
}

// NewPageHandler registers the content pages that need nothing from the backend
func NewPageHandler(site *gin.RouterGroup, p *pages) *PageHandler {
	handler := &PageHandler{pages: p}

	for _, sp := range staticPages {
		sp := sp
		site.GET(sp.path, func(c *gin.Context) {
			handler.render(c, http.StatusOK, sp.template, sp.title)
		})
	}

	return handler
}

func (h *PageHandler) render(c *gin.Context, status int, template, title string) {
	view := h.pages.page(c, title)
	view.InquiryTypes = domain.InquiryTypes
	c.HTML(status, template, view)
}

// NotFound renders the 404 page for any unmatched path
func (h *PageHandler) NotFound(c *gin.Context) {
	h.Error(c, http.StatusNotFound, "The page you are looking for does not exist.")
}

// Error renders the shared error page
func (h *PageHandler) Error(c *gin.Context, status int, message string) {
	h.pages.errorPage(c, status, message)
}
