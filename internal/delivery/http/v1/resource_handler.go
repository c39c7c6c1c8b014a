package v1

import (
	"context"
	"net/http"

	"easi-website/internal/delivery/http/response"
	"easi-website/internal/usecase"
	"easi-website/pkg/apperror"
	"easi-website/pkg/logger"

	"github.com/gin-gonic/gin"
)

const msgNoResources = "No resources available at the moment."

type ResourceHandler struct {
	resourceUC usecase.ResourceUsecase
	pages      *pages
}

// NewResourceHandler registers the resources page and API
func NewResourceHandler(site, api *gin.RouterGroup, resourceUC usecase.ResourceUsecase, p *pages) {
	handler := &ResourceHandler{
		resourceUC: resourceUC,
		pages:      p,
	}

	site.GET("/resources", handler.ShowResources)
	api.GET("/resources", handler.ListResources)
}

// load fetches the list for one view. The fetch outlives a client that goes
// away; its result is then dropped by the detached lister.
func (h *ResourceHandler) load(ctx context.Context) *usecase.ResourceLister {
	lister := h.resourceUC.NewLister()
	stop := context.AfterFunc(ctx, lister.Detach)
	defer stop()

	if err := lister.Load(context.WithoutCancel(ctx)); err != nil {
		logger.Log.Warn("Failed to load resources", "error", err)
	}
	return lister
}

// ShowResources renders the catalogue; the errored state offers a retry,
// which loads a fresh view.
func (h *ResourceHandler) ShowResources(c *gin.Context) {
	lister := h.load(c.Request.Context())

	view := h.pages.page(c, "Resources")
	view.Resources = &ResourcesView{
		State: lister.State().String(),
		Cards: lister.Cards(),
		Error: lister.ErrorMessage(),
	}
	c.HTML(http.StatusOK, "resources.tmpl", view)
}

// ListResources godoc
// @Summary      List resources
// @Description  Fetch the resource catalogue from the EASI backend, in server order.
// @Tags         resources
// @Produce      json
// @Success      200  {object}  response.Response{data=[]usecase.ResourceCard}
// @Failure      502  {object}  response.Response
// @Router       /resources [get]
func (h *ResourceHandler) ListResources(c *gin.Context) {
	lister := h.load(c.Request.Context())

	if err := lister.ErrorMessage(); err != "" {
		c.Error(apperror.BadGateway(err, nil))
		return
	}

	cards := lister.Cards()
	message := "Resources loaded"
	if len(cards) == 0 {
		message = msgNoResources
	}
	response.Success(c, http.StatusOK, message, cards)
}
