package usecase

import (
	"context"
	"errors"
	"sync"

	"easi-website/internal/domain"

	"github.com/samber/lo"
)

const (
	MsgResourcesFailed = "Failed to load resources. Please try again later."
	noDescription      = "No description available"
	addedLayout        = "January 2, 2006"
)

// ErrLoadInFlight is returned when Load is called while a load is outstanding.
var ErrLoadInFlight = errors.New("resource load already in flight")

type ResourceUsecase interface {
	// NewLister returns a lister for one page view
	NewLister() *ResourceLister
}

type resourceUsecase struct {
	gateway domain.ResourceGateway
}

func NewResourceUsecase(gateway domain.ResourceGateway) ResourceUsecase {
	return &resourceUsecase{gateway: gateway}
}

func (uc *resourceUsecase) NewLister() *ResourceLister {
	return &ResourceLister{gateway: uc.gateway, state: domain.ListLoading}
}

// ResourceCard is the display projection of one Resource.
type ResourceCard struct {
	ID          domain.ResourceID `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Added       string            `json:"added,omitempty"`
	DetailURL   string            `json:"detail_url"`
	DownloadURL string            `json:"download_url"`
}

// ResourceLister holds the resources fetched for one page view. It never
// caches across views and never refreshes on its own.
type ResourceLister struct {
	gateway domain.ResourceGateway

	mu       sync.Mutex
	state    domain.ListState
	items    []domain.Resource
	errMsg   string
	loading  bool
	detached bool
}

// Load fetches the list once: loading -> loaded | errored.
func (l *ResourceLister) Load(ctx context.Context) error {
	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		return ErrLoadInFlight
	}
	l.loading = true
	l.state = domain.ListLoading
	l.mu.Unlock()

	items, err := l.gateway.ListResources(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false
	if l.detached {
		return err
	}
	if err != nil {
		l.state = domain.ListErrored
		l.items = nil
		l.errMsg = MsgResourcesFailed
		return err
	}
	l.state = domain.ListLoaded
	l.items = items
	l.errMsg = ""
	return nil
}

// Retry reloads only from the errored state; otherwise it does nothing.
func (l *ResourceLister) Retry(ctx context.Context) error {
	if l.State() != domain.ListErrored {
		return nil
	}
	return l.Load(ctx)
}

// Detach drops any result that arrives after the page view is gone.
func (l *ResourceLister) Detach() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.detached = true
}

func (l *ResourceLister) State() domain.ListState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// ErrorMessage is the user-facing message of the errored state.
func (l *ResourceLister) ErrorMessage() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errMsg
}

func (l *ResourceLister) Resources() []domain.Resource {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.Resource(nil), l.items...)
}

// Cards projects the fetched resources 1:1, in server order.
func (l *ResourceLister) Cards() []ResourceCard {
	return lo.Map(l.Resources(), func(r domain.Resource, _ int) ResourceCard {
		card := ResourceCard{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			DetailURL:   l.gateway.ResourceURL(r.ID),
			DownloadURL: l.gateway.DownloadURL(r.ID),
		}
		if card.Description == "" {
			card.Description = noDescription
		}
		if created, ok := r.Created(); ok {
			card.Added = created.Format(addedLayout)
		}
		return card
	})
}
