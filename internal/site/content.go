// Package site loads the static content of the marketing pages: navigation,
// catalogs, contact details and the rest of the copy that is not fetched from
// the backend.
package site

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"easi-website/web"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// quickLinkCount is how many leading navigation items the footer lists
// under "Quick Links"; the rest go under "Services".
const quickLinkCount = 4

type NavItem struct {
	Name     string `yaml:"name"`
	Href     string `yaml:"href"`
	External bool   `yaml:"external"`
	Active   bool   `yaml:"-"`
}

type Navigation []NavItem

// WithActive returns a copy with the item matching path flagged. "/" only
// matches itself; other items also match their sub-paths.
func (n Navigation) WithActive(path string) Navigation {
	return lo.Map(n, func(item NavItem, _ int) NavItem {
		item.Active = !item.External && matchesPath(item.Href, path)
		return item
	})
}

func (n Navigation) QuickLinks() Navigation {
	if len(n) <= quickLinkCount {
		return n
	}
	return n[:quickLinkCount]
}

func (n Navigation) Services() Navigation {
	if len(n) <= quickLinkCount {
		return nil
	}
	return n[quickLinkCount:]
}

func matchesPath(href, path string) bool {
	if href == "/" {
		return path == "/"
	}
	return path == href || strings.HasPrefix(path, href+"/")
}

type Info struct {
	Name        string `yaml:"name"`
	ShortName   string `yaml:"short_name"`
	Tagline     string `yaml:"tagline"`
	Description string `yaml:"description"`
	Logo        string `yaml:"logo"`
}

type Link struct {
	Name string `yaml:"name"`
	Href string `yaml:"href"`
}

type Card struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Link        string `yaml:"link,omitempty"`
}

type Stat struct {
	Number      string `yaml:"number"`
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
}

type Partner struct {
	Name string `yaml:"name"`
	Logo string `yaml:"logo"`
}

type TeamMember struct {
	Name      string `yaml:"name"`
	Title     string `yaml:"title"`
	Bio       string `yaml:"bio"`
	Education string `yaml:"education"`
}

type About struct {
	Mission string       `yaml:"mission"`
	Vision  string       `yaml:"vision"`
	Values  []Card       `yaml:"values"`
	Team    []TeamMember `yaml:"team"`
}

type Course struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Duration    string   `yaml:"duration"`
	Level       string   `yaml:"level"`
	Price       string   `yaml:"price"`
	Link        string   `yaml:"link"`
	External    bool     `yaml:"external"`
	Features    []string `yaml:"features"`
}

type CourseCategory struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Courses     []Course `yaml:"courses"`
}

type TrainingModule struct {
	Title       string `yaml:"title"`
	Duration    string `yaml:"duration"`
	Description string `yaml:"description"`
}

type TrainingProgram struct {
	Title       string           `yaml:"title"`
	Description string           `yaml:"description"`
	Modules     []TrainingModule `yaml:"modules"`
}

type UpcomingTraining struct {
	Title       string `yaml:"title"`
	Date        string `yaml:"date"`
	Location    string `yaml:"location"`
	Description string `yaml:"description"`
}

type Consultancy struct {
	Services []Card `yaml:"services"`
	Process  []Card `yaml:"process"`
}

type ContactInfo struct {
	Title   string   `yaml:"title"`
	Details []string `yaml:"details"`
}

type FAQ struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

type Contact struct {
	Info []ContactInfo `yaml:"info"`
	FAQs []FAQ         `yaml:"faqs"`
}

type TermsSection struct {
	Title string   `yaml:"title"`
	Items []string `yaml:"items"`
}

// Content is everything the pages render that does not come from the backend.
// It is read once at startup and never mutated afterwards.
type Content struct {
	Site              Info               `yaml:"site"`
	Navigation        Navigation         `yaml:"navigation"`
	Social            []Link             `yaml:"social"`
	Services          []Card             `yaml:"services"`
	Stats             []Stat             `yaml:"stats"`
	Partners          []Partner          `yaml:"partners"`
	About             About              `yaml:"about"`
	CourseCategories  []CourseCategory   `yaml:"course_categories"`
	TrainingPrograms  []TrainingProgram  `yaml:"training_programs"`
	UpcomingTrainings []UpcomingTraining `yaml:"upcoming_trainings"`
	Consultancy       Consultancy        `yaml:"consultancy"`
	Contact           Contact            `yaml:"contact"`
	Terms             []TermsSection     `yaml:"terms"`
	Gallery           []GalleryCategory  `yaml:"gallery"`
}

// Load reads the content file at path, or the embedded default when path is
// empty.
func Load(path string) (*Content, error) {
	if path == "" {
		return Parse(web.DefaultContent)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read site content: %w", err)
	}
	return Parse(data)
}

// Parse decodes a content document, rejecting unknown keys.
func Parse(data []byte) (*Content, error) {
	var c Content
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("site content is empty")
		}
		return nil, fmt.Errorf("failed to parse site content: %w", err)
	}
	if len(c.Navigation) == 0 {
		return nil, errors.New("site content has no navigation")
	}
	return &c, nil
}
