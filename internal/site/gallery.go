package site

import (
	"strconv"

	"github.com/samber/lo"
)

type GalleryImage struct {
	Src     string `yaml:"src"`
	Alt     string `yaml:"alt"`
	Caption string `yaml:"caption"`
}

type GalleryCategory struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Images      []GalleryImage `yaml:"images"`
}

// GallerySlide is one image of the lightbox with the IDs of its neighbours
// across all categories. Navigation wraps around at both ends.
type GallerySlide struct {
	GalleryImage
	ID   string
	Prev string
	Next string
}

// GallerySection is a category whose images are already numbered in slide order.
type GallerySection struct {
	Title       string
	Description string
	Slides      []GallerySlide
}

func slideID(i int) string {
	return "photo-" + strconv.Itoa(i+1)
}

// GallerySections numbers every image in reading order and links each one
// to the previous and next image of the whole gallery.
func (c *Content) GallerySections() []GallerySection {
	total := lo.SumBy(c.Gallery, func(cat GalleryCategory) int { return len(cat.Images) })

	n := 0
	return lo.Map(c.Gallery, func(cat GalleryCategory, _ int) GallerySection {
		slides := lo.Map(cat.Images, func(img GalleryImage, _ int) GallerySlide {
			slide := GallerySlide{
				GalleryImage: img,
				ID:           slideID(n),
				Prev:         slideID((n - 1 + total) % total),
				Next:         slideID((n + 1) % total),
			}
			n++
			return slide
		})
		return GallerySection{Title: cat.Title, Description: cat.Description, Slides: slides}
	})
}
