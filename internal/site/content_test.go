package site_test

import (
	"os"
	"path/filepath"
	"testing"

	"easi-website/internal/site"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := site.Load("")
	require.NoError(t, err)

	assert.Equal(t, "East African Statistics Institute", c.Site.Name)
	names := lo.Map(c.Navigation, func(n site.NavItem, _ int) string { return n.Name })
	assert.Equal(t, []string{"Home", "About", "Courses", "Training", "Consultancy", "Resources", "Blog", "Contact"}, names)

	blog, ok := lo.Find(c.Navigation, func(n site.NavItem) bool { return n.Name == "Blog" })
	require.True(t, ok)
	assert.True(t, blog.External)
	assert.Equal(t, "https://blog.easi.ac.ug/", blog.Href)

	assert.Len(t, c.Stats, 4)
	assert.Len(t, c.Consultancy.Process, 5)
	assert.NotEmpty(t, c.CourseCategories)
	assert.NotEmpty(t, c.Contact.Info)
	assert.NotEmpty(t, c.Terms)
}

func TestNavigationSplit(t *testing.T) {
	c, err := site.Load("")
	require.NoError(t, err)

	quick := c.Navigation.QuickLinks()
	services := c.Navigation.Services()
	assert.Len(t, quick, 4)
	assert.Equal(t, "Consultancy", services[0].Name)
	assert.Equal(t, len(c.Navigation), len(quick)+len(services))
}

func TestNavigationWithActive(t *testing.T) {
	nav := site.Navigation{
		{Name: "Home", Href: "/"},
		{Name: "Resources", Href: "/resources"},
		{Name: "Blog", Href: "https://blog.easi.ac.ug/", External: true},
	}

	tests := []struct {
		path   string
		active string
	}{
		{"/", "Home"},
		{"/resources", "Resources"},
		{"/resources/7", "Resources"},
		{"/resourcesx", ""},
		{"/unknown", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := nav.WithActive(tt.path)
			active := lo.Filter(got, func(n site.NavItem, _ int) bool { return n.Active })
			if tt.active == "" {
				assert.Empty(t, active)
				return
			}
			require.Len(t, active, 1)
			assert.Equal(t, tt.active, active[0].Name)
		})
	}

	// The receiver is left untouched
	assert.False(t, nav[0].Active)
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(valid, []byte("navigation:\n  - { name: Home, href: / }\n"), 0o644))
	c, err := site.Load(valid)
	require.NoError(t, err)
	assert.Len(t, c.Navigation, 1)

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("navigation: []\nbanner: hi\n"), 0o644))
	_, err = site.Load(unknown)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = site.Load(empty)
	assert.Error(t, err)

	_, err = site.Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
