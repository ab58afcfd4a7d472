package mailer

import (
	"io/fs"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("sanitises markdown html", func(t *testing.T) {
		t.Parallel()

		r := NewRenderer(fstest.MapFS{
			"layouts/base.html": &fstest.MapFile{Data: []byte(`{{.Content}}`)},
			"x.md":              &fstest.MapFile{Data: []byte("[click](javascript:alert(1))\n\n<script>alert(1)</script>\n")},
		})

		res, err := r.Render("", "x.md", nil)
		require.NoError(t, err)
		require.NotContains(t, res.HTML, "javascript:")
		require.NotContains(t, res.HTML, "<script>")
	})

	t.Run("layout escapes data", func(t *testing.T) {
		t.Parallel()

		r := NewRenderer(fstest.MapFS{
			"layouts/base.html": &fstest.MapFile{Data: []byte(`<q>{{.Data.Message}}</q>{{.Content}}`)},
			"x.md":              &fstest.MapFile{Data: []byte("ok")},
		})

		res, err := r.Render("", "x.md", map[string]string{"Message": `<b>hi</b> & "bye"`})
		require.NoError(t, err)
		require.Contains(t, res.HTML, "<q>&lt;b&gt;hi&lt;/b&gt; &amp; &#34;bye&#34;</q>")
	})

	t.Run("sibling text template", func(t *testing.T) {
		t.Parallel()

		r := NewRenderer(fstest.MapFS{
			"layouts/base.html": &fstest.MapFile{Data: []byte(`{{.Content}}`)},
			"x.md":              &fstest.MapFile{Data: []byte("**{{.Name}}**")},
			"x.txt":             &fstest.MapFile{Data: []byte("Name: {{.Name}}")},
		})

		res, err := r.Render("", "x.md", map[string]string{"Name": "<Zé>"})
		require.NoError(t, err)
		require.Equal(t, "Name: <Zé>", res.Text)
	})

	t.Run("layout from frontmatter", func(t *testing.T) {
		t.Parallel()

		r := NewRenderer(fstest.MapFS{
			"layouts/base.html":  &fstest.MapFile{Data: []byte(`base`)},
			"layouts/other.html": &fstest.MapFile{Data: []byte(`other`)},
			"x.md":               &fstest.MapFile{Data: []byte("---\nLayout: other.html\n---\nbody")},
		})

		res, err := r.Render("", "x.md", nil)
		require.NoError(t, err)
		require.Equal(t, "other", res.HTML)

		res, err = r.Render("base.html", "x.md", nil)
		require.NoError(t, err)
		require.Equal(t, "base", res.HTML)
	})

	t.Run("cta link keeps class", func(t *testing.T) {
		t.Parallel()

		r := NewRenderer(fstest.MapFS{
			"layouts/base.html": &fstest.MapFile{Data: []byte(`{{.Content}}`)},
			"x.md":              &fstest.MapFile{Data: []byte("[!cta|Go <now>](https://example.com/?a=1&b=2)")},
		})

		res, err := r.Render("", "x.md", nil)
		require.NoError(t, err)
		require.Contains(t, res.HTML, `class="cta"`)
		require.Contains(t, res.HTML, `href="https://example.com/?a=1&amp;b=2"`)
		require.Contains(t, res.HTML, "Go &lt;now&gt;")
	})

	t.Run("missing layout", func(t *testing.T) {
		t.Parallel()

		r := NewRenderer(fstest.MapFS{"x.md": &fstest.MapFile{Data: []byte("x")}})
		_, err := r.Render("", "x.md", nil)
		require.ErrorIs(t, err, ErrLayoutNotFound)
	})

	t.Run("missing template", func(t *testing.T) {
		t.Parallel()

		r := NewRenderer(fstest.MapFS{})
		_, err := r.Render("", "x.md", nil)
		require.ErrorIs(t, err, ErrTemplateNotFound)
	})
}

type countingFS struct {
	fs.FS
	reads atomic.Int32
}

func (c *countingFS) ReadFile(name string) ([]byte, error) {
	c.reads.Add(1)
	return fs.ReadFile(c.FS, name)
}

func TestRenderer_CachesParsedFiles(t *testing.T) {
	t.Parallel()

	cfs := &countingFS{FS: fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{Data: []byte(`{{.Content}}`)},
		"x.md":              &fstest.MapFile{Data: []byte("Hi {{.}}")},
	}}
	r := NewRenderer(cfs)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Render("", "x.md", "there"); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	// x.md, x.txt (missing) and the layout are each read once.
	require.Equal(t, int32(3), cfs.reads.Load())
}
