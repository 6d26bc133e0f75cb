package site

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	atom "github.com/thomas11/atomgenerator"

	"github.com/tbell/folio/internal/record"
)

// writeFeed emits an atom feed of the live posts, newest first, next
// to the sitemap.
func writeFeed(siteTitle, author, baseURL string, posts []*record.Post, outDir string) error {
	base := strings.TrimRight(baseURL, "/")

	feed := atom.Feed{
		Title:   siteTitle,
		Link:    base + "/",
		PubDate: time.Now(),
	}
	feed.AddAuthor(atom.Author{
		Name: author,
		Uri:  base + "/",
	})

	for _, p := range posts {
		description := p.Summary
		if description == "" {
			description = truncate(p.BodyMD, summaryRunes)
		}
		feed.AddEntry(&atom.Entry{
			Title:       p.Title,
			Description: description,
			Link:        fmt.Sprintf("%s/posts/%s/", base, p.Slug),
			PubDate:     p.CreatedAt,
		})
	}

	if errs := feed.Validate(); len(errs) > 0 {
		return fmt.Errorf("atom feed invalid: %w", errs[0])
	}

	atomXML, err := feed.GenXml()
	if err != nil {
		return fmt.Errorf("generate atom feed: %w", err)
	}
	return os.WriteFile(filepath.Join(outDir, "index.xml"), atomXML, 0o664)
}
