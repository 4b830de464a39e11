package export

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"html"
	"time"

	"github.com/theautotimes/newsdesk/app/catalog"
	"github.com/theautotimes/newsdesk/app/cfg"
)

// Channel holds the syndication document's channel metadata.
type Channel struct {
	Title       string
	Description string
	Link        string
	BuildDate   time.Time
	TTL         int
}

type RSSGenerator struct{}

func NewRSSGenerator() *RSSGenerator {
	return &RSSGenerator{}
}

// Run renders the article list as an RSS 2.0 document. Free text fields
// are always escaped; titles and descriptions come from user-submitted
// tips as well as curated seeds.
func (g *RSSGenerator) Run(channel Channel, articles []catalog.Article) (string, error) {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", channel.Title, 4)
	g.writeElement(&buf, "link", channel.Link, 4)
	g.writeElement(&buf, "description", channel.Description, 4)

	selfLink := fmt.Sprintf("%s/feed.xml", g.baseURL())
	buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
		html.EscapeString(selfLink)))

	buildDate := channel.BuildDate
	if buildDate.IsZero() {
		buildDate = time.Now().In(time.Local)
	}
	g.writeElement(&buf, "lastBuildDate", buildDate.Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "pubDate", buildDate.Format(time.RFC1123Z), 4)

	ttl := cmp.Or(channel.TTL, 1800)
	g.writeElement(&buf, "ttl", fmt.Sprintf("%d", ttl), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("The Auto Times/%s", cfg.Get().Version), 4)

	for _, article := range articles {
		g.writeItem(&buf, article)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

func (g *RSSGenerator) writeItem(buf *bytes.Buffer, article catalog.Article) {
	buf.WriteString("    <item>\n")

	// Article ids are stable identifiers, not URLs.
	buf.WriteString(`      <guid isPermaLink="false">`)
	xml.EscapeText(buf, []byte(article.ID))
	buf.WriteString("</guid>\n")

	g.writeElement(buf, "title", article.Title, 6)
	g.writeElement(buf, "link", fmt.Sprintf("%s/articles/%s", g.baseURL(), article.ID), 6)
	g.writeElement(buf, "description", cmp.Or(article.Abstract, "No description available"), 6)

	if len(article.Authors) > 0 && article.Authors[0] != "" {
		g.writeElement(buf, "author", article.Authors[0], 6)
	}

	if article.Category != "" {
		g.writeElement(buf, "category", article.Category, 6)
	}

	pubDate := time.UnixMilli(article.Timestamp).In(time.Local)
	g.writeElement(buf, "pubDate", pubDate.Format(time.RFC1123Z), 6)

	buf.WriteString("    </item>\n")
}

func (g *RSSGenerator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func (g *RSSGenerator) baseURL() string {
	if cfg.Get().BaseUrl != "" {
		return cfg.Get().BaseUrl
	}
	return fmt.Sprintf("http://localhost:%s", cfg.Get().Port)
}
