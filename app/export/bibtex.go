package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/theautotimes/newsdesk/app/catalog"
)

type BibTeXGenerator struct{}

func NewBibTeXGenerator() *BibTeXGenerator {
	return &BibTeXGenerator{}
}

// Run renders one @article entry per article, keyed by id. Braces and
// backslashes in text fields are escaped so pasted titles cannot break
// the entry structure.
func (g *BibTeXGenerator) Run(articles []catalog.Article) string {
	var buf bytes.Buffer

	for i, article := range articles {
		if i > 0 {
			buf.WriteString("\n")
		}
		g.writeEntry(&buf, article)
	}

	return buf.String()
}

func (g *BibTeXGenerator) writeEntry(buf *bytes.Buffer, article catalog.Article) {
	buf.WriteString(fmt.Sprintf("@article{%s,\n", sanitizeKey(article.ID)))

	g.writeField(buf, "title", article.Title)
	g.writeField(buf, "author", strings.Join(article.Authors, " and "))
	g.writeField(buf, "year", fmt.Sprintf("%d", time.UnixMilli(article.Timestamp).Year()))
	g.writeField(buf, "journal", article.Publisher)
	g.writeField(buf, "url", article.DOI)
	g.writeField(buf, "note", article.WhyMatters)

	buf.WriteString("}\n")
}

func (g *BibTeXGenerator) writeField(buf *bytes.Buffer, name, value string) {
	if value == "" {
		return
	}
	buf.WriteString(fmt.Sprintf("  %s = {%s},\n", name, escapeBibTeX(value)))
}

func escapeBibTeX(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\textbackslash{}`)
		case '{':
			b.WriteString(`\{`)
		case '}':
			b.WriteString(`\}`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// sanitizeKey keeps citation keys parseable: BibTeX keys cannot contain
// commas, braces or whitespace.
func sanitizeKey(id string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ',', '{', '}', ' ', '\t', '\n', '#', '%':
			return '-'
		}
		return r
	}, id)
}
