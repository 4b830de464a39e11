package catalog

// Catalog is the in-memory, read-only list of articles built once at
// startup. Submitted tips live in the engagement store and are merged
// into listings by the API layer, never written back here.
type Catalog struct {
	articles []Article
	byID     map[string]int
}

func New(articles []Article) *Catalog {
	byID := make(map[string]int, len(articles))
	for i, a := range articles {
		byID[a.ID] = i
	}
	return &Catalog{articles: articles, byID: byID}
}

// All returns every article in default feed order.
func (c *Catalog) All() []Article {
	out := make([]Article, len(c.articles))
	copy(out, c.articles)
	return out
}

// Get returns the article with the given id, or nil if the id is not in
// the catalog.
func (c *Catalog) Get(id string) *Article {
	i, ok := c.byID[id]
	if !ok {
		return nil
	}
	a := c.articles[i]
	return &a
}

func (c *Catalog) ByCategory(category string) []Article {
	var out []Article
	for _, a := range c.articles {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.articles)
}
