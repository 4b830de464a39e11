package api

import (
	"net/http"

	"github.com/theautotimes/newsdesk/app/catalog"
	"github.com/theautotimes/newsdesk/app/chat"
	"github.com/theautotimes/newsdesk/app/export"
	"github.com/theautotimes/newsdesk/app/store"
	"github.com/theautotimes/newsdesk/app/tasks"
)

type Handler struct {
	catalog    *catalog.Catalog
	engagement *store.Engagement
	assistant  *chat.Assistant
	rss        *export.RSSGenerator
	bibtex     *export.BibTeXGenerator
	scheduler  tasks.TaskSchedulerInterface
	httpClient *http.Client
	extractor  *tasks.ContentExtractor
}

// ArticleView decorates an article with the caller's engagement state.
// Upvotes carries the display count: seed value plus one when upvoted.
type ArticleView struct {
	catalog.Article
	Upvoted bool `json:"upvoted"`
	Saved   bool `json:"saved"`
}

type NewsletterRequest struct {
	Email string `json:"email"`
}

type ChatRequest struct {
	History []chat.Message `json:"history"`
	Message string         `json:"message"`
}
