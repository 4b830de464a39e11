package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/theautotimes/newsdesk/app/catalog"
	"github.com/theautotimes/newsdesk/app/cfg"
	"github.com/theautotimes/newsdesk/app/chat"
	"github.com/theautotimes/newsdesk/app/export"
	"github.com/theautotimes/newsdesk/app/intake"
	"github.com/theautotimes/newsdesk/app/store"
	"github.com/theautotimes/newsdesk/app/tasks"
)

func NewHandler(cat *catalog.Catalog, engagement *store.Engagement, assistant *chat.Assistant,
	scheduler tasks.TaskSchedulerInterface, httpClient *http.Client) *Handler {
	return &Handler{
		catalog:    cat,
		engagement: engagement,
		assistant:  assistant,
		rss:        export.NewRSSGenerator(),
		bibtex:     export.NewBibTeXGenerator(),
		scheduler:  scheduler,
		httpClient: httpClient,
		extractor:  tasks.NewContentExtractor(),
	}
}

func (h *Handler) GetArticles(c *gin.Context) {
	articles, err := h.allArticles()
	if err != nil {
		h.storeError(c, "list_articles", err)
		return
	}

	if category := c.Query("category"); category != "" {
		filtered := articles[:0]
		for _, a := range articles {
			if a.Category == category {
				filtered = append(filtered, a)
			}
		}
		articles = filtered
	}

	views, err := h.buildViews(articles)
	if err != nil {
		h.storeError(c, "list_articles", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": views,
		"total":    len(views),
	})
}

func (h *Handler) GetArticle(c *gin.Context) {
	id := c.Param("id")

	article := h.lookupArticle(id)
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	views, err := h.buildViews([]catalog.Article{*article})
	if err != nil {
		h.storeError(c, "get_article", err)
		return
	}

	c.JSON(http.StatusOK, views[0])
}

// ToggleUpvote flips upvote membership for an article id. No existence
// check: the store keeps no referential integrity with the catalog, and
// ids may outlive the articles they referenced.
func (h *Handler) ToggleUpvote(c *gin.Context) {
	h.toggle(c, store.KeyUpvotes)
}

func (h *Handler) ToggleSave(c *gin.Context) {
	h.toggle(c, store.KeySaved)
}

func (h *Handler) toggle(c *gin.Context, collection string) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing article id"})
		return
	}

	active, err := h.engagement.Toggle(collection, id)
	if err != nil {
		h.storeError(c, "toggle", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "active": active})
}

func (h *Handler) GetFeed(c *gin.Context) {
	articles, err := h.allArticles()
	if err != nil {
		h.storeError(c, "get_feed", err)
		return
	}

	channel := export.Channel{
		Title:       "The Auto Times",
		Description: "Global Automotive Chronicles",
		Link:        "https://theautotimes.com",
		BuildDate:   time.Now().In(time.Local),
		TTL:         1800,
	}

	rss, err := h.rss.Run(channel, articles)
	if err != nil {
		slog.Error("RSS generation error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Header("X-Feed-Items", strconv.Itoa(len(articles)))

	c.String(http.StatusOK, rss)
}

func (h *Handler) GetReadingList(c *gin.Context) {
	articles, err := h.savedArticles()
	if err != nil {
		h.storeError(c, "reading_list", err)
		return
	}

	views, err := h.buildViews(articles)
	if err != nil {
		h.storeError(c, "reading_list", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": views,
		"total":    len(views),
	})
}

func (h *Handler) GetReadingListBibTeX(c *gin.Context) {
	articles, err := h.savedArticles()
	if err != nil {
		h.storeError(c, "reading_list_export", err)
		return
	}

	c.Header("Content-Type", "application/x-bibtex; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="reading-list.bib"`)

	c.String(http.StatusOK, h.bibtex.Run(articles))
}

func (h *Handler) PostTip(c *gin.Context) {
	var form intake.TipForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	tip, validationErr := intake.ValidateTip(form, time.Now())
	if validationErr != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Validation failed",
			"fields": validationErr.Fields,
		})
		return
	}

	if err := h.engagement.SaveTip(*tip); err != nil {
		h.storeError(c, "save_tip", err)
		return
	}

	slog.Info("Tip submitted", "tip_id", tip.ID, "category", tip.Category)

	c.JSON(http.StatusCreated, gin.H{"id": tip.ID, "status": "received"})
}

func (h *Handler) PostContact(c *gin.Context) {
	var form intake.ContactForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	msg, validationErr := intake.ValidateContact(form, time.Now())
	if validationErr != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Validation failed",
			"fields": validationErr.Fields,
		})
		return
	}

	if err := h.engagement.SaveContactMessage(*msg); err != nil {
		h.storeError(c, "save_contact", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": msg.ID, "status": "received"})
}

func (h *Handler) PostNewsletter(c *gin.Context) {
	var req NewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	subscriber, err := h.engagement.SubscribeNewsletter(req.Email)

	var validationErr *store.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Validation failed",
			"fields": validationErr.Fields,
		})
	case errors.Is(err, store.ErrAlreadySubscribed):
		c.JSON(http.StatusOK, gin.H{"status": "already_subscribed"})
	case err != nil:
		h.storeError(c, "subscribe", err)
	default:
		c.JSON(http.StatusCreated, gin.H{"status": "subscribed", "email": subscriber.Email})
	}
}

func (h *Handler) PostChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Message == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Message is required"})
		return
	}

	reply := h.assistant.Reply(c.Request.Context(), req.History, req.Message)

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"articles":  h.catalog.Len(),
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	counts, err := h.engagement.Counts()
	if err != nil {
		h.storeError(c, "stats", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"version":          cfg.Get().Version,
		"catalog_articles": h.catalog.Len(),
		"upvoted":          counts[store.KeyUpvotes],
		"saved":            counts[store.KeySaved],
		"tips":             counts[store.KeyTips],
		"contact_messages": counts[store.KeyContactMessages],
		"subscribers":      counts[store.KeySubscribers],
	})
}

func (h *Handler) APIListTips(c *gin.Context) {
	tips, err := h.engagement.ReadTips()
	if err != nil {
		h.storeError(c, "list_tips", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tips": tips, "total": len(tips)})
}

func (h *Handler) APIListContactMessages(c *gin.Context) {
	msgs, err := h.engagement.ReadContactMessages()
	if err != nil {
		h.storeError(c, "list_contact_messages", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": msgs, "total": len(msgs)})
}

func (h *Handler) APIListSubscribers(c *gin.Context) {
	subscribers, err := h.engagement.ReadSubscribers()
	if err != nil {
		h.storeError(c, "list_subscribers", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscribers": subscribers, "total": len(subscribers)})
}

// APIEnrichTips enqueues an enrichment sweep immediately instead of
// waiting for the next scheduler tick.
func (h *Handler) APIEnrichTips(c *gin.Context) {
	task := tasks.NewEnrichTipsTask(h.engagement, h.httpClient, h.extractor, cfg.Get().UserAgent)
	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Error enqueueing enrichment task", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue enrichment task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"task": gin.H{
			"id":   task.ID,
			"type": task.Type,
		},
	})
}

// allArticles merges the immutable catalog with stored tips, catalog
// first, tips in submission order.
func (h *Handler) allArticles() ([]catalog.Article, error) {
	articles := h.catalog.All()

	tips, err := h.engagement.ReadTips()
	if err != nil {
		return nil, err
	}

	for _, tip := range tips {
		articles = append(articles, tip.Article())
	}

	return articles, nil
}

func (h *Handler) savedArticles() ([]catalog.Article, error) {
	saved, err := h.engagement.ReadSet(store.KeySaved)
	if err != nil {
		return nil, err
	}

	all, err := h.allArticles()
	if err != nil {
		return nil, err
	}

	// Orphaned ids (saved but no longer resolvable) are skipped.
	var out []catalog.Article
	for _, a := range all {
		if saved[a.ID] {
			out = append(out, a)
		}
	}
	return out, nil
}

func (h *Handler) lookupArticle(id string) *catalog.Article {
	if article := h.catalog.Get(id); article != nil {
		return article
	}

	tips, err := h.engagement.ReadTips()
	if err != nil {
		slog.Error("Store error", "operation", "lookup_article", "error", err)
		return nil
	}

	for _, tip := range tips {
		if tip.ID == id {
			a := tip.Article()
			return &a
		}
	}
	return nil
}

func (h *Handler) buildViews(articles []catalog.Article) ([]ArticleView, error) {
	upvoted, err := h.engagement.ReadSet(store.KeyUpvotes)
	if err != nil {
		return nil, err
	}
	saved, err := h.engagement.ReadSet(store.KeySaved)
	if err != nil {
		return nil, err
	}

	views := make([]ArticleView, 0, len(articles))
	for _, a := range articles {
		view := ArticleView{
			Article: a,
			Upvoted: upvoted[a.ID],
			Saved:   saved[a.ID],
		}
		if view.Upvoted {
			view.Upvotes = a.Upvotes + 1
		}
		views = append(views, view)
	}
	return views, nil
}

func (h *Handler) storeError(c *gin.Context, operation string, err error) {
	slog.Error("Store error", "operation", operation, "error", err)

	var persistenceErr *store.PersistenceError
	if errors.As(err, &persistenceErr) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "The action was not persisted, please try again",
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
}
