package store

import (
	"time"

	"github.com/theautotimes/newsdesk/app/catalog"
)

// Collection keys in the engagement store. Values are JSON documents;
// an absent key reads as an empty collection. Keys must stay stable
// across releases or persisted engagement state silently orphans.
const (
	KeyUpvotes         = "engagement/upvotes"
	KeySaved           = "engagement/saved"
	KeyTips            = "submitted-tips"
	KeyContactMessages = "contact-messages"
	KeySubscribers     = "newsletter-subscribers"
)

// Tip enrichment lifecycle, mirroring the content extraction states of a
// feed item: pending until a worker fetches the linked page.
const (
	ExtractionPending = "pending"
	ExtractionSuccess = "success"
	ExtractionFailed  = "failed"
	ExtractionSkipped = "skipped"
)

// Tip is a user-submitted article. It enters the feed immediately on
// submit and is never deleted through the public API.
type Tip struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Publisher       string   `json:"publisher"`
	Authors         []string `json:"authors"`
	Abstract        string   `json:"abstract"`
	AbstractPreview string   `json:"abstractPreview"`
	PublicationDate string   `json:"publicationDate"`
	Category        string   `json:"category"`
	DOI             string   `json:"doi"`
	WhyMatters      string   `json:"whyMatters"`
	Upvotes         int      `json:"upvotes"`
	Timestamp       int64    `json:"timestamp"`
	AIInsights      []string `json:"aiInsights"`
	PublisherLogo   string   `json:"publisherLogo"`

	Content          string `json:"content,omitempty"`
	ExtractionStatus string `json:"extractionStatus"`
	ExtractionError  string `json:"extractionError,omitempty"`
}

// Article renders a tip in catalog form for merged listings and exports.
func (t Tip) Article() catalog.Article {
	return catalog.Article{
		ID:              t.ID,
		Title:           t.Title,
		Publisher:       t.Publisher,
		Authors:         t.Authors,
		Abstract:        t.Abstract,
		AbstractPreview: t.AbstractPreview,
		PublicationDate: t.PublicationDate,
		Category:        t.Category,
		DOI:             t.DOI,
		WhyMatters:      t.WhyMatters,
		Upvotes:         t.Upvotes,
		Timestamp:       t.Timestamp,
		AIInsights:      t.AIInsights,
		PublisherLogo:   t.PublisherLogo,
	}
}

// ContactMessage is append-only and surfaced only through the admin API.
type ContactMessage struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
	Read      bool   `json:"read"`
}

type Subscriber struct {
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribedAt"`
}
