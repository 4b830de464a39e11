package intake

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/theautotimes/newsdesk/app/catalog"
	"github.com/theautotimes/newsdesk/app/store"
)

// Validation policy. Named so tests can assert against the same values
// the validators enforce.
const (
	MinTipDescriptionLen = 50
	MaxPreviewLen        = 150

	tipWhyMatters   = "Community submission pending editorial review."
	tipInsight      = "Analysis pending..."
	tipLogo         = "US"
	previewEllipsis = "..."
)

type TipForm struct {
	Title       string `json:"title"`
	Publisher   string `json:"publisher"`
	Link        string `json:"link"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ValidateTip checks a tip submission and normalizes it into a stored
// record. Unknown or empty categories fall back to General.
func ValidateTip(form TipForm, now time.Time) (*store.Tip, *store.ValidationError) {
	fields := make(map[string]string)

	requiredFields := map[string]string{
		"title":       form.Title,
		"publisher":   form.Publisher,
		"link":        form.Link,
		"description": form.Description,
	}
	for fieldName, fieldValue := range requiredFields {
		if strings.TrimSpace(fieldValue) == "" {
			fields[fieldName] = fieldName + " is required"
		}
	}

	if fields["description"] == "" && len([]rune(form.Description)) < MinTipDescriptionLen {
		fields["description"] = fmt.Sprintf("description is too short (minimum %d characters)", MinTipDescriptionLen)
	}

	if len(fields) > 0 {
		return nil, &store.ValidationError{Fields: fields}
	}

	category := strings.TrimSpace(form.Category)
	if !catalog.Categories[category] {
		category = catalog.CategoryGeneral
	}

	publisher := strings.TrimSpace(form.Publisher)

	return &store.Tip{
		ID:               "sub-" + uuid.NewString(),
		Title:            strings.TrimSpace(form.Title),
		Publisher:        publisher,
		Authors:          []string{publisher},
		Abstract:         form.Description,
		AbstractPreview:  Preview(form.Description),
		PublicationDate:  now.Format(catalog.DateLayout),
		Category:         category,
		DOI:              strings.TrimSpace(form.Link),
		WhyMatters:       tipWhyMatters,
		Upvotes:          1,
		Timestamp:        now.UnixMilli(),
		AIInsights:       []string{tipInsight},
		PublisherLogo:    tipLogo,
		ExtractionStatus: store.ExtractionPending,
	}, nil
}

// ValidateContact checks a contact submission and normalizes it into an
// append-only message record.
func ValidateContact(form ContactForm, now time.Time) (*store.ContactMessage, *store.ValidationError) {
	fields := make(map[string]string)

	if strings.TrimSpace(form.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(form.Message) == "" {
		fields["message"] = "message is required"
	}
	if err := ValidateEmail(form.Email); err != nil {
		fields["email"] = err.Fields["email"]
	}

	if len(fields) > 0 {
		return nil, &store.ValidationError{Fields: fields}
	}

	return &store.ContactMessage{
		ID:        "msg-" + uuid.NewString(),
		Name:      strings.TrimSpace(form.Name),
		Email:     strings.TrimSpace(form.Email),
		Subject:   strings.TrimSpace(form.Subject),
		Message:   form.Message,
		Timestamp: now.UnixMilli(),
		Read:      false,
	}, nil
}

// ValidateEmail applies the shared address pattern. Returns nil when the
// address is acceptable.
func ValidateEmail(email string) *store.ValidationError {
	email = strings.TrimSpace(email)
	if email == "" {
		return store.NewValidationError("email", "email is required")
	}
	if !store.EmailPattern.MatchString(email) {
		return store.NewValidationError("email", "email address is malformed")
	}
	return nil
}

// Preview derives the truncated listing text from a full abstract. The
// result is never longer than the abstract itself.
func Preview(abstract string) string {
	runes := []rune(abstract)
	if len(runes) <= MaxPreviewLen {
		return abstract
	}
	return string(runes[:MaxPreviewLen-len(previewEllipsis)]) + previewEllipsis
}
