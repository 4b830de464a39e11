package intake

import (
	"strings"
	"testing"
	"time"

	"github.com/theautotimes/newsdesk/app/catalog"
	"github.com/theautotimes/newsdesk/app/store"
)

func validTipForm() TipForm {
	return TipForm{
		Title:       "Prototype Spotted at Proving Grounds",
		Publisher:   "Anonymous Reader",
		Link:        "https://example.com/prototype-spotted",
		Description: "A heavily camouflaged prototype was seen testing on public roads near the proving grounds this morning.",
		Category:    catalog.CategoryEVWire,
	}
}

func TestValidateTipAccepted(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

	tip, validationErr := ValidateTip(validTipForm(), now)
	if validationErr != nil {
		t.Fatalf("Expected no validation error, got: %v", validationErr.Fields)
	}

	if !strings.HasPrefix(tip.ID, "sub-") {
		t.Errorf("Expected tip id with 'sub-' prefix, got '%s'", tip.ID)
	}
	if tip.Upvotes != 1 {
		t.Errorf("Expected new tips to start with 1 upvote, got %d", tip.Upvotes)
	}
	if tip.Category != catalog.CategoryEVWire {
		t.Errorf("Expected category preserved, got '%s'", tip.Category)
	}
	if tip.ExtractionStatus != store.ExtractionPending {
		t.Errorf("Expected pending extraction status, got '%s'", tip.ExtractionStatus)
	}
	if tip.Timestamp != now.UnixMilli() {
		t.Errorf("Expected timestamp %d, got %d", now.UnixMilli(), tip.Timestamp)
	}
	if tip.PublicationDate != "Mar 15, 2026" {
		t.Errorf("Expected publication date 'Mar 15, 2026', got '%s'", tip.PublicationDate)
	}
	if len(tip.Authors) != 1 || tip.Authors[0] != "Anonymous Reader" {
		t.Errorf("Expected submitter as sole author, got %v", tip.Authors)
	}
	if tip.PublisherLogo != "US" {
		t.Errorf("Expected submission logo 'US', got '%s'", tip.PublisherLogo)
	}
	if tip.WhyMatters == "" {
		t.Error("Expected whyMatters placeholder to be set")
	}
	if len(tip.AIInsights) != 1 {
		t.Errorf("Expected one insight placeholder, got %d", len(tip.AIInsights))
	}
}

func TestValidateTipRequiredFields(t *testing.T) {
	now := time.Now()

	_, validationErr := ValidateTip(TipForm{}, now)
	if validationErr == nil {
		t.Fatal("Expected validation error for empty form")
	}

	for _, field := range []string{"title", "publisher", "link", "description"} {
		if validationErr.Fields[field] == "" {
			t.Errorf("Expected a reason for missing field '%s'", field)
		}
	}
}

func TestValidateTipDescriptionTooShort(t *testing.T) {
	form := validTipForm()
	form.Description = strings.Repeat("x", MinTipDescriptionLen-10)

	_, validationErr := ValidateTip(form, time.Now())
	if validationErr == nil {
		t.Fatal("Expected validation error for short description")
	}

	if !strings.Contains(validationErr.Fields["description"], "too short") {
		t.Errorf("Expected 'too short' reason, got '%s'", validationErr.Fields["description"])
	}
}

func TestValidateTipDescriptionBoundary(t *testing.T) {
	form := validTipForm()
	form.Description = strings.Repeat("x", MinTipDescriptionLen)

	_, validationErr := ValidateTip(form, time.Now())
	if validationErr != nil {
		t.Errorf("Description at exactly the minimum should pass, got: %v", validationErr.Fields)
	}
}

func TestValidateTipUnknownCategoryFallsBack(t *testing.T) {
	form := validTipForm()
	form.Category = "Boats"

	tip, validationErr := ValidateTip(form, time.Now())
	if validationErr != nil {
		t.Fatalf("Expected no validation error, got: %v", validationErr.Fields)
	}

	if tip.Category != catalog.CategoryGeneral {
		t.Errorf("Expected fallback to General, got '%s'", tip.Category)
	}
}

func TestValidateTipEmptyCategoryFallsBack(t *testing.T) {
	form := validTipForm()
	form.Category = ""

	tip, validationErr := ValidateTip(form, time.Now())
	if validationErr != nil {
		t.Fatalf("Expected no validation error, got: %v", validationErr.Fields)
	}

	if tip.Category != catalog.CategoryGeneral {
		t.Errorf("Expected fallback to General, got '%s'", tip.Category)
	}
}

func TestValidateContactAccepted(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

	form := ContactForm{
		Name:    "Jordan Reader",
		Email:   "jordan@example.com",
		Subject: "Correction",
		Message: "The lap time in yesterday's story is off by two seconds.",
	}

	msg, validationErr := ValidateContact(form, now)
	if validationErr != nil {
		t.Fatalf("Expected no validation error, got: %v", validationErr.Fields)
	}

	if !strings.HasPrefix(msg.ID, "msg-") {
		t.Errorf("Expected message id with 'msg-' prefix, got '%s'", msg.ID)
	}
	if msg.Read {
		t.Error("New messages should be unread")
	}
	if msg.Timestamp != now.UnixMilli() {
		t.Errorf("Expected timestamp %d, got %d", now.UnixMilli(), msg.Timestamp)
	}
}

func TestValidateContactRejections(t *testing.T) {
	form := ContactForm{
		Name:    "",
		Email:   "not-an-email",
		Message: "",
	}

	_, validationErr := ValidateContact(form, time.Now())
	if validationErr == nil {
		t.Fatal("Expected validation error")
	}

	if validationErr.Fields["name"] == "" {
		t.Error("Expected a reason for missing name")
	}
	if validationErr.Fields["message"] == "" {
		t.Error("Expected a reason for missing message")
	}
	if !strings.Contains(validationErr.Fields["email"], "malformed") {
		t.Errorf("Expected malformed email reason, got '%s'", validationErr.Fields["email"])
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"reader@example.com", true},
		{"first.last@sub.example.co.uk", true},
		{"", false},
		{"   ", false},
		{"plain-text", false},
		{"missing@tld", false},
		{"@example.com", false},
		{"user@.com", false},
		{"two words@example.com", false},
	}

	for _, test := range tests {
		err := ValidateEmail(test.email)
		if test.valid && err != nil {
			t.Errorf("Expected '%s' to be accepted, got: %v", test.email, err.Fields)
		}
		if !test.valid && err == nil {
			t.Errorf("Expected '%s' to be rejected", test.email)
		}
	}
}

func TestPreviewShortAbstractUnchanged(t *testing.T) {
	abstract := "Short abstract that fits well within the limit."

	if preview := Preview(abstract); preview != abstract {
		t.Errorf("Expected short abstract unchanged, got '%s'", preview)
	}
}

func TestPreviewAtLimitUnchanged(t *testing.T) {
	abstract := strings.Repeat("a", MaxPreviewLen)

	if preview := Preview(abstract); preview != abstract {
		t.Error("Abstract at exactly the limit should be unchanged")
	}
}

func TestPreviewLongAbstractTruncated(t *testing.T) {
	abstract := strings.Repeat("a", MaxPreviewLen+100)

	preview := Preview(abstract)

	if !strings.HasSuffix(preview, "...") {
		t.Error("Truncated preview should end with ellipsis")
	}
	if len([]rune(preview)) != MaxPreviewLen {
		t.Errorf("Expected preview of %d runes, got %d", MaxPreviewLen, len([]rune(preview)))
	}
}

func TestPreviewNeverLongerThanAbstract(t *testing.T) {
	for _, n := range []int{0, 1, 49, 50, 149, 150, 151, 152, 200, 500} {
		abstract := strings.Repeat("a", n)
		preview := Preview(abstract)
		if len([]rune(preview)) > len([]rune(abstract)) {
			t.Errorf("Preview longer than abstract for length %d: %d runes", n, len([]rune(preview)))
		}
	}
}

func TestPreviewMultibyteSafe(t *testing.T) {
	abstract := strings.Repeat("ü", MaxPreviewLen+50)

	preview := Preview(abstract)

	if len([]rune(preview)) != MaxPreviewLen {
		t.Errorf("Expected preview of %d runes, got %d", MaxPreviewLen, len([]rune(preview)))
	}
	if !strings.HasSuffix(preview, "...") {
		t.Error("Truncated preview should end with ellipsis")
	}
}
