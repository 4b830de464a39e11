package store

import (
	"errors"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Engagement {
	t.Helper()

	s, err := Open("")
	if err != nil {
		t.Fatalf("Expected no error opening in-memory store, got: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestToggleAddsAndRemoves(t *testing.T) {
	s := openTestStore(t)

	active, err := s.Toggle(KeyUpvotes, "fp-001")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !active {
		t.Error("First toggle should activate")
	}

	set, err := s.ReadSet(KeyUpvotes)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !set["fp-001"] {
		t.Error("Expected 'fp-001' to be a member after first toggle")
	}

	active, err = s.Toggle(KeyUpvotes, "fp-001")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if active {
		t.Error("Second toggle should deactivate")
	}

	set, err = s.ReadSet(KeyUpvotes)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if set["fp-001"] {
		t.Error("Expected 'fp-001' to be removed after second toggle")
	}
}

func TestToggleCollectionsAreIndependent(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Toggle(KeyUpvotes, "ev-002"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	saved, err := s.ReadSet(KeySaved)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(saved) != 0 {
		t.Error("Upvote toggle should not affect the saved collection")
	}
}

func TestReadSetMissingKeyIsEmpty(t *testing.T) {
	s := openTestStore(t)

	set, err := s.ReadSet(KeySaved)
	if err != nil {
		t.Fatalf("Expected no error for missing key, got: %v", err)
	}
	if len(set) != 0 {
		t.Errorf("Expected empty set for missing key, got %d members", len(set))
	}
}

func TestSaveAndReadTips(t *testing.T) {
	s := openTestStore(t)

	tip := Tip{
		ID:               "sub-test-1",
		Title:            "Reader Spots Camouflaged Prototype",
		Publisher:        "Anonymous Reader",
		Authors:          []string{"Anonymous Reader"},
		Abstract:         "A camouflaged prototype was spotted testing near the proving grounds yesterday afternoon.",
		Category:         "General",
		DOI:              "https://example.com/spotted",
		Upvotes:          1,
		ExtractionStatus: ExtractionPending,
	}

	if err := s.SaveTip(tip); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	tips, err := s.ReadTips()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(tips) != 1 {
		t.Fatalf("Expected 1 tip, got %d", len(tips))
	}
	if tips[0].ID != "sub-test-1" {
		t.Errorf("Expected tip id 'sub-test-1', got '%s'", tips[0].ID)
	}
	if tips[0].ExtractionStatus != ExtractionPending {
		t.Errorf("Expected pending extraction status, got '%s'", tips[0].ExtractionStatus)
	}
}

func TestPendingTipsFiltersByStatus(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveTip(Tip{ID: "sub-pending", ExtractionStatus: ExtractionPending}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := s.SaveTip(Tip{ID: "sub-done", ExtractionStatus: ExtractionSuccess}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	pending, err := s.PendingTips()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("Expected 1 pending tip, got %d", len(pending))
	}
	if pending[0].ID != "sub-pending" {
		t.Errorf("Expected pending tip 'sub-pending', got '%s'", pending[0].ID)
	}
}

func TestUpdateTipContent(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveTip(Tip{ID: "sub-enrich", ExtractionStatus: ExtractionPending}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	err := s.UpdateTipContent("sub-enrich", "<p>Extracted body</p>", ExtractionSuccess, "")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	tips, err := s.ReadTips()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if tips[0].Content != "<p>Extracted body</p>" {
		t.Errorf("Expected extracted content to be stored, got '%s'", tips[0].Content)
	}
	if tips[0].ExtractionStatus != ExtractionSuccess {
		t.Errorf("Expected success status, got '%s'", tips[0].ExtractionStatus)
	}

	// Enriched tips no longer show up as pending
	pending, err := s.PendingTips()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("Expected no pending tips after enrichment, got %d", len(pending))
	}
}

func TestUpdateTipContentUnknownIDIsNoop(t *testing.T) {
	s := openTestStore(t)

	if err := s.UpdateTipContent("sub-ghost", "content", ExtractionSuccess, ""); err != nil {
		t.Errorf("Expected no error for unknown tip id, got: %v", err)
	}
}

func TestSaveAndReadContactMessages(t *testing.T) {
	s := openTestStore(t)

	msg := ContactMessage{
		ID:      "msg-test-1",
		Name:    "Jordan Reader",
		Email:   "jordan@example.com",
		Subject: "Correction",
		Message: "The lap time in yesterday's story is off by two seconds.",
	}

	if err := s.SaveContactMessage(msg); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	msgs, err := s.ReadContactMessages()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Name != "Jordan Reader" {
		t.Errorf("Expected name 'Jordan Reader', got '%s'", msgs[0].Name)
	}
	if msgs[0].Read {
		t.Error("New messages should be unread")
	}
}

func TestSubscribeNewsletter(t *testing.T) {
	s := openTestStore(t)

	subscriber, err := s.SubscribeNewsletter("reader@example.com")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if subscriber.Email != "reader@example.com" {
		t.Errorf("Expected email 'reader@example.com', got '%s'", subscriber.Email)
	}
	if subscriber.SubscribedAt.IsZero() {
		t.Error("Expected SubscribedAt to be set")
	}

	subscribers, err := s.ReadSubscribers()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(subscribers) != 1 {
		t.Fatalf("Expected 1 subscriber, got %d", len(subscribers))
	}
}

func TestSubscribeNewsletterNormalizesCase(t *testing.T) {
	s := openTestStore(t)

	subscriber, err := s.SubscribeNewsletter("Reader@Example.COM")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if subscriber.Email != "reader@example.com" {
		t.Errorf("Expected lowercased email, got '%s'", subscriber.Email)
	}
}

func TestSubscribeNewsletterRejectsDuplicates(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.SubscribeNewsletter("reader@example.com"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	// Duplicate detection is case-insensitive
	_, err := s.SubscribeNewsletter("READER@example.com")
	if !errors.Is(err, ErrAlreadySubscribed) {
		t.Fatalf("Expected ErrAlreadySubscribed, got: %v", err)
	}

	subscribers, err := s.ReadSubscribers()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(subscribers) != 1 {
		t.Errorf("Duplicate subscribe should not add an entry, got %d subscribers", len(subscribers))
	}
}

func TestSubscribeNewsletterValidation(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		email  string
		reason string
	}{
		{"", "email is required"},
		{"   ", "email is required"},
		{"not-an-email", "malformed"},
		{"missing@domain", "malformed"},
		{"two words@example.com", "malformed"},
	}

	for _, test := range tests {
		_, err := s.SubscribeNewsletter(test.email)

		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("For input '%s', expected ValidationError, got: %v", test.email, err)
			continue
		}
		if !strings.Contains(validationErr.Fields["email"], test.reason) {
			t.Errorf("For input '%s', expected reason containing '%s', got '%s'",
				test.email, test.reason, validationErr.Fields["email"])
		}
	}
}

func TestCounts(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Toggle(KeyUpvotes, "fp-001"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if _, err := s.Toggle(KeyUpvotes, "ev-002"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if _, err := s.Toggle(KeySaved, "fp-001"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := s.SaveTip(Tip{ID: "sub-count", ExtractionStatus: ExtractionPending}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if _, err := s.SubscribeNewsletter("count@example.com"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	counts, err := s.Counts()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if counts[KeyUpvotes] != 2 {
		t.Errorf("Expected 2 upvotes, got %d", counts[KeyUpvotes])
	}
	if counts[KeySaved] != 1 {
		t.Errorf("Expected 1 saved, got %d", counts[KeySaved])
	}
	if counts[KeyTips] != 1 {
		t.Errorf("Expected 1 tip, got %d", counts[KeyTips])
	}
	if counts[KeyContactMessages] != 0 {
		t.Errorf("Expected 0 contact messages, got %d", counts[KeyContactMessages])
	}
	if counts[KeySubscribers] != 1 {
		t.Errorf("Expected 1 subscriber, got %d", counts[KeySubscribers])
	}
}

func TestSortedSet(t *testing.T) {
	s := openTestStore(t)

	for _, id := range []string{"ms-001", "fp-001", "ev-002"} {
		if _, err := s.Toggle(KeySaved, id); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
	}

	ids, err := s.SortedSet(KeySaved)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	expected := []string{"ev-002", "fp-001", "ms-001"}
	if len(ids) != len(expected) {
		t.Fatalf("Expected %d ids, got %d", len(expected), len(ids))
	}
	for i := range expected {
		if ids[i] != expected[i] {
			t.Errorf("Expected ids[%d] = '%s', got '%s'", i, expected[i], ids[i])
		}
	}
}

func TestToggleSurvivesReopen(t *testing.T) {
	dataDir := t.TempDir()

	s, err := Open(dataDir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if _, err := s.Toggle(KeyUpvotes, "fp-001"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Expected no error closing store, got: %v", err)
	}

	reopened, err := Open(dataDir)
	if err != nil {
		t.Fatalf("Expected no error reopening store, got: %v", err)
	}
	defer reopened.Close()

	set, err := reopened.ReadSet(KeyUpvotes)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !set["fp-001"] {
		t.Error("Toggled id should survive a store reopen")
	}
}

func TestTipArticleConversion(t *testing.T) {
	tip := Tip{
		ID:              "sub-convert",
		Title:           "Converted Tip",
		Publisher:       "Reader",
		Authors:         []string{"Reader"},
		Abstract:        "Full abstract text",
		AbstractPreview: "Full abstract text",
		Category:        "General",
		DOI:             "https://example.com/tip",
		Upvotes:         1,
		Timestamp:       1700000000000,
	}

	article := tip.Article()

	if article.ID != tip.ID {
		t.Errorf("Expected id '%s', got '%s'", tip.ID, article.ID)
	}
	if article.Title != tip.Title {
		t.Errorf("Expected title '%s', got '%s'", tip.Title, article.Title)
	}
	if article.Upvotes != 1 {
		t.Errorf("Expected 1 upvote, got %d", article.Upvotes)
	}
	if article.Timestamp != tip.Timestamp {
		t.Errorf("Expected timestamp %d, got %d", tip.Timestamp, article.Timestamp)
	}
}
