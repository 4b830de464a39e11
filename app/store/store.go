package store

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// EmailPattern is the fixed local@domain.tld shape every email-accepting
// operation validates against.
var EmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Engagement is the persistence layer for user interaction state:
// upvoted ids, the reading list, submitted tips, contact messages and
// newsletter subscribers. Every operation is a full read-modify-write of
// one collection. A mutex serializes writers within this process; two
// processes sharing a data dir race last-writer-wins.
type Engagement struct {
	db *badger.DB
	mu sync.Mutex
}

// Open initializes the store at dataDir. Pass dataDir="" for an
// in-memory store (tests).
func Open(dataDir string) (*Engagement, error) {
	opts := badger.DefaultOptions(dataDir)
	opts.Logger = nil // Silence default logger
	if dataDir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open engagement store: %w", err)
	}

	return &Engagement{db: db}, nil
}

func (s *Engagement) Close() error {
	return s.db.Close()
}

// Toggle flips membership of id in the named set collection and returns
// the resulting membership.
func (s *Engagement) Toggle(collection, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []string
	if err := s.readJSON(collection, &ids); err != nil {
		return false, err
	}

	member := false
	kept := ids[:0]
	for _, existing := range ids {
		if existing == id {
			member = true
			continue
		}
		kept = append(kept, existing)
	}

	if !member {
		kept = append(kept, id)
	}

	if err := s.writeJSON(collection, kept); err != nil {
		return false, err
	}

	return !member, nil
}

// ReadSet returns the membership set for a toggle collection. A missing
// key is a valid empty state.
func (s *Engagement) ReadSet(collection string) (map[string]bool, error) {
	var ids []string
	if err := s.readJSON(collection, &ids); err != nil {
		return nil, err
	}

	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// SaveTip appends a submitted tip. Tips are visible immediately; there
// is no editorial gate.
func (s *Engagement) SaveTip(tip Tip) error {
	return appendRecord(s, KeyTips, tip)
}

func (s *Engagement) ReadTips() ([]Tip, error) {
	var tips []Tip
	if err := s.readJSON(KeyTips, &tips); err != nil {
		return nil, err
	}
	return tips, nil
}

// PendingTips returns tips still waiting for content enrichment.
func (s *Engagement) PendingTips() ([]Tip, error) {
	tips, err := s.ReadTips()
	if err != nil {
		return nil, err
	}

	var pending []Tip
	for _, tip := range tips {
		if tip.ExtractionStatus == ExtractionPending {
			pending = append(pending, tip)
		}
	}
	return pending, nil
}

// UpdateTipContent writes enrichment results back onto a stored tip.
// Unknown ids are ignored: the tip list may have been rewritten by a
// concurrent writer and there is nothing useful to attach the content to.
func (s *Engagement) UpdateTipContent(id, content, status, errorMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tips []Tip
	if err := s.readJSON(KeyTips, &tips); err != nil {
		return err
	}

	for i := range tips {
		if tips[i].ID != id {
			continue
		}
		tips[i].Content = content
		tips[i].ExtractionStatus = status
		tips[i].ExtractionError = errorMsg
		return s.writeJSON(KeyTips, tips)
	}

	return nil
}

func (s *Engagement) SaveContactMessage(msg ContactMessage) error {
	return appendRecord(s, KeyContactMessages, msg)
}

func (s *Engagement) ReadContactMessages() ([]ContactMessage, error) {
	var msgs []ContactMessage
	if err := s.readJSON(KeyContactMessages, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// SubscribeNewsletter validates the email, rejects duplicates
// case-insensitively, and appends a subscriber entry. Returns
// ErrAlreadySubscribed without writing when the address is on the list.
func (s *Engagement) SubscribeNewsletter(email string) (*Subscriber, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, NewValidationError("email", "email is required")
	}
	if !EmailPattern.MatchString(email) {
		return nil, NewValidationError("email", "email address is malformed")
	}

	normalized := strings.ToLower(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	var subscribers []Subscriber
	if err := s.readJSON(KeySubscribers, &subscribers); err != nil {
		return nil, err
	}

	for _, existing := range subscribers {
		if strings.EqualFold(existing.Email, normalized) {
			return nil, ErrAlreadySubscribed
		}
	}

	subscriber := Subscriber{Email: normalized, SubscribedAt: time.Now().UTC()}
	subscribers = append(subscribers, subscriber)

	if err := s.writeJSON(KeySubscribers, subscribers); err != nil {
		return nil, err
	}

	return &subscriber, nil
}

func (s *Engagement) ReadSubscribers() ([]Subscriber, error) {
	var subscribers []Subscriber
	if err := s.readJSON(KeySubscribers, &subscribers); err != nil {
		return nil, err
	}
	return subscribers, nil
}

// Counts reports collection sizes for the stats endpoint.
func (s *Engagement) Counts() (map[string]int, error) {
	counts := make(map[string]int, 5)

	for _, key := range []string{KeyUpvotes, KeySaved} {
		set, err := s.ReadSet(key)
		if err != nil {
			return nil, err
		}
		counts[key] = len(set)
	}

	tips, err := s.ReadTips()
	if err != nil {
		return nil, err
	}
	counts[KeyTips] = len(tips)

	msgs, err := s.ReadContactMessages()
	if err != nil {
		return nil, err
	}
	counts[KeyContactMessages] = len(msgs)

	subscribers, err := s.ReadSubscribers()
	if err != nil {
		return nil, err
	}
	counts[KeySubscribers] = len(subscribers)

	return counts, nil
}

func appendRecord[T any](s *Engagement, key string, record T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []T
	if err := s.readJSON(key, &records); err != nil {
		return err
	}

	records = append(records, record)
	return s.writeJSON(key, records)
}

func (s *Engagement) readJSON(key string, out any) error {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})

	if err == badger.ErrKeyNotFound {
		return nil
	}
	if err != nil {
		return &PersistenceError{Op: "read", Key: key, Err: err}
	}
	return nil
}

func (s *Engagement) writeJSON(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return &PersistenceError{Op: "marshal", Key: key, Err: err}
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return &PersistenceError{Op: "write", Key: key, Err: err}
	}
	return nil
}

// SortedSet returns a collection's members in lexical order, for stable
// admin listings.
func (s *Engagement) SortedSet(collection string) ([]string, error) {
	set, err := s.ReadSet(collection)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
