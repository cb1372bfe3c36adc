package store

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"civicsync/models"
)

const (
	idPrefix            = "CIV"
	issueReported       = "Issue reported"
	statusUpdatedPrefix = "Status updated to "
)

var (
	ErrIssueNotFound      = errors.New("issue not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// IssueFilter narrows a listing. Empty fields match everything.
type IssueFilter struct {
	Category models.IssueCategory
	Status   models.IssueStatus
	Query    string
}

// IssueStore holds the issue collection and the demo accounts in memory.
// The collection is ordered most recent first; Add prepends.
type IssueStore struct {
	mu     sync.RWMutex
	issues []models.Issue
	users  []models.DemoUser
	lastID int

	// version counts mutations; delivered is the newest version handed to onChange
	version   uint64
	hookMu    sync.Mutex
	delivered uint64

	now      func() time.Time
	onChange func([]models.Issue)
}

// Option configures an IssueStore
type Option func(*IssueStore)

// WithIssues starts the store from the given collection instead of the seed data.
func WithIssues(issues []models.Issue) Option {
	return func(s *IssueStore) {
		s.issues = cloneAll(issues)
	}
}

// Restore applies a loaded snapshot. When found is false the seed data is
// kept; a found snapshot replaces it even if empty.
func Restore(issues []models.Issue, found bool) Option {
	return func(s *IssueStore) {
		if found {
			s.issues = cloneAll(issues)
		}
	}
}

// WithUsers replaces the demo accounts. Passwords must be plaintext.
func WithUsers(users []models.DemoUser) Option {
	return func(s *IssueStore) {
		s.users = append([]models.DemoUser(nil), users...)
	}
}

// WithClock sets the time source used to date new issues and timeline entries.
func WithClock(now func() time.Time) Option {
	return func(s *IssueStore) {
		s.now = now
	}
}

// WithChangeHook registers fn to receive a snapshot of the collection after
// every mutation. fn runs outside the store lock, one call at a time, and
// never receives a snapshot older than one it has already been given.
func WithChangeHook(fn func([]models.Issue)) Option {
	return func(s *IssueStore) {
		s.onChange = fn
	}
}

// New builds a store seeded with the demo data unless overridden by opts.
func New(opts ...Option) (*IssueStore, error) {
	s := &IssueStore{
		issues: SeedIssues(),
		users:  SeedUsers(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	for i := range s.users {
		if err := s.users[i].HashPassword(); err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", s.users[i].Email, err)
		}
	}

	for _, issue := range s.issues {
		if n, ok := parseID(issue.ID); ok && n > s.lastID {
			s.lastID = n
		}
	}
	return s, nil
}

func parseID(id string) (int, bool) {
	if !strings.HasPrefix(id, idPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, idPrefix))
	if err != nil {
		return 0, false
	}
	return n, true
}

func formatID(n int) string {
	return fmt.Sprintf("%s%03d", idPrefix, n)
}

func cloneAll(issues []models.Issue) []models.Issue {
	out := make([]models.Issue, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.Clone())
	}
	return out
}

func (s *IssueStore) today() string {
	return s.now().Format(models.DateLayout)
}

// selectWhere returns copies of the issues matching keep, in collection order.
func (s *IssueStore) selectWhere(keep func(models.Issue) bool) []models.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Issue, 0, len(s.issues))
	for _, issue := range s.issues {
		if keep(issue) {
			out = append(out, issue.Clone())
		}
	}
	return out
}

func matchCategory(category models.IssueCategory) func(models.Issue) bool {
	return func(issue models.Issue) bool {
		return category == "" || issue.Category == category
	}
}

func matchStatus(status models.IssueStatus) func(models.Issue) bool {
	return func(issue models.Issue) bool {
		return status == "" || issue.Status == status
	}
}

func matchQuery(query string) func(models.Issue) bool {
	q := strings.ToLower(query)
	return func(issue models.Issue) bool {
		if q == "" {
			return true
		}
		return strings.Contains(strings.ToLower(issue.Title), q) ||
			strings.Contains(strings.ToLower(issue.Description), q) ||
			strings.Contains(strings.ToLower(issue.Location), q)
	}
}

// Len returns the number of issues in the collection.
func (s *IssueStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.issues)
}

// GetAll returns every issue, most recently added first.
func (s *IssueStore) GetAll() []models.Issue {
	return s.selectWhere(func(models.Issue) bool { return true })
}

// GetByID returns the issue with the exact id, or ErrIssueNotFound.
func (s *IssueStore) GetByID(id string) (models.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, issue := range s.issues {
		if issue.ID == id {
			return issue.Clone(), nil
		}
	}
	return models.Issue{}, ErrIssueNotFound
}

// GetByCategory returns all issues when category is empty.
func (s *IssueStore) GetByCategory(category models.IssueCategory) []models.Issue {
	return s.selectWhere(matchCategory(category))
}

// GetByStatus returns all issues when status is empty.
func (s *IssueStore) GetByStatus(status models.IssueStatus) []models.Issue {
	return s.selectWhere(matchStatus(status))
}

// GetFiltered applies the category filter and then the status filter.
func (s *IssueStore) GetFiltered(category models.IssueCategory, status models.IssueStatus) []models.Issue {
	byCategory, byStatus := matchCategory(category), matchStatus(status)
	return s.selectWhere(func(issue models.Issue) bool {
		return byCategory(issue) && byStatus(issue)
	})
}

// Search matches query case-insensitively against title, description and location.
func (s *IssueStore) Search(query string) []models.Issue {
	return s.selectWhere(matchQuery(query))
}

// Find combines GetFiltered and Search.
func (s *IssueStore) Find(f IssueFilter) []models.Issue {
	byCategory, byStatus, byQuery := matchCategory(f.Category), matchStatus(f.Status), matchQuery(f.Query)
	return s.selectWhere(func(issue models.Issue) bool {
		return byCategory(issue) && byStatus(issue) && byQuery(issue)
	})
}

// Add creates a Pending issue from data and puts it at the front of the collection.
// Any status in data is ignored.
func (s *IssueStore) Add(data models.NewIssue) models.Issue {
	s.mu.Lock()
	date := s.today()
	s.lastID++
	issue := models.Issue{
		ID:          formatID(s.lastID),
		Title:       data.Title,
		Description: data.Description,
		Category:    data.Category,
		Location:    data.Location,
		Status:      models.Pending,
		Date:        date,
		Image:       data.Image,
		Timeline:    []models.TimelineEntry{reported(date)},
	}
	s.issues = append([]models.Issue{issue}, s.issues...)
	version, snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(version, snapshot)
	return issue.Clone()
}

// UpdateStatus sets the status of issue id and appends a timeline entry.
// A missing id returns ErrIssueNotFound and changes nothing.
func (s *IssueStore) UpdateStatus(id string, status models.IssueStatus) (models.Issue, error) {
	s.mu.Lock()
	idx := -1
	for i := range s.issues {
		if s.issues[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return models.Issue{}, ErrIssueNotFound
	}

	issue := &s.issues[idx]
	issue.Status = status
	issue.Timeline = append(issue.Timeline, updated(status, s.today()))
	result := issue.Clone()
	version, snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(version, snapshot)
	return result, nil
}

func (s *IssueStore) snapshotLocked() (uint64, []models.Issue) {
	s.version++
	if s.onChange == nil {
		return s.version, nil
	}
	return s.version, cloneAll(s.issues)
}

// notify delivers snapshots in version order; a writer that lost the race
// to a newer one has its snapshot dropped.
func (s *IssueStore) notify(version uint64, snapshot []models.Issue) {
	if s.onChange == nil {
		return
	}
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	if version <= s.delivered {
		return
	}
	s.delivered = version
	s.onChange(snapshot)
}

// GetAnalytics aggregates the live collection.
func (s *IssueStore) GetAnalytics() models.AnalyticsSnapshot {
	s.mu.RLock()
	byCategory := make(map[string]int)
	byStatus := make(map[string]int)
	open := 0
	for _, issue := range s.issues {
		byCategory[string(issue.Category)]++
		byStatus[string(issue.Status)]++
		if issue.Status == models.Pending || issue.Status == models.InProgress {
			open++
		}
	}
	total := len(s.issues)
	s.mu.RUnlock()

	return models.AnalyticsSnapshot{
		IssuesByCategory: sortedCounts(byCategory),
		IssuesByStatus:   sortedCounts(byStatus),
		TotalIssues:      total,
		OpenIssues:       open,
	}
}

func sortedCounts(counts map[string]int) []models.CountEntry {
	out := make([]models.CountEntry, 0, len(counts))
	for name, value := range counts {
		out = append(out, models.CountEntry{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// AuthenticateUser returns the demo account matching email and password.
// The returned user's Password holds the bcrypt hash.
func (s *IssueStore) AuthenticateUser(email, password string) (models.DemoUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email && u.ComparePassword(password) {
			return u, nil
		}
	}
	return models.DemoUser{}, ErrInvalidCredentials
}

// GetUser returns the demo account with the given email.
func (s *IssueStore) GetUser(email string) (models.DemoUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, true
		}
	}
	return models.DemoUser{}, false
}
