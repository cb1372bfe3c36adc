package store_test

import (
	"sync"
	"testing"
	"time"

	"civicsync/models"
	"civicsync/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.February, 3, 15, 4, 5, 0, time.UTC)

func newTestStore(t *testing.T, opts ...store.Option) *store.IssueStore {
	t.Helper()
	opts = append([]store.Option{store.WithClock(func() time.Time { return fixedNow })}, opts...)
	s, err := store.New(opts...)
	require.NoError(t, err)
	return s
}

func ids(issues []models.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.ID)
	}
	return out
}

func TestSeedData_Invariants(t *testing.T) {
	s := newTestStore(t)
	all := s.GetAll()
	require.Len(t, all, 8)

	seen := map[string]bool{}
	for _, issue := range all {
		assert.False(t, seen[issue.ID], "duplicate id %s", issue.ID)
		seen[issue.ID] = true

		require.NotEmpty(t, issue.Timeline, issue.ID)
		first := issue.Timeline[0]
		assert.Equal(t, models.Pending, first.Status)
		assert.Equal(t, issue.Date, first.Date)
		assert.Equal(t, "Issue reported", first.Description)
		assert.Equal(t, issue.Status, issue.Timeline[len(issue.Timeline)-1].Status, issue.ID)
	}
}

func TestGetByCategory(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, []string{"CIV001", "CIV005"}, ids(s.GetByCategory(models.Road)))
	assert.Len(t, s.GetByCategory(""), 8)

	none := s.GetByCategory("Parks")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestGetByStatus(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, []string{"CIV003", "CIV006"}, ids(s.GetByStatus(models.Resolved)))
	assert.Len(t, s.GetByStatus(""), 8)
}

func TestGetFiltered(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, []string{"CIV006"}, ids(s.GetFiltered(models.Garbage, models.Resolved)))
	assert.Equal(t, ids(s.GetByCategory(models.Water)), ids(s.GetFiltered(models.Water, "")))
	assert.Equal(t, ids(s.GetByStatus(models.Pending)), ids(s.GetFiltered("", models.Pending)))
	assert.Equal(t, ids(s.GetAll()), ids(s.GetFiltered("", "")))
}

func TestGetFiltered_MatchesBruteForce(t *testing.T) {
	s := newTestStore(t)
	all := s.GetAll()

	categories := []models.IssueCategory{models.Road, models.Garbage, models.Water, models.Electricity}
	statuses := []models.IssueStatus{models.Pending, models.InProgress, models.Resolved}
	for _, c := range categories {
		for _, st := range statuses {
			var want []string
			for _, issue := range all {
				if issue.Category == c && issue.Status == st {
					want = append(want, issue.ID)
				}
			}
			got := ids(s.GetFiltered(c, st))
			if want == nil {
				assert.Empty(t, got, "%s/%s", c, st)
				continue
			}
			assert.Equal(t, want, got, "%s/%s", c, st)
		}
	}
}

func TestSearch(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, ids(s.GetAll()), ids(s.Search("")))
	assert.Equal(t, []string{"CIV001"}, ids(s.Search("pothole")))
	assert.Equal(t, ids(s.Search("pothole")), ids(s.Search("POTHOLE")))

	// description and location are searched too
	assert.Equal(t, []string{"CIV006"}, ids(s.Search("riverbank")))
	assert.Equal(t, []string{"CIV006"}, ids(s.Search("riverside")))
	assert.Empty(t, s.Search("no such thing"))
}

func TestFind(t *testing.T) {
	s := newTestStore(t)

	got := s.Find(store.IssueFilter{Category: models.Water, Query: "pipe"})
	assert.Equal(t, []string{"CIV003"}, ids(got))

	got = s.Find(store.IssueFilter{Status: models.Pending, Query: "street"})
	assert.Equal(t, []string{"CIV001", "CIV004"}, ids(got))
}

func TestGetByID(t *testing.T) {
	s := newTestStore(t)

	issue, err := s.GetByID("CIV003")
	require.NoError(t, err)
	assert.Equal(t, "Water pipe leakage", issue.Title)

	_, err = s.GetByID("CIV999")
	assert.ErrorIs(t, err, store.ErrIssueNotFound)
}

func TestAdd(t *testing.T) {
	s := newTestStore(t)

	created := s.Add(models.NewIssue{
		Title:       "Fallen tree",
		Description: "Tree blocking the road",
		Category:    models.Road,
		Location:    "Birch Lane",
		Status:      models.Resolved,
	})

	assert.Equal(t, "CIV009", created.ID)
	assert.Equal(t, models.Pending, created.Status)
	assert.Equal(t, "2024-02-03", created.Date)
	require.Len(t, created.Timeline, 1)
	assert.Equal(t, models.TimelineEntry{Status: models.Pending, Date: "2024-02-03", Description: "Issue reported"}, created.Timeline[0])

	all := s.GetAll()
	require.Len(t, all, 9)
	assert.Equal(t, created, all[0])
}

func TestAdd_UniqueIDs(t *testing.T) {
	s := newTestStore(t)

	a := s.Add(models.NewIssue{Title: "a"})
	b := s.Add(models.NewIssue{Title: "b"})
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, []string{"CIV010", "CIV009"}, ids(s.GetAll())[:2])
}

func TestAdd_CounterIgnoresCollectionLength(t *testing.T) {
	seed := store.SeedIssues()
	// drop CIV002 so the length no longer matches the highest id
	withGap := append([]models.Issue{seed[0]}, seed[2:]...)
	s := newTestStore(t, store.WithIssues(withGap))
	require.Equal(t, 7, s.Len())

	created := s.Add(models.NewIssue{Title: "x"})
	assert.Equal(t, "CIV009", created.ID)
}

func TestUpdateStatus(t *testing.T) {
	s := newTestStore(t)
	before, err := s.GetByID("CIV001")
	require.NoError(t, err)

	updated, err := s.UpdateStatus("CIV001", models.Resolved)
	require.NoError(t, err)

	assert.Equal(t, models.Resolved, updated.Status)
	require.Len(t, updated.Timeline, len(before.Timeline)+1)
	assert.Equal(t, models.TimelineEntry{
		Status:      models.Resolved,
		Date:        "2024-02-03",
		Description: "Status updated to Resolved",
	}, updated.Timeline[len(updated.Timeline)-1])

	stored, err := s.GetByID("CIV001")
	require.NoError(t, err)
	assert.Equal(t, updated, stored)
}

func TestUpdateStatus_NotFoundLeavesCollectionUnchanged(t *testing.T) {
	s := newTestStore(t)
	before := s.GetAll()

	_, err := s.UpdateStatus("NONEXISTENT", models.Resolved)
	assert.ErrorIs(t, err, store.ErrIssueNotFound)
	assert.Equal(t, before, s.GetAll())
}

func TestReturnedIssuesAreCopies(t *testing.T) {
	s := newTestStore(t)

	issue, err := s.GetByID("CIV002")
	require.NoError(t, err)
	issue.Title = "changed"
	issue.Timeline[0].Description = "changed"

	again, err := s.GetByID("CIV002")
	require.NoError(t, err)
	assert.Equal(t, "Overflowing garbage bin", again.Title)
	assert.Equal(t, "Issue reported", again.Timeline[0].Description)
}

func TestGetAnalytics_IsLive(t *testing.T) {
	s := newTestStore(t)

	a := s.GetAnalytics()
	assert.Equal(t, 8, a.TotalIssues)
	assert.Equal(t, 6, a.OpenIssues)
	assert.Equal(t, []models.CountEntry{
		{Name: "Electricity", Value: 2},
		{Name: "Garbage", Value: 2},
		{Name: "Road", Value: 2},
		{Name: "Water", Value: 2},
	}, a.IssuesByCategory)
	assert.Equal(t, []models.CountEntry{
		{Name: "In Progress", Value: 3},
		{Name: "Pending", Value: 3},
		{Name: "Resolved", Value: 2},
	}, a.IssuesByStatus)

	s.Add(models.NewIssue{Title: "New", Category: models.Road})
	_, err := s.UpdateStatus("CIV004", models.Resolved)
	require.NoError(t, err)

	a = s.GetAnalytics()
	assert.Equal(t, 9, a.TotalIssues)
	assert.Equal(t, 6, a.OpenIssues)
	assert.Contains(t, a.IssuesByCategory, models.CountEntry{Name: "Road", Value: 3})
	assert.Contains(t, a.IssuesByStatus, models.CountEntry{Name: "Resolved", Value: 3})
}

func TestAuthenticateUser(t *testing.T) {
	s := newTestStore(t)

	u, err := s.AuthenticateUser("citizen@demo.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, models.Citizen, u.Type)
	assert.Equal(t, "citizen@demo.com", u.Email)
	assert.NotEqual(t, "password123", u.Password, "stored password should be hashed")

	_, err = s.AuthenticateUser("citizen@demo.com", "wrong")
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)

	_, err = s.AuthenticateUser("nobody@demo.com", "password123")
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)
}

func TestChangeHook(t *testing.T) {
	var snapshots [][]models.Issue
	s := newTestStore(t, store.WithChangeHook(func(issues []models.Issue) {
		snapshots = append(snapshots, issues)
	}))

	created := s.Add(models.NewIssue{Title: "Hooked"})
	_, err := s.UpdateStatus(created.ID, models.InProgress)
	require.NoError(t, err)
	_, err = s.UpdateStatus("missing", models.InProgress)
	require.Error(t, err)

	require.Len(t, snapshots, 2)
	assert.Len(t, snapshots[0], 9)
	assert.Equal(t, created.ID, snapshots[1][0].ID)
	assert.Equal(t, models.InProgress, snapshots[1][0].Status)
}

func TestChangeHook_ConcurrentAddsPersistLatest(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	var mu sync.Mutex
	var lens []int
	calls := 0
	hook := func(issues []models.Issue) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()
		if first {
			close(entered)
			<-release
		}
		mu.Lock()
		lens = append(lens, len(issues))
		mu.Unlock()
	}
	s := newTestStore(t, store.WithChangeHook(hook))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.Add(models.NewIssue{Title: "first"})
	}()
	<-entered

	go func() {
		defer wg.Done()
		s.Add(models.NewIssue{Title: "second"})
	}()
	require.Eventually(t, func() bool { return s.Len() == 10 }, time.Second, time.Millisecond)

	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, lens)
	assert.Equal(t, 10, lens[len(lens)-1], "last snapshot handed to the hook must hold both issues")
}

func TestRestore(t *testing.T) {
	// a stored but empty collection stays empty
	s := newTestStore(t, store.Restore(nil, true))
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, "CIV001", s.Add(models.NewIssue{Title: "first"}).ID)

	s = newTestStore(t, store.Restore(nil, false))
	assert.Equal(t, 8, s.Len())

	s = newTestStore(t, store.Restore(store.SeedIssues()[:2], true))
	assert.Equal(t, []string{"CIV001", "CIV002"}, ids(s.GetAll()))
}
