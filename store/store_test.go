package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sentipost/models"
	"sentipost/storage"
)

// memStore - хранилище снапшота в памяти для тестов
type memStore struct {
	snap  *storage.Snapshot
	saves int
}

func (m *memStore) Load() (*storage.Snapshot, error) { return m.snap, nil }
func (m *memStore) Save(s *storage.Snapshot) error {
	m.snap = s
	m.saves++
	return nil
}
func (m *memStore) Close() error { return nil }

func fixedClock(day string) func() time.Time {
	return func() time.Time {
		t, _ := time.Parse("2006-01-02", day)
		return t
	}
}

func TestGetStatsAggregation(t *testing.T) {
	st := New(WithClock(fixedClock("2024-03-15")))

	// totalVisits - сумма просмотров постов, пользователи не участвуют
	st.SetPosts([]models.Post{
		{ID: 1, Views: 10},
		{ID: 2, Views: 5},
	})

	stats := st.GetStats()
	require.EqualValues(t, 15, stats.TotalVisits)
	require.EqualValues(t, 0, stats.TotalUsers)
	require.EqualValues(t, 2, stats.TotalPosts)
}

func TestGetStatsTodayMatching(t *testing.T) {
	st := New(WithClock(fixedClock("2024-03-15")))

	st.SetUsers([]models.User{
		{ID: 1, IsOnline: true, RegisteredDate: "2024-03-15"},
		{ID: 2, IsOnline: false, RegisteredDate: "2024-03-14"},
		{ID: 3, IsOnline: true, RegisteredDate: "2024-03-15"},
	})
	// Сравнение по дню префиксное: полный timestamp того же дня совпадает
	st.SetInteractions([]models.Interaction{
		{ID: 1, PostID: 1, Type: models.InteractionLike, CreatedAt: "2024-03-15T10:30:00Z"},
		{ID: 2, PostID: 1, Type: models.InteractionLike, CreatedAt: "2024-03-14T23:59:59Z"},
		{ID: 3, PostID: 2, Type: models.InteractionShare, CreatedAt: "2024-03-15"},
	})

	stats := st.GetStats()
	require.EqualValues(t, 2, stats.UsersOnline)
	require.EqualValues(t, 2, stats.UsersRegisteredToday)
	require.EqualValues(t, 2, stats.TodayInteractions)
}

func TestGetStatsEmptyCollections(t *testing.T) {
	st := New()
	stats := st.GetStats()
	require.Equal(t, Stats{}, stats)
}

func TestCorruptSnapshotGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "senti-storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	// Испорченный снапшот не должен ронять конструктор
	st := New(WithSnapshots(storage.NewFileStore(path)))

	_, authed := st.CurrentAdmin()
	require.False(t, authed)
	require.False(t, st.SidebarCollapsed())
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "senti-storage.json")

	st := New(WithSnapshots(storage.NewFileStore(path)))
	st.Login(models.User{ID: 7, Username: "admin"})
	st.ToggleSidebar()

	restored := New(WithSnapshots(storage.NewFileStore(path)))
	user, authed := restored.CurrentAdmin()
	require.True(t, authed)
	require.EqualValues(t, 7, user.ID)
	require.True(t, restored.SidebarCollapsed())
}

func TestReaderSessionNotPersistedByDefault(t *testing.T) {
	mem := &memStore{}
	st := New(WithSnapshots(mem))

	st.UserLogin(models.User{ID: 3, Username: "reader"})
	_, authed := st.CurrentReader()
	require.True(t, authed)
	// Читательская сессия живет только в памяти процесса
	require.Equal(t, 0, mem.saves)

	restored := New(WithSnapshots(mem))
	_, authed = restored.CurrentReader()
	require.False(t, authed)
}

func TestReaderSessionPersistedWhenEnabled(t *testing.T) {
	mem := &memStore{}
	st := New(WithSnapshots(mem), WithReaderPersistence(true))

	st.UserLogin(models.User{ID: 3, Username: "reader"})
	require.Equal(t, 1, mem.saves)

	restored := New(WithSnapshots(mem), WithReaderPersistence(true))
	user, authed := restored.CurrentReader()
	require.True(t, authed)
	require.EqualValues(t, 3, user.ID)
}

func TestAdminLoginAlwaysPersisted(t *testing.T) {
	mem := &memStore{}
	st := New(WithSnapshots(mem))

	st.Login(models.User{ID: 1, Username: "admin"})
	require.Equal(t, 1, mem.saves)
	st.Logout()
	require.Equal(t, 2, mem.saves)
	require.Nil(t, mem.snap.User)
	require.False(t, mem.snap.IsAuthenticated)
}

func TestSubscribeNotifiesOnCollectionUpdate(t *testing.T) {
	st := New()

	var events []Event
	st.Subscribe(func(ev Event) { events = append(events, ev) })

	st.SetPosts([]models.Post{{ID: 1}})
	st.ToggleSidebar()

	require.Len(t, events, 2)
	require.Equal(t, "collection_updated", events[0].Name)
	require.Equal(t, "posts", events[0].Collection)
	require.Equal(t, "ui_changed", events[1].Name)
}

func TestAddTagUniquenessEnforced(t *testing.T) {
	st := New(WithTagUniqueness(true))
	st.SetTags([]models.Tag{{ID: 1, Name: "travel"}})

	_, err := st.AddTag(models.Tag{Name: "travel"})
	require.ErrorIs(t, err, ErrDuplicateTagName)

	tag, err := st.AddTag(models.Tag{Name: "food"})
	require.NoError(t, err)
	require.EqualValues(t, 2, tag.ID)
}

func TestAddTagDuplicatesAllowedByDefault(t *testing.T) {
	st := New()
	st.SetTags([]models.Tag{{ID: 1, Name: "travel"}})

	// Без включенной проверки дубликаты имен проходят, как в исходной версии
	tag, err := st.AddTag(models.Tag{Name: "travel"})
	require.NoError(t, err)
	require.EqualValues(t, 2, tag.ID)
	require.Len(t, st.Tags(), 2)
}

func TestUpdateTagNotFound(t *testing.T) {
	st := New()
	_, err := st.UpdateTag(models.Tag{ID: 42, Name: "ghost"})
	require.ErrorIs(t, err, ErrTagNotFound)
}

func TestAddCommentBumpsPostCounter(t *testing.T) {
	st := New()
	st.SetPosts([]models.Post{{ID: 1, Comments: 2}})

	st.AddComment(models.Comment{PostID: 1, Comment: "nice"})

	post, ok := st.FindPost(1)
	require.True(t, ok)
	require.EqualValues(t, 3, post.Comments)
}

func TestNextIDAfterDeletion(t *testing.T) {
	st := New()
	st.SetPosts([]models.Post{{ID: 1}, {ID: 5}, {ID: 3}})

	require.True(t, st.DeletePost(5))
	created := st.AddPost(models.Post{Title: "new"})
	// id растет от максимального из оставшихся
	require.EqualValues(t, 4, created.ID)
}

func TestGettersReturnCopies(t *testing.T) {
	st := New()
	st.SetPosts([]models.Post{{ID: 1, Title: "original"}})

	posts := st.Posts()
	posts[0].Title = "mutated"

	post, _ := st.FindPost(1)
	require.Equal(t, "original", post.Title)
}
