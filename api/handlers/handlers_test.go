package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"sentipost/api/handlers"
	"sentipost/api/routes"
	"sentipost/models"
	"sentipost/services"
	"sentipost/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupRouter поднимает изолированный стор и полный набор маршрутов
func setupRouter(opts ...store.Option) (*gin.Engine, *handlers.API, *store.Store) {
	st := store.New(opts...)
	st.SetUsers([]models.User{
		{ID: 1, Username: "admin", Role: models.RoleAdmin, IsEnabled: true},
		{ID: 2, Username: "reader", Role: models.RoleUser, IsEnabled: true},
	})

	auth := services.NewAuthService(st)
	api := handlers.New(st, auth, services.NewWSConnManager())
	api.Now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }

	r := gin.New()
	routes.AdminApi(r, api)
	routes.PublicApi(r, api)
	return r, api, st
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func loginAs(t *testing.T, r *gin.Engine, path, username string) string {
	t.Helper()
	w := doJSON(r, "POST", path, "", gin.H{"username": username, "password": ""})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func adminToken(t *testing.T, r *gin.Engine) string {
	return loginAs(t, r, "/api/v1/auth/login", "admin")
}

func readerToken(t *testing.T, r *gin.Engine) string {
	return loginAs(t, r, "/public/auth/login", "reader")
}

func TestAuthRequired(t *testing.T) {
	r, _, _ := setupRouter()

	w := doJSON(r, "GET", "/api/v1/stats", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, "GET", "/api/v1/stats", "bogus-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReaderTokenRejectedOnAdminSurface(t *testing.T) {
	r, _, _ := setupRouter()
	token := readerToken(t, r)

	// Читательский токен не открывает админскую консоль
	w := doJSON(r, "GET", "/api/v1/stats", token, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	r, _, _ := setupRouter()

	w := doJSON(r, "POST", "/api/v1/auth/login", "", gin.H{"username": "ghost"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	r, _, _ := setupRouter()
	token := adminToken(t, r)

	w := doJSON(r, "POST", "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, "GET", "/api/v1/stats", token, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetStatsEndpoint(t *testing.T) {
	r, _, st := setupRouter(store.WithClock(func() time.Time {
		return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	}))
	st.SetPosts([]models.Post{
		{ID: 1, Views: 10},
		{ID: 2, Views: 5},
	})
	token := adminToken(t, r)

	w := doJSON(r, "GET", "/api/v1/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Stats store.Stats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.EqualValues(t, 15, resp.Stats.TotalVisits)
	require.EqualValues(t, 2, resp.Stats.TotalPosts)
}

func TestCreatePostValidation(t *testing.T) {
	r, _, st := setupRouter()
	token := adminToken(t, r)

	// Без заголовка пост не создается и состояние не меняется
	w := doJSON(r, "POST", "/api/v1/posts", token, gin.H{"description": "no title"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Empty(t, st.Posts())

	w = doJSON(r, "POST", "/api/v1/posts", token, gin.H{"title": "no description"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	images := []string{"a", "b", "c", "d", "e", "f"}
	w = doJSON(r, "POST", "/api/v1/posts", token, gin.H{"title": "t", "description": "d", "images": images})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Empty(t, st.Posts())
}

func TestCreatePostSetsDefaults(t *testing.T) {
	r, _, _ := setupRouter()
	token := adminToken(t, r)

	w := doJSON(r, "POST", "/api/v1/posts", token, gin.H{
		"title":       "Fresh post",
		"description": "desc",
		"tags":        []string{"travel"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var post models.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	// Автор берется из залогиненного админа, пост сразу активен
	require.Equal(t, "admin", post.Author)
	require.True(t, post.IsActive)
	require.Equal(t, models.SentimentNeutral, post.Sentiment)
}

func TestListPostsFiltering(t *testing.T) {
	r, _, st := setupRouter()
	st.SetPosts([]models.Post{
		{ID: 1, Title: "Active go post", IsActive: true},
		{ID: 2, Title: "Inactive post", IsActive: false},
	})
	token := adminToken(t, r)

	w := doJSON(r, "GET", "/api/v1/posts?status=active", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Posts []models.Post `json:"posts"`
		Total int           `json:"total"`
		Shown int           `json:"shown"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Total)
	require.Equal(t, 1, resp.Shown)
	require.EqualValues(t, 1, resp.Posts[0].ID)

	// Пустой результат поиска - это 200 с пустым списком
	w = doJSON(r, "GET", "/api/v1/posts?query=nothing-matches", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Empty(t, resp.Posts)
	require.Equal(t, 0, resp.Shown)
}

func TestCreateTagConflictWhenUniquenessEnforced(t *testing.T) {
	r, _, st := setupRouter(store.WithTagUniqueness(true))
	st.SetTags([]models.Tag{{ID: 1, Name: "travel"}})
	token := adminToken(t, r)

	w := doJSON(r, "POST", "/api/v1/tags", token, gin.H{"name": "travel"})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Len(t, st.Tags(), 1)

	w = doJSON(r, "POST", "/api/v1/tags", token, gin.H{"name": "food"})
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateTagDuplicateAllowedByDefault(t *testing.T) {
	r, _, st := setupRouter()
	st.SetTags([]models.Tag{{ID: 1, Name: "travel"}})
	token := adminToken(t, r)

	w := doJSON(r, "POST", "/api/v1/tags", token, gin.H{"name": "travel"})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, st.Tags(), 2)
}

func TestFeedbackCommentsWindow(t *testing.T) {
	r, _, st := setupRouter()
	st.SetPosts([]models.Post{{ID: 1, Title: "p"}, {ID: 2, Title: "q"}})

	comments := make([]models.Comment, 0, 50)
	for i := 1; i <= 50; i++ {
		comments = append(comments, models.Comment{ID: int64(i), PostID: 1, Comment: fmt.Sprintf("c%d", i)})
	}
	st.SetComments(comments)
	token := adminToken(t, r)

	type resp struct {
		Comments  []models.Comment `json:"comments"`
		Remaining int              `json:"remaining"`
	}

	var got resp
	w := doJSON(r, "GET", "/api/v1/feedbacks/1/comments", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Comments, 20)
	require.Equal(t, 30, got.Remaining)

	// load_more расширяет окно на страницу
	w = doJSON(r, "GET", "/api/v1/feedbacks/1/comments?load_more=1", token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Comments, 40)
	require.Equal(t, 10, got.Remaining)

	// Переключение на другой пост сбрасывает окно
	w = doJSON(r, "GET", "/api/v1/feedbacks/2/comments", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, "GET", "/api/v1/feedbacks/1/comments", token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Comments, 20)
}

func TestFeedbackCommentsConcurrentRequests(t *testing.T) {
	r, _, st := setupRouter()
	st.SetPosts([]models.Post{{ID: 1, Title: "p"}, {ID: 2, Title: "q"}})

	comments := make([]models.Comment, 0, 80)
	for i := 1; i <= 50; i++ {
		comments = append(comments, models.Comment{ID: int64(i), PostID: 1, Comment: fmt.Sprintf("c%d", i)})
	}
	for i := 51; i <= 80; i++ {
		comments = append(comments, models.Comment{ID: int64(i), PostID: 2, Comment: fmt.Sprintf("c%d", i)})
	}
	st.SetComments(comments)
	token := adminToken(t, r)

	// Один токен, параллельные запросы к разным постам
	var wg sync.WaitGroup
	codes := make([]int, 40)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			path := fmt.Sprintf("/api/v1/feedbacks/%d/comments", n%2+1)
			if n%4 == 0 {
				path += "?load_more=1"
			}
			codes[n] = doJSON(r, "GET", path, token, nil).Code
		}(i)
	}
	wg.Wait()

	for _, code := range codes {
		require.Equal(t, http.StatusOK, code)
	}
}

func TestAnalyzeFeedback(t *testing.T) {
	r, _, st := setupRouter()
	st.SetPosts([]models.Post{{ID: 1, Title: "p"}, {ID: 2, Title: "empty"}})
	st.SetComments([]models.Comment{
		{ID: 1, PostID: 1, Comment: "great stuff", Sentiment: models.SentimentPositive, Likes: 3},
		{ID: 2, PostID: 1, Comment: "great again", Sentiment: models.SentimentPositive},
		{ID: 3, PostID: 1, Comment: "nice work", Sentiment: models.SentimentPositive},
		{ID: 4, PostID: 1, Comment: "awful", Sentiment: models.SentimentNegative},
	})
	token := adminToken(t, r)

	w := doJSON(r, "GET", "/api/v1/feedbacks/1/analysis", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Sentiment services.SentimentSummary `json:"sentiment"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 75, resp.Sentiment.Positive)
	require.Equal(t, 0, resp.Sentiment.Neutral)
	require.Equal(t, 25, resp.Sentiment.Negative)
	require.EqualValues(t, 4, resp.Sentiment.TotalComments)

	// Пост без комментариев анализировать нечего
	w = doJSON(r, "GET", "/api/v1/feedbacks/2/analysis", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, "GET", "/api/v1/feedbacks/99/analysis", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetUserActivityWithDanglingPost(t *testing.T) {
	r, _, st := setupRouter()
	st.SetInteractions([]models.Interaction{
		{ID: 1, PostID: 999, UserID: 2, Type: models.InteractionLike, CreatedAt: "2024-03-15"},
	})
	token := adminToken(t, r)

	w := doJSON(r, "GET", "/api/v1/users/2", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Activity []struct {
			PostTitle string `json:"postTitle"`
		} `json:"activity"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Activity, 1)
	// Висячая ссылка на пост - плейсхолдер, а не 500
	require.Equal(t, "Post not found", resp.Activity[0].PostTitle)
}

func TestToggleUserEnabled(t *testing.T) {
	r, _, st := setupRouter()
	token := adminToken(t, r)

	w := doJSON(r, "POST", "/api/v1/users/2/toggle", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	user, _ := st.FindUser(2)
	require.False(t, user.IsEnabled)
	require.Equal(t, "disabled", user.Status())
}

func TestPublicLikeAndComment(t *testing.T) {
	r, _, st := setupRouter()
	st.SetPosts([]models.Post{{ID: 1, Title: "p", Likes: 4, IsActive: true}})
	token := readerToken(t, r)

	w := doJSON(r, "POST", "/public/posts/1/like", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	post, _ := st.FindPost(1)
	require.EqualValues(t, 5, post.Likes)
	require.Len(t, st.Interactions(), 1)

	// Пустой комментарий отклоняется и состояние не меняется
	w = doJSON(r, "POST", "/public/posts/1/comment", token, gin.H{"comment": ""})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Empty(t, st.Comments())

	w = doJSON(r, "POST", "/public/posts/1/comment", token, gin.H{"comment": "hello"})
	require.Equal(t, http.StatusCreated, w.Code)

	var comment models.Comment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comment))
	require.Equal(t, "reader", comment.UserName)
	require.Equal(t, models.SentimentNeutral, comment.Sentiment)

	post, _ = st.FindPost(1)
	require.EqualValues(t, 1, post.Comments)
}

func TestPublicListPostsOpenWithoutToken(t *testing.T) {
	r, _, st := setupRouter()
	st.SetPosts([]models.Post{
		{ID: 1, Title: "First", Content: "hello", IsActive: true, Tags: []string{"travel"}},
		{ID: 2, Title: "Second", Content: "world", IsActive: true},
	})

	w := doJSON(r, "GET", "/public/posts?tag=travel", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Posts []struct {
			Post models.Post `json:"post"`
		} `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Posts, 1)
	require.EqualValues(t, 1, resp.Posts[0].Post.ID)
}

func TestPublicActionsRequireReaderToken(t *testing.T) {
	r, _, st := setupRouter()
	st.SetPosts([]models.Post{{ID: 1, Title: "p"}})

	w := doJSON(r, "POST", "/public/posts/1/like", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSuggestTagsExcludesSelected(t *testing.T) {
	r, _, st := setupRouter()
	st.SetTags([]models.Tag{
		{ID: 1, Name: "travel"},
		{ID: 2, Name: "technology"},
	})
	token := adminToken(t, r)

	w := doJSON(r, "GET", "/api/v1/tags/suggest?query=t&selected=travel", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Tags []models.Tag `json:"tags"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Tags, 1)
	require.Equal(t, "technology", resp.Tags[0].Name)
}
