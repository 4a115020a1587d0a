package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"

	"sentipost/logger"
	"sentipost/models"
)

// Имена пяти коллекций фикстур
const (
	CollectionUsers        = "users"
	CollectionPosts        = "posts"
	CollectionTags         = "tags"
	CollectionInteractions = "interactions"
	CollectionComments     = "comments"
)

var collectionFetches = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "collection_fetches_total",
		Help: "Total number of fixture collection fetches",
	},
	[]string{"collection", "outcome"},
)

// Bundle - результат загрузки всех пяти коллекций
type Bundle struct {
	Users        []models.User
	Posts        []models.Post
	Tags         []models.Tag
	Interactions []models.Interaction
	Comments     []models.Comment
}

// Client загружает JSON-коллекции со статического эндпоинта.
// Любой сбой (транспорт, не-2xx, битый JSON) нормализуется в пустую
// коллекцию с записью в лог: вызывающие никогда не получают ошибку.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Log        *logrus.Logger
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: http.DefaultClient,
		Log:        logger.L,
	}
}

// fetchInto грузит одну коллекцию в out (указатель на слайс)
func (c *Client) fetchInto(ctx context.Context, name string, out interface{}) {
	url := fmt.Sprintf("%s/data/%s.json", c.BaseURL, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.Log.Warnf("fetch: failed to build request for %s: %v", name, err)
		collectionFetches.WithLabelValues(name, "error").Inc()
		return
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Warnf("fetch: request for %s failed: %v", name, err)
		collectionFetches.WithLabelValues(name, "error").Inc()
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.Log.Warnf("fetch: %s returned status %d", name, resp.StatusCode)
		collectionFetches.WithLabelValues(name, "error").Inc()
		return
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.Log.Warnf("fetch: failed to decode %s: %v", name, err)
		collectionFetches.WithLabelValues(name, "error").Inc()
		return
	}
	collectionFetches.WithLabelValues(name, "ok").Inc()
}

func (c *Client) FetchUsers(ctx context.Context) []models.User {
	users := []models.User{}
	c.fetchInto(ctx, CollectionUsers, &users)
	return users
}

func (c *Client) FetchPosts(ctx context.Context) []models.Post {
	posts := []models.Post{}
	c.fetchInto(ctx, CollectionPosts, &posts)
	return posts
}

func (c *Client) FetchTags(ctx context.Context) []models.Tag {
	tags := []models.Tag{}
	c.fetchInto(ctx, CollectionTags, &tags)
	return tags
}

func (c *Client) FetchInteractions(ctx context.Context) []models.Interaction {
	interactions := []models.Interaction{}
	c.fetchInto(ctx, CollectionInteractions, &interactions)
	return interactions
}

func (c *Client) FetchComments(ctx context.Context) []models.Comment {
	comments := []models.Comment{}
	c.fetchInto(ctx, CollectionComments, &comments)
	return comments
}

// FetchAll грузит пять коллекций параллельно. Каждая загрузка независима:
// сбой одной не блокирует и не портит остальные.
func (c *Client) FetchAll(ctx context.Context) *Bundle {
	bundle := &Bundle{}

	var wg sync.WaitGroup
	wg.Add(5)
	go func() {
		defer wg.Done()
		bundle.Users = c.FetchUsers(ctx)
	}()
	go func() {
		defer wg.Done()
		bundle.Posts = c.FetchPosts(ctx)
	}()
	go func() {
		defer wg.Done()
		bundle.Tags = c.FetchTags(ctx)
	}()
	go func() {
		defer wg.Done()
		bundle.Interactions = c.FetchInteractions(ctx)
	}()
	go func() {
		defer wg.Done()
		bundle.Comments = c.FetchComments(ctx)
	}()
	wg.Wait()

	return bundle
}
