package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"sentipost/models"
)

// Генератор фикстур: пишет пять JSON-коллекций, на которые можно
// направить сервис через data.base_url.

var sentiments = []string{"positive", "neutral", "negative"}
var roles = []string{"user", "user", "user", "moderator", "admin"}
var interactionTypes = []string{"like", "comment", "share"}

func main() {
	var outDir string
	var userCount, postCount int
	flag.StringVar(&outDir, "out", "data", "Output directory for fixture files")
	flag.IntVar(&userCount, "users", 50, "Number of users to generate")
	flag.IntVar(&postCount, "posts", 24, "Number of posts to generate")
	flag.Parse()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		panic(err)
	}

	users := make([]models.User, 0, userCount)
	for i := 1; i <= userCount; i++ {
		name := gofakeit.FirstName()
		users = append(users, models.User{
			ID:             int64(i),
			Username:       fmt.Sprintf("%s_%s", gofakeit.Username(), gofakeit.Numerify("###")),
			FirstName:      name,
			LastName:       gofakeit.LastName(),
			Email:          gofakeit.Email(),
			Phone:          gofakeit.Phone(),
			City:           gofakeit.City(),
			State:          gofakeit.State(),
			Country:        "USA",
			Role:           models.Role(gofakeit.RandomString(roles)),
			IsEnabled:      gofakeit.Number(0, 9) > 0,
			IsOnline:       gofakeit.Bool(),
			RegisteredDate: gofakeit.DateRange(time.Now().AddDate(-2, 0, 0), time.Now()).Format("2006-01-02"),
			LastActive:     gofakeit.DateRange(time.Now().AddDate(0, 0, -7), time.Now()),
			Stats: &models.UserStats{
				Likes:    int64(gofakeit.Number(0, 500)),
				Comments: int64(gofakeit.Number(0, 200)),
				Shares:   int64(gofakeit.Number(0, 100)),
			},
		})
	}

	tagNames := []string{"technology", "education", "travel", "food", "health", "sports", "music", "politics", "science", "lifestyle"}
	tags := make([]models.Tag, 0, len(tagNames))
	for i, name := range tagNames {
		tags = append(tags, models.Tag{
			ID:            int64(i + 1),
			Name:          name,
			Color:         gofakeit.HexColor(),
			PostsCount:    int64(gofakeit.Number(1, 20)),
			LikesCount:    int64(gofakeit.Number(10, 900)),
			CommentsCount: int64(gofakeit.Number(5, 400)),
		})
	}

	posts := make([]models.Post, 0, postCount)
	for i := 1; i <= postCount; i++ {
		created := gofakeit.DateRange(time.Now().AddDate(0, -6, 0), time.Now())
		postTags := []string{}
		for len(postTags) < gofakeit.Number(1, 3) {
			name := gofakeit.RandomString(tagNames)
			exists := false
			for _, t := range postTags {
				if t == name {
					exists = true
					break
				}
			}
			if !exists {
				postTags = append(postTags, name)
			}
		}
		posts = append(posts, models.Post{
			ID:          int64(i),
			Title:       gofakeit.Sentence(6),
			Description: gofakeit.Sentence(15),
			Content:     gofakeit.Paragraph(2, 4, 10, " "),
			Author:      users[gofakeit.Number(0, userCount-1)].Username,
			CreatedAt:   created,
			UpdatedAt:   created,
			Images:      []string{gofakeit.URL()},
			Tags:        postTags,
			Likes:       int64(gofakeit.Number(0, 900)),
			Views:       int64(gofakeit.Number(50, 9000)),
			Comments:    int64(gofakeit.Number(0, 120)),
			IsActive:    gofakeit.Number(0, 9) > 1,
			Sentiment:   models.Sentiment(gofakeit.RandomString(sentiments)),
		})
	}

	interactions := make([]models.Interaction, 0, postCount*20)
	for i := 1; i <= postCount*20; i++ {
		interactions = append(interactions, models.Interaction{
			ID:        int64(i),
			PostID:    int64(gofakeit.Number(1, postCount)),
			UserID:    int64(gofakeit.Number(1, userCount)),
			Type:      models.InteractionType(gofakeit.RandomString(interactionTypes)),
			CreatedAt: gofakeit.DateRange(time.Now().AddDate(0, 0, -30), time.Now()).Format(time.RFC3339),
		})
	}

	comments := make([]models.Comment, 0, postCount*12)
	for i := 1; i <= postCount*12; i++ {
		userIdx := gofakeit.Number(0, userCount-1)
		comments = append(comments, models.Comment{
			ID:        int64(i),
			PostID:    int64(gofakeit.Number(1, postCount)),
			UserID:    users[userIdx].ID,
			UserName:  users[userIdx].Username,
			Comment:   gofakeit.Sentence(gofakeit.Number(5, 18)),
			Sentiment: models.Sentiment(gofakeit.RandomString(sentiments)),
			Likes:     int64(gofakeit.Number(0, 80)),
			CreatedAt: gofakeit.DateRange(time.Now().AddDate(0, 0, -30), time.Now()),
		})
	}

	write(outDir, "users.json", users)
	write(outDir, "posts.json", posts)
	write(outDir, "tags.json", tags)
	write(outDir, "interactions.json", interactions)
	write(outDir, "comments.json", comments)

	fmt.Printf("Fixtures written to %s: %d users, %d posts, %d tags, %d interactions, %d comments\n",
		outDir, len(users), len(posts), len(tags), len(interactions), len(comments))
}

func write(dir, name string, v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		panic(err)
	}
}
