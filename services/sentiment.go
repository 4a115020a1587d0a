package services

import (
	"math"
	"sort"
	"strings"

	"sentipost/models"
)

// SentimentSummary - процентное распределение сентимента по комментариям.
// Проценты округляются независимо и в сумме не обязаны давать ровно 100.
type SentimentSummary struct {
	Positive      int   `json:"positive"`
	Neutral       int   `json:"neutral"`
	Negative      int   `json:"negative"`
	TotalComments int64 `json:"totalComments"`
}

// Summarize считает распределение; пустой набор дает нули без деления на ноль
func Summarize(comments []models.Comment) SentimentSummary {
	summary := SentimentSummary{TotalComments: int64(len(comments))}
	if len(comments) == 0 {
		return summary
	}

	var positive, neutral, negative int
	for _, c := range comments {
		switch c.Sentiment {
		case models.SentimentPositive:
			positive++
		case models.SentimentNegative:
			negative++
		default:
			neutral++
		}
	}

	total := float64(len(comments))
	summary.Positive = int(math.Round(float64(positive) / total * 100))
	summary.Neutral = int(math.Round(float64(neutral) / total * 100))
	summary.Negative = int(math.Round(float64(negative) / total * 100))
	return summary
}

type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Highlights - выжимка по комментариям поста
type Highlights struct {
	MostLikedComment *models.Comment `json:"mostLikedComment,omitempty"`
	TopKeywords      []KeywordCount  `json:"topKeywords"`
	TotalEngagement  int64           `json:"totalEngagement"`
}

// ExtractHighlights находит самый залайканный комментарий (при равенстве
// побеждает встреченный первым), пять самых частых слов длиннее трех
// символов без учета регистра и суммарный engagement
func ExtractHighlights(comments []models.Comment) Highlights {
	hl := Highlights{TopKeywords: []KeywordCount{}}
	if len(comments) == 0 {
		return hl
	}

	best := comments[0]
	for _, c := range comments[1:] {
		if c.Likes > best.Likes {
			best = c
		}
	}
	hl.MostLikedComment = &best

	counts := map[string]int{}
	order := map[string]int{}
	seq := 0
	for _, c := range comments {
		for _, word := range strings.Fields(strings.ToLower(c.Comment)) {
			if len(word) <= 3 {
				continue
			}
			if _, seen := counts[word]; !seen {
				order[word] = seq
				seq++
			}
			counts[word]++
		}
	}

	keywords := make([]KeywordCount, 0, len(counts))
	for word, count := range counts {
		keywords = append(keywords, KeywordCount{Word: word, Count: count})
	}
	sort.SliceStable(keywords, func(i, j int) bool {
		if keywords[i].Count != keywords[j].Count {
			return keywords[i].Count > keywords[j].Count
		}
		return order[keywords[i].Word] < order[keywords[j].Word]
	})
	if len(keywords) > 5 {
		keywords = keywords[:5]
	}
	hl.TopKeywords = keywords

	for _, c := range comments {
		hl.TotalEngagement += c.Likes
	}
	return hl
}
