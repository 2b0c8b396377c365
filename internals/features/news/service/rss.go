package service

import (
	"encoding/xml"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"tvdigital_backend/internals/features/news/model"
)

type rssDocument struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Title string    `xml:"title"`
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04:05 -0700",
	time.RFC3339,
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

func parseFeed(raw []byte) (source string, items []model.Article, err error) {
	var doc rssDocument
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return "", nil, fmt.Errorf("parse rss: %w", err)
	}
	source = strings.TrimSpace(doc.Channel.Title)
	for _, it := range doc.Channel.Items {
		title := cleanText(it.Title)
		link := strings.TrimSpace(it.Link)
		if title == "" || link == "" {
			continue
		}
		items = append(items, model.Article{
			Title:       title,
			Link:        link,
			Description: cleanText(it.Description),
			Source:      source,
			PublishedAt: parsePubDate(it.PubDate),
		})
	}
	return source, items, nil
}

// cleanText membuang tag HTML dari description dan merapikan spasi.
func cleanText(s string) string {
	s = html.UnescapeString(tagRe.ReplaceAllString(s, " "))
	return strings.Join(strings.Fields(s), " ")
}

// parsePubDate: format tidak dikenal menghasilkan zero time (diurutkan paling akhir).
func parsePubDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
