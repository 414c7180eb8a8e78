package domain

import (
	"fmt"
	"strings"
)

const (
	MinLuckyNumber = 1
	MaxLuckyNumber = 100

	defaultImageColor = "space"
)

type ContentPayload struct {
	Topic       Topic
	Description string
	Mood        string
	LuckyNumber int
	Color       string
}

func (p ContentPayload) Validate() error {
	if strings.TrimSpace(p.Description) == "" {
		return fmt.Errorf("%w: description is empty", ErrInvalidPayload)
	}
	if p.LuckyNumber < MinLuckyNumber || p.LuckyNumber > MaxLuckyNumber {
		return fmt.Errorf("%w: lucky number %d outside [%d,%d]", ErrInvalidPayload, p.LuckyNumber, MinLuckyNumber, MaxLuckyNumber)
	}
	return nil
}

// ImageQuery builds the stock-photo search query for a payload.
func ImageQuery(p ContentPayload) string {
	color := strings.ToLower(strings.TrimSpace(p.Color))
	if color == "" {
		color = defaultImageColor
	}
	return fmt.Sprintf("mystical %s abstract", color)
}

type Caption struct {
	Body string
	Tags []string
}

func (c Caption) Text() string {
	tags := make([]string, 0, len(c.Tags))
	for _, tag := range c.Tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		tags = append(tags, tag)
	}

	if len(tags) == 0 {
		return c.Body
	}
	return c.Body + "\n\n" + strings.Join(tags, " ")
}

// FallbackCaption is used when caption derivation fails. It never fails itself.
func FallbackCaption(p ContentPayload) Caption {
	return Caption{
		Body: p.Description,
		Tags: []string{"#astrology", "#horoscope", "#" + string(p.Topic)},
	}
}

type PostPackage struct {
	Topic       Topic  `json:"topic"`
	ImagePath   string `json:"image_path"`
	Caption     string `json:"caption"`
	Description string `json:"description"`
}

const (
	masterCaptionHeader = "✨ Your daily horoscope is here! ✨\nSwipe to find your sign 🔮\n"
	masterCaptionFooter = "\n\n#horoscope #astrology #zodiac #dailyhoroscope #starsigns #planetsvibe"
)

// MasterCaption concatenates one summary line per package between a fixed header and hashtag footer.
func MasterCaption(packages []PostPackage) string {
	parts := make([]string, 0, len(packages)+2)
	parts = append(parts, masterCaptionHeader)
	for _, pkg := range packages {
		parts = append(parts, fmt.Sprintf("• %s: %s", pkg.Topic.Title(), pkg.Description))
	}
	parts = append(parts, masterCaptionFooter)

	return strings.Join(parts, "\n")
}

func ImagePaths(packages []PostPackage) []string {
	paths := make([]string, 0, len(packages))
	for _, pkg := range packages {
		paths = append(paths, pkg.ImagePath)
	}
	return paths
}

func PackageTopics(packages []PostPackage) []Topic {
	topics := make([]Topic, 0, len(packages))
	for _, pkg := range packages {
		topics = append(topics, pkg.Topic)
	}
	return topics
}
