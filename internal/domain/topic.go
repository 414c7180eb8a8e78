package domain

import (
	"fmt"
	"strings"
)

type Topic string

const (
	TopicAries       Topic = "aries"
	TopicTaurus      Topic = "taurus"
	TopicGemini      Topic = "gemini"
	TopicCancer      Topic = "cancer"
	TopicLeo         Topic = "leo"
	TopicVirgo       Topic = "virgo"
	TopicLibra       Topic = "libra"
	TopicScorpio     Topic = "scorpio"
	TopicSagittarius Topic = "sagittarius"
	TopicCapricorn   Topic = "capricorn"
	TopicAquarius    Topic = "aquarius"
	TopicPisces      Topic = "pisces"
)

var canonicalTopics = [...]Topic{
	TopicAries,
	TopicTaurus,
	TopicGemini,
	TopicCancer,
	TopicLeo,
	TopicVirgo,
	TopicLibra,
	TopicScorpio,
	TopicSagittarius,
	TopicCapricorn,
	TopicAquarius,
	TopicPisces,
}

// TopicCount is the size of the full topic set. A carousel needs exactly this many packages.
const TopicCount = len(canonicalTopics)

// AllTopics returns the topic set in canonical order. Callers own the returned slice.
func AllTopics() []Topic {
	topics := make([]Topic, len(canonicalTopics))
	copy(topics, canonicalTopics[:])
	return topics
}

func ParseTopic(raw string) (Topic, error) {
	topic := Topic(strings.ToLower(strings.TrimSpace(raw)))
	if !topic.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTopic, raw)
	}

	return topic, nil
}

func (t Topic) Valid() bool {
	for _, known := range canonicalTopics {
		if t == known {
			return true
		}
	}
	return false
}

func (t Topic) Title() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

func (t Topic) String() string {
	return string(t)
}
