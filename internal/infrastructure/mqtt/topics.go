package mqtt

import (
	"fmt"
	"strings"
)

// Topic prefixes for the miotlang broker surface.
const (
	// TopicPrefix is the base for all miotlang topics.
	TopicPrefix = "miotlang"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "miotlang/system"
)

// Topics provides builders for miotlang MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
type Topics struct{}

// SystemStatus returns the service availability topic. Online/offline
// payloads and the LWT are published here, retained.
//
// Example: miotlang/system/status
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}

// GenerateRequest returns the topic the generation listener subscribes to.
// Payloads are JSON objects: {"urn": "...", "lang": "ru"}.
//
// Example: miotlang/generate/request
func (Topics) GenerateRequest() string {
	return TopicPrefix + "/generate/request"
}

// TranslationResult returns the topic a finished translation document is
// published to. The model slug comes from the device URN.
//
// Example: miotlang/translations/dmaker-p5
func (Topics) TranslationResult(model string) string {
	return fmt.Sprintf("%s/translations/%s", TopicPrefix, model)
}

// ModelSlug derives the result topic's model segment from a normalized
// device URN: the final URN segment, with topic-reserved characters
// replaced. An unparseable URN yields "unknown" rather than a broken topic.
func ModelSlug(urn string) string {
	urn = strings.TrimSpace(urn)
	segments := strings.Split(urn, ":")
	slug := segments[len(segments)-1]

	slug = strings.Map(func(r rune) rune {
		switch r {
		case '/', '+', '#':
			return '-'
		}
		return r
	}, slug)

	if slug == "" {
		return "unknown"
	}
	return slug
}
