// Package notify delivers best-effort outbound notifications about request
// decisions. Producers hand messages to a Dispatcher, which queues them on a
// bounded channel and delivers them from a single background worker. Delivery
// failures are logged and counted and never reach the producer.
package notify

import (
	"strings"

	"golang.org/x/text/language"
)

// Notification types.
const (
	TypeApproval  = "approval"
	TypeRejection = "rejection"
)

// Message is the payload sent to every configured sink.
type Message struct {
	Type            string  `json:"type"`
	Email           string  `json:"email"`
	WhatsApp        string  `json:"whatsapp"`
	UserName        string  `json:"userName"`
	RespawnName     string  `json:"respawnName"`
	SlotTime        string  `json:"slotTime"`
	PeriodName      string  `json:"periodName"`
	RejectionReason *string `json:"rejectionReason,omitempty"`
	Language        string  `json:"language"`
}

var supportedLanguages = []language.Tag{
	language.English,
	language.Portuguese,
	language.Spanish,
	language.Polish,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

// ResolveLanguage matches a user's preferred language (a tag or an
// Accept-Language style list) against the supported set and returns its base
// code. Empty or unsupported preferences yield fallback ("en" when empty).
func ResolveLanguage(pref, fallback string) string {
	if fallback == "" {
		fallback = "en"
	}
	pref = strings.TrimSpace(pref)
	if pref == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(pref)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := languageMatcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	base, _ := supportedLanguages[idx].Base()
	return base.String()
}
