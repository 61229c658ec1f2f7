package domain

// Message is an inbound chat message as seen by the dispatcher
type Message struct {
	ID         string
	ChannelID  string
	GuildID    string
	AuthorID   string
	// AuthorName is only used when rendering replies
	AuthorName string
	AuthorBot  bool
	Content    string
}

// Member is a candidate recipient in the message's channel
type Member struct {
	ID          string
	DisplayName string
	Bot         bool
	Roles       []string
}

// Group is the set of recipients sharing one target language for one message
type Group struct {
	Language   string
	Recipients []Member
}

// GroupResult is one translated rendering for one group
type GroupResult struct {
	Language       string
	SourceLanguage string
	TranslatedText string
	Recipients     []Member
}

// DispatchStage is the last stage a message reached in the dispatcher
type DispatchStage string

const (
	StageReceived           DispatchStage = "received"
	StageFiltered           DispatchStage = "filtered"
	StageSourceDetected     DispatchStage = "source_detected"
	StageRecipientsResolved DispatchStage = "recipients_resolved"
	StageGrouped            DispatchStage = "grouped"
	StageDispatched         DispatchStage = "dispatched"
	StageDone               DispatchStage = "done"
)

// FilterReason explains why a message stopped at StageFiltered
type FilterReason string

const (
	FilterNone            FilterReason = ""
	FilterBotAuthor       FilterReason = "bot_author"
	FilterChannelDisabled FilterReason = "channel_disabled"
	FilterTooShort        FilterReason = "too_short"
	FilterCooldown        FilterReason = "cooldown"
)

// DispatchReport summarises one dispatch run
type DispatchReport struct {
	Stage          DispatchStage
	FilterReason   FilterReason
	SourceLanguage string
	Groups         []Group
	Results        []GroupResult
	Failed         []string // languages whose translation failed
}

// ShouldTranslate reports whether a recipient needs a translation.
// It skips same-language pairs, the author, and neutral-to-neutral pairs.
func ShouldTranslate(sourceLang, targetLang, recipientID, authorID, neutralLang string) bool {
	if sourceLang == targetLang {
		return false
	}
	if recipientID == authorID {
		return false
	}
	if sourceLang == neutralLang && targetLang == neutralLang {
		return false
	}
	return true
}
