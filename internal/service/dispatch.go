package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"translatebot/internal/domain"
	"translatebot/internal/provider"

	"go.uber.org/zap"
)

// Deliverer hands a translated rendering back to the chat platform
type Deliverer interface {
	Deliver(ctx context.Context, msg domain.Message, result domain.GroupResult) error
}

// DispatchConfig holds dispatcher tuning
type DispatchConfig struct {
	MinMessageLength int
	MaxGroups        int
	// RoleLanguages maps a role name or id to the language it implies
	RoleLanguages map[string]string
}

// Dispatcher decides who needs a translation of a message and produces one
// translation per distinct target language.
type Dispatcher struct {
	settings   *SettingsService
	cooldowns  *CooldownTracker
	translator *Translator
	deliverer  Deliverer
	cfg        DispatchConfig
	logger     *zap.Logger
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(
	settings *SettingsService,
	cooldowns *CooldownTracker,
	translator *Translator,
	deliverer Deliverer,
	cfg DispatchConfig,
	logger *zap.Logger,
) *Dispatcher {
	if cfg.MaxGroups < 1 {
		cfg.MaxGroups = 5
	}
	return &Dispatcher{
		settings:   settings,
		cooldowns:  cooldowns,
		translator: translator,
		deliverer:  deliverer,
		cfg:        cfg,
		logger:     logger,
	}
}

type recipient struct {
	member   domain.Member
	language string
}

// Dispatch runs one message through the pipeline. It never fails: every
// problem is logged and reflected in the report.
func (d *Dispatcher) Dispatch(ctx context.Context, msg domain.Message, members []domain.Member) domain.DispatchReport {
	report := domain.DispatchReport{Stage: domain.StageReceived}

	if reason := d.filter(ctx, msg); reason != domain.FilterNone {
		d.logger.Debug("Message filtered",
			zap.String("message_id", msg.ID),
			zap.String("reason", string(reason)),
		)
		report.Stage = domain.StageFiltered
		report.FilterReason = reason
		return report
	}
	report.Stage = domain.StageFiltered

	source, providerSource := d.detectSource(ctx, msg)
	report.SourceLanguage = source
	report.Stage = domain.StageSourceDetected

	recipients := d.resolveRecipients(ctx, members)
	report.Stage = domain.StageRecipientsResolved

	groups := groupRecipients(source, msg.AuthorID, d.settings.DefaultLanguage(), recipients)
	groups = capGroups(groups, d.cfg.MaxGroups)
	report.Groups = groups
	report.Stage = domain.StageGrouped

	if len(groups) == 0 {
		report.Stage = domain.StageDone
		return report
	}

	results, failed := d.translateGroups(ctx, msg, source, providerSource, groups)
	report.Failed = failed
	report.Stage = domain.StageDispatched

	for _, res := range results {
		if err := d.deliverer.Deliver(ctx, msg, res); err != nil {
			d.logger.Error("Failed to deliver translation",
				zap.String("message_id", msg.ID),
				zap.String("language", res.Language),
				zap.Error(err),
			)
			continue
		}
		report.Results = append(report.Results, res)
	}

	d.logger.Info("Message dispatched",
		zap.String("message_id", msg.ID),
		zap.String("channel_id", msg.ChannelID),
		zap.String("source_lang", source),
		zap.Int("groups", len(groups)),
		zap.Int("delivered", len(report.Results)),
		zap.Strings("failed", failed),
	)

	report.Stage = domain.StageDone
	return report
}

func (d *Dispatcher) filter(ctx context.Context, msg domain.Message) domain.FilterReason {
	if msg.AuthorBot {
		return domain.FilterBotAuthor
	}
	if !d.settings.IsChannelEnabled(ctx, msg.ChannelID) {
		return domain.FilterChannelDisabled
	}
	if utf8.RuneCountInString(strings.TrimSpace(msg.Content)) < d.cfg.MinMessageLength {
		return domain.FilterTooShort
	}
	if !d.cooldowns.CheckMessageCooldown(msg.ID) {
		return domain.FilterCooldown
	}
	return domain.FilterNone
}

// detectSource returns the source language used for filtering and the one
// passed to the provider. When detection fails the provider auto-detects.
func (d *Dispatcher) detectSource(ctx context.Context, msg domain.Message) (string, string) {
	source, err := d.translator.Detect(ctx, msg.Content)
	if err != nil || source == "" {
		d.logger.Warn("Language detection failed, using default",
			zap.String("message_id", msg.ID),
			zap.Error(err),
		)
		return d.settings.DefaultLanguage(), provider.AutoDetect
	}
	return source, source
}

func (d *Dispatcher) resolveRecipients(ctx context.Context, members []domain.Member) []recipient {
	out := make([]recipient, 0, len(members))
	for _, m := range members {
		if m.Bot {
			continue
		}
		lang := d.settings.GetUserLanguage(ctx, m.ID)
		if inferred, ok := d.inferFromRoles(m); ok && inferred != lang {
			if err := d.settings.SetUserLanguage(ctx, m.ID, inferred); err != nil {
				d.logger.Warn("Ignoring role language",
					zap.String("user_id", m.ID),
					zap.String("language", inferred),
					zap.Error(err),
				)
			} else {
				lang = inferred
			}
		}
		out = append(out, recipient{member: m, language: lang})
	}
	return out
}

func (d *Dispatcher) inferFromRoles(m domain.Member) (string, bool) {
	if len(d.cfg.RoleLanguages) == 0 {
		return "", false
	}
	for _, role := range m.Roles {
		if code, ok := d.cfg.RoleLanguages[role]; ok {
			return code, true
		}
	}
	return "", false
}

func (d *Dispatcher) translateGroups(
	ctx context.Context,
	msg domain.Message,
	source, providerSource string,
	groups []domain.Group,
) ([]domain.GroupResult, []string) {
	results := make([]*domain.GroupResult, len(groups))

	var wg sync.WaitGroup
	for i, g := range groups {
		wg.Add(1)
		go func(i int, g domain.Group) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					d.logger.Error("Recovered panic while translating group",
						zap.String("message_id", msg.ID),
						zap.String("language", g.Language),
						zap.Any("panic", r),
					)
					results[i] = nil
				}
			}()

			text, err := d.translator.Translate(ctx, msg.Content, g.Language, providerSource)
			if err != nil {
				return
			}
			results[i] = &domain.GroupResult{
				Language:       g.Language,
				SourceLanguage: source,
				TranslatedText: text,
				Recipients:     g.Recipients,
			}
		}(i, g)
	}
	wg.Wait()

	var ok []domain.GroupResult
	var failed []string
	for i, res := range results {
		if res == nil {
			failed = append(failed, groups[i].Language)
			continue
		}
		ok = append(ok, *res)
	}
	return ok, failed
}

// groupRecipients buckets recipients needing a translation by target
// language, keeping first-seen order of languages and members.
func groupRecipients(source, authorID, neutral string, recipients []recipient) []domain.Group {
	index := make(map[string]int)
	var groups []domain.Group
	for _, r := range recipients {
		if !domain.ShouldTranslate(source, r.language, r.member.ID, authorID, neutral) {
			continue
		}
		i, ok := index[r.language]
		if !ok {
			i = len(groups)
			index[r.language] = i
			groups = append(groups, domain.Group{Language: r.language})
		}
		groups[i].Recipients = append(groups[i].Recipients, r.member)
	}
	return groups
}

// capGroups orders groups by recipient count, largest first, keeping
// first-seen order among ties, and keeps at most limit of them.
func capGroups(groups []domain.Group, limit int) []domain.Group {
	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i].Recipients) > len(groups[j].Recipients)
	})
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	return groups
}
