// Package bot is the Telegram transport: it receives user messages,
// drives the per-user conversation stages and renders recommendation
// outcomes. All recommendation logic lives behind the assembler; the
// bot only translates between chat messages and pipeline calls.
package bot

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/lucsky/cuid"

	"github.com/dukhtravel-jpg/dukh-bot/internal/analytics"
	"github.com/dukhtravel-jpg/dukh-bot/internal/catalog"
	"github.com/dukhtravel-jpg/dukh-bot/internal/models"
	"github.com/dukhtravel-jpg/dukh-bot/internal/recommend"
	"github.com/dukhtravel-jpg/dukh-bot/internal/session"
)

const sweepInterval = 10 * time.Minute

// api is the slice of the Telegram client the bot talks to. Carved out
// of *tgbotapi.BotAPI so the conversation state machine can be driven
// without a network connection.
type api interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// recommender answers one user request end to end.
type recommender interface {
	Recommend(ctx context.Context, userID, userText string, entries []*models.CatalogEntry) recommend.Outcome
}

type Bot struct {
	api       api
	catalog   *catalog.Catalog
	assembler recommender
	sessions  *session.Store
	events    *analytics.Logger
}

func New(token string, cat *catalog.Catalog, asm *recommend.Assembler, sessions *session.Store, events *analytics.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Printf("authorized on telegram account %s", api.Self.UserName)
	return &Bot{
		api:       api,
		catalog:   cat,
		assembler: asm,
		sessions:  sessions,
		events:    events,
	}, nil
}

// Run polls for updates until the context is cancelled. Each update is
// handled in its own goroutine so one user's slow oracle call never
// blocks another user's turn.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case <-ticker.C:
			if n := b.sessions.Sweep(); n > 0 {
				log.Printf("swept %d expired sessions", n)
			}
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			go b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	if msg.IsCommand() {
		b.handleCommand(chatID, userID, msg.Command())
		return
	}

	sess := b.sessions.Get(userID)
	if sess == nil {
		b.send(chatID, "Напишіть /start, щоб почати")
		return
	}

	switch sess.Stage {
	case models.StageAwaitingRequest:
		b.handleRequest(ctx, chatID, userID, text)
	case models.StageAwaitingRating:
		b.handleRating(chatID, userID, sess, text)
	case models.StageAwaitingExplanation:
		b.handleExplanation(chatID, userID, sess, text)
	default:
		b.send(chatID, "Напишіть /start, щоб почати знову")
	}
}

func (b *Bot) handleCommand(chatID int64, userID, command string) {
	switch command {
	case "start":
		b.sessions.Start(userID)
		b.send(chatID,
			"Привіт! Я допоможу тобі знайти ідеальний заклад!\n\n"+
				"Розкажи мені про своє побажання. Наприклад:\n"+
				"• 'Хочу місце для обіду з сім'єю'\n"+
				"• 'Потрібен ресторан для побачення'\n"+
				"• 'Шукаю піцу з друзями'\n\n"+
				"Напиши, що ти шукаєш!")
	case "skip":
		if sess := b.sessions.Get(userID); sess != nil && sess.Stage == models.StageAwaitingExplanation {
			b.finishConversation(chatID, userID, sess, "")
			return
		}
		b.send(chatID, "Нема чого пропускати. Напишіть /start, щоб почати")
	default:
		b.send(chatID, "Невідома команда. Напишіть /start, щоб почати")
	}
}

func (b *Bot) handleRequest(ctx context.Context, chatID int64, userID, text string) {
	requestID := cuid.New()
	b.sessions.Update(userID, func(s *models.Session) {
		s.RequestID = requestID
		s.RequestText = text
	})

	// Logged up front: a request superseded while the oracle thinks
	// still counts as a request.
	b.events.Log(analytics.Event{
		EventType:   analytics.EventRequestReceived,
		UserID:      userID,
		RequestID:   requestID,
		RequestText: text,
	})

	placeholder := b.send(chatID, "Шукаю ідеальний заклад для вас...")

	outcome := b.assembler.Recommend(ctx, userID, text, b.catalog.Entries())

	// A new /start or request may have superseded this one while the
	// oracle was thinking; a stale answer is dropped, not delivered.
	sess := b.sessions.Get(userID)
	if sess == nil || sess.RequestID != requestID {
		log.Printf("dropping stale recommendation for user %s", userID)
		return
	}

	if placeholder != nil {
		b.api.Request(tgbotapi.NewDeleteMessage(chatID, placeholder.MessageID))
	}

	switch {
	case outcome.NotFound != nil:
		b.send(chatID, outcome.NotFound.Message)
		b.events.Log(analytics.Event{
			EventType: analytics.EventDishNotFound,
			UserID:    userID,
			RequestID: requestID,
			Strategy:  string(outcome.Strategy),
			Detail:    strings.Join(outcome.NotFound.MissingDishes, ", "),
		})
		b.sessions.End(userID)
		b.send(chatID, "Напишіть /start, щоб почати знову")

	case outcome.Result != nil:
		b.sendRecommendation(chatID, outcome.Result)
		b.events.Log(analytics.Event{
			EventType: analytics.EventRecommendationServed,
			UserID:    userID,
			RequestID: requestID,
			Strategy:  string(outcome.Strategy),
			VenueName: outcome.Result.Priority().Name,
			Fallback:  outcome.UsedFallback,
		})
		b.sessions.Update(userID, func(s *models.Session) {
			s.Stage = models.StageAwaitingRating
			s.LastResult = outcome.Result
		})
		b.send(chatID, "Оціни рекомендацію від 1 до 5!")

	default:
		b.send(chatID, "Вибачте, зараз немає закладів для рекомендації. Спробуйте пізніше.")
		b.sessions.End(userID)
	}
}

func (b *Bot) handleRating(chatID int64, userID string, sess *models.Session, text string) {
	rating, err := strconv.Atoi(text)
	if err != nil || rating < 1 || rating > 5 {
		b.send(chatID, "Будь ласка, надішли число від 1 до 5")
		return
	}
	b.sessions.Update(userID, func(s *models.Session) {
		s.Stage = models.StageAwaitingExplanation
		s.PendingScore = rating
	})
	b.send(chatID, "Дякую! Розкажи коротко чому, або надішли /skip")
}

func (b *Bot) handleExplanation(chatID int64, userID string, sess *models.Session, text string) {
	b.finishConversation(chatID, userID, sess, text)
}

func (b *Bot) finishConversation(chatID int64, userID string, sess *models.Session, explanation string) {
	venueName := ""
	if sess.LastResult != nil {
		venueName = sess.LastResult.Priority().Name
	}
	b.events.Log(analytics.Event{
		EventType: analytics.EventRatingReceived,
		UserID:    userID,
		RequestID: sess.RequestID,
		VenueName: venueName,
		Rating:    int32(sess.PendingScore),
		Detail:    explanation,
	})
	b.sessions.End(userID)
	b.send(chatID, "Дякую за відгук! Напишіть /start, щоб почати знову")
}

// send delivers a plain message; failures are logged and swallowed, the
// conversation state machine does not depend on delivery.
func (b *Bot) send(chatID int64, text string) *tgbotapi.Message {
	msg := tgbotapi.NewMessage(chatID, text)
	sent, err := b.api.Send(msg)
	if err != nil {
		log.Printf("failed to send message: %v", err)
		return nil
	}
	return &sent
}
