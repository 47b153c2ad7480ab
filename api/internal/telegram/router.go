package telegram

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"hyrox-calc/api/internal/ocr"
)

// BotAPI is the part of *tgbotapi.BotAPI the router uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

type Router struct {
	Bot     BotAPI
	Engines *ocr.Engines
	Timeout time.Duration
	Log     zerolog.Logger

	// MaxChats caps the sheets kept in memory; the least recently used chat
	// starts over with a blank sheet. Zero means defaultMaxChats.
	MaxChats int

	chatsMu sync.Mutex
	chats   *lru.Cache[int64, *chatState]
}

const defaultMaxChats = 10_000

const helpText = "Send a photo of your HYROX scoreboard and I'll read the split times and add them up.\n\n" +
	"Commands:\n" +
	"/summary - current sheet and totals\n" +
	"/set <field> MM:SS - fix one time, e.g. /set run3 04:30, /set ski 03:20, /set roxzone 08:30\n" +
	"/reset - clear all times\n" +
	"/health - bot status"

func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.CallbackQuery != nil {
		r.handleCallback(*upd.CallbackQuery)
		return
	}
	if upd.Message == nil || upd.Message.Chat == nil {
		return
	}
	msg := upd.Message

	switch {
	case msg.IsCommand():
		r.HandleCommand(msg)
	case len(msg.Photo) > 0:
		r.acceptPhoto(ctx, msg.Chat.ID, msg.Photo[len(msg.Photo)-1].FileID, "")
	case msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/"):
		r.acceptPhoto(ctx, msg.Chat.ID, msg.Document.FileID, msg.Document.MimeType)
	case msg.Text != "":
		r.send(msg.Chat.ID, "Send a scoreboard photo, or /help for commands.")
	}
}

func (r *Router) HandleCommand(msg *tgbotapi.Message) {
	cid := msg.Chat.ID
	switch msg.Command() {
	case "start", "help":
		r.send(cid, helpText)
	case "health":
		if _, err := r.Engines.GetEngine(""); err != nil {
			r.send(cid, "⚠️ Scoreboard recognition is not configured.")
			return
		}
		r.send(cid, "✅ OK")
	case "summary":
		r.sendSheet(cid, "Current sheet:", r.state(cid))
	case "set":
		r.handleSet(cid, msg.CommandArguments())
	case "reset":
		r.state(cid).reset()
		r.send(cid, "Sheet cleared.")
	default:
		r.send(cid, "Unknown command. /help lists what I can do.")
	}
}

func (r *Router) handleSet(chatID int64, args string) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		r.send(chatID, "Usage: /set <field> MM:SS, e.g. /set run3 04:30")
		return
	}
	st := r.state(chatID)
	if err := st.set(fields[0], fields[1]); err != nil {
		r.send(chatID, "Not changed: "+err.Error())
		return
	}
	r.sendSheet(chatID, "Updated.", st)
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := r.Bot.Send(msg); err != nil {
		r.Log.Warn().Err(err).Int64("chat_id", chatID).Msg("send failed")
	}
}

func (r *Router) sendSheet(chatID int64, header string, st *chatState) {
	msg := tgbotapi.NewMessage(chatID, header+"\n"+formatSheet(st.sheet))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = sheetKeyboard(st.hasRaw())
	if _, err := r.Bot.Send(msg); err != nil {
		r.Log.Warn().Err(err).Int64("chat_id", chatID).Msg("send failed")
	}
}

func (r *Router) SendError(chatID int64, err error) {
	r.send(chatID, fmt.Sprintf("Could not read the scoreboard: %v", err))
}
