package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (r *Router) handleCallback(cb tgbotapi.CallbackQuery) {
	_, _ = r.Bot.Request(tgbotapi.NewCallback(cb.ID, ""))
	if cb.Message == nil || cb.Message.Chat == nil {
		return
	}
	cid := cb.Message.Chat.ID
	st := r.state(cid)

	switch cb.Data {
	case cbReset:
		st.reset()
		r.send(cid, "Sheet cleared.")
	case cbRaw:
		raw := st.raw()
		if raw == "" {
			r.send(cid, "No model answer yet. Send a scoreboard photo first.")
			return
		}
		msg := tgbotapi.NewMessage(cid, codeBlock(raw))
		msg.ParseMode = tgbotapi.ModeMarkdown
		if _, err := r.Bot.Send(msg); err != nil {
			r.Log.Warn().Err(err).Int64("chat_id", cid).Msg("send failed")
		}
	}
}
