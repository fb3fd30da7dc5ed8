package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func homeMenuText(botName, firstName string) string {
	return fmt.Sprintf(
		"ʜᴇʏ %s ,\nMʏ Nᴀᴍᴇ ɪs %s, ʏᴏᴜ ᴄᴀɴ ᴜsᴇ ᴍᴇ ɪɴ ʏᴏᴜʀ ɢʀᴏᴜᴘ ɪ ᴡɪʟʟ ɢɪᴠᴇ ᴍᴏᴠɪᴇs ᴏʀ sᴇʀɪᴇs ɪɴ ʏᴏᴜʀ ɢʀᴏᴜᴘ.!! 😍",
		firstName, botName,
	)
}

func (b *Bot) homeMenuKeyboard() *tgbotapi.InlineKeyboardMarkup {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("➕ Add Me To Your Chat", b.tp.StartGroupLink()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💬 Commands", "menu_commands"),
			tgbotapi.NewInlineKeyboardButtonData("📦 Source", "menu_source"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Status", "menu_status"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Close", "menu_close"),
		),
	)
	return &kb
}

// sendHomeMenu shows the home menu, editing in place when messageID is
// set.
func (b *Bot) sendHomeMenu(chatID int64, messageID int, firstName string) {
	text := homeMenuText(b.tp.Name(), firstName)
	kb := b.homeMenuKeyboard()
	if messageID != 0 {
		if err := b.tp.EditText(chatID, messageID, text, kb); err != nil {
			b.log.WithError(err).Warn("failed to edit home menu")
		}
		return
	}
	if _, err := b.tp.SendText(chatID, text, kb); err != nil {
		b.log.WithError(err).Warn("failed to send home menu")
	}
}

func backToHomeKeyboard() *tgbotapi.InlineKeyboardMarkup {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back To Home", "menu_home"),
		),
	)
	return &kb
}

func (b *Bot) handleMenuCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	chatID := cq.Message.Chat.ID
	messageID := cq.Message.MessageID

	switch cq.Data {
	case "menu_home", "cmd_start":
		_ = b.tp.AnswerCallback(cq.ID, "")
		b.sendHomeMenu(chatID, messageID, cq.From.FirstName)

	case "menu_commands":
		_ = b.tp.AnswerCallback(cq.ID, "")
		kb := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("▶️ Start Bot", "cmd_start"),
				tgbotapi.NewInlineKeyboardButtonData("🔍 Search Movies", "cmd_search"),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("📂 Movie List", "cmd_list"),
				tgbotapi.NewInlineKeyboardButtonData("🆔 Get IDs", "cmd_id"),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔙 Back To Home", "menu_home"),
			),
		)
		if err := b.tp.EditText(chatID, messageID, "📌 **Available Commands**", &kb); err != nil {
			b.log.WithError(err).Warn("failed to edit menu")
		}

	case "menu_source":
		_ = b.tp.AnswerCallback(cq.ID, "")
		text := "📢 **NOTE:**\n\n- ᴛʜɪꜱ ʙᴏᴛ ɪs ɴᴏᴛ ᴀɴ ᴏᴘᴇɴ sᴏᴜʀᴄᴇ ᴘʀᴏᴊᴇᴄᴛ."
		if err := b.tp.EditText(chatID, messageID, text, backToHomeKeyboard()); err != nil {
			b.log.WithError(err).Warn("failed to edit menu")
		}

	case "menu_status":
		_ = b.tp.AnswerCallback(cq.ID, "")
		total, err := b.store.Count(ctx)
		if err != nil {
			b.log.WithError(err).Error("failed to count movies")
			return
		}
		text := fmt.Sprintf("★ 𝚃𝙾𝚃𝙰𝙻 𝙵𝙸𝙻𝙴𝚂: %d\n★ 𝚃𝙾𝚃𝙰𝙻 𝚄𝚂𝙴𝚁𝚂: N/A\n★ 𝚄𝚂𝙴𝙳 𝚂𝚃𝙾𝚁𝙰𝙶𝙴: N/A\n★ 𝙵𝚁𝙴𝙴 𝚂𝚃𝙾𝚁𝙰𝙶𝙴: N/A", total)
		if err := b.tp.EditText(chatID, messageID, text, backToHomeKeyboard()); err != nil {
			b.log.WithError(err).Warn("failed to edit menu")
		}

	case "menu_close":
		_ = b.tp.AnswerCallback(cq.ID, "")
		_ = b.tp.DeleteMessage(chatID, messageID)

	case "cmd_search":
		_ = b.tp.AnswerCallback(cq.ID, "🔍 Type the movie name in the SEARCH GROUP")

	case "cmd_list":
		if !b.cfg.IsAdmin(cq.From.ID) {
			_ = b.tp.AnswerCallback(cq.ID, "❌ Admin only command")
			return
		}
		_ = b.tp.AnswerCallback(cq.ID, "")
		b.listMovies(ctx, cq.From.ID, chatID, 0, 1)

	case "cmd_id":
		_ = b.tp.AnswerCallback(cq.ID, "")
		text := fmt.Sprintf("🆔 **Your ID Info**\n\n👤 User ID: `%d`\n💬 Chat ID: `%d`", cq.From.ID, chatID)
		_, _ = b.tp.SendText(chatID, text, nil)

	default:
		_ = b.tp.AnswerCallback(cq.ID, "")
	}
}
