// Package tg is a thin wrapper over the Bot API client, narrowed to the
// calls the bot actually makes.
package tg

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Client struct {
	api *tgbotapi.BotAPI
}

func NewClient(token string) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return &Client{api: api}, nil
}

// Username is the bot's own username, known after authentication.
func (c *Client) Username() string {
	return c.api.Self.UserName
}

// Name is the bot's display name.
func (c *Client) Name() string {
	return c.api.Self.FirstName
}

// Updates opens the long-polling update channel.
func (c *Client) Updates() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	return c.api.GetUpdatesChan(u)
}

func (c *Client) StopPolling() {
	c.api.StopReceivingUpdates()
}

// SendText sends a Markdown message, optionally with an inline keyboard.
// It returns the sent message id for later edits.
func (c *Client) SendText(chatID int64, text string, kb *tgbotapi.InlineKeyboardMarkup) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if kb != nil {
		msg.ReplyMarkup = kb
	}
	sent, err := c.api.Send(msg)
	if err != nil {
		return 0, fmt.Errorf("send message to %d: %w", chatID, err)
	}
	return sent.MessageID, nil
}

// SendPhoto sends a photo by file_id with a Markdown caption.
func (c *Client) SendPhoto(chatID int64, fileID, caption string, kb *tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(fileID))
	msg.Caption = caption
	msg.ParseMode = tgbotapi.ModeMarkdown
	if kb != nil {
		msg.ReplyMarkup = kb
	}
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("send photo to %d: %w", chatID, err)
	}
	return nil
}

// SendDocument re-sends a stored document by file_id.
func (c *Client) SendDocument(chatID int64, fileID, caption string) error {
	msg := tgbotapi.NewDocument(chatID, tgbotapi.FileID(fileID))
	msg.Caption = caption
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("send document to %d: %w", chatID, err)
	}
	return nil
}

// EditText rewrites an existing message's text and keyboard.
func (c *Client) EditText(chatID int64, messageID int, text string, kb *tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewEditMessageText(chatID, messageID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = kb
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("edit message %d in %d: %w", messageID, chatID, err)
	}
	return nil
}

func (c *Client) DeleteMessage(chatID int64, messageID int) error {
	if _, err := c.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("delete message %d in %d: %w", messageID, chatID, err)
	}
	return nil
}

// AnswerCallback acknowledges a callback query. A non-empty text is
// shown to the user as an alert.
func (c *Client) AnswerCallback(callbackID, text string) error {
	cb := tgbotapi.NewCallback(callbackID, "")
	if text != "" {
		cb = tgbotapi.NewCallbackWithAlert(callbackID, text)
	}
	if _, err := c.api.Request(cb); err != nil {
		return fmt.Errorf("answer callback %s: %w", callbackID, err)
	}
	return nil
}

// DeepLink builds a t.me start link carrying the given payload.
func (c *Client) DeepLink(payload string) string {
	return fmt.Sprintf("https://t.me/%s?start=%s", c.Username(), payload)
}

// StartGroupLink invites the bot into a group.
func (c *Client) StartGroupLink() string {
	return fmt.Sprintf("https://t.me/%s?startgroup=true", c.Username())
}
