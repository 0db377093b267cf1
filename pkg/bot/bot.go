package bot

import (
	"context"
	"dopingscatter/pkg/chart"
	"dopingscatter/pkg/menus"
	"dopingscatter/pkg/resources"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	menuStart     = "/start"
	menuMenu      = "/menu"
	appName       = "menu"
	buttonChart   = "Chart"
	buttonRiders  = "Riders"
	buttonSummary = "Summary"
)

var menuKeyboard = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(buttonChart),
		tgbotapi.NewKeyboardButton(buttonRiders),
		tgbotapi.NewKeyboardButton(buttonSummary),
	),
)

// Sender is satisfied by *tgbotapi.BotAPI.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Accepter interface {
	AcceptCommand(command string) (bool, func(ctx context.Context, chatId int64) error)
	AcceptButton(button string) (bool, func(ctx context.Context, chatId int64) error)
	AcceptCallback(query *tgbotapi.CallbackQuery) (bool, func(ctx context.Context, query *tgbotapi.CallbackQuery) error)
}

type Bot struct {
	sender    Sender
	logger    *slog.Logger
	accepters []Accepter
}

func New(sender Sender, plot *chart.Plot, set *resources.Set, logger *slog.Logger) *Bot {
	return &Bot{
		sender: sender,
		logger: logger,
		accepters: []Accepter{
			newChartApp(sender, plot, set, menus.NewApplicationMenu(buttonChart, appName, menuKeyboard)),
			newRidersApp(sender, plot),
		},
	}
}

// Run handles updates one at a time until ctx is done or updates is closed.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	b.logger.Info("bot listening for updates")
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	var err error
	switch {
	case update.Message != nil:
		err = b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		err = b.handleCallback(ctx, update.CallbackQuery)
	}
	if err != nil {
		b.logger.Error("handling update", "update", update.UpdateID, "error", err)
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) error {
	if message.From == nil || message.Chat == nil {
		return nil
	}
	b.logger.Debug("message received", "from", message.From.UserName, "text", message.Text)

	chatId := message.Chat.ID
	if message.IsCommand() {
		accept, handler := b.AcceptCommand("/" + message.Command())
		if !accept {
			return b.reply(chatId, fmt.Sprintf("Unknown command. Try %s", menuMenu))
		}
		return handler(ctx, chatId)
	}
	if accept, handler := b.AcceptButton(message.Text); accept {
		return handler(ctx, chatId)
	}
	return nil
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query.Message == nil || query.Message.Chat == nil {
		return nil
	}
	if accept, handler := b.AcceptCallback(query); accept {
		return handler(ctx, query)
	}
	return nil
}

func (b *Bot) AcceptCommand(command string) (bool, func(ctx context.Context, chatId int64) error) {
	if command == menuStart {
		return true, b.renderStart()
	} else if command == menuMenu {
		return true, b.renderMenu()
	}
	for _, accepter := range b.accepters {
		if accept, handler := accepter.AcceptCommand(command); accept {
			return true, handler
		}
	}
	return false, nil
}

func (b *Bot) AcceptButton(button string) (bool, func(ctx context.Context, chatId int64) error) {
	for _, accepter := range b.accepters {
		if accept, handler := accepter.AcceptButton(button); accept {
			return true, handler
		}
	}
	return false, nil
}

func (b *Bot) AcceptCallback(query *tgbotapi.CallbackQuery) (bool, func(ctx context.Context, query *tgbotapi.CallbackQuery) error) {
	for _, accepter := range b.accepters {
		if accept, handler := accepter.AcceptCallback(query); accept {
			return true, handler
		}
	}
	return false, nil
}

func (b *Bot) renderStart() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		message := "Hi, I plot the fastest climbs up Alpe d'Huez and flag riders with doping allegations.\n\n"
		message += "Commands:\n\n"
		message += fmt.Sprintf("%s - Show the bot menu\n", menuMenu)
		message += fmt.Sprintf("%s - Send the scatter plot\n", commandChart)
		message += fmt.Sprintf("%s - List riders, fastest first\n", commandRiders)
		message += fmt.Sprintf("%s - Show dataset figures\n", commandSummary)
		msg := tgbotapi.NewMessage(chatId, message)
		msg.ReplyMarkup = menuKeyboard
		_, err := b.sender.Send(msg)
		return err
	}
}

func (b *Bot) renderMenu() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		msg := tgbotapi.NewMessage(chatId, "Bot menu.")
		msg.ReplyMarkup = menuKeyboard
		_, err := b.sender.Send(msg)
		return err
	}
}

func (b *Bot) reply(chatId int64, text string) error {
	_, err := b.sender.Send(tgbotapi.NewMessage(chatId, text))
	return err
}
