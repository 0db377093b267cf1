package menus

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const buttonBackTo = "Back to"

// ApplicationMenu is a reply keyboard nested under another one.
type ApplicationMenu struct {
	Name     string
	From     string
	PrevMenu tgbotapi.ReplyKeyboardMarkup
}

func NewApplicationMenu(name, from string, prevMenu tgbotapi.ReplyKeyboardMarkup) ApplicationMenu {
	return ApplicationMenu{
		Name:     name,
		From:     from,
		PrevMenu: prevMenu,
	}
}

func (am ApplicationMenu) ButtonBackTo() string {
	return buttonBackTo + " " + am.From
}

// Keyboard puts buttons on one row and the way back on the next.
func (am ApplicationMenu) Keyboard(buttons ...string) tgbotapi.ReplyKeyboardMarkup {
	row := make([]tgbotapi.KeyboardButton, 0, len(buttons))
	for _, b := range buttons {
		row = append(row, tgbotapi.NewKeyboardButton(b))
	}
	return tgbotapi.NewReplyKeyboard(
		row,
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(am.ButtonBackTo())),
	)
}
