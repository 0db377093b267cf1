package bot

import (
	"bytes"
	"context"
	"dopingscatter/pkg/chart"
	"dopingscatter/pkg/helper"
	"fmt"
	"sort"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	commandRiders        = "/riders"
	subcommandShowRiders = "riders"
	ridersPerPage        = 10
	noteWidth            = 16

	symbolInit = "⏮"
	symbolPrev = "◀️"
	symbolNext = "▶️"
	symbolEnd  = "⏭"

	pagerInit = "init"
	pagerPrev = "prev"
	pagerNext = "next"
	pagerEnd  = "end"
)

type ridersApp struct {
	sender Sender
	ranked []chart.Point
}

func newRidersApp(sender Sender, plot *chart.Plot) *ridersApp {
	return &ridersApp{sender: sender, ranked: Ranked(plot)}
}

// Ranked orders the points fastest first. Ties keep dataset order.
func Ranked(p *chart.Plot) []chart.Point {
	points := p.Points()
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Time.Before(points[j].Time)
	})
	return points
}

// RiderTable renders ranked[from:to] with positions counted from one.
// Doping notes are cut to noteWidth runes.
func RiderTable(ranked []chart.Point, from, to int) string {
	from = max(0, min(from, len(ranked)))
	to = max(from, min(to, len(ranked)))

	var b bytes.Buffer
	t := table.NewWriter()
	t.SetOutputMirror(&b)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "RID", "NAT", "YEAR", "TIME", "DOPING"})
	for i, pt := range ranked[from:to] {
		t.AppendRow(table.Row{
			from + i + 1,
			helper.RiderCode(pt.Record.Name),
			pt.Record.Nationality,
			pt.Record.Year,
			pt.Time.String(),
			helper.Truncate(pt.Record.Doping, noteWidth),
		})
	}
	t.Render()
	return b.String()
}

func (r *ridersApp) AcceptCommand(command string) (bool, func(ctx context.Context, chatId int64) error) {
	if command == commandRiders {
		return true, r.renderRiders()
	}
	return false, nil
}

func (r *ridersApp) AcceptButton(button string) (bool, func(ctx context.Context, chatId int64) error) {
	if button == buttonRiders {
		return true, r.renderRiders()
	}
	return false, nil
}

func (r *ridersApp) AcceptCallback(query *tgbotapi.CallbackQuery) (bool, func(ctx context.Context, query *tgbotapi.CallbackQuery) error) {
	data := strings.Split(query.Data, ":")
	if data[0] == subcommandShowRiders && len(data) == 4 {
		return true, r.renderRidersCallback(data[1:])
	}
	return false, nil
}

func (r *ridersApp) renderRiders() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		return r.sendRidersData(chatId, 0, ridersPerPage, nil)
	}
}

func (r *ridersApp) renderRidersCallback(data []string) func(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	return func(ctx context.Context, query *tgbotapi.CallbackQuery) error {
		pagerType := data[0]
		currentPage, err := strconv.Atoi(data[1])
		if err != nil {
			return fmt.Errorf("invalid page %q", data[1])
		}
		itemsPerPage, err := strconv.Atoi(data[2])
		if err != nil || itemsPerPage <= 0 {
			return fmt.Errorf("invalid page size %q", data[2])
		}

		maxPages := max(1, (len(r.ranked)+itemsPerPage-1)/itemsPerPage)
		target := currentPage
		switch pagerType {
		case pagerInit:
			target = 0
		case pagerPrev:
			target = currentPage - 1
		case pagerNext:
			target = currentPage + 1
		case pagerEnd:
			target = maxPages - 1
		default:
			return fmt.Errorf("unknown pager %q", pagerType)
		}
		// telegram rejects edits that leave the message unchanged
		if target < 0 || target >= maxPages || target == currentPage {
			return nil
		}

		messageId := query.Message.MessageID
		return r.sendRidersData(query.Message.Chat.ID, target, itemsPerPage, &messageId)
	}
}

func (r *ridersApp) sendRidersData(chatId int64, currentPage, count int, messageId *int) error {
	text, keyboard := r.ridersTextMarkup(currentPage, count)

	var cfg tgbotapi.Chattable
	if messageId == nil {
		msg := tgbotapi.NewMessage(chatId, text)
		msg.ParseMode = tgbotapi.ModeMarkdownV2
		msg.ReplyMarkup = keyboard
		cfg = msg
	} else {
		msg := tgbotapi.NewEditMessageText(chatId, *messageId, text)
		msg.ParseMode = tgbotapi.ModeMarkdownV2
		msg.ReplyMarkup = &keyboard
		cfg = msg
	}

	_, err := r.sender.Send(cfg)
	return err
}

func (r *ridersApp) ridersTextMarkup(currentPage, count int) (text string, markup tgbotapi.InlineKeyboardMarkup) {
	maxPages := max(1, (len(r.ranked)+count-1)/count)
	tbl := RiderTable(r.ranked, currentPage*count, currentPage*count+count)
	text = fmt.Sprintf("```\nRiders, fastest first (%d/%d)\n\n%s```", currentPage+1, maxPages, tbl)

	var rows []tgbotapi.InlineKeyboardButton
	for _, b := range []struct{ symbol, pager string }{
		{symbolInit, pagerInit},
		{symbolPrev, pagerPrev},
		{symbolNext, pagerNext},
		{symbolEnd, pagerEnd},
	} {
		rows = append(rows, tgbotapi.NewInlineKeyboardButtonData(b.symbol, fmt.Sprintf("%s:%s:%d:%d", subcommandShowRiders, b.pager, currentPage, count)))
	}

	markup = tgbotapi.NewInlineKeyboardMarkup(rows)
	return
}
