package bot

import (
	"context"
	"dopingscatter/pkg/chart"
	"dopingscatter/pkg/helper"
	"dopingscatter/pkg/menus"
	"dopingscatter/pkg/resources"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	commandChart   = "/chart"
	commandSummary = "/summary"
	buttonPNG      = "PNG"
	buttonSVG      = "SVG"
)

type chartApp struct {
	sender       Sender
	plot         *chart.Plot
	set          *resources.Set
	appMenu      menus.ApplicationMenu
	menuKeyboard tgbotapi.ReplyKeyboardMarkup
}

func newChartApp(sender Sender, plot *chart.Plot, set *resources.Set, appMenu menus.ApplicationMenu) *chartApp {
	return &chartApp{
		sender:       sender,
		plot:         plot,
		set:          set,
		appMenu:      appMenu,
		menuKeyboard: appMenu.Keyboard(buttonPNG, buttonSVG),
	}
}

func (c *chartApp) AcceptCommand(command string) (bool, func(ctx context.Context, chatId int64) error) {
	switch command {
	case commandChart:
		return true, c.renderChart()
	case commandSummary:
		return true, c.renderSummary()
	}
	return false, nil
}

func (c *chartApp) AcceptButton(button string) (bool, func(ctx context.Context, chatId int64) error) {
	switch button {
	case c.appMenu.Name:
		return true, func(ctx context.Context, chatId int64) error {
			msg := tgbotapi.NewMessage(chatId, "Pick a format.")
			msg.ReplyMarkup = c.menuKeyboard
			_, err := c.sender.Send(msg)
			return err
		}
	case c.appMenu.ButtonBackTo():
		return true, func(ctx context.Context, chatId int64) error {
			msg := tgbotapi.NewMessage(chatId, "OK")
			msg.ReplyMarkup = c.appMenu.PrevMenu
			_, err := c.sender.Send(msg)
			return err
		}
	case buttonPNG:
		return true, c.renderChart()
	case buttonSVG:
		return true, c.renderChartSVG()
	case buttonSummary:
		return true, c.renderSummary()
	}
	return false, nil
}

func (c *chartApp) AcceptCallback(query *tgbotapi.CallbackQuery) (bool, func(ctx context.Context, query *tgbotapi.CallbackQuery) error) {
	return false, nil
}

func (c *chartApp) renderChart() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		res, err := c.set.Get(resources.ChartPNG)
		if err != nil {
			return err
		}
		d := c.plot.Domains()
		from, to := yearRange(c.plot.Points())
		photo := tgbotapi.NewPhoto(chatId, tgbotapi.FileBytes{Name: res.Name(), Bytes: res.Data()})
		photo.Caption = fmt.Sprintf("Years %d-%d, times %s to %s", from, to, d.Y.Min, d.Y.Max)
		_, err = c.sender.Send(photo)
		return err
	}
}

func (c *chartApp) renderChartSVG() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		res, err := c.set.Get(resources.ChartSVG)
		if err != nil {
			return err
		}
		doc := tgbotapi.NewDocument(chatId, tgbotapi.FileBytes{Name: res.Name(), Bytes: res.Data()})
		_, err = c.sender.Send(doc)
		return err
	}
}

func yearRange(points []chart.Point) (from, to int) {
	if len(points) == 0 {
		return 0, 0
	}
	from, to = points[0].Record.Year, points[0].Record.Year
	for _, pt := range points[1:] {
		from = min(from, pt.Record.Year)
		to = max(to, pt.Record.Year)
	}
	return from, to
}

// Summary describes the dataset in a few lines.
func Summary(p *chart.Plot) string {
	points := p.Points()
	if len(points) == 0 {
		return "No riders"
	}

	doping := 0
	for _, pt := range points {
		if pt.Record.HasDopingAllegation() {
			doping++
		}
	}
	minYear, maxYear := yearRange(points)

	d := p.Domains()
	spread := int((d.Y.Max.Duration() - d.Y.Min.Duration()).Seconds())

	var b strings.Builder
	fmt.Fprintf(&b, "Riders: %d\n", len(points))
	fmt.Fprintf(&b, "  ▸ With doping allegations: %d\n", doping)
	fmt.Fprintf(&b, "  ▸ Without allegations: %d\n", len(points)-doping)
	fmt.Fprintf(&b, "  ▸ Fastest: %s\n", d.Y.Min)
	fmt.Fprintf(&b, "  ▸ Slowest: %s\n", d.Y.Max)
	fmt.Fprintf(&b, "  ▸ Spread: %s\n", helper.SecondsToClock(spread))
	fmt.Fprintf(&b, "  ▸ Years: %d-%d", minYear, maxYear)
	return b.String()
}

func (c *chartApp) renderSummary() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		_, err := c.sender.Send(tgbotapi.NewMessage(chatId, Summary(c.plot)))
		return err
	}
}
