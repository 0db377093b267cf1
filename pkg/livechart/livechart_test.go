package livechart_test

import (
	"dopingscatter/pkg/chart"
	"dopingscatter/pkg/livechart"
	"dopingscatter/pkg/model"
	"dopingscatter/pkg/palette"
	"dopingscatter/pkg/tooltip"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func plot(t *testing.T) *chart.Plot {
	t.Helper()
	p, err := chart.New([]model.RaceRecord{
		{Time: "36:50", Name: "Marco Pantani", Year: 1995, Nationality: "ITA", Doping: "Alleged drug use"},
		{Time: "38:14", Name: "Carlos Sastre", Year: 2008, Nationality: "ESP"},
	}, chart.DefaultConfig())
	require.NoError(t, err)
	return p
}

func newServer(t *testing.T) (*livechart.LiveChart, *httptest.Server) {
	t.Helper()
	p := plot(t)
	svg, err := livechart.RenderSVG(p)
	require.NoError(t, err)

	r := mux.NewRouter()
	lc := livechart.NewLiveChart(r, p, svg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return lc, srv
}

func TestRenderSVG(t *testing.T) {
	data, err := livechart.RenderSVG(plot(t))
	require.NoError(t, err)

	doc := string(data)
	require.Contains(t, doc, `<g id="x-axis">`)
	require.Contains(t, doc, `<g id="y-axis">`)
	require.Contains(t, doc, chart.YAxisCaption)
	require.Equal(t, 2, strings.Count(doc, `class="dot"`))
	require.Contains(t, doc, `data-index="0"`)
	require.Contains(t, doc, `data-xvalue="1995"`)
	require.Contains(t, doc, `data-yvalue="1970-01-01T00:36:50.000Z"`)
	require.Contains(t, doc, `fill="#1f77b4"`)
	require.True(t, strings.HasSuffix(strings.TrimSpace(doc), "</svg>"))
}

func TestRenderSVG_legendRows(t *testing.T) {
	data, err := livechart.RenderSVG(plot(t))
	require.NoError(t, err)

	doc := string(data)
	start := strings.Index(doc, `<g id="legend" transform="translate(0,300)"`)
	require.GreaterOrEqual(t, start, 0)
	legend := doc[start:strings.Index(doc, `class="dot"`)]

	require.Equal(t, len(palette.Legend()), strings.Count(legend, `<g class="label"`))
	require.Equal(t, strings.Count(doc, `class="label"`), strings.Count(legend, `class="label"`))
	require.Contains(t, legend, `<g class="label" transform="translate(0,0)" >`)
	require.Contains(t, legend, `<g class="label" transform="translate(0,20)" >`)
	require.Contains(t, legend, `font-size=".8em"`)
	require.Contains(t, legend, ">"+palette.LabelClean+"</text>")
	require.Contains(t, legend, ">"+palette.LabelDoping+"</text>")
}

func TestRespond(t *testing.T) {
	lc, _ := newServer(t)

	show := lc.Respond(livechart.HoverEvent{Type: livechart.EventEnter, Index: 0, X: 10, Y: 20, Width: 800})
	require.Equal(t, livechart.MessageShow, show.MessageType)
	require.Equal(t, 1995, show.Body.(tooltip.Show).Year)

	hide := lc.Respond(livechart.HoverEvent{Type: livechart.EventLeave})
	require.Equal(t, livechart.MessageHide, hide.MessageType)

	unknown := lc.Respond(livechart.HoverEvent{Type: livechart.EventEnter, Index: 9})
	require.Equal(t, livechart.MessageError, unknown.MessageType)

	bogus := lc.Respond(livechart.HoverEvent{Type: "click"})
	require.Equal(t, livechart.MessageError, bogus.MessageType)
}

func TestPage(t *testing.T) {
	_, srv := newServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := string(body)
	require.Contains(t, page, `id="title"`)
	require.Contains(t, page, `id="tooltip"`)
	require.Contains(t, page, `class="dot"`)
	require.Contains(t, page, "/tooltip")
	require.Contains(t, page, "tooltip.style.backgroundColor = body.color")
	require.NotContains(t, page, "<?xml")
}

func TestWebsocketTooltip(t *testing.T) {
	_, srv := newServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/tooltip"
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer c.Close()

	exchange := func(payload string) map[string]any {
		require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte(payload)))
		_, data, err := c.ReadMessage()
		require.NoError(t, err)
		var msg map[string]any
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	}

	msg := exchange(`{"type":"pointerenter","index":1,"x":700,"y":40,"width":800}`)
	require.Equal(t, "show", msg["type"])
	body := msg["body"].(map[string]any)
	require.Equal(t, float64(2008), body["year"])
	require.Equal(t, "translate(calc(-100% - 10px), -50%)", body["transform"])
	require.Equal(t, "#ff7f0e", body["color"])

	msg = exchange(`{"type":"pointerleave"}`)
	require.Equal(t, "hide", msg["type"])

	msg = exchange(`not json`)
	require.Equal(t, "error", msg["type"])
}
