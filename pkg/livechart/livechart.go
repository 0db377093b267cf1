package livechart

import (
	"bytes"
	"dopingscatter/pkg/caster"
	"dopingscatter/pkg/chart"
	"dopingscatter/pkg/tooltip"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const (
	EventEnter = "pointerenter"
	EventLeave = "pointerleave"

	MessageShow  = "show"
	MessageHide  = "hide"
	MessageError = "error"
)

var upgrader = websocket.Upgrader{} // use default options

// HoverEvent is sent by the page whenever the pointer crosses a dot.
type HoverEvent struct {
	Type  string  `json:"type"`
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Width float64 `json:"width"`
}

type Message struct {
	MessageType string `json:"type"`
	Body        any    `json:"body,omitempty"`
}

type LiveChart struct {
	plot   *chart.Plot
	svg    template.HTML
	logger *slog.Logger
	frames caster.JSONFrames[HoverEvent, Message]
}

func NewLiveChart(r *mux.Router, plot *chart.Plot, svg []byte, logger *slog.Logger) *LiveChart {
	if i := bytes.Index(svg, []byte("<svg")); i > 0 {
		svg = svg[i:]
	}
	lc := &LiveChart{
		plot:   plot,
		svg:    template.HTML(svg),
		logger: logger,
	}
	lc.addHandlers(r)
	return lc
}

// Respond maps a hover event to the message the page should apply.
func (lc *LiveChart) Respond(ev HoverEvent) Message {
	switch ev.Type {
	case EventEnter:
		show, err := tooltip.Enter(lc.plot, ev.Index, ev.X, ev.Y, ev.Width)
		if err != nil {
			return Message{MessageType: MessageError, Body: err.Error()}
		}
		return Message{MessageType: MessageShow, Body: show}
	case EventLeave:
		return Message{MessageType: MessageHide, Body: tooltip.Leave()}
	}
	return Message{MessageType: MessageError, Body: "unknown event " + ev.Type}
}

func (lc *LiveChart) websocketHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			lc.logger.Warn("upgrade failed", "error", err)
			return
		}
		defer c.Close()

		go func() {
			<-r.Context().Done()
			c.Close()
		}()

		for {
			mt, data, err := c.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					lc.logger.Warn("read failed", "error", err)
				}
				return
			}

			var reply Message
			ev, err := lc.frames.Decode(data)
			if err != nil {
				reply = Message{MessageType: MessageError, Body: "malformed event"}
			} else {
				reply = lc.Respond(ev)
			}

			out, err := lc.frames.Encode(reply)
			if err != nil {
				lc.logger.Error("marshal failed", "error", err)
				return
			}
			if err := c.WriteMessage(mt, out); err != nil {
				lc.logger.Warn("write failed", "error", err)
				return
			}
		}
	}
}

type Data struct {
	WebSocketURL string
	Chart        template.HTML
	Width        int
	Height       int
}

func (lc *LiveChart) pageHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		scheme := "ws://"
		if r.TLS != nil {
			scheme = "wss://"
		}
		cfg := lc.plot.Config()
		e := Data{
			WebSocketURL: scheme + r.Host + "/tooltip",
			Chart:        lc.svg,
			Width:        int(cfg.Width),
			Height:       int(cfg.Height),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := homeTemplate.Execute(w, e); err != nil {
			lc.logger.Error("rendering page", "error", err)
		}
	}
}

func (lc *LiveChart) addHandlers(r *mux.Router) {
	r.HandleFunc("/tooltip", lc.websocketHandler())
	r.HandleFunc("/", lc.pageHandler()).Methods(http.MethodGet)
}

var homeTemplate = template.Must(template.New("").Parse(`
<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Doping in Professional Bicycle Racing</title>
  <style>
    body { font-family: sans-serif; text-align: center; }
    #main { display: inline-block; width: {{ .Width }}px; }
    #tooltip {
      position: absolute;
      visibility: hidden;
      padding: 6px 10px;
      font-size: 12px;
      text-align: left;
      color: white;
      border-radius: 4px;
      pointer-events: none;
    }
  </style>
</head>
<body>
  <div id="main">
    <h1 id="title">Doping in Professional Bicycle Racing</h1>
    <h2 id="subtitle">Fastest times up Alpe d'Huez</h2>
    {{ .Chart }}
    <div id="tooltip"></div>
  </div>

  <script>
    const wsUrl = '{{ .WebSocketURL }}';
    const tooltip = document.getElementById('tooltip');
    const socket = new WebSocket(wsUrl);

    function send(event) {
      if (socket.readyState === WebSocket.OPEN) {
        socket.send(JSON.stringify(event));
      }
    }

    for (const dot of document.querySelectorAll('circle.dot')) {
      dot.addEventListener('pointerenter', (event) => {
        send({
          type: 'pointerenter',
          index: Number(dot.dataset.index),
          x: event.pageX,
          y: event.pageY,
          width: window.innerWidth,
        });
      });
      dot.addEventListener('pointerleave', () => send({type: 'pointerleave'}));
    }

    socket.addEventListener('message', (event) => {
      const msg = JSON.parse(event.data);
      switch (msg.type) {
        case 'show': {
          const body = msg.body;
          tooltip.replaceChildren();
          body.lines.forEach((line, i) => {
            if (i > 0) {
              tooltip.appendChild(document.createElement('br'));
            }
            tooltip.appendChild(document.createTextNode(line));
          });
          tooltip.setAttribute('data-year', body.year);
          tooltip.style.left = body.left + 'px';
          tooltip.style.top = body.top + 'px';
          tooltip.style.transform = body.transform;
          tooltip.style.backgroundColor = body.color;
          tooltip.style.visibility = 'visible';
          break;
        }
        case 'hide':
          tooltip.style.visibility = 'hidden';
          break;
        default:
          console.error('tooltip:', msg.body);
      }
    });

    socket.addEventListener('close', (event) => {
      console.log('WebSocket connection closed:', event);
    });
  </script>
</body>
</html>
`))
