// arenawatch is a terminal spectator: it joins the arena without a player and
// draws every snapshot it receives.
package main

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gorilla/websocket"
	"github.com/growarena/server/internal/net/packet"
)

func main() {
	addr := flag.String("url", "ws://localhost:8000/ws", "arena websocket url")
	codecName := flag.String("codec", packet.CodecJSON, "wire codec: json or msgpack")
	flag.Parse()

	if err := run(*addr, *codecName); err != nil {
		fmt.Fprintf(os.Stderr, "arenawatch: %v\n", err)
		os.Exit(1)
	}
}

func run(addr, codecName string) error {
	codec, err := packet.CodecByName(codecName)
	if err != nil {
		return err
	}
	u, err := spectateURL(addr, codec.Name())
	if err != nil {
		return err
	}
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", u, err)
	}
	defer conn.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	frames := make(chan frame, 1)
	readErr := make(chan error, 1)
	go func() { readErr <- readFrames(conn, codec, frames) }()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	var (
		mapW, mapH float64
		snap       *packet.State
	)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case f := <-frames:
			if f.init != nil {
				mapW, mapH = f.init.Map.W, f.init.Map.H
			}
			if f.state != nil {
				snap = f.state
			}
		case err := <-readErr:
			return fmt.Errorf("connection lost: %w", err)
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			cols, rows := screen.Size()
			draw(screen, Layout(Viewport{Cols: cols, Rows: rows, MapW: mapW, MapH: mapH}, snap))
		}
	}
}

func spectateURL(addr, codec string) (string, error) {
	u, err := url.Parse(addr)
	if err != nil {
		return "", fmt.Errorf("bad url %q: %w", addr, err)
	}
	q := u.Query()
	q.Set("spectate", "1")
	q.Set("codec", codec)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

type frame struct {
	init  *packet.Init
	state *packet.State
}

type envelope struct {
	Type string `json:"type" msgpack:"type"`
}

// readFrames decodes server messages until the connection fails. Only the
// newest snapshot is kept when the drawer falls behind.
func readFrames(conn *websocket.Conn, codec packet.Codec, out chan frame) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var env envelope
		if err := codec.Unmarshal(data, &env); err != nil {
			continue
		}
		var f frame
		switch env.Type {
		case packet.TypeInit:
			f.init = new(packet.Init)
			if err := codec.Unmarshal(data, f.init); err != nil {
				continue
			}
			out <- f
			continue
		case packet.TypeState:
			f.state = new(packet.State)
			if err := codec.Unmarshal(data, f.state); err != nil {
				continue
			}
		default:
			continue
		}
		select {
		case out <- f:
		default:
			select {
			case old := <-out:
				if f.init == nil {
					f.init = old.init
				}
			default:
			}
			out <- f
		}
	}
}

func draw(screen tcell.Screen, glyphs []Glyph) {
	screen.Clear()
	for _, g := range glyphs {
		style := tcell.StyleDefault.Foreground(parseColor(g.Color))
		screen.SetContent(g.X, g.Y, g.Ch, nil, style)
	}
	screen.Show()
}
