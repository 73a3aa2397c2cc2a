package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"pick-and-place/server/logging"
	"pick-and-place/server/logging/sinks"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	tuningPath := flag.String("tuning", "", "path to a tuning YAML file (defaults baked in)")
	logJSONPath := flag.String("log-json", "", "path for the structured event log (empty disables)")
	logCompress := flag.Bool("log-compress", false, "zstd-compress the structured event log")
	flag.Parse()

	tuning := DefaultTuning()
	if *tuningPath != "" {
		loaded, err := LoadTuning(*tuningPath)
		if err != nil {
			log.Fatalf("failed to load tuning from %s: %v", *tuningPath, err)
		}
		tuning = loaded
	}
	if err := tuning.Validate(); err != nil {
		log.Fatalf("invalid tuning: %v", err)
	}

	router, cleanup, err := buildLogRouter(*logJSONPath, *logCompress)
	if err != nil {
		log.Fatalf("failed to build log router: %v", err)
	}
	defer cleanup()

	hub := newHub(tuning, router)
	stop := make(chan struct{})
	go hub.RunSimulation(stop)
	defer close(stop)

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	http.HandleFunc("/diagnostics", func(w http.ResponseWriter, r *http.Request) {
		stats := router.Stats()
		payload := struct {
			Status        string              `json:"status"`
			ServerTime    int64               `json:"serverTime"`
			Players       []diagnosticsPlayer `json:"players"`
			TickRate      int                 `json:"tickRate"`
			Heartbeat     int64               `json:"heartbeatMillis"`
			EventsLogged  uint64              `json:"eventsLogged"`
			EventsDropped uint64              `json:"eventsDropped"`
		}{
			Status:        "ok",
			ServerTime:    time.Now().UnixMilli(),
			Players:       hub.DiagnosticsSnapshot(),
			TickRate:      tuning.TickRateHz,
			Heartbeat:     heartbeatInterval.Milliseconds(),
			EventsLogged:  stats.EventsTotal,
			EventsDropped: stats.DroppedTotal,
		}

		data, err := json.Marshal(payload)
		if err != nil {
			http.Error(w, "failed to encode", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	http.HandleFunc("/join", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		join := hub.Join()
		data, err := json.Marshal(join)
		if err != nil {
			http.Error(w, "failed to encode", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("id")
		if playerID == "" {
			http.Error(w, "missing id", http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("upgrade failed for %s: %v", playerID, err)
			return
		}

		sub, players, ground, ok := hub.Subscribe(playerID, conn)
		if !ok {
			message := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "unknown player")
			conn.WriteMessage(websocket.CloseMessage, message)
			conn.Close()
			return
		}

		initial := stateMessage{
			Type:        "state",
			Players:     players,
			GroundItems: ground,
			ServerTime:  time.Now().UnixMilli(),
		}
		data, err := json.Marshal(initial)
		if err != nil {
			log.Printf("failed to marshal initial state for %s: %v", playerID, err)
			hub.Disconnect(playerID, "encode_failed")
			return
		}

		sub.mu.Lock()
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			sub.mu.Unlock()
			hub.Disconnect(playerID, "write_failed")
			return
		}
		sub.mu.Unlock()

		readLoop(hub, sub, conn, playerID)
	})

	log.Printf("server listening on %s", *addr)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// readLoop consumes client frames for one connection until it drops.
func readLoop(hub *Hub, sub *subscriber, conn *websocket.Conn, playerID string) {
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if players := hub.Disconnect(playerID, "read_failed"); players != nil {
				go hub.broadcastState(players, nil, 0)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			log.Printf("discarding malformed message from %s: %v", playerID, err)
			continue
		}

		switch msg.Type {
		case "input":
			if !hub.UpdateIntent(playerID, msg.DX, msg.DY, msg.Facing) {
				log.Printf("input ignored for unknown player %s", playerID)
			}
		case "buttons":
			if !hub.UpdateButtons(playerID, msg.Primary, msg.Withdraw) {
				log.Printf("buttons ignored for unknown player %s", playerID)
			}
		case "focus":
			hub.SetFocus(playerID, msg.Region)
		case "menu":
			if err := hub.SetMenuOpen(playerID, msg.Open); err != nil {
				log.Printf("menu toggle failed for %s: %v", playerID, err)
			}
		case "heartbeat":
			now := time.Now()
			rtt, ok := hub.UpdateHeartbeat(playerID, now, msg.SentAt)
			if !ok {
				continue
			}

			ack := heartbeatMessage{
				Type:       "heartbeat",
				ServerTime: now.UnixMilli(),
				ClientTime: msg.SentAt,
				RTTMillis:  rtt.Milliseconds(),
			}
			data, err := json.Marshal(ack)
			if err != nil {
				log.Printf("failed to marshal heartbeat ack for %s: %v", playerID, err)
				continue
			}

			sub.mu.Lock()
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				sub.mu.Unlock()
				hub.Disconnect(playerID, "write_failed")
				return
			}
			sub.mu.Unlock()
		default:
			log.Printf("unknown message type %q from %s", msg.Type, playerID)
		}
	}
}

// buildLogRouter assembles the event router: console always, plus an optional
// JSONL file sink that can be zstd-compressed for long captures.
func buildLogRouter(jsonPath string, compress bool) (*logging.Router, func(), error) {
	cfg := logging.DefaultConfig()
	named := []logging.NamedSink{
		{Name: "console", Sink: sinks.NewConsoleSink(os.Stdout, cfg.Console)},
	}

	var cleanups []func()
	if jsonPath != "" {
		file, err := os.OpenFile(jsonPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		cleanups = append(cleanups, func() { file.Close() })

		var sink logging.Sink
		if compress {
			zsink, err := sinks.NewJSONZstd(file, cfg.JSON.FlushInterval)
			if err != nil {
				file.Close()
				return nil, nil, err
			}
			sink = zsink
		} else {
			sink = sinks.NewJSON(file, cfg.JSON.FlushInterval)
		}
		named = append(named, logging.NamedSink{Name: "json", Sink: sink})
		cfg.EnabledSinks = append(cfg.EnabledSinks, "json")
		cfg.JSON.FilePath = jsonPath
		cfg.JSON.Compress = compress
	}

	router, err := logging.NewRouter(nil, cfg, named)
	if err != nil {
		for _, fn := range cleanups {
			fn()
		}
		return nil, nil, err
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		router.Close(ctx)
		for _, fn := range cleanups {
			fn()
		}
	}
	return router, cleanup, nil
}
