package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lanikai/camsim"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// serveMonitor exposes live pipeline statistics as a websocket feed.
// Clients connect to /stats and receive one JSON snapshot per second until
// they disconnect.
func serveMonitor(addr string, pipeline *camsim.Pipeline) {
	http.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}
		defer ws.Close()

		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for range ticker.C {
			if err := ws.WriteJSON(pipeline.Stats()); err != nil {
				return
			}
		}
	})

	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Println("monitor:", err)
	}
}
