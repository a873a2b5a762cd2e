package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/park285/westeros-chess/internal/boardclient"
	"github.com/park285/westeros-chess/pkg/boarddto"
)

func main() {
	baseURL := os.Getenv("BOARD_BASE_URL")
	wsCheck := strings.EqualFold(strings.TrimSpace(os.Getenv("BOARD_WS")), "true")
	clientID := os.Getenv("BOARD_CLIENT_ID")

	if baseURL == "" {
		log.Fatal("BOARD_BASE_URL is required")
	}

	headers := func() map[string]string {
		m := map[string]string{}
		if clientID != "" {
			m["X-Board-Client"] = clientID
		}
		return m
	}

	client := boardclient.NewClient(baseURL,
		boardclient.WithHeaderProvider(headers),
		boardclient.WithTimeout(8*time.Second),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	view, err := client.Start(ctx)
	if err != nil {
		log.Fatalf("start error: %v", err)
	}
	log.Printf("start ok: id=%s turn=%s pieces=%d", view.ID, view.Turn, len(view.Pieces))
	defer func() {
		if err := client.End(context.Background(), view.ID); err != nil {
			log.Printf("end error: %v", err)
		}
	}()

	resp, err := client.Drop(ctx, view.ID, boarddto.DropRequest{From: "e2", To: "e4"})
	if err != nil {
		log.Printf("drop error: %v", err)
		return
	}
	log.Printf("drop e2e4: applied=%v turn=%s", resp.Applied, resp.Board.Turn)

	hist, err := client.History(ctx, view.ID)
	if err != nil {
		log.Printf("history error: %v", err)
	} else {
		for _, e := range hist.Entries {
			log.Printf("history: %s", e.Text)
		}
	}

	if !wsCheck {
		log.Println("BOARD_WS not set; skipping WS check")
		return
	}

	wsURL, err := boardclient.WSURL(baseURL, view.ID)
	if err != nil {
		log.Printf("ws url error: %v", err)
		return
	}
	stream, err := boardclient.Dial(ctx, wsURL, headers)
	if err != nil {
		log.Printf("WS connect error: %v", err)
		return
	}
	defer func() { _ = stream.Close() }()

	reply, err := stream.Drop(ctx, "e7", "e5")
	if err != nil {
		log.Printf("WS drop error: %v", err)
		return
	}
	log.Printf("WS drop e7e5: type=%s applied=%v", reply.Type, reply.Applied)
}
