package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/desidelights/tiffin/internal/mockapi"
)

// mockapi serves an in-memory storefront backend so the tiffin client
// can be tried without a real deployment:
//
//	mockapi -addr :5000
//	TIFFIN_API_URL=http://localhost:5000 tiffin register
func main() {
	_ = godotenv.Load()
	addr := flag.String("addr", ":5000", "listen address")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	srv := mockapi.New(logger)
	logger.Info("mock storefront API listening", "addr", *addr, "restaurants", len(srv.Restaurants()))
	if err := http.ListenAndServe(*addr, srv.Handler()); err != nil {
		logger.Error("serve", "err", err)
		os.Exit(1)
	}
}
