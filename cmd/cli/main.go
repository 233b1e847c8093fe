package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/iliyamo/video-summarizer/internal/client"
)

func main() {
	_ = godotenv.Load()

	server := flag.String("server", "", "base URL of the summarizer API (defaults to $SUMMARIZER_SERVER or http://localhost:8080)")
	flag.Parse()

	base := *server
	if base == "" {
		base = os.Getenv("SUMMARIZER_SERVER")
	}
	if base == "" {
		base = "http://localhost:8080"
	}

	app := client.NewApp(client.NewAPI(base), bufio.NewReader(os.Stdin), os.Stdout)
	if err := app.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
