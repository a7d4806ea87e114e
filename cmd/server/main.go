package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	. "github.com/cricklet/chessboard/internal/helpers"
	"github.com/cricklet/chessboard/internal/session"
	"github.com/cricklet/chessboard/internal/store"
)

func main() {
	port := flag.Int("port", 8002, "port to serve on")
	dbPath := flag.String("db", "", "sqlite file for persisting games (in memory only when empty)")
	flag.Parse()

	opts := []session.ManagerOption{session.WithManagerLogger(&DefaultLogger)}
	if *dbPath != "" {
		db, err := store.Open(*dbPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer db.Close()
		opts = append(opts, session.WithStore(db))
	}

	server := NewServer(session.NewManager(opts...), &DefaultLogger)

	log.Println("serving at", *port)
	err := Wrap(http.ListenAndServe(fmt.Sprintf(":%v", *port), server.Routes()))
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
