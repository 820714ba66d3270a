package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/dmitrijs2005/ledgerkeep/internal/cli"
)

func main() {

	server := flag.String("s", "http://localhost:3000", "API server base URL")
	token := flag.String("t", "", "admin bearer token")
	flag.Parse()

	ctx := context.Background()
	app := cli.NewApp(cli.NewClient(*server, *token), os.Stdin, os.Stdout)

	if err := app.Run(ctx, flag.Args()); err != nil {
		log.Fatalf("%v", err)
	}

}
