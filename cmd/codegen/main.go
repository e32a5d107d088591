package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/delaneyj/afterparty/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const (
	arityCountKey = "count"
)

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate the typed EffectN helpers for deferred signals",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  arityCountKey,
				Usage: "Number of generic parameters to generate",
				Value: 8,
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Codegen for deferred helpers started!")
	defer func() {
		log.Printf("Codegen for deferred helpers finished in %v", time.Since(start))
	}()

	arityCount := cmd.Uint(arityCountKey)

	contents := templates.ArityGen(int(arityCount))
	if err := os.WriteFile("deferred/arity.go", []byte(contents), 0644); err != nil {
		return err
	}

	return nil
}
