// Command-line demo of the requirements conversation. It runs one session
// against a canned generator so the flow can be exercised without an API key;
// the real service lives in cmd/dealflow.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/catalog"
	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/flow"
	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/models"
)

type echoGenerator struct{}

func (echoGenerator) GenerateDocument(_ context.Context, documentType, requirements string, _ models.DealContext) (*models.GeneratedContent, error) {
	return &models.GeneratedContent{
		Content:    fmt.Sprintf("[draft %s]\n\n%s", documentType, requirements),
		Disclaimer: "Demo output; no model was called.",
	}, nil
}

func main() {
	engine := flow.NewEngine(catalog.Default(), echoGenerator{})

	turn := engine.Greeting()
	printTurn(turn)

	scanner := bufio.NewScanner(os.Stdin)
	for !turn.Complete && scanner.Scan() {
		next, err := engine.Advance(context.Background(), turn.State, scanner.Text(), nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, "conversation aborted:", err)
			os.Exit(1)
		}
		turn = next
		printTurn(turn)
	}
}

func printTurn(turn flow.Turn) {
	if turn.Error != "" {
		fmt.Println("! " + turn.Error)
	}
	if turn.Message != "" {
		fmt.Println(turn.Message)
	}
	for i, opt := range turn.Options {
		if opt.Description != "" {
			fmt.Printf("  %d. %s (%s)\n", i+1, opt.Label, opt.Description)
		} else {
			fmt.Printf("  %d. %s\n", i+1, opt.Label)
		}
	}
	if turn.Document != "" {
		fmt.Println("\n" + turn.Document)
		fmt.Println("\n" + turn.Disclaimer)
	}
	fmt.Print("> ")
}
