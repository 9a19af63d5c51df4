package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/advisor/internal/app"
	"github.com/ternarybob/advisor/internal/common"
	"github.com/ternarybob/advisor/internal/models"
)

// runConsole drives an interactive question loop on the terminal. The cache
// lives in memory so console runs never touch the server's database directory.
func runConsole(cfg *common.Config, logger arbor.ILogger) {
	application := app.NewConsole(cfg, logger)
	sess := application.Sessions.Create()

	fmt.Println("\n=== Stock Advisor - Your Intelligent Trading Assistant ===")
	fmt.Println()
	fmt.Println("Ask me questions about stocks, market trends, or company information.")
	fmt.Println("Examples:")
	fmt.Println("- What is the current price of AAPL?")
	fmt.Println("- Tell me about Tesla stock")
	fmt.Println("- What's the latest news for MSFT?")
	fmt.Println("- Give me an analysis of AMZN")
	fmt.Println("- Show me a chart for TSLA")
	fmt.Println("- What government contracts does LMT have?")
	fmt.Println("- What's the short volume for GME?")
	fmt.Println("- How many Wikipedia page views does MSFT have?")
	fmt.Println("- Any insider trading for NVDA?")
	fmt.Println("- Have any congress members traded GOOGL?")
	fmt.Println("- Will my TSLA $440 call option be profitable?")
	fmt.Println("- Which options should I buy for AAPL with $1000?")
	fmt.Println("\nType 'exit' to quit.")
	fmt.Println()

	if cfg.Quiver.APIKey == "" {
		fmt.Println("\nNote: Quiver Quantitative API not configured. Some features will be limited.")
		fmt.Println("\nTo access congressional trading, insider transactions, and more:")
		fmt.Println("1. Get an API key from: https://api.quiverquant.com/")
		fmt.Println("2. Set your API key using ONE of these methods:")
		fmt.Println("   a) Add it to advisor.toml under [quiver]")
		fmt.Println("   b) Set environment variable:")
		fmt.Println("      export QUIVER_API_KEY='your_key_here'")
		fmt.Println()
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nWhat would you like to know? ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(question) {
		case "exit", "quit", "q":
			fmt.Println("\nThank you for using Stock Advisor!")
			return
		case "":
			continue
		}

		fmt.Println("\nAnalyzing your question...")
		result := application.Router.Route(context.Background(), sess, question)

		if result.Type == models.ResponseTypeError {
			fmt.Printf("\nError: %s\n", result.Message)
		} else {
			fmt.Printf("\n%s\n", result.Message)
		}
	}
}
