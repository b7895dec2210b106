package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	gmail "google.golang.org/api/gmail/v1"

	"github.com/berkanunver-maker/subwatch-ai/internal/adapters/gmailsrc"
	"github.com/berkanunver-maker/subwatch-ai/internal/logging"
	"github.com/berkanunver-maker/subwatch-ai/internal/mailparse"
	"go.uber.org/zap"
)

var (
	inputFile = flag.String("file", "", "Input Gmail message JSON (use stdin if not specified)")
	verbose   = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog   = flag.Bool("json-log", false, "Output logs in JSON format")
	jsonOut   = flag.Bool("json", false, "Print the extracted record as JSON")
)

// mail-extract runs the extraction pipeline over a single Gmail API message
// (the JSON shape of users.messages.get with format=full) and prints the
// subscription record it finds, if any. Handy for debugging new provider
// mails without touching a mailbox.
func main() {
	flag.Parse()

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Read message from file or stdin
	var reader io.Reader
	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", *inputFile))
		}
		defer file.Close()
		reader = file
		logger.Info("Reading message from file", zap.String("file", *inputFile))
	} else {
		reader = os.Stdin
		logger.Info("Reading message from stdin")
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		logger.Fatal("Failed to read input", zap.Error(err))
	}

	var msg gmail.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		logger.Fatal("Failed to parse message JSON", zap.Error(err))
	}

	raw := gmailsrc.ToRawMail(&msg)
	extractor := mailparse.NewExtractor(logger, nil)

	sub := extractor.Extract(raw)
	if sub == nil {
		fmt.Println("No subscription found in this mail")
		os.Exit(1)
	}

	if *jsonOut {
		encoded, err := json.MarshalIndent(sub, "", "  ")
		if err != nil {
			logger.Fatal("Failed to encode record", zap.Error(err))
		}
		fmt.Println(string(encoded))
		return
	}

	fmt.Printf("\n=== Extracted Subscription ===\n")
	fmt.Printf("Name:          %s\n", sub.Name)
	fmt.Printf("Price:         %.2f %s\n", sub.Price, sub.Currency)
	fmt.Printf("Billing cycle: %s\n", sub.BillingCycle)
	fmt.Printf("Category:      %s (%s)\n", sub.Category, sub.Category.Label())
	fmt.Printf("Next billing:  %s\n", sub.NextBillingDate.Format("02/01/2006"))
	fmt.Printf("Provider:      %s\n", sub.Provider)
	fmt.Printf("From:          %s\n", sub.SourceEmail)
	fmt.Printf("Subject:       %s\n", sub.RawSubject)
}
