package main

import (
	"flag"
	"log"
	"os"

	"github.com/shopspring/decimal"

	"mercadolibre-replica/internal/seed"
)

func main() {
	out := flag.String("out", "data/products.json", "path of the dataset file to write")
	flag.Parse()

	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	decimal.MarshalJSONWithoutQuotes = true

	if err := seed.Write(*out); err != nil {
		logger.Fatalf("write dataset: %v", err)
	}
	logger.Printf("demo dataset written to %s", *out)
}
