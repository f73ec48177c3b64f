// Command store-cli is an interactive shell over the store: it lists
// products, shows total stock, and places multi-line orders built from user
// input. All business rules live in the domain packages; this shell only
// prompts, delegates, and renders.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/xenking/retail-store-challenge/db"
	"github.com/xenking/retail-store-challenge/internal/catalog"
	"github.com/xenking/retail-store-challenge/internal/domain/product"
	"github.com/xenking/retail-store-challenge/internal/domain/store"
)

func main() {
	var catalogPath string
	flag.StringVar(&catalogPath, "catalog", "", "path to a catalog JSON file (embedded default when empty)")
	flag.Parse()

	st, err := loadStore(catalogPath)
	if err != nil {
		slog.Error("load catalog failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	run(st, bufio.NewScanner(os.Stdin))
}

func loadStore(path string) (*store.Store, error) {
	data := db.DefaultCatalog
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}
	return catalog.Load(data)
}

func run(st *store.Store, in *bufio.Scanner) {
	for {
		fmt.Println("\n--- Store Menu ---")
		fmt.Println("1. List all products in store")
		fmt.Println("2. Show total amount in store")
		fmt.Println("3. Make an order")
		fmt.Println("4. Quit")

		choice, ok := prompt(in, "Enter your choice (1-4): ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			listProducts(st)
		case "2":
			fmt.Printf("\nTotal quantity in store: %d\n", st.TotalQuantity())
		case "3":
			makeOrder(st, in)
		case "4":
			fmt.Println("Thank you for visiting. Goodbye!")
			return
		default:
			fmt.Println("Invalid choice. Please select a number between 1 and 4.")
		}
	}
}

func listProducts(st *store.Store) {
	fmt.Println("\nAvailable Products:")
	for _, p := range st.ActiveProducts() {
		fmt.Println(p.Describe())
	}
}

// makeOrder builds a shopping list from user input and places it as a
// single order.
func makeOrder(st *store.Store, in *bufio.Scanner) {
	active := st.ActiveProducts()
	if len(active) == 0 {
		fmt.Println("\nNo products available for purchase.")
		return
	}

	fmt.Println("\nEnter your order:")
	for i, p := range active {
		fmt.Printf("%d. %s (Available: %d)\n", i+1, p.Name(), p.Quantity())
	}

	lines := collectLines(in, active)
	if len(lines) == 0 {
		fmt.Println("Nothing ordered.")
		return
	}

	total, err := st.Order(lines)
	if err != nil {
		fmt.Printf("Order failed: %v\n", err)
		return
	}
	fmt.Printf("\nOrder successful! Total price: %s dollars.\n", total)
}

func collectLines(in *bufio.Scanner, active []product.Product) []store.Line {
	var lines []store.Line
	for {
		selection, ok := prompt(in, "Select product number (or 'done' to finish): ")
		if !ok || strings.EqualFold(selection, "done") {
			return lines
		}

		index, err := strconv.Atoi(selection)
		if err != nil || index < 1 || index > len(active) {
			fmt.Println("Invalid product number.")
			continue
		}
		p := active[index-1]

		raw, ok := prompt(in, fmt.Sprintf("Enter quantity for %s: ", p.Name()))
		if !ok {
			return lines
		}
		quantity, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Printf("Invalid quantity: %q\n", raw)
			continue
		}

		lines = append(lines, store.Line{Product: p, Quantity: quantity})
	}
}

// prompt reads one trimmed line; ok is false on EOF.
func prompt(in *bufio.Scanner, label string) (string, bool) {
	fmt.Print(label)
	if !in.Scan() {
		return "", false
	}
	return strings.TrimSpace(in.Text()), true
}
