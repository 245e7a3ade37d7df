// Package addendum generates supplementary agreement documents.
package addendum

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fjacquet/fueldesk/cmd/root"
	"fjacquet/fueldesk/internal/addendum"
	"fjacquet/fueldesk/internal/logging"
	"fjacquet/fueldesk/internal/roster"

	"github.com/spf13/cobra"
)

var (
	number      string
	client      string
	product     string
	price       int
	tons        int
	payDate     string
	method      string
	location    string
	address     string
	depot       string
	docType     string
)

// Cmd represents the addendum command
var Cmd = &cobra.Command{
	Use:   "addendum",
	Short: "Generate a supplementary agreement document",
	Long: `Generate a supplementary agreement from the client roster and the
product, location and depot dictionaries. The document is written to the
output directory.`,
	RunE: addendumFunc,
}

// Init registers the addendum flags.
func Init() {
	Cmd.Flags().StringVarP(&number, "number", "n", "", "Agreement number")
	Cmd.Flags().StringVarP(&client, "client", "c", "", "Client key from the roster")
	Cmd.Flags().StringVarP(&product, "product", "p", "", "Product key")
	Cmd.Flags().IntVar(&price, "price", 0, "Price per ton, rubles")
	Cmd.Flags().IntVar(&tons, "tons", 0, "Quantity, tons")
	Cmd.Flags().StringVar(&payDate, "pay-date", "", "Payment date as DD.MM.YYYY")
	Cmd.Flags().StringVar(&method, "method", string(addendum.Pickup), "Delivery method: самовывоз, доставка or нефтебаза")
	Cmd.Flags().StringVar(&location, "location", "", "Pickup point (for самовывоз)")
	Cmd.Flags().StringVar(&address, "address", "", "Delivery address (for доставка)")
	Cmd.Flags().StringVar(&depot, "depot", "", "Oil depot name (for нефтебаза)")
	Cmd.Flags().StringVar(&docType, "type", string(addendum.Prepayment), "Document type: prepayment or deferment_pay")

	for _, flag := range []string{"number", "client", "product", "price", "tons", "pay-date"} {
		_ = Cmd.MarkFlagRequired(flag)
	}
}

func addendumFunc(cmd *cobra.Command, args []string) error {
	date, err := time.Parse("02.01.2006", payDate)
	if err != nil {
		return fmt.Errorf("invalid pay date %q, expected DD.MM.YYYY: %w", payDate, err)
	}

	store := roster.NewStore(root.Cfg.Roster.ClientsFile, root.Cfg.Roster.SynonymsFile, root.Log)
	clients, err := store.LoadClients()
	if err != nil {
		return err
	}
	dicts, err := addendum.LoadDictionaries(
		root.Cfg.Dictionaries.ProductsFile,
		root.Cfg.Dictionaries.LocationsFile,
		root.Cfg.Dictionaries.DepotsFile,
		root.Log)
	if err != nil {
		return err
	}

	gen := addendum.NewGenerator(clients, dicts, root.Log)
	doc, filename, err := gen.Generate(addendum.Request{
		AddendumNo:      number,
		ClientKey:       client,
		ProductKey:      product,
		PricePerTon:     price,
		Tons:            tons,
		PayDate:         date,
		Method:          addendum.DeliveryMethod(method),
		PickupLocation:  location,
		DeliveryAddress: address,
		DepotName:       depot,
		Type:            addendum.DocumentType(docType),
	})
	if err != nil {
		return err
	}

	outDir := root.OutputDir()
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}
	path := filepath.Join(outDir, filename+".txt")
	if err := os.WriteFile(path, doc, 0600); err != nil {
		return fmt.Errorf("error writing document: %w", err)
	}

	root.Log.Info("Agreement written",
		logging.Field{Key: logging.FieldOutputFile, Value: path})
	return nil
}
