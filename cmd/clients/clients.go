// Package clients manages the client roster.
package clients

import (
	"fmt"

	"fjacquet/fueldesk/cmd/root"
	"fjacquet/fueldesk/internal/roster"

	"github.com/spf13/cobra"
)

var (
	contract         string
	companyName      string
	directorPosition string
	directorFIO      string
	initials         string
)

// Cmd represents the clients command
var Cmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage the client roster",
	Long:  `List, add and remove companies in the client roster used for synonym resolution and agreement generation.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List roster companies",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		clients, err := store.LoadClients()
		if err != nil {
			return err
		}
		if len(clients) == 0 {
			fmt.Println("Реестр клиентов пуст")
			return nil
		}
		resolver := roster.NewResolver(clients, nil, root.Log)
		for _, key := range resolver.Keys() {
			client := clients[key]
			fmt.Printf("%s\t%s\tдоговор №%s\n", key, client.CompanyName, client.Contract)
		}
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <key>",
	Short: "Add or update a roster company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		clients, err := store.LoadClients()
		if err != nil {
			return err
		}
		clients[args[0]] = roster.Client{
			Contract:         contract,
			CompanyName:      companyName,
			DirectorPosition: directorPosition,
			DirectorFIO:      directorFIO,
			Initials:         initials,
		}
		return store.SaveClients(clients)
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <key>",
	Short: "Remove a roster company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		clients, err := store.LoadClients()
		if err != nil {
			return err
		}
		if _, ok := clients[args[0]]; !ok {
			return fmt.Errorf("клиент %q не найден", args[0])
		}
		delete(clients, args[0])
		return store.SaveClients(clients)
	},
}

func newStore() *roster.Store {
	return roster.NewStore(root.Cfg.Roster.ClientsFile, root.Cfg.Roster.SynonymsFile, root.Log)
}

// Init registers the clients subcommands and flags.
func Init() {
	addCmd.Flags().StringVar(&contract, "contract", "", "Contract number")
	addCmd.Flags().StringVar(&companyName, "name", "", "Full company name")
	addCmd.Flags().StringVar(&directorPosition, "director-position", "", "Director position, genitive case")
	addCmd.Flags().StringVar(&directorFIO, "director-fio", "", "Director full name, genitive case")
	addCmd.Flags().StringVar(&initials, "initials", "", "Director initials for the signature block")
	for _, flag := range []string{"contract", "name"} {
		_ = addCmd.MarkFlagRequired(flag)
	}

	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(removeCmd)
}
