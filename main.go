package main

import (
	"fmt"
	"os"
	"path/filepath"

	addendumcmd "fjacquet/fueldesk/cmd/addendum"
	"fjacquet/fueldesk/cmd/clients"
	"fjacquet/fueldesk/cmd/dashboard"
	"fjacquet/fueldesk/cmd/root"

	"github.com/joho/godotenv"
)

func init() {
	loadEnvSilently()

	root.Init()
	dashboard.Init()
	addendumcmd.Init()
	clients.Init()

	root.Cmd.AddCommand(dashboard.Cmd)
	root.Cmd.AddCommand(addendumcmd.Cmd)
	root.Cmd.AddCommand(clients.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
