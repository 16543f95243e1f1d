package main

import (
	"fmt"

	"github.com/Amity808/crypt-bappgift/api"
	"github.com/Amity808/crypt-bappgift/utils"
)

func main() {
	_, err := utils.LoadConfig(utils.EnvPath)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	server := api.NewServer(utils.EnvPath)
	server.Start()
}
