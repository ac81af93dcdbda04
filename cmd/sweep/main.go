// Command sweep runs the Data Sweeper pipeline over local files.
package main

import (
	"os"

	"github.com/JonMunkholm/datasweeper/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
