package main

import (
	"os"

	"github.com/campushq/schoolapi/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
