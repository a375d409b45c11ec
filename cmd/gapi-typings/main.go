// Command gapi-typings generates TypeScript typings packages for Google APIs
// from their discovery documents.
package main

import (
	"fmt"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     GenCmd     `cmd:"" help:"Generate typings packages from discovery documents."`
	List    ListCmd    `cmd:"" help:"List APIs available in the discovery directory."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("gapi-typings"),
		kong.Description("TypeScript typings generator for Google APIs."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
