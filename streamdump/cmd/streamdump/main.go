package main

import (
	"fmt"
	"os"

	"github.com/performancecopilot/streambuf"
	"github.com/performancecopilot/streambuf/bytebuffer"
	"github.com/performancecopilot/streambuf/streamdump"
	cli "gopkg.in/urfave/cli.v1"
)

func dump(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.NewExitError("Usage: streamdump [options] <file>", 2)
	}

	enc, err := bytebuffer.ParseEncoding(c.String("encoding"))
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}

	format, err := streamdump.ParseFormat(c.String("format"))
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}

	file := c.Args().First()
	b, err := bytebuffer.OpenMemoryMappedBuffer(file, false)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	defer b.Unmap(false)

	s, err := streamdump.Dump(b.Bytes(), streamdump.WithFormat(format), streamdump.WithEncoding(enc))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	fmt.Fprintf(c.App.Writer, "\nFile      = %v\nSize      = %v\n", file, len(b.Bytes()))
	return streamdump.Write(c.App.Writer, s, c.Bool("stats"))
}

func main() {
	app := cli.NewApp()
	app.Name = "streamdump"
	app.Usage = "print the string records of a stream file"
	app.ArgsUsage = "<file>"
	app.Version = streambuf.Version
	app.Writer = os.Stdout
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "encoding, e",
			Usage: "string encoding (utf8|ucs2|latin1|ascii|hex|base64)",
			Value: "utf8",
		},
		cli.StringFlag{
			Name:  "format, f",
			Usage: "record layout (string7|string0)",
			Value: "string7",
		},
		cli.BoolFlag{
			Name:  "stats, s",
			Usage: "print record length statistics",
		},
	}
	app.Action = dump

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
