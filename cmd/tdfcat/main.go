// Command tdfcat opens a TimsTOF .d container and prints a summary of its
// frames, mirroring original_source's read_tdf example: open, print
// dataset-wide stats, then materialize and describe a handful of frames.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	tdf "github.com/galaxybio/go-tdf"
)

func main() {
	app := &cli.App{
		Name:  "tdfcat",
		Usage: "inspect a Bruker TimsTOF TDF container",
		Commands: []*cli.Command{
			statsCommand(),
			dumpCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "print dataset-wide counts without decoding peak data",
		ArgsUsage: "<path.d>",
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				return cli.Exit("missing path argument", 1)
			}

			reader, err := tdf.New(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			defer reader.Close()

			stats := reader.Stats()
			out, err := tdf.JsonIndentDumps(stats)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
}

func dumpCommand() *cli.Command {
	return &cli.Command{
		Name:      "dump",
		Usage:     "materialize and print the first N frames (default 5)",
		ArgsUsage: "<path.d>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "n", Value: 5, Usage: "number of frames to print"},
		},
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				return cli.Exit("missing path argument", 1)
			}

			reader, err := tdf.New(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			defer reader.Close()

			n := c.Int("n")
			if n > reader.Len() {
				n = reader.Len()
			}

			for i := 0; i < n; i++ {
				frame, err := reader.Get(i)
				if err != nil {
					return fmt.Errorf("frame %d: %w", i, err)
				}
				fmt.Printf("frame=%d rt=%.3fs level=%s scans=%d peaks=%d\n",
					frame.Index, frame.RtInSeconds, frame.MsLevel, frame.ScanCount(), frame.PeakCount())
			}
			return nil
		},
	}
}
