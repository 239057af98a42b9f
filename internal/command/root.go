package command

import (
	"fmt"
	"github.com/cirruslabs/splicewrite/internal/splicer"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"log"
	"os"
	"time"
)

const usageMessage = "Usage: ls | ./splice_write out\n"

var length int
var verbose bool

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "splice_write OUT",
		Short:         "Splice standard input into a file without copying it through user space",
		Example:       "  ls | splice_write out",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          requireDestination,
		RunE:          runSpliceWrite,
	}

	cmd.Flags().IntVarP(&length, "length", "l", splicer.DefaultLength, "maximum number of bytes "+
		"to splice from the standard input (a single splice is performed, fewer bytes is not an error)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log a summary of the transfer "+
		"to the standard error")

	return cmd
}

func requireDestination(cmd *cobra.Command, args []string) error {
	// Extra arguments are ignored
	if len(args) < 1 {
		fmt.Fprint(cmd.OutOrStdout(), usageMessage)

		return splicer.ErrUsage
	}

	return nil
}

func runSpliceWrite(cmd *cobra.Command, args []string) error {
	path := args[0]

	if length <= 0 {
		return fmt.Errorf("--length should be positive, got %d", length)
	}

	stdin, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return fmt.Errorf("%w: standard input is not backed by a file descriptor", splicer.ErrTransfer)
	}

	dst, err := splicer.Open(path)
	if err != nil {
		fmt.Fprint(cmd.OutOrStdout(), "open file failed.\n")

		return err
	}
	defer func() {
		if err := dst.Close(); err != nil {
			log.Printf("failed to close %s: %v", path, err)
		}
	}()

	start := time.Now()

	n, err := transfer(cmd, dst, stdin)
	if err != nil {
		fmt.Fprint(cmd.OutOrStdout(), "splice failed.\n")

		if term.IsTerminal(int(stdin.Fd())) {
			log.Printf("standard input is a terminal, splice requires a pipe, try %q",
				"ls | splice_write "+path)
		}

		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "spliced length = %d\n", n)

	if verbose {
		log.Printf("spliced %s into %s in %v", humanize.Bytes(uint64(n)), path, time.Since(start))
	}

	return nil
}

type transferResult struct {
	n   int
	err error
}

// transfer runs the possibly blocking splice in the background
// so that an interrupt can abandon the wait for input
func transfer(cmd *cobra.Command, dst *os.File, src *os.File) (int, error) {
	resultCh := make(chan transferResult, 1)

	go func() {
		n, err := splicer.Transfer(dst, src, length)
		resultCh <- transferResult{n: n, err: err}
	}()

	select {
	case result := <-resultCh:
		return result.n, result.err
	case <-cmd.Context().Done():
		return 0, fmt.Errorf("%w: %w", splicer.ErrTransfer, cmd.Context().Err())
	}
}
