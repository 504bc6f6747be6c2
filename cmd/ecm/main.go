// Command ecm encodes and decodes ECM-format CD-ROM sector containers.
// Invoking it under the name "unecm" (or passing -d/--decode) switches it
// to decode mode.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"github.com/ecmcodec/ecm/ecm"
)

type options struct {
	decode  bool
	output  string
	verbose bool
	zst     bool
}

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", filepath.Base(os.Args[0]), err)
		os.Exit(1)
	}
	// Asking for usage is not a successful run.
	if help, _ := cmd.Flags().GetBool("help"); help {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "ecm [inputfile]",
		Short:         "Encode or decode ECM CD-ROM sector containers",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.HasSuffix(filepath.Base(os.Args[0]), "unecm") {
				opts.decode = true
			}
			var inputPath string
			if len(args) == 1 {
				inputPath = args[0]
			}
			return run(cmd, inputPath, opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.decode, "decode", "d", opts.decode, "force decode mode")
	flags.StringVarP(&opts.output, "output", "o", "", "output path (default: standard output)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "emit progress and summary to standard error")
	flags.BoolVar(&opts.zst, "zst", false, "wrap the ECM stream in zstd compression")

	return cmd
}

func run(cmd *cobra.Command, inputPath string, opts *options) error {
	in, inputSize, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	closeOut := func() error {
		if out == nil {
			return nil
		}
		err := out.Close()
		out = nil
		return err
	}
	defer closeOut()

	w := io.Writer(out)
	var zw *zstd.Encoder
	var zr *zstd.Decoder
	if opts.zst {
		if opts.decode {
			zr, err = zstd.NewReader(in)
			if err != nil {
				return fmt.Errorf("open zstd stream: %w", err)
			}
			defer zr.Close()
		} else {
			zw, err = zstd.NewWriter(out)
			if err != nil {
				return fmt.Errorf("open zstd stream: %w", err)
			}
			w = zw
		}
	}

	var r io.Reader = in
	if zr != nil {
		r = zr
	}

	start := time.Now()
	if opts.decode {
		dec := &ecm.Decoder{InputSize: inputSize}
		if opts.verbose {
			dec.Progress = progressPrinter(cmd)
		}
		stats, err := dec.Decode(r, w)
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		if err := closeOut(); err != nil {
			return fmt.Errorf("close output: %w", err)
		}
		if opts.verbose {
			fmt.Fprintln(cmd.ErrOrStderr())
			printSummary(cmd, "decoded", stats.BytesIn, stats.BytesOut, time.Since(start))
		}
		return nil
	}

	enc := &ecm.Encoder{InputSize: inputSize}
	if opts.verbose {
		enc.Progress = progressPrinter(cmd)
	}
	stats, err := enc.Encode(r, w)
	if err != nil {
		if zw != nil {
			zw.Close()
		}
		return fmt.Errorf("encode: %w", err)
	}
	if zw != nil {
		// Close flushes the final zstd frame; a failure here means the
		// output is truncated even though the encode itself succeeded.
		if err := zw.Close(); err != nil {
			return fmt.Errorf("close zstd stream: %w", err)
		}
	}
	if err := closeOut(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if opts.verbose {
		fmt.Fprintln(cmd.ErrOrStderr())
		printSummary(cmd, "encoded", stats.BytesIn, stats.BytesOut, time.Since(start))
		fmt.Fprintf(cmd.ErrOrStderr(),
			"  literal=%d mode1=%d mode2form1=%d mode2form2=%d\n",
			stats.LiteralBytes, stats.Mode1Sectors, stats.Mode2Form1Sectors, stats.Mode2Form2Sectors)
	}
	return nil
}

func openInput(path string) (io.ReadCloser, int64, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), -1, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open input: %w", err)
	}
	size := int64(-1)
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}
	return f, size, nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open output: %w", err)
	}
	return f, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func progressPrinter(cmd *cobra.Command) ecm.ProgressFunc {
	return func(processed, total int64) {
		if total > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "\r%d / %d bytes (%.1f%%)", processed, total, 100*float64(processed)/float64(total))
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "\r%d bytes", processed)
		}
	}
}

func printSummary(cmd *cobra.Command, verb string, bytesIn, bytesOut int64, elapsed time.Duration) {
	ratio := 1.0
	if bytesOut > 0 {
		ratio = float64(bytesIn) / float64(bytesOut)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %d bytes -> %d bytes (%.2fx) in %s\n",
		verb, bytesIn, bytesOut, ratio, elapsed.Round(time.Millisecond))
}
