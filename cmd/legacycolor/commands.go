package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"legacycolor/htmlcolor"
	"legacycolor/internal/browsercheck"
	"legacycolor/internal/config"
	"legacycolor/internal/logging"
	"legacycolor/internal/server"
	"legacycolor/internal/swatch"
)

var errMismatch = errors.New("parser disagrees with browser")

type app struct {
	v      *viper.Viper
	cfg    config.Config
	logger *zap.SugaredLogger
	parser *htmlcolor.Parser
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{v: config.New(), in: in, out: out, errOut: errOut}
	var details bool

	root := &cobra.Command{
		Use:   "legacycolor [flags] COLOR",
		Short: "Parse a value with the HTML legacy colour rules",
		Long: `Parses COLOR the way browsers parse presentational attributes such as
bgcolor and <font color>, and prints the result as Color(#RRGGBB).`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runParse(args[0], details)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().String("loglevel", logging.DefaultLevel, "log level (debug, info, warning, error)")
	root.Flags().BoolVar(&details, "details", false, "also print hex, luminance and contrast")

	root.AddCommand(
		a.newNamesCmd(),
		a.newScanCmd(),
		a.newSwatchCmd(),
		a.newVerifyCmd(),
		a.newServeCmd(),
	)
	return root
}

// setup resolves configuration before any parsing so a bad level is reported
// as a configuration error.
func (a *app) setup(cmd *cobra.Command) error {
	if err := config.BindFlags(a.v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.New(cfg.Level, a.errOut)
	a.parser = htmlcolor.NewParser(htmlcolor.DefaultNames())
	return nil
}

func (a *app) runParse(input string, details bool) error {
	c, err := a.parser.Parse(input)
	if err != nil {
		return err
	}
	a.logger.Debugw("parsed", "input", input, "color", c.String())
	fmt.Fprintln(a.out, c)
	if details {
		white := htmlcolor.Color{R: 255, G: 255, B: 255}
		fmt.Fprintf(a.out, "hex        %s\n", c.Hex())
		fmt.Fprintf(a.out, "rgb        %d %d %d\n", c.R, c.G, c.B)
		fmt.Fprintf(a.out, "luminance  %.4f\n", c.RelativeLuminance())
		fmt.Fprintf(a.out, "contrast   %.2f:1 on black, %.2f:1 on white\n",
			c.ContrastRatio(htmlcolor.Color{}), c.ContrastRatio(white))
	}
	return nil
}

func (a *app) newNamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "names",
		Short: "List the colour keywords recognised before the digit rules",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			names := htmlcolor.DefaultNames()
			for _, name := range names.Names() {
				c, _ := names.Lookup(name)
				fmt.Fprintf(a.out, "%-22s %s\n", name, c)
			}
			return nil
		},
	}
}

func (a *app) newScanCmd() *cobra.Command {
	var asCSS bool
	cmd := &cobra.Command{
		Use:   "scan FILE|-",
		Short: "Report the legacy colour attributes of an HTML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			r := a.in
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			attrs, err := a.parser.ScanHTML(r)
			if err != nil {
				return err
			}
			a.logger.Debugw("scanned", "source", args[0], "attributes", len(attrs))
			if asCSS {
				sheet := htmlcolor.Stylesheet(htmlcolor.PresentationalHints(attrs))
				fmt.Fprintln(a.out, sheet.String())
				return nil
			}
			for _, attr := range attrs {
				fmt.Fprintln(a.out, attr)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asCSS, "css", false, "print the equivalent CSS instead")
	return cmd
}

func (a *app) newSwatchCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "swatch COLOR",
		Short: "Write a solid swatch image (.png or .bmp)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c, err := a.parser.Parse(args[0])
			if err != nil {
				return err
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			img := swatch.Render(c, a.cfg.SwatchSize)
			if err := swatch.Encode(f, img, swatch.FormatFromPath(output)); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			a.logger.Infow("wrote swatch", "path", output, "color", c.String(), "size", a.cfg.SwatchSize)
			fmt.Fprintf(a.out, "%s -> %s\n", c, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	cmd.Flags().Int("swatch-size", 64, "edge length in pixels")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func (a *app) newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify COLOR...",
		Short: "Compare the parser against headless Chrome",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checker := browsercheck.New(a.parser, a.cfg.BrowserTimeout, a.logger)
			defer checker.Close()
			results, err := checker.Check(cmd.Context(), args...)
			if err != nil {
				return err
			}
			mismatches := 0
			for _, res := range results {
				fmt.Fprintln(a.out, res)
				if !res.Match {
					mismatches++
				}
			}
			if mismatches > 0 {
				return fmt.Errorf("%w: %d of %d values", errMismatch, mismatches, len(results))
			}
			return nil
		},
	}
	cmd.Flags().Duration("browser-timeout", 15*time.Second, "overall browser deadline")
	return cmd
}

func (a *app) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().String("addr", ":8081", "listen address, e.g. :81 or 0.0.0.0:8081")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	handler := server.New(server.Config{
		Parser:     a.parser,
		Logger:     a.logger.Named("http"),
		SwatchSize: a.cfg.SwatchSize,
	})
	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      time.Minute,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          zap.NewStdLog(a.logger.Desugar()),
	}

	ln, err := net.Listen("tcp", a.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.cfg.Addr, err)
	}
	a.logger.Infow("listening", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.logger.Infow("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
