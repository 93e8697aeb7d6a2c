// Package browsercheck compares the legacy parser against a headless Chrome,
// which implements the same rules for the bgcolor attribute.
package browsercheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/mazznoer/csscolorparser"
	"go.uber.org/zap"

	"legacycolor/htmlcolor"
)

// Result is the outcome for one input.
type Result struct {
	Input string
	// Ours is only meaningful when OursErr is nil.
	Ours    htmlcolor.Color
	OursErr error
	// Browser is only meaningful when BrowserRejected is false.
	Browser         htmlcolor.Color
	BrowserRejected bool
	Computed        string
	Match           bool
}

func (r Result) String() string {
	ours := "rejected"
	if r.OursErr == nil {
		ours = r.Ours.String()
	}
	browser := "rejected"
	if !r.BrowserRejected {
		browser = r.Browser.String()
	}
	verdict := "MATCH"
	if !r.Match {
		verdict = "DIFF"
	}
	return fmt.Sprintf("%-5s %q ours=%s browser=%s", verdict, r.Input, ours, browser)
}

// Checker owns a Chrome allocator. Close releases it.
type Checker struct {
	allocator context.Context
	cancel    context.CancelFunc
	parser    *htmlcolor.Parser
	timeout   time.Duration
	logger    *zap.SugaredLogger
}

// New prepares a headless Chrome allocator. Chrome itself is started lazily
// by the first Check.
func New(parser *htmlcolor.Parser, timeout time.Duration, logger *zap.SugaredLogger, extra ...chromedp.ExecAllocatorOption) *Checker {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-sync", true),
	)
	opts = append(opts, extra...)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Checker{
		allocator: allocCtx,
		cancel:    cancel,
		parser:    parser,
		timeout:   timeout,
		logger:    logger,
	}
}

func (c *Checker) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

// Check runs every input through both parsers in a single browser tab.
func (c *Checker) Check(ctx context.Context, inputs ...string) ([]Result, error) {
	taskCtx, cancelBrowser := chromedp.NewContext(c.allocator)
	defer cancelBrowser()

	if ctx != nil {
		var cancel context.CancelFunc
		taskCtx, cancel = context.WithCancel(taskCtx)
		go func() {
			select {
			case <-ctx.Done():
				cancel()
			case <-taskCtx.Done():
			}
		}()
		defer cancel()
	}
	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, c.timeout)
	defer cancelTimeout()

	if err := chromedp.Run(taskCtx, chromedp.Navigate("about:blank")); err != nil {
		return nil, fmt.Errorf("browser check: open blank page: %w", err)
	}

	results := make([]Result, 0, len(inputs))
	for _, in := range inputs {
		script, err := bgcolorScript(in)
		if err != nil {
			return results, err
		}
		var computed string
		if err := chromedp.Run(taskCtx, evaluateString(script, &computed)); err != nil {
			return results, fmt.Errorf("browser check %q: %w", in, err)
		}
		ours, oursErr := c.parser.Parse(in)
		res, err := compare(in, ours, oursErr, computed)
		if err != nil {
			return results, err
		}
		c.logger.Debugw("browser check", "input", in, "computed", computed, "match", res.Match)
		results = append(results, res)
	}
	return results, nil
}

// bgcolorScript sets the body's bgcolor attribute to value and returns the
// computed background colour, then restores the attribute.
func bgcolorScript(value string) (string, error) {
	arg, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encode %q: %w", value, err)
	}
	return fmt.Sprintf(`(function(v) {
	const body = document.body;
	body.setAttribute("bgcolor", v);
	const out = getComputedStyle(body).backgroundColor;
	body.removeAttribute("bgcolor");
	return out;
})(%s)`, arg), nil
}

// evaluateString runs script in the page and decodes its string result.
func evaluateString(script string, out *string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		res, exc, err := runtime.Evaluate(script).WithReturnByValue(true).Do(ctx)
		if err != nil {
			return err
		}
		if exc != nil {
			return exc
		}
		if res == nil || len(res.Value) == 0 {
			return errEmptyResult
		}
		return json.Unmarshal([]byte(res.Value), out)
	})
}

var errEmptyResult = errors.New("script returned no value")

var errUnparsedComputed = errors.New("unparseable computed colour")

// compare decodes the browser's computed style. A fully transparent
// background means the browser ignored the attribute.
func compare(input string, ours htmlcolor.Color, oursErr error, computed string) (Result, error) {
	res := Result{Input: input, Ours: ours, OursErr: oursErr, Computed: computed}
	parsed, err := csscolorparser.Parse(computed)
	if err != nil {
		return res, fmt.Errorf("%w %q: %v", errUnparsedComputed, computed, err)
	}
	r, g, b, a := parsed.RGBA255()
	if a == 0 {
		res.BrowserRejected = true
	} else {
		res.Browser = htmlcolor.Color{R: r, G: g, B: b}
	}
	if oursErr != nil {
		res.Match = res.BrowserRejected
	} else {
		res.Match = !res.BrowserRejected && res.Browser == ours
	}
	return res, nil
}
