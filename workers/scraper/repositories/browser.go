package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"

	"github.com/carolinefzhang/selective-practice/workers/scraper/domain"
)

const (
	navigationTimeout = 60 * time.Second
	actionTimeout     = 15 * time.Second
)

// Page is one browsing context (tab/window) the services drive. Every method
// is bounded; waits time out rather than hang on a missing element.
type Page interface {
	Navigate(ctx context.Context, url string) error
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error
	Exists(ctx context.Context, selector string, timeout time.Duration) (bool, error)
	Click(ctx context.Context, selector string) error
	ClickByScript(ctx context.Context, selector string) error
	ClickNth(ctx context.Context, selector string, index int) error
	ClickByText(ctx context.Context, containerSelector, text string) (bool, error)
	SendKeys(ctx context.Context, selector, value string) error
	Text(ctx context.Context, selector string) (string, error)
	Texts(ctx context.Context, selector string) ([]string, error)
	OuterHTML(ctx context.Context, selector string) (string, error)
	Screenshot(ctx context.Context, path string) error
	DumpHTML(ctx context.Context, path string) error
	Cookies(ctx context.Context) ([]domain.Cookie, error)
	SetCookies(ctx context.Context, cookies []domain.Cookie) error
	Settle(ctx context.Context, d time.Duration)
}

// Session owns the headless browser process, the primary page, and any window
// spawned by an in-page action. Close is safe on every exit path.
type Session interface {
	Page() Page
	OpenWindow(ctx context.Context, trigger func(context.Context) error, timeout time.Duration) (Page, error)
	Close()
}

type ChromeSession struct {
	allocCancel   context.CancelFunc
	browserCancel context.CancelFunc
	primary       *ChromePage
	spawnCancels  []context.CancelFunc
}

// NewChromeSession launches a headless Chrome and opens the primary page.
func NewChromeSession(ctx context.Context, headless bool, userAgent string) (*ChromeSession, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
		chromedp.WindowSize(1280, 800),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Starts the browser and enables the network domain for cookie operations.
	if err := chromedp.Run(browserCtx, network.Enable()); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	return &ChromeSession{
		allocCancel:   allocCancel,
		browserCancel: browserCancel,
		primary:       &ChromePage{ctx: browserCtx},
	}, nil
}

func (s *ChromeSession) Page() Page {
	return s.primary
}

// OpenWindow registers a listener for the next page target, runs trigger (the
// click that spawns the window), and returns the new page once it exists and
// its document is ready.
func (s *ChromeSession) OpenWindow(ctx context.Context, trigger func(context.Context) error, timeout time.Duration) (Page, error) {
	ch := chromedp.WaitNewTarget(s.primary.ctx, func(info *target.Info) bool {
		return info.Type == "page"
	})

	if err := trigger(ctx); err != nil {
		return nil, err
	}

	select {
	case id := <-ch:
		tabCtx, cancel := chromedp.NewContext(s.primary.ctx, chromedp.WithTargetID(id))
		if err := chromedp.Run(tabCtx, network.Enable(), chromedp.WaitReady("body", chromedp.ByQuery)); err != nil {
			cancel()
			return nil, fmt.Errorf("spawned window never became ready: %w", err)
		}
		s.spawnCancels = append(s.spawnCancels, cancel)
		return &ChromePage{ctx: tabCtx}, nil
	case <-time.After(timeout):
		return nil, fmt.Errorf("no new browser target appeared within %s", timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *ChromeSession) Close() {
	for _, cancel := range s.spawnCancels {
		cancel()
	}
	s.browserCancel()
	s.allocCancel()
}

// ChromePage drives a single chromedp tab context.
type ChromePage struct {
	ctx context.Context
}

// run executes actions against the tab, bounded by timeout. The caller
// context is only consulted for early cancellation; chromedp actions must run
// on the tab's own context.
func (p *ChromePage) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx := p.ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, timeout)
		defer cancel()
	}
	return chromedp.Run(runCtx, actions...)
}

func (p *ChromePage) Navigate(ctx context.Context, url string) error {
	return p.run(ctx, navigationTimeout,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

func (p *ChromePage) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	return p.run(ctx, timeout, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

// Exists waits up to timeout for the selector to become visible. A timeout is
// reported as plain absence, not an error.
func (p *ChromePage) Exists(ctx context.Context, selector string, timeout time.Duration) (bool, error) {
	err := p.WaitVisible(ctx, selector, timeout)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return false, nil
	}
	return false, err
}

func (p *ChromePage) Click(ctx context.Context, selector string) error {
	return p.run(ctx, actionTimeout, chromedp.Click(selector, chromedp.ByQuery))
}

// ClickByScript clicks through the DOM directly, bypassing chromedp's
// visibility checks. Used as a fallback when a normal click fails on an
// element that is technically obscured.
func (p *ChromePage) ClickByScript(ctx context.Context, selector string) error {
	js := fmt.Sprintf(`(function() {
		const el = document.querySelector(%q);
		if (!el) return false;
		el.click();
		return true;
	})()`, selector)
	var clicked bool
	if err := p.run(ctx, actionTimeout, chromedp.Evaluate(js, &clicked)); err != nil {
		return err
	}
	if !clicked {
		return fmt.Errorf("no element matches %q", selector)
	}
	return nil
}

func (p *ChromePage) ClickNth(ctx context.Context, selector string, index int) error {
	js := fmt.Sprintf(`(function() {
		const els = document.querySelectorAll(%q);
		if (els.length <= %d) return false;
		els[%d].click();
		return true;
	})()`, selector, index, index)
	var clicked bool
	if err := p.run(ctx, actionTimeout, chromedp.Evaluate(js, &clicked)); err != nil {
		return err
	}
	if !clicked {
		return fmt.Errorf("element %d of %q not present", index, selector)
	}
	return nil
}

// ClickByText clicks the first visible button or anchor inside the container
// whose text contains the given needle (case-insensitive). Returns false when
// no such control exists.
func (p *ChromePage) ClickByText(ctx context.Context, containerSelector, text string) (bool, error) {
	js := fmt.Sprintf(`(function() {
		const container = document.querySelector(%q);
		if (!container) return false;
		const candidates = Array.from(container.querySelectorAll('button, a'));
		for (const el of candidates) {
			if (el.innerText && el.innerText.toLowerCase().includes(%q)) {
				const style = window.getComputedStyle(el);
				if (style.display !== 'none' && style.visibility !== 'hidden' && el.offsetParent !== null) {
					el.click();
					return true;
				}
			}
		}
		return false;
	})()`, containerSelector, strings.ToLower(text))
	var clicked bool
	if err := p.run(ctx, actionTimeout, chromedp.Evaluate(js, &clicked)); err != nil {
		return false, err
	}
	return clicked, nil
}

func (p *ChromePage) SendKeys(ctx context.Context, selector, value string) error {
	return p.run(ctx, actionTimeout, chromedp.SendKeys(selector, value, chromedp.ByQuery))
}

func (p *ChromePage) Text(ctx context.Context, selector string) (string, error) {
	var out string
	err := p.run(ctx, actionTimeout, chromedp.Text(selector, &out, chromedp.ByQuery))
	return out, err
}

func (p *ChromePage) Texts(ctx context.Context, selector string) ([]string, error) {
	js := fmt.Sprintf(`Array.from(document.querySelectorAll(%q)).map(el => el.innerText)`, selector)
	var out []string
	err := p.run(ctx, actionTimeout, chromedp.Evaluate(js, &out))
	return out, err
}

func (p *ChromePage) OuterHTML(ctx context.Context, selector string) (string, error) {
	var out string
	err := p.run(ctx, actionTimeout, chromedp.OuterHTML(selector, &out, chromedp.ByQuery))
	return out, err
}

func (p *ChromePage) Screenshot(ctx context.Context, path string) error {
	var buf []byte
	if err := p.run(ctx, actionTimeout, chromedp.CaptureScreenshot(&buf)); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}

func (p *ChromePage) DumpHTML(ctx context.Context, path string) error {
	html, err := p.OuterHTML(ctx, "html")
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(html), 0o644)
}

func (p *ChromePage) Cookies(ctx context.Context) ([]domain.Cookie, error) {
	var cookies []domain.Cookie
	err := p.run(ctx, actionTimeout, chromedp.ActionFunc(func(ctx context.Context) error {
		raw, err := network.GetCookies().Do(ctx)
		if err != nil {
			return err
		}
		for _, c := range raw {
			cookies = append(cookies, domain.Cookie{
				Name:     c.Name,
				Value:    c.Value,
				Domain:   c.Domain,
				Path:     c.Path,
				Secure:   c.Secure,
				HTTPOnly: c.HTTPOnly,
				Expires:  c.Expires,
			})
		}
		return nil
	}))
	return cookies, err
}

func (p *ChromePage) SetCookies(ctx context.Context, cookies []domain.Cookie) error {
	params := make([]*network.CookieParam, 0, len(cookies))
	for _, c := range cookies {
		param := &network.CookieParam{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
		}
		if c.Expires > 0 {
			expires := cdp.TimeSinceEpoch(time.Unix(int64(c.Expires), 0))
			param.Expires = &expires
		}
		params = append(params, param)
	}
	return p.run(ctx, actionTimeout, chromedp.ActionFunc(func(ctx context.Context) error {
		return network.SetCookies(params).Do(ctx)
	}))
}

// Settle is a plain timed wait for UI transitions that expose no observable
// condition to poll.
func (p *ChromePage) Settle(ctx context.Context, d time.Duration) {
	_ = p.run(ctx, 0, chromedp.Sleep(d))
}
