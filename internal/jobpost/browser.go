package jobpost

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
)

// chromeRenderer renders pages in headless Chrome. An empty execPath lets chromedp locate the browser.
func chromeRenderer(execPath string, timeout time.Duration) pageRenderer {
	return func(ctx context.Context, url string) (string, error) {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)
		if execPath != "" {
			opts = append(opts, chromedp.ExecPath(execPath))
		}

		allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
		defer cancel()
		browserCtx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()
		browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
		defer cancel()

		var html string
		err := chromedp.Run(browserCtx,
			chromedp.Navigate(url),
			chromedp.WaitReady("body"),
			// job boards fill the description in after load
			chromedp.Sleep(2*time.Second),
			chromedp.OuterHTML("html", &html),
		)
		return html, err
	}
}
