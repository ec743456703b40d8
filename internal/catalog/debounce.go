package catalog

import (
	"strings"
	"sync"
	"time"
)

// DefaultDebounce matches the settle delay the search box has always used.
const DefaultDebounce = 1000 * time.Millisecond

// QueryController owns the raw query text for one search surface. Every
// keystroke restarts a single-slot timer; only a query that survives the
// delay fires the fetch callback. An empty or whitespace-only query clears
// immediately without a remote call.
//
// The settled query text is handed to the callback so the caller can key
// results to the query that produced them. The accepted policy for racing
// fetches is last-settled-response-wins.
type QueryController struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer

	onSettle func(query string)
	onClear  func()
}

// NewQueryController builds a controller with the given settle delay.
// onSettle runs after the delay with the settled query; onClear runs
// synchronously when the query empties. A zero delay uses DefaultDebounce.
func NewQueryController(delay time.Duration, onSettle func(query string), onClear func()) *QueryController {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &QueryController{delay: delay, onSettle: onSettle, onClear: onClear}
}

// SetQuery accepts raw input. Any pending timer is cancelled before the new
// one starts, so timers never stack.
func (c *QueryController) SetQuery(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if strings.TrimSpace(text) == "" {
		if c.onClear != nil {
			c.onClear()
		}
		return
	}
	q := text
	c.timer = time.AfterFunc(c.delay, func() {
		if c.onSettle != nil {
			c.onSettle(q)
		}
	})
}

// Close cancels any pending timer.
func (c *QueryController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
