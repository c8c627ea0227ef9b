// Package null is an in-memory clipboard host. It keeps every representation
// it is given and records how the shared blocks were handled, so callers can
// check ownership rules without a real clipboard.
package null

import (
	"errors"
	"fmt"
	"sync"

	"github.com/labi-le/richclip/pkg/clipboard/host"
)

const Name = "null-clipboard"

// first id handed out by RegisterFormat, same range as registered formats on windows
const firstFormat host.Format = 0xC000

type Step string

const (
	StepRegister Step = "register"
	StepOpen     Step = "open"
	StepEmpty    Step = "empty"
	StepClose    Step = "close"
	StepAlloc    Step = "alloc"
	StepLock     Step = "lock"
	StepUnlock   Step = "unlock"
	StepFree     Step = "free"
	StepSetData  Step = "set_data"
)

var (
	ErrNotOpen     = errors.New("null clipboard: not open")
	ErrAlreadyOpen = errors.New("null clipboard: already open")
	ErrBadHandle   = errors.New("null clipboard: unknown or freed handle")
	ErrOwned       = errors.New("null clipboard: handle is owned by the clipboard")
	ErrLocked      = errors.New("null clipboard: handle is still locked")
	ErrNotLocked   = errors.New("null clipboard: handle is not locked")
)

type block struct {
	data   []byte
	locks  int
	freed  bool
	owned  bool
	format host.Format
}

type failure struct {
	nth int
	err error
}

var _ host.Host = &Clipboard{}

type Clipboard struct {
	mu sync.Mutex

	formats    map[string]host.Format
	nextFormat host.Format

	blocks     map[host.Handle]*block
	nextHandle host.Handle
	contents   map[host.Format]host.Handle

	open  bool
	calls []Step
	count map[Step]int
	fail  map[Step]failure

	violations []error
}

func NewNull() *Clipboard {
	return &Clipboard{
		formats:    make(map[string]host.Format),
		nextFormat: firstFormat,
		blocks:     make(map[host.Handle]*block),
		nextHandle: 1,
		contents:   make(map[host.Format]host.Handle),
		count:      make(map[Step]int),
		fail:       make(map[Step]failure),
	}
}

// FailOn makes every call of step return err.
func (c *Clipboard) FailOn(step Step, err error) {
	c.FailOnCall(step, 0, err)
}

// FailOnCall makes the nth call (starting at 1) of step return err.
// nth == 0 fails every call.
func (c *Clipboard) FailOnCall(step Step, nth int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fail[step] = failure{nth: nth, err: err}
}

// enter records the call and returns the injected error for it, if any.
func (c *Clipboard) enter(step Step) error {
	c.calls = append(c.calls, step)
	c.count[step]++

	f, ok := c.fail[step]
	if !ok {
		return nil
	}
	if f.nth == 0 || f.nth == c.count[step] {
		return f.err
	}
	return nil
}

func (c *Clipboard) violate(err error) error {
	c.violations = append(c.violations, err)
	return err
}

func (c *Clipboard) RegisterFormat(name string) (host.Format, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.enter(StepRegister); err != nil {
		return 0, err
	}

	if f, ok := c.formats[name]; ok {
		return f, nil
	}
	f := c.nextFormat
	c.nextFormat++
	c.formats[name] = f
	return f, nil
}

func (c *Clipboard) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.enter(StepOpen); err != nil {
		return err
	}
	if c.open {
		return c.violate(ErrAlreadyOpen)
	}
	c.open = true
	return nil
}

func (c *Clipboard) Empty() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.enter(StepEmpty); err != nil {
		return err
	}
	if !c.open {
		return c.violate(ErrNotOpen)
	}

	for f, h := range c.contents {
		c.blocks[h].freed = true
		delete(c.contents, f)
	}
	return nil
}

func (c *Clipboard) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.enter(StepClose); err != nil {
		c.open = false
		return err
	}
	if !c.open {
		return c.violate(ErrNotOpen)
	}
	c.open = false
	return nil
}

func (c *Clipboard) Alloc(size int) (host.Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.enter(StepAlloc); err != nil {
		return 0, err
	}

	h := c.nextHandle
	c.nextHandle++
	c.blocks[h] = &block{data: make([]byte, size)}
	return h, nil
}

func (c *Clipboard) Lock(h host.Handle) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.enter(StepLock); err != nil {
		return nil, err
	}

	b, err := c.live(h)
	if err != nil {
		return nil, c.violate(err)
	}
	b.locks++
	return b.data, nil
}

func (c *Clipboard) Unlock(h host.Handle) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.enter(StepUnlock); err != nil {
		return err
	}

	b, err := c.live(h)
	if err != nil {
		return c.violate(err)
	}
	if b.locks == 0 {
		return c.violate(ErrNotLocked)
	}
	b.locks--
	return nil
}

func (c *Clipboard) Free(h host.Handle) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.enter(StepFree); err != nil {
		return err
	}

	b, err := c.live(h)
	if err != nil {
		return c.violate(err)
	}
	if b.owned {
		return c.violate(fmt.Errorf("%w: %d", ErrOwned, h))
	}
	b.freed = true
	return nil
}

func (c *Clipboard) SetData(f host.Format, h host.Handle) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.enter(StepSetData); err != nil {
		return err
	}
	if !c.open {
		return c.violate(ErrNotOpen)
	}

	b, err := c.live(h)
	if err != nil {
		return c.violate(err)
	}
	if b.owned {
		return c.violate(fmt.Errorf("%w: %d", ErrOwned, h))
	}
	if b.locks != 0 {
		return c.violate(ErrLocked)
	}

	if prev, ok := c.contents[f]; ok {
		c.blocks[prev].freed = true
	}
	b.owned = true
	b.format = f
	c.contents[f] = h
	return nil
}

func (c *Clipboard) Name() string {
	return Name
}

func (c *Clipboard) live(h host.Handle) (*block, error) {
	b, ok := c.blocks[h]
	if !ok || b.freed {
		return nil, fmt.Errorf("%w: %d", ErrBadHandle, h)
	}
	return b, nil
}

// Data returns a copy of the representation installed under f.
func (c *Clipboard) Data(f host.Format) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h, ok := c.contents[f]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), c.blocks[h].data...), true
}

// Format returns the id registered for name.
func (c *Clipboard) Format(name string) (host.Format, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, ok := c.formats[name]
	return f, ok
}

// Formats lists the formats currently installed.
func (c *Clipboard) Formats() []host.Format {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := make([]host.Format, 0, len(c.contents))
	for f := range c.contents {
		res = append(res, f)
	}
	return res
}

// IsOpen reports whether the clipboard is currently held.
func (c *Clipboard) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.open
}

// Count returns how many times step was called.
func (c *Clipboard) Count(step Step) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.count[step]
}

// Calls returns the primitive calls in order.
func (c *Clipboard) Calls() []Step {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]Step(nil), c.calls...)
}

// Leaked counts blocks that were allocated but neither freed nor handed to
// the clipboard.
func (c *Clipboard) Leaked() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, b := range c.blocks {
		if !b.freed && !b.owned {
			n++
		}
	}
	return n
}

// Violations returns the protocol misuses observed so far.
func (c *Clipboard) Violations() []error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]error(nil), c.violations...)
}
