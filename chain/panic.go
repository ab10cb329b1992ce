package chain

import (
	"fmt"
	"runtime"
	"strings"
)

// PanicError is the error produced when an entry or a handler panics. It
// includes the panic'd value (Val), the raw Go stack trace captured while
// recovering (RawStack), and the name of the entry that was running (Entry).
//
// Val is kept as-is: it may be an error, a string, or any other value passed
// to panic.
type PanicError struct {
	Val      any
	RawStack string
	Entry    string
}

// NewPanicError captures the current goroutine's stack. It must be called
// from the deferred function that recovered x so that the panicking frames
// are still on the stack.
func NewPanicError(x any, entry string) PanicError {
	var stack [8192]byte
	n := runtime.Stack(stack[:], false)
	return PanicError{Val: x, RawStack: string(stack[:n]), Entry: entry}
}

// CurrentStack returns the calling goroutine's stack, filtered like
// FilteredStack. It is used to locate errors that were returned rather than
// panic'd.
func CurrentStack() string {
	var stack [8192]byte
	n := runtime.Stack(stack[:], false)
	return PanicError{RawStack: string(stack[:n])}.Stack()
}

// FilteredStack returns the stack trace without the recovery machinery: the
// runtime panic frames and this package's own frames are dropped since they
// are just noise.
func (p PanicError) FilteredStack() []string {
	lines := strings.Split(p.RawStack, "\n")
	var filtered []string
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if strings.HasPrefix(line, "panic(") ||
			strings.HasPrefix(line, "runtime/debug.Stack(") ||
			strings.HasPrefix(line, "runtime.gopanic(") ||
			strings.HasPrefix(line, "github.com/augustoroman/promesso/chain.NewPanicError(") ||
			strings.HasPrefix(line, "github.com/augustoroman/promesso/chain.CurrentStack(") {
			i++ // skip the file:line that follows
			continue
		}
		filtered = append(filtered, line)
	}
	return filtered
}

// Stack is FilteredStack joined into a single string.
func (p PanicError) Stack() string {
	return strings.Join(p.FilteredStack(), "\n")
}

// Unwrap exposes Val when it is an error so that errors.Is and errors.As see
// through the panic.
func (p PanicError) Unwrap() error {
	if err, ok := p.Val.(error); ok {
		return err
	}
	return nil
}

func (p PanicError) Error() string {
	return fmt.Sprintf("panic executing %s: %v\n  Filtered call stack:\n    %s",
		p.Entry, p.Val, strings.Join(p.FilteredStack(), "\n    "))
}
