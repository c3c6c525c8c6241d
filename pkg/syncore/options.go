package syncore

import "strings"

// Option configures a syncore primitive at construction time.
type Option func(*options)

type options struct {
	logger Logger
	name   string
}

func buildOptions(opts []Option) options {
	o := options{logger: defaultLogger}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the Logger a primitive uses to report donation events
// (only Semaphore, Mutex and RecursiveMutex log any). Passing a nil logger restores the package default
// (a no-op Logger), rather than disabling logging calls outright.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l == nil {
			l = defaultLogger
		}
		o.logger = l
	}
}

// WithName attaches a diagnostic label to a primitive, joined from parts
// with ":" and prefixed with the primitive's kind (e.g.
// "semaphore:workers:slot3"). The label is included in its log output,
// which otherwise identifies only the kind.
func WithName(parts ...string) Option {
	return func(o *options) {
		o.name = strings.Join(parts, ":")
	}
}
