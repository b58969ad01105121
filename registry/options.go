package registry

import (
	"strconv"
	"strings"
)

// Options are passed through to plugins. Str holds whitespace separated
// tokens, either "name" or "name=value".
type Options struct {
	Str string
}

func NewOptions(str string) *Options {
	return &Options{Str: str}
}

// Option looks up a token by name (case-insensitive). A bare token has an empty value.
func (o *Options) Option(name string) (string, bool) {
	if o == nil {
		return "", false
	}
	for _, tok := range strings.Fields(o.Str) {
		k, v, _ := strings.Cut(tok, "=")
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

func (o *Options) Has(name string) bool {
	_, ok := o.Option(name)
	return ok
}

// Int returns the integer value of name, or def when missing or malformed.
func (o *Options) Int(name string, def int) int {
	v, ok := o.Option(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		Notify(Warn).Printf("option %s: invalid value %q", name, v)
		return def
	}
	return n
}
