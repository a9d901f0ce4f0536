// Package keygen generates Django-style secret keys.
package keygen

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strings"
)

const (
	DefaultLength = 50
	MaxLength     = 1024

	Lowercase = "abcdefghijklmnopqrstuvwxyz"
	Digits    = "0123456789"
	Special   = "!@#$%^&*(-_=+)"

	// DjangoCharset matches django.core.management.utils.get_random_secret_key.
	DjangoCharset = Lowercase + Digits + Special
	// PlainCharset drops the special characters.
	PlainCharset = Lowercase + Digits
)

type Options struct {
	Length int
	// Charset defaults to DjangoCharset, or PlainCharset when NoSpecial is set.
	Charset   string
	NoSpecial bool
	// EnsureDiversity places at least one lowercase letter, digit and special
	// character before shuffling. It only applies when the charset contains
	// all three groups.
	EnsureDiversity bool
	// Rand defaults to crypto/rand.Reader.
	Rand io.Reader
}

func (o Options) withDefaults() Options {
	if o.Length <= 0 {
		o.Length = DefaultLength
	}
	if o.Charset == "" {
		o.Charset = DjangoCharset
		if o.NoSpecial {
			o.Charset = PlainCharset
		}
	}
	if o.Rand == nil {
		o.Rand = rand.Reader
	}
	return o
}

// Generate returns a random key drawn uniformly from the charset.
func Generate(opts Options) (string, error) {
	o := opts.withDefaults()
	if o.Length > MaxLength {
		return "", fmt.Errorf("key length %d exceeds %d", o.Length, MaxLength)
	}
	chars := []rune(o.Charset)
	if len(chars) < 2 {
		return "", errors.New("charset needs at least two characters")
	}

	key := make([]rune, 0, o.Length)
	if o.EnsureDiversity && strings.Contains(o.Charset, Lowercase) &&
		strings.Contains(o.Charset, Digits) && strings.Contains(o.Charset, Special) && o.Length >= 3 {
		for _, group := range []string{Lowercase, Digits, Special} {
			r, err := pick(o.Rand, []rune(group))
			if err != nil {
				return "", err
			}
			key = append(key, r)
		}
	}
	for len(key) < o.Length {
		r, err := pick(o.Rand, chars)
		if err != nil {
			return "", err
		}
		key = append(key, r)
	}
	if o.EnsureDiversity {
		if err := shuffle(o.Rand, key); err != nil {
			return "", err
		}
	}
	return string(key), nil
}

func pick(r io.Reader, chars []rune) (rune, error) {
	n, err := randIntn(r, len(chars))
	if err != nil {
		return 0, err
	}
	return chars[n], nil
}

// shuffle is Fisher-Yates driven by r.
func shuffle(r io.Reader, s []rune) error {
	for i := len(s) - 1; i > 0; i-- {
		j, err := randIntn(r, i+1)
		if err != nil {
			return err
		}
		s[i], s[j] = s[j], s[i]
	}
	return nil
}

func randIntn(r io.Reader, n int) (int, error) {
	v, err := rand.Int(r, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("read randomness: %w", err)
	}
	return int(v.Int64()), nil
}

// Check is one strength criterion.
type Check struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
}

// Report scores a key from 0 to 100 by the share of checks it passes.
type Report struct {
	Score  int     `json:"score"`
	Checks []Check `json:"checks"`
}

// Label buckets the score the way the strength meter does.
func (r Report) Label() string {
	switch {
	case r.Score >= 80:
		return "strong"
	case r.Score >= 60:
		return "medium"
	default:
		return "weak"
	}
}

var strengthChecks = []struct {
	name string
	fn   func(string) bool
}{
	{"length", func(s string) bool { return len([]rune(s)) >= DefaultLength }},
	{"lowercase", func(s string) bool { return strings.ContainsAny(s, Lowercase) }},
	{"numbers", func(s string) bool { return strings.ContainsAny(s, Digits) }},
	{"special", func(s string) bool { return strings.ContainsAny(s, "!@#$%^&*-_=+") }},
}

// Strength evaluates key against the length, lowercase, digit and special
// character checks.
func Strength(key string) Report {
	rep := Report{Checks: make([]Check, 0, len(strengthChecks))}
	passed := 0
	for _, c := range strengthChecks {
		ok := c.fn(key)
		if ok {
			passed++
		}
		rep.Checks = append(rep.Checks, Check{Name: c.name, Passed: ok})
	}
	rep.Score = int(math.Round(100 * float64(passed) / float64(len(strengthChecks))))
	return rep
}
