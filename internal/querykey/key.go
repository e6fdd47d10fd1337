// Package querykey derives stable cache identities from a data domain and
// its filter parameters.
package querykey

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

var (
	// ErrEmptyDomain is returned when a key is built without a domain.
	ErrEmptyDomain = zerr.New("query key domain is empty")

	// ErrUnserializable is returned when parameters cannot be normalized.
	ErrUnserializable = zerr.New("query key parameters are not serializable")
)

// Key identifies one cached query. Keys built from deeply equal parameter
// sets compare equal regardless of field or map insertion order.
type Key struct {
	domain string
	params string
}

// Build normalizes params and returns the key for domain.
// Nil values are dropped at every depth.
func Build(domain string, params any) (Key, error) {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return Key{}, ErrEmptyDomain
	}

	canonical, err := canonicalize(params)
	if err != nil {
		return Key{}, zerr.With(errors.Join(ErrUnserializable, err), "domain", domain)
	}

	return Key{domain: domain, params: canonical}, nil
}

// MustBuild is like Build but panics on error.
func MustBuild(domain string, params any) Key {
	k, err := Build(domain, params)
	if err != nil {
		panic(err)
	}
	return k
}

// Domain returns the data domain of the key.
func (k Key) Domain() string {
	return k.domain
}

// Params returns the canonical JSON encoding of the parameters.
func (k Key) Params() string {
	return k.params
}

// ID returns the comparable string form of the key.
func (k Key) ID() string {
	return k.domain + "|" + k.params
}

// Hash returns a short fingerprint of the key for logs.
func (k Key) Hash() string {
	return strconv.FormatUint(xxhash.Sum64String(k.ID()), 16)
}

// IsZero reports whether k was never built.
func (k Key) IsZero() bool {
	return k.domain == ""
}

func (k Key) String() string {
	return k.ID()
}

// InDomain returns a predicate matching every key of domain.
func InDomain(domain string) func(Key) bool {
	return func(k Key) bool {
		return k.domain == domain
	}
}

func canonicalize(params any) (string, error) {
	if params == nil {
		return "{}", nil
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return "", err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return "", err
	}

	tree = strip(tree)
	if tree == nil {
		return "{}", nil
	}

	// encoding/json writes map keys in sorted order.
	out, err := json.Marshal(tree)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func strip(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if child == nil {
				delete(t, k)
				continue
			}
			t[k] = strip(child)
		}
		return t
	case []any:
		for i, child := range t {
			t[i] = strip(child)
		}
		return t
	default:
		return v
	}
}
