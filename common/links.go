package common

import (
	"net/url"
	"strings"
)

// LinkBuilder composes absolute links below a base url.
type LinkBuilder struct {
	base     *url.URL
	segments []string
	query    url.Values
}

// NewLinkBuilder starts a link below the given base url.
func NewLinkBuilder(base string) (*LinkBuilder, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}

	return &LinkBuilder{
		base:  u,
		query: url.Values{},
	}, nil
}

// AddPath appends path segments, ignoring surrounding slashes.
func (b *LinkBuilder) AddPath(segments ...string) *LinkBuilder {
	for _, s := range segments {
		if s = strings.Trim(s, "/"); s != "" {
			b.segments = append(b.segments, s)
		}
	}

	return b
}

// AddQuery sets a query parameter. Empty values are skipped.
func (b *LinkBuilder) AddQuery(key, value string) *LinkBuilder {
	if value != "" {
		b.query.Set(key, value)
	}

	return b
}

// String renders the link.
func (b *LinkBuilder) String() string {
	u := *b.base

	basePath := strings.TrimRight(u.Path, "/")
	if len(b.segments) > 0 {
		basePath = basePath + "/" + strings.Join(b.segments, "/")
	}

	u.Path = basePath

	if len(b.query) > 0 {
		u.RawQuery = b.query.Encode()
	}

	return u.String()
}
