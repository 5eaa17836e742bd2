// Package sitemap renders the sitemaps.org urlset for the public site.
package sitemap

import (
	"context"
	"encoding/xml"
	"io"
	"net/url"
	"time"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/business"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/categories"
	"golang.org/x/sync/errgroup"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

type CategorySource interface {
	List(ctx context.Context, includeInactive bool) ([]categories.Category, error)
}

type BusinessSource interface {
	All(ctx context.Context, f business.Filter) ([]business.Business, error)
}

type Builder struct {
	baseURL    string
	categories CategorySource
	businesses BusinessSource
}

func NewBuilder(baseURL string, c CategorySource, b BusinessSource) *Builder {
	return &Builder{baseURL: baseURL, categories: c, businesses: b}
}

func (b *Builder) loc(parts ...string) string {
	u, err := url.JoinPath(b.baseURL, parts...)
	if err != nil {
		return b.baseURL
	}
	return u
}

func day(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

// Build loads active categories and public listings in parallel.
func (b *Builder) Build(ctx context.Context) (*URLSet, error) {
	var (
		cats []categories.Category
		biz  []business.Business
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cats, err = b.categories.List(gctx, false)
		return err
	})
	g.Go(func() error {
		var err error
		active := true
		biz, err = b.businesses.All(gctx, business.Filter{Status: business.StatusApproved, Active: &active})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := &URLSet{Xmlns: xmlns}
	set.URLs = append(set.URLs,
		URL{Loc: b.loc("/"), ChangeFreq: "daily", Priority: "1.0"},
		URL{Loc: b.loc("categories"), ChangeFreq: "weekly", Priority: "0.8"},
	)
	for _, c := range cats {
		set.URLs = append(set.URLs, URL{Loc: b.loc("category", c.Slug), LastMod: day(c.UpdatedAt), ChangeFreq: "weekly", Priority: "0.7"})
	}
	for _, l := range biz {
		if l.Slug == "" {
			continue
		}
		set.URLs = append(set.URLs, URL{Loc: b.loc("business", l.Slug), LastMod: day(l.UpdatedAt), ChangeFreq: "weekly", Priority: "0.6"})
	}
	return set, nil
}

// Write encodes set with the XML header.
func Write(w io.Writer, set *URLSet) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
