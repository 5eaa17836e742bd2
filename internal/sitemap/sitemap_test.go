package sitemap

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"testing"
	"time"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/business"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/categories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type catStub []categories.Category

func (c catStub) List(ctx context.Context, includeInactive bool) ([]categories.Category, error) {
	if includeInactive {
		return nil, errors.New("sitemap must not list inactive categories")
	}
	return c, nil
}

type bizStub struct {
	items []business.Business
	err   error
	got   business.Filter
}

func (b *bizStub) All(ctx context.Context, f business.Filter) ([]business.Business, error) {
	b.got = f
	return b.items, b.err
}

func TestBuild(t *testing.T) {
	updated := time.Date(2025, 2, 3, 18, 30, 0, 0, time.UTC)
	biz := &bizStub{items: []business.Business{
		{Slug: "sharma-sweets", UpdatedAt: updated},
		{Slug: ""},
	}}
	b := NewBuilder("https://businessgurujee.com", catStub{{Slug: "sweet-shops"}}, biz)

	set, err := b.Build(context.Background())
	require.NoError(t, err)
	require.NotNil(t, biz.got.Active)
	assert.True(t, *biz.got.Active)
	assert.Equal(t, business.StatusApproved, biz.got.Status)

	locs := []string{}
	for _, u := range set.URLs {
		locs = append(locs, u.Loc)
	}
	assert.Equal(t, []string{
		"https://businessgurujee.com/",
		"https://businessgurujee.com/categories",
		"https://businessgurujee.com/category/sweet-shops",
		"https://businessgurujee.com/business/sharma-sweets",
	}, locs)
	assert.Equal(t, "2025-02-03", set.URLs[3].LastMod)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, set))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte(xml.Header)))
	assert.Contains(t, buf.String(), `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)

	var back URLSet
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &back))
	assert.Len(t, back.URLs, 4)
}

func TestBuildPropagatesErrors(t *testing.T) {
	b := NewBuilder("https://x.test", catStub{}, &bizStub{err: errors.New("mongo down")})
	_, err := b.Build(context.Background())
	require.EqualError(t, err, "mongo down")
}
