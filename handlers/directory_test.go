package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/ads"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/business"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/categories"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/hero"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/inquiries"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/reviews"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/storage"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/subscriptions"
)

func (h *harness) category(adminTok, name string) categories.Category {
	h.t.Helper()
	w := h.do(http.MethodPost, "/api/v1/admin/categories", fmt.Sprintf(`{"name":%q}`, name), adminTok)
	require.Equal(h.t, http.StatusCreated, w.Code, w.Body.String())
	var c categories.Category
	decode(h.t, w, &c)
	return c
}

func (h *harness) listing(tok, categoryID, name, email string) business.Business {
	h.t.Helper()
	body := fmt.Sprintf(`{"name":%q,"categoryId":%q,"contact":{"phone":"9876543210","email":%q},"address":{"city":"Indore"}}`, name, categoryID, email)
	w := h.do(http.MethodPost, "/api/v1/vendor/businesses", body, tok)
	require.Equal(h.t, http.StatusCreated, w.Code, w.Body.String())
	var b business.Business
	decode(h.t, w, &b)
	return b
}

func TestCategoryLifecycle(t *testing.T) {
	h := newHarness(t)
	_, adminTok := h.admin()
	_, vendorTok := h.vendor("v@shop.in")

	w := h.do(http.MethodPost, "/api/v1/admin/categories", `{"name":"Gyms"}`, vendorTok)
	assert.Equal(t, http.StatusForbidden, w.Code)

	gyms := h.category(adminTok, "Gyms")
	sweets := h.category(adminTok, "Sweet Shops")
	w = h.do(http.MethodPost, "/api/v1/admin/categories", `{"name":"gyms"}`, adminTok)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = h.do(http.MethodPatch, "/api/v1/admin/categories/"+gyms.ID+"/toggle-active", "", adminTok)
	require.Equal(t, http.StatusOK, w.Code)

	w = h.do(http.MethodGet, "/api/v1/categories", "", "")
	var public []categories.Category
	decode(t, w, &public)
	require.Len(t, public, 1)
	assert.Equal(t, "sweet-shops", public[0].Slug)

	w = h.do(http.MethodGet, "/api/v1/categories/sweet-shops", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = h.do(http.MethodGet, "/api/v1/categories/gyms", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	h.listing(vendorTok, sweets.ID, "Sharma Sweets", "")
	w = h.do(http.MethodDelete, "/api/v1/admin/categories/"+sweets.ID, "", adminTok)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = h.do(http.MethodDelete, "/api/v1/admin/categories/"+gyms.ID, "", adminTok)
	assert.Equal(t, http.StatusOK, w.Code)

	w = h.do(http.MethodGet, "/api/v1/admin/categories", "", adminTok)
	var all []categories.Category
	decode(t, w, &all)
	assert.Len(t, all, 1)
}

func TestPlanLimitEnforced(t *testing.T) {
	h := newHarness(t)
	_, adminTok := h.admin()
	_, vendorTok := h.vendor("grow@shop.in")
	cat := h.category(adminTok, "Bakeries")

	h.listing(vendorTok, cat.ID, "First Bakery", "")
	body := fmt.Sprintf(`{"name":"Second","categoryId":%q,"contact":{"phone":"1"},"address":{"city":"Indore"}}`, cat.ID)
	w := h.do(http.MethodPost, "/api/v1/vendor/businesses", body, vendorTok)
	require.Equal(t, http.StatusPaymentRequired, w.Code)

	w = h.do(http.MethodPost, "/api/v1/admin/plans", `{"name":"Growth","durationDays":30,"maxBusinesses":5,"price":99900}`, adminTok)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var plan subscriptions.Plan
	decode(t, w, &plan)

	w = h.do(http.MethodGet, "/api/v1/plans", "", "")
	var plans []subscriptions.Plan
	decode(t, w, &plans)
	require.Len(t, plans, 1)

	w = h.do(http.MethodPost, "/api/v1/vendor/subscription", fmt.Sprintf(`{"planId":%q}`, plan.ID), vendorTok)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = h.do(http.MethodGet, "/api/v1/vendor/subscription", "", vendorTok)
	var current struct {
		BusinessLimit int `json:"businessLimit"`
	}
	decode(t, w, &current)
	assert.Equal(t, 5, current.BusinessLimit)

	w = h.do(http.MethodPost, "/api/v1/vendor/businesses", body, vendorTok)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = h.do(http.MethodDelete, "/api/v1/vendor/subscription", "", vendorTok)
	assert.Equal(t, http.StatusOK, w.Code)
	w = h.do(http.MethodDelete, "/api/v1/vendor/subscription", "", vendorTok)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewAndInquiryFlow(t *testing.T) {
	h := newHarness(t)
	_, adminTok := h.admin()
	_, vendorTok := h.vendor("owner@shop.in")
	_, otherTok := h.vendor("other@shop.in")
	cat := h.category(adminTok, "Sweet Shops")
	b := h.listing(vendorTok, cat.ID, "Sharma Sweets", "owner@shop.in")

	// pending listings do not take reviews
	review := fmt.Sprintf(`{"businessId":%q,"name":"Asha","rating":4,"comment":"fresh"}`, b.ID)
	w := h.do(http.MethodPost, "/api/v1/reviews", review, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodPatch, "/api/v1/admin/businesses/"+b.ID+"/status", `{"status":"approved"}`, adminTok)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = h.do(http.MethodPost, "/api/v1/reviews", review, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = h.do(http.MethodPost, "/api/v1/reviews", fmt.Sprintf(`{"businessId":%q,"name":"Ravi","rating":5}`, b.ID), "")
	require.Equal(t, http.StatusCreated, w.Code)
	w = h.do(http.MethodPost, "/api/v1/reviews", fmt.Sprintf(`{"businessId":%q,"name":"Ravi","rating":9}`, b.ID), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodGet, "/api/v1/businesses/"+b.ID, "", "")
	var got business.Business
	decode(t, w, &got)
	assert.Equal(t, 4.5, got.Rating.Average)
	assert.Equal(t, 2, got.Rating.Count)

	w = h.do(http.MethodGet, "/api/v1/businesses/"+b.ID+"/reviews?limit=1", "", "")
	var page []reviews.Review
	env := decode(t, w, &page)
	require.Len(t, page, 1)
	assert.Equal(t, "Ravi", page[0].Name)
	assert.Equal(t, int64(2), env.Pagination.Total)
	assert.Equal(t, 2, env.Pagination.Pages)

	w = h.do(http.MethodPatch, "/api/v1/admin/reviews/"+page[0].ID+"/toggle-visible", "", adminTok)
	require.Equal(t, http.StatusOK, w.Code)
	w = h.do(http.MethodGet, "/api/v1/businesses/"+b.ID, "", "")
	decode(t, w, &got)
	assert.Equal(t, 4.0, got.Rating.Average)

	inquiry := fmt.Sprintf(`{"businessId":%q,"name":"Asha","phone":"9000000000","message":"Bulk order?"}`, b.ID)
	w = h.do(http.MethodPost, "/api/v1/inquiries", inquiry, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var inq inquiries.Inquiry
	decode(t, w, &inq)
	sent := h.mail.Sent()
	require.NotEmpty(t, sent)
	assert.Equal(t, "owner@shop.in", sent[len(sent)-1].To)

	w = h.do(http.MethodGet, "/api/v1/vendor/inquiries", "", otherTok)
	var none []inquiries.Inquiry
	decode(t, w, &none)
	assert.Empty(t, none)

	w = h.do(http.MethodPatch, "/api/v1/vendor/inquiries/"+inq.ID+"/status", `{"status":"read"}`, otherTok)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = h.do(http.MethodPatch, "/api/v1/vendor/inquiries/"+inq.ID+"/status", `{"status":"bogus"}`, vendorTok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = h.do(http.MethodPatch, "/api/v1/vendor/inquiries/"+inq.ID+"/status", `{"status":"read"}`, vendorTok)
	assert.Equal(t, http.StatusOK, w.Code)

	w = h.do(http.MethodGet, "/api/v1/vendor/inquiries?status=read", "", vendorTok)
	var mine []inquiries.Inquiry
	decode(t, w, &mine)
	require.Len(t, mine, 1)

	w = h.do(http.MethodGet, "/api/v1/admin/dashboard", "", adminTok)
	require.Equal(t, http.StatusOK, w.Code)
	var d Dashboard
	decode(t, w, &d)
	assert.Equal(t, Dashboard{
		Vendors:            3,
		Businesses:         1,
		ApprovedBusinesses: 1,
		Categories:         1,
		Reviews:            2,
	}, d)
}

func TestAdsAndHero(t *testing.T) {
	h := newHarness(t)
	_, adminTok := h.admin()

	w := h.do(http.MethodPost, "/api/v1/admin/ads", `{"title":"Sale","imageUrl":"x.png","placement":"home","linkUrl":"https://shop.example/sale"}`, adminTok)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var ad ads.Ad
	decode(t, w, &ad)
	w = h.do(http.MethodPost, "/api/v1/admin/ads", `{"title":"Bad","imageUrl":"x.png","placement":"home","startsAt":"2025-05-02T00:00:00Z","endsAt":"2025-05-01T00:00:00Z"}`, adminTok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodGet, "/api/v1/ads?placement=home", "", "")
	var live []ads.Ad
	decode(t, w, &live)
	require.Len(t, live, 1)

	w = h.do(http.MethodGet, "/api/v1/ads/"+ad.ID+"/click", "", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://shop.example/sale", w.Header().Get("Location"))

	var ids []string
	for _, title := range []string{"one", "two", "three"} {
		w = h.do(http.MethodPost, "/api/v1/admin/hero", fmt.Sprintf(`{"imageUrl":"%s.jpg","title":%q}`, title, title), adminTok)
		require.Equal(t, http.StatusCreated, w.Code)
		var b hero.Banner
		decode(t, w, &b)
		ids = append(ids, b.ID)
	}
	w = h.do(http.MethodPut, "/api/v1/admin/hero/reorder", fmt.Sprintf(`{"ids":[%q,%q,%q]}`, ids[2], ids[0], ids[1]), adminTok)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = h.do(http.MethodPatch, "/api/v1/admin/hero/"+ids[0]+"/toggle-active", "", adminTok)
	require.Equal(t, http.StatusOK, w.Code)

	w = h.do(http.MethodGet, "/api/v1/hero", "", "")
	var banners []hero.Banner
	decode(t, w, &banners)
	require.Len(t, banners, 2)
	assert.Equal(t, "three", banners[0].Title)
	assert.Equal(t, "two", banners[1].Title)
}

func multipartUpload(t *testing.T, folder string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if folder != "" {
		require.NoError(t, mw.WriteField("folder", folder))
	}
	fw, err := mw.CreateFormFile("image", "logo.png")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestUploads(t *testing.T) {
	h := newHarness(t)
	_, vendorTok := h.vendor("img@shop.in")
	_, adminTok := h.admin()
	png := append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

	send := func(folder string, data []byte, tok string) *httptest.ResponseRecorder {
		body, ct := multipartUpload(t, folder, data)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", body)
		req.Header.Set("Content-Type", ct)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		h.engine.ServeHTTP(w, req)
		return w
	}

	w := send("logos", png, vendorTok)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var stored storage.Stored
	decode(t, w, &stored)
	assert.True(t, strings.HasPrefix(stored.Key, "logos/"))
	assert.Equal(t, "http://media.test/"+stored.Key, stored.URL)

	assert.Equal(t, http.StatusBadRequest, send("logos", []byte("plain text, not an image"), vendorTok).Code)
	assert.Equal(t, http.StatusBadRequest, send("secrets", png, vendorTok).Code)
	assert.Equal(t, http.StatusBadRequest, send("", make([]byte, 2048), vendorTok).Code)
	assert.Equal(t, http.StatusUnauthorized, send("", png, "").Code)

	w = h.do(http.MethodDelete, "/api/v1/admin/uploads?key="+stored.Key, "", adminTok)
	assert.Equal(t, http.StatusOK, w.Code)
	w = h.do(http.MethodDelete, "/api/v1/admin/uploads?key="+stored.Key, "", adminTok)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSitemapXML(t *testing.T) {
	h := newHarness(t)
	_, adminTok := h.admin()
	cat := h.category(adminTok, "Gyms")
	h.listing(adminTok, cat.ID, "Iron Gym", "")

	w := h.do(http.MethodGet, "/sitemap.xml", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")
	assert.Contains(t, w.Body.String(), "<loc>https://gurujee.test/category/gyms</loc>")
	assert.Contains(t, w.Body.String(), "<loc>https://gurujee.test/business/iron-gym</loc>")
}
