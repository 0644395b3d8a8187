package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/filestore"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/handlers"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/notify"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/pricing"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/store"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/submission"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/wizard"
)

// memLeads stands in for the PostgreSQL leads table.
type memLeads struct {
	mu   sync.Mutex
	recs []submission.Record
}

func (m *memLeads) InsertRequest(_ context.Context, rec submission.Record) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.ID = fmt.Sprintf("lead-%d", len(m.recs)+1)
	m.recs = append(m.recs, rec)
	return rec.ID, nil
}

func (m *memLeads) ListLeads(_ context.Context, f store.LeadFilter) ([]submission.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []submission.Record
	for _, r := range m.recs {
		if f.ProductLine == "" || r.ProductLine == f.ProductLine {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memLeads) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.recs)
}

// memPricing stands in for the pricing_tables table.
type memPricing struct {
	mu     sync.Mutex
	tables map[string]*pricing.Table
}

func (m *memPricing) Fetch(_ context.Context, line string) (*pricing.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[line]
	if !ok {
		return nil, pricing.ErrNoTable
	}
	return t, nil
}

func (m *memPricing) Publish(_ context.Context, line string, t *pricing.Table) (*pricing.Table, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := *t
	out.ProductLine = line
	out.Version = 1
	if prev, ok := m.tables[line]; ok {
		out.Version = prev.Version + 1
	}
	m.tables[line] = &out
	return &out, nil
}

type testServer struct {
	*httptest.Server
	leads   *memLeads
	prices  *memPricing
	uploads string
}

func newTestServer(t *testing.T, limiter *handlers.IPLimiter) *testServer {
	t.Helper()
	leads := &memLeads{}
	prices := &memPricing{tables: map[string]*pricing.Table{}}
	uploads := t.TempDir()

	adapter := submission.NewAdapter(leads, notify.NewLog(nil), filestore.NewLocal(uploads, "/uploads"),
		submission.Options{}, nil, nil)
	svc := wizard.NewService(wizard.NewMemoryStore(time.Hour),
		pricing.NewLoader(prices, time.Second, nil, nil), adapter, nil, nil)

	hash, err := bcrypt.GenerateFromPassword([]byte("geheim"), bcrypt.MinCost)
	require.NoError(t, err)

	env := &handlers.Env{
		Wizard:            svc,
		Pricing:           prices,
		Leads:             leads,
		AdminUser:         "admin",
		AdminPasswordHash: string(hash),
		SubmitLimiter:     limiter,
	}
	srv := httptest.NewServer(newHandler(env, routeOptions{
		CORSOrigins:  []string{"*"},
		UploadDir:    uploads,
		UploadPrefix: "/uploads",
	}, nil))
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, leads: leads, prices: prices, uploads: uploads}
}

type viewBody struct {
	SessionID       string `json:"sessionId"`
	Step            int    `json:"step"`
	StepID          string `json:"stepId"`
	IsLast          bool   `json:"isLast"`
	PricingFallback bool   `json:"pricingFallback"`
	PricingVersion  int64  `json:"pricingVersion"`
	Configuration   struct {
		Width int    `json:"width"`
		Model string `json:"model"`
	} `json:"configuration"`
	Price struct {
		Total float64 `json:"total"`
	} `json:"price"`
	Advice *struct {
		Field     string `json:"field"`
		Suggested int    `json:"suggested"`
	} `json:"advice"`
	Transition *struct {
		Blocked string `json:"blocked"`
	} `json:"transition"`
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func (s *testServer) do(t *testing.T, method, path, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, s.URL+path, r)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func (s *testServer) create(t *testing.T, line string) viewBody {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/configurator/sessions", `{"productLine":"`+line+`"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[viewBody](t, resp)
}

func TestHealthAndProductLines(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.do(t, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp = s.do(t, http.MethodGet, "/api/configurator/product-lines", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[struct {
		Items []struct {
			ID    string `json:"id"`
			Steps []struct {
				ID string `json:"id"`
			} `json:"steps"`
		} `json:"items"`
	}](t, resp)
	require.Len(t, body.Items, 3)
	assert.Equal(t, wizard.LineCalculator, body.Items[0].ID)
	assert.Len(t, body.Items[2].Steps, 8)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, nil)
	resp := s.do(t, http.MethodOptions, "/api/configurator/sessions/abc/next", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestSession_UnknownLineAndSession(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.do(t, http.MethodPost, "/api/configurator/sessions", `{"productLine":"schuur"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/configurator/sessions/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.do(t, http.MethodPost, "/api/configurator/sessions", `{bad`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSession_FallbackPricingAndRefresh(t *testing.T) {
	s := newTestServer(t, nil)

	v := s.create(t, wizard.LineCalculator)
	assert.True(t, v.PricingFallback)
	assert.Equal(t, "model", v.StepID)
	assert.Greater(t, v.Price.Total, 0.0)

	_, err := s.prices.Publish(context.Background(), wizard.LineCalculator, pricing.Fallback(wizard.LineCalculator))
	require.NoError(t, err)

	resp := s.do(t, http.MethodPost, "/api/configurator/sessions/"+v.SessionID+"/pricing/refresh", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v = decode[viewBody](t, resp)
	assert.False(t, v.PricingFallback)
	assert.Equal(t, int64(1), v.PricingVersion)

	// off the first step and no longer on fallback prices
	s.do(t, http.MethodPost, "/api/configurator/sessions/"+v.SessionID+"/next", "")
	resp = s.do(t, http.MethodPost, "/api/configurator/sessions/"+v.SessionID+"/pricing/refresh", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSession_PatchErrors(t *testing.T) {
	s := newTestServer(t, nil)
	v := s.create(t, wizard.LineCalculator)
	path := "/api/configurator/sessions/" + v.SessionID

	resp := s.do(t, http.MethodPatch, path, `{"model":"typeB"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "typeB", decode[viewBody](t, resp).Configuration.Model)

	resp = s.do(t, http.MethodPatch, path, `{"model":"typeX"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[errorBody](t, resp).Fields, "model")

	// width belongs to no step of this line
	resp = s.do(t, http.MethodPatch, path, `{"width":350}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.do(t, http.MethodPost, path+"/submit", `{}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSession_AdviceBlocksNext(t *testing.T) {
	s := newTestServer(t, nil)
	v := s.create(t, wizard.LineSnel)
	path := "/api/configurator/sessions/" + v.SessionID

	resp := s.do(t, http.MethodPatch, path, `{"width":"advies","windowCount":3}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v = decode[viewBody](t, resp)
	require.NotNil(t, v.Advice)
	assert.Equal(t, "width", v.Advice.Field)
	assert.Equal(t, 300, v.Configuration.Width)

	resp = s.do(t, http.MethodPost, path+"/next", "")
	v = decode[viewBody](t, resp)
	assert.Equal(t, 1, v.Step)
	require.NotNil(t, v.Transition)
	assert.Equal(t, "advice", v.Transition.Blocked)

	resp = s.do(t, http.MethodPost, path+"/advice", `{"field":"width","value":350}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v = decode[viewBody](t, resp)
	assert.Nil(t, v.Advice)
	assert.Equal(t, 350, v.Configuration.Width)

	resp = s.do(t, http.MethodPost, path+"/next", "")
	assert.Equal(t, 2, decode[viewBody](t, resp).Step)

	resp = s.do(t, http.MethodPost, path+"/reset", "")
	v = decode[viewBody](t, resp)
	assert.Equal(t, 1, v.Step)
	assert.Equal(t, 300, v.Configuration.Width)
}

func TestSession_Preview(t *testing.T) {
	s := newTestServer(t, nil)
	v := s.create(t, wizard.LineConfigurator)

	resp := s.do(t, http.MethodGet, "/api/configurator/sessions/"+v.SessionID+"/preview", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	scene := decode[map[string]any](t, resp)
	assert.Contains(t, scene, "windows")

	resp = s.do(t, http.MethodGet, "/api/configurator/sessions/"+v.SessionID+"/preview.svg", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	svg, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(svg), `id="windows"`)

	resp = s.do(t, http.MethodGet, "/api/configurator/sessions/"+v.SessionID+"/price", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func multipartSubmit(t *testing.T, url, contact, filename, content string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("contact", contact))
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(url, mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestSubmit_EndToEnd(t *testing.T) {
	s := newTestServer(t, nil)
	v := s.create(t, wizard.LineCalculator)
	path := "/api/configurator/sessions/" + v.SessionID
	for i := 0; i < 4; i++ {
		s.do(t, http.MethodPost, path+"/next", "")
	}
	resp := s.do(t, http.MethodGet, path, "")
	v = decode[viewBody](t, resp)
	require.True(t, v.IsLast)
	require.Equal(t, "contact", v.StepID)

	contact := `{"name":"Jan Jansen","email":"jan@","phone":"06 12345678","address":"Dorpsstraat 1","postalCode":"1234 AB","city":"Utrecht"}`
	resp = s.do(t, http.MethodPost, path+"/submit", `{"contact":`+contact+`}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[errorBody](t, resp).Fields, "email")
	assert.Equal(t, 0, s.leads.count())

	resp = multipartSubmit(t, s.URL+path+"/submit", `{"email":"jan@example.nl"}`, "dak foto.jpg", "jpeg")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	ack := decode[submission.Ack](t, resp)
	assert.Equal(t, "lead-1", ack.ID)
	assert.True(t, ack.Notified)
	require.True(t, strings.HasPrefix(ack.AttachmentURL, "/uploads/"), ack.AttachmentURL)
	assert.Equal(t, 1, s.leads.count())

	// the session is gone once submitted
	resp = s.do(t, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.do(t, http.MethodGet, ack.AttachmentURL, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "attachment", resp.Header.Get("Content-Disposition"))
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))
}

func TestSubmit_RejectsHTMLAttachment(t *testing.T) {
	s := newTestServer(t, nil)
	v := s.create(t, wizard.LineCalculator)
	path := "/api/configurator/sessions/" + v.SessionID
	for i := 0; i < 4; i++ {
		s.do(t, http.MethodPost, path+"/next", "")
	}

	contact := `{"name":"Jan Jansen","email":"jan@example.nl","phone":"06 12345678","address":"Dorpsstraat 1","postalCode":"1234 AB","city":"Utrecht"}`
	resp := multipartSubmit(t, s.URL+path+"/submit", contact, "foto.html", "<script>alert(1)</script>")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[errorBody](t, resp).Fields, "file")
	assert.Equal(t, 0, s.leads.count())
}

func TestUploads_ServedAsDownload(t *testing.T) {
	s := newTestServer(t, nil)
	require.NoError(t, os.WriteFile(filepath.Join(s.uploads, "oud.html"), []byte("<script>"), 0o644))

	resp := s.do(t, http.MethodGet, "/uploads/oud.html", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/octet-stream", resp.Header.Get("Content-Type"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "attachment", resp.Header.Get("Content-Disposition"))
}

func TestSubmit_ContactBeforeFinalStep(t *testing.T) {
	s := newTestServer(t, nil)
	v := s.create(t, wizard.LineCalculator)

	resp := s.do(t, http.MethodPost, "/api/configurator/sessions/"+v.SessionID+"/submit", `{"contact":{"email":"jan@example.nl"}}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCORS_EchoesConfiguredOrigin(t *testing.T) {
	h := newHandler(&handlers.Env{}, routeOptions{CORSOrigins: []string{"https://a.nl", "https://b.nl"}}, nil)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/configurator/sessions", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://b.nl")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://b.nl", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestSubmit_RateLimited(t *testing.T) {
	s := newTestServer(t, handlers.NewIPLimiter(1, 1))
	v := s.create(t, wizard.LineCalculator)
	path := "/api/configurator/sessions/" + v.SessionID + "/submit"

	// first call spends the token and is rejected for being on step 1
	resp := s.do(t, http.MethodPost, path, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = s.do(t, http.MethodPost, path, "")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "60", resp.Header.Get("Retry-After"))
}

func TestAdmin_PricingAndLeads(t *testing.T) {
	s := newTestServer(t, nil)
	adminReq := func(method, path, body, pass string) *http.Response {
		var r io.Reader
		if body != "" {
			r = strings.NewReader(body)
		}
		req, err := http.NewRequest(method, s.URL+path, r)
		require.NoError(t, err)
		req.SetBasicAuth("admin", pass)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		t.Cleanup(func() { resp.Body.Close() })
		return resp
	}

	resp := adminReq(http.MethodGet, "/api/admin/pricing/"+wizard.LineSnel, "", "fout")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = adminReq(http.MethodGet, "/api/admin/pricing/"+wizard.LineSnel, "", "geheim")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = adminReq(http.MethodGet, "/api/admin/pricing/schuur", "", "geheim")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	doc, err := json.Marshal(pricing.Fallback(wizard.LineSnel))
	require.NoError(t, err)
	resp = adminReq(http.MethodPut, "/api/admin/pricing/"+wizard.LineSnel, string(doc), "geheim")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), decode[pricing.Table](t, resp).Version)

	resp = adminReq(http.MethodPut, "/api/admin/pricing/"+wizard.LineSnel, `{"taxRate":-1}`, "geheim")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = adminReq(http.MethodGet, "/api/admin/leads?productLine="+wizard.LineSnel, "", "geheim")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = adminReq(http.MethodGet, "/api/admin/leads?limit=abc", "", "geheim")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = adminReq(http.MethodGet, "/api/admin/leads.xlsx", "", "geheim")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")
}
