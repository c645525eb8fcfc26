package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/cmlabs-hris/company-directory-go/internal/domain/company"
	"github.com/cmlabs-hris/company-directory-go/internal/domain/employee"
	"github.com/cmlabs-hris/company-directory-go/internal/pkg/storage"
	"github.com/cmlabs-hris/company-directory-go/internal/repository/memory"
	companyservice "github.com/cmlabs-hris/company-directory-go/internal/service/company"
	employeeservice "github.com/cmlabs-hris/company-directory-go/internal/service/employee"
	"github.com/cmlabs-hris/company-directory-go/internal/service/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingNotifier struct {
	mu    sync.Mutex
	names []string
}

func (n *countingNotifier) CompanyCreated(ctx context.Context, c company.Company) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.names = append(n.names, c.Name)
}

type testServer struct {
	*httptest.Server
	companies company.CompanyRepository
	employees employee.EmployeeRepository
	notifier  *countingNotifier
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dir := t.TempDir()
	local, err := storage.NewLocalStorage(dir, "/storage")
	require.NoError(t, err)

	companies := memory.NewCompanyRepository()
	employees := memory.NewEmployeeRepository()
	notifier := &countingNotifier{}

	router := NewRouter(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		RouterConfig{AllowedOrigins: []string{"*"}, StorageDir: dir, StorageURL: "/storage"},
		NewCompanyHandler(companyservice.NewCompanyService(companies, file.NewFileService(local), notifier)),
		NewEmployeeHandler(employeeservice.NewEmployeeService(employees, companies)),
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, companies: companies, employees: employees, notifier: notifier}
}

func (s *testServer) do(t *testing.T, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.send(t, req)
}

func (s *testServer) send(t *testing.T, req *http.Request) (*http.Response, map[string]any) {
	t.Helper()

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	}
	return resp, decoded
}

func (s *testServer) createCompany(t *testing.T, name string) int64 {
	t.Helper()
	resp, body := s.do(t, http.MethodPost, "/company", map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return int64(body["id"].(float64))
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestCompany_CreateAndRead(t *testing.T) {
	s := newTestServer(t)

	resp, created := s.do(t, http.MethodPost, "/company", map[string]any{
		"name":     "Acme Corp",
		"email":    "info@acme.test",
		"website":  "https://acme.test",
		"password": "ignored",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotContains(t, created, "password")
	assert.Equal(t, []string{"Acme Corp"}, s.notifier.names)

	resp, got := s.do(t, http.MethodGet, fmt.Sprintf("/company/%v", created["id"]), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Acme Corp", got["name"])
	assert.Equal(t, "info@acme.test", got["email"])
	assert.Equal(t, "https://acme.test", got["website"])
	assert.Nil(t, got["logo"])
	assert.NotEmpty(t, got["created_at"])
}

func TestCompany_CreateValidationFailure(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, http.MethodPost, "/company", map[string]any{"email": "nope"})

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", errBody["code"])
	details := errBody["details"].(map[string]any)
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "email")

	count, err := s.companies.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, s.notifier.names)
}

func TestCompany_ListSecondPage(t *testing.T) {
	s := newTestServer(t)
	for _, name := range []string{"A", "B", "C"} {
		s.createCompany(t, name)
	}

	resp, page := s.do(t, http.MethodGet, "/company?per_page=2&page=2", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), page["current_page"])
	assert.Equal(t, float64(2), page["per_page"])
	assert.Equal(t, float64(3), page["total"])
	assert.Equal(t, float64(2), page["last_page"])
	assert.Len(t, page["data"], 1)
	assert.Equal(t, "/company?page=1&per_page=2", page["prev_page_url"])
	assert.Nil(t, page["next_page_url"])
}

func TestCompany_ListHugePaging(t *testing.T) {
	s := newTestServer(t)
	for _, name := range []string{"A", "B", "C"} {
		s.createCompany(t, name)
	}
	const maxInt64 = "9223372036854775807"

	cases := []struct {
		query    string
		rows     int
		lastPage float64
	}{
		{"per_page=" + maxInt64, 3, 1},
		{"per_page=" + maxInt64 + "&page=2", 0, 1},
		{"per_page=2&page=" + maxInt64, 0, 2},
		{"per_page=" + maxInt64 + "&page=" + maxInt64, 0, 1},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			resp, page := s.do(t, http.MethodGet, "/company?"+tc.query, nil)

			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Len(t, page["data"], tc.rows)
			assert.Equal(t, float64(3), page["total"])
			assert.Equal(t, tc.lastPage, page["last_page"])
			assert.Nil(t, page["next_page_url"])
		})
	}

	resp, page := s.do(t, http.MethodGet, "/employee?per_page="+maxInt64+"&page="+maxInt64, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, page["data"])
}

func TestCompany_ListIgnoresUnknownSort(t *testing.T) {
	s := newTestServer(t)
	for _, name := range []string{"B", "A"} {
		s.createCompany(t, name)
	}

	resp, page := s.do(t, http.MethodGet, "/company?sort_by=password&sort_dir=desc", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, page["data"], 2)

	_, page = s.do(t, http.MethodGet, "/company?sort_by=name&sort_dir=asc", nil)
	data := page["data"].([]any)
	assert.Equal(t, "A", data[0].(map[string]any)["name"])
}

func TestCompany_CreateWithDataURILogo(t *testing.T) {
	s := newTestServer(t)
	logo := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, 1, 1))

	resp, created := s.do(t, http.MethodPost, "/company", map[string]any{"name": "Acme", "logo": logo})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	logoURL, ok := created["logo"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(logoURL, "/storage/logos/logo_"))
	assert.True(t, strings.HasSuffix(logoURL, ".png"))

	// The stored file is served back.
	fileResp, err := http.Get(s.URL + logoURL)
	require.NoError(t, err)
	defer fileResp.Body.Close()
	assert.Equal(t, http.StatusOK, fileResp.StatusCode)
}

func TestCompany_CreateWithBogusDataURI(t *testing.T) {
	s := newTestServer(t)

	resp, created := s.do(t, http.MethodPost, "/company", map[string]any{"name": "Acme", "logo": "data:image/bogus;base64,xxx"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Nil(t, created["logo"])
}

func multipartCompany(t *testing.T, method, target string, fields map[string]string, logo []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if logo != nil {
		part, err := mw.CreateFormFile("logo", "logo.png")
		require.NoError(t, err)
		_, err = part.Write(logo)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(method, target, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestCompany_MultipartUpload(t *testing.T) {
	s := newTestServer(t)

	resp, created := s.send(t, multipartCompany(t, http.MethodPost, s.URL+"/company", map[string]string{"name": "Acme"}, pngBytes(t, 120, 120)))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	first := created["logo"].(string)
	assert.True(t, strings.HasSuffix(first, ".png"))

	id := created["id"]
	resp, updated := s.send(t, multipartCompany(t, http.MethodPut, fmt.Sprintf("%s/company/%v", s.URL, id), nil, pngBytes(t, 100, 100)))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEqual(t, first, updated["logo"])

	oldResp, err := http.Get(s.URL + first)
	require.NoError(t, err)
	defer oldResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, oldResp.StatusCode)
}

func TestCompany_MultipartUploadTooSmall(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.send(t, multipartCompany(t, http.MethodPost, s.URL+"/company", map[string]string{"name": "Acme"}, pngBytes(t, 50, 50)))

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	details := body["error"].(map[string]any)["details"].(map[string]any)
	assert.Contains(t, details, "logo")
}

func TestCompany_FormEncodedUpdate(t *testing.T) {
	s := newTestServer(t)
	id := s.createCompany(t, "Acme")

	form := url.Values{"name": {"Acme Corp"}, "website": {"https://acme.test"}}
	req, err := http.NewRequest(http.MethodPatch, fmt.Sprintf("%s/company/%d", s.URL, id), strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, updated := s.send(t, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Acme Corp", updated["name"])
	assert.Equal(t, "https://acme.test", updated["website"])
}

func TestCompany_DeleteThenNotFound(t *testing.T) {
	s := newTestServer(t)
	id := s.createCompany(t, "Acme")

	resp, body := s.do(t, http.MethodDelete, fmt.Sprintf("/company/%d", id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"deleted": true}, body)

	resp, body = s.do(t, http.MethodGet, fmt.Sprintf("/company/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["error"].(map[string]any)["code"])

	resp, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/company/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCompany_NonNumericID(t *testing.T) {
	s := newTestServer(t)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		resp, _ := s.do(t, method, "/company/abc", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, method)
	}
}

func TestCompany_MalformedJSON(t *testing.T) {
	s := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, s.URL+"/company", strings.NewReader("{"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, _ := s.send(t, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEmployee_CreateReadWithCompany(t *testing.T) {
	s := newTestServer(t)
	companyID := s.createCompany(t, "Acme")

	resp, created := s.do(t, http.MethodPost, "/employee", map[string]any{
		"first_name": "Alex",
		"last_name":  "Smith",
		"company_id": companyID,
		"email":      "alex@example.test",
		"phone":      "+1-555-0101",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, got := s.do(t, http.MethodGet, fmt.Sprintf("/employee/%v", created["id"]), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Alex", got["first_name"])
	assert.Equal(t, float64(companyID), got["company_id"])
	assert.Equal(t, "Acme", got["company"].(map[string]any)["name"])
}

func TestEmployee_CompanyIDAsString(t *testing.T) {
	s := newTestServer(t)
	companyID := s.createCompany(t, "Acme")

	resp, _ := s.do(t, http.MethodPost, "/employee", map[string]any{
		"first_name": "Alex",
		"last_name":  "Smith",
		"company_id": fmt.Sprint(companyID),
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := s.do(t, http.MethodPost, "/employee", map[string]any{
		"first_name": "Alex",
		"last_name":  "Smith",
		"company_id": "acme",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["error"].(map[string]any)["details"], "company_id")
}

func TestEmployee_UnknownCompany(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, http.MethodPost, "/employee", map[string]any{
		"first_name": "Alex",
		"last_name":  "Smith",
		"company_id": 999,
	})

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["error"].(map[string]any)["details"], "company_id")

	count, err := s.employees.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestEmployee_ListUpdateDelete(t *testing.T) {
	s := newTestServer(t)
	companyID := s.createCompany(t, "Acme")
	for _, name := range []string{"Alex", "Jamie"} {
		resp, _ := s.do(t, http.MethodPost, "/employee", map[string]any{"first_name": name, "last_name": "Acme", "company_id": companyID})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, page := s.do(t, http.MethodGet, "/employee?sort_by=first_name&sort_dir=desc", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := page["data"].([]any)
	require.Len(t, data, 2)
	first := data[0].(map[string]any)
	assert.Equal(t, "Jamie", first["first_name"])
	assert.NotNil(t, first["company"])

	resp, updated := s.do(t, http.MethodPut, fmt.Sprintf("/employee/%v", first["id"]), map[string]any{"phone": "+1-555-0202", "email": nil})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "+1-555-0202", updated["phone"])
	assert.Equal(t, "Jamie", updated["first_name"])

	resp, body := s.do(t, http.MethodDelete, fmt.Sprintf("/employee/%v", first["id"]), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["deleted"])

	resp, _ = s.do(t, http.MethodGet, fmt.Sprintf("/employee/%v", first["id"]), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	resp, err := http.Get(s.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
