package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/planora/inquiry-backend/internal/identifier"
	"github.com/planora/inquiry-backend/internal/profile"
	"github.com/planora/inquiry-backend/internal/repository"
	"github.com/planora/inquiry-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testClientID = "aaaaaaaaaaaaaaaaaaaaaaaa"
	testVendorID = "bbbbbbbbbbbbbbbbbbbbbbbb"
)

func newTestHandler() *InquiryHandler {
	svc := service.NewInquiryService(repository.NewMemoryInquiryRepository())
	profiles := profile.NewStaticResolver(map[string]profile.Profile{
		testClientID: {Name: "Avery Client", Email: "avery@example.com"},
		testVendorID: {Name: "Blue Barn Venue", Email: "hello@bluebarn.example.com"},
	})
	return NewInquiryHandler(svc, profiles)
}

func doRequest(t *testing.T, h func(echo.Context) error, method, path, body string, paramNames, paramValues []string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames(paramNames...)
	c.SetParamValues(paramValues...)
	require.NoError(t, h(c))
	return rec
}

func createThread(t *testing.T, h *InquiryHandler, body string) InquiryResponse {
	t.Helper()
	rec := doRequest(t, h.Create, http.MethodPost, "/inquiries", body, nil, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp InquiryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func defaultCreateBody() string {
	return `{"client":"` + testClientID + `","vendor":"` + testVendorID + `","subject":"June wedding","weddingDate":"2027-06-05","message":"Hi, are you available June 5?","sender":"Client"}`
}

func TestCreateInquiryEndpoint(t *testing.T) {
	h := newTestHandler()
	resp := createThread(t, h, defaultCreateBody())

	assert.Equal(t, "New", resp.Status)
	assert.Equal(t, "June wedding", resp.Subject)
	require.NotNil(t, resp.WeddingDate)
	assert.Equal(t, "2027-06-05", *resp.WeddingDate)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "Client", string(resp.Messages[0].Sender))
	assert.Equal(t, "Avery Client", resp.Client.Name)
	assert.Equal(t, "hello@bluebarn.example.com", resp.Vendor.Email)
}

func TestCreateInquiryEndpointMissingField(t *testing.T) {
	h := newTestHandler()
	tests := []struct {
		name string
		body string
	}{
		{"no message", `{"client":"` + testClientID + `","vendor":"` + testVendorID + `","sender":"Client"}`},
		{"no vendor", `{"client":"` + testClientID + `","message":"hi","sender":"Client"}`},
		{"no sender", `{"client":"` + testClientID + `","vendor":"` + testVendorID + `","message":"hi"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h.Create, http.MethodPost, "/inquiries", tt.body, nil, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var errResp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
			assert.Equal(t, "missing_field", errResp.Error.Code)
		})
	}
}

func TestCreateInquiryEndpointBadWeddingDate(t *testing.T) {
	h := newTestHandler()
	body := `{"client":"` + testClientID + `","vendor":"` + testVendorID + `","weddingDate":"June 5th","message":"hi","sender":"Client"}`
	rec := doRequest(t, h.Create, http.MethodPost, "/inquiries", body, nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListInquiriesEndpoint(t *testing.T) {
	h := newTestHandler()
	createThread(t, h, defaultCreateBody())

	rec := doRequest(t, h.List, http.MethodGet, "/inquiries/"+testClientID, "", []string{"userId"}, []string{testClientID})
	require.Equal(t, http.StatusOK, rec.Code)
	var list []InquiryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Avery Client", list[0].Client.Name)
	assert.Equal(t, "Blue Barn Venue", list[0].Vendor.Name)

	// Unknown but well-formed user: empty array, not an error.
	other := identifier.New()
	rec = doRequest(t, h.List, http.MethodGet, "/inquiries/"+other, "", []string{"userId"}, []string{other})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestListInquiriesEndpointInvalidID(t *testing.T) {
	h := newTestHandler()
	rec := doRequest(t, h.List, http.MethodGet, "/inquiries/xyz", "", []string{"userId"}, []string{"xyz"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "invalid_id", errResp.Error.Code)
}

func TestAppendMessageEndpoint(t *testing.T) {
	h := newTestHandler()
	created := createThread(t, h, defaultCreateBody())

	body := `{"sender":"Vendor","content":"Yes!","attachments":["https://files.example.com/a.pdf"]}`
	rec := doRequest(t, h.AppendMessage, http.MethodPost, "/inquiries/"+created.ID+"/messages", body,
		[]string{"inquiryId"}, []string{created.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp InquiryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, "Vendor", string(resp.Messages[1].Sender))
	assert.Equal(t, []string{"https://files.example.com/a.pdf"}, resp.Messages[1].Attachments)
	assert.False(t, resp.UpdatedAt.Before(created.UpdatedAt))
}

func TestAppendMessageEndpointFailures(t *testing.T) {
	h := newTestHandler()
	created := createThread(t, h, defaultCreateBody())
	missing := identifier.New()

	tests := []struct {
		name     string
		id       string
		body     string
		wantCode int
		wantKind string
	}{
		{"invalid id", "short", `{"sender":"Vendor","content":"x"}`, http.StatusBadRequest, "invalid_id"},
		{"not found", missing, `{"sender":"Vendor","content":"x"}`, http.StatusNotFound, "not_found"},
		{"missing content", created.ID, `{"sender":"Vendor"}`, http.StatusBadRequest, "missing_field"},
		{"missing sender", created.ID, `{"content":"x"}`, http.StatusBadRequest, "missing_field"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h.AppendMessage, http.MethodPost, "/inquiries/"+tt.id+"/messages", tt.body,
				[]string{"inquiryId"}, []string{tt.id})
			assert.Equal(t, tt.wantCode, rec.Code)
			var errResp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
			assert.Equal(t, tt.wantKind, errResp.Error.Code)
		})
	}
}

func TestListMessagesEndpoint(t *testing.T) {
	h := newTestHandler()
	created := createThread(t, h, defaultCreateBody())
	doRequest(t, h.AppendMessage, http.MethodPost, "/inquiries/"+created.ID+"/messages",
		`{"sender":"Vendor","content":"Yes!"}`, []string{"inquiryId"}, []string{created.ID})

	rec := doRequest(t, h.ListMessages, http.MethodGet, "/inquiries/"+created.ID+"/messages", "",
		[]string{"inquiryId"}, []string{created.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	var msgs []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msgs))
	require.Len(t, msgs, 2)
	assert.Equal(t, "Client", msgs[0]["sender"])
	assert.Equal(t, "Vendor", msgs[1]["sender"])

	missing := identifier.New()
	rec = doRequest(t, h.ListMessages, http.MethodGet, "/inquiries/"+missing+"/messages", "",
		[]string{"inquiryId"}, []string{missing})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateStatusEndpoint(t *testing.T) {
	h := newTestHandler()
	created := createThread(t, h, defaultCreateBody())

	patch := func(status string) *httptest.ResponseRecorder {
		return doRequest(t, h.UpdateStatus, http.MethodPatch, "/inquiries/"+created.ID+"/status",
			`{"status":"`+status+`"}`, []string{"inquiryId"}, []string{created.ID})
	}

	rec := patch("Archived")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp InquiryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Archived", resp.Status)

	// Un-archiving is allowed.
	rec = patch("New")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "New", resp.Status)

	rec = patch("Closed")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "invalid_status", errResp.Error.Code)

	missing := identifier.New()
	rec = doRequest(t, h.UpdateStatus, http.MethodPatch, "/inquiries/"+missing+"/status",
		`{"status":"Replied"}`, []string{"inquiryId"}, []string{missing})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
