package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"contact-book/internal/domain"
	"contact-book/internal/repo"
	"contact-book/internal/service"
	"contact-book/internal/transport/http/handler"
)

type fakeDialer struct{ sent int }

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	d.sent += len(m)
	return nil
}

func newTestEngine(t *testing.T) (*gin.Engine, *repo.MemoryRepo, *fakeDialer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mem := repo.NewMemoryRepo()
	d := &fakeDialer{}
	h := handler.NewContactHandler(
		service.NewContactService(mem),
		service.NewTransferService(mem),
		service.NewMailServiceWithDialer(d, "noreply@example.com", mem),
		zap.NewNop(),
	)
	r := gin.New()
	h.Register(r)
	return r, mem, d
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateDeleteUpdateFlow(t *testing.T) {
	r, _, _ := newTestEngine(t)

	w := doJSON(t, r, http.MethodPost, "/contacts", gin.H{"name": "Ada Lovelace", "number": "555-0100"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d body=%s", w.Code, w.Body)
	}
	var created domain.Contact
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" || created.Name != "Ada Lovelace" {
		t.Fatalf("created = %+v", created)
	}

	w = doJSON(t, r, http.MethodDelete, "/contacts/"+created.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Fatalf("delete should have no content, got %q", w.Body)
	}

	w = doJSON(t, r, http.MethodPut, "/contacts/"+created.ID, gin.H{"name": "X", "number": "1"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("update after delete = %d, want 404", w.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] == "" {
		t.Fatalf("expected {error} body, got %s", w.Body)
	}
}

func TestCreateMissingFields(t *testing.T) {
	r, _, _ := newTestEngine(t)
	w := doJSON(t, r, http.MethodPost, "/contacts", gin.H{"name": "Ada"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "error") {
		t.Fatalf("body = %s", w.Body)
	}
}

func TestListReturnsArrayNewestFirst(t *testing.T) {
	r, _, _ := newTestEngine(t)
	for _, n := range []string{"one", "two", "three"} {
		if w := doJSON(t, r, http.MethodPost, "/contacts", gin.H{"name": n, "number": "555"}); w.Code != 201 {
			t.Fatalf("seed %s: %d", n, w.Code)
		}
	}
	w := doJSON(t, r, http.MethodGet, "/contacts", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var list []domain.Contact
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v body=%s", err, w.Body)
	}
	if len(list) != 3 || list[0].Name != "three" || list[2].Name != "one" {
		t.Fatalf("list order wrong: %+v", list)
	}
}

func TestListEmptyIsArray(t *testing.T) {
	r, _, _ := newTestEngine(t)
	w := doJSON(t, r, http.MethodGet, "/contacts", nil)
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("empty list should be [], got %s", w.Body)
	}
}

func TestImportEndpoint(t *testing.T) {
	r, mem, _ := newTestEngine(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "contacts.csv")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	fmt.Fprint(fw, "name,number\nAda,555-0100\nGrace,555-0101\n,missing\n")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/contacts/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("import status = %d body=%s", w.Code, w.Body)
	}
	var out map[string]int
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["imported"] != 2 {
		t.Fatalf("imported = %d, want 2", out["imported"])
	}
	list, _ := mem.List()
	if len(list) != 2 {
		t.Fatalf("store has %d, want 2", len(list))
	}
}

func TestImportWithoutFile(t *testing.T) {
	r, _, _ := newTestEngine(t)
	req := httptest.NewRequest(http.MethodPost, "/contacts/import", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestExportHeaders(t *testing.T) {
	r, _, _ := newTestEngine(t)
	doJSON(t, r, http.MethodPost, "/contacts", gin.H{"name": "Ada", "number": "555"})

	w := doJSON(t, r, http.MethodGet, "/contacts/export/csv", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("csv status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("csv content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "contacts.csv") {
		t.Fatalf("csv disposition = %q", cd)
	}
	if !strings.HasPrefix(w.Body.String(), "name,number,createdAt") {
		t.Fatalf("csv body = %q", w.Body)
	}

	w = doJSON(t, r, http.MethodGet, "/contacts/export/vcf", nil)
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/vcard") {
		t.Fatalf("vcf content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "contacts.vcf") {
		t.Fatalf("vcf disposition = %q", cd)
	}
	if !strings.Contains(w.Body.String(), "BEGIN:VCARD") {
		t.Fatalf("vcf body = %q", w.Body)
	}
}

func TestSendEmailEndpoint(t *testing.T) {
	r, mem, d := newTestEngine(t)

	// Missing both text and contactIds.
	w := doJSON(t, r, http.MethodPost, "/send-email", gin.H{"to": "a@b.c"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}

	ada := domain.Contact{Name: "Ada", Number: "555"}
	if err := mem.Create(&ada); err != nil {
		t.Fatalf("seed: %v", err)
	}
	w = doJSON(t, r, http.MethodPost, "/send-email", gin.H{
		"to":         "a@b.c",
		"contactIds": []string{ada.ID, "bogus"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body)
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("body = %s", w.Body)
	}
	if d.sent != 1 {
		t.Fatalf("dialer sent %d, want 1", d.sent)
	}
}
