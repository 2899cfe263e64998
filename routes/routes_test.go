package routes

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"marketing-template/catalog"
	"marketing-template/middleware"
	"marketing-template/session"
	"marketing-template/storage"
	"marketing-template/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(t *testing.T, limiter *middleware.RateLimiter) (*gin.Engine, string) {
	t.Helper()
	root := t.TempDir()

	staticDir := filepath.Join(root, "static")
	if err := os.MkdirAll(staticDir, 0o755); err != nil {
		t.Fatal(err)
	}
	catalogPath := filepath.Join(staticDir, "data.json")
	if err := os.WriteFile(catalogPath, []byte(`{"data": [{"item_code": "A1", "item_name": "Alpha"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	sessions, err := session.NewStore("test-secret-for-routes", false)
	if err != nil {
		t.Fatal(err)
	}
	templateDir := filepath.Join(root, "templates")
	templates, err := storage.NewLocalTemplateStore(templateDir)
	if err != nil {
		t.Fatal(err)
	}
	views, err := web.Templates()
	if err != nil {
		t.Fatal(err)
	}

	r := gin.New()
	r.Use(middleware.ErrorHandler(zap.NewNop()))
	r.SetHTMLTemplate(views)
	SetupRoutes(r, catalog.NewLoader(catalogPath), sessions, templates, limiter, staticDir)
	return r, templateDir
}

func TestHealthCheck(t *testing.T) {
	r, _ := setupRouter(t, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPagesRespond(t *testing.T) {
	r, _ := setupRouter(t, nil)
	for _, path := range []string{
		"/marketing_template_editor",
		"/product",
		"/selected",
		"/listing",
		"/upload_primary_secondary",
		"/show_primary_secondary",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d: %s", path, w.Code, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("%s: expected HTML, got %q", path, ct)
		}
	}
}

func TestRootRedirects(t *testing.T) {
	r, _ := setupRouter(t, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if w.Header().Get("Location") != "/marketing_template_editor" {
		t.Fatalf("unexpected location %q", w.Header().Get("Location"))
	}
}

func TestSelectRedirects(t *testing.T) {
	r, _ := setupRouter(t, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/select/A1", nil))
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
}

func TestStaticServesCatalogFile(t *testing.T) {
	r, _ := setupRouter(t, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/static/data.json", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"A1"`) {
		t.Error("expected catalog file contents")
	}
}

func uploadRequest(t *testing.T) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("primary_template", "p.html")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte("<p>primary</p>")); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("POST", "/upload_primary_secondary", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadWritesFile(t *testing.T) {
	r, templateDir := setupRouter(t, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	got, err := os.ReadFile(filepath.Join(templateDir, "uploaded_primary_template.html"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "<p>primary</p>" {
		t.Errorf("unexpected content %q", got)
	}
}

func TestUploadRateLimited(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute)
	defer limiter.Stop()
	r, _ := setupRouter(t, limiter)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}

	// The form itself is never throttled.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/upload_primary_secondary", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestOCRTranslateNotServed(t *testing.T) {
	r, _ := setupRouter(t, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/api/ocr_translate", strings.NewReader("{}")))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
