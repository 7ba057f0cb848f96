package interview

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"jobprep-web/internal/apiclient"
	"jobprep-web/internal/viewstate"
	"jobprep-web/internal/web"
)

func newTestRouter(t *testing.T, api *fakeBackend) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(web.MustTemplates())
	store := viewstate.NewStore[State](web.ViewInterview, viewstate.NewMemoryRepo())
	NewHandler(NewService(store, api, 1)).RegisterRoutes(r)
	return r
}

func do(r *gin.Engine, method, path string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandlerPlaceholderWhenEmpty(t *testing.T) {
	r := newTestRouter(t, &fakeBackend{})
	base := do(r, http.MethodGet, "/interview", nil).Header().Get("Location")

	body := do(r, http.MethodGet, base, nil).Body.String()
	if !strings.Contains(body, `class="placeholder"`) {
		t.Fatalf("expected placeholder item")
	}
}

func TestHandlerSaveThenEvaluateFlow(t *testing.T) {
	api := &fakeBackend{
		questions:  []apiclient.Question{{ID: 1, Text: "Why this role?"}},
		evaluation: apiclient.Evaluation{Score: 8, Feedback: "Clear and specific"},
	}
	r := newTestRouter(t, api)
	base := do(r, http.MethodGet, "/interview", nil).Header().Get("Location")

	w := do(r, http.MethodPost, base+"/questions", url.Values{"company": {"Acme"}, "role": {"SRE"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	body := do(r, http.MethodGet, base, nil).Body.String()
	if !strings.Contains(body, "Why this role?") || !strings.Contains(body, ">Save answer<") {
		t.Fatalf("expected unanswered question rendered")
	}

	w = do(r, http.MethodPost, base+"/questions/0/save", url.Values{"answer": {"I love reliability"}})
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != base+"#q0" {
		t.Fatalf("unexpected save response %d %q", w.Code, w.Header().Get("Location"))
	}
	w = do(r, http.MethodPost, base+"/questions/0/evaluate", url.Values{"answer": {"I love reliability"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}

	body = do(r, http.MethodGet, base, nil).Body.String()
	for _, want := range []string{`<button type="submit" disabled>Saved</button>`, "Score: 8", "Clear and specific"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in page", want)
		}
	}
}

func TestHandlerEvaluateBeforeSaveAlerts(t *testing.T) {
	api := &fakeBackend{questions: []apiclient.Question{{ID: 1, Text: "Q"}}}
	r := newTestRouter(t, api)
	base := do(r, http.MethodGet, "/interview", nil).Header().Get("Location")
	do(r, http.MethodPost, base+"/questions", url.Values{"company": {"Acme"}, "role": {"SRE"}})

	do(r, http.MethodPost, base+"/questions/0/evaluate", url.Values{"answer": {"x"}})
	body := do(r, http.MethodGet, base, nil).Body.String()
	if !strings.Contains(body, msgNeedSave) {
		t.Fatalf("expected save-first alert")
	}
	if len(api.evalAnswerID) != 0 {
		t.Fatalf("expected no evaluate call")
	}
}

func TestHandlerBadIndex(t *testing.T) {
	r := newTestRouter(t, &fakeBackend{})
	base := do(r, http.MethodGet, "/interview", nil).Header().Get("Location")

	if w := do(r, http.MethodPost, base+"/questions/x/save", url.Values{}); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if w := do(r, http.MethodPost, base+"/questions/3/save", url.Values{}); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestHandlerAnswerEdit(t *testing.T) {
	api := &fakeBackend{questions: []apiclient.Question{{ID: 1, Text: "Q"}}}
	r := newTestRouter(t, api)
	base := do(r, http.MethodGet, "/interview", nil).Header().Get("Location")
	do(r, http.MethodPost, base+"/questions", url.Values{"company": {"Acme"}, "role": {"SRE"}})

	page := do(r, http.MethodGet, base, nil).Body.String()
	if !strings.Contains(page, `formaction="`+base+`/questions/0/answer"`) {
		t.Fatalf("expected keep-draft button posting to the answer route")
	}

	w := do(r, http.MethodPost, base+"/questions/0/answer", url.Values{"answer": {"work in progress"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	body := do(r, http.MethodGet, base, nil).Body.String()
	if !strings.Contains(body, "work in progress") {
		t.Fatalf("expected edited answer rendered")
	}
	if !strings.Contains(body, ">Save answer</button>") {
		t.Fatalf("expected question still unsaved after keeping a draft")
	}
	if len(api.saveReqs) != 0 {
		t.Fatalf("expected no backend save, got %d", len(api.saveReqs))
	}
}
