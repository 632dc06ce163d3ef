package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lingqianapp/lingqian/pkg/cache"
	"github.com/lingqianapp/lingqian/pkg/card"
	"github.com/lingqianapp/lingqian/pkg/history"
	"github.com/lingqianapp/lingqian/pkg/sign"
)

// stubRenderer produces a tiny valid PNG without touching fonts.
type stubRenderer struct {
	calls int
	err   error
}

func (s *stubRenderer) Compose(req card.RenderRequest) (*card.Card, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}

	img := image.NewRGBA(image.Rect(0, 0, 4, 6))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	img.Set(0, 0, color.Black)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return &card.Card{PNG: buf.Bytes(), Width: 4, Height: 6}, nil
}

func newTestServer(t *testing.T, opts ...Option) (*Server, *stubRenderer) {
	t.Helper()
	store, err := sign.NewStore()
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}
	stub := &stubRenderer{}
	base := []Option{
		WithRenderer(stub),
		WithRand(rand.New(rand.NewSource(7))),
	}
	return New(store, append(base, opts...)...), stub
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("body = %q, want ok", rec.Body.String())
	}
}

func TestDraw(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sign/draw?lang=zh", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		DrawID   string      `json:"draw_id"`
		Language string      `json:"language"`
		Sign     sign.Record `json:"sign"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.DrawID == "" {
		t.Error("draw_id missing")
	}
	if resp.Language != "zh" {
		t.Errorf("language = %q, want zh", resp.Language)
	}
	if resp.Sign.ID == "" || resp.Sign.LuckIndex == "" {
		t.Errorf("incomplete sign: %+v", resp.Sign)
	}
}

func TestDrawRecordsHistory(t *testing.T) {
	hist := history.NewMemoryStore(10)
	s, _ := newTestServer(t, WithHistory(hist))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sign/draw", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("history status = %d", rec.Code)
	}

	var resp struct {
		Draws []history.Draw `json:"draws"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding history: %v", err)
	}
	if len(resp.Draws) != 1 {
		t.Fatalf("got %d draws, want 1", len(resp.Draws))
	}
}

func TestDrawInvalidLanguage(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sign/draw?lang=xx", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "INVALID_LANGUAGE") {
		t.Errorf("body = %s, want INVALID_LANGUAGE code", rec.Body.String())
	}
}

func TestGetSign(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sign/qian-01?lang=en", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got sign.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding sign: %v", err)
	}
	if got.ID != "qian-01" {
		t.Errorf("id = %q, want qian-01", got.ID)
	}
}

func TestGetSignNotFound(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sign/qian-99", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func cardBody(t *testing.T, signID, lang, request string) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"sign_id": signID,
		"lang":    lang,
		"request": request,
	})
	if err != nil {
		t.Fatal(err)
	}
	return bytes.NewReader(body)
}

func TestCardJSON(t *testing.T) {
	s, stub := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/card", cardBody(t, "qian-01", "zh", "问前程"))
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if stub.calls != 1 {
		t.Errorf("renderer calls = %d, want 1", stub.calls)
	}

	var resp struct {
		SignID  string `json:"sign_id"`
		Width   int    `json:"width"`
		Height  int    `json:"height"`
		DataURI string `json:"data_uri"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.SignID != "qian-01" || resp.Width != 4 || resp.Height != 6 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if !strings.HasPrefix(resp.DataURI, "data:image/png;base64,") {
		t.Errorf("data_uri prefix unexpected: %.40q", resp.DataURI)
	}
}

func TestCardPNG(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/card", cardBody(t, "qian-01", "zh", ""))
	req.Header.Set("Accept", "image/png")
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	if _, err := png.Decode(bytes.NewReader(rec.Body.Bytes())); err != nil {
		t.Errorf("body is not a PNG: %v", err)
	}
}

func TestCardCached(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s, stub := newTestServer(t, WithCache(fc, time.Hour))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/card", cardBody(t, "qian-02", "zh", "求姻缘"))
		s.Handler().ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
	}

	if stub.calls != 1 {
		t.Errorf("renderer calls = %d, want 1 (second hit served from cache)", stub.calls)
	}
}

func TestCardUnknownSign(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/card", cardBody(t, "qian-99", "zh", ""))
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "SIGN_NOT_FOUND") {
		t.Errorf("body = %s, want SIGN_NOT_FOUND code", rec.Body.String())
	}
}

func TestCardOverlongRequest(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/card", cardBody(t, "qian-01", "zh", strings.Repeat("愿", 141)))
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCardMalformedBody(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/card", strings.NewReader("{not json"))
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHistoryInvalidLimit(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history?limit=abc", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHistoryEmpty(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"draws":[]`) {
		t.Errorf("body = %s, want empty draws array", rec.Body.String())
	}
}
