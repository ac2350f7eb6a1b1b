package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"adote-facil/internal/platform/config"
	"adote-facil/internal/ports/pictures"
	"adote-facil/internal/router"
)

// fakeStore evita tocar disco en los tests HTTP.
type fakeStore struct {
	saved   int
	deleted int
}

func (s *fakeStore) Save(_ context.Context, uploads []pictures.Upload) ([]string, error) {
	refs := make([]string, 0, len(uploads))
	for _, u := range uploads {
		s.saved++
		refs = append(refs, "/pictures/"+u.Filename)
	}
	return refs, nil
}

func (s *fakeStore) Delete(_ context.Context, refs []string) error {
	s.deleted += len(refs)
	return nil
}

func newServer(t *testing.T, mutate func(*config.Config)) *httptest.Server {
	t.Helper()

	cfg := config.Defaults()
	cfg.DevAuth = true
	if mutate != nil {
		mutate(&cfg)
	}

	h, err := router.NewRouter(router.Options{Config: cfg, Pictures: &fakeStore{}})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_AdoptionFlow(t *testing.T) {
	ts := newServer(t, nil)

	ownerID := "owner-1"
	visitorID := "visitor-1"
	outsiderID := "outsider-1"

	// 1) Owner publica un animal
	animalID := createAnimal(t, ts.URL, ownerID, map[string]any{
		"name":   "Milo",
		"type":   "dog",
		"gender": "male",
		"race":   "mixed",
	})

	// 2) Visitante inicia chat => 201
	chatID := startChat(t, ts.URL, visitorID, animalID, http.StatusCreated)

	// 3) Repetir es idempotente => 200 con el mismo chat
	if again := startChat(t, ts.URL, visitorID, animalID, http.StatusOK); again != chatID {
		t.Fatalf("expected same chat id, got %s vs %s", again, chatID)
	}

	// 4) Visitante envía mensaje
	{
		st, body := doReq(t, ts.URL, "POST", "/users/chats/messages", visitorID, map[string]any{
			"chat_id": chatID,
			"content": "Is Milo still available?",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 post message, got %d body=%s", st, string(body))
		}
	}

	// 5) Owner ve el mensaje
	{
		st, body := doReq(t, ts.URL, "GET", "/users/chats/"+chatID, ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get chat by owner, got %d body=%s", st, string(body))
		}
		var resp struct {
			Messages []struct {
				Content      string `json:"content"`
				SenderUserID string `json:"sender_user_id"`
				Seq          int64  `json:"seq"`
			} `json:"messages"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.Messages) != 1 || resp.Messages[0].Content != "Is Milo still available?" || resp.Messages[0].Seq != 1 {
			t.Fatalf("unexpected messages: %s", string(body))
		}
	}

	// 6) Un tercero no puede leer ni escribir
	{
		st, _ := doReq(t, ts.URL, "GET", "/users/chats/"+chatID, outsiderID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 get chat by outsider, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "POST", "/users/chats/messages", outsiderID, map[string]any{
			"chat_id": chatID,
			"content": "hola",
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 post message by outsider, got %d", st)
		}
		// Un chat inexistente responde igual que uno ajeno.
		st, _ = doReq(t, ts.URL, "GET", "/users/chats/does-not-exist", outsiderID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for unknown chat, got %d", st)
		}
	}

	// 7) Solo el owner cambia el estado
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/animals/"+animalID, visitorID, map[string]any{"status": "adopted"})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 status change by visitor, got %d", st)
		}
		st, body := doReq(t, ts.URL, "PATCH", "/animals/"+animalID, ownerID, map[string]any{"status": "ADOPTED"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 status change by owner, got %d body=%s", st, string(body))
		}
	}

	// 8) Ya no aparece en el catálogo, pero sí en "mis animales"
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/available", visitorID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list available, got %d", st)
		}
		if strings.Contains(string(body), animalID) {
			t.Fatalf("adopted animal still listed as available: %s", string(body))
		}

		st, body = doReq(t, ts.URL, "GET", "/animals/user", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list mine, got %d", st)
		}
		var mine []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &mine)
		if len(mine) != 1 || mine[0].ID != animalID || mine[0].Status != "adopted" {
			t.Fatalf("unexpected owner listing: %s", string(body))
		}
	}

	// 9) El chat existente sigue accesible; uno nuevo sobre un adoptado no
	{
		if again := startChat(t, ts.URL, visitorID, animalID, http.StatusOK); again != chatID {
			t.Fatalf("existing chat must stay reachable")
		}
		st, _ := doReq(t, ts.URL, "POST", "/users/chats", outsiderID, map[string]any{"animal_id": animalID})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 new chat on adopted animal, got %d", st)
		}
	}

	// 10) Listado de chats del visitante
	{
		st, body := doReq(t, ts.URL, "GET", "/users/chats", visitorID, nil)
		if st != http.StatusOK || !strings.Contains(string(body), chatID) {
			t.Fatalf("expected chat in visitor list, got %d body=%s", st, string(body))
		}
	}
}

func TestHTTP_StartChat_Rules(t *testing.T) {
	ts := newServer(t, nil)

	animalID := createAnimal(t, ts.URL, "owner-1", map[string]any{
		"name": "Luna", "type": "cat", "gender": "female", "race": "siamese",
	})

	// Owner no puede chatear consigo mismo
	if st, _ := doReq(t, ts.URL, "POST", "/users/chats", "owner-1", map[string]any{"animal_id": animalID}); st != http.StatusForbidden {
		t.Fatalf("expected 403 self chat, got %d", st)
	}
	// Animal inexistente
	if st, _ := doReq(t, ts.URL, "POST", "/users/chats", "visitor-1", map[string]any{"animal_id": "missing"}); st != http.StatusNotFound {
		t.Fatalf("expected 404 unknown animal, got %d", st)
	}
	// Sin auth
	if st, _ := doReq(t, ts.URL, "POST", "/users/chats", "", map[string]any{"animal_id": animalID}); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", st)
	}
}

func TestHTTP_StartChat_ConcurrentCallsShareOneChat(t *testing.T) {
	ts := newServer(t, nil)

	animalID := createAnimal(t, ts.URL, "owner-1", map[string]any{
		"name": "Toby", "type": "dog", "gender": "male", "race": "beagle",
	})

	const n = 8
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			st, body := doReq(t, ts.URL, "POST", "/users/chats", "visitor-1", map[string]any{"animal_id": animalID})
			if st != http.StatusOK && st != http.StatusCreated {
				t.Errorf("unexpected status %d", st)
				return
			}
			var resp struct {
				ID string `json:"id"`
			}
			_ = json.Unmarshal(body, &resp)
			ids[i] = resp.ID
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if ids[i] != ids[0] {
			t.Fatalf("expected a single chat, got %v", ids)
		}
	}
}

func TestHTTP_AdoptionReversalFlag(t *testing.T) {
	ts := newServer(t, func(c *config.Config) { c.AllowAdoptionReversal = false })

	animalID := createAnimal(t, ts.URL, "owner-1", map[string]any{
		"name": "Nina", "type": "dog", "gender": "female", "race": "poodle",
	})

	if st, _ := doReq(t, ts.URL, "PATCH", "/animals/"+animalID, "owner-1", map[string]any{"status": "adopted"}); st != http.StatusOK {
		t.Fatalf("expected 200 adopt, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "PATCH", "/animals/"+animalID, "owner-1", map[string]any{"status": "available"}); st != http.StatusConflict {
		t.Fatalf("expected 409 reversal with flag off, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "PATCH", "/animals/"+animalID, "owner-1", map[string]any{"status": "lost"}); st != http.StatusBadRequest {
		t.Fatalf("expected 400 unknown status, got %d", st)
	}
}

func TestHTTP_CreateAnimal_Multipart(t *testing.T) {
	ts := newServer(t, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range map[string]string{"name": "Bob", "type": "dog", "gender": "male", "race": "pug"} {
		_ = mw.WriteField(k, v)
	}
	for _, name := range []string{"a.png", "b.png"} {
		fw, _ := mw.CreateFormFile("pictures", name)
		_, _ = fw.Write([]byte("\x89PNG\r\n\x1a\n"))
	}
	_ = mw.Close()

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/animals", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Debug-User-ID", "owner-1")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	if res.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", res.StatusCode, string(body))
	}
	var resp struct {
		Pictures []string `json:"pictures"`
	}
	_ = json.Unmarshal(body, &resp)
	if len(resp.Pictures) != 2 || resp.Pictures[0] != "/pictures/a.png" {
		t.Fatalf("unexpected pictures: %v", resp.Pictures)
	}
}

func TestHTTP_CreateAnimal_RejectedMultipartLeavesNoFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Defaults()
	cfg.DevAuth = true
	cfg.PicturesDir = dir

	h, err := router.NewRouter(router.Options{Config: cfg})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	// Falta name, gender y race.
	st, body := postMultipart(t, ts.URL, "owner-1", map[string]string{"type": "dog"}, map[string][]byte{"a.png": png})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", st, string(body))
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Fatalf("rejected create left %d files on disk", len(entries))
	}

	// Con datos válidos la foto sí queda y se sirve.
	fields := map[string]string{"name": "Bob", "type": "dog", "gender": "male", "race": "pug"}
	st, body = postMultipart(t, ts.URL, "owner-1", fields, map[string][]byte{"a.png": png})
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}
	var resp struct {
		Pictures []string `json:"pictures"`
	}
	_ = json.Unmarshal(body, &resp)
	if len(resp.Pictures) != 1 {
		t.Fatalf("unexpected pictures: %v", resp.Pictures)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 1 {
		t.Fatalf("expected 1 file on disk, got %d", len(entries))
	}
	res, err := http.Get(ts.URL + resp.Pictures[0])
	if err != nil {
		t.Fatalf("get picture: %v", err)
	}
	_ = res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected picture to be served, got %d", res.StatusCode)
	}
}

func TestHTTP_PictureRefsOnlyFromUploads(t *testing.T) {
	ts := newServer(t, nil)

	// JSON: las referencias del cliente se ignoran.
	st, body := doReq(t, ts.URL, "POST", "/animals", "owner-1", map[string]any{
		"name": "Milo", "type": "dog", "gender": "male", "race": "mixed",
		"pictures": []string{"https://example.com/cat.png", "/pictures/someone-else.png"},
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}
	var resp struct {
		ID       string   `json:"id"`
		Pictures []string `json:"pictures"`
	}
	_ = json.Unmarshal(body, &resp)
	if len(resp.Pictures) != 0 {
		t.Fatalf("client refs must not be stored: %v", resp.Pictures)
	}

	// PATCH details: solo refs que el animal ya tiene.
	st, _ = doReq(t, ts.URL, "PATCH", "/animals/"+resp.ID+"/details", "owner-1", map[string]any{
		"pictures": []string{"/pictures/someone-else.png"},
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for foreign picture ref, got %d", st)
	}
}

func TestHTTP_UpdateStatus_ErrorOrder(t *testing.T) {
	ts := newServer(t, nil)
	animalID := createAnimal(t, ts.URL, "owner-1", map[string]any{
		"name": "Milo", "type": "dog", "gender": "male", "race": "mixed",
	})

	tests := []struct {
		name string
		user string
		path string
		want int
	}{
		{"non-owner with unknown status", "outsider-1", "/animals/" + animalID, http.StatusForbidden},
		{"missing animal with unknown status", "owner-1", "/animals/missing", http.StatusNotFound},
		{"owner with unknown status", "owner-1", "/animals/" + animalID, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, body := doReq(t, ts.URL, "PATCH", tt.path, tt.user, map[string]any{"status": "bogus"})
			if st != tt.want {
				t.Fatalf("expected %d, got %d body=%s", tt.want, st, string(body))
			}
		})
	}
}

func TestHTTP_RegisterLoginAndBearerToken(t *testing.T) {
	ts := newServer(t, func(c *config.Config) { c.DevAuth = false })

	// Registro
	st, body := doReq(t, ts.URL, "POST", "/users", "", map[string]any{
		"name": "Ana", "email": "Ana@Example.com", "password": "supersecret",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 register, got %d body=%s", st, string(body))
	}

	// Email duplicado (case-insensitive)
	if st, _ := doReq(t, ts.URL, "POST", "/users", "", map[string]any{
		"name": "Otra", "email": "ana@example.com", "password": "supersecret",
	}); st != http.StatusConflict {
		t.Fatalf("expected 409 duplicate email, got %d", st)
	}

	// Password incorrecto
	if st, _ := doReq(t, ts.URL, "POST", "/login", "", map[string]any{
		"email": "ana@example.com", "password": "wrong-password",
	}); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 wrong password, got %d", st)
	}

	st, body = doReq(t, ts.URL, "POST", "/login", "", map[string]any{
		"email": "ana@example.com", "password": "supersecret",
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 login, got %d body=%s", st, string(body))
	}
	var login struct {
		Token string `json:"token"`
		User  struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	_ = json.Unmarshal(body, &login)
	if login.Token == "" || login.User.Email != "ana@example.com" {
		t.Fatalf("unexpected login response: %s", string(body))
	}

	// El header de debug no vale fuera de DEV_AUTH
	if st, _ := doReq(t, ts.URL, "GET", "/users/me", login.User.ID, nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 with debug header and dev auth off, got %d", st)
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 /users/me with bearer, got %d", res.StatusCode)
	}
}

func TestHTTP_LoginRateLimited(t *testing.T) {
	ts := newServer(t, func(c *config.Config) {
		c.LoginRatePerMinute = 1
		c.LoginRateBurst = 2
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		st, _ := doReq(t, ts.URL, "POST", "/login", "", map[string]any{"email": "x@example.com", "password": "whatever1"})
		codes = append(codes, st)
	}
	if codes[0] != http.StatusUnauthorized || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	ts := newServer(t, nil)

	if st, body := doReq(t, ts.URL, "GET", "/health", "", nil); st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("health: %d %s", st, string(body))
	}
	st, body := doReq(t, ts.URL, "GET", "/metrics", "", nil)
	if st != http.StatusOK || !strings.Contains(string(body), "http_requests_total") {
		t.Fatalf("metrics: %d", st)
	}
}

func createAnimal(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/animals", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create animal, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" || resp.Status != "available" {
		t.Fatalf("create animal: unexpected body=%s", string(body))
	}
	return resp.ID
}

func startChat(t *testing.T, baseURL, userID, animalID string, wantStatus int) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/users/chats", userID, map[string]any{"animal_id": animalID})
	if st != wantStatus {
		t.Fatalf("expected %d start chat, got %d body=%s", wantStatus, st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("start chat: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}

func postMultipart(t *testing.T, baseURL, userID string, fields map[string]string, files map[string][]byte) (int, []byte) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	for name, data := range files {
		fw, err := mw.CreateFormFile("pictures", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		_, _ = fw.Write(data)
	}
	_ = mw.Close()

	req, err := http.NewRequest(http.MethodPost, baseURL+"/animals", &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Debug-User-ID", userID)

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	return res.StatusCode, body
}
