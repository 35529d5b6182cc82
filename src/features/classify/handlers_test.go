package classify

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	RegisterRoutes(app, NewService(nil))
	return app
}

func postClassify(t *testing.T, app *fiber.App, body string) (int, BatchResponse) {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/classify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var out BatchResponse
	if resp.StatusCode == fiber.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode, out
}

func TestPostClassify(t *testing.T) {
	app := newTestApp()
	status, out := postClassify(t, app, `{"events":[
		{"path":"/a","flags":256},
		{"path":"/b","names":["ItemCreated","ItemModified"]},
		{"path":"/c","flags":1024},
		{"path":"/d","flags":0}
	]}`)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if out.Batch == "" {
		t.Error("expected batch id")
	}
	if len(out.Results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(out.Results))
	}

	a, b, c, d := out.Results[0], out.Results[1], out.Results[2], out.Results[3]
	if !a.NewFile || a.Kind != "created" {
		t.Errorf("/a: %+v", a)
	}
	if b.NewFile || !b.Modified || b.Flags != 0x1100 {
		t.Errorf("/b: %+v", b)
	}
	if !c.Touched || !c.Modified || c.Kind != "touched" {
		t.Errorf("/c: %+v", c)
	}
	if d.NewFile || d.Modified || d.Touched || d.Removed || d.Kind != "none" {
		t.Errorf("/d: %+v", d)
	}
}

func TestPostClassify_BadRequests(t *testing.T) {
	app := newTestApp()
	for name, body := range map[string]string{
		"malformed":    `{"events":[`,
		"empty path":   `{"events":[{"path":"","flags":256}]}`,
		"unknown name": `{"events":[{"path":"/a","names":["ItemExploded"]}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			if status, _ := postClassify(t, app, body); status != fiber.StatusBadRequest {
				t.Errorf("expected 400, got %d", status)
			}
		})
	}
}

func TestGetFlags(t *testing.T) {
	resp, err := newTestApp().Test(httptest.NewRequest("GET", "/api/flags", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var flags []FlagResponse
	if err := json.NewDecoder(resp.Body).Decode(&flags); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(flags) == 0 {
		t.Fatal("expected flag table")
	}
	found := false
	for _, f := range flags {
		if f.Name == "ItemCreated" && f.Value == 0x100 {
			found = true
		}
	}
	if !found {
		t.Error("expected ItemCreated=0x100 in flag table")
	}
}
