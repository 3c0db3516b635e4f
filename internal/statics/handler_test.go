package statics

import (
	"context"
	"strings"
	"testing"

	"github.com/grunfink/snac-core/internal/collab"
	"github.com/grunfink/snac-core/internal/httpcore"
)

type stubUser struct{ handle string }

func (u stubUser) Handle() string      { return u.handle }
func (u stubUser) DisplayName() string { return u.handle }
func (u stubUser) ActorURL() string    { return "https://test.example/users/" + u.handle }

type stubUsers struct{ uids []string }

func (s stubUsers) List(context.Context) ([]string, error) { return s.uids, nil }
func (s stubUsers) Open(_ context.Context, uid string) (collab.User, error) {
	return stubUser{handle: uid}, nil
}

func newHandler() *Handler {
	return &Handler{
		Config: Config{
			Host:             "test.example",
			BaseURL:          "https://test.example",
			GreetingTemplate: "hi from %host%, admin is %admin_email%",
		},
		Users: stubUsers{uids: []string{"alice"}},
	}
}

// TestGet_RootServesGreeting verifies the empty path renders the
// greeting template with substitutions applied.
func TestGet_RootServesGreeting(t *testing.T) {
	h := newHandler()
	resp, ok := h.Get(&httpcore.Request{}, "")
	if !ok || resp.Status != 200 {
		t.Fatalf("expected claimed 200, got ok=%v status=%d", ok, resp.Status)
	}
	if !strings.Contains(string(resp.Body), "hi from test.example") {
		t.Errorf("expected %%host%% substituted, got %q", resp.Body)
	}
}

// TestGet_AvatarRoutesServePNG verifies both avatar aliases return the
// same embedded PNG with an image content type.
func TestGet_AvatarRoutesServePNG(t *testing.T) {
	h := newHandler()
	for _, p := range []string{"/susie.png", "/favicon.ico"} {
		resp, ok := h.Get(&httpcore.Request{}, p)
		if !ok || resp.Status != 200 || resp.ContentType != "image/png" {
			t.Errorf("path %s: expected 200 image/png, got ok=%v status=%d ctype=%s", p, ok, resp.Status, resp.ContentType)
		}
	}
}

// TestGet_NodeinfoDiscoveryPointsAtNodeinfo20 verifies the well-known
// document links to /nodeinfo_2_0 under the configured base URL.
func TestGet_NodeinfoDiscoveryPointsAtNodeinfo20(t *testing.T) {
	h := newHandler()
	resp, ok := h.Get(&httpcore.Request{}, "/.well-known/nodeinfo")
	if !ok || resp.Status != 200 {
		t.Fatalf("expected claimed 200, got ok=%v", ok)
	}
	if !strings.Contains(string(resp.Body), "https://test.example/nodeinfo_2_0") {
		t.Errorf("expected href to nodeinfo_2_0, got %s", resp.Body)
	}
}

// TestGet_Nodeinfo20ReportsUserCount verifies the usage block reflects
// the number of local users.
func TestGet_Nodeinfo20ReportsUserCount(t *testing.T) {
	h := newHandler()
	resp, ok := h.Get(&httpcore.Request{}, "/nodeinfo_2_0")
	if !ok || resp.Status != 200 {
		t.Fatalf("expected claimed 200, got ok=%v", ok)
	}
	if !strings.Contains(string(resp.Body), `"total":1`) {
		t.Errorf("expected total user count of 1, got %s", resp.Body)
	}
}

// TestGet_RobotsDisallowsEverything verifies the robots.txt route.
func TestGet_RobotsDisallowsEverything(t *testing.T) {
	h := newHandler()
	resp, ok := h.Get(&httpcore.Request{}, "/robots.txt")
	if !ok || resp.Status != 200 || !strings.Contains(string(resp.Body), "Disallow: /") {
		t.Errorf("expected robots.txt disallow-all body, got ok=%v body=%s", ok, resp.Body)
	}
}

// TestGet_UnknownPathDeclines verifies unmatched paths fall through the
// cascade instead of being claimed.
func TestGet_UnknownPathDeclines(t *testing.T) {
	h := newHandler()
	_, ok := h.Get(&httpcore.Request{}, "/users/alice")
	if ok {
		t.Error("expected decline for an unrelated path")
	}
}
