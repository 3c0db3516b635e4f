// Package statics implements server_get_handler from
// original_source/httpd.c: the fixed set of GET routes the core answers
// itself, without delegating to any collaborator (spec.md §6 table).
package statics

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/grunfink/snac-core/internal/collab"
	"github.com/grunfink/snac-core/internal/httpcore"
	"github.com/grunfink/snac-core/pkg/logger"
)

// Config carries the instance-wide values the statics handler needs.
// ShowInstanceTimeline mirrors the source's config flag of the same
// name; rendering an actual timeline is out of scope here (spec.md §1
// excludes federation semantics from the core), so when set it falls
// back to the greeting template rather than failing the request.
type Config struct {
	Host                  string
	BaseURL               string
	AdminEmail            string
	GreetingTemplate      string
	ShowInstanceTimeline  bool
}

// Handler serves the server statics table.
type Handler struct {
	Config Config
	Users  collab.Users
}

var avatarPNG []byte

func init() {
	b, err := base64.StdEncoding.DecodeString(defaultAvatarBase64)
	if err != nil {
		// the constant is a fixed literal; a decode failure here is a
		// packaging bug, not a runtime condition.
		panic("statics: default avatar base64 is invalid: " + err.Error())
	}
	avatarPNG = b
}

// Get implements cascade.Handler for server_get_handler's fixed routes.
func (h *Handler) Get(req *httpcore.Request, path string) (httpcore.Response, bool) {
	ctx := context.Background()

	switch {
	case path == "":
		body := renderGreeting(ctx, h.Config.GreetingTemplate, h.Config.Host, h.Config.AdminEmail, h.Users)
		if h.Config.ShowInstanceTimeline {
			logger.Debug(2, "statics: show_instance_timeline is set but timeline rendering is out of scope; serving greeting instead")
		}
		resp := httpcore.NewResponse(200, []byte(body))
		resp.ContentType = "text/html; charset=utf-8"
		return resp, true

	case path == "/susie.png" || path == "/favicon.ico":
		resp := httpcore.NewResponse(200, avatarPNG)
		resp.ContentType = "image/png"
		return resp, true

	case path == "/.well-known/nodeinfo":
		body := fmt.Sprintf(`{"links":[{"rel":"http://nodeinfo.diaspora.software/ns/schema/2.0","href":"%s/nodeinfo_2_0"}]}`, h.Config.BaseURL)
		resp := httpcore.NewResponse(200, []byte(body))
		resp.ContentType = "application/json; charset=utf-8"
		return resp, true

	case path == "/nodeinfo_2_0":
		body, err := buildNodeinfo(ctx, h.Users)
		if err != nil {
			logger.Error("statics: build nodeinfo: %v", err)
			return httpcore.Response{}, false
		}
		resp := httpcore.NewResponse(200, body)
		resp.ContentType = "application/json; charset=utf-8"
		return resp, true

	case path == "/robots.txt":
		resp := httpcore.NewResponse(200, []byte("User-agent: *\nDisallow: /\n"))
		resp.ContentType = "text/plain"
		return resp, true
	}

	return httpcore.Response{}, false
}
