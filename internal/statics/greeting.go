package statics

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/grunfink/snac-core/internal/collab"
)

// renderGreeting substitutes %host%, %admin_email% and %userlist% into a
// greeting template, reimplementing original_source/httpd.c's
// greeting_html() without the file-open step: the template is supplied
// directly by config rather than read from a greeting.html on disk.
func renderGreeting(ctx context.Context, template, host, adminEmail string, users collab.Users) string {
	s := template

	if adminEmail == "" {
		adminEmail = "the administrator of this instance"
	}

	s = strings.ReplaceAll(s, "%host%", host)
	s = strings.ReplaceAll(s, "%admin_email%", adminEmail)

	if strings.Contains(s, "%userlist%") {
		s = strings.ReplaceAll(s, "%userlist%", renderUserList(ctx, host, users))
	}

	return s
}

func renderUserList(ctx context.Context, host string, users collab.Users) string {
	var b strings.Builder
	b.WriteString("<ul class=\"snac-user-list\">\n")

	uids, err := users.List(ctx)
	if err == nil {
		for _, uid := range uids {
			u, err := users.Open(ctx, uid)
			if err != nil {
				continue
			}
			fmt.Fprintf(&b, "<li><a href=\"%s\">@%s@%s (%s)</a></li>\n",
				html.EscapeString(u.ActorURL()), html.EscapeString(uid), html.EscapeString(host),
				html.EscapeString(u.DisplayName()))
		}
	}

	b.WriteString("</ul>\n")
	return b.String()
}
