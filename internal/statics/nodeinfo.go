package statics

import (
	"context"
	"encoding/json"

	"github.com/grunfink/snac-core/internal/collab"
)

const nodeinfoVersion = "1.0"

type nodeinfoUsage struct {
	Users struct {
		Total         int `json:"total"`
		ActiveMonth   int `json:"activeMonth"`
		ActiveHalfyear int `json:"activeHalfyear"`
	} `json:"users"`
	LocalPosts int `json:"localPosts"`
}

type nodeinfoDoc struct {
	Version  string `json:"version"`
	Software struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"software"`
	Protocols         []string               `json:"protocols"`
	Services          map[string][]string    `json:"services"`
	Usage             nodeinfoUsage          `json:"usage"`
	OpenRegistrations bool                   `json:"openRegistrations"`
	Metadata          map[string]interface{} `json:"metadata"`
}

// buildNodeinfo mirrors original_source/httpd.c's nodeinfo_2_0(): local
// post counts aren't tracked by this core ("to be implemented someday"
// in the source), so localPosts stays 0.
func buildNodeinfo(ctx context.Context, users collab.Users) ([]byte, error) {
	uids, err := users.List(ctx)
	if err != nil {
		return nil, err
	}

	doc := nodeinfoDoc{
		Version:           "2.0",
		Protocols:         []string{"activitypub"},
		Services:          map[string][]string{"outbound": {}, "inbound": {}},
		Metadata:          map[string]interface{}{},
		OpenRegistrations: false,
	}
	doc.Software.Name = "snac"
	doc.Software.Version = nodeinfoVersion
	doc.Usage.Users.Total = len(uids)
	doc.Usage.Users.ActiveMonth = len(uids)
	doc.Usage.Users.ActiveHalfyear = len(uids)

	return json.Marshal(doc)
}
