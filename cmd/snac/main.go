package main

import (
	"github.com/grunfink/snac-core/internal/archive"
	"github.com/grunfink/snac-core/internal/collab"
	"github.com/grunfink/snac-core/internal/config"
	"github.com/grunfink/snac-core/internal/connhandler"
	"github.com/grunfink/snac-core/internal/federation"
	"github.com/grunfink/snac-core/internal/htmlui"
	"github.com/grunfink/snac-core/internal/lifecycle"
	"github.com/grunfink/snac-core/internal/mastoapi"
	"github.com/grunfink/snac-core/internal/memuser"
	"github.com/grunfink/snac-core/internal/oauth"
	"github.com/grunfink/snac-core/internal/queueproc"
	"github.com/grunfink/snac-core/internal/statics"
	"github.com/grunfink/snac-core/internal/webfinger"
	"github.com/grunfink/snac-core/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration: %v", err)
	}

	logger.SetDebugLevel(cfg.DebugLevel)

	users := memuser.NewStore(cfg.BaseURL())
	archiver := archive.NewLog(1000)
	proc := queueproc.New()

	staticsHandler := &statics.Handler{
		Config: statics.Config{
			Host:                 cfg.Host,
			BaseURL:              cfg.BaseURL(),
			AdminEmail:           cfg.AdminEmail,
			GreetingTemplate:     cfg.GreetingTemplate,
			ShowInstanceTimeline: cfg.ShowInstanceTimeline,
		},
		Users: users,
	}
	webfingerHandler := &webfinger.Handler{Host: cfg.Host, Users: users}
	var federationHandler federation.Handler
	var htmluiHandler htmlui.Handler

	get := collab.GetHandlers{
		Statics:     staticsHandler.Get,
		Webfinger:   webfingerHandler.Get,
		ActivityPub: federationHandler.Get,
		HTML:        htmluiHandler.Get,
	}
	post := collab.PostHandlers{
		ActivityPub: federationHandler.Post,
		HTML:        htmluiHandler.Post,
	}
	var put collab.PutHandlers

	if cfg.EnableOAuth {
		var oauthHandler oauth.Handler
		get.OAuth = oauthHandler.Get
		post.OAuth = oauthHandler.Post
	}
	if cfg.EnableMastodonAPI {
		var mastoHandler mastoapi.Handler
		get.MastoAPI = mastoHandler.Get
		post.MastoAPI = mastoHandler.Post
		put.MastoAPI = mastoHandler.Put
	}

	cascades := connhandler.Cascades{GET: get.Chain(), POST: post.Chain(), PUT: put.Chain()}

	srv := lifecycle.New(cfg, users, archiver, proc, cascades)

	logger.Info("snac-core starting")
	if err := srv.Start(); err != nil {
		logger.Fatal("server error: %v", err)
	}
}
