// quillpress web
// The presentation layer for the quillpress blogging platform: all data
// lives behind the blog REST API, this process renders it and manages the
// reader's session.

package main

import (
	"go.uber.org/fx"

	"github.com/mkoller-dev/quillpress/internal/blogapi"
	"github.com/mkoller-dev/quillpress/internal/components/posts"
	"github.com/mkoller-dev/quillpress/internal/components/session"
	"github.com/mkoller-dev/quillpress/internal/server"
	"github.com/mkoller-dev/quillpress/internal/shared/apiclient"
	"github.com/mkoller-dev/quillpress/internal/shared/config"
	"github.com/mkoller-dev/quillpress/internal/shared/logging"
)

func main() {
	fx.New(
		fx.Provide(
			config.NewConfig,
			logging.NewLogger,
			apiclient.New,
			blogapi.NewClient,
			server.NewServer,
			server.NewHealthSrvc,
			server.NewHealthHandler,
			posts.NewService,
			fx.Annotate(posts.NewRouter, fx.ResultTags(`name:"postsRouter"`)),
			session.NewService,
			session.NewRouter,
		),
		fx.Invoke((*server.Server).Start),
	).Run()
}
