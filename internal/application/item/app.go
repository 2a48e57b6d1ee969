package itemapp

import (
	itemcmd "gitlab.com/campusfound/campusfound-backend/internal/application/item/cmd"
	itemquery "gitlab.com/campusfound/campusfound-backend/internal/application/item/query"
)

type App struct {
	Command Command
	Query   *itemquery.Handler
}

type Command struct {
	Report        *itemcmd.ReportHandler
	Resolve       *itemcmd.ResolveHandler
	IngestMatches *itemcmd.IngestMatchesHandler
}

type Args struct {
	ItemRepo     itemcmd.ItemRepo
	ItemReader   itemquery.ItemReader
	PhotoStorage itemcmd.PhotoStorage
	PhotoBaseURL string
}

func NewApp(args Args) *App {
	return &App{
		Command: Command{
			Report: itemcmd.NewReportHandler(itemcmd.ReportHandlerArgs{
				ItemRepo:     args.ItemRepo,
				Storage:      args.PhotoStorage,
				PhotoBaseURL: args.PhotoBaseURL,
			}),
			Resolve: itemcmd.NewResolveHandler(itemcmd.ResolveHandlerArgs{
				ItemRepo: args.ItemRepo,
			}),
			IngestMatches: itemcmd.NewIngestMatchesHandler(itemcmd.IngestMatchesHandlerArgs{
				ItemRepo: args.ItemRepo,
			}),
		},
		Query: itemquery.NewHandler(itemquery.HandlerArgs{
			Reader: args.ItemReader,
		}),
	}
}
