package main

import (
	"bbs/internal/app"
	"bbs/internal/client"
	"bbs/internal/config"
	"bbs/internal/logging"
)

type apiFactory func(cfg config.CoreConfig, logger logging.Logger) app.BoardAPI

func newBoardClient(cfg config.CoreConfig, logger logging.Logger) app.BoardAPI {
	return client.New(cfg, logger)
}
