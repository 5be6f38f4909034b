package http

import (
	"net/http"

	"github.com/mauv0809/courtside/internal/config"
	"github.com/mauv0809/courtside/internal/court"
	"github.com/mauv0809/courtside/internal/http/handlers"
	"github.com/mauv0809/courtside/internal/inbox"
	"github.com/mauv0809/courtside/internal/match"
	"github.com/mauv0809/courtside/internal/processor"
	"github.com/mauv0809/courtside/internal/profile"
)

type Server struct {
	Matches        *match.Service
	Courts         court.Store
	Inbox          inbox.Store
	Profiles       profile.Store
	Processor      *processor.Processor
	DB             handlers.Pinger
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}
