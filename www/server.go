package www

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/icodeforyou/fasce-go/config"
	"github.com/icodeforyou/fasce-go/database"
	"github.com/icodeforyou/fasce-go/holiday"
	"github.com/icodeforyou/fasce-go/task"
)

type Server struct {
	logger *slog.Logger
	config config.AppConfigApi
	db     *database.Database
	cache  *database.YearCache
	cal    *holiday.Calendar
	hub    *Hub
	tm     *TemplateManager
}

//go:embed static
var embeddedStaticDir embed.FS

func StartServer(
	db *database.Database,
	cache *database.YearCache,
	cal *holiday.Calendar,
	tasks *task.Tasks,
	cnfg *config.AppConfig,
) *Server {
	logger := slog.Default().With("module", "www")
	tm, err := NewTemplateManager(logger, cnfg.Api.WwwDir)
	if err != nil {
		logger.Error("template manager initialization error", slog.Any("error", err))
	}

	s := &Server{
		logger: logger,
		config: cnfg.Api,
		db:     db,
		cache:  cache,
		cal:    cal,
		hub:    NewHub(logger),
		tm:     tm,
	}

	go s.hub.Run()

	logReqMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.logger.Debug("http request",
				slog.String("method", r.Method),
				slog.String("url", r.URL.String()),
				slog.String("remoteAddr", r.RemoteAddr))
			next.ServeHTTP(w, r)
		})
	}

	http.Handle("/", staticFilesHandler(cnfg.Api.WwwDir))

	http.Handle("/bands", logReqMW(NewBandsHandler(
		logger.With(slog.String("handler", "bands")),
		s.db,
		s.cache,
		s.cal,
		s.tm,
		cnfg.Tariff,
		tasks.RefreshTask)))

	http.Handle("/upload", logReqMW(NewUploadHandler(
		logger.With(slog.String("handler", "upload")),
		s.cal,
		s.tm,
		cnfg.Tariff)))

	http.Handle("/chart", logReqMW(NewChartHandler(
		logger.With(slog.String("handler", "chart")),
		s.cache,
		s.cal,
		cnfg.Tariff)))

	http.Handle("/report.xlsx", logReqMW(NewReportHandler(
		logger.With(slog.String("handler", "report")),
		s.cache,
		s.cal,
		cnfg.Tariff,
		ReportFormatXLSX)))

	http.Handle("/report.pdf", logReqMW(NewReportHandler(
		logger.With(slog.String("handler", "report")),
		s.cache,
		s.cal,
		cnfg.Tariff,
		ReportFormatPDF)))

	http.Handle("/log", logReqMW(NewLogHandler(
		logger.With(slog.String("handler", "log")),
		s.db,
		s.tm)))

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		name := r.Header.Get("User-Agent")
		client, err := NewClient(s.hub, w, r, name)
		if err != nil {
			s.logger.Error("new websocket client failed", slog.Any("error", err))
			return
		}
		s.hub.Register <- client
		go client.WritePump()
	})

	return s
}

// NotifyRefresh pushes a notice to connected clients after the refresh
// task rewrote one or more years, so they can reload their current
// selection.
func (s *Server) NotifyRefresh(years []int) {
	if len(years) == 0 {
		return
	}

	buf, err := s.tm.Execute("refresh_notice.html", struct{ Years []int }{Years: years})
	if err != nil {
		s.logger.Error("template execution failed", slog.Any("error", err))
		return
	}

	s.hub.Broadcast <- buf.Bytes()
}

func (s *Server) Run(ctx context.Context) {
	s.logger.Info("starting server...", "port", s.config.Port)
	srv := &http.Server{
		Addr: fmt.Sprintf("%s:%d", s.config.Address, s.config.Port),
	}

	srvErrors := make(chan error, 1)

	go func() {
		srvErrors <- srv.ListenAndServe()
	}()

	for {
		select {
		case err := <-srvErrors:
			if err != nil {
				s.logger.Error("server error", slog.Any("error", err))
			}

		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("server shutdown failed", slog.Any("error", err))
			}
			return
		}
	}
}

func staticFilesHandler(extDir *string) http.Handler {
	if extDir != nil && *extDir != "" {
		staticDir := path.Join(*extDir, "static")
		if _, err := os.Stat(staticDir); err == nil {
			return http.FileServer(http.Dir(staticDir))
		}
	}

	fsys, err := fs.Sub(embeddedStaticDir, "static")
	if err != nil {
		log.Panic(err)
	}
	return http.FileServer(http.FS(fsys))
}
