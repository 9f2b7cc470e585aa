package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/classbook/classbook-backend/internal/business/classes"
	"github.com/classbook/classbook-backend/internal/model"
)

type Api struct {
	handler http.Handler
	logger  *zap.SugaredLogger

	classes  classesService
	notifier cancellationNotifier
}

type classesService interface {
	CreateSeries(ctx context.Context, info *model.SeriesCreate) (*model.Series, error)
	GetSeriesByID(ctx context.Context, id int64) (*classes.SeriesWithExceptions, error)
	GetSeriesByOwner(ctx context.Context, ownerID int64) ([]*classes.SeriesWithExceptions, error)
	GetInstances(ctx context.Context, filter model.InstancesFilter) ([]*model.Occurrence, error)
	UpdateSeries(ctx context.Context, id int64, upd *model.SeriesUpdate) (*model.Series, error)
	DeleteSeries(ctx context.Context, id int64, del *model.SeriesDelete) error
	UpsertException(ctx context.Context, exc *model.Exception) error
	DeleteException(ctx context.Context, seriesID int64, date time.Time) error
}

type cancellationNotifier interface {
	SendClassCancellation(ctx context.Context, ser *model.Series, date time.Time, reason string) error
}

func NewApi(
	logger *zap.SugaredLogger,
	classes classesService,
	notifier cancellationNotifier,
) (*Api, error) {
	a := &Api{
		logger:   logger,
		classes:  classes,
		notifier: notifier,
	}
	a.setupHandler()

	return a, nil
}

func (a *Api) setupHandler() {
	middleware.DefaultLogger = func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.logger.Debugw(r.URL.RequestURI(),
				"addr", r.RemoteAddr,
				"protocol", r.Proto,
				"method", r.Method,
			)
			next.ServeHTTP(w, r)
		})
	}

	r := chi.NewMux()

	r.Use(middleware.Logger, middleware.Recoverer, middleware.StripSlashes)
	r.NotFound(a.notFoundResponse)
	r.MethodNotAllowed(a.methodNotAllowedResponse)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/classes", func(r chi.Router) {
		r.Post("/", a.createClassHandler)
		r.Get("/instances", a.getInstancesHandler)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", a.getClassHandler)
			r.Put("/", a.updateClassHandler)
			r.Delete("/", a.deleteClassHandler)

			r.Post("/exceptions", a.upsertExceptionHandler)
			r.Delete("/exceptions/{date}", a.deleteExceptionHandler)
		})
	})

	r.Get("/owners/{id}/classes", a.getOwnerClassesHandler)

	a.handler = r
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}
