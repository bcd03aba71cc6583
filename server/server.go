package server

import (
	"context"
	"encoding/json"
	"fmt"
	stdlog "log"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/fasthttp/router"
	"github.com/paulmach/orb"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/royalcat/geoscatter/internal/telemetry"
)

const MaxBodySize = 32 * 1000 * 1000 // 32MB

var meter = otel.Meter("github.com/royalcat/geoscatter/server")

func Run(ctx context.Context, address string, store *PointStore) error {
	if err := telemetry.Setup(ctx); err != nil {
		return fmt.Errorf("failed to initialize otel metrics: %w", err)
	}

	log := slog.Default()

	metricBoundCallCount, err := meter.Int64Counter("http_bound_call_total")
	if err != nil {
		return err
	}
	metricPointsReturned, err := meter.Int64Counter("points_returned_total")
	if err != nil {
		return err
	}
	s := &server{
		store: store,

		metricBoundCallCount: metricBoundCallCount,
		metricPointsReturned: metricPointsReturned,
	}

	r := router.New()
	r.GET("/points/bound/{minx}/{miny}/{maxx}/{maxy}", s.PointsInBoundHandler)
	r.GET("/points/stats", s.StatsHandler)
	r.Handle(http.MethodGet, "/metrics", fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()))

	server := &fasthttp.Server{
		ReadTimeout:        time.Second,
		MaxRequestBodySize: MaxBodySize,
		Handler:            r.Handler,
	}

	go func() {
		log.Info("Server listening", "address", address)
		if err := server.ListenAndServe(address); err != http.ErrServerClosed {
			stdlog.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	slog.Info("Server started")

	// wait cancel
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return server.ShutdownWithContext(shutdownCtx)
}

type server struct {
	store *PointStore

	metricBoundCallCount metric.Int64Counter
	metricPointsReturned metric.Int64Counter
}

func (s *server) PointsInBoundHandler(ctx *fasthttp.RequestCtx) {
	s.metricBoundCallCount.Add(ctx, 1)

	var coords [4]float64
	for i, name := range []string{"minx", "miny", "maxx", "maxy"} {
		v, err := strconv.ParseFloat(ctx.UserValue(name).(string), 64)
		if err != nil {
			ctx.Response.SetStatusCode(http.StatusBadRequest)
			return
		}
		coords[i] = v
	}

	points := s.store.QueryBound(orb.Bound{
		Min: orb.Point{coords[0], coords[1]},
		Max: orb.Point{coords[2], coords[3]},
	})
	s.metricPointsReturned.Add(ctx, int64(len(points)))

	out, err := points.MarshalJSON()
	if err != nil {
		ctx.Response.SetStatusCode(http.StatusInternalServerError)
		ctx.Response.SetBodyString("failed to marshal response")
		return
	}

	ctx.Response.SetStatusCode(http.StatusOK)
	ctx.Response.SetBody(out)
}

type statsResponse struct {
	TotalPoints     int           `json:"total_points"`
	Polygons        int           `json:"polygons"`
	PointsByPolygon map[int64]int `json:"points_by_polygon"`
}

func (s *server) StatsHandler(ctx *fasthttp.RequestCtx) {
	counts := s.store.CountByPolygon()

	out, err := json.Marshal(statsResponse{
		TotalPoints:     s.store.Len(),
		Polygons:        len(counts),
		PointsByPolygon: counts,
	})
	if err != nil {
		ctx.Response.SetStatusCode(http.StatusInternalServerError)
		return
	}

	ctx.Response.SetStatusCode(http.StatusOK)
	ctx.Response.SetBody(out)
}
