// Command groundtrack propagates a satellite from a TLE with SGP4 and maps
// its ground track through a spherical tessellation, logging every cell
// transition. It demonstrates building an index, point location, covering
// queries over the satellite footprint, and the metrics/tracing wiring.
package main

import (
	"context"
	"errors"
	"flag"
	"math"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang/geo/s1"
	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/signalsfoundry/spheretess/internal/logging"
	"github.com/signalsfoundry/spheretess/internal/observability"
	"github.com/signalsfoundry/spheretess/sphere"
	"github.com/signalsfoundry/spheretess/stopctrl"
	"github.com/signalsfoundry/spheretess/timectrl"
)

// ISS (ZARYA) reference TLE, used when no TLE flags are given.
const (
	defaultTLE1 = "1 25544U 98067A   21275.59097222  .00000204  00000-0  10270-4 0  9990"
	defaultTLE2 = "2 25544  51.6459 115.9059 0001817  61.3028  35.9198 15.49370953257760"
)

func main() {
	depth := flag.Int("depth", 8, "tessellation subdivision depth")
	duration := flag.Duration("duration", 10*time.Minute, "ground-track duration")
	step := flag.Duration("step", 10*time.Second, "propagation step")
	footprintKm := flag.Float64("footprint-km", 1000, "footprint radius for covering queries, 0 to disable")
	coverDepth := flag.Int("cover-depth", 5, "tessellation depth for footprint covering queries")
	realtime := flag.Bool("realtime", false, "pace steps against the wall clock instead of free-running")
	metricsAddr := flag.String("metrics-addr", "", "address for the /metrics endpoint, empty to disable")
	tle1 := flag.String("tle1", defaultTLE1, "TLE line 1")
	tle2 := flag.String("tle2", defaultTLE2, "TLE line 2")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := logging.ContextWithLogger(context.Background(), log)

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "tracing init failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(ctx, shutdownTracing, log)

	collector, err := observability.NewIndexCollector(nil)
	if err != nil {
		log.Error(ctx, "metrics init failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		go func() {
			log.Info(ctx, "metrics listening", logging.String("addr", *metricsAddr))
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.Error(ctx, "metrics server failed", logging.String("error", err.Error()))
			}
		}()
	}

	trig := stopctrl.NewTrigger()
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Info(ctx, "stop requested")
		trig.Stop()
	}()

	ts, err := sphere.NewWithConfig(ctx, sphere.Config{
		Depth:    *depth,
		Stop:     trig.Token(),
		Logger:   log,
		Observer: collector,
	})
	if err != nil {
		log.Error(ctx, "tessellation build failed", logging.String("error", err.Error()))
		os.Exit(1)
	}

	sat := satellite.TLEToSat(*tle1, *tle2, satellite.GravityWGS72)
	footprint := s1.Angle(*footprintKm / sphere.EarthRadiusKm)

	mode := timectrl.Accelerated
	if *realtime {
		mode = timectrl.RealTime
	}
	stepper := timectrl.NewStepper(time.Now().UTC(), *step, mode)

	var lastCell sphere.Address
	err = stepper.Run(*duration, trig.Token(), func(t time.Time) error {
		p := subpoint(sat, t)
		cell, err := ts.Locate(p, *depth)
		if err != nil {
			return err
		}

		if !cell.Address.Equal(lastCell) {
			log.Info(ctx, "cell transition",
				logging.Any("time", t.Format(time.RFC3339)),
				logging.Float64("lat", p.Lat),
				logging.Float64("lon", p.Lon),
				logging.String("cell", cell.Address.String()),
				logging.Any("packed", cell.Address.Pack64()))
			lastCell = cell.Address
		}

		if *footprintKm > 0 {
			fp := sphere.Cap{Center: p, DomeRadius: footprint}
			leaves, err := ts.CoveringCap(fp, *coverDepth, trig.Token())
			if err != nil {
				return err
			}
			log.Debug(ctx, "footprint covering",
				logging.Int("leaves", len(leaves)),
				logging.Int("depth", *coverDepth))
		}
		return nil
	})
	switch {
	case errors.Is(err, stopctrl.ErrStopped):
		log.Info(ctx, "ground track stopped")
	case err != nil:
		log.Error(ctx, "ground track failed", logging.String("error", err.Error()))
		os.Exit(1)
	default:
		log.Info(ctx, "ground track complete",
			logging.Any("duration", *duration),
			logging.Int("depth", *depth))
	}
}

// subpoint propagates the satellite to t and returns the surface coordinate
// directly beneath it. go-satellite yields ECI kilometers; rotating by GMST
// gives ECEF, whose direction from the geocenter is the subpoint.
func subpoint(sat satellite.Satellite, t time.Time) sphere.LatLon {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	posECI, _ := satellite.Propagate(sat, year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(satellite.JDay(year, int(month), day, hour, min, sec))
	pos := satellite.ECIToECEF(posECI, gmst)

	return latLonFromECEF(pos.X, pos.Y, pos.Z)
}

// latLonFromECEF converts an ECEF position to spherical (geocentric) lat/lon
// degrees. ECEF x points at lon 0 on the equator, z at the north pole.
func latLonFromECEF(x, y, z float64) sphere.LatLon {
	r := math.Sqrt(x*x + y*y + z*z)
	if r == 0 {
		return sphere.EmptyLatLon()
	}
	return sphere.LatLon{
		Lat: math.Asin(z/r) * 180 / math.Pi,
		Lon: math.Atan2(y, x) * 180 / math.Pi,
	}.Normalize()
}
