package truetime

import (
	"errors"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type statService struct {
	queryCounter *prometheus.CounterVec
	offsetGauge  prometheus.Gauge
	rttGauge     prometheus.Gauge
	delayGauge   prometheus.Gauge
	dispGauge    prometheus.Gauge
	refDiffGauge prometheus.Gauge
}

func newStatService(cfg *Config) (s *statService) {
	queryCounter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "truetime",
		Subsystem: "queries",
		Name:      "total",
		Help:      "The total number of SNTP queries by outcome",
	}, []string{"result"})
	prometheus.MustRegister(queryCounter)

	offsetGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "truetime",
		Subsystem: "stat",
		Name:      "offset_ms",
		Help:      "The clock offset of the last accepted response",
	})
	prometheus.MustRegister(offsetGauge)

	rttGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "truetime",
		Subsystem: "stat",
		Name:      "round_trip_ms",
		Help:      "The round trip delay of the last accepted response",
	})
	prometheus.MustRegister(rttGauge)

	delayGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "truetime",
		Subsystem: "stat",
		Name:      "root_delay_ms",
		Help:      "The root delay reported by the server",
	})
	prometheus.MustRegister(delayGauge)

	dispGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "truetime",
		Subsystem: "stat",
		Name:      "root_dispersion_ms",
		Help:      "The root dispersion reported by the server",
	})
	prometheus.MustRegister(dispGauge)

	refDiffGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "truetime",
		Subsystem: "stat",
		Name:      "reference_diff_ms",
		Help:      "Difference between our offset and the reference library's",
	})
	prometheus.MustRegister(refDiffGauge)

	http.Handle("/metrics", promhttp.Handler())
	log.Printf("truetime: listen metric: %s", cfg.Stats.PromAddr)
	go http.ListenAndServe(cfg.Stats.PromAddr, nil)

	s = &statService{
		queryCounter: queryCounter,
		offsetGauge:  offsetGauge,
		rttGauge:     rttGauge,
		delayGauge:   delayGauge,
		dispGauge:    dispGauge,
		refDiffGauge: refDiffGauge,
	}
	return s
}

func (s *statService) observe(resp *Response) {
	if s == nil {
		return
	}
	s.queryCounter.WithLabelValues("ok").Inc()
	s.offsetGauge.Set(float64(resp.ClockOffset()))
	s.rttGauge.Set(float64(resp.RoundTripDelay()))
	s.delayGauge.Set(shortToMillis(resp.RootDelay))
	s.dispGauge.Set(shortToMillis(resp.RootDispersion))
}

func (s *statService) observeErr(err error) {
	if s == nil {
		return
	}
	var inv *InvalidResponseError
	if errors.As(err, &inv) {
		s.queryCounter.WithLabelValues("invalid_" + inv.Field).Inc()
		return
	}
	s.queryCounter.WithLabelValues("network_error").Inc()
}
