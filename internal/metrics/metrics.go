// Package metrics define las métricas Prometheus del pipeline. Paquete
// standalone para evitar ciclos de import entre delivery y HTTP.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CertificatesRendered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "certificates_rendered_total",
		Help: "Certificados renderizados",
	})

	EmailsSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "emails_sent_total",
		Help: "Envíos de email por modo y resultado",
	}, []string{"mode", "outcome"})

	SendDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "email_send_duration_ms",
		Help:    "Duración de cada envío en milisegundos",
		Buckets: prometheus.ExponentialBuckets(10, 2, 10),
	})
)

// Register registra las métricas en el registry dado (default si es nil).
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{CertificatesRendered, EmailsSent, SendDuration} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
