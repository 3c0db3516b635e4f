// Package metrics instruments the job queue, worker pool, and
// background driver with Prometheus metrics, exposed by internal/admin.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "snac_core"

var (
	// QueueDepthGauge tracks the current depth of the job queue.
	QueueDepthGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "job_queue_depth",
		Help:      "Current number of jobs waiting in the job queue",
	})

	// ActiveWorkersGauge tracks how many workers are currently
	// processing a job (connection or queue item).
	ActiveWorkersGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_workers",
		Help:      "Current number of workers actively processing a job",
	})

	// JobsProcessedCounter counts jobs a worker finished without error,
	// labeled by kind ("connection" or "queue_item").
	JobsProcessedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_processed_total",
		Help:      "Total number of jobs processed by the worker pool",
	}, []string{"kind"})

	// JobsFailedCounter counts jobs a worker could not complete.
	JobsFailedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_failed_total",
		Help:      "Total number of jobs that failed while being processed",
	}, []string{"kind"})

	// CascadeDispatchCounter counts requests by method and final status.
	// Unattended requests are counted under 404, the status they are
	// answered with.
	CascadeDispatchCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cascade_dispatch_total",
		Help:      "Total number of requests dispatched through the handler cascade",
	}, []string{"method", "status"})

	// BackgroundScanCounter counts items the background driver promoted
	// into the job queue per scan cycle.
	BackgroundScanCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "background_scan_items_total",
		Help:      "Total number of queue items promoted by the background driver",
	})

	// PurgePostedCounter counts how many purge items the background
	// driver has posted.
	PurgePostedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purge_posted_total",
		Help:      "Total number of purge queue items posted by the background driver",
	})
)
