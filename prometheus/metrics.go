package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"hostel-service/pkg/config"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Entity operation metrics
	RoomOperationsCounter    prometheus.CounterVec
	StudentOperationsCounter prometheus.CounterVec
	PaymentOperationsCounter prometheus.CounterVec

	// Occupancy metrics
	RoomOccupancyGauge prometheus.GaugeVec

	// Capacity rejection metrics
	CapacityRejectionsCounter prometheus.Counter
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	prefix := config.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	RoomOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_room_operations_total",
			Help: "Total number of room operations",
		},
		[]string{"operation"},
	)

	StudentOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_student_operations_total",
			Help: "Total number of student operations",
		},
		[]string{"operation"},
	)

	PaymentOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_payment_operations_total",
			Help: "Total number of payment operations",
		},
		[]string{"operation"},
	)

	RoomOccupancyGauge = *promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: prefix + "_room_occupancy",
			Help: "Current number of students assigned to each room",
		},
		[]string{"room_id", "room_number"},
	)

	CapacityRejectionsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_capacity_rejections_total",
			Help: "Total number of assignments rejected because a room was full",
		},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordRoomOperation increments the counter for room operations
func RecordRoomOperation(operation string) {
	RoomOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordStudentOperation increments the counter for student operations
func RecordStudentOperation(operation string) {
	StudentOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordPaymentOperation increments the counter for payment operations
func RecordPaymentOperation(operation string) {
	PaymentOperationsCounter.WithLabelValues(operation).Inc()
}

// UpdateRoomOccupancy sets the occupancy gauge for a room
func UpdateRoomOccupancy(roomID uint, roomNumber int, occupied int) {
	RoomOccupancyGauge.WithLabelValues(
		strconv.FormatUint(uint64(roomID), 10),
		strconv.Itoa(roomNumber),
	).Set(float64(occupied))
}

// RecordCapacityRejection increments the counter for rejected assignments
func RecordCapacityRejection() {
	CapacityRejectionsCounter.Inc()
}
