package service

import (
	"os"
	"testing"

	"hostel-service/pkg/config"
	"hostel-service/prometheus"
)

func TestMain(m *testing.M) {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	prometheus.InitMetrics(cfg)
	os.Exit(m.Run())
}
