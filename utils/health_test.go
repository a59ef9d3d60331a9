package utils

import "testing"

func TestHealthStatus_Healthy(t *testing.T) {
	tests := []struct {
		name   string
		status HealthStatus
		want   bool
	}{
		{"all up", HealthStatus{Mongo: true, Redis: []bool{true, true}}, true},
		{"mongo down", HealthStatus{Mongo: false, Redis: []bool{true}}, false},
		{"one redis down", HealthStatus{Mongo: true, Redis: []bool{true, false}}, false},
		{"never checked", HealthStatus{}, false},
	}
	for _, tc := range tests {
		if got := tc.status.Healthy(); got != tc.want {
			t.Errorf("%s: Healthy() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
