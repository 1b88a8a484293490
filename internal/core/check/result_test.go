package check

import (
	"strings"
	"testing"
)

func TestWorst(t *testing.T) {
	cases := []struct {
		name    string
		results []Result
		want    Status
	}{
		{"empty", nil, StatusOK},
		{"all ok", []Result{{Status: StatusOK}, {Status: StatusOK}}, StatusOK},
		{"info beats ok", []Result{{Status: StatusOK}, {Status: StatusInfo}}, StatusInfo},
		{"warning beats info", []Result{{Status: StatusInfo}, {Status: StatusWarning}}, StatusWarning},
		{"critical beats all", []Result{{Status: StatusCritical}, {Status: StatusWarning}, {Status: StatusOK}}, StatusCritical},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Worst(tc.results); got != tc.want {
				t.Fatalf("worst: got %q want %q", got, tc.want)
			}
		})
	}
}

func TestUnavailable(t *testing.T) {
	res := Unavailable("sec.selinux", "getenforce not found")
	if res.Status != StatusInfo {
		t.Fatalf("unexpected status: got %q want %q", res.Status, StatusInfo)
	}
	if !strings.Contains(res.Message, "cannot determine") {
		t.Fatalf("message %q does not mention cannot determine", res.Message)
	}
	if res.Value != "unknown" {
		t.Fatalf("unexpected value: got %q want %q", res.Value, "unknown")
	}
}

func TestSeverityOrder(t *testing.T) {
	if !(StatusOK.Severity() < StatusInfo.Severity() &&
		StatusInfo.Severity() < StatusWarning.Severity() &&
		StatusWarning.Severity() < StatusCritical.Severity()) {
		t.Fatalf("severity order broken: OK=%d INFO=%d WARNING=%d CRITICAL=%d",
			StatusOK.Severity(), StatusInfo.Severity(), StatusWarning.Severity(), StatusCritical.Severity())
	}
}
