package validator

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fields map[string]string

func (f fields) Validate() map[string]string { return f }

func TestValidate(t *testing.T) {
	t.Parallel()

	if err := Validate(fields(nil)); err != nil {
		t.Errorf("Validate(nil) = %v, want nil", err)
	}

	err := Validate(fields{"size": "must be positive"})
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	if err.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d", err.StatusCode)
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	got := Merge(
		fields{"span": "unsupported"},
		fields(nil),
		fields{"span": "missing", "min": "must not exceed max"},
	)
	want := map[string]string{
		"span": "unsupported; missing",
		"min":  "must not exceed max",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}

	if got := Merge(fields(nil)); got != nil {
		t.Errorf("Merge(empty) = %v, want nil", got)
	}
}
