package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_Observe(t *testing.T) {
	t.Parallel()

	c := NewCollector()
	c.Observe(Run{Strategy: "montgomery", Field: "secp256k1", Bits: 256, Ops: 1000, Duration: 2 * time.Millisecond, Alloc: AllocDelta{Bytes: 64000}})
	c.Observe(Run{Strategy: "montgomery", Field: "secp256k1", Bits: 256, Ops: 500, Duration: time.Millisecond})
	c.Observe(Run{Strategy: "bigint", Field: "secp256k1", Bits: 256, Duration: time.Millisecond, Err: errors.New("boom")})

	if got := testutil.ToFloat64(c.ops.WithLabelValues("montgomery", "secp256k1")); got != 1500 {
		t.Errorf("ops = %v, want 1500", got)
	}
	if got := testutil.ToFloat64(c.failures.WithLabelValues("bigint", "secp256k1")); got != 1 {
		t.Errorf("failures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.nsPerOp.WithLabelValues("montgomery", "secp256k1")); got != 2000 {
		t.Errorf("ns/op = %v, want 2000 (last run)", got)
	}
	if got := testutil.ToFloat64(c.fieldBits.WithLabelValues("secp256k1")); got != 256 {
		t.Errorf("field bits = %v, want 256", got)
	}
	if got := testutil.CollectAndCount(c.runs); got != 2 {
		t.Errorf("histogram series = %d, want 2", got)
	}
}

func TestCollector_BytesPerOp(t *testing.T) {
	t.Parallel()

	c := NewCollector()
	c.Observe(Run{Strategy: "schoolbook", Field: "p11", Bits: 4, Ops: 10, Duration: time.Microsecond, Alloc: AllocDelta{Bytes: 320}})
	if got := testutil.ToFloat64(c.bytesOp.WithLabelValues("schoolbook", "p11")); got != 32 {
		t.Errorf("bytes/op = %v, want 32", got)
	}
}

func TestCollector_NilIsNoop(t *testing.T) {
	t.Parallel()

	var c *Collector
	c.Observe(Run{Strategy: "montgomery", Ops: 1})
}

func TestCollector_WriteTextfile(t *testing.T) {
	t.Parallel()

	c := NewCollector()
	c.Observe(Run{Strategy: "montgomery", Field: "p256", Bits: 256, Ops: 42, Duration: time.Millisecond})

	path := filepath.Join(t.TempDir(), "ecurve.prom")
	if err := c.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	body := string(data)
	for _, want := range []string{
		`ecurve_bench_multiplications_total{field="p256",strategy="montgomery"} 42`,
		"ecurve_bench_run_duration_seconds_bucket",
		"ecurve_field_modulus_bits",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("textfile missing %q", want)
		}
	}
}
