package redis

import (
	"testing"
	"time"
)

func TestClientOptions(t *testing.T) {
	opts, err := clientOptions(Config{Addr: "cache:6379", Password: "pw", DB: 2, PoolSize: 4})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if opts.Addr != "cache:6379" || opts.Password != "pw" || opts.DB != 2 || opts.PoolSize != 4 {
		t.Errorf("unexpected options: %+v", opts)
	}
	if opts.ReadTimeout != defaultOpTimeout || opts.WriteTimeout != defaultOpTimeout {
		t.Errorf("expected default op timeout, got read=%v write=%v", opts.ReadTimeout, opts.WriteTimeout)
	}

	opts, err = clientOptions(Config{Addr: "cache:6379", OpTimeout: time.Second})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if opts.ReadTimeout != time.Second {
		t.Errorf("expected 1s read timeout, got %v", opts.ReadTimeout)
	}
}

func TestClientOptions_Invalid(t *testing.T) {
	if _, err := clientOptions(Config{}); err == nil {
		t.Errorf("expected error for empty address")
	}
	if _, err := clientOptions(Config{Addr: "cache:6379", DB: -1}); err == nil {
		t.Errorf("expected error for negative database index")
	}
}
