package render

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	go_json "github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"github.com/garrettladley/arcgauge/internal/document"
	"github.com/garrettladley/arcgauge/internal/storage"
	"github.com/garrettladley/arcgauge/internal/validator"
	"github.com/garrettladley/arcgauge/internal/xcontext"
	"github.com/garrettladley/arcgauge/internal/xslog"
)

const DefaultTTL = 10 * time.Minute

// keyVersion is mixed into every cache key; bump it when rendered output
// changes for identical specs.
const keyVersion = "v1"

type Cached struct {
	cache storage.Cache
	ttl   time.Duration
	group singleflight.Group
}

var _ Service = (*Cached)(nil)

func NewCached(cache storage.Cache, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cached{cache: cache, ttl: ttl}
}

func (s *Cached) Render(ctx context.Context, spec document.Spec) (Result, error) {
	if err := validator.Validate(&spec); err != nil {
		return Result{}, err
	}

	key, err := Key(spec)
	if err != nil {
		return Result{}, err
	}

	logger := xslog.FromContext(ctx).With(
		xslog.CacheKey(key),
		xslog.GaugeGroup(string(spec.Kind), spec.Name, spec.Span),
	)

	if !xcontext.NoCache(ctx) {
		data, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			logger.DebugContext(ctx, "render cache hit", xslog.CacheHit(true))
			return Result{SVG: data, Key: key, Cached: true}, nil
		case !errors.Is(err, storage.ErrNotFound):
			logger.WarnContext(ctx, "render cache read failed", xslog.Error(err))
		}
	}

	ch := s.group.DoChan(key, func() (any, error) {
		data, err := renderSpec(spec)
		if err != nil {
			return nil, err
		}
		// the shared render outlives any single caller's cancellation
		if err := s.cache.Set(context.WithoutCancel(ctx), key, data, s.ttl); err != nil {
			logger.WarnContext(ctx, "render cache write failed", xslog.Error(err))
		}
		return data, nil
	})

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Result{}, res.Err
		}
		data := res.Val.([]byte)
		logger.DebugContext(ctx, "rendered gauge",
			xslog.CacheHit(false),
			xslog.Bytes(len(data)),
		)
		return Result{SVG: data, Key: key}, nil
	}
}

// Key hashes the canonical JSON form of spec. Map keys are sorted by the
// encoder, so equal specs always share a key.
func Key(spec document.Spec) (string, error) {
	data, err := go_json.Marshal(spec)
	if err != nil {
		return "", fmt.Errorf("failed to encode spec: %w", err)
	}
	sum := sha256.Sum256(append([]byte(keyVersion+":"), data...))
	return hex.EncodeToString(sum[:]), nil
}

func renderSpec(spec document.Spec) ([]byte, error) {
	r, err := spec.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build gauge: %w", err)
	}
	var buf bytes.Buffer
	if err := r.Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render gauge: %w", err)
	}
	return buf.Bytes(), nil
}
