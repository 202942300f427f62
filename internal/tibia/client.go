// Package tibia resolves character names against the public Tibia data API
// and caches the answers.
//
// Lookups never fail the caller. Transport errors and non-2xx responses are
// logged and reported as a nil result, which callers must treat as
// "validation unavailable". A nil result is not cached, so the next call
// retries the upstream service.
package tibia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Defaults applied by New when the corresponding option is zero.
const (
	DefaultBaseURL      = "https://api.tibiadata.com/v3"
	DefaultCharacterTTL = 10 * time.Minute
	DefaultWorldsTTL    = time.Hour
)

// CharacterInfo is the outcome of a successful character lookup. Name carries
// the canonical casing reported by the service, not the caller's input.
type CharacterInfo struct {
	Exists   bool   `json:"exists"`
	Name     string `json:"name,omitempty"`
	World    string `json:"world,omitempty"`
	Vocation string `json:"vocation,omitempty"`
	Level    int    `json:"level,omitempty"`
}

// Validator looks characters and worlds up through the external API.
type Validator struct {
	BaseURL      string
	HTTP         *http.Client
	Cache        Cache
	CharacterTTL time.Duration
	WorldsTTL    time.Duration
	Log          zerolog.Logger
}

// Options configure New.
type Options struct {
	BaseURL      string
	Timeout      time.Duration // 0 keeps the http.Client default (no timeout)
	Cache        Cache         // nil selects an in-process MemoryCache
	CharacterTTL time.Duration
	WorldsTTL    time.Duration
}

// New builds a Validator, filling unset options with defaults.
func New(o Options) *Validator {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.Cache == nil {
		o.Cache = NewMemoryCache()
	}
	if o.CharacterTTL <= 0 {
		o.CharacterTTL = DefaultCharacterTTL
	}
	if o.WorldsTTL <= 0 {
		o.WorldsTTL = DefaultWorldsTTL
	}
	return &Validator{
		BaseURL:      strings.TrimRight(o.BaseURL, "/"),
		HTTP:         &http.Client{Timeout: o.Timeout},
		Cache:        o.Cache,
		CharacterTTL: o.CharacterTTL,
		WorldsTTL:    o.WorldsTTL,
		Log:          log.Logger.With().Str("component", "tibia").Logger(),
	}
}

// Wire shapes of the upstream API.
type characterResponse struct {
	Characters struct {
		Character struct {
			Name     string `json:"name"`
			World    string `json:"world"`
			Vocation string `json:"vocation"`
			Level    int    `json:"level"`
		} `json:"character"`
	} `json:"characters"`
}

type worldsResponse struct {
	Worlds struct {
		RegularWorlds []struct {
			Name string `json:"name"`
		} `json:"regular_worlds"`
	} `json:"worlds"`
}

func characterKey(name string) string { return "tibia:character:" + strings.ToLower(name) }

const worldsKey = "tibia:worlds"

// ValidateCharacter returns what the service knows about name, or nil when
// the lookup could not be completed.
func (v *Validator) ValidateCharacter(ctx context.Context, name string) *CharacterInfo {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	tr := otel.Tracer("tibia/Validator")
	ctx, span := tr.Start(ctx, "ValidateCharacter",
		trace.WithAttributes(attribute.String("character.name", name)),
	)
	defer span.End()

	key := characterKey(name)
	var cached CharacterInfo
	if v.cacheGet(ctx, key, &cached) {
		lookupTotal.WithLabelValues(resultHit).Inc()
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return &cached
	}

	var body characterResponse
	if err := v.getJSON(ctx, "/character/"+url.PathEscape(name), &body); err != nil {
		lookupTotal.WithLabelValues(resultUnavailable).Inc()
		v.Log.Warn().Err(err).Str("character", name).Msg("character lookup failed")
		return nil
	}

	ch := body.Characters.Character
	info := &CharacterInfo{}
	if strings.TrimSpace(ch.Name) != "" {
		info = &CharacterInfo{
			Exists:   true,
			Name:     ch.Name,
			World:    ch.World,
			Vocation: ch.Vocation,
			Level:    ch.Level,
		}
		lookupTotal.WithLabelValues(resultFound).Inc()
	} else {
		lookupTotal.WithLabelValues(resultNotFound).Inc()
	}
	v.cacheSet(ctx, key, info, v.CharacterTTL)
	return info
}

// Worlds returns the sorted list of world names, or nil when unavailable.
func (v *Validator) Worlds(ctx context.Context) []string {
	tr := otel.Tracer("tibia/Validator")
	ctx, span := tr.Start(ctx, "Worlds")
	defer span.End()

	var cached []string
	if v.cacheGet(ctx, worldsKey, &cached) {
		lookupTotal.WithLabelValues(resultHit).Inc()
		return cached
	}

	var body worldsResponse
	if err := v.getJSON(ctx, "/worlds", &body); err != nil {
		lookupTotal.WithLabelValues(resultUnavailable).Inc()
		v.Log.Warn().Err(err).Msg("world list lookup failed")
		return nil
	}
	out := make([]string, 0, len(body.Worlds.RegularWorlds))
	for _, w := range body.Worlds.RegularWorlds {
		if w.Name != "" {
			out = append(out, w.Name)
		}
	}
	sort.Strings(out)
	lookupTotal.WithLabelValues(resultFound).Inc()
	v.cacheSet(ctx, worldsKey, out, v.WorldsTTL)
	return out
}

func (v *Validator) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := v.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("api status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// cacheGet decodes a cached value into dst. Cache errors count as misses.
func (v *Validator) cacheGet(ctx context.Context, key string, dst any) bool {
	bs, ok, err := v.Cache.Get(ctx, key)
	if err != nil {
		v.Log.Debug().Err(err).Str("key", key).Msg("cache get failed")
		return false
	}
	if !ok {
		return false
	}
	return json.Unmarshal(bs, dst) == nil
}

func (v *Validator) cacheSet(ctx context.Context, key string, val any, ttl time.Duration) {
	bs, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := v.Cache.Set(ctx, key, bs, ttl); err != nil {
		v.Log.Debug().Err(err).Str("key", key).Msg("cache set failed")
	}
}
