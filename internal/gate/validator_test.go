package gate

import (
	"context"
	"errors"
	"testing"

	"github.com/amoylab/sessiongate/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var testKeys = KeyBuilder{Namespace: "satoken", LoginType: "login"}

func TestTokenValidator_Validate(t *testing.T) {
	mem := session.NewMemoryStore(
		session.MemoryRecord{Key: "satoken:login:token:good_token_1", Value: "10001"},
		session.MemoryRecord{Key: "satoken:login:token:blank_value", Value: ""},
	)

	rec := &fakeRecorder{}
	v := NewTokenValidator(zap.NewNop(), mem, testKeys, "memory", rec)
	ctx := context.Background()

	ok, err := v.Validate(ctx, "good_token_1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.Validate(ctx, "blank_value")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = v.Validate(ctx, "unknown_token")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, []recordedLookup{
		{"memory", LookupFound},
		{"memory", LookupMissing},
		{"memory", LookupMissing},
	}, rec.lookups)
}

func TestTokenValidator_Idempotent(t *testing.T) {
	mem := session.NewMemoryStore(session.MemoryRecord{Key: "satoken:login:token:abc1234567xyz9", Value: "1"})
	v := NewTokenValidator(zap.NewNop(), mem, testKeys, "memory", nil)

	for _, token := range []string{"abc1234567xyz9", "missing_token"} {
		first, err1 := v.Validate(context.Background(), token)
		second, err2 := v.Validate(context.Background(), token)
		assert.Equal(t, first, second)
		assert.Equal(t, err1, err2)
	}
}

func TestTokenValidator_SingleLookupWithDerivedKey(t *testing.T) {
	store := &stubStore{get: func(context.Context, string) (string, error) { return "", session.ErrSessionNotFound }}
	v := NewTokenValidator(zap.NewNop(), store, testKeys, "stub", nil)

	_, _ = v.Validate(context.Background(), "tok_9f8e7d6c5b4a")
	assert.Equal(t, []string{"satoken:login:token:tok_9f8e7d6c5b4a"}, store.lookups())
}

func TestTokenValidator_StoreError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	store := &stubStore{get: func(context.Context, string) (string, error) { return "", errStoreDown }}
	rec := &fakeRecorder{}
	v := NewTokenValidator(zap.New(core), store, testKeys, "redis", rec)

	ok, err := v.Validate(context.Background(), "abc1234567xyz9")
	assert.False(t, ok)
	require.Error(t, err)
	assert.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, []recordedLookup{{"redis", LookupError}}, rec.lookups)

	errs := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, errs, 1)
	assert.Equal(t, "abc1****xyz9", errs[0].ContextMap()["token"])
	for _, entry := range logs.All() {
		for _, f := range entry.Context {
			assert.NotContains(t, f.String, "abc1234567xyz9")
		}
	}
}

func TestTokenValidator_StorePanic(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	store := &stubStore{get: func(context.Context, string) (string, error) { panic("nil pool") }}
	rec := &fakeRecorder{}
	v := NewTokenValidator(zap.New(core), store, testKeys, "redis", rec)

	var (
		ok  bool
		err error
	)
	assert.NotPanics(t, func() { ok, err = v.Validate(context.Background(), "abc1234567xyz9") })
	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrStorePanic))
	assert.Contains(t, err.Error(), "nil pool")
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
	assert.Equal(t, []recordedLookup{{"redis", LookupError}}, rec.lookups)
}

func TestTokenValidator_DebugKeyIsMasked(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	v := NewTokenValidator(zap.New(core), session.NewMemoryStore(), testKeys, "memory", nil)

	_, _ = v.Validate(context.Background(), "abc1234567xyz9")
	entries := logs.FilterMessage("Looking up session").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "satoken:login:token:abc1****xyz9", entries[0].ContextMap()["key"])
}
