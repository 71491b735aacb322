package commands

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/worxco/secretops/internal/config"
	"github.com/worxco/secretops/internal/logging"
	"github.com/worxco/secretops/internal/prompt"
	"github.com/worxco/secretops/internal/runner"
	"github.com/worxco/secretops/internal/store"
)

// recordingStore is a store.Store double that records every call in
// order. Existing maps identity -> value for secrets that already
// exist.
type recordingStore struct {
	Existing map[string]string
	Entries  []store.Entry

	// Calls is every store call in order, e.g. "describe id" or
	// "create id".
	Calls []string

	// Creates, Updates, Deletes record the identities of mutating
	// calls in order.
	Creates []string
	Updates []string
	Deletes []string

	// Descriptions maps created identity -> description.
	Descriptions map[string]string

	// DeleteWindows maps deleted identity -> recovery window days.
	DeleteWindows map[string]int64

	Err error // returned by every call when set
}

func newRecordingStore() *recordingStore {
	return &recordingStore{
		Existing:      make(map[string]string),
		Descriptions:  make(map[string]string),
		DeleteWindows: make(map[string]int64),
	}
}

func (s *recordingStore) record(op, id string) {
	s.Calls = append(s.Calls, fmt.Sprintf("%s %s", op, id))
}

func (s *recordingStore) Describe(ctx context.Context, id string) (store.Metadata, error) {
	s.record("describe", id)
	if s.Err != nil {
		return store.Metadata{}, s.Err
	}
	if _, ok := s.Existing[id]; ok {
		return store.Metadata{Exists: true, ARN: arnFor(id)}, nil
	}
	return store.Metadata{Exists: false}, nil
}

func (s *recordingStore) Create(ctx context.Context, id, description, value string) (string, error) {
	s.record("create", id)
	if s.Err != nil {
		return "", s.Err
	}
	s.Creates = append(s.Creates, id)
	s.Descriptions[id] = description
	// Clone: init passes values backed by protected memory that is
	// wiped after the call returns.
	s.Existing[id] = strings.Clone(value)
	return arnFor(id), nil
}

func (s *recordingStore) Update(ctx context.Context, id, value string) (string, string, error) {
	s.record("update", id)
	if s.Err != nil {
		return "", "", s.Err
	}
	s.Updates = append(s.Updates, id)
	s.Existing[id] = strings.Clone(value)
	return arnFor(id), "v2-test", nil
}

func (s *recordingStore) Get(ctx context.Context, id string) (string, error) {
	s.record("get", id)
	if s.Err != nil {
		return "", s.Err
	}
	value, ok := s.Existing[id]
	if !ok {
		return "", &store.NotFoundError{Key: id}
	}
	return value, nil
}

func (s *recordingStore) List(ctx context.Context) ([]store.Entry, error) {
	s.record("list", "")
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Entries, nil
}

func (s *recordingStore) Delete(ctx context.Context, id string, recoveryWindowDays int64) (string, error) {
	s.record("delete", id)
	if s.Err != nil {
		return "", s.Err
	}
	s.Deletes = append(s.Deletes, id)
	s.DeleteWindows[id] = recoveryWindowDays
	return arnFor(id), nil
}

// MutatingCalls returns the recorded create/update/delete calls.
func (s *recordingStore) MutatingCalls() []string {
	var calls []string
	for _, c := range s.Calls {
		if strings.HasPrefix(c, "create") || strings.HasPrefix(c, "update") || strings.HasPrefix(c, "delete") {
			calls = append(calls, c)
		}
	}
	return calls
}

func arnFor(id string) string {
	return "arn:aws:secretsmanager:us-east-1:123456789012:secret:" + id
}

// testEnv bundles the injected collaborators a command test needs.
type testEnv struct {
	cfg      *config.Config
	store    *recordingStore
	prompter *prompt.Script
	out      *bytes.Buffer
}

func newTestEnv(dryRun bool, responses ...string) *testEnv {
	st := newRecordingStore()
	out := &bytes.Buffer{}
	prompter := &prompt.Script{Responses: responses}

	cfg := &config.Config{
		Prefix:             config.DefaultPrefix,
		Region:             config.DefaultRegion,
		RecoveryWindowDays: config.DefaultRecoveryWindowDays,
		DryRun:             dryRun,
		Logger:             logging.NewWithWriter(&bytes.Buffer{}, false, true),
		Store:              st,
		Runner:             runner.NewWithWriter(dryRun, out),
		Prompter:           prompter,
		Out:                out,
	}

	return &testEnv{cfg: cfg, store: st, prompter: prompter, out: out}
}
