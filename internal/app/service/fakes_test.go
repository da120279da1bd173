package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"algorithm_guessr/internal/common"
	"algorithm_guessr/internal/domain/model"
	"algorithm_guessr/internal/platform/problemsource"
)

type fakeUserRepo struct {
	registerFn       func(user *model.User, open bool) error
	createFn         func(user *model.User) error
	findByUsernameFn func(username string) (*model.User, error)
	findByIDFn       func(id int64) (*model.User, error)
	listFn           func() ([]model.User, error)
	leaderboardFn    func(limit int) ([]model.LeaderboardEntry, error)
	setBannedFn      func(username string, banned bool) error
	adjustScoreFn    func(userID int64, delta int) (int, error)
}

func (f *fakeUserRepo) Register(_ context.Context, user *model.User, open bool) error {
	if f.registerFn == nil {
		return errors.New("Register not implemented")
	}
	return f.registerFn(user, open)
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if f.createFn == nil {
		return errors.New("Create not implemented")
	}
	return f.createFn(user)
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	if f.findByUsernameFn == nil {
		return nil, errors.New("FindByUsername not implemented")
	}
	return f.findByUsernameFn(username)
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int64) (*model.User, error) {
	if f.findByIDFn == nil {
		return nil, errors.New("FindByID not implemented")
	}
	return f.findByIDFn(id)
}

func (f *fakeUserRepo) List(context.Context) ([]model.User, error) {
	if f.listFn == nil {
		return nil, errors.New("List not implemented")
	}
	return f.listFn()
}

func (f *fakeUserRepo) Leaderboard(_ context.Context, limit int) ([]model.LeaderboardEntry, error) {
	if f.leaderboardFn == nil {
		return nil, errors.New("Leaderboard not implemented")
	}
	return f.leaderboardFn(limit)
}

func (f *fakeUserRepo) SetBanned(_ context.Context, username string, banned bool) error {
	if f.setBannedFn == nil {
		return errors.New("SetBanned not implemented")
	}
	return f.setBannedFn(username, banned)
}

func (f *fakeUserRepo) AdjustScore(_ context.Context, _ *sql.Tx, userID int64, delta int) (int, error) {
	if f.adjustScoreFn == nil {
		return 0, errors.New("AdjustScore not implemented")
	}
	return f.adjustScoreFn(userID, delta)
}

type fakeAttemptRepo struct {
	attempts []*model.Attempt
	err      error
}

func (f *fakeAttemptRepo) Create(_ context.Context, _ *sql.Tx, a *model.Attempt) error {
	if f.err != nil {
		return f.err
	}
	f.attempts = append(f.attempts, a)
	return nil
}

// fakeTx runs fn without a real transaction.
type fakeTx struct{}

func (fakeTx) WithinTx(_ context.Context, fn func(tx *sql.Tx) error) error {
	return fn(nil)
}

type fakeSettingRepo struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{values: make(map[string]string)}
}

func (f *fakeSettingRepo) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.values[key]
	if !ok {
		return "", common.ErrNotFound
	}
	return value, nil
}

func (f *fakeSettingRepo) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return nil
}

func (f *fakeSettingRepo) SetDefault(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.values[key]; !ok {
		f.values[key] = value
	}
	return nil
}

type fakeSource struct {
	problemsetFn func() ([]model.RawProblem, error)
	vjudgeFn     func(p model.RawProblem) (*problemsource.VJudgeProblem, error)
	statementFn  func(p model.RawProblem) (string, error)

	problemsetCalls int
}

func (f *fakeSource) FetchProblemset(context.Context) ([]model.RawProblem, error) {
	f.problemsetCalls++
	if f.problemsetFn == nil {
		return nil, errors.New("FetchProblemset not implemented")
	}
	return f.problemsetFn()
}

func (f *fakeSource) FetchVJudgeProblem(_ context.Context, p model.RawProblem) (*problemsource.VJudgeProblem, error) {
	if f.vjudgeFn == nil {
		return nil, problemsource.ErrUpstream
	}
	return f.vjudgeFn(p)
}

func (f *fakeSource) FetchStatement(_ context.Context, p model.RawProblem) (string, error) {
	if f.statementFn == nil {
		return "", problemsource.ErrUpstream
	}
	return f.statementFn(p)
}

func (f *fakeSource) ProblemURL(p model.RawProblem) string {
	return "https://codeforces.test/contest/" + p.ID()
}
