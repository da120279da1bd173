package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"algorithm_guessr/internal/common"
	"algorithm_guessr/internal/domain/model"
)

type quizFixture struct {
	svc        *QuizService
	users      *fakeUserRepo
	attempts   *fakeAttemptRepo
	problems   *ProblemService
	extensions *ExtensionService
	score      int
}

func newQuizFixture() *quizFixture {
	f := &quizFixture{attempts: &fakeAttemptRepo{}}
	f.users = &fakeUserRepo{
		adjustScoreFn: func(userID int64, delta int) (int, error) {
			f.score += delta
			return f.score, nil
		},
		leaderboardFn: func(limit int) ([]model.LeaderboardEntry, error) {
			if limit != 20 {
				return nil, errors.New("unexpected limit")
			}
			return nil, nil
		},
	}
	f.problems, _, _ = newProblemServiceForTest(&fakeSource{})
	f.extensions = NewExtensionService(f.problems.cache, testCacheConfig.ProblemTTL)
	f.svc = NewQuizService(f.users, f.attempts, fakeTx{}, f.problems, f.extensions)
	return f
}

func (f *quizFixture) cacheProblem(t *testing.T, id string, tags ...string) {
	t.Helper()
	meta := model.ProblemMetadata{ID: id, Tags: tags}
	if err := f.problems.cache.SetJSON(context.Background(), problemCacheKey(id), meta, 0); err != nil {
		t.Fatalf("seed problem: %v", err)
	}
}

func TestEnsureCanPlay(t *testing.T) {
	f := newQuizFixture()
	ctx := context.Background()
	player := &model.User{ID: 3}

	err := f.svc.EnsureCanPlay(ctx, player, common.MsgExtensionNeeded)
	if msg, _ := common.PublicMessage(err); statusOf(err) != http.StatusPreconditionRequired || msg != common.MsgExtensionNeeded {
		t.Fatalf("expected 428, got %v", err)
	}

	if err := f.extensions.MarkVerified(ctx, player.ID); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if err := f.svc.EnsureCanPlay(ctx, player, common.MsgExtensionNeeded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	banned := &model.User{ID: 3, IsBanned: true}
	if err := f.svc.EnsureCanPlay(ctx, banned, common.MsgExtensionNeeded); statusOf(err) != http.StatusForbidden {
		t.Fatalf("expected banned check first, got %v", err)
	}

	if err := f.extensions.Clear(ctx, player.ID); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if verified, _ := f.extensions.IsVerified(ctx, player.ID); verified {
		t.Fatalf("expected mark cleared")
	}
}

func TestSubmit_GradesAsSet(t *testing.T) {
	f := newQuizFixture()
	f.cacheProblem(t, "1850-A", "greedy", "math")
	ctx := context.Background()
	player := &model.User{ID: 3}

	result, err := f.svc.Submit(ctx, player, AttemptRequest{ProblemID: "1850-A", SelectedTags: []string{"math", "greedy", "math"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Correct || result.Score != 1 || len(result.CorrectTags) != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}

	result, err = f.svc.Submit(ctx, player, AttemptRequest{ProblemID: "1850-A", SelectedTags: []string{"math"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Correct || result.Score != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	if len(f.attempts.attempts) != 2 {
		t.Fatalf("expected 2 recorded attempts, got %d", len(f.attempts.attempts))
	}
	first := f.attempts.attempts[0]
	if first.ID == "" || first.UserID != 3 || len(first.SelectedTags) != 2 {
		t.Fatalf("unexpected attempt: %+v", first)
	}
}

func TestSubmit_Rejections(t *testing.T) {
	f := newQuizFixture()
	ctx := context.Background()
	player := &model.User{ID: 3}

	if _, err := f.svc.Submit(ctx, player, AttemptRequest{ProblemID: "1-A"}); statusOf(err) != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing tags, got %v", err)
	}
	if _, err := f.svc.Submit(ctx, player, AttemptRequest{SelectedTags: []string{}}); statusOf(err) != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing problem id, got %v", err)
	}
	if _, err := f.svc.Submit(ctx, player, AttemptRequest{ProblemID: "1-A", SelectedTags: []string{}}); statusOf(err) != http.StatusGone {
		t.Fatalf("expected 410 for unknown problem, got %v", err)
	}
	if len(f.attempts.attempts) != 0 || f.score != 0 {
		t.Fatalf("rejected submissions must not be recorded")
	}
}

func TestSubmit_StorageFailure(t *testing.T) {
	f := newQuizFixture()
	f.cacheProblem(t, "1-A", "dp")
	f.attempts.err = errors.New("disk full")

	_, err := f.svc.Submit(context.Background(), &model.User{ID: 3}, AttemptRequest{ProblemID: "1-A", SelectedTags: []string{"dp"}})
	if statusOf(err) != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %v", err)
	}
}

func TestLeaderboard_NeverNil(t *testing.T) {
	f := newQuizFixture()
	entries, err := f.svc.Leaderboard(context.Background())
	if err != nil || entries == nil {
		t.Fatalf("expected empty leaderboard, got %v %v", entries, err)
	}
}
