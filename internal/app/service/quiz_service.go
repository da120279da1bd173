package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"algorithm_guessr/internal/common"
	"algorithm_guessr/internal/domain/model"
	"algorithm_guessr/internal/domain/repository"

	"github.com/google/uuid"
)

const leaderboardSize = 20

type AttemptRequest struct {
	ProblemID    string   `json:"problemId" validate:"required"`
	SelectedTags []string `json:"selectedTags" validate:"required"`
}

// QuizService runs the guessing game: gating, grading and scoring.
type QuizService struct {
	userRepo    repository.UserRepository
	attemptRepo repository.AttemptRepository
	tx          repository.Transactor
	problems    *ProblemService
	extensions  *ExtensionService
	now         func() time.Time
}

func NewQuizService(
	userRepo repository.UserRepository,
	attemptRepo repository.AttemptRepository,
	tx repository.Transactor,
	problems *ProblemService,
	extensions *ExtensionService,
) *QuizService {
	return &QuizService{
		userRepo:    userRepo,
		attemptRepo: attemptRepo,
		tx:          tx,
		problems:    problems,
		extensions:  extensions,
		now:         time.Now,
	}
}

// EnsureCanPlay rejects banned users first, then users without a live
// extension verification. extensionMessage is the text used for the latter.
func (s *QuizService) EnsureCanPlay(ctx context.Context, user *model.User, extensionMessage string) error {
	if user.IsBanned {
		return common.NewError(common.ErrForbidden, common.MsgAccountBanned)
	}
	verified, err := s.extensions.IsVerified(ctx, user.ID)
	if err != nil {
		return err
	}
	if !verified {
		return common.NewError(common.ErrPreconditionRequired, extensionMessage)
	}
	return nil
}

// Submit grades a guess against the cached answer and records it. The score
// change and the attempt row commit together.
func (s *QuizService) Submit(ctx context.Context, user *model.User, req AttemptRequest) (*model.AttemptResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, common.WrapError(common.ErrValidation, common.MsgInvalidParams, err)
	}

	meta, ok, err := s.problems.CachedProblem(ctx, req.ProblemID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.NewError(common.ErrGone, common.MsgProblemExpired)
	}

	selected := dedupe(req.SelectedTags)
	correctTags := dedupe(meta.Tags)
	correct := model.SameTagSet(selected, correctTags)
	delta := -1
	if correct {
		delta = 1
	}

	attempt := &model.Attempt{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		ProblemID:    req.ProblemID,
		Correct:      correct,
		SelectedTags: selected,
		CorrectTags:  correctTags,
		CreatedAt:    s.now(),
	}

	var score int
	err = s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		var err error
		if score, err = s.userRepo.AdjustScore(ctx, tx, user.ID, delta); err != nil {
			return err
		}
		return s.attemptRepo.Create(ctx, tx, attempt)
	})
	if err != nil {
		return nil, fmt.Errorf("record attempt: %w", err)
	}

	return &model.AttemptResult{Correct: correct, CorrectTags: correctTags, Score: score}, nil
}

// Leaderboard returns the top non-banned players.
func (s *QuizService) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	entries, err := s.userRepo.Leaderboard(ctx, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	return entries, nil
}

func dedupe(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
