package handler

import (
	"net/http"
	"strconv"

	"algorithm_guessr/internal/api/middleware"
	"algorithm_guessr/internal/app/service"
	"algorithm_guessr/internal/common"
	"algorithm_guessr/internal/domain/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type QuizHandler struct {
	quizService    *service.QuizService
	problemService *service.ProblemService
	validator      *validator.Validate
	defaultMin     int
	defaultMax     int
}

func NewQuizHandler(quizService *service.QuizService, problemService *service.ProblemService, defaultMin, defaultMax int) *QuizHandler {
	return &QuizHandler{
		quizService:    quizService,
		problemService: problemService,
		validator:      validator.New(),
		defaultMin:     defaultMin,
		defaultMax:     defaultMax,
	}
}

// RegisterRoutes mounts the routes that need a signed-in player.
func (h *QuizHandler) RegisterRoutes(r chi.Router) {
	r.Get("/problem", h.getProblem)
	r.Post("/attempt", h.submitAttempt)
}

// RegisterPublicRoutes mounts the routes anyone may call.
func (h *QuizHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/leaderboard", h.leaderboard)
}

type difficultyRange struct {
	Min int `validate:"gte=800,lte=3500"`
	Max int `validate:"gte=800,lte=3500,gtefield=Min"`
}

type problemResponse struct {
	Problem model.ProblemView `json:"problem"`
}

type leaderboardResponse struct {
	Leaderboard []model.LeaderboardEntry `json:"leaderboard"`
}

func (h *QuizHandler) getProblem(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	if err := h.quizService.EnsureCanPlay(r.Context(), user, common.MsgExtensionNeeded); err != nil {
		common.RespondWithAppError(w, r, err)
		return
	}

	bounds, ok := h.parseRange(r)
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, common.MsgInvalidRange)
		return
	}

	meta, err := h.problemService.PickRandom(r.Context(), bounds.Min, bounds.Max)
	if err != nil {
		common.RespondWithAppError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, problemResponse{Problem: meta.View()})
}

// parseRange reads min/max from the query, defaulting absent values.
func (h *QuizHandler) parseRange(r *http.Request) (difficultyRange, bool) {
	bounds := difficultyRange{Min: h.defaultMin, Max: h.defaultMax}
	query := r.URL.Query()
	if raw := query.Get("min"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return bounds, false
		}
		bounds.Min = v
	}
	if raw := query.Get("max"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return bounds, false
		}
		bounds.Max = v
	}
	if err := h.validator.Struct(bounds); err != nil {
		return bounds, false
	}
	return bounds, true
}

// attemptBody accepts any JSON values as tags; they are stringified before grading.
type attemptBody struct {
	ProblemID    string `json:"problemId"`
	SelectedTags []any  `json:"selectedTags"`
}

func (b attemptBody) request() service.AttemptRequest {
	req := service.AttemptRequest{ProblemID: b.ProblemID}
	if b.SelectedTags != nil {
		req.SelectedTags = make([]string, len(b.SelectedTags))
		for i, tag := range b.SelectedTags {
			req.SelectedTags[i] = looseString(tag)
		}
	}
	return req
}

func (h *QuizHandler) submitAttempt(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	if err := h.quizService.EnsureCanPlay(r.Context(), user, common.MsgExtensionAttempt); err != nil {
		common.RespondWithAppError(w, r, err)
		return
	}

	var body attemptBody
	if err := decodeBody(r, &body); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, common.MsgInvalidParams)
		return
	}

	result, err := h.quizService.Submit(r.Context(), user, body.request())
	if err != nil {
		common.RespondWithAppError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}

func (h *QuizHandler) leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.quizService.Leaderboard(r.Context())
	if err != nil {
		common.RespondWithAppError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, leaderboardResponse{Leaderboard: entries})
}
