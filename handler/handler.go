// Package handler exposes the game service over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lordvidex/errs/v2"
	"github.com/lordvidex/x/auth"
	"github.com/lordvidex/x/req"
	"github.com/lordvidex/x/resp"

	"github.com/kodekulture/contexto-server/game"
	"github.com/kodekulture/contexto-server/handler/token"
	"github.com/kodekulture/contexto-server/service"
)

type Handler struct {
	s      *http.Server
	router chi.Router
	srv    *service.Service
	token  token.Handler
}

func New(srv *service.Service, tokenHandler token.Handler) *Handler {
	h := &Handler{
		router: chi.NewRouter(),
		srv:    srv,
		token:  tokenHandler,
	}
	h.setup()
	return h
}

func (h *Handler) Start(port string) error {
	h.s = &http.Server{Addr: ":" + port, Handler: h.router}
	return h.s.ListenAndServe()
}

func (h *Handler) Stop(ctx context.Context) error {
	return h.s.Shutdown(ctx)
}

func (h *Handler) setup() {
	r := h.router
	// Public routes
	r.Group(func(r chi.Router) {
		r.Get("/health", h.health)
		r.Post("/login", h.login)
		r.Post("/register", h.register)
	})

	// Private routes
	r.Group(func(r chi.Router) {
		r.Use(h.authMiddleware())

		r.Post("/game", h.newGame)
		r.Post("/game/guess", h.guess)
		r.Get("/game/{id}/stats", h.stats)
		r.Get("/game/{id}/hint", h.hint)
		r.Get("/game/{id}/reveal", h.reveal)
		r.Get("/game/{id}/live", h.live)
		r.Delete("/game/{id}", h.deleteGame)
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

type loginParams struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var payload loginParams
	defer r.Body.Close()
	if err := req.I.Will().Bind(r, &payload).Validate(payload).Err(); err != nil {
		writeError(w, err)
		return
	}

	var (
		player *game.Player
		err    error
		tk     auth.Token
	)
	if player, err = h.srv.GetPlayer(r.Context(), payload.Username); err != nil {
		writeError(w, err)
		return
	}
	if err = h.srv.ComparePasswords(player.Password, payload.Password); err != nil {
		writeError(w, err)
		return
	}
	if tk, err = h.token.Generate(r.Context(), *player); err != nil {
		writeError(w, err)
		return
	}
	resp.JSON(w, loginResponse{Token: string(tk)})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var payload loginParams
	defer r.Body.Close()
	if err := req.I.Will().Bind(r, &payload).Validate(payload).Err(); err != nil {
		writeError(w, err)
		return
	}
	ctx := r.Context()
	player := game.Player{Username: payload.Username, Password: payload.Password}
	if err := h.srv.CreatePlayer(ctx, &player); err != nil {
		writeError(w, err)
		return
	}
	tk, err := h.token.Generate(ctx, player)
	if err != nil {
		writeError(w, err)
		return
	}
	resp.JSON(w, loginResponse{Token: string(tk)})
}

type newGameParams struct {
	Mode       string `json:"mode"`
	Difficulty string `json:"difficulty"`
}

func (h *Handler) newGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	player := Player(ctx)
	if player == nil {
		writeError(w, ErrUnauthenticated)
		return
	}
	var payload newGameParams
	defer r.Body.Close()
	if err := req.I.Will().Bind(r, &payload).Err(); err != nil {
		writeError(w, err)
		return
	}
	result, err := h.srv.StartGame(ctx, player.Username, game.Mode(payload.Mode), payload.Difficulty)
	if err != nil {
		writeError(w, err)
		return
	}
	resp.JSON(w, result)
}

type guessParams struct {
	GameID string `json:"game_id" validate:"required"`
	Word   string `json:"word" validate:"required"`
}

// alreadyWonResponse is returned for guesses made after the game ended.
type alreadyWonResponse struct {
	Message      string `json:"message"`
	SecretWord   string `json:"secret_word"`
	TotalGuesses int    `json:"total_guesses"`
}

func (h *Handler) guess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	player := Player(ctx)
	if player == nil {
		writeError(w, ErrUnauthenticated)
		return
	}
	var payload guessParams
	defer r.Body.Close()
	if err := req.I.Will().Bind(r, &payload).Validate(payload).Err(); err != nil {
		writeError(w, err)
		return
	}
	uid, err := uuid.Parse(payload.GameID)
	if err != nil {
		writeError(w, errs.B().Code(errs.InvalidArgument).Msg("invalid game id").Err())
		return
	}
	result, err := h.srv.SubmitGuess(ctx, player.Username, uid, payload.Word)
	if err != nil {
		var won *game.AlreadyWonError
		if errors.As(err, &won) {
			resp.JSON(w, alreadyWonResponse{
				Message:      "Game already completed!",
				SecretWord:   won.Secret,
				TotalGuesses: won.TotalGuesses,
			})
			return
		}
		writeError(w, err)
		return
	}
	resp.JSON(w, result)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	player := Player(ctx)
	if player == nil {
		writeError(w, ErrUnauthenticated)
		return
	}
	uid, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	stats, err := h.srv.Stats(ctx, player.Username, uid)
	if err != nil {
		writeError(w, err)
		return
	}
	resp.JSON(w, stats)
}

func (h *Handler) hint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	player := Player(ctx)
	if player == nil {
		writeError(w, ErrUnauthenticated)
		return
	}
	uid, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	hint, err := h.srv.GetHint(ctx, player.Username, uid)
	if err != nil {
		writeError(w, err)
		return
	}
	resp.JSON(w, hint)
}

type revealResponse struct {
	SecretWord string `json:"secret_word"`
}

func (h *Handler) reveal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	player := Player(ctx)
	if player == nil {
		writeError(w, ErrUnauthenticated)
		return
	}
	uid, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	secret, err := h.srv.Reveal(ctx, player.Username, uid)
	if err != nil {
		writeError(w, err)
		return
	}
	resp.JSON(w, revealResponse{SecretWord: secret})
}

type deleteResponse struct {
	Deleted bool `json:"deleted"`
}

func (h *Handler) deleteGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	player := Player(ctx)
	if player == nil {
		writeError(w, ErrUnauthenticated)
		return
	}
	uid, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.srv.DeleteSession(ctx, player.Username, uid); err != nil {
		writeError(w, err)
		return
	}
	resp.JSON(w, deleteResponse{Deleted: true})
}

func parseID(r *http.Request) (uuid.UUID, error) {
	uid, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, errs.B().Code(errs.InvalidArgument).Msg("invalid game id").Err()
	}
	return uid, nil
}
