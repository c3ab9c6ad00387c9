package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"game-portal/internal/bracket"
	"game-portal/internal/httputil"
	"game-portal/internal/service"
	"game-portal/internal/store"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
)

const sessionTournamentKey = "tournamentID"

func newRouter(sessionManager *scs.SessionManager, database *sqlx.DB) http.Handler {
	tournaments := store.NewTournamentStore()
	tournamentService := service.NewTournamentService(tournaments, nil)
	matchService := service.NewMatchService(tournaments)
	historyService := service.NewHistoryService(store.NewHistoryStore(database))

	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(sessionManager.LoadAndSave)

	// Serve the SPA assets
	fileServer := http.FileServer(http.Dir("./static"))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	r.Post("/tournaments", func(w http.ResponseWriter, r *http.Request) {
		t, err := tournamentService.CreateTournament(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to create tournament", err)
			return
		}

		sessionManager.Put(r.Context(), sessionTournamentKey, t.ID.String())
		httputil.JSON(w, http.StatusCreated, t)
	})

	// The bracket the browser is currently running, remembered per session.
	r.Get("/tournaments/current", func(w http.ResponseWriter, r *http.Request) {
		id := sessionManager.GetString(r.Context(), sessionTournamentKey)
		if id == "" {
			httputil.NotFound(w, "No active tournament in this session", nil)
			return
		}

		data, err := tournamentService.GetBracketData(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httputil.JSON(w, http.StatusOK, data)
	})

	r.Post("/tournaments/{id}/players", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name   string `json:"name"`
			UserID string `json:"userId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			httputil.BadRequest(w, "Invalid request body", err)
			return
		}

		player, err := tournamentService.AddPlayer(r.Context(), chi.URLParam(r, "id"), body.Name, body.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httputil.JSON(w, http.StatusCreated, player)
	})

	r.Delete("/tournaments/{id}/players/{playerID}", func(w http.ResponseWriter, r *http.Request) {
		err := tournamentService.RemovePlayer(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "playerID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/tournaments/{id}/start", func(w http.ResponseWriter, r *http.Request) {
		first, err := tournamentService.Start(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httputil.JSON(w, http.StatusOK, first)
	})

	r.Post("/tournaments/{id}/results", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Player1Score int `json:"player1Score"`
			Player2Score int `json:"player2Score"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			httputil.BadRequest(w, "Invalid request body", err)
			return
		}

		id := chi.URLParam(r, "id")
		next, err := matchService.RecordResult(r.Context(), id, body.Player1Score, body.Player2Score)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		champ, err := tournamentService.Champion(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		httputil.JSON(w, http.StatusOK, map[string]any{
			"nextMatch": next,
			"champion":  champ,
		})
	})

	r.Get("/tournaments/{id}/bracket", func(w http.ResponseWriter, r *http.Request) {
		data, err := tournamentService.GetBracketData(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httputil.JSON(w, http.StatusOK, data)
	})

	r.Post("/tournaments/{id}/save", func(w http.ResponseWriter, r *http.Request) {
		record, err := tournamentService.Summarize(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		saved, err := historyService.Save(r.Context(), record)
		if err != nil {
			httputil.InternalServerError(w, "Failed to save tournament", err)
			return
		}
		httputil.JSON(w, http.StatusCreated, saved)
	})

	r.Get("/history", func(w http.ResponseWriter, r *http.Request) {
		records, err := historyService.LoadHistory(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to load history", err)
			return
		}
		httputil.JSON(w, http.StatusOK, records)
	})

	return r
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bracket.ErrTournamentNotFound),
		errors.Is(err, bracket.ErrPlayerNotFound),
		errors.Is(err, bracket.ErrMatchNotFound):
		httputil.NotFound(w, err.Error(), err)
	case errors.Is(err, bracket.ErrDuplicateName):
		httputil.Conflict(w, err.Error(), err)
	case errors.Is(err, bracket.ErrEmptyName),
		errors.Is(err, bracket.ErrRosterLocked),
		errors.Is(err, bracket.ErrNotEnoughPlayers),
		errors.Is(err, bracket.ErrAlreadyStarted),
		errors.Is(err, bracket.ErrNoActiveMatch),
		errors.Is(err, bracket.ErrInvalidScore):
		httputil.BadRequest(w, err.Error(), err)
	default:
		httputil.InternalServerError(w, "Unexpected error", err)
	}
}
