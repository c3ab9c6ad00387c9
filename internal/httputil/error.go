package httputil

import (
	"log/slog"
	"net/http"
)

func InternalServerError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	warn("bad request", msg, err)
	http.Error(w, msg, http.StatusBadRequest)
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	warn("not found", msg, err)
	http.Error(w, msg, http.StatusNotFound)
}

func Conflict(w http.ResponseWriter, msg string, err error) {
	warn("conflict", msg, err)
	http.Error(w, msg, http.StatusConflict)
}

func warn(reason, msg string, err error) {
	if err != nil {
		slog.Warn(reason, "message", msg, "error", err)
		return
	}
	slog.Warn(reason, "message", msg)
}
