package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cbodonnell/digipet/pkg/digipet"
	"github.com/cbodonnell/digipet/pkg/game"
	"github.com/cbodonnell/digipet/pkg/log"
	"github.com/cbodonnell/digipet/pkg/messages"
	"github.com/cbodonnell/digipet/pkg/repositories"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messages.Response{Message: message})
}

func HandleWelcome() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusOK, WelcomeMessage)
	}
}

func HandleInstructions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusOK, InstructionsMessage)
	}
}

func HandleHealth(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, messages.Health{Status: "ok", Version: version})
	}
}

func HandleNotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Nothing lives at "+r.URL.Path+". Check out /instructions!")
	}
}

func HandleGetDigipet(gameManager *game.GameManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := gameManager.Digipet(r.Context())
		if err != nil {
			log.Error("failed to get digipet: %v", err)
			http.Error(w, "Failed to get digipet", http.StatusInternalServerError)
			return
		}

		switch s := s.(type) {
		case digipet.HasPet:
			writeJSON(w, http.StatusOK, messages.Response{
				Message: DigipetPresentMessage,
				Digipet: &s.Pet,
			})
		default:
			writeMessage(w, http.StatusOK, DigipetAbsentMessage)
		}
	}
}

// HandleAction performs the action named by the {action} route variable.
// Rejected actions still answer 200; the message explains what went wrong.
func HandleAction(gameManager *game.GameManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		action, err := digipet.ParseAction(mux.Vars(r)["action"])
		if err != nil {
			writeMessage(w, http.StatusNotFound, "Digipets don't know how to do that. Check out /instructions!")
			return
		}

		outcome, err := gameManager.Perform(r.Context(), action)
		if err != nil {
			log.Error("failed to perform %s: %v", action, err)
			http.Error(w, "Failed to perform action", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, messages.Response{
			Message: actionMessage(action, outcome.Legal),
			Digipet: messages.PetPointer(outcome.After),
		})
	}
}

func HandleListHistory(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := repositories.DefaultListLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		events, err := repository.ListEvents(r.Context(), limit)
		if err != nil {
			log.Error("failed to list events: %v", err)
			http.Error(w, "Failed to list history", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, events)
	}
}

func HandleGetHistoryEvent(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, err := uuid.Parse(mux.Vars(r)["eventID"])
		if err != nil {
			http.Error(w, "Failed to parse eventID", http.StatusBadRequest)
			return
		}

		event, err := repository.GetEvent(r.Context(), eventID)
		if err != nil {
			if repositories.IsNotFound(err) {
				http.Error(w, "Event not found", http.StatusNotFound)
				return
			}
			log.Error("failed to get event: %v", err)
			http.Error(w, "Failed to get event", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, event)
	}
}
