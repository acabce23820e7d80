package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-scoreboard/internal/league"
	"github.com/mauv0809/league-scoreboard/internal/pubsub"
	"github.com/slack-go/slack"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	}
}

func (s *Server) StateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := s.Repo.State()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, state, err := s.Repo.Standings()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, standingsResponse{
			Standings:  standings,
			PointRules: state.PointRules,
			UpdatedAt:  state.UpdatedAt,
		})
	}
}

func (s *Server) CreateTeamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req teamRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, err)
			return
		}
		teams, err := s.Repo.CreateTeam(req.Name)
		if err != nil {
			writeError(w, err)
			return
		}
		s.publish(pubsub.EventTeamCreated, pubsub.TeamEvent{Name: req.Name, Teams: teams})
		writeJSON(w, http.StatusOK, teamsResponse{OK: true, Teams: teams})
	}
}

func (s *Server) RenameTeamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req renameTeamRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, err)
			return
		}
		teams, err := s.Repo.RenameTeam(req.OldName, req.NewName)
		if err != nil {
			writeError(w, err)
			return
		}
		s.publish(pubsub.EventTeamRenamed, pubsub.TeamEvent{Name: req.NewName, PreviousName: req.OldName, Teams: teams})
		writeJSON(w, http.StatusOK, teamsResponse{OK: true, Teams: teams})
	}
}

func (s *Server) DeleteTeamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req teamRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, err)
			return
		}
		teams, err := s.Repo.DeleteTeam(req.Name)
		if err != nil {
			writeError(w, err)
			return
		}
		s.publish(pubsub.EventTeamDeleted, pubsub.TeamEvent{Name: req.Name, Teams: teams})
		writeJSON(w, http.StatusOK, teamsResponse{OK: true, Teams: teams})
	}
}

func (s *Server) CreateGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in league.GameInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, err)
			return
		}
		game, err := s.Repo.CreateGame(in)
		if err != nil {
			writeError(w, err)
			return
		}
		s.publish(pubsub.EventGameRecorded, game)
		writeJSON(w, http.StatusOK, gameResponse{OK: true, Game: game})
	}
}

func (s *Server) UpdateGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in league.GameInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, err)
			return
		}
		game, err := s.Repo.UpdateGame(r.PathValue("id"), in)
		if err != nil {
			writeError(w, err)
			return
		}
		s.publish(pubsub.EventGameUpdated, game)
		writeJSON(w, http.StatusOK, gameResponse{OK: true, Game: game})
	}
}

func (s *Server) DeleteGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		removed, err := s.Repo.DeleteGame(id)
		if err != nil {
			writeError(w, err)
			return
		}
		s.publish(pubsub.EventGameDeleted, pubsub.GameDeletedEvent{ID: id, Removed: removed})
		writeJSON(w, http.StatusOK, removedResponse{OK: true, Removed: removed})
	}
}

// GameRecordedHandler is the push endpoint of the game-recorded subscription.
func (s *Server) GameRecordedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}
		log.Debug("Received game recorded message", "body", string(bodyBytes))

		var pubsubMsg pubsub.PushEnvelope
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		// Decode base64 to raw MessagePack bytes
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		var game league.Game
		if err := s.pubsub.ProcessMessage(rawData, &game); err != nil || game.ID == "" {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}

		outcome, err := s.Processor.ProcessGameRecorded(game, isDryRunFromContext(r))
		if err != nil {
			log.Error("Failed to process recorded game", "error", err, "gameID", game.ID)
			http.Error(w, "Failed to process recorded game", http.StatusInternalServerError)
			return
		}
		log.Info("Processed recorded game", "gameID", game.ID, "outcome", outcome)
		w.Write([]byte("OK"))
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// StandingsCommandHandler returns a handler for the /standings Slack command.
func (s *Server) StandingsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form body", http.StatusBadRequest)
			return
		}
		log.Info("Received slash command", "command", r.PostForm.Get("command"), "user", r.PostForm.Get("user_name"))

		standings, _, err := s.Repo.Standings()
		if err != nil {
			http.Error(w, "Failed to get standings", http.StatusInternalServerError)
			log.Error("Failed to get standings from store", "error", err)
			return
		}

		msg, err := s.Notifier.FormatStandingsResponse(standings)
		if err != nil {
			http.Error(w, "Failed to format standings", http.StatusInternalServerError)
			log.Error("Failed to format standings", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}
