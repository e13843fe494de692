package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/weedbox/holdem"
)

type addPlayersRequest struct {
	Players []holdem.PlayerSeat `json:"players"`
}

type playerRequest struct {
	PlayerID string `json:"playerId"`
}

type seatRequest struct {
	PlayerID string `json:"playerId"`
	Username string `json:"username,omitempty"`
	Seat     int    `json:"seat,omitempty"`
	Chips    int64  `json:"chips"`
}

// actionRequest takes the amount as a number so fractional chips can be
// rejected instead of truncated.
type actionRequest struct {
	PlayerID string            `json:"playerId"`
	Type     holdem.ActionType `json:"type"`
	Seat     int               `json:"seat"`
	Amount   json.Number       `json:"amount,omitempty"`
	Index    int               `json:"index,omitempty"`
}

type adminRequest struct {
	Type       holdem.AdminActionType `json:"type"`
	PlayerID   string                 `json:"playerId,omitempty"`
	Amount     json.Number            `json:"amount,omitempty"`
	SmallBlind json.Number            `json:"smallBlind,omitempty"`
	BigBlind   json.Number            `json:"bigBlind,omitempty"`
	RequestID  string                 `json:"requestId,omitempty"`
}

type listGamesResponse struct {
	Games []string `json:"games"`
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listGamesResponse{Games: s.manager.ListGames()})
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var settings holdem.GameSettings
	if err := decode(r, &settings); err != nil {
		writeError(w, err)
		return
	}

	view, err := s.manager.CreateGame(settings)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	view, err := s.manager.GetGame(chi.URLParam(r, "gameID"), r.URL.Query().Get("viewer"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleCloseGame(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.CloseGame(chi.URLParam(r, "gameID")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddPlayers(w http.ResponseWriter, r *http.Request) {
	var req addPlayersRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := s.manager.AddPlayers(chi.URLParam(r, "gameID"), req.Players)
	writeResponse(w, resp, err)
}

func (s *Server) handleRequestSeat(w http.ResponseWriter, r *http.Request) {
	var req seatRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := s.manager.RequestSeat(chi.URLParam(r, "gameID"), holdem.SeatRequest{
		PlayerID: req.PlayerID,
		Username: req.Username,
		Seat:     req.Seat,
		Chips:    req.Chips,
	})
	writeResponse(w, resp, err)
}

func (s *Server) handleAddSpectator(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := s.manager.AddSpectator(chi.URLParam(r, "gameID"), req.PlayerID)
	writeResponse(w, resp, err)
}

func (s *Server) handleLeave(w http.ResponseWriter, r *http.Request) {
	resp, err := s.manager.PlayerLeave(chi.URLParam(r, "gameID"), chi.URLParam(r, "playerID"))
	writeResponse(w, resp, err)
}

func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	resp, err := s.manager.PlayerDisconnect(chi.URLParam(r, "gameID"), chi.URLParam(r, "playerID"))
	writeResponse(w, resp, err)
}

func (s *Server) handleReconnect(w http.ResponseWriter, r *http.Request) {
	resp, err := s.manager.PlayerReconnect(chi.URLParam(r, "gameID"), chi.URLParam(r, "playerID"))
	writeResponse(w, resp, err)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := s.manager.PlayerReady(chi.URLParam(r, "gameID"), req.PlayerID)
	writeResponse(w, resp, err)
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	resp, err := s.manager.ProcessAction(chi.URLParam(r, "gameID"), req.PlayerID, holdem.Action{
		Type:   req.Type,
		Seat:   req.Seat,
		Amount: amount,
		Index:  req.Index,
	})
	writeResponse(w, resp, err)
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	var req adminRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	action := holdem.AdminAction{
		Type:      req.Type,
		PlayerID:  req.PlayerID,
		RequestID: req.RequestID,
	}

	var err error
	for _, f := range []struct {
		src json.Number
		dst *int64
	}{
		{req.Amount, &action.Amount},
		{req.SmallBlind, &action.SmallBlind},
		{req.BigBlind, &action.BigBlind},
	} {
		if *f.dst, err = parseAmount(f.src); err != nil {
			writeError(w, err)
			return
		}
	}

	resp, err := s.manager.ProcessAdminAction(chi.URLParam(r, "gameID"), action)
	writeResponse(w, resp, err)
}
