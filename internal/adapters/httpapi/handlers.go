package httpapi

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"scentquiz/internal/application"
	"scentquiz/internal/application/commands"
	"scentquiz/internal/domain"
	"scentquiz/internal/session"
)

type credentialsRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

type openSessionRequest struct {
	Username string `json:"username" validate:"omitempty,max=64"`
	Password string `json:"password" validate:"required_with=Username,max=72"`
}

type choiceRequest struct {
	Value string `json:"value" validate:"required"`
}

type notesRequest struct {
	Notes []string `json:"notes" validate:"dive,required"`
}

type userResponse struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type queryResponse struct {
	Mood     string   `json:"mood,omitempty"`
	Occasion string   `json:"occasion,omitempty"`
	Notes    []string `json:"notes"`
}

type resultResponse struct {
	Rank        int     `json:"rank"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Description string  `json:"description,omitempty"`
	Notes       string  `json:"notes,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	Score       float64 `json:"score"`
}

type sessionResponse struct {
	ID           string           `json:"id"`
	User         string           `json:"user,omitempty"`
	Step         string           `json:"step"`
	Prompt       string           `json:"prompt"`
	Options      []string         `json:"options"`
	Query        queryResponse    `json:"query"`
	Results      []resultResponse `json:"results,omitempty"`
	Strategy     string           `json:"strategy,omitempty"`
	NoMatch      bool             `json:"no_match"`
	HistoryError string           `json:"history_error,omitempty"`
	MatchError   string           `json:"match_error,omitempty"`
}

type historyEntryResponse struct {
	ID          int64            `json:"id"`
	Query       queryResponse    `json:"query"`
	Recommended []domain.ItemRef `json:"recommended"`
	CreatedAt   time.Time        `json:"created_at"`
}

func newQueryResponse(q domain.PreferenceQuery) queryResponse {
	notes := make([]string, len(q.Notes))
	for i, n := range q.Notes {
		notes[i] = string(n)
	}
	return queryResponse{Mood: string(q.Mood), Occasion: string(q.Occasion), Notes: notes}
}

func newSessionResponse(snap session.Snapshot) sessionResponse {
	resp := sessionResponse{
		ID:       snap.ID,
		User:     snap.UserID,
		Step:     snap.Step.String(),
		Prompt:   snap.Step.Prompt(),
		Options:  snap.Options,
		Query:    newQueryResponse(snap.Query),
		Strategy: snap.Strategy,
		NoMatch:  snap.NoMatch,
	}
	if resp.Options == nil {
		resp.Options = []string{}
	}
	for _, r := range snap.Results {
		resp.Results = append(resp.Results, resultResponse{
			Rank:        r.Rank,
			Name:        r.Item.Name,
			Brand:       r.Item.Brand,
			Description: r.Item.Description,
			Notes:       r.Item.Notes,
			ImageURL:    r.Item.ImageURL,
			Score:       r.Score,
		})
	}
	if snap.HistoryErr != nil {
		resp.HistoryError = snap.HistoryErr.Error()
	}
	if snap.Err != nil {
		resp.MatchError = snap.Err.Error()
	}
	return resp
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, application.Options())
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if s.identity == nil {
		s.writeError(w, application.ErrNotFound)
		return
	}
	var req credentialsRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	user, err := commands.NewRegisterCommand(s.identity, req.Username, req.Password).Execute(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, userResponse{Username: user.Username, CreatedAt: user.CreatedAt})
}

// handleCreateSession opens a quiz. With credentials the session belongs to that
// user and records history; without them it is anonymous, if auth is optional.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req openSessionRequest
	if err := s.decode(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, err)
		return
	}

	userID := ""
	switch {
	case req.Username != "" && s.identity != nil:
		user, err := commands.NewLoginCommand(s.identity, req.Username, req.Password).Execute(r.Context())
		if err != nil {
			s.writeError(w, err)
			return
		}
		userID = user.Username
	case s.authRequired:
		s.writeError(w, application.ErrInvalidCredentials)
		return
	}

	sess := s.sessions.Create(userID)
	s.writeJSON(w, http.StatusCreated, newSessionResponse(sess.Snapshot()))
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, newSessionResponse(sess.Snapshot()))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMood(w http.ResponseWriter, r *http.Request) {
	s.handleChoice(w, r, func(sess *session.Session, value string) error {
		mood, err := domain.ParseMood(value)
		if err != nil {
			return err
		}
		return sess.SelectMood(mood)
	})
}

func (s *Server) handleOccasion(w http.ResponseWriter, r *http.Request) {
	s.handleChoice(w, r, func(sess *session.Session, value string) error {
		occasion, err := domain.ParseOccasion(value)
		if err != nil {
			return err
		}
		return sess.SelectOccasion(occasion)
	})
}

func (s *Server) handleChoice(w http.ResponseWriter, r *http.Request, apply func(*session.Session, string) error) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req choiceRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := apply(sess, req.Value); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newSessionResponse(sess.Snapshot()))
}

func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req notesRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	notes, err := domain.ParseNotes(req.Notes)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if _, err := sess.SubmitNotes(r.Context(), notes); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newSessionResponse(sess.Snapshot()))
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := sess.Restart(); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newSessionResponse(sess.Snapshot()))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	entries, err := commands.NewHistoryCommand(s.history, sess.UserID).Execute(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := make([]historyEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = historyEntryResponse{
			ID:          e.ID,
			Query:       newQueryResponse(e.Query),
			Recommended: e.Recommended,
			CreatedAt:   e.CreatedAt,
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}
