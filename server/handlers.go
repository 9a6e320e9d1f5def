package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/etnz/younginvestor"
	"github.com/etnz/younginvestor/content"
	"github.com/go-chi/chi/v5"
)

// stateResponse is the snapshot plus the values the front-end derives from it.
type stateResponse struct {
	younginvestor.Snapshot
	NetWorth           younginvestor.Money `json:"netWorth"`
	ReachedDestination bool                `json:"reachedDestination"`
	Flow               flowResponse        `json:"flow"`
}

type flowResponse struct {
	Step     younginvestor.Step    `json:"step"`
	Index    int                   `json:"index"`
	Progress younginvestor.Percent `json:"progress"`
}

func stateOf(g *younginvestor.Game) stateResponse {
	return stateResponse{
		Snapshot:           g.Snapshot(),
		NetWorth:           g.NetWorth(),
		ReachedDestination: g.ReachedDestination(),
		Flow:               flowOf(g),
	}
}

func flowOf(g *younginvestor.Game) flowResponse {
	step, index := g.Flow()
	return flowResponse{Step: step, Index: index, Progress: g.FlowProgress()}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var resp stateResponse
	s.withGame(func(g *younginvestor.Game) { resp = stateOf(g) })
	s.writeJSON(w, http.StatusOK, resp)
}

type playerRequest struct {
	Name     string `json:"name"`
	Language string `json:"language"`
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if !s.decode(w, r, &req) {
		return
	}
	var lang younginvestor.Language
	if req.Language != "" {
		l, err := younginvestor.ParseLanguage(req.Language)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		lang = l
	}

	var resp stateResponse
	s.withGame(func(g *younginvestor.Game) {
		if req.Name != "" {
			g.SetPlayerName(req.Name)
		}
		if lang != "" {
			g.SetLanguage(lang)
		}
		resp = stateOf(g)
	})
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var resp stateResponse
	s.withGame(func(g *younginvestor.Game) {
		g.Reset()
		resp = stateOf(g)
	})
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRound(w http.ResponseWriter, r *http.Request) {
	round, ok := s.roundParam(w, r)
	if !ok {
		return
	}
	// the catalog is immutable, no need to lock the game
	s.writeJSON(w, http.StatusOK, s.game.Catalog().DefinitionFor(round))
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	round, ok := s.roundParam(w, r)
	if !ok {
		return
	}
	i, err := younginvestor.ParseInstrument(chi.URLParam(r, "instrument"))
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	var q younginvestor.Quote
	s.withGame(func(g *younginvestor.Game) { q = g.QuoteAt(round, i) })
	s.writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleCompleteRound(w http.ResponseWriter, r *http.Request) {
	var resp stateResponse
	s.withGame(func(g *younginvestor.Game) {
		g.CompleteTradeRound()
		resp = stateOf(g)
	})
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEndWaiting(w http.ResponseWriter, r *http.Request) {
	var resp stateResponse
	s.withGame(func(g *younginvestor.Game) {
		g.EndWaitingPeriod()
		resp = stateOf(g)
	})
	s.writeJSON(w, http.StatusOK, resp)
}

type tradeRequest struct {
	Instrument string `json:"instrument"`
	Quantity   int64  `json:"quantity"`
}

type tradeResponse struct {
	Trade younginvestor.Trade `json:"trade"`
	State stateResponse       `json:"state"`
}

func (s *Server) handleTrade(w http.ResponseWriter, r *http.Request) {
	side := chi.URLParam(r, "side")
	if side != string(younginvestor.Buy) && side != string(younginvestor.Sell) {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("unknown trade side %q", side))
		return
	}
	var req tradeRequest
	if !s.decode(w, r, &req) {
		return
	}
	i, err := younginvestor.ParseInstrument(req.Instrument)
	if err != nil {
		s.writeGameError(w, err)
		return
	}

	var resp tradeResponse
	s.withGame(func(g *younginvestor.Game) {
		if side == string(younginvestor.Buy) {
			resp.Trade, err = g.Buy(i, req.Quantity)
		} else {
			resp.Trade, err = g.Sell(i, req.Quantity)
		}
		resp.State = stateOf(g)
	})
	if err != nil {
		s.log.Debug().Err(err).Str("side", side).Str("instrument", string(i)).Msg("order rejected")
		s.writeGameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

type progressRequest struct {
	ID json.RawMessage `json:"id"`
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	event := chi.URLParam(r, "event")

	var apply func(g *younginvestor.Game)
	switch event {
	case "lesson", "minigame":
		var req progressRequest
		if !s.decode(w, r, &req) {
			return
		}
		if event == "lesson" {
			var id int
			if err := json.Unmarshal(req.ID, &id); err != nil || id <= 0 {
				s.writeError(w, http.StatusBadRequest, "lesson id must be a positive number")
				return
			}
			apply = func(g *younginvestor.Game) { g.CompleteLesson(id) }
		} else {
			var id string
			if err := json.Unmarshal(req.ID, &id); err != nil || id == "" {
				s.writeError(w, http.StatusBadRequest, "mini-game id must be a non empty string")
				return
			}
			apply = func(g *younginvestor.Game) { g.CompleteMiniGame(id) }
		}
	case "bank":
		apply = func(g *younginvestor.Game) { g.OpenBankAccount() }
	case "barmitzvah":
		apply = func(g *younginvestor.Game) { g.CompleteBarMitzvah() }
	case "guru":
		apply = func(g *younginvestor.Game) { g.CompleteGuruMeeting() }
	case "turn":
		apply = func(g *younginvestor.Game) { g.AdvanceTurn() }
	default:
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("unknown progress event %q", event))
		return
	}

	var resp stateResponse
	s.withGame(func(g *younginvestor.Game) {
		apply(g)
		resp = stateOf(g)
	})
	s.writeJSON(w, http.StatusOK, resp)
}

type milestoneResponse struct {
	Milestone younginvestor.Milestone `json:"milestone"`
	Reached   bool                    `json:"reached"`
}

func (s *Server) handleMilestones(w http.ResponseWriter, r *http.Request) {
	var p younginvestor.Progress
	s.withGame(func(g *younginvestor.Game) { p = g.Progress() })

	resp := []milestoneResponse{}
	for _, m := range younginvestor.Milestones() {
		resp = append(resp, milestoneResponse{Milestone: m, Reached: p.IsMilestoneReached(m)})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleShop(w http.ResponseWriter, r *http.Request) {
	item, err := content.ShopItem(chi.URLParam(r, "item"))
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	var resp stateResponse
	s.withGame(func(g *younginvestor.Game) {
		err = g.BuyComputer(item.Price)
		resp = stateOf(g)
	})
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFlow(w http.ResponseWriter, r *http.Request) {
	var resp flowResponse
	s.withGame(func(g *younginvestor.Game) { resp = flowOf(g) })
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFlowNext(w http.ResponseWriter, r *http.Request) {
	var (
		resp flowResponse
		err  error
	)
	s.withGame(func(g *younginvestor.Game) {
		_, err = g.NextStep()
		resp = flowOf(g)
	})
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFlowPrevious(w http.ResponseWriter, r *http.Request) {
	var resp flowResponse
	s.withGame(func(g *younginvestor.Game) {
		g.PreviousStep()
		resp = flowOf(g)
	})
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLesson(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "lesson id must be a number")
		return
	}
	lang, ok := s.language(w, r)
	if !ok {
		return
	}
	lesson, err := content.LoadLesson(id, lang)
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, lesson)
}

func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	questions, err := content.Quiz(chi.URLParam(r, "name"))
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, questions)
}

// language returns the "lang" query parameter, the game's language otherwise.
func (s *Server) language(w http.ResponseWriter, r *http.Request) (younginvestor.Language, bool) {
	if q := r.URL.Query().Get("lang"); q != "" {
		lang, err := younginvestor.ParseLanguage(q)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return "", false
		}
		return lang, true
	}
	var lang younginvestor.Language
	s.withGame(func(g *younginvestor.Game) { lang = g.Language() })
	return lang, true
}

func (s *Server) roundParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	round, err := strconv.Atoi(chi.URLParam(r, "round"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "round must be a number")
		return 0, false
	}
	return round, true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// writeGameError maps game errors to statuses. Rejections use the kind as the
// error code so the front-end can translate them.
func (s *Server) writeGameError(w http.ResponseWriter, err error) {
	var kind younginvestor.Kind
	switch {
	case errors.As(err, &kind):
		s.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":   string(kind),
			"message": err.Error(),
		})
	case errors.Is(err, younginvestor.ErrLocked):
		s.writeJSON(w, http.StatusConflict, map[string]string{"error": "locked", "message": err.Error()})
	case errors.Is(err, fs.ErrNotExist):
		s.writeError(w, http.StatusNotFound, err.Error())
	default:
		s.log.Error().Err(err).Msg("request failed")
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
