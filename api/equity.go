package api

import (
	"net/http"

	"github.com/weedbox/holdem/card"
	"github.com/weedbox/holdem/classifier"
	"github.com/weedbox/holdem/equity"
	"github.com/weedbox/holdem/evaluator"
	"github.com/weedbox/holdem/handrange"
)

const maxBatchSize = 256

type equityRequest struct {
	Players    []equity.PlayerInput `json:"players"`
	Board      []string             `json:"board"`
	Iterations int                  `json:"iterations"`
	Seed       int64                `json:"seed"`
}

type batchRequest struct {
	Requests []equity.Request `json:"requests"`
	Seed     int64            `json:"seed"`
}

type batchResponse struct {
	Results []equity.Result `json:"results"`
}

type evaluateRequest struct {
	Cards []string   `json:"cards,omitempty"`
	Hands [][]string `json:"hands,omitempty"`
	Hole  []string   `json:"hole,omitempty"`
	Board []string   `json:"board,omitempty"`
}

type evaluateResponse struct {
	Evaluation   *evaluator.Evaluation   `json:"evaluation,omitempty"`
	Winners      []int                   `json:"winners,omitempty"`
	PairCategory classifier.PairCategory `json:"pairCategory,omitempty"`
	Draw         classifier.Draw         `json:"draw,omitempty"`
}

type rangeRequest struct {
	Range string `json:"range"`
}

type rangeResponse struct {
	Count  int      `json:"count"`
	Combos []string `json:"combos"`
}

func (s *Server) calculatorOptions() []equity.Option {
	opts := []equity.Option{equity.WithLogger(s.logger)}
	if s.preflop != nil {
		opts = append(opts, equity.WithPreflopTable(s.preflop))
	}
	return opts
}

func (s *Server) handleEquity(w http.ResponseWriter, r *http.Request) {
	var req equityRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if req.Iterations <= 0 {
		req.Iterations = s.iterations
	}

	opts := s.calculatorOptions()
	if req.Seed != 0 {
		opts = append(opts, equity.WithSeed(req.Seed))
	}

	result := equity.NewCalculator(opts...).Calculate(req.Players, req.Board, req.Iterations)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleEquityBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if len(req.Requests) > maxBatchSize {
		writeError(w, ErrInvalidBody)
		return
	}

	for i := range req.Requests {
		if req.Requests[i].Iterations <= 0 {
			req.Requests[i].Iterations = s.iterations
		}
	}

	results, err := equity.CalculateBatch(r.Context(), req.Requests, s.workers, req.Seed, s.calculatorOptions()...)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, batchResponse{Results: results})
}

/*
	handleEvaluate 三種用法
	  - cards: 評估 5~7 張牌
	  - hands: 多手牌比大小, 回傳最佳牌力與贏家索引
	  - hole + board: 評估並附上對子分類與聽牌
*/
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	switch {
	case len(req.Hands) > 0:
		best, winners, err := evaluator.BestHand(req.Hands)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, evaluateResponse{Evaluation: &best, Winners: winners})

	case len(req.Hole) > 0:
		hole, err := card.ParseMany(req.Hole)
		if err != nil {
			writeError(w, err)
			return
		}
		board, err := card.ParseMany(req.Board)
		if err != nil {
			writeError(w, err)
			return
		}

		all := append(append([]card.Card{}, hole...), board...)
		ev, err := evaluator.EvaluateCards(all)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, evaluateResponse{
			Evaluation:   &ev,
			PairCategory: classifier.CategorizePair(hole, board),
			Draw:         classifier.DetectDraw(all),
		})

	default:
		ev, err := evaluator.Evaluate(req.Cards)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, evaluateResponse{Evaluation: &ev})
	}
}

func (s *Server) handleParseRange(w http.ResponseWriter, r *http.Request) {
	var req rangeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	combos := handrange.Parse(req.Range)
	resp := rangeResponse{
		Count:  len(combos),
		Combos: make([]string, 0, len(combos)),
	}
	for _, c := range combos {
		resp.Combos = append(resp.Combos, c.String())
	}

	writeJSON(w, http.StatusOK, resp)
}
