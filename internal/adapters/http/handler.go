package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fluentnsunshine/funding-sim-v2/internal/app/negotiation"
	"github.com/fluentnsunshine/funding-sim-v2/internal/domain"
)

type Server struct {
	svc *negotiation.Service
}

func NewServer(svc *negotiation.Service) http.Handler {
	s := &Server{svc: svc}
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)

	// /negotiations      → POST: run a session, GET: list reports
	// /negotiations/{id} → GET: stored transcript
	mux.HandleFunc("/negotiations", s.handleNegotiations)
	mux.HandleFunc("/negotiations/", s.handleNegotiationWithID)

	return chainMiddlewares(mux, withLogging, withCORS)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type runNegotiationRequest struct {
	InitialFunding   float64 `json:"initial_funding"`
	RequestedFunding float64 `json:"requested_funding"`
	MaxRounds        int     `json:"max_rounds,omitempty"`
	UrgencyLevel     int     `json:"urgency_level,omitempty"`
	Seed             int64   `json:"seed,omitempty"`
	EventProbability float64 `json:"event_probability,omitempty"`
}

type offerResponse struct {
	Amount    float64   `json:"amount"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type eventResponse struct {
	Type       string    `json:"type"`
	Round      int       `json:"round"`
	OccurredAt time.Time `json:"occurred_at"`
}

type roundResponse struct {
	Round     int            `json:"round"`
	Corporate offerResponse  `json:"corporate"`
	Nonprofit offerResponse  `json:"nonprofit"`
	Event     *eventResponse `json:"event,omitempty"`
	Accepted  bool           `json:"accepted"`
}

type reportResponse struct {
	NegotiationID    string    `json:"negotiation_id"`
	Status           string    `json:"status"`
	InitialFunding   float64   `json:"initial_funding"`
	FinalOffer       float64   `json:"final_offer"`
	FundingRequested float64   `json:"funding_requested"`
	RoundsCompleted  int       `json:"rounds_completed"`
	ReputationScore  int       `json:"reputation_score"`
	EventCount       int       `json:"event_count"`
	CreatedAt        time.Time `json:"created_at"`
	CompletedAt      time.Time `json:"completed_at"`
}

type runNegotiationResponse struct {
	Report reportResponse  `json:"report"`
	Rounds []roundResponse `json:"rounds"`
}

type getNegotiationResponse struct {
	Report          reportResponse  `json:"report"`
	CorporateOffers []offerResponse `json:"corporate_offers"`
	NonprofitOffers []offerResponse `json:"nonprofit_offers"`
	Events          []eventResponse `json:"events"`
}

type listReportsResponse struct {
	Reports []reportResponse `json:"reports"`
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleNegotiations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleRunNegotiation(w, r)
	case http.MethodGet:
		s.handleListReports(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleNegotiationWithID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/negotiations/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleGetNegotiation(w, r, domain.NegotiationID(id))
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleRunNegotiation(w http.ResponseWriter, r *http.Request) {
	var req runNegotiationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	var rounds []roundResponse
	out, err := s.svc.Run(r.Context(), negotiation.RunInput{
		InitialFunding:   req.InitialFunding,
		RequestedFunding: req.RequestedFunding,
		MaxRounds:        req.MaxRounds,
		UrgencyLevel:     req.UrgencyLevel,
		Seed:             req.Seed,
		EventProbability: req.EventProbability,
		Observer: func(rr negotiation.RoundResult) {
			rounds = append(rounds, toRoundResponse(rr))
		},
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidConfiguration) {
			badRequest(w, err.Error())
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, runNegotiationResponse{
		Report: toReportResponse(out.Report),
		Rounds: rounds,
	})
}

func (s *Server) handleGetNegotiation(w http.ResponseWriter, r *http.Request, id domain.NegotiationID) {
	n, report, err := s.svc.GetNegotiation(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNegotiationNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}

	resp := getNegotiationResponse{
		Report:          toReportResponse(report),
		CorporateOffers: toOffersResponse(n.History.Offers(domain.PartyCorporate)),
		NonprofitOffers: toOffersResponse(n.History.Offers(domain.PartyNonprofit)),
		Events:          toEventsResponse(n.History.Events()),
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			badRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	reports, err := s.svc.ListReports(r.Context(), limit)
	if err != nil {
		internalError(w, err)
		return
	}

	resp := listReportsResponse{Reports: make([]reportResponse, 0, len(reports))}
	for _, report := range reports {
		resp.Reports = append(resp.Reports, toReportResponse(report))
	}

	writeJSON(w, http.StatusOK, resp)
}

// ─────────────────────────────────────────────
// Response helpers
// ─────────────────────────────────────────────

func toOfferResponse(o domain.Offer) offerResponse {
	return offerResponse{
		Amount:    o.Amount(),
		Message:   o.Message(),
		CreatedAt: o.CreatedAt(),
	}
}

func toOffersResponse(offers []domain.Offer) []offerResponse {
	out := make([]offerResponse, 0, len(offers))
	for _, o := range offers {
		out = append(out, toOfferResponse(o))
	}
	return out
}

func toEventResponse(e domain.Event) eventResponse {
	return eventResponse{
		Type:       string(e.Type),
		Round:      e.Round,
		OccurredAt: e.OccurredAt,
	}
}

func toEventsResponse(events []domain.Event) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	return out
}

func toRoundResponse(rr negotiation.RoundResult) roundResponse {
	resp := roundResponse{
		Round:     rr.Round,
		Corporate: toOfferResponse(rr.Corporate),
		Nonprofit: toOfferResponse(rr.Nonprofit),
		Accepted:  rr.Accepted,
	}
	if rr.Event != nil {
		e := toEventResponse(*rr.Event)
		resp.Event = &e
	}
	return resp
}

func toReportResponse(r domain.Report) reportResponse {
	return reportResponse{
		NegotiationID:    string(r.NegotiationID),
		Status:           string(r.Status),
		InitialFunding:   r.InitialFunding,
		FinalOffer:       r.FinalOffer,
		FundingRequested: r.FundingRequested,
		RoundsCompleted:  r.RoundsCompleted,
		ReputationScore:  r.ReputationScore,
		EventCount:       r.EventCount,
		CreatedAt:        r.CreatedAt,
		CompletedAt:      r.CompletedAt,
	}
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func internalError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
