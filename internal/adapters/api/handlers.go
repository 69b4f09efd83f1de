package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/outbidhq/auction-service/internal/app"
)

type AuctionCreator interface {
	CreateAuction(ctx context.Context, cmd app.CreateAuctionCommand) error
}

type BidPlacer interface {
	PlaceBid(ctx context.Context, cmd app.PlaceBidCommand) error
}

type AutoBidCreator interface {
	CreateAutoBid(ctx context.Context, cmd app.CreateAutoBidCommand) error
}

// Handler exposes the write side of the auction service over JSON HTTP.
type Handler struct {
	auctions AuctionCreator
	bids     BidPlacer
	autoBids AutoBidCreator
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandler(auctions AuctionCreator, bids BidPlacer, autoBids AutoBidCreator, logger *slog.Logger) *Handler {
	return &Handler{
		auctions: auctions,
		bids:     bids,
		autoBids: autoBids,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Register mounts all routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /auctions", h.createAuction)
	mux.HandleFunc("POST /auctions/{auctionId}/bids", h.placeBid)
	mux.HandleFunc("POST /auto-bids", h.createAutoBid)
	mux.HandleFunc("GET /health", h.health)
}

type createAuctionRequest struct {
	SellerID    uuid.UUID       `json:"seller_id" validate:"required"`
	ItemID      uuid.UUID       `json:"item_id" validate:"required"`
	OpeningBid  decimal.Decimal `json:"opening_bid" validate:"required"`
	MinimalBid  decimal.Decimal `json:"minimal_bid" validate:"required"`
	OpeningDate time.Time       `json:"opening_date" validate:"required"`
}

func (h *Handler) createAuction(w http.ResponseWriter, r *http.Request) {
	var req createAuctionRequest
	if !h.decode(w, r, &req) {
		return
	}
	err := h.auctions.CreateAuction(r.Context(), app.CreateAuctionCommand{
		SellerID:    req.SellerID,
		ItemID:      req.ItemID,
		OpeningBid:  req.OpeningBid,
		MinimalBid:  req.MinimalBid,
		OpeningDate: req.OpeningDate,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

type placeBidRequest struct {
	BidderID          uuid.UUID       `json:"bidder_id" validate:"required"`
	Amount            decimal.Decimal `json:"amount" validate:"required"`
	CurrentBidCounter int64           `json:"current_bid_counter" validate:"gte=0"`
}

func (h *Handler) placeBid(w http.ResponseWriter, r *http.Request) {
	auctionID, err := uuid.Parse(r.PathValue("auctionId"))
	if err != nil {
		h.writeBadRequest(w, "invalid auction id")
		return
	}
	var req placeBidRequest
	if !h.decode(w, r, &req) {
		return
	}
	err = h.bids.PlaceBid(r.Context(), app.PlaceBidCommand{
		AuctionID:         auctionID,
		BidderID:          req.BidderID,
		Amount:            req.Amount,
		CurrentBidCounter: req.CurrentBidCounter,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

type createAutoBidRequest struct {
	AuctionID uuid.UUID       `json:"auction_id" validate:"required"`
	UserID    uuid.UUID       `json:"user_id" validate:"required"`
	Bid       decimal.Decimal `json:"bid" validate:"required"`
	Limit     decimal.Decimal `json:"limit" validate:"required"`
}

func (h *Handler) createAutoBid(w http.ResponseWriter, r *http.Request) {
	var req createAutoBidRequest
	if !h.decode(w, r, &req) {
		return
	}
	err := h.autoBids.CreateAutoBid(r.Context(), app.CreateAutoBidCommand{
		AuctionID: req.AuctionID,
		UserID:    req.UserID,
		Bid:       req.Bid,
		Limit:     req.Limit,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decode unmarshals and validates the request body, answering 400 itself
// when either step fails.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeBadRequest(w, "invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.writeBadRequest(w, err.Error())
		return false
	}
	return true
}
